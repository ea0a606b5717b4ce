// Package sampling implements deterministic pseudo-random sources and point
// cloud samplers used to generate reproducible reference and query data.
package sampling

import (
	"crypto/rand"
	"io"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
)

const keySize = 32

// PRNG is an interface for the generation of random bytes.
type PRNG interface {
	io.Reader
}

// ThreadSafePRNG is a PRNG backed by crypto/rand, safe for concurrent use.
type ThreadSafePRNG struct {
}

// NewPRNG returns a new PRNG that is thread-safe.
func NewPRNG() (*ThreadSafePRNG, error) {
	return &ThreadSafePRNG{}, nil
}

// Read reads random bytes on sum.
func (prng *ThreadSafePRNG) Read(sum []byte) (n int, err error) {
	return rand.Read(sum)
}

// KeyedPRNG is a structure storing the parameters used to deterministically
// generate a shared sequence of random bytes from a key using the hash
// function blake2b. Two KeyedPRNG instantiated with the same key produce the
// same stream.
// WARNING: KeyedPRNG should NOT be called by multiple threads, as the
// resulting sequence would not be deterministic for a given key.
type KeyedPRNG struct {
	key []byte
	xof blake2b.XOF
}

// NewKeyedPRNG creates a new instance of KeyedPRNG.
// Accepts an optional key, else set key=nil which is treated as key=[]byte{}.
func NewKeyedPRNG(key []byte) (*KeyedPRNG, error) {
	var err error
	prng := new(KeyedPRNG)
	prng.key = make([]byte, len(key))
	copy(prng.key, key)
	prng.xof, err = blake2b.NewXOF(blake2b.OutputLengthUnknown, key)
	return prng, err
}

// Key returns a copy of the key used to seed the PRNG.
// This value can be used with NewKeyedPRNG to instantiate a new PRNG that
// will produce the same stream of bytes.
func (prng *KeyedPRNG) Key() (key []byte) {
	key = make([]byte, len(prng.key))
	copy(key, prng.key)
	return
}

// Read reads bytes from the KeyedPRNG on sum.
func (prng *KeyedPRNG) Read(sum []byte) (n int, err error) {
	return prng.xof.Read(sum)
}

// Reset resets the PRNG to its initial state.
func (prng *KeyedPRNG) Reset() {
	prng.xof.Reset()
}

// DeriveKey derives a fresh PRNG key from a parent key and a label, so that
// independent samplers can be forked from a single seed.
func DeriveKey(key []byte, label string) []byte {
	hasher := blake3.New()
	hasher.Write(key)
	hasher.Write([]byte(label))
	sum := hasher.Sum(nil)
	return sum[:keySize]
}
