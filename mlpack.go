/*
Package mlpack provides building blocks for fast kernel-summation methods in
pure Go: truncated Taylor/Hermite series expansions of radially symmetric
kernels, translation operators between expansion centers, and analytic
truncation-order selection under a caller-supplied error bound.

The core lives in the series package; kernel families and their derivative
generators live in the kernel package.
*/
package mlpack
