// Package kernel implements the fixed benchmark kernel catalogue.
//
// Every kernel is a plain function that allocates its own working set,
// performs a fixed amount of work and discards the result. Sizes, seeds and
// iteration counts are package constants and cannot be changed at call time,
// so every port of the catalogue performs identical work:
//
//   - Numeric: MatrixMultiply, PrimeSieve, Fibonacci, MonteCarloPi, NBody, Mandelbrot
//   - Crypto: SHA256, AESEncrypt
//   - Data: JSONBuild, QuickSort, BubbleSort
//   - Graphics: RayTrace
//   - System: Compression
//
// Random inputs come from a locally owned lcg.LCG seeded with a fixed value.
// Floating-point products are wrapped in explicit float64 conversions, which
// forbids the compiler from fusing them into FMA instructions, so trajectories
// stay bit-identical on every architecture.
//
// Each kernel has an artefact function (PrimeTable, MatrixProduct,
// AESCiphertext, ...) that runs the same computation and returns what the
// timed entry point throws away. Verification code uses the artefacts; the
// timed path never does.
//
// Kernels are safe to call concurrently. Contract violations, such as a
// cipher rejecting its key, panic.
package kernel
