package kernel

// Analytic work per call. Parity tests assert these against instrumented
// runs and the harness divides them by elapsed time to report ops/sec.
const (
	// OpsMatrixMultiply counts multiply-adds (n^3).
	OpsMatrixMultiply = matrixSize * matrixSize * matrixSize

	// OpsPrimeSieve counts composite marks in the inner loop.
	OpsPrimeSieve = 193078

	// OpsFibonacci counts calls to fib, 2*F(31)-1.
	OpsFibonacci = 2692537

	// OpsMonteCarloPi counts sampled points.
	OpsMonteCarloPi = monteCarloIterations

	// OpsNBody counts pairwise force evaluations.
	OpsNBody = nbodySteps * nbodyBodies * (nbodyBodies - 1)

	// OpsMandelbrot counts z <- z^2 + c iterations over the raster.
	OpsMandelbrot = 2224688

	// OpsSHA256 counts hashed bytes.
	OpsSHA256 = hashIterations * payloadSize

	// OpsAESEncrypt counts sealed plaintext bytes.
	OpsAESEncrypt = encryptIterations * payloadSize

	// OpsJSONBuild counts payload bytes built and scanned.
	OpsJSONBuild = textIterations * textPayloadSize

	// OpsQuickSort counts partition comparisons.
	OpsQuickSort = 1098360

	// OpsBubbleSort counts comparisons, n(n-1)/2.
	OpsBubbleSort = bubbleSortSize * (bubbleSortSize - 1) / 2

	// OpsRayTrace counts tested cells.
	OpsRayTrace = rayWidth * rayHeight

	// OpsCompression counts compressed input bytes.
	OpsCompression = compressIterations * payloadSize
)

// textPayloadSize is the length of one built text payload.
const textPayloadSize = 30791
