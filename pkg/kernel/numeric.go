package kernel

import "github.com/yndnr/kernbench-go/pkg/lcg"

const (
	matrixSize = 128
	matrixSeed = 12345

	sieveLimit = 100000

	fibN = 30

	monteCarloIterations = 1000000
	monteCarloSeed       = 42

	nbodySteps     = 1000
	nbodyBodies    = 100
	nbodySoftening = 0.01

	mandelbrotWidth   = 100
	mandelbrotHeight  = 100
	mandelbrotMaxIter = 1000
)

// MatrixMultiply multiplies two 128x128 matrices filled from seed 12345
// with the naive triple loop.
func MatrixMultiply() {
	_ = MatrixProduct()
}

// MatrixProduct returns the row-major product computed by MatrixMultiply.
func MatrixProduct() []float64 {
	const n = matrixSize
	rng := lcg.New(matrixSeed)

	a := make([]float64, n*n)
	b := make([]float64, n*n)
	res := make([]float64, n*n)

	// A and B draw alternately from one stream.
	for i := 0; i < n*n; i++ {
		a[i] = rng.Float64()
		b[i] = rng.Float64()
	}

	for i := 0; i < n; i++ {
		row := i * n
		for j := 0; j < n; j++ {
			sum := 0.0
			for k := 0; k < n; k++ {
				sum += float64(a[row+k] * b[k*n+j])
			}
			res[row+j] = sum
		}
	}
	return res
}

// PrimeSieve runs the Sieve of Eratosthenes over 0..100000.
func PrimeSieve() {
	_ = PrimeTable()
}

// PrimeTable returns the sieve table; index i is true when i is prime.
func PrimeTable() []bool {
	primes := make([]bool, sieveLimit+1)
	for i := 2; i <= sieveLimit; i++ {
		primes[i] = true
	}

	for p := 2; p*p <= sieveLimit; p++ {
		if !primes[p] {
			continue
		}
		for i := p * p; i <= sieveLimit; i += p {
			primes[i] = false
		}
	}
	return primes
}

// Fibonacci returns F(30) by naive recursion.
func Fibonacci() int32 {
	return fib(fibN)
}

func fib(n int32) int32 {
	if n <= 1 {
		return n
	}
	return fib(n-1) + fib(n-2)
}

// MonteCarloPi estimates pi from 1,000,000 point pairs drawn from seed 42.
func MonteCarloPi() float64 {
	rng := lcg.New(monteCarloSeed)
	inside := 0

	for i := 0; i < monteCarloIterations; i++ {
		x := rng.Float64()
		y := rng.Float64()
		if float64(x*x)+float64(y*y) <= 1.0 {
			inside++
		}
	}
	return 4.0 * float64(inside) / float64(monteCarloIterations)
}

// NBody advances 100 bodies through 1000 explicit Euler steps.
func NBody() {
	_, _ = NBodyState()
}

// NBodyState returns the interleaved (x, y) positions and velocities after
// the final step.
//
// Bodies start at rest at the origin, so the trajectory is all zeros; the
// pairwise force loop still runs in full.
func NBodyState() (pos, vel []float64) {
	pos = make([]float64, nbodyBodies*2)
	vel = make([]float64, nbodyBodies*2)

	for step := 0; step < nbodySteps; step++ {
		for b1 := 0; b1 < nbodyBodies; b1++ {
			b1x, b1y := b1*2, b1*2+1
			for b2 := 0; b2 < nbodyBodies; b2++ {
				if b1 == b2 {
					continue
				}
				dx := pos[b2*2] - pos[b1x]
				dy := pos[b2*2+1] - pos[b1y]
				distSq := float64(dx*dx) + float64(dy*dy) + nbodySoftening
				f := 1.0 / distSq
				vel[b1x] += float64(dx * f)
				vel[b1y] += float64(dy * f)
			}
		}
		for b := 0; b < nbodyBodies; b++ {
			pos[b*2] += vel[b*2]
			pos[b*2+1] += vel[b*2+1]
		}
	}
	return pos, vel
}

// Mandelbrot iterates z <- z^2 + c over a 100x100 raster of
// [-2.5, 1.0] x [-1, 1], at most 1000 iterations per pixel.
func Mandelbrot() {
	_ = MandelbrotIterations()
}

// MandelbrotIterations returns the iteration total across all pixels.
func MandelbrotIterations() int {
	total := 0
	for y := 0; y < mandelbrotHeight; y++ {
		for x := 0; x < mandelbrotWidth; x++ {
			total += mandelbrotEscape(mandelbrotPoint(x, y))
		}
	}
	return total
}

// mandelbrotPoint maps a raster pixel to its point in the complex plane.
func mandelbrotPoint(x, y int) (cx, cy float64) {
	cx = float64(float64(x)/mandelbrotWidth*3.5) - 2.5
	cy = float64(float64(y)/mandelbrotHeight*2.0) - 1.0
	return cx, cy
}

// mandelbrotEscape counts iterations until |z| exceeds 2, capped at
// mandelbrotMaxIter.
func mandelbrotEscape(cx, cy float64) int {
	zx, zy := 0.0, 0.0
	iter := 0
	for float64(zx*zx)+float64(zy*zy) <= 4.0 && iter < mandelbrotMaxIter {
		tmp := float64(zx*zx) - float64(zy*zy) + cx
		zy = float64(2.0*zx*zy) + cy
		zx = tmp
		iter++
	}
	return iter
}
