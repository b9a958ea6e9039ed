package service

import (
	"bytes"
	"context"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/yndnr/kernbench-go/internal/core/domain"
	"github.com/yndnr/kernbench-go/internal/telemetry/logger"
	"github.com/yndnr/kernbench-go/pkg/crypto/aead"
	"github.com/yndnr/kernbench-go/pkg/fingerprint"
	"github.com/yndnr/kernbench-go/pkg/kernel"
	"github.com/yndnr/kernbench-go/pkg/kernel/variant"
	"github.com/yndnr/kernbench-go/pkg/lcg"
)

// parityCheck compares one kernel artefact with its reference value.
type parityCheck struct {
	name     string
	want     string
	got      func() string
	digest   bool
	extended bool
}

// referenceChecks are the values every port must reproduce.
var referenceChecks = []parityCheck{
	{name: "lcg.seed42.uint32", want: "1083814273,378494188,2479403867", got: func() string { return lcgUints(42, 3) }},
	{name: "lcg.seed42.float64", want: "0.2523451747838408,0.08812504541128874,0.5772811982315034", got: func() string { return lcgFloats(42, 3) }},
	{name: "lcg.seed0.uint32", want: "1013904223,1196435762,3519870697", got: func() string { return lcgUints(0, 3) }},
	{name: "matrixMultiply.c00", want: "32.37789608472707", got: func() string { return formatFloat(kernel.MatrixProduct()[0]) }},
	{name: "primeSieve.count", want: "9592", got: primeCount},
	{name: "fibonacci", want: "832040", got: func() string { return domain.FormatValue(kernel.Fibonacci()) }},
	{name: "monteCarloPi", want: "3.142712", got: func() string { return formatFloat(kernel.MonteCarloPi()) }},
	{name: "nBody.atRest", want: "true", got: nbodyAtRest},
	{name: "mandelbrot.iterations", want: "2224688", got: func() string { return strconv.Itoa(kernel.MandelbrotIterations()) }},
	{name: "sha256.digest", want: "3421d9aa928a94decb191ab8e8b76c1d8434bf602c5b3ba10ad42f54c8199c34", got: func() string { return fingerprint.Hex(kernel.SHA256Digest()) }, digest: true},
	{name: "aesEncrypt.fingerprint", want: "550d9448893fa76da75be1923d5ecc30c056c3916726435f392e03eed6c35dda", got: func() string { return fingerprint.Of(kernel.AESCiphertext()) }, digest: true},
	{name: "aesEncrypt.roundTrip", want: "true", got: func() string { return openRoundTrip(aead.AESGCM, kernel.AESCiphertext()) }},
	{name: "jsonParse.length", want: "30791", got: func() string { return strconv.Itoa(len(kernel.TextPayload())) }},
	{name: "jsonParse.delimiters", want: "2001", got: func() string { return strconv.Itoa(bytes.Count(kernel.TextPayload(), []byte{':'})) }},
	{name: "quickSort.sorted", want: "true", got: quickSortOK},
	{name: "bubbleSort.sorted", want: "true", got: bubbleSortOK},
	{name: "rayTrace", want: "5013", got: func() string { return domain.FormatValue(kernel.RayTrace()) }},
	{name: "compression.roundTrip", want: "true", got: gzipRoundTrip},
	{name: "chacha20Encrypt.fingerprint", want: "cd471d94b3c60bc690ca8e7e1337038b320eaafa6436aeb32e42be4844a8ebee", got: func() string { return fingerprint.Of(variant.ChaCha20Ciphertext()) }, digest: true, extended: true},
	{name: "chacha20Encrypt.roundTrip", want: "true", got: func() string { return openRoundTrip(aead.ChaCha20Poly1305, variant.ChaCha20Ciphertext()) }, extended: true},
	{name: "jsonQuery.record999", want: "Item999=999", got: func() string { n, v := variant.QueryRecord(999); return n + "=" + strconv.FormatInt(v, 10) }, extended: true},
}

// Verifier runs the parity checks.
type Verifier struct {
	logger logger.Logger
}

// NewVerifier creates a Verifier. A nil logger uses the default.
func NewVerifier(l logger.Logger) *Verifier {
	if l == nil {
		l = logger.Default()
	}
	return &Verifier{logger: l}
}

// Verify runs every core check, plus the library variant checks when
// extended is set. Cancellation is checked between checks.
func (v *Verifier) Verify(ctx context.Context, extended bool) (*domain.Verification, error) {
	out := &domain.Verification{Passed: true}

	for _, c := range referenceChecks {
		if c.extended && !extended {
			continue
		}
		if err := ctx.Err(); err != nil {
			return out, domain.ErrRunCancelled.WithCause(err)
		}

		got := c.got()
		pass := got == c.want
		if c.digest {
			pass = fingerprint.Equal(got, c.want)
		}
		out.Checks = append(out.Checks, domain.Check{Name: c.name, Want: c.want, Got: got, Pass: pass, Digest: c.digest})
		if !pass {
			out.Passed = false
			v.logger.WithContext(ctx).Warn("parity check failed", "check", c.name, "want", c.want, "got", got)
		}
	}

	v.logger.WithContext(ctx).Info("parity verification finished",
		"checks", len(out.Checks),
		"passed", out.Passed)
	return out, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func lcgUints(seed uint32, n int) string {
	g := lcg.New(seed)
	parts := make([]string, n)
	for i := range parts {
		parts[i] = strconv.FormatUint(uint64(g.Uint32()), 10)
	}
	return strings.Join(parts, ",")
}

func lcgFloats(seed uint32, n int) string {
	g := lcg.New(seed)
	parts := make([]string, n)
	for i := range parts {
		parts[i] = formatFloat(g.Float64())
	}
	return strings.Join(parts, ",")
}

func primeCount() string {
	n := 0
	for _, p := range kernel.PrimeTable() {
		if p {
			n++
		}
	}
	return strconv.Itoa(n)
}

func nbodyAtRest() string {
	pos, vel := kernel.NBodyState()
	for i := range pos {
		if pos[i] != 0 || vel[i] != 0 {
			return "false"
		}
	}
	return "true"
}

func quickSortOK() string {
	got := kernel.QuickSorted()
	want := kernel.QuickSortInput()
	slices.Sort(want)
	return strconv.FormatBool(slices.Equal(got, want))
}

func bubbleSortOK() string {
	got := kernel.BubbleSorted()
	want := kernel.BubbleSortInput()
	slices.Sort(want)
	return strconv.FormatBool(slices.Equal(got, want))
}

func gzipRoundTrip() string {
	zr, err := gzip.NewReader(bytes.NewReader(kernel.Compressed()))
	if err != nil {
		return "false"
	}
	defer zr.Close()

	plain, err := io.ReadAll(zr)
	if err != nil {
		return "false"
	}
	return strconv.FormatBool(bytes.Equal(plain, kernel.Payload()))
}

// openRoundTrip opens a sealed payload under the kernel key and the
// all-zero nonce and reports whether the payload comes back intact.
func openRoundTrip(alg aead.Algorithm, sealed []byte) string {
	c, err := aead.New(alg, kernel.CipherKey())
	if err != nil {
		return "false"
	}
	plain, err := c.OpenFixed(nil, make([]byte, c.NonceSize()), sealed, nil)
	if err != nil {
		return "false"
	}
	return strconv.FormatBool(bytes.Equal(plain, kernel.Payload()))
}
