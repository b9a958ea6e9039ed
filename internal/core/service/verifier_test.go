package service_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/yndnr/kernbench-go/internal/core/domain"
	"github.com/yndnr/kernbench-go/internal/core/service"
	"github.com/yndnr/kernbench-go/internal/telemetry/logger"
)

var _ = Describe("Verifier", func() {
	var v *service.Verifier

	BeforeEach(func() {
		v = service.NewVerifier(logger.Discard())
	})

	It("passes every core parity check", func() {
		out, err := v.Verify(context.Background(), false)
		Expect(err).NotTo(HaveOccurred())
		Expect(out.FailedChecks()).To(BeEmpty())
		Expect(out.Passed).To(BeTrue())
		Expect(out.Err()).To(Succeed())

		var checked []string
		for _, c := range out.Checks {
			checked = append(checked, c.Name)
		}
		Expect(checked).To(ContainElements("primeSieve.count", "sha256.digest", "rayTrace", "aesEncrypt.roundTrip"))
		Expect(checked).NotTo(ContainElement("chacha20Encrypt.fingerprint"))
		Expect(checked).NotTo(ContainElement("chacha20Encrypt.roundTrip"))
	})

	It("marks digest checks and pins the mandelbrot total", func() {
		out, err := v.Verify(context.Background(), false)
		Expect(err).NotTo(HaveOccurred())

		byName := make(map[string]domain.Check)
		for _, c := range out.Checks {
			byName[c.Name] = c
		}
		Expect(byName["sha256.digest"].Digest).To(BeTrue())
		Expect(byName["aesEncrypt.fingerprint"].Digest).To(BeTrue())
		Expect(byName["fibonacci"].Digest).To(BeFalse())
		Expect(byName["mandelbrot.iterations"].Want).To(Equal("2224688"))
		Expect(byName["aesEncrypt.roundTrip"].Got).To(Equal("true"))
	})

	It("includes variant checks when extended", func() {
		out, err := v.Verify(context.Background(), true)
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Passed).To(BeTrue())

		var found, roundTrip bool
		for _, c := range out.Checks {
			switch c.Name {
			case "jsonQuery.record999":
				found = true
				Expect(c.Got).To(Equal("Item999=999"))
			case "chacha20Encrypt.roundTrip":
				roundTrip = true
				Expect(c.Pass).To(BeTrue())
			}
		}
		Expect(found).To(BeTrue())
		Expect(roundTrip).To(BeTrue())
	})

	It("stops when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		out, err := v.Verify(ctx, false)
		Expect(err).To(MatchError(domain.ErrRunCancelled))
		Expect(out.Checks).To(BeEmpty())
	})
})
