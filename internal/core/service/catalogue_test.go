package service_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/yndnr/kernbench-go/internal/core/domain"
	"github.com/yndnr/kernbench-go/internal/core/service"
)

func names(ks []domain.Kernel) []string {
	out := make([]string, len(ks))
	for i, k := range ks {
		out[i] = k.Name
	}
	return out
}

var _ = Describe("Catalogue", func() {
	var c *service.Catalogue

	BeforeEach(func() {
		c = service.NewCatalogue()
	})

	It("lists the core kernels in execution order", func() {
		Expect(names(c.Core())).To(Equal([]string{
			"matrixMultiply", "primeSieve", "fibonacci", "monteCarloPi",
			"nBody", "mandelbrot", "sha256", "aesEncrypt", "jsonParse",
			"quickSort", "bubbleSort", "rayTrace", "compression",
		}))
	})

	It("marks library variants as extended", func() {
		ext := c.Extended()
		Expect(ext).To(HaveLen(7))
		for _, k := range ext {
			Expect(k.Extended).To(BeTrue(), k.Name)
			Expect(k.Returns).To(Equal(domain.ReturnNone), k.Name)
		}
		for _, k := range c.Core() {
			Expect(k.Extended).To(BeFalse(), k.Name)
		}
	})

	It("declares value-returning kernels", func() {
		returning := map[string]domain.ReturnKind{}
		for _, k := range c.Core() {
			if k.Returns != domain.ReturnNone {
				returning[k.Name] = k.Returns
			}
		}
		Expect(returning).To(Equal(map[string]domain.ReturnKind{
			"fibonacci":    domain.ReturnInt,
			"monteCarloPi": domain.ReturnFloat,
			"rayTrace":     domain.ReturnInt,
		}))
	})

	It("gives every kernel an op count", func() {
		for _, k := range c.All() {
			Expect(k.Ops).To(BeNumerically(">", 0), k.Name)
			Expect(k.OpsUnit).NotTo(BeEmpty(), k.Name)
			if k.Returns == domain.ReturnNone {
				Expect(k.Run).NotTo(BeNil(), k.Name)
				Expect(k.Call).To(BeNil(), k.Name)
			} else {
				Expect(k.Call).NotTo(BeNil(), k.Name)
			}
		}
	})

	It("looks kernels up by name", func() {
		k, err := c.Lookup("rayTrace")
		Expect(err).NotTo(HaveOccurred())
		Expect(k.Category).To(Equal(domain.CategoryGraphics))

		_, err = c.Lookup("lz4Compression")
		Expect(err).NotTo(HaveOccurred())

		_, err = c.Lookup("RayTrace")
		Expect(err).To(MatchError(domain.ErrKernelNotFound))
	})

	It("selects kernels per suite", func() {
		Expect(c.Suite(domain.SuiteCore)).To(HaveLen(13))
		Expect(c.Suite(domain.SuiteBeast)).To(HaveLen(13))
		Expect(c.Suite(domain.SuiteExtended)).To(HaveLen(7))
		Expect(names(c.Suite(domain.SuiteAll))[13]).To(Equal("chacha20Encrypt"))
	})

	It("returns copies", func() {
		core := c.Core()
		core[0].Name = "changed"
		Expect(c.Core()[0].Name).To(Equal("matrixMultiply"))
	})

	It("returns the documented values from value kernels", func() {
		fib, _ := c.Lookup("fibonacci")
		Expect(domain.FormatValue(fib.Call())).To(Equal("832040"))

		rt, _ := c.Lookup("rayTrace")
		Expect(domain.FormatValue(rt.Call())).To(Equal("5013"))
	})
})
