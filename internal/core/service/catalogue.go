package service

import (
	"slices"

	"github.com/yndnr/kernbench-go/internal/core/domain"
	"github.com/yndnr/kernbench-go/pkg/kernel"
	"github.com/yndnr/kernbench-go/pkg/kernel/variant"
)

// Catalogue is the ordered kernel table.
type Catalogue struct {
	core     []domain.Kernel
	extended []domain.Kernel
	byName   map[string]domain.Kernel
}

// NewCatalogue returns the 13 core kernels followed by the library variants.
func NewCatalogue() *Catalogue {
	core := []domain.Kernel{
		{Name: "matrixMultiply", Category: domain.CategoryNumeric, Description: "128x128 naive matrix multiply", Returns: domain.ReturnNone, Ops: kernel.OpsMatrixMultiply, OpsUnit: "multiply-adds", Run: kernel.MatrixMultiply},
		{Name: "primeSieve", Category: domain.CategoryNumeric, Description: "Sieve of Eratosthenes to 100000", Returns: domain.ReturnNone, Ops: kernel.OpsPrimeSieve, OpsUnit: "marks", Run: kernel.PrimeSieve},
		{Name: "fibonacci", Category: domain.CategoryNumeric, Description: "recursive F(30)", Returns: domain.ReturnInt, Ops: kernel.OpsFibonacci, OpsUnit: "calls", Call: func() any { return kernel.Fibonacci() }},
		{Name: "monteCarloPi", Category: domain.CategoryNumeric, Description: "1M-point pi estimate, seed 42", Returns: domain.ReturnFloat, Ops: kernel.OpsMonteCarloPi, OpsUnit: "points", Call: func() any { return kernel.MonteCarloPi() }},
		{Name: "nBody", Category: domain.CategoryNumeric, Description: "100 bodies, 1000 Euler steps", Returns: domain.ReturnNone, Ops: kernel.OpsNBody, OpsUnit: "pair forces", Run: kernel.NBody},
		{Name: "mandelbrot", Category: domain.CategoryNumeric, Description: "100x100 escape-time raster", Returns: domain.ReturnNone, Ops: kernel.OpsMandelbrot, OpsUnit: "iterations", Run: kernel.Mandelbrot},
		{Name: "sha256", Category: domain.CategoryCrypto, Description: "SHA-256 of 10KB, 500 times", Returns: domain.ReturnNone, Ops: kernel.OpsSHA256, OpsUnit: "bytes", Run: kernel.SHA256},
		{Name: "aesEncrypt", Category: domain.CategoryCrypto, Description: "AES-256-GCM seal of 10KB, 500 times", Returns: domain.ReturnNone, Ops: kernel.OpsAESEncrypt, OpsUnit: "bytes", Run: kernel.AESEncrypt},
		{Name: "jsonParse", Category: domain.CategoryData, Description: "build 1000-record payload and scan, 100 times", Returns: domain.ReturnNone, Ops: kernel.OpsJSONBuild, OpsUnit: "bytes", Run: kernel.JSONBuild},
		{Name: "quickSort", Category: domain.CategoryData, Description: "Lomuto quicksort of 10000 ints", Returns: domain.ReturnNone, Ops: kernel.OpsQuickSort, OpsUnit: "comparisons", Run: kernel.QuickSort},
		{Name: "bubbleSort", Category: domain.CategoryData, Description: "bubble sort of 1000 floats, seed 999", Returns: domain.ReturnNone, Ops: kernel.OpsBubbleSort, OpsUnit: "comparisons", Run: kernel.BubbleSort},
		{Name: "rayTrace", Category: domain.CategoryGraphics, Description: "100x100 circle coverage count", Returns: domain.ReturnInt, Ops: kernel.OpsRayTrace, OpsUnit: "cells", Call: func() any { return kernel.RayTrace() }},
		{Name: "compression", Category: domain.CategorySystem, Description: "gzip of 10KB, 50 times", Returns: domain.ReturnNone, Ops: kernel.OpsCompression, OpsUnit: "bytes", Run: kernel.Compression},
	}

	extended := []domain.Kernel{
		{Name: "chacha20Encrypt", Category: domain.CategoryCrypto, Description: "ChaCha20-Poly1305 seal of 10KB, 500 times", Ops: kernel.OpsAESEncrypt, OpsUnit: "bytes", Run: variant.ChaCha20Encrypt},
		{Name: "blake2bHash", Category: domain.CategoryCrypto, Description: "BLAKE2b-256 of 10KB, 500 times", Ops: kernel.OpsSHA256, OpsUnit: "bytes", Run: variant.BLAKE2bHash},
		{Name: "sha3Hash", Category: domain.CategoryCrypto, Description: "SHA3-256 of 10KB, 500 times", Ops: kernel.OpsSHA256, OpsUnit: "bytes", Run: variant.SHA3Hash},
		{Name: "zstdCompression", Category: domain.CategorySystem, Description: "zstd of 10KB, 50 times", Ops: kernel.OpsCompression, OpsUnit: "bytes", Run: variant.ZstdCompression},
		{Name: "snappyCompression", Category: domain.CategorySystem, Description: "snappy block of 10KB, 50 times", Ops: kernel.OpsCompression, OpsUnit: "bytes", Run: variant.SnappyCompression},
		{Name: "lz4Compression", Category: domain.CategorySystem, Description: "lz4 block of 10KB, 50 times", Ops: kernel.OpsCompression, OpsUnit: "bytes", Run: variant.LZ4Compression},
		{Name: "jsonQuery", Category: domain.CategoryData, Description: "build payload and gjson count, 100 times", Ops: kernel.OpsJSONBuild, OpsUnit: "bytes", Run: variant.JSONQuery},
	}

	for i := range extended {
		extended[i].Returns = domain.ReturnNone
	}
	return NewCatalogueFrom(core, extended)
}

// NewCatalogueFrom builds a catalogue over caller-supplied kernels. Kernels
// in extended are marked as library variants.
func NewCatalogueFrom(core, extended []domain.Kernel) *Catalogue {
	c := &Catalogue{
		core:     slices.Clone(core),
		extended: slices.Clone(extended),
		byName:   make(map[string]domain.Kernel, len(core)+len(extended)),
	}
	for i := range c.extended {
		c.extended[i].Extended = true
	}
	for _, k := range c.All() {
		c.byName[k.Name] = k
	}
	return c
}

// Core returns the parity kernels in catalogue order.
func (c *Catalogue) Core() []domain.Kernel {
	return append([]domain.Kernel(nil), c.core...)
}

// Extended returns the library variants.
func (c *Catalogue) Extended() []domain.Kernel {
	return append([]domain.Kernel(nil), c.extended...)
}

// All returns core followed by extended.
func (c *Catalogue) All() []domain.Kernel {
	out := make([]domain.Kernel, 0, len(c.core)+len(c.extended))
	out = append(out, c.core...)
	return append(out, c.extended...)
}

// Lookup finds a kernel by name.
func (c *Catalogue) Lookup(name string) (domain.Kernel, error) {
	k, ok := c.byName[name]
	if !ok {
		return domain.Kernel{}, domain.ErrKernelNotFound.WithDetails(name)
	}
	return k, nil
}

// Suite returns the kernels of one pass of s. Beast runs repeat this pass.
func (c *Catalogue) Suite(s domain.Suite) []domain.Kernel {
	switch s {
	case domain.SuiteExtended:
		return c.Extended()
	case domain.SuiteAll:
		return c.All()
	default:
		return c.Core()
	}
}
