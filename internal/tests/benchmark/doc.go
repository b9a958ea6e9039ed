// Package benchmark holds testing.B benchmarks for every kernel and for the
// harness around them.
//
// Run benchmarks with:
//
//	go test -bench=. -benchmem ./internal/tests/benchmark/...
//
// Run only the core kernels:
//
//	go test -bench=BenchmarkKernels/core -benchtime=20x ./internal/tests/benchmark/...
//
// Compare results:
//
//	go test -bench=. -count=5 ./internal/tests/benchmark/... | tee new.txt
//	benchstat old.txt new.txt
package benchmark
