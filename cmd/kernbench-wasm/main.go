//go:build js && wasm

// Command kernbench-wasm exposes every kernel to a JavaScript host. Each
// kernel is registered on the global object as go_<name>, for example
// go_matrixMultiply, and returns its result (a number, or undefined for
// kernels without one).
package main

import (
	"syscall/js"

	"github.com/yndnr/kernbench-go/internal/core/domain"
	"github.com/yndnr/kernbench-go/internal/core/service"
)

func export(k domain.Kernel) js.Func {
	return js.FuncOf(func(js.Value, []js.Value) any {
		switch v := k.Invoke().(type) {
		case int32:
			return int(v)
		case float64:
			return v
		default:
			return js.Undefined()
		}
	})
}

func main() {
	for _, k := range service.NewCatalogue().All() {
		js.Global().Set("go_"+k.Name, export(k))
	}
	js.Global().Set("go_ready", true)

	select {}
}
