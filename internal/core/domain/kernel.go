package domain

import (
	"fmt"
	"strconv"
)

// Category groups kernels by the subsystem they stress.
type Category string

const (
	CategoryNumeric  Category = "numeric"
	CategoryCrypto   Category = "crypto"
	CategoryData     Category = "data"
	CategoryGraphics Category = "graphics"
	CategorySystem   Category = "system"
)

// ReturnKind describes the scalar a kernel returns, if any.
type ReturnKind string

const (
	ReturnNone  ReturnKind = "none"
	ReturnInt   ReturnKind = "int"
	ReturnFloat ReturnKind = "float"
)

// Kernel is a catalogue entry.
type Kernel struct {
	// Name is the stable identifier, e.g. "matrixMultiply".
	Name string `json:"name" yaml:"name"`

	Category    Category   `json:"category" yaml:"category"`
	Description string     `json:"description" yaml:"description"`
	Returns     ReturnKind `json:"returns" yaml:"returns"`

	// Ops is the analytic work count per call, measured in OpsUnit.
	Ops     int64  `json:"ops" yaml:"ops"`
	OpsUnit string `json:"ops_unit" yaml:"ops_unit"`

	// Extended marks library variants outside the parity catalogue.
	Extended bool `json:"extended" yaml:"extended"`

	// Run invokes a kernel that returns nothing. When set it is timed
	// directly and Call is ignored.
	Run func() `json:"-" yaml:"-"`

	// Call invokes the kernel once and returns its scalar, or nil.
	Call func() any `json:"-" yaml:"-"`
}

// Invoke calls the kernel once through whichever entry point it has.
func (k Kernel) Invoke() any {
	if k.Run != nil {
		k.Run()
		return nil
	}
	return k.Call()
}

// FormatValue renders a kernel's returned scalar for storage and display.
// Floats use the shortest representation that round-trips.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
