// Package tensor provides the column-major tensors produced by integral assembly.
package tensor

// DType is a constraint for supported tensor data types.
type DType interface {
	float64 | complex128
}

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors.
const (
	Float64 DataType = iota
	Complex128
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float64:
		return 8
	case Complex128:
		return 16
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float64:
		return "float64"
	case Complex128:
		return "complex128"
	default:
		return "unknown"
	}
}

// DataTypeOf returns the DataType of T.
func DataTypeOf[T DType]() DataType {
	var dummy T
	switch any(dummy).(type) {
	case complex128:
		return Complex128
	default:
		return Float64
	}
}
