package pipelinemodel

import "fmt"

// Precision is the numeric representation of a tensor's elements. This is a
// small, closed enum: the subsystem does not marshal tensors, it only
// compares precision tags for equality across a connected edge.
type Precision int

const (
	PrecisionUnspecified Precision = iota
	FP32
	FP16
	INT64
	INT32
	INT8
	UINT8
	BOOL
)

func (p Precision) String() string {
	switch p {
	case FP32:
		return "FP32"
	case FP16:
		return "FP16"
	case INT64:
		return "INT64"
	case INT32:
		return "INT32"
	case INT8:
		return "INT8"
	case UINT8:
		return "UINT8"
	case BOOL:
		return "BOOL"
	default:
		return "UNSPECIFIED"
	}
}

// ParsePrecision parses one of the Precision string tags, returning an
// error for anything else. "UNSPECIFIED" is accepted and maps back to
// PrecisionUnspecified.
func ParsePrecision(s string) (Precision, error) {
	switch s {
	case "FP32":
		return FP32, nil
	case "FP16":
		return FP16, nil
	case "INT64":
		return INT64, nil
	case "INT32":
		return INT32, nil
	case "INT8":
		return INT8, nil
	case "UINT8":
		return UINT8, nil
	case "BOOL":
		return BOOL, nil
	case "UNSPECIFIED":
		return PrecisionUnspecified, nil
	default:
		return 0, fmt.Errorf("unknown precision %q", s)
	}
}

// TensorInfo describes the shape and precision of one model input or
// output. -1 in Shape denotes a dynamic dimension, only legal on models
// that are never referenced by a pipeline.
type TensorInfo struct {
	Shape     []int64
	Precision Precision
}

// UnspecifiedTensorInfo is returned for pipeline inputs/outputs that
// terminate directly at ENTRY/EXIT without passing through a DL node, whose
// shape and precision are therefore unknowable from the graph alone.
func UnspecifiedTensorInfo() TensorInfo {
	return TensorInfo{Precision: PrecisionUnspecified}
}

// Equal reports whether two TensorInfo values have identical shape and
// precision, the comparison required to connect two DL nodes' tensors.
func (t TensorInfo) Equal(other TensorInfo) bool {
	if t.Precision != other.Precision {
		return false
	}
	if len(t.Shape) != len(other.Shape) {
		return false
	}
	for i := range t.Shape {
		if t.Shape[i] != other.Shape[i] {
			return false
		}
	}
	return true
}

// ShapeString renders a shape as "(d0,d1,...)" for error messages.
func ShapeString(shape []int64) string {
	s := "("
	for i, d := range shape {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprintf("%d", d)
	}
	return s + ")"
}

// ShapeMode indicates whether a model input's shape is fixed or resolved
// dynamically at inference time. Dynamic shapes are forbidden for any model
// referenced by a pipeline.
type ShapeMode int

const (
	Fixed ShapeMode = iota
	Auto
)

// ParseShapeMode parses "FIXED" or "AUTO", returning an error for anything
// else.
func ParseShapeMode(s string) (ShapeMode, error) {
	switch s {
	case "FIXED":
		return Fixed, nil
	case "AUTO":
		return Auto, nil
	default:
		return 0, fmt.Errorf("unknown shape mode %q", s)
	}
}

// ShapeConfig holds one model input's shape mode.
type ShapeConfig struct {
	ShapeMode ShapeMode
}

// ModelConfig is the subset of a model instance's configuration this
// subsystem inspects: whether batching or any input shape is dynamic.
type ModelConfig struct {
	BatchingMode ShapeMode
	Shapes       map[string]ShapeConfig
}

// HasDynamicParameter reports whether batching or any declared shape uses
// AUTO mode, the condition that makes a model ineligible for pipeline use.
func (c ModelConfig) HasDynamicParameter() bool {
	if c.BatchingMode == Auto {
		return true
	}
	for _, s := range c.Shapes {
		if s.ShapeMode == Auto {
			return true
		}
	}
	return false
}
