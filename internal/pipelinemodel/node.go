// Package pipelinemodel holds the pure, immutable data that describes a
// pipeline's graph: nodes, connections, and the tensor metadata a model
// exposes. It performs no validation and owns no mutable lifecycle state;
// that belongs to internal/pipelinegraph and internal/lifecycle respectively.
package pipelinemodel

import (
	"github.com/specialistvlad/pipelinedef/internal/status"
)

// Kind tags a NodeInfo's role in the graph. Modeled as a tagged variant,
// not a base type with virtual dispatch: callers switch on Kind rather than
// calling through an interface method set.
type Kind int

const (
	// Entry is the pipeline's unique request source.
	Entry Kind = iota
	// DL is a deep-learning model invocation step.
	DL
	// Exit is the pipeline's unique response sink.
	Exit
)

func (k Kind) String() string {
	switch k {
	case Entry:
		return "ENTRY"
	case DL:
		return "DL"
	case Exit:
		return "EXIT"
	default:
		return "UNKNOWN"
	}
}

// ParseKind parses one of "ENTRY", "DL", "EXIT" (case-sensitive). Anything
// else fails with PipelineNodeWrongKindConfiguration, the status code a
// node's kind token is documented to produce when it isn't one of the
// three recognized values.
func ParseKind(s string) (Kind, status.Status) {
	switch s {
	case "ENTRY":
		return Entry, status.OKStatus
	case "DL":
		return DL, status.OKStatus
	case "EXIT":
		return Exit, status.OKStatus
	default:
		return 0, status.New(status.PipelineNodeWrongKindConfiguration, "unknown node kind %q", s)
	}
}

// NodeInfo is an immutable descriptor of one node in the graph.
//
// For DL nodes, ModelName/ModelVersion/OutputNameAliases are meaningful.
// For Entry nodes, OutputNameAliases enumerates the pipeline's declared
// input names (alias and real name coincide, the map doubles as a set).
// For Exit nodes neither field is used; Exit nodes only consume.
type NodeInfo struct {
	NodeName string
	Kind     Kind

	ModelName    string
	ModelVersion uint64 // 0 means "unspecified / default version"

	// OutputNameAliases maps an externally visible alias to the
	// model-internal output name (DL), or enumerates pipeline inputs (Entry).
	OutputNameAliases map[string]string
}

// HasModelVersion reports whether an explicit (non-default) version was set.
func (n NodeInfo) HasModelVersion() bool {
	return n.ModelVersion != 0
}

// Mapping is one alias->realName pair flowing along an edge.
type Mapping struct {
	Alias    string
	RealName string
}

// MappingList is an ordered sequence of Mapping pairs for a single edge.
// An empty MappingList is a declared edge with no data flow.
type MappingList []Mapping

// ConnectionMap stores edges keyed by dependant, each dependant mapping to
// its dependencies' MappingLists. Edges point from dependant to dependency
// (transposed representation) — this is intentional, see
// internal/pipelinegraph's cycle detector, which is written against this
// orientation directly and must not be "fixed" to the natural direction.
type ConnectionMap map[string]map[string]MappingList
