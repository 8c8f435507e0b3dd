// Package status defines the fixed error vocabulary returned by every
// operation in the pipeline definition subsystem. There are no exceptions
// in control flow: every fallible call returns a Status, and callers check
// Code() or Ok() rather than relying on error wrapping alone.
package status

import "fmt"

// Code is one of the fixed catalog values below. The zero value is OK.
type Code int

const (
	OK Code = iota
	PipelineNodeWrongKindConfiguration
	PipelineMissingEntryOrExit
	PipelineMultipleEntryNodes
	PipelineMultipleExitNodes
	PipelineNodeNameDuplicate
	PipelineNodeReferingToMissingModel
	PipelineNodeReferingToMissingNode
	PipelineNodeReferingToMissingDataSource
	PipelineNodeReferingToMissingModelOutput
	PipelineConnectionToMissingNodeInput
	PipelineNotAllInputsConnected
	PipelineCycleFound
	PipelineContainsUnconnectedNodes
	ForbiddenModelDynamicParameter
	InvalidShape
	InvalidPrecision
	ModelMissing
	ModelVersionNotLoadedYet
	ModelVersionNotLoadedAnymore
	UnknownError
)

var names = map[Code]string{
	OK:                                        "OK",
	PipelineNodeWrongKindConfiguration:        "PIPELINE_NODE_WRONG_KIND_CONFIGURATION",
	PipelineMissingEntryOrExit:                "PIPELINE_MISSING_ENTRY_OR_EXIT",
	PipelineMultipleEntryNodes:                "PIPELINE_MULTIPLE_ENTRY_NODES",
	PipelineMultipleExitNodes:                 "PIPELINE_MULTIPLE_EXIT_NODES",
	PipelineNodeNameDuplicate:                 "PIPELINE_NODE_NAME_DUPLICATE",
	PipelineNodeReferingToMissingModel:        "PIPELINE_NODE_REFERING_TO_MISSING_MODEL",
	PipelineNodeReferingToMissingNode:         "PIPELINE_NODE_REFERING_TO_MISSING_NODE",
	PipelineNodeReferingToMissingDataSource:   "PIPELINE_NODE_REFERING_TO_MISSING_DATA_SOURCE",
	PipelineNodeReferingToMissingModelOutput:  "PIPELINE_NODE_REFERING_TO_MISSING_MODEL_OUTPUT",
	PipelineConnectionToMissingNodeInput:      "PIPELINE_CONNECTION_TO_MISSING_NODE_INPUT",
	PipelineNotAllInputsConnected:             "PIPELINE_NOT_ALL_INPUTS_CONNECTED",
	PipelineCycleFound:                        "PIPELINE_CYCLE_FOUND",
	PipelineContainsUnconnectedNodes:          "PIPELINE_CONTAINS_UNCONNECTED_NODES",
	ForbiddenModelDynamicParameter:             "FORBIDDEN_MODEL_DYNAMIC_PARAMETER",
	InvalidShape:                               "INVALID_SHAPE",
	InvalidPrecision:                           "INVALID_PRECISION",
	ModelMissing:                               "MODEL_MISSING",
	ModelVersionNotLoadedYet:                   "MODEL_VERSION_NOT_LOADED_YET",
	ModelVersionNotLoadedAnymore:                "MODEL_VERSION_NOT_LOADED_ANYMORE",
	UnknownError:                                "UNKNOWN_ERROR",
}

// String returns the catalog name used verbatim by tests, e.g. "PIPELINE_CYCLE_FOUND".
func (c Code) String() string {
	if n, ok := names[c]; ok {
		return n
	}
	return "UNKNOWN_ERROR"
}

// Status pairs a Code with an optional human-readable message and cause.
// It implements error so it can be returned and wrapped like any other Go
// error, but the catalog-sensitive comparisons in this subsystem always go
// through Code(), not errors.Is/As against a sentinel.
type Status struct {
	code    Code
	message string
	cause   error
}

// New builds a Status carrying a formatted message.
func New(code Code, format string, args ...any) Status {
	return Status{code: code, message: fmt.Sprintf(format, args...)}
}

// Of builds a bare Status with no message, for OK or simple sentinel returns.
func Of(code Code) Status {
	return Status{code: code}
}

// Wrap attaches a cause to a Status without losing the original Code.
func Wrap(code Code, cause error, format string, args ...any) Status {
	return Status{code: code, message: fmt.Sprintf(format, args...), cause: cause}
}

// Code returns the status's catalog code.
func (s Status) Code() Code { return s.code }

// Ok reports whether this Status represents success.
func (s Status) Ok() bool { return s.code == OK }

func (s Status) Error() string {
	if s.message == "" {
		return s.code.String()
	}
	if s.cause != nil {
		return fmt.Sprintf("%s: %s: %v", s.code, s.message, s.cause)
	}
	return fmt.Sprintf("%s: %s", s.code, s.message)
}

func (s Status) Unwrap() error { return s.cause }

// OKStatus is the canonical success value.
var OKStatus = Status{code: OK}

// FromError adapts a plain error returned by an external collaborator
// interface (e.g. modelmanager.ModelInstance.WaitForLoaded) into a Status,
// preserving its Code when it already is one.
func FromError(err error) Status {
	if err == nil {
		return OKStatus
	}
	if st, ok := err.(Status); ok {
		return st
	}
	return Wrap(UnknownError, err, "%v", err)
}
