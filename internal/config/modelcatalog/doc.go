// Package modelcatalog decodes a static HCL model catalog into an
// in-memory Manager, letting cmd/pipelinedefctl validate a pipeline
// document offline, without a running Model Manager control plane to
// call over the network. It exists only for that offline workflow: a
// live deployment wires internal/modelmanager/httpclient instead.
package modelcatalog
