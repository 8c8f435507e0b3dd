// Package pipeline decodes HCL pipeline documents into the format-agnostic
// pipelinemodel.NodeInfo/ConnectionMap pair the rest of the subsystem
// operates on. It never talks to the model manager and never validates
// semantics; it only parses structure, the same division of labor the
// rest of the configuration stack keeps between loading and decoding.
package pipeline
