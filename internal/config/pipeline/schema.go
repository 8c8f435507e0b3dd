package pipeline

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes every top-level "pipeline" block found in an HCL file.
type fileRoot struct {
	Pipelines []*pipelineBlock `hcl:"pipeline,block"`
	Remain    hcl.Body         `hcl:",remain"`
}

// pipelineBlock is one `pipeline "name" { ... }` document.
type pipelineBlock struct {
	Name   string       `hcl:"name,label"`
	Nodes  []*nodeBlock `hcl:"node,block"`
	Remain hcl.Body     `hcl:",remain"`
}

// nodeBlock is one `node "name" { ... }` declaration. Kind selects which of
// the DL-only fields (Model, Version) apply; ENTRY and EXIT nodes leave
// them unset.
type nodeBlock struct {
	Name    string         `hcl:"name,label"`
	Kind    string         `hcl:"kind"`
	Model   *string        `hcl:"model"`
	Version *uint64        `hcl:"version"`
	Outputs []*outputBlock `hcl:"output,block"`
	Inputs  []*inputBlock  `hcl:"input,block"`
	Remain  hcl.Body       `hcl:",remain"`
}

// outputBlock declares one alias a node exposes to its dependants. RealName
// defaults to the alias itself when omitted, which covers the ENTRY node's
// pipeline-input aliases (where alias and real name always coincide).
type outputBlock struct {
	Alias    string  `hcl:"alias,label"`
	RealName *string `hcl:"real_name"`
}

// inputBlock binds one of this node's own inputs to an aliased output on a
// named dependency node. DL nodes use Input as their model's input tensor
// name; EXIT nodes use it only as a label since they have no model inputs
// of their own to bind.
type inputBlock struct {
	Input string `hcl:"input,label"`
	From  string `hcl:"from"`
	Alias string `hcl:"alias"`
}
