package modelcatalog

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// catalogRoot decodes every top-level "model" block in a catalog file.
type catalogRoot struct {
	Models []*modelBlock `hcl:"model,block"`
	Remain hcl.Body      `hcl:",remain"`
}

// modelBlock is one `model "name" { ... }` declaration: a name shared by
// every version, plus the version that FindModelInstance resolves to when
// a pipeline node leaves its model version unset.
type modelBlock struct {
	Name           string          `hcl:"name,label"`
	DefaultVersion uint64          `hcl:"default_version"`
	Versions       []*versionBlock `hcl:"version,block"`
	Remain         hcl.Body        `hcl:",remain"`
}

// versionBlock is one `version "N" { ... }` declaration describing the
// tensors and batching behavior of a single model version.
type versionBlock struct {
	Number   string         `hcl:"number,label"`
	Batching string         `hcl:"batching"`
	Inputs   []*tensorBlock `hcl:"input,block"`
	Outputs  []*tensorBlock `hcl:"output,block"`
	Remain   hcl.Body       `hcl:",remain"`
}

// tensorBlock declares one tensor's shape and precision. Shape is decoded
// as a raw cty.Value rather than a typed Go field because HCL numeric list
// literals (e.g. "[1, 3, 224, 224]") arrive as a tuple of cty.Number; the
// loader converts that tuple to a list of numbers and then uses
// gocty.FromCtyValue to turn the list into a fixed []int64.
//
// ShapeMode is optional and defaults to "FIXED" when omitted: most tensor
// declarations in a catalog describe a static shape, and only inputs a
// model reshapes per request need to spell out "AUTO".
type tensorBlock struct {
	Name      string    `hcl:"name,label"`
	Shape     cty.Value `hcl:"shape"`
	Precision string    `hcl:"precision"`
	ShapeMode *string   `hcl:"shape_mode,optional"`
}
