package modelcatalog

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/specialistvlad/pipelinedef/internal/modelmanager"
	"github.com/specialistvlad/pipelinedef/internal/pipelinemodel"
)

// Load parses path as a model catalog document and builds a MemoryManager
// populated with one MemoryModel per declared model, each with every
// declared version registered as a MemoryInstance.
func Load(path string) (*modelmanager.MemoryManager, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %w", path, diags)
	}

	var root catalogRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("decoding %s: %w", path, diags)
	}

	mgr := modelmanager.NewMemoryManager()
	for _, m := range root.Models {
		model := modelmanager.NewMemoryModel(m.Name, m.DefaultVersion)
		for _, v := range m.Versions {
			instance, err := decodeVersion(m.Name, v)
			if err != nil {
				return nil, err
			}
			model.AddVersion(instance)
		}
		mgr.Register(model)
	}
	return mgr, nil
}

func decodeVersion(modelName string, v *versionBlock) (*modelmanager.MemoryInstance, error) {
	number, err := strconv.ParseUint(v.Number, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("model %q: invalid version label %q: %w", modelName, v.Number, err)
	}

	batching, err := pipelinemodel.ParseShapeMode(v.Batching)
	if err != nil {
		return nil, fmt.Errorf("model %q version %d: %w", modelName, number, err)
	}

	inputs, err := decodeTensors(v.Inputs)
	if err != nil {
		return nil, fmt.Errorf("model %q version %d: %w", modelName, number, err)
	}
	outputs, err := decodeTensors(v.Outputs)
	if err != nil {
		return nil, fmt.Errorf("model %q version %d: %w", modelName, number, err)
	}
	shapes, err := decodeShapeModes(v.Inputs)
	if err != nil {
		return nil, fmt.Errorf("model %q version %d: %w", modelName, number, err)
	}

	return modelmanager.NewMemoryInstance(modelName, number, inputs, outputs,
		pipelinemodel.ModelConfig{BatchingMode: batching, Shapes: shapes}), nil
}

// decodeShapeModes builds the per-input ShapeMode set an instance's
// ModelConfig carries; a tensor block that omits shape_mode defaults to
// Fixed, mirroring the CLI's own well-behaved-model assumption.
func decodeShapeModes(blocks []*tensorBlock) (map[string]pipelinemodel.ShapeConfig, error) {
	if len(blocks) == 0 {
		return nil, nil
	}
	out := make(map[string]pipelinemodel.ShapeConfig, len(blocks))
	for _, b := range blocks {
		modeStr := "FIXED"
		if b.ShapeMode != nil {
			modeStr = *b.ShapeMode
		}
		mode, err := pipelinemodel.ParseShapeMode(modeStr)
		if err != nil {
			return nil, fmt.Errorf("tensor %q: %w", b.Name, err)
		}
		out[b.Name] = pipelinemodel.ShapeConfig{ShapeMode: mode}
	}
	return out, nil
}

func decodeTensors(blocks []*tensorBlock) (map[string]pipelinemodel.TensorInfo, error) {
	if len(blocks) == 0 {
		return nil, nil
	}
	out := make(map[string]pipelinemodel.TensorInfo, len(blocks))
	for _, b := range blocks {
		listVal, err := convert.Convert(b.Shape, cty.List(cty.Number))
		if err != nil {
			return nil, fmt.Errorf("tensor %q: invalid shape: %w", b.Name, err)
		}
		var shape []int64
		if err := gocty.FromCtyValue(listVal, &shape); err != nil {
			return nil, fmt.Errorf("tensor %q: invalid shape: %w", b.Name, err)
		}
		precision, err := pipelinemodel.ParsePrecision(b.Precision)
		if err != nil {
			return nil, fmt.Errorf("tensor %q: %w", b.Name, err)
		}
		out[b.Name] = pipelinemodel.TensorInfo{Shape: shape, Precision: precision}
	}
	return out, nil
}
