package modelcatalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/pipelinedef/internal/pipelinemodel"
)

const resnetCatalogHCL = `
model "resnet" {
  default_version = 1

  version "1" {
    batching = "FIXED"

    input "data" {
      shape     = [1, 3, 224, 224]
      precision = "FP32"
    }

    output "prob" {
      shape     = [1, 1000]
      precision = "FP32"
    }
  }
}
`

func writeCatalog(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadDecodesModelAndVersion(t *testing.T) {
	path := writeCatalog(t, resnetCatalogHCL)

	mgr, err := Load(path)
	require.NoError(t, err)

	instance, ok := mgr.FindModelInstance("resnet", 0)
	require.True(t, ok)
	assert.Equal(t, uint64(1), instance.Version())

	inputs := instance.GetInputsInfo()
	require.Contains(t, inputs, "data")
	assert.Equal(t, []int64{1, 3, 224, 224}, inputs["data"].Shape)
	assert.Equal(t, pipelinemodel.FP32, inputs["data"].Precision)

	assert.False(t, instance.GetModelConfig().HasDynamicParameter())
}

func TestLoadDecodesPerInputDynamicShape(t *testing.T) {
	path := writeCatalog(t, `
model "resnet" {
  default_version = 1

  version "1" {
    batching = "FIXED"

    input "data" {
      shape      = [1, 3, 224, 224]
      precision  = "FP32"
      shape_mode = "AUTO"
    }

    output "prob" {
      shape     = [1, 1000]
      precision = "FP32"
    }
  }
}
`)

	mgr, err := Load(path)
	require.NoError(t, err)

	instance, ok := mgr.FindModelInstance("resnet", 0)
	require.True(t, ok)
	assert.True(t, instance.GetModelConfig().HasDynamicParameter())
}

func TestLoadRejectsUnknownBatchingMode(t *testing.T) {
	path := writeCatalog(t, `
model "broken" {
  default_version = 1

  version "1" {
    batching = "BOGUS"
  }
}
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsUnknownPrecision(t *testing.T) {
	path := writeCatalog(t, `
model "broken" {
  default_version = 1

  version "1" {
    batching = "FIXED"

    input "data" {
      shape     = [1]
      precision = "BOGUS"
    }
  }
}
`)

	_, err := Load(path)
	assert.Error(t, err)
}
