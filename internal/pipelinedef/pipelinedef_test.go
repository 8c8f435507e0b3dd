package pipelinedef

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/pipelinedef/internal/ctxlog"
	"github.com/specialistvlad/pipelinedef/internal/lifecycle"
	"github.com/specialistvlad/pipelinedef/internal/modelmanager"
	"github.com/specialistvlad/pipelinedef/internal/pipelinemodel"
	"github.com/specialistvlad/pipelinedef/internal/status"
)

func testContext() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}

func resnetManager() *modelmanager.MemoryManager {
	mgr := modelmanager.NewMemoryManager()
	model := modelmanager.NewMemoryModel("resnet", 1)
	model.AddVersion(modelmanager.NewMemoryInstance("resnet", 1,
		map[string]pipelinemodel.TensorInfo{"data": {Shape: []int64{1, 3, 224, 224}, Precision: pipelinemodel.FP32}},
		map[string]pipelinemodel.TensorInfo{"prob": {Shape: []int64{1, 1000}, Precision: pipelinemodel.FP32}},
		pipelinemodel.ModelConfig{BatchingMode: pipelinemodel.Fixed}))
	mgr.Register(model)
	return mgr
}

func minimalTopology() ([]pipelinemodel.NodeInfo, pipelinemodel.ConnectionMap) {
	nodeInfos := []pipelinemodel.NodeInfo{
		{NodeName: "entry", Kind: pipelinemodel.Entry, OutputNameAliases: map[string]string{"image": "image"}},
		{NodeName: "resnet", Kind: pipelinemodel.DL, ModelName: "resnet", ModelVersion: 1,
			OutputNameAliases: map[string]string{"probability": "prob"}},
		{NodeName: "exit", Kind: pipelinemodel.Exit},
	}
	connections := pipelinemodel.ConnectionMap{
		"entry":  {},
		"resnet": {"entry": pipelinemodel.MappingList{{Alias: "image", RealName: "data"}}},
		"exit":   {"resnet": pipelinemodel.MappingList{{Alias: "probability", RealName: "probability"}}},
	}
	return nodeInfos, connections
}

func TestReloadSucceedsAndBecomesAvailable(t *testing.T) {
	mgr := resnetManager()
	def := New("infer", mgr)
	nodeInfos, connections := minimalTopology()

	st := def.Reload(testContext(), nodeInfos, connections)
	require.True(t, st.Ok(), "expected OK, got %v", st)
	assert.Equal(t, lifecycle.Available, def.State())
}

func TestReloadFailsValidationStaysLoading(t *testing.T) {
	mgr := modelmanager.NewMemoryManager() // no models registered
	def := New("infer", mgr)
	nodeInfos, connections := minimalTopology()

	st := def.Reload(testContext(), nodeInfos, connections)
	assert.False(t, st.Ok())
	assert.Equal(t, lifecycle.Loading, def.State())
}

func TestCreateBeforeReloadTimesOut(t *testing.T) {
	mgr := resnetManager()
	def := New("infer", mgr)

	p, release, st := def.Create(testContext(), 10*time.Millisecond)
	assert.Nil(t, p)
	assert.Nil(t, release)
	assert.Equal(t, status.ModelVersionNotLoadedYet, st.Code())
}

func TestCreateAfterReloadBuildsPipeline(t *testing.T) {
	mgr := resnetManager()
	def := New("infer", mgr)
	nodeInfos, connections := minimalTopology()
	require.True(t, def.Reload(testContext(), nodeInfos, connections).Ok())

	p, release, st := def.Create(testContext(), time.Second)
	require.True(t, st.Ok())
	require.NotNil(t, p)
	require.NotNil(t, release)
	assert.Equal(t, "infer", p.Name)

	release()
}

func TestGetInputsOutputsInfoAfterReload(t *testing.T) {
	mgr := resnetManager()
	def := New("infer", mgr)
	nodeInfos, connections := minimalTopology()
	require.True(t, def.Reload(testContext(), nodeInfos, connections).Ok())

	inputs, st := def.GetInputsInfo(testContext(), time.Second)
	require.True(t, st.Ok())
	assert.Contains(t, inputs, "image")

	outputs, st := def.GetOutputsInfo(testContext(), time.Second)
	require.True(t, st.Ok())
	assert.Contains(t, outputs, "probability")
}

func TestRetireTransitionsToRetiredAndRejectsFurtherCreate(t *testing.T) {
	mgr := resnetManager()
	def := New("infer", mgr)
	nodeInfos, connections := minimalTopology()
	require.True(t, def.Reload(testContext(), nodeInfos, connections).Ok())

	def.Retire(testContext())
	assert.Equal(t, lifecycle.Retired, def.State())

	p, release, st := def.Create(testContext(), 10*time.Millisecond)
	assert.Nil(t, p)
	assert.Nil(t, release)
	assert.Equal(t, status.ModelVersionNotLoadedAnymore, st.Code())
}

func TestOnModelChangeRevalidatesWhileAvailable(t *testing.T) {
	mgr := resnetManager()
	def := New("infer", mgr)
	nodeInfos, connections := minimalTopology()
	require.True(t, def.Reload(testContext(), nodeInfos, connections).Ok())

	require.NotPanics(t, func() {
		def.OnModelChange(testContext(), "resnet", 1)
	})
	assert.Equal(t, lifecycle.Available, def.State())
}

func TestOnModelChangeIgnoredBeforeAvailable(t *testing.T) {
	mgr := resnetManager()
	def := New("infer", mgr)

	require.NotPanics(t, func() {
		def.OnModelChange(testContext(), "resnet", 1)
	})
	assert.Equal(t, lifecycle.Loading, def.State())
}

func TestReloadSubscribesToModelAndReactsToNotify(t *testing.T) {
	mgr := resnetManager()
	def := New("infer", mgr)
	nodeInfos, connections := minimalTopology()
	require.True(t, def.Reload(testContext(), nodeInfos, connections).Ok())

	model, ok := mgr.FindModelByName("resnet")
	require.True(t, ok)
	instance, ok := model.GetModelInstanceByVersion(1)
	require.True(t, ok)

	memInstance, ok := instance.(*modelmanager.MemoryInstance)
	require.True(t, ok)

	require.NotPanics(t, func() {
		memInstance.Notify(testContext())
	})
	assert.Equal(t, lifecycle.Available, def.State())
}
