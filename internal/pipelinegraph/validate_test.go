package pipelinegraph

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/specialistvlad/pipelinedef/internal/ctxlog"
	"github.com/specialistvlad/pipelinedef/internal/modelmanager"
	"github.com/specialistvlad/pipelinedef/internal/modelmanager/mocks"
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
	instance := modelmanager.NewMemoryInstance("resnet", 1,
		map[string]pipelinemodel.TensorInfo{"data": {Shape: []int64{1, 3, 224, 224}, Precision: pipelinemodel.FP32}},
		map[string]pipelinemodel.TensorInfo{"prob": {Shape: []int64{1, 1000}, Precision: pipelinemodel.FP32}},
		pipelinemodel.ModelConfig{BatchingMode: pipelinemodel.Fixed},
	)
	model.AddVersion(instance)
	mgr.Register(model)
	return mgr
}

func minimalValidTopology() ([]pipelinemodel.NodeInfo, pipelinemodel.ConnectionMap) {
	nodeInfos := []pipelinemodel.NodeInfo{
		{NodeName: "entry", Kind: pipelinemodel.Entry, OutputNameAliases: map[string]string{"image": "image"}},
		{NodeName: "resnet", Kind: pipelinemodel.DL, ModelName: "resnet", ModelVersion: 1,
			OutputNameAliases: map[string]string{"probability": "prob"}},
		{NodeName: "exit", Kind: pipelinemodel.Exit},
	}
	connections := pipelinemodel.ConnectionMap{
		"entry": {},
		"resnet": {
			"entry": pipelinemodel.MappingList{{Alias: "image", RealName: "data"}},
		},
		"exit": {
			"resnet": pipelinemodel.MappingList{{Alias: "probability", RealName: "probability"}},
		},
	}
	return nodeInfos, connections
}

func TestValidateMinimalPipelinePasses(t *testing.T) {
	mgr := resnetManager()
	nodeInfos, connections := minimalValidTopology()

	st := Validate(testContext(), mgr, nodeInfos, connections)
	assert.True(t, st.Ok(), "expected OK, got %v", st)
}

func TestValidateMissingEntryOrExit(t *testing.T) {
	mgr := resnetManager()
	nodeInfos := []pipelinemodel.NodeInfo{
		{NodeName: "resnet", Kind: pipelinemodel.DL, ModelName: "resnet", ModelVersion: 1},
	}
	st := Validate(testContext(), mgr, nodeInfos, pipelinemodel.ConnectionMap{"resnet": {}})
	assert.Equal(t, status.PipelineMissingEntryOrExit, st.Code())
}

func TestValidateDuplicateNodeName(t *testing.T) {
	mgr := resnetManager()
	nodeInfos := []pipelinemodel.NodeInfo{
		{NodeName: "entry", Kind: pipelinemodel.Entry},
		{NodeName: "entry", Kind: pipelinemodel.Exit},
	}
	st := Validate(testContext(), mgr, nodeInfos, pipelinemodel.ConnectionMap{})
	assert.Equal(t, status.PipelineNodeNameDuplicate, st.Code())
}

func TestValidateMultipleEntryNodes(t *testing.T) {
	mgr := resnetManager()
	nodeInfos := []pipelinemodel.NodeInfo{
		{NodeName: "entry1", Kind: pipelinemodel.Entry},
		{NodeName: "entry2", Kind: pipelinemodel.Entry},
		{NodeName: "exit", Kind: pipelinemodel.Exit},
	}
	st := Validate(testContext(), mgr, nodeInfos, pipelinemodel.ConnectionMap{})
	assert.Equal(t, status.PipelineMultipleEntryNodes, st.Code())
}

func TestValidateMissingModel(t *testing.T) {
	mgr := modelmanager.NewMemoryManager() // no models registered
	nodeInfos, connections := minimalValidTopology()

	st := Validate(testContext(), mgr, nodeInfos, connections)
	assert.Equal(t, status.PipelineNodeReferingToMissingModel, st.Code())
}

func TestValidateDynamicBatchingForbidden(t *testing.T) {
	mgr := modelmanager.NewMemoryManager()
	model := modelmanager.NewMemoryModel("resnet", 1)
	instance := modelmanager.NewMemoryInstance("resnet", 1,
		map[string]pipelinemodel.TensorInfo{"data": {Shape: []int64{1, 3, 224, 224}, Precision: pipelinemodel.FP32}},
		map[string]pipelinemodel.TensorInfo{"prob": {Shape: []int64{1, 1000}, Precision: pipelinemodel.FP32}},
		pipelinemodel.ModelConfig{BatchingMode: pipelinemodel.Auto},
	)
	model.AddVersion(instance)
	mgr.Register(model)

	nodeInfos, connections := minimalValidTopology()
	st := Validate(testContext(), mgr, nodeInfos, connections)
	assert.Equal(t, status.ForbiddenModelDynamicParameter, st.Code())
}

func TestValidateShapeMismatch(t *testing.T) {
	mgr := modelmanager.NewMemoryManager()
	upstream := modelmanager.NewMemoryModel("featurizer", 1)
	upstream.AddVersion(modelmanager.NewMemoryInstance("featurizer", 1,
		map[string]pipelinemodel.TensorInfo{"data": {Shape: []int64{1, 3, 224, 224}, Precision: pipelinemodel.FP32}},
		map[string]pipelinemodel.TensorInfo{"features": {Shape: []int64{1, 512}, Precision: pipelinemodel.FP32}},
		pipelinemodel.ModelConfig{BatchingMode: pipelinemodel.Fixed}))
	mgr.Register(upstream)

	downstream := modelmanager.NewMemoryModel("classifier", 1)
	downstream.AddVersion(modelmanager.NewMemoryInstance("classifier", 1,
		map[string]pipelinemodel.TensorInfo{"features": {Shape: []int64{1, 256}, Precision: pipelinemodel.FP32}}, // mismatched shape
		map[string]pipelinemodel.TensorInfo{"class": {Shape: []int64{1, 10}, Precision: pipelinemodel.FP32}},
		pipelinemodel.ModelConfig{BatchingMode: pipelinemodel.Fixed}))
	mgr.Register(downstream)

	nodeInfos := []pipelinemodel.NodeInfo{
		{NodeName: "entry", Kind: pipelinemodel.Entry, OutputNameAliases: map[string]string{"image": "image"}},
		{NodeName: "featurizer", Kind: pipelinemodel.DL, ModelName: "featurizer", ModelVersion: 1,
			OutputNameAliases: map[string]string{"features": "features"}},
		{NodeName: "classifier", Kind: pipelinemodel.DL, ModelName: "classifier", ModelVersion: 1,
			OutputNameAliases: map[string]string{"class": "class"}},
		{NodeName: "exit", Kind: pipelinemodel.Exit},
	}
	connections := pipelinemodel.ConnectionMap{
		"entry": {},
		"featurizer": {
			"entry": pipelinemodel.MappingList{{Alias: "image", RealName: "data"}},
		},
		"classifier": {
			"featurizer": pipelinemodel.MappingList{{Alias: "features", RealName: "features"}},
		},
		"exit": {
			"classifier": pipelinemodel.MappingList{{Alias: "class", RealName: "class"}},
		},
	}

	st := Validate(testContext(), mgr, nodeInfos, connections)
	assert.Equal(t, status.InvalidShape, st.Code())
}

func TestValidateOrphanNodeUnconnected(t *testing.T) {
	mgr := resnetManager()
	standalone := modelmanager.NewMemoryModel("standalone", 1)
	standalone.AddVersion(modelmanager.NewMemoryInstance("standalone", 1, nil, nil,
		pipelinemodel.ModelConfig{BatchingMode: pipelinemodel.Fixed}))
	mgr.Register(standalone)

	nodeInfos, connections := minimalValidTopology()
	nodeInfos = append(nodeInfos, pipelinemodel.NodeInfo{
		NodeName: "orphan", Kind: pipelinemodel.DL, ModelName: "standalone", ModelVersion: 1,
	})
	connections["orphan"] = map[string]pipelinemodel.MappingList{}

	st := Validate(testContext(), mgr, nodeInfos, connections)
	require.False(t, st.Ok())
	assert.Equal(t, status.PipelineContainsUnconnectedNodes, st.Code())
}

func TestValidateCycleDetected(t *testing.T) {
	mgr := modelmanager.NewMemoryManager()
	loopModel := modelmanager.NewMemoryModel("loopmodel", 1)
	loopModel.AddVersion(modelmanager.NewMemoryInstance("loopmodel", 1,
		map[string]pipelinemodel.TensorInfo{"data": {Shape: []int64{1, 10}, Precision: pipelinemodel.FP32}},
		map[string]pipelinemodel.TensorInfo{"feat": {Shape: []int64{1, 10}, Precision: pipelinemodel.FP32}},
		pipelinemodel.ModelConfig{BatchingMode: pipelinemodel.Fixed}))
	mgr.Register(loopModel)

	nodeInfos := []pipelinemodel.NodeInfo{
		{NodeName: "entry", Kind: pipelinemodel.Entry},
		{NodeName: "a", Kind: pipelinemodel.DL, ModelName: "loopmodel", ModelVersion: 1,
			OutputNameAliases: map[string]string{"feature": "feat"}},
		{NodeName: "b", Kind: pipelinemodel.DL, ModelName: "loopmodel", ModelVersion: 1,
			OutputNameAliases: map[string]string{"feature": "feat"}},
		{NodeName: "exit", Kind: pipelinemodel.Exit},
	}
	connections := pipelinemodel.ConnectionMap{
		"entry": {},
		"a": {
			"b": pipelinemodel.MappingList{{Alias: "feature", RealName: "data"}},
		},
		"b": {
			"a": pipelinemodel.MappingList{{Alias: "feature", RealName: "data"}},
		},
		"exit": {
			"a": pipelinemodel.MappingList{{Alias: "feature", RealName: "feature"}},
		},
	}

	st := Validate(testContext(), mgr, nodeInfos, connections)
	assert.Equal(t, status.PipelineCycleFound, st.Code())
}

// TestValidateDedupesConcurrentModelLookups asserts prefetchModelInstances
// resolves one distinct (name, version) reference exactly once even when
// several DL nodes in the topology share it. A MemoryManager fake has no
// way to express this: it would happily serve the same lookup any number
// of times without revealing whether the caller deduplicated. A mock with
// an exact call-count expectation is the only way to observe it.
func TestValidateDedupesConcurrentModelLookups(t *testing.T) {
	ctrl := gomock.NewController(t)
	manager := mocks.NewMockManager(ctrl)
	instance := mocks.NewMockModelInstance(ctrl)
	guard := mocks.NewMockUnloadGuard(ctrl)

	manager.EXPECT().FindModelInstance("resnet", uint64(1)).Return(instance, true).Times(1)
	instance.EXPECT().WaitForLoaded(gomock.Any(), gomock.Any()).Return(guard, nil).Times(1)
	guard.EXPECT().Release().Times(1)
	instance.EXPECT().GetModelConfig().Return(pipelinemodel.ModelConfig{BatchingMode: pipelinemodel.Fixed}).AnyTimes()
	instance.EXPECT().GetInputsInfo().Return(map[string]pipelinemodel.TensorInfo{
		"data": {Shape: []int64{1, 3, 224, 224}, Precision: pipelinemodel.FP32},
	}).AnyTimes()
	instance.EXPECT().GetOutputsInfo().Return(map[string]pipelinemodel.TensorInfo{
		"prob": {Shape: []int64{1, 1000}, Precision: pipelinemodel.FP32},
	}).AnyTimes()

	nodeInfos := []pipelinemodel.NodeInfo{
		{NodeName: "entry", Kind: pipelinemodel.Entry, OutputNameAliases: map[string]string{"imgA": "imgA", "imgB": "imgB"}},
		{NodeName: "a", Kind: pipelinemodel.DL, ModelName: "resnet", ModelVersion: 1,
			OutputNameAliases: map[string]string{"outA": "prob"}},
		{NodeName: "b", Kind: pipelinemodel.DL, ModelName: "resnet", ModelVersion: 1,
			OutputNameAliases: map[string]string{"outB": "prob"}},
		{NodeName: "exit", Kind: pipelinemodel.Exit},
	}
	connections := pipelinemodel.ConnectionMap{
		"entry": {},
		"a":     {"entry": pipelinemodel.MappingList{{Alias: "imgA", RealName: "data"}}},
		"b":     {"entry": pipelinemodel.MappingList{{Alias: "imgB", RealName: "data"}}},
		"exit": {
			"a": pipelinemodel.MappingList{{Alias: "outA", RealName: "outA"}},
			"b": pipelinemodel.MappingList{{Alias: "outB", RealName: "outB"}},
		},
	}

	st := Validate(testContext(), manager, nodeInfos, connections)
	assert.True(t, st.Ok(), "expected OK, got %v", st)
}
