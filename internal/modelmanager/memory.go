package modelmanager

import (
	"context"
	"sync"
	"time"

	"github.com/specialistvlad/pipelinedef/internal/pipelinemodel"
)

// MemoryInstance is a fixed, always-loaded ModelInstance used by tests and
// by offline CLI validation. It never actually unloads, so WaitForLoaded
// always succeeds immediately and Release is a no-op.
type MemoryInstance struct {
	mu sync.Mutex

	name      string
	version   uint64
	inputs    map[string]pipelinemodel.TensorInfo
	outputs   map[string]pipelinemodel.TensorInfo
	config    pipelinemodel.ModelConfig
	observers map[Observer]struct{}
}

// NewMemoryInstance builds a MemoryInstance with the given schema.
func NewMemoryInstance(name string, version uint64, inputs, outputs map[string]pipelinemodel.TensorInfo, config pipelinemodel.ModelConfig) *MemoryInstance {
	return &MemoryInstance{
		name:      name,
		version:   version,
		inputs:    inputs,
		outputs:   outputs,
		config:    config,
		observers: make(map[Observer]struct{}),
	}
}

func (m *MemoryInstance) Name() string    { return m.name }
func (m *MemoryInstance) Version() uint64 { return m.version }

func (m *MemoryInstance) Subscribe(o Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers[o] = struct{}{}
}

func (m *MemoryInstance) Unsubscribe(o Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.observers, o)
}

// Notify tells every subscribed observer that this instance changed. Tests
// use this to simulate a reload pushed by the model manager.
func (m *MemoryInstance) Notify(ctx context.Context) {
	m.mu.Lock()
	observers := make([]Observer, 0, len(m.observers))
	for o := range m.observers {
		observers = append(observers, o)
	}
	m.mu.Unlock()
	for _, o := range observers {
		o.OnModelChange(ctx, m.name, m.version)
	}
}

type noopGuard struct{}

func (noopGuard) Release() {}

func (m *MemoryInstance) WaitForLoaded(ctx context.Context, timeout time.Duration) (UnloadGuard, error) {
	return noopGuard{}, nil
}

func (m *MemoryInstance) GetInputsInfo() map[string]pipelinemodel.TensorInfo  { return m.inputs }
func (m *MemoryInstance) GetOutputsInfo() map[string]pipelinemodel.TensorInfo { return m.outputs }
func (m *MemoryInstance) GetModelConfig() pipelinemodel.ModelConfig           { return m.config }

// MemoryModel groups MemoryInstance versions under one name.
type MemoryModel struct {
	mu sync.Mutex

	name      string
	versions  map[uint64]*MemoryInstance
	def       uint64
	observers map[Observer]struct{}
}

// NewMemoryModel creates a model whose default version is defaultVersion.
func NewMemoryModel(name string, defaultVersion uint64) *MemoryModel {
	return &MemoryModel{
		name:      name,
		versions:  make(map[uint64]*MemoryInstance),
		def:       defaultVersion,
		observers: make(map[Observer]struct{}),
	}
}

// AddVersion registers an instance under this model.
func (m *MemoryModel) AddVersion(instance *MemoryInstance) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.versions[instance.Version()] = instance
}

func (m *MemoryModel) Name() string { return m.name }

func (m *MemoryModel) GetModelInstanceByVersion(version uint64) (ModelInstance, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if version == 0 {
		version = m.def
	}
	inst, ok := m.versions[version]
	return inst, ok
}

func (m *MemoryModel) Subscribe(o Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers[o] = struct{}{}
}

func (m *MemoryModel) Unsubscribe(o Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.observers, o)
}

// Notify tells every subscriber of the whole model that it changed.
func (m *MemoryModel) Notify(ctx context.Context, version uint64) {
	m.mu.Lock()
	observers := make([]Observer, 0, len(m.observers))
	for o := range m.observers {
		observers = append(observers, o)
	}
	m.mu.Unlock()
	for _, o := range observers {
		o.OnModelChange(ctx, m.name, version)
	}
}

// MemoryManager is a trivial, thread-safe Manager backed by in-process
// maps, composed lookup maps keyed by name and populated up front.
type MemoryManager struct {
	mu     sync.RWMutex
	models map[string]*MemoryModel
}

// NewMemoryManager creates an empty manager.
func NewMemoryManager() *MemoryManager {
	return &MemoryManager{models: make(map[string]*MemoryModel)}
}

// Register adds a model to the manager, replacing any prior registration
// under the same name.
func (m *MemoryManager) Register(model *MemoryModel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.models[model.Name()] = model
}

func (m *MemoryManager) FindModelByName(name string) (Model, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	model, ok := m.models[name]
	if !ok {
		return nil, false
	}
	return model, true
}

func (m *MemoryManager) FindModelInstance(name string, version uint64) (ModelInstance, bool) {
	m.mu.RLock()
	model, ok := m.models[name]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return model.GetModelInstanceByVersion(version)
}

// Names returns every registered model name, used by the Levenshtein
// "did you mean" suggestion in internal/pipelinegraph.
func (m *MemoryManager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.models))
	for name := range m.models {
		names = append(names, name)
	}
	return names
}
