// Package pipelinedef wires the Graph Model, Validator, Subscription
// Manager, Lifecycle Controller, and Runtime Factory into one
// PipelineDefinition: the single object a caller holds for one named
// pipeline, across its whole reload/retire lifetime.
package pipelinedef

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/specialistvlad/pipelinedef/internal/ctxlog"
	"github.com/specialistvlad/pipelinedef/internal/lifecycle"
	"github.com/specialistvlad/pipelinedef/internal/modelmanager"
	"github.com/specialistvlad/pipelinedef/internal/pipelinegraph"
	"github.com/specialistvlad/pipelinedef/internal/pipelinemodel"
	"github.com/specialistvlad/pipelinedef/internal/pipelinerun"
	"github.com/specialistvlad/pipelinedef/internal/status"
	"github.com/specialistvlad/pipelinedef/internal/subscription"
)

// PipelineDefinition is one named pipeline's declared topology plus its
// lifecycle state. Topology fields (nodeInfos/connections) are read by
// request-serving goroutines and written only by Reload/Retire, always
// under the lifecycle Controller's drain lock via topoMu.
type PipelineDefinition struct {
	name    string
	manager modelmanager.Manager
	life    *lifecycle.Controller
	subs    *subscription.Set

	topoMu      sync.RWMutex
	nodeInfos   []pipelinemodel.NodeInfo
	connections pipelinemodel.ConnectionMap
}

// New creates a PipelineDefinition in the LOADING state, with no topology
// yet. Call Reload to give it its first set of nodes and connections.
func New(name string, manager modelmanager.Manager) *PipelineDefinition {
	return &PipelineDefinition{
		name:    name,
		manager: manager,
		life:    lifecycle.New(),
		subs:    subscription.New(),
	}
}

// Name returns the pipeline's declared name.
func (d *PipelineDefinition) Name() string { return d.name }

// State returns the current lifecycle state, mainly for tests and metrics.
func (d *PipelineDefinition) State() lifecycle.State { return d.life.State() }

// OnTransition registers a lifecycle transition hook; see lifecycle.Controller.OnTransition.
func (d *PipelineDefinition) OnTransition(fn func(from, to lifecycle.State)) {
	d.life.OnTransition(fn)
}

// Reload replaces the pipeline's declared topology and re-validates it
// against manager. It unsubscribes from the previous topology's models,
// drains in-flight requests before swapping in the new topology, makes
// fresh subscriptions, then validates. On success the definition becomes
// AVAILABLE; on failure it stays LOADING and the caller should decide
// whether to retire it.
func (d *PipelineDefinition) Reload(ctx context.Context, nodeInfos []pipelinemodel.NodeInfo, connections pipelinemodel.ConnectionMap) status.Status {
	logger := ctxlog.FromContext(ctx)
	if d.life.State() == lifecycle.Retired {
		return status.New(status.ModelVersionNotLoadedAnymore, "pipeline %q is retired", d.name)
	}
	logger.Info("reloading pipeline definition", "pipeline", d.name, "nodes", len(nodeInfos))

	d.subs.Reset(d.manager, d)
	d.life.BeginLoad()

	d.life.DrainAndCommit(func() {
		d.topoMu.Lock()
		d.nodeInfos = nodeInfos
		d.connections = connections
		d.topoMu.Unlock()
	})

	d.subs.Make(ctx, logger, d.manager, d, nodeInfos)

	st := d.validateLocked(ctx, logger)
	if st.Ok() {
		d.life.MarkAvailable()
	}
	return st
}

// Retire unsubscribes from every model the pipeline watches, drains
// in-flight requests, then clears its topology. Once Retire returns the
// definition is RETIRED and accepts no further Reload or Create calls.
func (d *PipelineDefinition) Retire(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	logger.Info("retiring pipeline definition", "pipeline", d.name)

	d.subs.Reset(d.manager, d)
	d.life.BeginUnload()

	d.life.DrainAndCommit(func() {
		d.topoMu.Lock()
		d.nodeInfos = nil
		d.connections = nil
		d.topoMu.Unlock()
	})

	d.life.MarkRetired()
}

// OnModelChange implements modelmanager.Observer: a subscribed model
// reloaded or is about to unload. The definition's declared topology is
// unchanged (it comes from configuration, not from the model), so this
// only re-validates against the manager's now-different state; it never
// re-reads nodeInfos/connections from anywhere.
func (d *PipelineDefinition) OnModelChange(ctx context.Context, modelName string, modelVersion uint64) {
	logger := ctxlog.FromContext(ctx)
	logger.Info("model change notification received", "pipeline", d.name, "model", modelName, "version", modelVersion)

	if d.life.State() != lifecycle.Available {
		return
	}
	st := d.validateLocked(ctx, logger)
	if !st.Ok() {
		logger.Error("pipeline definition failed revalidation after model change",
			"pipeline", d.name, "code", st.Code(), "error", st)
	}
}

func (d *PipelineDefinition) validateLocked(ctx context.Context, logger *slog.Logger) status.Status {
	d.topoMu.RLock()
	nodeInfos := d.nodeInfos
	connections := d.connections
	d.topoMu.RUnlock()
	return pipelinegraph.Validate(ctx, d.manager, nodeInfos, connections)
}

// Create waits up to timeout for the definition to be AVAILABLE, then
// builds a request-scoped Pipeline from its current topology. The returned
// release func must be called exactly once, when the caller is done with
// the request; it releases the lifecycle guard that pins the definition at
// AVAILABLE for the request's duration.
func (d *PipelineDefinition) Create(ctx context.Context, timeout time.Duration) (*pipelinerun.Pipeline, func(), status.Status) {
	guard, st := d.life.WaitForLoaded(timeout)
	if !st.Ok() {
		return nil, nil, st
	}

	d.topoMu.RLock()
	nodeInfos := d.nodeInfos
	connections := d.connections
	d.topoMu.RUnlock()

	p, st := pipelinerun.Create(d.manager, d.name, nodeInfos, connections)
	if !st.Ok() {
		guard.Release()
		return nil, nil, st
	}
	return p, guard.Release, status.OKStatus
}

// GetInputsInfo waits up to timeout for the definition to be AVAILABLE,
// then reports the pipeline's externally visible input schema.
func (d *PipelineDefinition) GetInputsInfo(ctx context.Context, timeout time.Duration) (map[string]pipelinemodel.TensorInfo, status.Status) {
	guard, st := d.life.WaitForLoaded(timeout)
	if !st.Ok() {
		return nil, st
	}
	defer guard.Release()

	d.topoMu.RLock()
	nodeInfos := d.nodeInfos
	connections := d.connections
	d.topoMu.RUnlock()

	return pipelinerun.GetInputsInfo(d.manager, nodeInfos, connections)
}

// GetOutputsInfo waits up to timeout for the definition to be AVAILABLE,
// then reports the pipeline's externally visible output schema.
func (d *PipelineDefinition) GetOutputsInfo(ctx context.Context, timeout time.Duration) (map[string]pipelinemodel.TensorInfo, status.Status) {
	guard, st := d.life.WaitForLoaded(timeout)
	if !st.Ok() {
		return nil, st
	}
	defer guard.Release()

	d.topoMu.RLock()
	nodeInfos := d.nodeInfos
	connections := d.connections
	d.topoMu.RUnlock()

	return pipelinerun.GetOutputsInfo(d.manager, nodeInfos, connections)
}
