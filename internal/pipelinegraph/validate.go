// Package pipelinegraph validates a pipeline's declared nodes and
// connections against a model manager, and detects cycles in the
// transposed dependant->dependency graph. Validation stops at the first
// violation and returns that status; there is no partial state to unwind
// because this package never mutates pipelinemodel data, it only reads it.
package pipelinegraph

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/specialistvlad/pipelinedef/internal/ctxlog"
	"github.com/specialistvlad/pipelinedef/internal/modelmanager"
	"github.com/specialistvlad/pipelinedef/internal/pipelinemodel"
	"github.com/specialistvlad/pipelinedef/internal/status"
)

// Validate runs the full structural and semantic check: endpoint
// cardinality, name uniqueness, per-node validation, then cycle and
// connectivity checking. It returns the first violation encountered.
//
// Model lookups for every DL node are resolved concurrently up front (see
// prefetchModelInstances) since they are independent round-trips against
// the model manager; the per-node checks that follow still run in
// declaration order against that prefetched cache, so "first violation
// wins" holds exactly as if everything had run sequentially.
func Validate(ctx context.Context, manager modelmanager.Manager, nodeInfos []pipelinemodel.NodeInfo, connections pipelinemodel.ConnectionMap) status.Status {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("validating pipeline definition", "nodes", len(nodeInfos))

	if st := validateEndpointsAndNames(nodeInfos); !st.Ok() {
		logger.Error("pipeline validation failed", "code", st.Code(), "error", st)
		return st
	}

	byName := make(map[string]pipelinemodel.NodeInfo, len(nodeInfos))
	for _, n := range nodeInfos {
		byName[n.NodeName] = n
	}

	cache, release := prefetchModelInstances(manager, nodeInfos)
	defer release()

	for _, node := range nodeInfos {
		if st := validateNode(cache, node, byName, connections, manager); !st.Ok() {
			logger.Error("pipeline validation failed", "node", node.NodeName, "code", st.Code(), "error", st)
			return st
		}
	}

	if st := detectCycles(nodeInfos, connections); !st.Ok() {
		logger.Error("pipeline validation failed", "code", st.Code(), "error", st)
		return st
	}
	logger.Debug("pipeline validation passed")
	return status.OKStatus
}

func validateEndpointsAndNames(nodeInfos []pipelinemodel.NodeInfo) status.Status {
	entryCount, exitCount := 0, 0
	seen := make(map[string]int, len(nodeInfos))
	for _, n := range nodeInfos {
		switch n.Kind {
		case pipelinemodel.Entry:
			entryCount++
		case pipelinemodel.Exit:
			exitCount++
		}
		seen[n.NodeName]++
	}

	if entryCount == 0 || exitCount == 0 {
		return status.Of(status.PipelineMissingEntryOrExit)
	}
	if entryCount > 1 {
		return status.Of(status.PipelineMultipleEntryNodes)
	}
	if exitCount > 1 {
		return status.Of(status.PipelineMultipleExitNodes)
	}
	for name, count := range seen {
		if count > 1 {
			return status.New(status.PipelineNodeNameDuplicate, "duplicate node name %q", name)
		}
	}
	return status.OKStatus
}

// modelRef identifies one (name, version) model lookup target.
type modelRef struct {
	name    string
	version uint64
}

type prefetchResult struct {
	instance modelmanager.ModelInstance
	guard    modelmanager.UnloadGuard
	ok       bool
}

// prefetchModelInstances resolves every distinct DL node's model instance
// concurrently via an unload guard, returning a cache keyed by (name,
// version) plus a release func the caller must invoke once validation is
// done reading from the cache.
func prefetchModelInstances(manager modelmanager.Manager, nodeInfos []pipelinemodel.NodeInfo) (map[modelRef]prefetchResult, func()) {
	seen := make(map[modelRef]bool)
	var refs []modelRef
	for _, n := range nodeInfos {
		if n.Kind != pipelinemodel.DL {
			continue
		}
		ref := modelRef{name: n.ModelName, version: n.ModelVersion}
		if !seen[ref] {
			seen[ref] = true
			refs = append(refs, ref)
		}
	}

	slots := make([]prefetchResult, len(refs))
	var eg errgroup.Group
	for i, ref := range refs {
		i, ref := i, ref
		eg.Go(func() error {
			instance, guard, ok := getModelInstance(manager, ref.name, ref.version)
			slots[i] = prefetchResult{instance: instance, guard: guard, ok: ok}
			return nil
		})
	}
	_ = eg.Wait() // getModelInstance reports misses via ok, it never errors

	results := make(map[modelRef]prefetchResult, len(refs))
	for i, ref := range refs {
		results[ref] = slots[i]
	}

	release := func() {
		for _, r := range results {
			if r.ok {
				r.guard.Release()
			}
		}
	}
	return results, release
}

// getModelInstance resolves a DL node's underlying model instance, holding
// an UnloadGuard for the duration of the caller's use of it.
func getModelInstance(manager modelmanager.Manager, modelName string, version uint64) (modelmanager.ModelInstance, modelmanager.UnloadGuard, bool) {
	instance, ok := manager.FindModelInstance(modelName, version)
	if !ok {
		return nil, nil, false
	}
	guard, err := instance.WaitForLoaded(context.Background(), 0)
	if err != nil {
		return nil, nil, false
	}
	return instance, guard, true
}

func validateNode(cache map[modelRef]prefetchResult, dependant pipelinemodel.NodeInfo, byName map[string]pipelinemodel.NodeInfo, connections pipelinemodel.ConnectionMap, manager modelmanager.Manager) status.Status {
	var dependantInstance modelmanager.ModelInstance
	remainingInputs := map[string]struct{}{}

	if dependant.Kind == pipelinemodel.DL {
		result := cache[modelRef{name: dependant.ModelName, version: dependant.ModelVersion}]
		if !result.ok {
			return status.New(status.PipelineNodeReferingToMissingModel,
				"node %q refers to missing model %q version %d%s", dependant.NodeName, dependant.ModelName, dependant.ModelVersion,
				suggestNearest(dependant.ModelName, manager.Names()))
		}
		dependantInstance = result.instance

		if dependantInstance.GetModelConfig().HasDynamicParameter() {
			return status.New(status.ForbiddenModelDynamicParameter,
				"node %q uses model %q with dynamic batch size or shape, which is forbidden", dependant.NodeName, dependant.ModelName)
		}

		for name := range dependantInstance.GetInputsInfo() {
			remainingInputs[name] = struct{}{}
		}
	}

	for _, depName := range sortedKeys(connections[dependant.NodeName]) {
		mapping := connections[dependant.NodeName][depName]
		if dependant.Kind == pipelinemodel.Entry {
			if len(mapping) > 0 {
				return status.Of(status.UnknownError)
			}
			continue
		}

		dependency, ok := byName[depName]
		if !ok {
			return status.New(status.PipelineNodeReferingToMissingNode,
				"node %q refers to missing dependency node %q%s", dependant.NodeName, depName, suggestNearest(depName, nodeNames(byName)))
		}
		if dependency.Kind == pipelinemodel.Exit {
			return status.Of(status.UnknownError)
		}

		var dependencyInstance modelmanager.ModelInstance
		if dependency.Kind == pipelinemodel.DL {
			result := cache[modelRef{name: dependency.ModelName, version: dependency.ModelVersion}]
			if !result.ok {
				return status.New(status.PipelineNodeReferingToMissingModel,
					"node %q depends on missing model %q version %d%s", dependency.NodeName, dependency.ModelName, dependency.ModelVersion,
					suggestNearest(dependency.ModelName, manager.Names()))
			}
			dependencyInstance = result.instance
		}

		for _, m := range mapping {
			if dependant.Kind == pipelinemodel.DL {
				if _, ok := remainingInputs[m.RealName]; !ok {
					return status.New(status.PipelineConnectionToMissingNodeInput,
						"node %q model %q has no unconnected input named %q", dependant.NodeName, dependant.ModelName, m.RealName)
				}
				delete(remainingInputs, m.RealName)
			}

			if _, ok := dependency.OutputNameAliases[m.Alias]; !ok {
				return status.New(status.PipelineNodeReferingToMissingDataSource,
					"node %q refers to missing data source %q on node %q", dependant.NodeName, m.Alias, dependency.NodeName)
			}

			var modelOutputName string
			if dependency.Kind == pipelinemodel.DL {
				modelOutputName = dependency.OutputNameAliases[m.Alias]
				if _, ok := dependencyInstance.GetOutputsInfo()[modelOutputName]; !ok {
					return status.New(status.PipelineNodeReferingToMissingModelOutput,
						"model %q has no output named %q required by node %q", dependency.ModelName, modelOutputName, dependency.NodeName)
				}
			}

			if dependant.Kind == pipelinemodel.DL && dependency.Kind == pipelinemodel.Entry {
				if _, ok := dependency.OutputNameAliases[m.Alias]; !ok {
					return status.New(status.PipelineNodeReferingToMissingDataSource,
						"missing pipeline input %q for node %q", m.Alias, dependant.NodeName)
				}
			}

			if dependant.Kind == pipelinemodel.DL && dependency.Kind == pipelinemodel.DL {
				// m.RealName is guaranteed present here: the remainingInputs
				// check above only deletes keys that existed in GetInputsInfo().
				inputTensor := dependantInstance.GetInputsInfo()[m.RealName]
				outputTensor := dependencyInstance.GetOutputsInfo()[modelOutputName]
				if !shapeEqual(inputTensor.Shape, outputTensor.Shape) {
					return status.New(status.InvalidShape,
						"shape mismatch: node %q input %q shape %s vs node %q output %q shape %s",
						dependant.NodeName, m.RealName, pipelinemodel.ShapeString(inputTensor.Shape),
						dependency.NodeName, modelOutputName, pipelinemodel.ShapeString(outputTensor.Shape))
				}
				if inputTensor.Precision != outputTensor.Precision {
					return status.New(status.InvalidPrecision,
						"precision mismatch: node %q input %q precision %s vs node %q output %q precision %s",
						dependant.NodeName, m.RealName, inputTensor.Precision,
						dependency.NodeName, modelOutputName, outputTensor.Precision)
				}
			}
		}
	}

	if dependant.Kind == pipelinemodel.DL && len(remainingInputs) > 0 {
		return status.New(status.PipelineNotAllInputsConnected,
			"node %q model %q has unconnected inputs: %v", dependant.NodeName, dependant.ModelName, keys(remainingInputs))
	}

	return status.OKStatus
}

func shapeEqual(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func keys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func nodeNames(byName map[string]pipelinemodel.NodeInfo) []string {
	out := make([]string, 0, len(byName))
	for name := range byName {
		out = append(out, name)
	}
	return out
}

// sortedKeys returns a connection map's dependency names in sorted order, so
// that a node with multiple simultaneously-invalid incoming edges always
// reports the same violation first, regardless of Go's randomized map
// iteration order.
func sortedKeys(edges map[string]pipelinemodel.MappingList) []string {
	out := make([]string, 0, len(edges))
	for k := range edges {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
