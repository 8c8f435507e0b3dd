// Package pipelinerun builds the per-request runtime topology for an
// already-validated pipeline definition, and answers the schema
// introspection questions (GetInputsInfo/GetOutputsInfo) a caller needs
// before it can build a request envelope. It never executes a model: node
// execution and response aggregation are owned by a caller this subsystem
// does not implement.
package pipelinerun

import (
	"context"

	"github.com/specialistvlad/pipelinedef/internal/modelmanager"
	"github.com/specialistvlad/pipelinedef/internal/pipelinemodel"
	"github.com/specialistvlad/pipelinedef/internal/status"
)

// EntryNode is the runtime handle for a pipeline's unique request source.
type EntryNode struct {
	Name string
}

// ExitNode is the runtime handle for a pipeline's unique response sink.
type ExitNode struct {
	Name string
}

// DLNode is the runtime handle for one deep-learning model invocation step.
// It carries the model coordinates and a Manager reference rather than a
// resolved ModelInstance: instance resolution happens at request-serving
// time, which this subsystem does not implement.
type DLNode struct {
	Name              string
	ModelName         string
	ModelVersion      uint64
	OutputNameAliases map[string]string
	Manager           modelmanager.Manager
}

// Pipeline is one request-scoped instantiation of a validated pipeline's
// topology: one node handle per declared node, wired by Connections.
type Pipeline struct {
	Name        string
	Entry       *EntryNode
	Exit        *ExitNode
	Nodes       map[string]any
	Connections pipelinemodel.ConnectionMap
}

// Create builds one Pipeline from a definition's topology. The caller must
// only invoke Create once the definition has validated successfully and is
// holding a lifecycle guard pinning it at AVAILABLE; Create does not
// re-validate or acquire any guard itself.
func Create(manager modelmanager.Manager, name string, nodeInfos []pipelinemodel.NodeInfo, connections pipelinemodel.ConnectionMap) (*Pipeline, status.Status) {
	p := &Pipeline{
		Name:        name,
		Nodes:       make(map[string]any, len(nodeInfos)),
		Connections: connections,
	}

	for _, info := range nodeInfos {
		switch info.Kind {
		case pipelinemodel.Entry:
			n := &EntryNode{Name: info.NodeName}
			p.Entry = n
			p.Nodes[info.NodeName] = n
		case pipelinemodel.DL:
			p.Nodes[info.NodeName] = &DLNode{
				Name:              info.NodeName,
				ModelName:         info.ModelName,
				ModelVersion:      info.ModelVersion,
				OutputNameAliases: info.OutputNameAliases,
				Manager:           manager,
			}
		case pipelinemodel.Exit:
			n := &ExitNode{Name: info.NodeName}
			p.Exit = n
			p.Nodes[info.NodeName] = n
		default:
			return nil, status.New(status.UnknownError, "unknown node kind for node %q", info.NodeName)
		}
	}

	if p.Entry == nil || p.Exit == nil {
		return nil, status.Of(status.PipelineMissingEntryOrExit)
	}
	return p, status.OKStatus
}

func indexByName(nodeInfos []pipelinemodel.NodeInfo) map[string]pipelinemodel.NodeInfo {
	byName := make(map[string]pipelinemodel.NodeInfo, len(nodeInfos))
	for _, n := range nodeInfos {
		byName[n.NodeName] = n
	}
	return byName
}

// GetInputsInfo reports tensor metadata for every pipeline-level input: an
// alias fed directly from the ENTRY node into some other node. An
// ENTRY->EXIT edge (a pass-through) resolves to the unspecified sentinel,
// since EXIT has no model to describe the tensor's shape or precision; an
// ENTRY->DL edge resolves through that DL node's own model inputs.
func GetInputsInfo(manager modelmanager.Manager, nodeInfos []pipelinemodel.NodeInfo, connections pipelinemodel.ConnectionMap) (map[string]pipelinemodel.TensorInfo, status.Status) {
	byName := indexByName(nodeInfos)
	inputsInfo := make(map[string]pipelinemodel.TensorInfo)

	for dependantName, mapping := range connections {
		dependant, ok := byName[dependantName]
		if !ok {
			continue
		}
		for dependencyName, specific := range mapping {
			dependency, ok := byName[dependencyName]
			if !ok || dependency.Kind != pipelinemodel.Entry {
				continue
			}

			switch dependant.Kind {
			case pipelinemodel.Exit:
				for _, m := range specific {
					inputsInfo[m.Alias] = pipelinemodel.UnspecifiedTensorInfo()
				}
			case pipelinemodel.DL:
				instance, ok := manager.FindModelInstance(dependant.ModelName, dependant.ModelVersion)
				if !ok {
					return nil, status.Of(status.ModelMissing)
				}
				guard, err := instance.WaitForLoaded(context.Background(), 0)
				if err != nil {
					return nil, status.FromError(err)
				}
				for _, m := range specific {
					inputsInfo[m.Alias] = instance.GetInputsInfo()[m.RealName]
				}
				guard.Release()
			default:
				return nil, status.Of(status.UnknownError)
			}
		}
	}
	return inputsInfo, status.OKStatus
}

// GetOutputsInfo reports tensor metadata for every pipeline-level output:
// an alias the EXIT node reads from some other node. An Entry->EXIT edge
// resolves to the unspecified sentinel; a DL->EXIT edge resolves through
// that DL node's own model outputs, applying its output alias mapping.
func GetOutputsInfo(manager modelmanager.Manager, nodeInfos []pipelinemodel.NodeInfo, connections pipelinemodel.ConnectionMap) (map[string]pipelinemodel.TensorInfo, status.Status) {
	byName := indexByName(nodeInfos)
	outputsInfo := make(map[string]pipelinemodel.TensorInfo)

	for dependantName, mapping := range connections {
		dependant, ok := byName[dependantName]
		if !ok || dependant.Kind != pipelinemodel.Exit {
			continue
		}

		for dependencyName, specific := range mapping {
			dependency, ok := byName[dependencyName]
			if !ok {
				continue
			}

			switch dependency.Kind {
			case pipelinemodel.Entry:
				for _, m := range specific {
					outputsInfo[m.RealName] = pipelinemodel.UnspecifiedTensorInfo()
				}
			case pipelinemodel.DL:
				instance, ok := manager.FindModelInstance(dependency.ModelName, dependency.ModelVersion)
				if !ok {
					return nil, status.Of(status.ModelMissing)
				}
				guard, err := instance.WaitForLoaded(context.Background(), 0)
				if err != nil {
					return nil, status.FromError(err)
				}
				for _, m := range specific {
					finalName := m.Alias
					if realName, ok := dependency.OutputNameAliases[m.Alias]; ok {
						finalName = realName
					}
					outputsInfo[m.RealName] = instance.GetOutputsInfo()[finalName]
				}
				guard.Release()
			default:
				return nil, status.Of(status.UnknownError)
			}
		}
	}
	return outputsInfo, status.OKStatus
}
