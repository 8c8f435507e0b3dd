package pipelinegraph

import (
	"github.com/specialistvlad/pipelinedef/internal/pipelinemodel"
	"github.com/specialistvlad/pipelinedef/internal/status"
)

// detectCycles runs an iterative DFS starting at the unique EXIT node,
// walking the connections map exactly as stored: dependant -> dependency.
// A graph and its transpose share the same cycle set, so this is sound
// even though it reads "backwards" from the natural execution order.
//
// visited doubles as the discovery-order log and the visited-set; parents
// is the DFS spine (open ancestors, excluding the current frontier node).
func detectCycles(nodeInfos []pipelinemodel.NodeInfo, connections pipelinemodel.ConnectionMap) status.Status {
	exitName := ""
	for _, n := range nodeInfos {
		if n.Kind == pipelinemodel.Exit {
			exitName = n.NodeName
			break
		}
	}
	if exitName == "" {
		return status.Of(status.PipelineMissingEntryOrExit)
	}

	visited := []string{exitName}
	visitedSet := map[string]bool{exitName: true}
	var parents []string
	parentSet := map[string]bool{}

	nodeName := exitName
	for {
		edges := connections[nodeName]
		advanced := false

		for depName := range edges {
			if depName == nodeName {
				return status.New(status.PipelineCycleFound, "node %q is connected to itself", nodeName)
			}
			if !visitedSet[depName] {
				parents = append(parents, nodeName)
				parentSet[nodeName] = true
				visited = append(visited, depName)
				visitedSet[depName] = true
				nodeName = depName
				advanced = true
				break
			}
			if parentSet[depName] {
				return status.New(status.PipelineCycleFound, "cycle detected among nodes: %v", append(append([]string{}, parents...), depName))
			}
		}

		if advanced {
			continue
		}

		if len(parents) == 0 {
			break
		}
		nodeName = parents[len(parents)-1]
		parents = parents[:len(parents)-1]
		delete(parentSet, nodeName)
	}

	if len(visited) != len(nodeInfos) {
		return status.Of(status.PipelineContainsUnconnectedNodes)
	}
	return status.OKStatus
}
