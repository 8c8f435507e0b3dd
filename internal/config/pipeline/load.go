package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/specialistvlad/pipelinedef/internal/ctxlog"
	"github.com/specialistvlad/pipelinedef/internal/pipelinemodel"
)

// Document is one decoded `pipeline` block: its declared name plus the
// format-agnostic graph the rest of the subsystem consumes.
type Document struct {
	Name        string
	NodeInfos   []pipelinemodel.NodeInfo
	Connections pipelinemodel.ConnectionMap
}

// Load walks paths (files or directories) for ".hcl" files, decodes every
// `pipeline` block found, and returns one Document per block. It does not
// validate cross-node or model references; that is pipelinegraph.Validate's
// job once a Manager is available to check against.
func Load(ctx context.Context, paths ...string) ([]Document, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := findHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("discovered pipeline definition files", "count", len(files))

	parser := hclparse.NewParser()
	var docs []Document

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("parsing %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("decoding %s: %w", file, diags)
		}

		for _, p := range root.Pipelines {
			doc, err := translatePipeline(p)
			if err != nil {
				return nil, fmt.Errorf("%s: pipeline %q: %w", file, p.Name, err)
			}
			docs = append(docs, doc)
		}
	}

	logger.Debug("pipeline definition loading complete", "pipelines", len(docs))
	return docs, nil
}

func translatePipeline(p *pipelineBlock) (Document, error) {
	nodeInfos := make([]pipelinemodel.NodeInfo, 0, len(p.Nodes))
	connections := make(pipelinemodel.ConnectionMap, len(p.Nodes))

	for _, n := range p.Nodes {
		kind, st := pipelinemodel.ParseKind(n.Kind)
		if !st.Ok() {
			return Document{}, fmt.Errorf("node %q: %w", n.Name, st)
		}

		info := pipelinemodel.NodeInfo{
			NodeName:          n.Name,
			Kind:              kind,
			OutputNameAliases: make(map[string]string, len(n.Outputs)),
		}
		if n.Model != nil {
			info.ModelName = *n.Model
		}
		if n.Version != nil {
			info.ModelVersion = *n.Version
		}
		for _, out := range n.Outputs {
			realName := out.Alias
			if out.RealName != nil {
				realName = *out.RealName
			}
			info.OutputNameAliases[out.Alias] = realName
		}
		nodeInfos = append(nodeInfos, info)

		edges := make(map[string]pipelinemodel.MappingList, len(n.Inputs))
		for _, in := range n.Inputs {
			edges[in.From] = append(edges[in.From], pipelinemodel.Mapping{
				Alias:    in.Alias,
				RealName: in.Input,
			})
		}
		connections[n.Name] = edges
	}

	return Document{Name: p.Name, NodeInfos: nodeInfos, Connections: connections}, nil
}

func findHCLFiles(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})

	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			files = append(files, p)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("accessing %s: %w", path, err)
		}

		if info.IsDir() {
			err := filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !info.IsDir() && filepath.Ext(p) == ".hcl" {
					add(p)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}

		if filepath.Ext(path) == ".hcl" {
			add(path)
		}
	}
	return files, nil
}
