// Package httpclient implements modelmanager.Manager against a remote
// model-serving control plane's REST API. It is the external collaborator
// boundary made concrete: the pipeline definition subsystem never performs
// network I/O itself, but the Manager it is handed is free to.
package httpclient

import (
	"context"
	"fmt"
	"time"

	"resty.dev/v3"

	"github.com/specialistvlad/pipelinedef/internal/modelmanager"
	"github.com/specialistvlad/pipelinedef/internal/pipelinemodel"
)

// Client is a modelmanager.Manager backed by HTTP calls to a remote model
// manager service.
type Client struct {
	http    *resty.Client
	baseURL string
}

// New builds a Client pointed at baseURL (e.g. "http://model-manager:8080").
func New(baseURL string) *Client {
	return &Client{
		http:    resty.New().SetBaseURL(baseURL).SetTimeout(5 * time.Second),
		baseURL: baseURL,
	}
}

// Close releases the underlying HTTP transport.
func (c *Client) Close() error {
	return c.http.Close()
}

type modelInfoDTO struct {
	Name     string                        `json:"name"`
	Versions []uint64                      `json:"versions"`
	Default  uint64                        `json:"default_version"`
}

type instanceInfoDTO struct {
	Name    string                                  `json:"name"`
	Version uint64                                  `json:"version"`
	Inputs  map[string]tensorInfoDTO                 `json:"inputs"`
	Outputs map[string]tensorInfoDTO                 `json:"outputs"`
	Config  modelConfigDTO                           `json:"config"`
}

type tensorInfoDTO struct {
	Shape     []int64 `json:"shape"`
	Precision string  `json:"precision"`
}

type modelConfigDTO struct {
	BatchingMode string                    `json:"batching_mode"`
	Shapes       map[string]shapeConfigDTO `json:"shapes"`
}

type shapeConfigDTO struct {
	ShapeMode string `json:"shape_mode"`
}

// FindModelByName looks up a model's version set over HTTP.
func (c *Client) FindModelByName(name string) (modelmanager.Model, bool) {
	var dto modelInfoDTO
	resp, err := c.http.R().SetResult(&dto).Get(fmt.Sprintf("/models/%s", name))
	if err != nil || resp.IsError() {
		return nil, false
	}
	return &remoteModel{client: c, name: dto.Name, def: dto.Default}, true
}

// Names lists every model name the remote control plane currently serves,
// for "did you mean" diagnostics. A request failure yields an empty list
// rather than an error: Names is advisory only, never load-bearing.
func (c *Client) Names() []string {
	var dto struct {
		Names []string `json:"names"`
	}
	resp, err := c.http.R().SetResult(&dto).Get("/models")
	if err != nil || resp.IsError() {
		return nil
	}
	return dto.Names
}

// FindModelInstance looks up one specific (or default) model version over HTTP.
func (c *Client) FindModelInstance(name string, version uint64) (modelmanager.ModelInstance, bool) {
	path := fmt.Sprintf("/models/%s/versions/%d", name, version)
	if version == 0 {
		path = fmt.Sprintf("/models/%s/versions/default", name)
	}
	var dto instanceInfoDTO
	resp, err := c.http.R().SetResult(&dto).Get(path)
	if err != nil || resp.IsError() {
		return nil, false
	}
	return newRemoteInstance(c, dto), true
}

type remoteModel struct {
	client *Client
	name   string
	def    uint64
}

func (m *remoteModel) Name() string { return m.name }

func (m *remoteModel) GetModelInstanceByVersion(version uint64) (modelmanager.ModelInstance, bool) {
	return m.client.FindModelInstance(m.name, version)
}

// Subscribe/Unsubscribe are no-ops over this plain polling HTTP client: a
// production deployment would instead open a push channel (e.g. SSE or a
// webhook callback) from the control plane, out of scope for this client.
func (m *remoteModel) Subscribe(o modelmanager.Observer)   {}
func (m *remoteModel) Unsubscribe(o modelmanager.Observer) {}

type remoteInstance struct {
	client  *Client
	name    string
	version uint64
	inputs  map[string]pipelinemodel.TensorInfo
	outputs map[string]pipelinemodel.TensorInfo
	config  pipelinemodel.ModelConfig
}

func newRemoteInstance(c *Client, dto instanceInfoDTO) *remoteInstance {
	return &remoteInstance{
		client:  c,
		name:    dto.Name,
		version: dto.Version,
		inputs:  convertTensorMap(dto.Inputs),
		outputs: convertTensorMap(dto.Outputs),
		config:  convertConfig(dto.Config),
	}
}

func convertTensorMap(in map[string]tensorInfoDTO) map[string]pipelinemodel.TensorInfo {
	out := make(map[string]pipelinemodel.TensorInfo, len(in))
	for name, t := range in {
		out[name] = pipelinemodel.TensorInfo{Shape: t.Shape, Precision: parsePrecision(t.Precision)}
	}
	return out
}

func parsePrecision(s string) pipelinemodel.Precision {
	switch s {
	case "FP32":
		return pipelinemodel.FP32
	case "FP16":
		return pipelinemodel.FP16
	case "INT64":
		return pipelinemodel.INT64
	case "INT32":
		return pipelinemodel.INT32
	case "INT8":
		return pipelinemodel.INT8
	case "UINT8":
		return pipelinemodel.UINT8
	case "BOOL":
		return pipelinemodel.BOOL
	default:
		return pipelinemodel.PrecisionUnspecified
	}
}

func convertConfig(dto modelConfigDTO) pipelinemodel.ModelConfig {
	shapes := make(map[string]pipelinemodel.ShapeConfig, len(dto.Shapes))
	for name, s := range dto.Shapes {
		mode := pipelinemodel.Fixed
		if s.ShapeMode == "AUTO" {
			mode = pipelinemodel.Auto
		}
		shapes[name] = pipelinemodel.ShapeConfig{ShapeMode: mode}
	}
	batching := pipelinemodel.Fixed
	if dto.BatchingMode == "AUTO" {
		batching = pipelinemodel.Auto
	}
	return pipelinemodel.ModelConfig{BatchingMode: batching, Shapes: shapes}
}

func (r *remoteInstance) Name() string    { return r.name }
func (r *remoteInstance) Version() uint64 { return r.version }

func (r *remoteInstance) Subscribe(o modelmanager.Observer)   {}
func (r *remoteInstance) Unsubscribe(o modelmanager.Observer) {}

type releasedGuard struct{}

func (releasedGuard) Release() {}

// WaitForLoaded performs a single freshness check against the control
// plane; this client does not maintain a persistent connection to block on.
func (r *remoteInstance) WaitForLoaded(ctx context.Context, timeout time.Duration) (modelmanager.UnloadGuard, error) {
	path := fmt.Sprintf("/models/%s/versions/%d/status", r.name, r.version)
	resp, err := r.client.http.R().SetContext(ctx).Get(path)
	if err != nil || resp.IsError() {
		return nil, fmt.Errorf("model %s version %d unavailable: %w", r.name, r.version, err)
	}
	return releasedGuard{}, nil
}

func (r *remoteInstance) GetInputsInfo() map[string]pipelinemodel.TensorInfo  { return r.inputs }
func (r *remoteInstance) GetOutputsInfo() map[string]pipelinemodel.TensorInfo { return r.outputs }
func (r *remoteInstance) GetModelConfig() pipelinemodel.ModelConfig           { return r.config }
