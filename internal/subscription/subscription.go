// Package subscription tracks which (modelName, modelVersion) pairs a
// pipeline definition currently observes, and keeps that set synchronized
// with the model manager's subscribe/unsubscribe hooks. It never decides
// whether a subscription target actually exists — a missing model is
// logged and skipped here, because the validator is the component that
// turns that into a precise status code.
package subscription

import (
	"context"
	"log/slog"

	"github.com/specialistvlad/pipelinedef/internal/modelmanager"
	"github.com/specialistvlad/pipelinedef/internal/pipelinemodel"
)

// Key identifies one subscription target. Version 0 means "default version".
type Key struct {
	ModelName    string
	ModelVersion uint64
}

// Set tracks the subscriptions currently held by one pipeline definition.
// It is touched only by the control plane (reload/retire), never by
// request-handling goroutines, so it needs no internal locking.
type Set struct {
	subscriptions map[Key]struct{}
}

// New returns an empty subscription Set.
func New() *Set {
	return &Set{subscriptions: make(map[Key]struct{})}
}

// Keys returns every currently held subscription key, mainly for tests.
func (s *Set) Keys() map[Key]struct{} {
	return s.subscriptions
}

// Make walks nodeInfos and subscribes to every DL node's model that isn't
// already tracked. Missing models are logged at Warn and skipped silently:
// the subsequent validate() call is what surfaces a precise diagnostic.
func (s *Set) Make(ctx context.Context, logger *slog.Logger, manager modelmanager.Manager, observer modelmanager.Observer, nodeInfos []pipelinemodel.NodeInfo) {
	for _, node := range nodeInfos {
		if node.Kind != pipelinemodel.DL {
			continue
		}
		key := Key{ModelName: node.ModelName, ModelVersion: node.ModelVersion}
		if _, already := s.subscriptions[key]; already {
			continue
		}

		model, ok := manager.FindModelByName(node.ModelName)
		if !ok {
			logger.Warn("failed to make pipeline subscription: model missing",
				"model", node.ModelName, "version", node.ModelVersion)
			continue
		}

		if node.HasModelVersion() {
			instance, ok := model.GetModelInstanceByVersion(node.ModelVersion)
			if !ok {
				logger.Warn("failed to make pipeline subscription: model version missing",
					"model", node.ModelName, "version", node.ModelVersion)
				continue
			}
			instance.Subscribe(observer)
		} else {
			model.Subscribe(observer)
		}
		s.subscriptions[key] = struct{}{}
	}
}

// Reset unsubscribes from every currently tracked target and clears the set.
func (s *Set) Reset(manager modelmanager.Manager, observer modelmanager.Observer) {
	for key := range s.subscriptions {
		model, ok := manager.FindModelByName(key.ModelName)
		if !ok {
			continue
		}
		if key.ModelVersion != 0 {
			if instance, ok := model.GetModelInstanceByVersion(key.ModelVersion); ok {
				instance.Unsubscribe(observer)
			}
		} else {
			model.Unsubscribe(observer)
		}
	}
	s.subscriptions = make(map[Key]struct{})
}
