package commands

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/podgraph/podgraph/internal/concurrency"
	"github.com/podgraph/podgraph/pkg/acp"
	"github.com/podgraph/podgraph/pkg/logger"
	"github.com/podgraph/podgraph/pkg/rdf"
	"github.com/podgraph/podgraph/pkg/storage"
)

const defaultListConcurrency = 10

// ListAccessQuery resolves the effective access of every agent known to a
// resource's access control resource.
type ListAccessQuery struct {
	store          storage.ResourceStore
	logger         logger.Logger
	maxConcurrency int
}

// ListAccessOption configures a ListAccessQuery.
type ListAccessOption func(*ListAccessQuery)

// WithListConcurrency bounds the per-agent evaluation fan-out.
func WithListConcurrency(n int) ListAccessOption {
	return func(q *ListAccessQuery) { q.maxConcurrency = n }
}

// NewListAccessQuery returns a ListAccessQuery backed by the given store.
func NewListAccessQuery(store storage.ResourceStore, log logger.Logger, opts ...ListAccessOption) *ListAccessQuery {
	q := &ListAccessQuery{store: store, logger: log, maxConcurrency: defaultListConcurrency}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// ListAccessRequest names the resource to list access for.
type ListAccessRequest struct {
	Resource string `json:"resource"`
}

// ListAccessResponse maps each agent that matched at least one policy to
// its effective modes. Agents that never matched are omitted.
type ListAccessResponse struct {
	Resource rdf.IRI                     `json:"resource"`
	Access   map[rdf.IRI]acp.AccessModes `json:"access"`
}

// Execute fetches the ACR once and evaluates every agent appearing in any
// matcher under it. Evaluation is pure, so agents are fanned out on a
// bounded pool.
func (q *ListAccessQuery) Execute(ctx context.Context, req *ListAccessRequest) (*ListAccessResponse, error) {
	resource, err := rdf.ParseIRI(req.Resource)
	if err != nil {
		return nil, fmt.Errorf("resource: %w", err)
	}

	acr, err := resolveACR(ctx, q.store, resource)
	if err != nil {
		return nil, err
	}

	agents := acp.Agents(acr)
	access := make(map[rdf.IRI]acp.AccessModes, len(agents))
	var mu sync.Mutex

	pool := concurrency.NewPool(ctx, q.maxConcurrency)
	for _, agent := range agents {
		pool.Go(func(ctx context.Context) error {
			modes, matched := acp.AgentAccess(acr, agent)
			if matched {
				mu.Lock()
				access[agent] = modes
				mu.Unlock()
			}
			return nil
		})
	}
	if err := pool.Wait(); err != nil {
		return nil, err
	}

	q.logger.Debug("access listed",
		zap.String("resource", string(resource)),
		zap.Int("agents", len(access)))

	return &ListAccessResponse{Resource: resource, Access: access}, nil
}
