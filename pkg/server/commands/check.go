// Package commands implements the access queries the server and CLI
// expose. Each query owns its collaborators and performs at most one ACR
// lookup per execution; evaluation itself is delegated to the pure acp
// package.
package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/podgraph/podgraph/pkg/acp"
	"github.com/podgraph/podgraph/pkg/logger"
	"github.com/podgraph/podgraph/pkg/rdf"
	"github.com/podgraph/podgraph/pkg/storage"
)

// CheckQuery resolves one agent's effective access to one resource.
type CheckQuery struct {
	store  storage.ResourceStore
	logger logger.Logger
}

// NewCheckQuery returns a CheckQuery backed by the given store.
func NewCheckQuery(store storage.ResourceStore, log logger.Logger) *CheckQuery {
	return &CheckQuery{store: store, logger: log}
}

// CheckRequest names the resource and the agent to resolve access for.
type CheckRequest struct {
	Resource string `json:"resource"`
	Agent    string `json:"agent"`
}

// CheckResponse carries the effective modes.
type CheckResponse struct {
	Resource rdf.IRI         `json:"resource"`
	Agent    rdf.IRI         `json:"agent"`
	Modes    acp.AccessModes `json:"modes"`
}

// Execute discovers and fetches the resource's access control resource and
// evaluates the agent against it. A missing or unreachable ACR yields
// acp.ErrNoAccessControlResource, distinct from an ACR that grants
// nothing.
func (q *CheckQuery) Execute(ctx context.Context, req *CheckRequest) (*CheckResponse, error) {
	resource, err := rdf.ParseIRI(req.Resource)
	if err != nil {
		return nil, fmt.Errorf("resource: %w", err)
	}
	agent, err := rdf.ParseIRI(req.Agent)
	if err != nil {
		return nil, fmt.Errorf("agent: %w", err)
	}

	acr, err := resolveACR(ctx, q.store, resource)
	if err != nil {
		return nil, err
	}

	modes := acp.GetAgentAccess(acr, agent)
	q.logger.Debug("access check evaluated",
		zap.String("resource", string(resource)),
		zap.String("agent", string(agent)),
		zap.Bool("read", modes.Read),
		zap.Bool("append", modes.Append),
		zap.Bool("write", modes.Write))

	return &CheckResponse{Resource: resource, Agent: agent, Modes: modes}, nil
}

// resolveACR performs the single fetch a lookup is allowed: it discovers
// the ACR's address from the resource's response metadata and fetches the
// ACR dataset. Every failure mode collapses into
// acp.ErrNoAccessControlResource so callers can tell "not protected by
// this scheme" from "zero access".
func resolveACR(ctx context.Context, store storage.ResourceStore, resource rdf.IRI) (acp.AccessControlResource, error) {
	info, err := store.FetchResourceInfo(ctx, resource)
	if err != nil {
		return acp.AccessControlResource{}, fmt.Errorf("%w for %s: %w", acp.ErrNoAccessControlResource, string(resource), err)
	}

	acrIRI, ok := storage.DiscoverACR(info)
	if !ok {
		return acp.AccessControlResource{}, fmt.Errorf("%w for %s: no access control link", acp.ErrNoAccessControlResource, string(resource))
	}

	dataset, err := store.FetchResource(ctx, acrIRI)
	if err != nil {
		return acp.AccessControlResource{}, fmt.Errorf("%w for %s: %w", acp.ErrNoAccessControlResource, string(resource), err)
	}

	return acp.NewAccessControlResource(dataset, acrIRI), nil
}
