// Package memory implements an in-process resource store, used by tests,
// the CLI's offline mode, and anywhere a canned set of resources is
// enough.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/podgraph/podgraph/pkg/nquads"
	"github.com/podgraph/podgraph/pkg/rdf"
	"github.com/podgraph/podgraph/pkg/storage"
)

// Store holds resource datasets and their ACR links in memory. It is safe
// for concurrent use. The datasets themselves are immutable values, so
// only the maps need guarding.
type Store struct {
	mu        sync.RWMutex
	resources map[rdf.IRI]rdf.Dataset
	acrLinks  map[rdf.IRI]rdf.IRI
}

var _ storage.ResourceStore = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{
		resources: map[rdf.IRI]rdf.Dataset{},
		acrLinks:  map[rdf.IRI]rdf.IRI{},
	}
}

// Put stores a resource's dataset at the given address, replacing any
// previous value.
func (s *Store) Put(iri rdf.IRI, dataset rdf.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources[iri] = dataset
}

// LinkACR declares that the resource's access control resource lives at
// acr, surfaced through FetchResourceInfo as an ACP link relation.
func (s *Store) LinkACR(resource, acr rdf.IRI) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.acrLinks[resource] = acr
}

func (s *Store) FetchResource(_ context.Context, iri rdf.IRI) (rdf.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dataset, ok := s.resources[iri]
	if !ok {
		return rdf.Dataset{}, fmt.Errorf("%w: %s", storage.ErrNotFound, string(iri))
	}
	return dataset, nil
}

func (s *Store) FetchResourceInfo(_ context.Context, iri rdf.IRI) (storage.ResourceInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.resources[iri]; !ok {
		return storage.ResourceInfo{}, fmt.Errorf("%w: %s", storage.ErrNotFound, string(iri))
	}
	info := storage.ResourceInfo{IRI: iri, ContentType: nquads.ContentType}
	if acr, ok := s.acrLinks[iri]; ok {
		info.Links = append(info.Links, storage.Link{Target: acr, Rel: storage.RelACP})
	}
	return info, nil
}

func (s *Store) SaveResource(_ context.Context, iri rdf.IRI, dataset rdf.Dataset) (rdf.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources[iri] = dataset
	return dataset, nil
}
