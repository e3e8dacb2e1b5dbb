// Package storage defines the resource-fetch collaborators the access
// engine consumes: fetching a resource's dataset, fetching its response
// metadata, and persisting a mutated dataset. Implementations live in the
// memory and httpstore subpackages.
package storage

import (
	"context"
	"errors"

	"github.com/podgraph/podgraph/pkg/rdf"
)

// ErrNotFound is returned when the addressed resource does not exist.
var ErrNotFound = errors.New("storage: resource not found")

// Link is one link relation from a resource's response metadata.
type Link struct {
	Target rdf.IRI
	Rel    string
}

// ResourceInfo is the response metadata of a fetched resource.
type ResourceInfo struct {
	IRI         rdf.IRI
	ContentType string
	Links       []Link
}

// ResourceStore fetches and persists resource descriptions. FetchResource
// and FetchResourceInfo may fail transiently; SaveResource failures are
// propagated unchanged and never retried here.
type ResourceStore interface {
	FetchResource(ctx context.Context, iri rdf.IRI) (rdf.Dataset, error)
	FetchResourceInfo(ctx context.Context, iri rdf.IRI) (ResourceInfo, error)
	SaveResource(ctx context.Context, iri rdf.IRI, dataset rdf.Dataset) (rdf.Dataset, error)
}

// Link relations that announce a resource's access control resource. The
// ACP relation is current; "acl" is the legacy relation older servers
// still send.
const (
	RelACP       = "http://www.w3.org/ns/solid/acp#accessControl"
	RelLegacyACL = "acl"
)

// DiscoverACR resolves the linked access control resource from response
// metadata. Discovery mechanisms are tried in sequence, current first,
// and the first hit wins.
func DiscoverACR(info ResourceInfo) (rdf.IRI, bool) {
	for _, rel := range []string{RelACP, RelLegacyACL} {
		for _, link := range info.Links {
			if link.Rel == rel {
				return link.Target, true
			}
		}
	}
	return "", false
}
