package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/podgraph/podgraph/pkg/rdf"
	"github.com/podgraph/podgraph/pkg/storage"
)

var (
	resource = rdf.IRI("https://pod.example/doc")
	acr      = rdf.IRI("https://pod.example/doc?ext=acr")
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	dataset := rdf.NewDataset(rdf.Quad{
		Subject:   resource,
		Predicate: rdf.IRI("https://ex.org/p"),
		Object:    rdf.StringLiteral("v"),
	})

	t.Run("fetch_returns_what_was_put", func(t *testing.T) {
		s := New()
		s.Put(resource, dataset)

		got, err := s.FetchResource(ctx, resource)
		require.NoError(t, err)
		require.Equal(t, dataset, got)
	})

	t.Run("missing_resource_is_not_found", func(t *testing.T) {
		s := New()
		_, err := s.FetchResource(ctx, resource)
		require.ErrorIs(t, err, storage.ErrNotFound)

		_, err = s.FetchResourceInfo(ctx, resource)
		require.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("info_carries_the_acr_link", func(t *testing.T) {
		s := New()
		s.Put(resource, dataset)
		s.LinkACR(resource, acr)

		info, err := s.FetchResourceInfo(ctx, resource)
		require.NoError(t, err)
		got, ok := storage.DiscoverACR(info)
		require.True(t, ok)
		require.Equal(t, acr, got)
	})

	t.Run("info_without_link_has_no_acr", func(t *testing.T) {
		s := New()
		s.Put(resource, dataset)

		info, err := s.FetchResourceInfo(ctx, resource)
		require.NoError(t, err)
		_, ok := storage.DiscoverACR(info)
		require.False(t, ok)
	})

	t.Run("save_replaces_and_returns", func(t *testing.T) {
		s := New()
		s.Put(resource, rdf.NewDataset())

		got, err := s.SaveResource(ctx, resource, dataset)
		require.NoError(t, err)
		require.Equal(t, dataset, got)

		fetched, err := s.FetchResource(ctx, resource)
		require.NoError(t, err)
		require.Equal(t, dataset, fetched)
	})
}
