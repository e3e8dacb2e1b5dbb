// Package httpstore implements a resource store over HTTP, speaking
// N-Quads. Fetches retry transient failures with exponential backoff;
// saves are a single PUT with failures propagated unchanged.
package httpstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/podgraph/podgraph/pkg/logger"
	"github.com/podgraph/podgraph/pkg/nquads"
	"github.com/podgraph/podgraph/pkg/rdf"
	"github.com/podgraph/podgraph/pkg/storage"
)

const defaultBackOffMaxDuration = 3 * time.Second

// Store fetches and persists resources over HTTP.
type Store struct {
	client          *http.Client
	logger          logger.Logger
	maxRetryElapsed time.Duration
}

var _ storage.ResourceStore = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Store) { s.client = client }
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithMaxRetryElapsed bounds how long fetch retries may take in total.
func WithMaxRetryElapsed(d time.Duration) Option {
	return func(s *Store) { s.maxRetryElapsed = d }
}

// New returns an HTTP-backed resource store.
func New(opts ...Option) *Store {
	s := &Store{
		client:          http.DefaultClient,
		logger:          logger.NewNoopLogger(),
		maxRetryElapsed: defaultBackOffMaxDuration,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// transientError marks a response worth retrying.
type transientError struct {
	status int
}

func (e *transientError) Error() string {
	return fmt.Sprintf("httpstore: transient upstream status %d", e.status)
}

func (s *Store) FetchResource(ctx context.Context, iri rdf.IRI) (rdf.Dataset, error) {
	var body []byte
	fetch := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, string(iri), nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", nquads.ContentType)

		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
			return backoff.Permanent(fmt.Errorf("%w: %s", storage.ErrNotFound, string(iri)))
		case resp.StatusCode >= 500:
			return &transientError{status: resp.StatusCode}
		case resp.StatusCode >= 400:
			return backoff.Permanent(fmt.Errorf("httpstore: fetch %s: status %d", string(iri), resp.StatusCode))
		}

		body, err = io.ReadAll(resp.Body)
		return err
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = s.maxRetryElapsed
	if err := backoff.Retry(fetch, backoff.WithContext(policy, ctx)); err != nil {
		return rdf.Dataset{}, err
	}

	dataset, err := nquads.Parse(bytes.NewReader(body))
	if err != nil {
		return rdf.Dataset{}, fmt.Errorf("httpstore: fetch %s: %w", string(iri), err)
	}
	s.logger.Debug("fetched resource",
		zap.String("iri", string(iri)),
		zap.Int("quads", dataset.Len()))
	return dataset, nil
}

func (s *Store) FetchResourceInfo(ctx context.Context, iri rdf.IRI) (storage.ResourceInfo, error) {
	var info storage.ResourceInfo
	fetch := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, string(iri), nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
			return backoff.Permanent(fmt.Errorf("%w: %s", storage.ErrNotFound, string(iri)))
		case resp.StatusCode >= 500:
			return &transientError{status: resp.StatusCode}
		case resp.StatusCode >= 400:
			return backoff.Permanent(fmt.Errorf("httpstore: info %s: status %d", string(iri), resp.StatusCode))
		}

		info = storage.ResourceInfo{
			IRI:         iri,
			ContentType: resp.Header.Get("Content-Type"),
			Links:       parseLinkHeaders(resp.Header.Values("Link"), iri),
		}
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = s.maxRetryElapsed
	if err := backoff.Retry(fetch, backoff.WithContext(policy, ctx)); err != nil {
		return storage.ResourceInfo{}, err
	}
	return info, nil
}

// SaveResource persists the dataset with one PUT. It returns the server's
// resulting representation: the response body when the server sends one
// back, otherwise a fresh fetch.
func (s *Store) SaveResource(ctx context.Context, iri rdf.IRI, dataset rdf.Dataset) (rdf.Dataset, error) {
	payload := nquads.Format(dataset)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, string(iri), strings.NewReader(payload))
	if err != nil {
		return rdf.Dataset{}, err
	}
	req.Header.Set("Content-Type", nquads.ContentType)

	resp, err := s.client.Do(req)
	if err != nil {
		return rdf.Dataset{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return rdf.Dataset{}, fmt.Errorf("httpstore: save %s: status %d", string(iri), resp.StatusCode)
	}

	s.logger.Debug("saved resource",
		zap.String("iri", string(iri)),
		zap.Int("quads", dataset.Len()))

	if strings.HasPrefix(resp.Header.Get("Content-Type"), nquads.ContentType) {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return rdf.Dataset{}, err
		}
		return nquads.Parse(bytes.NewReader(body))
	}
	return s.FetchResource(ctx, iri)
}

// parseLinkHeaders extracts link relations, resolving relative targets
// against the fetched resource's address.
func parseLinkHeaders(headers []string, base rdf.IRI) []storage.Link {
	baseURL, err := url.Parse(string(base))
	if err != nil {
		baseURL = nil
	}

	var links []storage.Link
	for _, header := range headers {
		for _, part := range splitLinkHeader(header) {
			link, ok := parseLinkValue(part, baseURL)
			if ok {
				links = append(links, link)
			}
		}
	}
	return links
}

// splitLinkHeader splits a Link header on commas outside angle brackets.
func splitLinkHeader(header string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(header); i++ {
		switch header[i] {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, header[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, header[start:])
	return parts
}

func parseLinkValue(value string, base *url.URL) (storage.Link, bool) {
	value = strings.TrimSpace(value)
	if !strings.HasPrefix(value, "<") {
		return storage.Link{}, false
	}
	end := strings.IndexByte(value, '>')
	if end < 0 {
		return storage.Link{}, false
	}
	target := value[1:end]

	rel := ""
	for _, param := range strings.Split(value[end+1:], ";") {
		param = strings.TrimSpace(param)
		if v, ok := strings.CutPrefix(param, "rel="); ok {
			rel = strings.Trim(v, `"`)
		}
	}
	if rel == "" {
		return storage.Link{}, false
	}

	if base != nil {
		if ref, err := url.Parse(target); err == nil {
			target = base.ResolveReference(ref).String()
		}
	}
	return storage.Link{Target: rdf.IRI(target), Rel: rel}, true
}
