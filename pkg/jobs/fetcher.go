package jobs

import (
	"fmt"
	"strings"
	"sync"

	"github.com/samvad-hq/tokenmetrics-go/pkg/tokenmetrics"
)

// fetcherRegistry implements FetcherRegistry.
type fetcherRegistry struct {
	fetchersByID       map[string]Fetcher
	fetchersByResource map[string]Fetcher
	mu                 sync.RWMutex
}

// NewFetcherRegistry builds a registry for the provided fetcher implementations keyed by job id.
func NewFetcherRegistry(fetchers ...Fetcher) FetcherRegistry {
	return NewResourceFetcherRegistry(nil, fetchers...)
}

// NewResourceFetcherRegistry builds a registry with resource-based fetchers and optional job-specific overrides.
func NewResourceFetcherRegistry(resourceFetchers map[string]Fetcher, fetchers ...Fetcher) FetcherRegistry {
	reg := &fetcherRegistry{
		fetchersByID:       make(map[string]Fetcher),
		fetchersByResource: make(map[string]Fetcher),
	}

	for _, f := range fetchers {
		reg.registerIDFetcher(f)
	}
	for resource, f := range resourceFetchers {
		reg.registerResourceFetcher(resource, f)
	}

	return reg
}

// registerIDFetcher registers a fetcher by its job ID.
func (r *fetcherRegistry) registerIDFetcher(f Fetcher) {
	if f == nil {
		return
	}
	key := strings.ToLower(strings.TrimSpace(f.ID()))
	if key == "" {
		return
	}

	r.mu.Lock()
	r.fetchersByID[key] = f
	r.mu.Unlock()
}

// registerResourceFetcher registers a fetcher by resource name.
func (r *fetcherRegistry) registerResourceFetcher(resource string, f Fetcher) {
	if f == nil {
		return
	}
	key := strings.ToLower(strings.TrimSpace(resource))
	if key == "" {
		return
	}

	r.mu.Lock()
	r.fetchersByResource[key] = f
	r.mu.Unlock()
}

// FetcherFor selects the fetcher for the given job based on its id or resource.
func (r *fetcherRegistry) FetcherFor(job Job) (Fetcher, error) {
	if r == nil {
		return nil, fmt.Errorf("fetcher registry is nil")
	}
	if strings.TrimSpace(job.ID) == "" {
		return nil, fmt.Errorf("job id is empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	idKey := strings.ToLower(strings.TrimSpace(job.ID))
	if f, ok := r.fetchersByID[idKey]; ok {
		return f, nil
	}

	resourceKey := strings.ToLower(strings.TrimSpace(job.Resource))
	if resourceKey != "" {
		if f, ok := r.fetchersByResource[resourceKey]; ok {
			return f, nil
		}
	}

	return nil, fmt.Errorf("no fetcher registered for job %q (resource %q)", job.ID, job.Resource)
}

// DefaultFetcherRegistry wires every API facade of client to its resource name.
func DefaultFetcherRegistry(client *tokenmetrics.Client) (FetcherRegistry, error) {
	if client == nil {
		return nil, fmt.Errorf("tokenmetrics client is nil")
	}

	resourceFetchers := make(map[string]Fetcher, len(knownResources))
	for _, f := range resourceFetchersFor(client) {
		resourceFetchers[f.ID()] = f
	}
	return NewResourceFetcherRegistry(resourceFetchers), nil
}
