package application

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"craftmanager/internal/domain"
	"craftmanager/internal/ports"
)

// PartResolver caches the part catalog keyed by canonical part name.
// The cache is filled on Initialize or on the first Resolve that finds it
// empty.
type PartResolver struct {
	catalog ports.PartCatalog
	logger  *log.Logger

	mu      sync.Mutex
	parts   map[string]domain.PartInfo
	lastErr string // last load failure already logged
}

// NewPartResolver creates a resolver backed by catalog
func NewPartResolver(catalog ports.PartCatalog, logger *log.Logger) *PartResolver {
	return &PartResolver{
		catalog: catalog,
		logger:  logger,
	}
}

// Initialize loads every part from the catalog, replacing the cache
func (r *PartResolver) Initialize() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// Resolve looks up a part by canonical name. An empty cache is loaded
// first; a load failure is reported as not found and logged once until
// the error changes or a load succeeds.
func (r *PartResolver) Resolve(name string) (domain.PartInfo, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.parts) == 0 {
		if err := r.load(); err != nil {
			if msg := err.Error(); msg != r.lastErr {
				r.lastErr = msg
				r.logger.Warn("part catalog unavailable", "error", err)
			}
			return domain.PartInfo{}, false
		}
	}

	info, ok := r.parts[name]
	return info, ok
}

// Invalidate drops the cache so the next lookup reloads it
func (r *PartResolver) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parts = nil
}

// Len returns the number of cached parts
func (r *PartResolver) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.parts)
}

// Catalog returns the underlying part catalog
func (r *PartResolver) Catalog() ports.PartCatalog {
	return r.catalog
}

// load must be called with mu held
func (r *PartResolver) load() error {
	parts, err := r.catalog.Parts()
	if err != nil {
		return fmt.Errorf("loading parts: %w", err)
	}

	m := make(map[string]domain.PartInfo, len(parts))
	for _, p := range parts {
		m[p.Name] = p
	}
	r.parts = m
	r.lastErr = ""

	r.logger.Debug("part catalog loaded", "parts", len(m))
	return nil
}
