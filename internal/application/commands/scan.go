package commands

import (
	"context"

	"craftmanager/internal/application"
	"craftmanager/internal/domain"
)

// ScanCommand reloads the catalog from disk
type ScanCommand struct {
	catalog *application.Catalog

	// RefreshParts drops the cached part catalog first, so parts
	// researched since the last scan show as unlocked
	RefreshParts bool
}

// NewScanCommand creates a new ScanCommand
func NewScanCommand(catalog *application.Catalog) *ScanCommand {
	return &ScanCommand{catalog: catalog}
}

// NewRescanCommand creates a ScanCommand that also reloads the part catalog
func NewRescanCommand(catalog *application.Catalog) *ScanCommand {
	return &ScanCommand{catalog: catalog, RefreshParts: true}
}

// Execute runs the scan and returns its report
func (c *ScanCommand) Execute(ctx context.Context) (*domain.ScanReport, error) {
	result, err := c.Scan(ctx)
	if err != nil {
		return nil, err
	}
	c.catalog.Replace(result)
	return result.Report, nil
}

// Scan builds the new set without installing it. Callers that read the
// catalog from another goroutine install the result with Catalog.Replace
// on their own goroutine.
func (c *ScanCommand) Scan(ctx context.Context) (*application.ScanResult, error) {
	if c.RefreshParts {
		if resolver := c.catalog.Resolver(); resolver != nil {
			resolver.Invalidate()
		}
	}
	return c.catalog.Scan(ctx)
}
