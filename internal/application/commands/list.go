package commands

import (
	"context"

	"craftmanager/internal/application"
	"craftmanager/internal/domain"
)

// ListCommand filters and sorts the loaded catalog
type ListCommand struct {
	catalog *application.Catalog
	Input   application.CriteriaInput
}

// NewListCommand creates a new ListCommand
func NewListCommand(catalog *application.Catalog, input application.CriteriaInput) *ListCommand {
	return &ListCommand{
		catalog: catalog,
		Input:   input,
	}
}

// Validate parses the criteria input
func (c *ListCommand) Validate() (domain.Criteria, error) {
	return application.ParseCriteria(c.Input)
}

// Execute returns the crafts matching the criteria
func (c *ListCommand) Execute(ctx context.Context) ([]*domain.Craft, error) {
	if c.catalog.Report() == nil {
		return nil, application.ErrNotLoaded
	}

	criteria, err := c.Validate()
	if err != nil {
		return nil, err
	}

	return c.catalog.Filter(ctx, criteria), nil
}
