package commands

import (
	"context"

	"craftmanager/internal/application"
	"craftmanager/internal/domain"
)

// CraftDetail is a craft with its tags
type CraftDetail struct {
	Craft *domain.Craft
	Tags  []string
}

// ShowCommand looks up one craft by path or name
type ShowCommand struct {
	catalog *application.Catalog
	Ref     string
}

// NewShowCommand creates a new ShowCommand
func NewShowCommand(catalog *application.Catalog, ref string) *ShowCommand {
	return &ShowCommand{
		catalog: catalog,
		Ref:     ref,
	}
}

// Validate checks that a reference was given
func (c *ShowCommand) Validate() error {
	return application.ValidateRequired("craft", c.Ref)
}

// Execute returns the craft and its tags
func (c *ShowCommand) Execute(ctx context.Context) (*CraftDetail, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	craft, err := c.catalog.Lookup(c.Ref)
	if err != nil {
		return nil, err
	}

	return &CraftDetail{
		Craft: craft,
		Tags:  c.catalog.Tags(ctx, craft),
	}, nil
}
