package commands

import (
	"context"
	"fmt"

	"craftmanager/internal/application"
	"craftmanager/internal/domain"
)

// TagResult contains the result of a tag change
type TagResult struct {
	Craft   *domain.Craft
	Tags    []string // tags after the change
	Message string
}

// TagCommand adds or removes tags on one craft in a single transaction
type TagCommand struct {
	catalog *application.Catalog
	Ref     string
	Tags    []string
	Remove  bool
}

// NewTagCommand creates a new TagCommand
func NewTagCommand(catalog *application.Catalog, ref string, tags []string, remove bool) *TagCommand {
	return &TagCommand{
		catalog: catalog,
		Ref:     ref,
		Tags:    tags,
		Remove:  remove,
	}
}

// Validate checks the craft reference and every tag
func (c *TagCommand) Validate() error {
	if err := application.ValidateRequired("craft", c.Ref); err != nil {
		return err
	}
	if len(c.Tags) == 0 {
		return &application.ValidationError{Field: "tag", Message: "at least one tag is required"}
	}
	for _, tag := range c.Tags {
		if err := application.ValidateTag(tag); err != nil {
			return err
		}
	}
	return nil
}

// Execute applies the tag change
func (c *TagCommand) Execute(ctx context.Context) (*TagResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	store := c.catalog.TagStore()
	if store == nil {
		return nil, fmt.Errorf("tagging is disabled")
	}

	craft, err := c.catalog.Lookup(c.Ref)
	if err != nil {
		return nil, err
	}

	tx, err := store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("starting tag transaction: %w", err)
	}

	key := craft.RefKey()
	for _, tag := range c.Tags {
		tag = application.NormalizeTag(tag)
		if c.Remove {
			err = tx.RemoveTag(key, tag)
		} else {
			err = tx.AddTag(key, tag)
		}
		if err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("updating tag %q: %w", tag, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing tags: %w", err)
	}

	verb := "Tagged"
	if c.Remove {
		verb = "Untagged"
	}

	return &TagResult{
		Craft:   craft,
		Tags:    c.catalog.Tags(ctx, craft),
		Message: fmt.Sprintf("%s %s", verb, craft.DisplayName()),
	}, nil
}

// PruneTagsCommand removes tags of crafts that no longer exist on disk
type PruneTagsCommand struct {
	catalog *application.Catalog
}

// NewPruneTagsCommand creates a new PruneTagsCommand
func NewPruneTagsCommand(catalog *application.Catalog) *PruneTagsCommand {
	return &PruneTagsCommand{catalog: catalog}
}

// Execute deletes orphaned tag rows of the catalog's group and returns
// how many keys were removed. Keys of other groups are never touched.
func (c *PruneTagsCommand) Execute(ctx context.Context) (int, error) {
	store := c.catalog.TagStore()
	if store == nil {
		return 0, nil
	}
	if c.catalog.Report() == nil {
		return 0, application.ErrNotLoaded
	}

	group := c.catalog.Group()
	if group == "" {
		return 0, nil
	}

	live := make(map[string]bool, len(c.catalog.All()))
	for _, craft := range c.catalog.All() {
		live[craft.RefKey()] = true
	}

	keys, err := store.Keys(ctx, group+"_")
	if err != nil {
		return 0, err
	}

	tx, err := store.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("starting tag transaction: %w", err)
	}

	removed := 0
	for _, key := range keys {
		if live[key] || !domain.RefKeyInGroup(key, group) {
			continue
		}
		if err := tx.DeleteKey(key); err != nil {
			tx.Rollback()
			return 0, err
		}
		removed++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing prune: %w", err)
	}
	return removed, nil
}
