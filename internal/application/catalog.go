package application

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"craftmanager/internal/domain"
	"craftmanager/internal/ports"
)

// Catalog holds every craft found in the save directory and the current
// view derived from it by filtering and sorting.
//
// A Catalog is not safe for concurrent use.
type Catalog struct {
	source  ports.CraftSource
	builder *CraftBuilder
	tags    ports.TagStore // nil disables tag filtering
	logger  *log.Logger

	all      []*domain.Craft
	view     []*domain.Craft
	selected *domain.Craft // last craft passed to Select
	criteria domain.Criteria
	report   *domain.ScanReport
}

// NewCatalog creates an empty catalog. Call Load to populate it.
func NewCatalog(source ports.CraftSource, builder *CraftBuilder, tags ports.TagStore, logger *log.Logger) *Catalog {
	return &Catalog{
		source:  source,
		builder: builder,
		tags:    tags,
		logger:  logger,
	}
}

// ScanResult is a full set built by Scan. Install it with Replace.
type ScanResult struct {
	crafts []*domain.Craft
	Report *domain.ScanReport
}

// Load rescans the source and replaces the full set. The view is reset to
// the full set in scan order with nothing selected. Files that cannot be
// read or parsed are skipped and listed in the returned report.
func (c *Catalog) Load(ctx context.Context) (*domain.ScanReport, error) {
	result, err := c.Scan(ctx)
	if err != nil {
		return nil, err
	}
	c.Replace(result)
	return result.Report, nil
}

// Scan builds a new full set from the source without changing the
// catalog, so it may run while other goroutines read the current set.
func (c *Catalog) Scan(ctx context.Context) (*ScanResult, error) {
	start := time.Now()

	paths, err := c.source.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", c.source.Root(), err)
	}

	report := &domain.ScanReport{FilesScanned: len(paths)}
	crafts := make([]*domain.Craft, 0, len(paths))

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		craft, err := c.build(path)
		if err != nil {
			c.logger.Warn("skipping craft", "path", path, "error", err)
			report.Failures = append(report.Failures, domain.ScanFailure{Path: path, Err: err})
			continue
		}
		crafts = append(crafts, craft)
	}

	report.CraftLoaded = len(crafts)
	report.Duration = time.Since(start)

	c.logger.Info("catalog loaded",
		"root", c.source.Root(),
		"crafts", report.CraftLoaded,
		"failed", report.Failed(),
		"duration", report.Duration.Round(time.Millisecond),
	)

	return &ScanResult{crafts: crafts, Report: report}, nil
}

// Replace installs the set built by Scan, resetting view, criteria and
// selection
func (c *Catalog) Replace(result *ScanResult) {
	c.all = result.crafts
	c.view = slices.Clone(result.crafts)
	c.selected = nil
	c.criteria = domain.Criteria{}
	c.report = result.Report
}

func (c *Catalog) build(path string) (*domain.Craft, error) {
	file, err := c.source.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return c.builder.Build(file)
}

// Filter derives a new view from the full set: name search, then type,
// then tags, then sort. Zero criteria restore the full set in scan order.
func (c *Catalog) Filter(ctx context.Context, criteria domain.Criteria) []*domain.Craft {
	view := slices.Clone(c.all)

	if criteria.Search != "" {
		query := strings.ToLower(criteria.Search)
		view = slices.DeleteFunc(view, func(craft *domain.Craft) bool {
			return !strings.Contains(strings.ToLower(craft.Name), query)
		})
	}

	if criteria.Types != nil {
		view = slices.DeleteFunc(view, func(craft *domain.Craft) bool {
			return !criteria.Types[craft.Type]
		})
	}

	if len(criteria.Tags) > 0 {
		view = slices.DeleteFunc(view, func(craft *domain.Craft) bool {
			return !matchTags(c.Tags(ctx, craft), criteria.Tags, criteria.TagMode)
		})
	}

	SortCrafts(view, criteria.Sort, criteria.Reverse)

	c.view = view
	c.criteria = criteria
	c.normalizeSelection()
	return view
}

// normalizeSelection keeps at most one selected craft in the view. A view
// that widens over crafts selected in earlier views keeps the most recent
// selection, or the first selected craft when that one is not in view.
func (c *Catalog) normalizeSelection() {
	keep := c.selected
	if keep != nil && !slices.Contains(c.view, keep) {
		keep = nil
	}

	for _, v := range c.view {
		if !v.Selected {
			continue
		}
		if keep == nil {
			keep = v
		}
		v.Selected = v == keep
	}
}

// matchTags reports whether have satisfies want under mode
func matchTags(have, want []string, mode domain.TagMode) bool {
	if mode == domain.TagModeAll {
		for _, tag := range want {
			if !slices.Contains(have, tag) {
				return false
			}
		}
		return true
	}

	for _, tag := range want {
		if slices.Contains(have, tag) {
			return true
		}
	}
	return false
}

// SortCrafts orders crafts in place. Name sorts ascending, every other key
// descending, and equal elements keep their relative order. Unknown keys
// sort by name; an empty key leaves the order alone. Reverse then inverts
// the whole result.
func SortCrafts(crafts []*domain.Craft, key domain.SortKey, reverse bool) {
	if key != "" {
		slices.SortStableFunc(crafts, comparator(key))
	}
	if reverse {
		slices.Reverse(crafts)
	}
}

func comparator(key domain.SortKey) func(a, b *domain.Craft) int {
	switch key {
	case domain.SortPartCount:
		return func(a, b *domain.Craft) int { return cmp.Compare(b.PartCount, a.PartCount) }
	case domain.SortMass:
		return func(a, b *domain.Craft) int { return cmp.Compare(b.Mass.Total, a.Mass.Total) }
	case domain.SortCreated:
		return func(a, b *domain.Craft) int { return b.CreatedAt.Compare(a.CreatedAt) }
	case domain.SortUpdated:
		return func(a, b *domain.Craft) int { return b.UpdatedAt.Compare(a.UpdatedAt) }
	case domain.SortStageCount:
		return func(a, b *domain.Craft) int { return cmp.Compare(b.StageCount, a.StageCount) }
	default:
		return func(a, b *domain.Craft) int { return cmp.Compare(a.Name, b.Name) }
	}
}

// Select marks craft as the selected entry of the current view and clears
// the flag on every other entry of the view. Crafts outside the view are
// left untouched. Returns false if craft is not in the view.
func (c *Catalog) Select(craft *domain.Craft) bool {
	c.selected = craft
	found := false
	for _, v := range c.view {
		v.Selected = v == craft
		if v.Selected {
			found = true
		}
	}
	return found
}

// Selected returns the selected craft of the current view, or nil
func (c *Catalog) Selected() *domain.Craft {
	for _, v := range c.view {
		if v.Selected {
			return v
		}
	}
	return nil
}

// All returns the full set in scan order
func (c *Catalog) All() []*domain.Craft {
	return c.all
}

// View returns the current view
func (c *Catalog) View() []*domain.Craft {
	return c.view
}

// Criteria returns the criteria that produced the current view
func (c *Catalog) Criteria() domain.Criteria {
	return c.criteria
}

// Report returns the result of the last Load, or nil before the first one
func (c *Catalog) Report() *domain.ScanReport {
	return c.report
}

// Group returns the save group the catalog builds crafts for
func (c *Catalog) Group() string {
	if c.builder == nil {
		return ""
	}
	return c.builder.Group()
}

// Resolver returns the part resolver behind the builder, or nil
func (c *Catalog) Resolver() *PartResolver {
	if c.builder == nil {
		return nil
	}
	return c.builder.Resolver()
}

// Root returns the directory the catalog scans
func (c *Catalog) Root() string {
	return c.source.Root()
}

// Find returns the craft at path
func (c *Catalog) Find(path string) (*domain.Craft, error) {
	for _, craft := range c.all {
		if craft.Path == path {
			return craft, nil
		}
	}
	return nil, fmt.Errorf("craft %s: %w", path, ErrNotFound)
}

// FindByName returns the first craft whose file name or ship name matches
// name, ignoring case
func (c *Catalog) FindByName(name string) (*domain.Craft, error) {
	for _, craft := range c.all {
		if strings.EqualFold(craft.Name, name) || strings.EqualFold(craft.AltName, name) {
			return craft, nil
		}
	}
	return nil, fmt.Errorf("craft %q: %w", name, ErrNotFound)
}

// Lookup resolves a craft by path first, then by name
func (c *Catalog) Lookup(ref string) (*domain.Craft, error) {
	if craft, err := c.Find(ref); err == nil {
		return craft, nil
	}
	return c.FindByName(ref)
}

// Tags returns the tags assigned to craft. Store errors are logged and
// read as no tags.
func (c *Catalog) Tags(ctx context.Context, craft *domain.Craft) []string {
	if c.tags == nil {
		return nil
	}
	tags, err := c.tags.Tags(ctx, craft.RefKey())
	if err != nil {
		c.logger.Warn("reading tags", "craft", craft.Name, "error", err)
		return nil
	}
	return tags
}

// TagStore returns the tag store, or nil when tagging is disabled
func (c *Catalog) TagStore() ports.TagStore {
	return c.tags
}
