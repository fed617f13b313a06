package commands

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"craftmanager/internal/adapters/filesystem"
	"craftmanager/internal/adapters/gamedata"
	"craftmanager/internal/adapters/sqlite"
	"craftmanager/internal/application"
	"craftmanager/internal/domain"
)

const partsCfg = `
RESOURCE_DEFINITION
{
	name = LiquidFuel
	density = 0.005
	unitCost = 0.8
}
PART
{
	name = mk1pod_v2
	cost = 600
	mass = 0.8
	TechRequired = start
}
PART
{
	name = fuelTank
	cost = 250
	mass = 0.25
	TechRequired = basicRocketry
	RESOURCE
	{
		name = LiquidFuel
		amount = 90
		maxAmount = 90
	}
}
`

const persistentSfs = `
GAME
{
	Mode = CAREER
	SCENARIO
	{
		name = ResearchAndDevelopment
		Tech
		{
			id = start
			state = Available
			part = mk1pod.v2
		}
	}
}
`

const munLander = `ship = Mun Lander
type = VAB
PART
{
	part = mk1pod.v2_1
	istg = 0
}
PART
{
	part = fuelTank_2
	istg = 1
	RESOURCE
	{
		name = LiquidFuel
		amount = 90
		maxAmount = 90
	}
}
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// TestFullWorkflow exercises the catalog end to end:
// scan → list → show → tag → filter by tag → untag → prune
func TestFullWorkflow(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()
	logger := log.New(io.Discard)

	saveDir := filepath.Join(tmpDir, "saves", "career")
	dataDir := filepath.Join(tmpDir, "GameData")

	writeFile(t, filepath.Join(dataDir, "Squad", "parts.cfg"), partsCfg)
	writeFile(t, filepath.Join(saveDir, "persistent.sfs"), persistentSfs)
	writeFile(t, filepath.Join(saveDir, "Ships", "VAB", "Mun Lander.craft"), munLander)
	writeFile(t, filepath.Join(saveDir, "Ships", "SPH", "Aeris.craft"), "ship = Aeris\ntype = SPH\nPART\n{\npart = modWing_1\n}\n")
	writeFile(t, filepath.Join(saveDir, "Ships", "VAB", "Broken.craft"), "PART\n{\n")

	tags := sqlite.NewTagStore()
	require.NoError(t, tags.Open(filepath.Join(tmpDir, "tags.db")))
	defer tags.Close()

	parts := gamedata.NewCatalog(dataDir, filepath.Join(saveDir, "persistent.sfs"), logger)
	resolver := application.NewPartResolver(parts, logger)
	require.NoError(t, resolver.Initialize())

	builder := application.NewCraftBuilder(resolver, "career")
	catalog := application.NewCatalog(filesystem.NewSource(saveDir), builder, tags, logger)

	// 1. Scan
	report, err := NewScanCommand(catalog).Execute(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, report.FilesScanned)
	require.Equal(t, 2, report.CraftLoaded)
	require.Len(t, report.Failures, 1)
	require.Equal(t, "Broken.craft", filepath.Base(report.Failures[0].Path))

	// 2. List sorted by mass
	crafts, err := NewListCommand(catalog, application.CriteriaInput{Sort: "mass"}).Execute(ctx)
	require.NoError(t, err)
	require.Len(t, crafts, 2)
	require.Equal(t, "Mun Lander", crafts[0].Name)

	// 3. Show derived metrics
	detail, err := NewShowCommand(catalog, "mun lander").Execute(ctx)
	require.NoError(t, err)
	lander := detail.Craft
	require.Equal(t, domain.ConstructionVAB, lander.Type)
	require.Equal(t, 2, lander.PartCount)
	require.Equal(t, 2, lander.StageCount)
	require.InDelta(t, 850, lander.Cost.Total, 1e-9)
	require.InDelta(t, 72, lander.Cost.Fuel, 1e-9)
	require.InDelta(t, 1.05+0.45, lander.Mass.Total, 1e-9)
	require.True(t, lander.LockedParts)
	require.False(t, lander.MissingParts)
	require.Empty(t, detail.Tags)

	aeris, err := catalog.FindByName("Aeris")
	require.NoError(t, err)
	require.True(t, aeris.MissingParts)

	// 4. Tag
	tagOut, err := NewTagCommand(catalog, "Mun Lander", []string{"Crewed", "mun"}, false).Execute(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"crewed", "mun"}, tagOut.Tags)

	_, err = NewTagCommand(catalog, "Aeris", []string{"crewed"}, false).Execute(ctx)
	require.NoError(t, err)

	// 5. Filter by tag
	crafts, err = NewListCommand(catalog, application.CriteriaInput{Tags: []string{"crewed", "mun"}, TagMode: "all"}).Execute(ctx)
	require.NoError(t, err)
	require.Len(t, crafts, 1)
	require.Equal(t, "Mun Lander", crafts[0].Name)

	crafts, err = NewListCommand(catalog, application.CriteriaInput{Tags: []string{"crewed", "mun"}}).Execute(ctx)
	require.NoError(t, err)
	require.Len(t, crafts, 2)

	// 6. Untag
	tagOut, err = NewTagCommand(catalog, "Mun Lander", []string{"mun"}, true).Execute(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"crewed"}, tagOut.Tags)

	// 7. Prune after a craft disappears
	require.NoError(t, os.Remove(aeris.Path))
	_, err = NewScanCommand(catalog).Execute(ctx)
	require.NoError(t, err)

	removed, err := NewPruneTagsCommand(catalog).Execute(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	all, err := tags.AllTags(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"crewed"}, all)
}

// newSaveCatalog wires a catalog over saveDir for group against a shared store
func newSaveCatalog(t *testing.T, saveDir, group string, tags *sqlite.TagStore) *application.Catalog {
	t.Helper()
	logger := log.New(io.Discard)
	resolver := application.NewPartResolver(gamedata.NewCatalog(filepath.Join(saveDir, "GameData"), "", logger), logger)
	return application.NewCatalog(filesystem.NewSource(saveDir), application.NewCraftBuilder(resolver, group), tags, logger)
}

func TestPruneTags_KeepsGroupsSharingPrefix(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()

	tags := sqlite.NewTagStore()
	require.NoError(t, tags.Open(filepath.Join(tmpDir, "tags.db")))
	defer tags.Close()

	careerDir := filepath.Join(tmpDir, "saves", "career")
	hardDir := filepath.Join(tmpDir, "saves", "career_hard")
	writeFile(t, filepath.Join(careerDir, "Ships", "VAB", "Lander.craft"), "type = VAB\n")
	writeFile(t, filepath.Join(hardDir, "Ships", "VAB", "Probe.craft"), "type = VAB\n")

	require.NoError(t, tags.AddTag(ctx, "career_VAB_Lander", "crewed"))
	require.NoError(t, tags.AddTag(ctx, "career_VAB_Gone", "old"))
	require.NoError(t, tags.AddTag(ctx, "career_hard_VAB_Probe", "keep"))

	career := newSaveCatalog(t, careerDir, "career", tags)
	_, err := NewScanCommand(career).Execute(ctx)
	require.NoError(t, err)

	removed, err := NewPruneTagsCommand(career).Execute(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	kept, err := tags.Tags(ctx, "career_hard_VAB_Probe")
	require.NoError(t, err)
	require.Equal(t, []string{"keep"}, kept)

	kept, err = tags.Tags(ctx, "career_VAB_Lander")
	require.NoError(t, err)
	require.Equal(t, []string{"crewed"}, kept)
}

func TestPruneTags_EmptySave(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()

	tags := sqlite.NewTagStore()
	require.NoError(t, tags.Open(filepath.Join(tmpDir, "tags.db")))
	defer tags.Close()

	require.NoError(t, tags.AddTag(ctx, "career_VAB_Gone", "old"))
	require.NoError(t, tags.AddTag(ctx, "sandbox_VAB_Other", "keep"))

	saveDir := filepath.Join(tmpDir, "saves", "career")
	require.NoError(t, os.MkdirAll(saveDir, 0755))

	catalog := newSaveCatalog(t, saveDir, "career", tags)
	report, err := NewScanCommand(catalog).Execute(ctx)
	require.NoError(t, err)
	require.Zero(t, report.CraftLoaded)

	removed, err := NewPruneTagsCommand(catalog).Execute(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	all, err := tags.AllTags(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"keep"}, all)
}

func TestListCommand_InvalidCriteria(t *testing.T) {
	catalog := application.NewCatalog(filesystem.NewSource(t.TempDir()), nil, nil, log.New(io.Discard))
	_, err := catalog.Load(context.Background())
	require.NoError(t, err)

	_, err = NewListCommand(catalog, application.CriteriaInput{Sort: "weight"}).Execute(context.Background())
	require.ErrorIs(t, err, application.ErrInvalidCriteria)

	_, err = NewListCommand(catalog, application.CriteriaInput{Types: []string{"hangar"}}).Execute(context.Background())
	require.ErrorIs(t, err, application.ErrInvalidCriteria)
}

func TestListCommand_NotLoaded(t *testing.T) {
	catalog := application.NewCatalog(filesystem.NewSource(t.TempDir()), nil, nil, log.New(io.Discard))

	_, err := NewListCommand(catalog, application.CriteriaInput{}).Execute(context.Background())
	require.ErrorIs(t, err, application.ErrNotLoaded)
}

func TestTagCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		tags    []string
		wantErr bool
	}{
		{"valid", "Mun Lander", []string{"crewed"}, false},
		{"empty ref", "", []string{"crewed"}, true},
		{"no tags", "Mun Lander", nil, true},
		{"blank tag", "Mun Lander", []string{"  "}, true},
		{"tag with space", "Mun Lander", []string{"heavy lifter"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&TagCommand{Ref: tt.ref, Tags: tt.tags}).Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
