package gamedata

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"craftmanager/internal/confignode"
	"craftmanager/internal/domain"
	"craftmanager/internal/ports"
)

// Catalog implements ports.PartCatalog by reading part configs from the
// game's data directory and unlock state from a career save.
type Catalog struct {
	dataDir        string
	persistentFile string
	logger         *log.Logger

	resources map[string]domain.ResourceInfo
	unlocked  map[string]bool // nil means every part is available
}

// Ensure Catalog implements PartCatalog
var _ ports.PartCatalog = (*Catalog)(nil)

// NewCatalog creates a part catalog. persistentFile may be empty, in which
// case every part counts as unlocked.
func NewCatalog(dataDir, persistentFile string, logger *log.Logger) *Catalog {
	return &Catalog{
		dataDir:        dataDir,
		persistentFile: persistentFile,
		logger:         logger,
	}
}

// Parts reads every PART and RESOURCE_DEFINITION from the data directory
// and refreshes the unlock state from the save.
func (c *Catalog) Parts() ([]domain.PartInfo, error) {
	if c.dataDir == "" {
		return nil, fmt.Errorf("game data directory not configured")
	}

	var parts []domain.PartInfo
	resources := make(map[string]domain.ResourceInfo)
	files := 0

	err := filepath.WalkDir(c.dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == c.dataDir {
				return err
			}
			return nil // Skip errors
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".cfg") {
			return nil
		}

		root, err := confignode.ParseFile(path)
		if err != nil {
			c.logger.Warn("skipping config", "path", path, "error", err)
			return nil
		}
		files++

		for _, node := range root.NodesNamed("PART") {
			if info, ok := partInfo(node); ok {
				parts = append(parts, info)
			}
		}
		for _, node := range root.NodesNamed("RESOURCE_DEFINITION") {
			if res, ok := resourceInfo(node); ok {
				resources[res.Name] = res
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read game data: %w", err)
	}

	c.resources = resources
	c.unlocked = c.loadUnlocked()

	c.logger.Debug("game data read",
		"configs", files,
		"parts", len(parts),
		"resources", len(resources),
		"career", c.unlocked != nil,
	)

	return parts, nil
}

// CostsAndMass splits a part instance's cost and mass into dry and fuel
// shares using the resource amounts stored in the craft. Resources without
// a definition contribute nothing.
func (c *Catalog) CostsAndMass(node *confignode.Node, info domain.PartInfo) domain.PartCost {
	pc := domain.PartCost{
		DryCost: info.Cost,
		DryMass: info.Mass,
	}

	for _, res := range node.NodesNamed("RESOURCE") {
		def, ok := c.resources[res.ValueOr("name", "")]
		if !ok {
			continue
		}
		amount := parseFloat(res.ValueOr("amount", ""))
		capacity := parseFloat(res.ValueOr("maxAmount", ""))

		pc.DryCost -= capacity * def.UnitCost
		pc.FuelCost += amount * def.UnitCost
		pc.FuelMass += amount * def.Density
	}

	return pc
}

// Unlocked reports whether a part has been purchased in the career save.
// Parts without a tech requirement are always available.
func (c *Catalog) Unlocked(info domain.PartInfo) bool {
	if c.unlocked == nil || info.TechRequired == "" {
		return true
	}
	return c.unlocked[info.Name]
}

// loadUnlocked reads the purchased parts of every researched tech. A
// missing save, a sandbox game or a save without an R&D scenario yields
// nil.
func (c *Catalog) loadUnlocked() map[string]bool {
	if c.persistentFile == "" {
		return nil
	}

	root, err := confignode.ParseFile(c.persistentFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			c.logger.Warn("reading save", "path", c.persistentFile, "error", err)
		}
		return nil
	}

	game, ok := root.Node("GAME")
	if !ok {
		game = root
	}
	if strings.EqualFold(game.ValueOr("Mode", ""), "SANDBOX") {
		return nil
	}

	var rnd *confignode.Node
	for _, scenario := range game.NodesNamed("SCENARIO") {
		if scenario.ValueOr("name", "") == "ResearchAndDevelopment" {
			rnd = scenario
			break
		}
	}
	if rnd == nil {
		return nil
	}

	unlocked := make(map[string]bool)
	for _, tech := range rnd.NodesNamed("Tech") {
		if state := tech.ValueOr("state", "Available"); state != "Available" {
			continue
		}
		for _, part := range tech.Values("part") {
			unlocked[domain.CanonicalPartName(part)] = true
		}
	}
	return unlocked
}

func partInfo(node *confignode.Node) (domain.PartInfo, bool) {
	name := domain.CanonicalPartName(node.ValueOr("name", ""))
	if name == "" {
		return domain.PartInfo{}, false
	}

	info := domain.PartInfo{
		Name:         name,
		Title:        node.ValueOr("title", name),
		Cost:         parseFloat(node.ValueOr("cost", "")),
		Mass:         parseFloat(node.ValueOr("mass", "")),
		TechRequired: node.ValueOr("TechRequired", ""),
	}

	for _, res := range node.NodesNamed("RESOURCE") {
		resName := res.ValueOr("name", "")
		if resName == "" {
			continue
		}
		if info.Resources == nil {
			info.Resources = make(map[string]float64)
		}
		info.Resources[resName] = parseFloat(res.ValueOr("maxAmount", ""))
	}

	return info, true
}

func resourceInfo(node *confignode.Node) (domain.ResourceInfo, bool) {
	name := node.ValueOr("name", "")
	if name == "" {
		return domain.ResourceInfo{}, false
	}
	return domain.ResourceInfo{
		Name:     name,
		Density:  parseFloat(node.ValueOr("density", "")),
		UnitCost: parseFloat(node.ValueOr("unitCost", "")),
	}, true
}

// parseFloat returns 0 for empty or malformed values
func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
