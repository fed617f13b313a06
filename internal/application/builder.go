package application

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"craftmanager/internal/confignode"
	"craftmanager/internal/domain"
	"craftmanager/internal/ports"
)

// descriptionBreak is the line-break marker craft files use in descriptions
const descriptionBreak = "¨"

// CraftBuilder turns a craft file into a domain.Craft with derived metrics
type CraftBuilder struct {
	resolver *PartResolver
	group    string
}

// NewCraftBuilder creates a builder. group is stamped on every craft and
// feeds its tag reference key.
func NewCraftBuilder(resolver *PartResolver, group string) *CraftBuilder {
	return &CraftBuilder{
		resolver: resolver,
		group:    group,
	}
}

// Group returns the save group stamped on every craft
func (b *CraftBuilder) Group() string {
	return b.group
}

// Resolver returns the part resolver the builder looks parts up in
func (b *CraftBuilder) Resolver() *PartResolver {
	return b.resolver
}

// Build parses file and computes its metrics
func (b *CraftBuilder) Build(file *ports.CraftFile) (*domain.Craft, error) {
	root, err := confignode.Parse(file.Data)
	if err != nil {
		pe := &ParseError{Path: file.Path, Err: err}
		var syn *confignode.SyntaxError
		if errors.As(err, &syn) {
			pe.Line = syn.Line
		}
		return nil, pe
	}

	sum := sha256.Sum256(file.Data)
	base := filepath.Base(file.Path)

	craft := &domain.Craft{
		Path:        file.Path,
		Name:        strings.TrimSuffix(base, filepath.Ext(base)),
		AltName:     root.ValueOr("ship", ""),
		Description: strings.ReplaceAll(root.ValueOr("description", ""), descriptionBreak, "\n"),
		Version:     root.ValueOr("version", ""),
		Group:       b.group,
		Type:        domain.ParseConstructionType(root.ValueOr("type", "")),
		CreatedAt:   file.CreatedAt,
		UpdatedAt:   file.UpdatedAt,
		Checksum:    hex.EncodeToString(sum[:]),
	}

	catalog := b.resolver.Catalog()
	maxStage := -1

	for _, part := range root.Nodes() {
		craft.PartCount++

		if stage, ok := stageIndex(part); ok && stage > maxStage {
			maxStage = stage
		}

		ref, _ := part.Value("part")
		info, ok := b.resolver.Resolve(domain.PartName(ref))
		if !ok {
			craft.MissingParts = true
			continue
		}

		pc := catalog.CostsAndMass(part, info)
		craft.Cost.Add(pc.DryCost, pc.FuelCost)
		craft.Mass.Add(pc.DryMass, pc.FuelMass)

		if !catalog.Unlocked(info) {
			craft.LockedParts = true
		}
	}

	craft.StageCount = 1
	if maxStage >= 0 {
		craft.StageCount = maxStage + 1
	}

	craft.Cost.Close()
	craft.Mass.Close()

	return craft, nil
}

// stageIndex reads a part's istg value. Missing, malformed and negative
// values are ignored.
func stageIndex(part *confignode.Node) (int, bool) {
	s, ok := part.Value("istg")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
