package domain

import (
	"fmt"
	"strings"
	"time"
)

// ConstructionType identifies the facility a craft was built in
type ConstructionType int

const (
	ConstructionSubassembly ConstructionType = iota
	ConstructionVAB
	ConstructionSPH
)

// ConstructionTypes lists every construction type in display order
var ConstructionTypes = []ConstructionType{
	ConstructionVAB,
	ConstructionSPH,
	ConstructionSubassembly,
}

// String returns the string representation of ConstructionType
func (t ConstructionType) String() string {
	switch t {
	case ConstructionVAB:
		return "VAB"
	case ConstructionSPH:
		return "SPH"
	default:
		return "Subassembly"
	}
}

// Label returns the plural UI label for the type
func (t ConstructionType) Label() string {
	if t == ConstructionSubassembly {
		return "Subassemblies"
	}
	return t.String()
}

// ParseConstructionType maps the `type` field of a craft file to a
// ConstructionType. Only VAB and SPH are recognized; everything else,
// including an empty value, is a subassembly.
func ParseConstructionType(s string) ConstructionType {
	switch strings.TrimSpace(s) {
	case "VAB":
		return ConstructionVAB
	case "SPH":
		return ConstructionSPH
	default:
		return ConstructionSubassembly
	}
}

// ParseTypeLabel maps a UI label ("VAB", "SPH", "Subassemblies") to a
// ConstructionType. Matching is case-insensitive.
func ParseTypeLabel(label string) (ConstructionType, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "vab":
		return ConstructionVAB, nil
	case "sph":
		return ConstructionSPH, nil
	case "subassemblies", "subassembly", "sub":
		return ConstructionSubassembly, nil
	default:
		return ConstructionSubassembly, fmt.Errorf("unknown construction type: %s", label)
	}
}

// Totals holds a dry/fuel split and its sum
type Totals struct {
	Dry   float64
	Fuel  float64
	Total float64
}

// Add accumulates a dry and fuel amount. Total is not updated until Close.
func (t *Totals) Add(dry, fuel float64) {
	t.Dry += dry
	t.Fuel += fuel
}

// Close sets Total to Dry + Fuel
func (t *Totals) Close() {
	t.Total = t.Dry + t.Fuel
}

// Craft is one cataloged craft file with its derived metrics.
// Metrics are fixed once built; a changed file yields a new Craft.
type Craft struct {
	Path        string
	Name        string
	AltName     string
	Description string
	Version     string
	Group       string
	Type        ConstructionType

	CreatedAt time.Time
	UpdatedAt time.Time
	Checksum  string

	PartCount  int
	StageCount int
	Cost       Totals
	Mass       Totals

	MissingParts bool
	LockedParts  bool

	Selected bool
}

// DisplayName returns the in-game ship name if declared, otherwise the file name
func (c *Craft) DisplayName() string {
	if c.AltName != "" {
		return c.AltName
	}
	return c.Name
}

// RefKey returns the key used to look up tags for this craft.
// Format: "<group>_<type>_<name>"
func (c *Craft) RefKey() string {
	return RefKey(c.Group, c.Type, c.Name)
}

// RefKey builds a tag reference key from its parts
func RefKey(group string, t ConstructionType, name string) string {
	return fmt.Sprintf("%s_%s_%s", group, t, name)
}

// RefKeyInGroup reports whether key has the shape RefKey gives crafts of
// group. Keys of a group "<group>_hard" do not match.
func RefKeyInGroup(key, group string) bool {
	rest, ok := strings.CutPrefix(key, group+"_")
	if !ok {
		return false
	}
	for _, t := range ConstructionTypes {
		if strings.HasPrefix(rest, t.String()+"_") {
			return true
		}
	}
	return false
}
