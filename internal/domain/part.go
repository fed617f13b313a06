package domain

import "strings"

// PartInfo is a part definition from the game's part catalog
type PartInfo struct {
	Name         string // canonical name, e.g. "fuelTank.long"
	Title        string
	Cost         float64 // full cost, tanks filled
	Mass         float64 // dry mass in tonnes
	TechRequired string
	Resources    map[string]float64 // resource name -> capacity
}

// PartCost is the cost and mass breakdown of one part instance
type PartCost struct {
	DryCost  float64
	FuelCost float64
	DryMass  float64
	FuelMass float64
}

// ResourceInfo describes a resource type
type ResourceInfo struct {
	Name     string
	Density  float64 // tonnes per unit
	UnitCost float64
}

// PartName extracts the canonical part name from a craft part reference.
// "fuelTank.long_4294511720" -> "fuelTank.long"
func PartName(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	name, _, _ := strings.Cut(ref, "_")
	return name
}

// CanonicalPartName converts a part config name to the form used in craft
// files: underscores become dots.
func CanonicalPartName(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), "_", ".")
}
