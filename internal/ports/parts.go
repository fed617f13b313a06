package ports

import (
	"craftmanager/internal/confignode"
	"craftmanager/internal/domain"
)

// PartCatalog provides the game's known part definitions
type PartCatalog interface {
	// Parts returns every known part definition
	Parts() ([]domain.PartInfo, error)

	// CostsAndMass computes the cost and mass split of one part instance,
	// using the resource amounts stored in the craft's part node
	CostsAndMass(node *confignode.Node, info domain.PartInfo) domain.PartCost

	// Unlocked reports whether the part is available in the current save
	Unlocked(info domain.PartInfo) bool
}
