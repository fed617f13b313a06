package application

import "craftmanager/internal/domain"

// Re-export domain types for use by adapters
type (
	Craft      = domain.Craft
	Criteria   = domain.Criteria
	ScanReport = domain.ScanReport
	SortKey    = domain.SortKey
	TagMode    = domain.TagMode
)

const (
	TagModeAny = domain.TagModeAny
	TagModeAll = domain.TagModeAll
)
