package domain

import (
	"fmt"
	"strings"
)

// SortKey selects the field the current view is ordered by
type SortKey string

const (
	SortName       SortKey = "name"
	SortPartCount  SortKey = "part_count"
	SortMass       SortKey = "mass"
	SortCreated    SortKey = "created"
	SortUpdated    SortKey = "updated"
	SortStageCount SortKey = "stage_count"
)

// SortKeys lists the sort keys in the order the UI cycles through them
var SortKeys = []SortKey{
	SortName,
	SortPartCount,
	SortMass,
	SortCreated,
	SortUpdated,
	SortStageCount,
}

// ParseSortKey converts a string to a SortKey. Unknown keys fall back to
// SortName and report an error so callers can warn about it.
func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	switch key {
	case "":
		return SortName, nil
	case SortName, SortPartCount, SortMass, SortCreated, SortUpdated, SortStageCount:
		return key, nil
	case "parts":
		return SortPartCount, nil
	case "stages":
		return SortStageCount, nil
	default:
		return SortName, fmt.Errorf("unknown sort key: %s", s)
	}
}

// Next returns the key after k in SortKeys, wrapping around
func (k SortKey) Next() SortKey {
	for i, key := range SortKeys {
		if key == k {
			return SortKeys[(i+1)%len(SortKeys)]
		}
	}
	return SortName
}

// TagMode controls how a tag filter matches
type TagMode int

const (
	// TagModeAny keeps crafts carrying at least one of the selected tags
	TagModeAny TagMode = iota
	// TagModeAll keeps crafts carrying every selected tag
	TagModeAll
)

// String returns the string representation of TagMode
func (m TagMode) String() string {
	if m == TagModeAll {
		return "all"
	}
	return "any"
}

// ParseTagMode converts "any" or "all" (also "reduce") to a TagMode
func ParseTagMode(s string) (TagMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return TagModeAny, nil
	case "all", "reduce":
		return TagModeAll, nil
	default:
		return TagModeAny, fmt.Errorf("unknown tag mode: %s", s)
	}
}

// Criteria describes how the current view is derived from the full set.
// Every field is optional; the zero value leaves the full set untouched.
type Criteria struct {
	Search  string
	Types   map[ConstructionType]bool // nil means no type filtering
	Tags    []string
	TagMode TagMode
	Sort    SortKey // empty means keep load order
	Reverse bool
}

// IsZero reports whether the criteria filter or order nothing
func (c Criteria) IsZero() bool {
	return c.Search == "" && c.Types == nil && len(c.Tags) == 0 && c.Sort == "" && !c.Reverse
}

// TypesFromLabels builds a type set from UI labels
func TypesFromLabels(labels []string) (map[ConstructionType]bool, error) {
	if len(labels) == 0 {
		return nil, nil
	}
	types := make(map[ConstructionType]bool, len(labels))
	for _, label := range labels {
		t, err := ParseTypeLabel(label)
		if err != nil {
			return nil, err
		}
		types[t] = true
	}
	return types, nil
}
