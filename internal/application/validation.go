package application

import (
	"fmt"
	"strings"
	"unicode"

	"craftmanager/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", fieldName),
		}
	}
	return nil
}

// NormalizeTag trims a tag and lowercases it
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// ValidateTag checks that a tag is non-empty and holds no whitespace
func ValidateTag(tag string) error {
	if err := ValidateRequired("tag", tag); err != nil {
		return err
	}
	if strings.IndexFunc(strings.TrimSpace(tag), unicode.IsSpace) >= 0 {
		return &ValidationError{
			Field:   "tag",
			Message: fmt.Sprintf("tag %q must not contain spaces", tag),
		}
	}
	return nil
}

// CriteriaInput holds criteria as typed by a user, before parsing
type CriteriaInput struct {
	Search  string
	Types   []string
	Tags    []string
	TagMode string
	Sort    string
	Reverse bool
}

// ParseCriteria turns user input into domain.Criteria.
// Unknown types, tag modes or sort keys yield a CriteriaError.
func ParseCriteria(in CriteriaInput) (domain.Criteria, error) {
	criteria := domain.Criteria{
		Search:  strings.TrimSpace(in.Search),
		Reverse: in.Reverse,
	}

	types, err := domain.TypesFromLabels(in.Types)
	if err != nil {
		return domain.Criteria{}, &CriteriaError{Field: "type", Value: strings.Join(in.Types, ",")}
	}
	criteria.Types = types

	for _, tag := range in.Tags {
		if tag = NormalizeTag(tag); tag != "" {
			criteria.Tags = append(criteria.Tags, tag)
		}
	}

	mode, err := domain.ParseTagMode(in.TagMode)
	if err != nil {
		return domain.Criteria{}, &CriteriaError{Field: "tag mode", Value: in.TagMode}
	}
	criteria.TagMode = mode

	if in.Sort != "" {
		key, err := domain.ParseSortKey(in.Sort)
		if err != nil {
			return domain.Criteria{}, &CriteriaError{Field: "sort key", Value: in.Sort}
		}
		criteria.Sort = key
	}

	return criteria, nil
}
