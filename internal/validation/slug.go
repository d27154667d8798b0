package validation

import (
	"fmt"
	"regexp"
)

var groupSlugRegex = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// ValidateGroupSlug checks that slug is a non-empty URL segment of at most 200 characters.
func ValidateGroupSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("slug is required")
	}
	if len(slug) > 200 {
		return fmt.Errorf("slug must not exceed 200 characters")
	}
	if !groupSlugRegex.MatchString(slug) {
		return fmt.Errorf("slug can only contain letters, numbers, underscores and hyphens")
	}
	return nil
}
