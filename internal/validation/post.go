package validation

import (
	"fmt"
	"strings"
)

const (
	maxPostTitleLength   = 120
	maxPostContentLength = 10000
	maxPostCategories    = 5
)

// ValidatePostTitle checks a post title for presence and length.
func ValidatePostTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	if len(title) > maxPostTitleLength {
		return fmt.Errorf("title must not exceed %d characters", maxPostTitleLength)
	}
	return nil
}

// ValidatePostContent checks a post body for length.
func ValidatePostContent(content string) error {
	if len(content) > maxPostContentLength {
		return fmt.Errorf("content must not exceed %d characters", maxPostContentLength)
	}
	return nil
}

// ValidateCategoryIDs checks the category tags attached to a post.
// Duplicates are tolerated here; they are deduplicated downstream.
func ValidateCategoryIDs(ids []uint) error {
	if len(ids) > maxPostCategories {
		return fmt.Errorf("a post can have at most %d categories", maxPostCategories)
	}
	for _, id := range ids {
		if id == 0 {
			return fmt.Errorf("category id must be positive")
		}
	}
	return nil
}
