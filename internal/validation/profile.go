package validation

import "fmt"

// Usernames double as profile URL segments, so route prefixes and other
// well-known paths cannot be taken.
var reservedUsernames = map[string]struct{}{
	"admin":      {},
	"api":        {},
	"auth":       {},
	"feed":       {},
	"discover":   {},
	"posts":      {},
	"comments":   {},
	"categories": {},
	"follows":    {},
	"saved":      {},
	"uploads":    {},
	"users":      {},
	"profile":    {},
	"settings":   {},
	"metrics":    {},
	"login":      {},
	"signup":     {},
}

// ValidateDisplayName checks the public name set during profile completion.
func ValidateDisplayName(name string) error {
	if name == "" {
		return fmt.Errorf("display name is required")
	}
	if len(name) > 50 {
		return fmt.Errorf("display name must not exceed 50 characters")
	}
	return nil
}

// ValidateBio checks the free-text biography set during profile completion.
func ValidateBio(bio string) error {
	if len(bio) > 500 {
		return fmt.Errorf("bio must not exceed 500 characters")
	}
	return nil
}
