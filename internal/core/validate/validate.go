// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"strings"
)

// Required returns a validator rejecting empty or whitespace-only values.
func Required(field string) func(string) error {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// Rating rejects star values outside [1,5].
func Rating(r int) error {
	if r < 1 || r > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", r)
	}
	return nil
}
