package category

import (
	"regexp"

	"github.com/paydivvy/paydivvy/internal/rest"
)

// Category is a user-defined grouping label with a display color, used to
// bucket expenses for reporting. Categories are append-only: they can be
// renamed and recolored but never deleted, so expense references stay valid.
type Category struct {
	Id    string
	Name  string
	Color string
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func (c Category) Validate() error {
	if c.Name == "" {
		return rest.NewValidationError("name", "Category name is required")
	}
	if !hexColor.MatchString(c.Color) {
		return rest.NewValidationError("color", "Color must be a hex RGB value like #1a2b3c")
	}
	return nil
}
