package enums

import "fmt"

// Category identifies a budget bucket with its own allocation and spend.
type Category string

const (
	CategoryFood  Category = "food"
	CategoryVenue Category = "venue"
	CategoryDecor Category = "decor"
	CategoryMisc  Category = "misc"
)

// Categories lists every budget bucket in allocation order.
var Categories = []Category{
	CategoryFood,
	CategoryVenue,
	CategoryDecor,
	CategoryMisc,
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// IsValid reports whether the value is a known Category.
func (c Category) IsValid() bool {
	for _, candidate := range Categories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCategory converts raw input into a Category.
func ParseCategory(value string) (Category, error) {
	for _, candidate := range Categories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid category %q", value)
}
