package services

import "strings"

// Category is one of the four Honey & Mumford learning styles.
type Category string

const (
	Activist   Category = "activist"
	Reflector  Category = "reflector"
	Theorist   Category = "theorist"
	Pragmatist Category = "pragmatist"
)

// Categories lists the styles in display order. This order is also the
// tie-break order: when two styles share the top score, the one listed
// first wins.
var Categories = []Category{Activist, Reflector, Theorist, Pragmatist}

func (c Category) Valid() bool {
	switch c {
	case Activist, Reflector, Theorist, Pragmatist:
		return true
	}
	return false
}

// Label returns the capitalized display form, e.g. "Activist".
func (c Category) Label() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// ParseCategory normalizes s into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", NewInvalidError("unknown category: " + s)
	}
	return c, nil
}
