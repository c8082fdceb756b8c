package core

import (
	"fmt"
	"strings"
)

// Category is the classification tag shared by items and receptacles
// It is the only predicate used for acceptance
type Category uint8

const (
	CategoryNone Category = iota

	// Chest minigame
	CategoryScience
	CategoryTechnology
	CategoryInnovation

	// Token minigame
	CategoryUnderstand
	CategoryImagine
	CategoryPrototype

	CategoryCount
)

var categoryNames = [...]string{
	"none",
	"science",
	"technology",
	"innovation",
	"understand",
	"imagine",
	"prototype",
}

// ChestCategories is the category set of the chest minigame in draw order
var ChestCategories = []Category{CategoryScience, CategoryTechnology, CategoryInnovation}

// TokenCategories is the category set of the project token minigame
var TokenCategories = []Category{CategoryUnderstand, CategoryImagine, CategoryPrototype}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", c)
}

// Valid reports whether c names a real category
func (c Category) Valid() bool {
	return c > CategoryNone && c < CategoryCount
}

// ParseCategory resolves a case-insensitive category name
// Spanish deck names are accepted as aliases
func ParseCategory(s string) (Category, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "ciencia":
		return CategoryScience, nil
	case "tecnologia", "tecnología":
		return CategoryTechnology, nil
	case "innovacion", "innovación":
		return CategoryInnovation, nil
	case "entender":
		return CategoryUnderstand, nil
	case "imaginar":
		return CategoryImagine, nil
	case "probar":
		return CategoryPrototype, nil
	}
	for i := CategoryScience; i < CategoryCount; i++ {
		if categoryNames[i] == name {
			return i, nil
		}
	}
	return CategoryNone, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// MarshalText implements encoding.TextMarshaler
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
