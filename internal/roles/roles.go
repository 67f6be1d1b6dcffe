package roles

import (
	"errors"
	"fmt"
	"strings"
)

// variationSelector is dropped before comparing emojis; Discord may report
// "⚠️" as either "⚠\uFE0F" or "⚠".
const variationSelector = "\uFE0F"

var (
	// ErrEmptyCategory is returned when a category has no name or no bindings.
	ErrEmptyCategory = errors.New("reaction role category is empty")
	// ErrDuplicateCategory is returned when two categories share a name.
	ErrDuplicateCategory = errors.New("duplicate reaction role category")
)

// Binding maps one emoji to the role it grants.
type Binding struct {
	Emoji string
	Role  string
}

// Category is a named group of bindings posted together as one message.
type Category struct {
	Name   string
	Title  string
	Footer string
	Color  int
	// Capitalize shows role names capitalized in the posted message.
	Capitalize bool
	// Bindings keeps declaration order so posted messages are stable.
	Bindings []Binding
}

// Table is the ordered set of reaction role categories. It is read-only
// after construction and safe for concurrent use.
type Table struct {
	categories []Category
}

// Match is the result of resolving an emoji against the table.
type Match struct {
	Role     string
	Category string
}

// NewTable validates the categories and builds a table. An emoji that appears
// in more than one category resolves to the first declared category.
func NewTable(categories ...Category) (*Table, error) {
	seen := make(map[string]struct{}, len(categories))

	for _, category := range categories {
		if category.Name == "" || len(category.Bindings) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrEmptyCategory, category.Name)
		}

		if _, ok := seen[category.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCategory, category.Name)
		}

		seen[category.Name] = struct{}{}
	}

	return &Table{categories: categories}, nil
}

// Categories returns the categories in declaration order.
func (t *Table) Categories() []Category {
	return append([]Category(nil), t.categories...)
}

// Category returns the category with the given name.
func (t *Table) Category(name string) (Category, bool) {
	for _, category := range t.categories {
		if category.Name == name {
			return category, true
		}
	}

	return Category{}, false
}

// RoleFor resolves an emoji to the role it grants by scanning categories
// in declaration order.
func (t *Table) RoleFor(emoji string) (Match, bool) {
	emoji = normalizeEmoji(emoji)

	for _, category := range t.categories {
		for _, binding := range category.Bindings {
			if normalizeEmoji(binding.Emoji) == emoji {
				return Match{Role: binding.Role, Category: category.Name}, true
			}
		}
	}

	return Match{}, false
}

// Collisions lists emojis bound in more than one category, mapped to every
// category that declares them in order.
func (t *Table) Collisions() map[string][]string {
	owners := make(map[string][]string)

	for _, category := range t.categories {
		for _, binding := range category.Bindings {
			emoji := normalizeEmoji(binding.Emoji)
			owners[emoji] = append(owners[emoji], category.Name)
		}
	}

	for emoji, names := range owners {
		if len(names) < 2 {
			delete(owners, emoji)
		}
	}

	return owners
}

func normalizeEmoji(emoji string) string {
	return strings.ReplaceAll(emoji, variationSelector, "")
}
