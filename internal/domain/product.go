package domain

import (
	"strings"
	"time"
)

// Fixed catalog category tags.
const (
	CategoryCelebrationCakes = "Celebration Cakes"
	CategoryCupcakes         = "Cupcakes"
	CategoryPastries         = "Pastries"
	CategoryDesserts         = "Desserts"
)

// Categories lists every valid category tag in display order.
var Categories = []string{
	CategoryCelebrationCakes,
	CategoryCupcakes,
	CategoryPastries,
	CategoryDesserts,
}

// CategoryAll is the sentinel meaning "no category filter".
const CategoryAll = "all"

// DietaryGroup is the one option group that never gates checkout.
const DietaryGroup = "dietary"

// ValidCategory reports whether name is one of the fixed category tags.
func ValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// Option is one selectable choice within an option group.
type Option struct {
	Name      string  `json:"name"`
	ExtraCost float64 `json:"extra_cost"`
}

// Product represents a catalog product. Options maps an option-group name
// to its ordered list of choices; a product may define zero groups.
type Product struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	BasePrice   float64             `json:"base_price"`
	ImageURL    string              `json:"image_url"`
	Category    string              `json:"category"`
	Options     map[string][]Option `json:"options,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// HasOptions reports whether any option group defines at least one choice.
// Products with options display their base price as a "starting at" floor.
func (p *Product) HasOptions() bool {
	for _, opts := range p.Options {
		if len(opts) > 0 {
			return true
		}
	}
	return false
}

// RequiredGroups returns the option groups that must carry a selection
// before the product can be added to a cart. Groups named "dietary" are
// always optional.
func (p *Product) RequiredGroups() []string {
	var groups []string
	for name, opts := range p.Options {
		if len(opts) == 0 {
			continue
		}
		if strings.EqualFold(name, DietaryGroup) {
			continue
		}
		groups = append(groups, name)
	}
	return groups
}

// FindOption looks up a choice by group and option name.
func (p *Product) FindOption(group, name string) (Option, bool) {
	for _, opt := range p.Options[group] {
		if opt.Name == name {
			return opt, true
		}
	}
	return Option{}, false
}

// Clone returns a deep copy of the product.
func (p *Product) Clone() *Product {
	cp := *p
	if p.Options != nil {
		cp.Options = make(map[string][]Option, len(p.Options))
		for group, opts := range p.Options {
			cp.Options[group] = append([]Option(nil), opts...)
		}
	}
	return &cp
}
