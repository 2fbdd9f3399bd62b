package domain

import (
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	Image       string
	Variants    []string
	Available   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasVariant reports whether label is one of the product's variants.
func (p Product) HasVariant(label string) bool {
	return lo.Contains(p.Variants, label)
}

// ProductPatch carries a partial product update. Nil fields are left unchanged.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Category    *string
	Image       *string
	Variants    *[]string
	Available   *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil &&
		p.Category == nil && p.Image == nil && p.Variants == nil && p.Available == nil
}

// Validate checks the product invariants on a full record.
func (p Product) Validate() error {
	if err := validateName(p.Name); err != nil {
		return err
	}
	if err := validatePrice(p.Price); err != nil {
		return err
	}
	return validateVariants(p.Variants)
}

// Validate checks the invariants of every field the patch sets.
func (p ProductPatch) Validate() error {
	if p.Name != nil {
		if err := validateName(*p.Name); err != nil {
			return err
		}
	}
	if p.Price != nil {
		if err := validatePrice(*p.Price); err != nil {
			return err
		}
	}
	if p.Variants != nil {
		return validateVariants(*p.Variants)
	}
	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return Invalidf("name is required")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	return validateAmount("price", price)
}

func validateVariants(variants []string) error {
	for _, v := range variants {
		if strings.TrimSpace(v) == "" {
			return Invalidf("variant labels must not be empty")
		}
	}
	if dups := lo.FindDuplicates(variants); len(dups) > 0 {
		return Invalidf("duplicate variant %q", dups[0])
	}
	return nil
}
