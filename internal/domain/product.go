package domain

import "fmt"

type ProductKind string

const (
	ProductKindSubscriptionFee ProductKind = "Subscription Fee"
	ProductKindUsageFee        ProductKind = "Usage Fee"
)

func (k ProductKind) Valid() bool {
	switch k {
	case ProductKindSubscriptionFee, ProductKindUsageFee:
		return true
	default:
		return false
	}
}

func (k ProductKind) IsUsage() bool {
	return k == ProductKindUsageFee
}

type Product struct {
	ID          string
	Name        string
	Description string
	Kind        ProductKind
	Active      bool
}

func DefaultDescription(name string, kind ProductKind) string {
	return fmt.Sprintf("%s - %s", name, kind)
}

// ResolvedDescription falls back to "{name} - {kind}" when no description is set.
func (p Product) ResolvedDescription() string {
	if p.Description != "" {
		return p.Description
	}

	return DefaultDescription(p.Name, p.Kind)
}
