package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PricingSpec struct {
	Name       string
	UnitAmount decimal.Decimal
	Cadence    Cadence
	Offset     BillingOffset
	// Metered pricing takes its quantity from the run's user count.
	Metered bool
}

type ProductSpec struct {
	Name        string
	Kind        ProductKind
	Description string
	Pricing     PricingSpec
}

func (s ProductSpec) Product() Product {
	return Product{
		Name:        s.Name,
		Description: s.Description,
		Kind:        s.Kind,
		Active:      true,
	}
}

func (s ProductSpec) PricingFor(productID string, userCount int64) Pricing {
	pricing := Pricing{
		ProductID:  productID,
		Name:       s.Pricing.Name,
		UnitAmount: s.Pricing.UnitAmount,
		Currency:   DefaultCurrency,
		Cadence:    s.Pricing.Cadence,
		Kind:       s.Kind,
		Offset:     s.Pricing.Offset.OrDefault(),
	}
	if s.Pricing.Metered {
		quantity := userCount
		pricing.Quantity = &quantity
	}

	return pricing
}

// Plan describes one provisioning run: who to bill, what to sell and how the contract is phased.
type Plan struct {
	Customer Customer
	Products []ProductSpec
	Contract ContractTerms
}

func (p Plan) Validate() error {
	if strings.TrimSpace(p.Customer.Name) == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidPlan)
	}
	if len(p.Products) == 0 {
		return fmt.Errorf("%w: at least one product is required", ErrInvalidPlan)
	}

	seen := make(map[string]struct{}, len(p.Products))
	for _, product := range p.Products {
		if err := product.validate(); err != nil {
			return err
		}
		if _, ok := seen[product.Name]; ok {
			return fmt.Errorf("%w: duplicate product %q", ErrInvalidPlan, product.Name)
		}
		seen[product.Name] = struct{}{}
	}

	return p.Contract.Validate()
}

func (s ProductSpec) validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: product name is required", ErrInvalidPlan)
	}
	if !s.Kind.Valid() {
		return fmt.Errorf("%w: product %q has unsupported kind %q", ErrInvalidPlan, s.Name, s.Kind)
	}
	if strings.TrimSpace(s.Pricing.Name) == "" {
		return fmt.Errorf("%w: product %q pricing name is required", ErrInvalidPlan, s.Name)
	}
	if !s.Pricing.Cadence.Valid() {
		return fmt.Errorf("%w: product %q has unsupported cadence %q", ErrInvalidPlan, s.Name, s.Pricing.Cadence)
	}
	if !s.Pricing.Offset.OrDefault().Valid() {
		return fmt.Errorf("%w: product %q has unsupported billing offset %q", ErrInvalidPlan, s.Name, s.Pricing.Offset)
	}
	if s.Pricing.UnitAmount.IsNegative() {
		return fmt.Errorf("%w: product %q has a negative unit amount", ErrInvalidPlan, s.Name)
	}
	if s.Pricing.Metered && !s.Kind.IsUsage() {
		return fmt.Errorf("%w: product %q is metered but not a usage fee", ErrInvalidPlan, s.Name)
	}

	return nil
}

// DefaultPlan is the calendar-2024 plan: a one-time fee, a monthly platform fee dropped
// after March, and a metered monthly user fee.
func DefaultPlan() Plan {
	return Plan{
		Customer: Customer{
			Name:    "Example Customer",
			Phone:   "+12345678900",
			Address: DefaultAddress("123 Frost Street"),
		},
		Products: []ProductSpec{
			{
				Name:        "One Time Fee",
				Kind:        ProductKindSubscriptionFee,
				Description: "One-time subscription fee",
				Pricing: PricingSpec{
					Name:       "One Time Fee Pricing",
					UnitAmount: decimal.NewFromInt(5000),
					Cadence:    CadenceOneTime,
					Offset:     BillingOffsetPrepaid,
				},
			},
			{
				Name:        PlatformFeeProductName,
				Kind:        ProductKindSubscriptionFee,
				Description: "Monthly platform subscription fee",
				Pricing: PricingSpec{
					Name:       "Monthly Platform Fee Pricing",
					UnitAmount: decimal.NewFromInt(10000),
					Cadence:    CadenceMonthly,
					Offset:     BillingOffsetPostpaid,
				},
			},
			{
				Name:        "Monthly User Fee",
				Kind:        ProductKindUsageFee,
				Description: "Monthly per-user fee",
				Pricing: PricingSpec{
					Name:       "Monthly User Fee Pricing",
					UnitAmount: decimal.NewFromInt(60),
					Cadence:    CadenceMonthly,
					Offset:     BillingOffsetPostpaid,
					Metered:    true,
				},
			},
		},
		Contract: ContractTerms{
			Name:        "Annual Contract 2024",
			Description: "Annual contract with varying product phases",
			Status:      ContractStatusActive,
			Currency:    DefaultCurrency,
			Start:       time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			End:         time.Date(2024, time.December, 31, 23, 59, 59, 0, time.UTC),
			Phases: []Phase{
				{
					Name:        "Phase 1 - All Products",
					Description: "January to March with all products",
					Start:       time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
					End:         time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC),
				},
				{
					Name:        "Phase 2 - Excluding Platform Fee",
					Description: "April to December without Monthly Platform Fee",
					Start:       time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
					End:         time.Date(2024, time.December, 31, 23, 59, 59, 0, time.UTC),
					Excludes:    []string{PlatformFeeProductName},
				},
			},
		},
	}
}
