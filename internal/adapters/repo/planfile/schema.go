package planfile

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/zprov/internal/domain"
	"github.com/shopspring/decimal"
)

const currentSchemaVersion = 1

type planSchema struct {
	Version  int             `toml:"version" yaml:"version"`
	Customer customerSchema  `toml:"customer" yaml:"customer"`
	Products []productSchema `toml:"products" yaml:"products"`
	Contract contractSchema  `toml:"contract" yaml:"contract"`
}

func (s *planSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s planSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported plan schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type customerSchema struct {
	Name    string        `toml:"name" yaml:"name"`
	Phone   string        `toml:"phone" yaml:"phone"`
	Address addressSchema `toml:"address" yaml:"address"`
}

type addressSchema struct {
	Line1   string `toml:"line1" yaml:"line1"`
	City    string `toml:"city,omitempty" yaml:"city,omitempty"`
	State   string `toml:"state,omitempty" yaml:"state,omitempty"`
	Country string `toml:"country,omitempty" yaml:"country,omitempty"`
	ZipCode string `toml:"zip_code,omitempty" yaml:"zip_code,omitempty"`
}

type productSchema struct {
	Name        string        `toml:"name" yaml:"name"`
	Kind        string        `toml:"kind" yaml:"kind"`
	Description string        `toml:"description,omitempty" yaml:"description,omitempty"`
	Pricing     pricingSchema `toml:"pricing" yaml:"pricing"`
}

type pricingSchema struct {
	Name       string `toml:"name" yaml:"name"`
	UnitAmount string `toml:"unit_amount" yaml:"unit_amount"`
	Cadence    string `toml:"cadence" yaml:"cadence"`
	Offset     string `toml:"offset,omitempty" yaml:"offset,omitempty"`
	Metered    bool   `toml:"metered,omitempty" yaml:"metered,omitempty"`
}

type contractSchema struct {
	Name        string        `toml:"name" yaml:"name"`
	Description string        `toml:"description" yaml:"description"`
	Status      string        `toml:"status,omitempty" yaml:"status,omitempty"`
	Currency    string        `toml:"currency,omitempty" yaml:"currency,omitempty"`
	StartDate   string        `toml:"start_date" yaml:"start_date"`
	EndDate     string        `toml:"end_date" yaml:"end_date"`
	Phases      []phaseSchema `toml:"phases" yaml:"phases"`
}

type phaseSchema struct {
	Name        string   `toml:"name" yaml:"name"`
	Description string   `toml:"description" yaml:"description"`
	StartDate   string   `toml:"start_date" yaml:"start_date"`
	EndDate     string   `toml:"end_date" yaml:"end_date"`
	Excludes    []string `toml:"excludes,omitempty" yaml:"excludes,omitempty"`
}

func toSchema(plan domain.Plan) planSchema {
	products := make([]productSchema, 0, len(plan.Products))
	for _, product := range plan.Products {
		products = append(products, productSchema{
			Name:        product.Name,
			Kind:        string(product.Kind),
			Description: product.Description,
			Pricing: pricingSchema{
				Name:       product.Pricing.Name,
				UnitAmount: product.Pricing.UnitAmount.String(),
				Cadence:    string(product.Pricing.Cadence),
				Offset:     string(product.Pricing.Offset),
				Metered:    product.Pricing.Metered,
			},
		})
	}

	phases := make([]phaseSchema, 0, len(plan.Contract.Phases))
	for _, phase := range plan.Contract.Phases {
		phases = append(phases, phaseSchema{
			Name:        phase.Name,
			Description: phase.Description,
			StartDate:   formatTime(phase.Start),
			EndDate:     formatTime(phase.End),
			Excludes:    phase.Excludes,
		})
	}

	return planSchema{
		Version: currentSchemaVersion,
		Customer: customerSchema{
			Name:  plan.Customer.Name,
			Phone: plan.Customer.Phone,
			Address: addressSchema{
				Line1:   plan.Customer.Address.Line1,
				City:    plan.Customer.Address.City,
				State:   plan.Customer.Address.State,
				Country: plan.Customer.Address.Country,
				ZipCode: plan.Customer.Address.ZipCode,
			},
		},
		Products: products,
		Contract: contractSchema{
			Name:        plan.Contract.Name,
			Description: plan.Contract.Description,
			Status:      string(plan.Contract.Status),
			Currency:    plan.Contract.Currency,
			StartDate:   formatTime(plan.Contract.Start),
			EndDate:     formatTime(plan.Contract.End),
			Phases:      phases,
		},
	}
}

func fromSchema(schema planSchema) (domain.Plan, error) {
	products := make([]domain.ProductSpec, 0, len(schema.Products))
	for _, product := range schema.Products {
		amount, err := parseAmount(product.Pricing.UnitAmount)
		if err != nil {
			return domain.Plan{}, fmt.Errorf("product %q: %w", product.Name, err)
		}

		products = append(products, domain.ProductSpec{
			Name:        product.Name,
			Kind:        domain.ProductKind(product.Kind),
			Description: product.Description,
			Pricing: domain.PricingSpec{
				Name:       product.Pricing.Name,
				UnitAmount: amount,
				Cadence:    domain.Cadence(product.Pricing.Cadence),
				Offset:     domain.BillingOffset(product.Pricing.Offset).OrDefault(),
				Metered:    product.Pricing.Metered,
			},
		})
	}

	contractStart, err := parseTime("contract start_date", schema.Contract.StartDate)
	if err != nil {
		return domain.Plan{}, err
	}
	contractEnd, err := parseTime("contract end_date", schema.Contract.EndDate)
	if err != nil {
		return domain.Plan{}, err
	}

	phases := make([]domain.Phase, 0, len(schema.Contract.Phases))
	for _, phase := range schema.Contract.Phases {
		start, err := parseTime(fmt.Sprintf("phase %q start_date", phase.Name), phase.StartDate)
		if err != nil {
			return domain.Plan{}, err
		}
		end, err := parseTime(fmt.Sprintf("phase %q end_date", phase.Name), phase.EndDate)
		if err != nil {
			return domain.Plan{}, err
		}

		phases = append(phases, domain.Phase{
			Name:        phase.Name,
			Description: phase.Description,
			Start:       start,
			End:         end,
			Excludes:    phase.Excludes,
		})
	}

	status := domain.ContractStatus(schema.Contract.Status)
	if status == "" {
		status = domain.ContractStatusActive
	}
	currency := schema.Contract.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	return domain.Plan{
		Customer: domain.Customer{
			Name:    schema.Customer.Name,
			Phone:   schema.Customer.Phone,
			Address: addressWithDefaults(schema.Customer.Address),
		},
		Products: products,
		Contract: domain.ContractTerms{
			Name:        schema.Contract.Name,
			Description: schema.Contract.Description,
			Status:      status,
			Currency:    currency,
			Start:       contractStart,
			End:         contractEnd,
			Phases:      phases,
		},
	}, nil
}

func addressWithDefaults(address addressSchema) domain.Address {
	resolved := domain.DefaultAddress(address.Line1)
	if address.City != "" {
		resolved.City = address.City
	}
	if address.State != "" {
		resolved.State = address.State
	}
	if address.Country != "" {
		resolved.Country = address.Country
	}
	if address.ZipCode != "" {
		resolved.ZipCode = address.ZipCode
	}

	return resolved
}

func parseAmount(raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, fmt.Errorf("unit_amount is required")
	}

	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse unit_amount %q: %w", raw, err)
	}

	return amount, nil
}

func parseTime(field, raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, fmt.Errorf("%s is required", field)
	}

	parsed, err := domain.ParseTimestamp(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", field, err)
	}

	return parsed, nil
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return domain.FormatTimestamp(value)
}
