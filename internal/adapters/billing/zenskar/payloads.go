package zenskar

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/bnema/zprov/internal/domain"
)

const (
	productTypeProduct  = "product"
	quantityTypeMetered = "metered"
	pricingDescription  = "Pricing for %s"
)

type addressPayload struct {
	Line1   string `json:"line1"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	ZipCode string `json:"zipCode"`
}

type customerPayload struct {
	CustomerName string         `json:"customer_name"`
	PhoneNumber  string         `json:"phone_number"`
	Address      addressPayload `json:"address"`
}

type productPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	IsActive    bool   `json:"is_active"`
}

type pricingPeriodPayload struct {
	Cadence string `json:"cadence"`
}

type quantityPayload struct {
	Type     string `json:"type"`
	Label    string `json:"label"`
	Quantity int64  `json:"quantity"`
	Unit     string `json:"unit"`
}

type pricingDataPayload struct {
	Currency      string               `json:"currency"`
	Label         string               `json:"label"`
	PricingPeriod pricingPeriodPayload `json:"pricing_period"`
	UnitAmount    json.Number          `json:"unit_amount"`
	PricingType   string               `json:"pricing_type"`
	Unit          string               `json:"unit"`
	Quantity      *quantityPayload     `json:"quantity,omitempty"`
}

type billingPeriodPayload struct {
	Cadence string `json:"cadence"`
	Offset  string `json:"offset"`
}

type pricingPayload struct {
	Name          string               `json:"name"`
	Description   string               `json:"description"`
	PricingData   pricingDataPayload   `json:"pricing_data"`
	IsRecurring   bool                 `json:"is_recurring"`
	BillingPeriod billingPeriodPayload `json:"billing_period"`
}

type phasePricingPayload struct {
	PricingID string `json:"pricing_id"`
	ProductID string `json:"product_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type phasePayload struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	StartDate   string                `json:"start_date"`
	EndDate     string                `json:"end_date"`
	Pricings    []phasePricingPayload `json:"pricings"`
}

type contractPayload struct {
	Status      string         `json:"status"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Currency    string         `json:"currency"`
	StartDate   string         `json:"start_date"`
	EndDate     string         `json:"end_date"`
	CustomerID  string         `json:"customer_id"`
	Phases      []phasePayload `json:"phases"`
}

func newCustomerPayload(customer domain.Customer) customerPayload {
	return customerPayload{
		CustomerName: customer.Name,
		PhoneNumber:  customer.Phone,
		Address: addressPayload{
			Line1:   customer.Address.Line1,
			City:    customer.Address.City,
			State:   customer.Address.State,
			Country: customer.Address.Country,
			ZipCode: customer.Address.ZipCode,
		},
	}
}

func newProductPayload(product domain.Product) productPayload {
	return productPayload{
		Name:        product.Name,
		Description: product.ResolvedDescription(),
		Type:        productTypeProduct,
		IsActive:    true,
	}
}

func newPricingPayload(pricing domain.Pricing) pricingPayload {
	cadence := string(pricing.Cadence)
	data := pricingDataPayload{
		Currency:      pricing.CurrencyOrDefault(),
		Label:         pricing.Name,
		PricingPeriod: pricingPeriodPayload{Cadence: cadence},
		UnitAmount:    json.Number(pricing.UnitAmount.String()),
		PricingType:   string(pricing.Type()),
		Unit:          pricing.Unit(),
	}
	if quantity, ok := pricing.MeteredQuantity(); ok {
		data.Quantity = &quantityPayload{
			Type:     quantityTypeMetered,
			Label:    domain.MeteredQuantityLabel,
			Quantity: quantity,
			Unit:     domain.UnitUser,
		}
	}

	return pricingPayload{
		Name:        pricing.Name,
		Description: fmt.Sprintf(pricingDescription, pricing.Name),
		PricingData: data,
		IsRecurring: pricing.IsRecurring(),
		BillingPeriod: billingPeriodPayload{
			Cadence: cadence,
			Offset:  string(pricing.Offset.OrDefault()),
		},
	}
}

func newContractPayload(contract domain.Contract) contractPayload {
	phases := make([]phasePayload, 0, len(contract.Phases))
	for _, phase := range contract.Phases {
		start := domain.FormatTimestamp(phase.Start)
		end := domain.FormatTimestamp(phase.End)

		pricings := make([]phasePricingPayload, 0, len(phase.Records))
		for _, record := range phase.Records {
			pricings = append(pricings, phasePricingPayload{
				PricingID: record.PricingID,
				ProductID: record.ProductID,
				StartDate: start,
				EndDate:   end,
			})
		}

		phases = append(phases, phasePayload{
			Name:        phase.Name,
			Description: phase.Description,
			StartDate:   start,
			EndDate:     end,
			Pricings:    pricings,
		})
	}

	currency := contract.Terms.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	status := contract.Terms.Status
	if status == "" {
		status = domain.ContractStatusActive
	}

	return contractPayload{
		Status:      string(status),
		Name:        contract.Terms.Name,
		Description: contract.Terms.Description,
		Currency:    currency,
		StartDate:   domain.FormatTimestamp(contract.Terms.Start),
		EndDate:     domain.FormatTimestamp(contract.Terms.End),
		CustomerID:  contract.CustomerID,
		Phases:      phases,
	}
}

// resourceID accepts identifiers encoded either as JSON strings or numbers.
type resourceID string

func (id *resourceID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '"' {
		var value string
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return err
		}
		*id = resourceID(value)
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(trimmed, &number); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = resourceID(number.String())
	return nil
}

type createdResource struct {
	ID resourceID `json:"id"`
}
