package domain

import "github.com/shopspring/decimal"

type Cadence string

const (
	CadenceOneTime Cadence = "P0"
	CadenceMonthly Cadence = "P1M"
)

func (c Cadence) Valid() bool {
	switch c {
	case CadenceOneTime, CadenceMonthly:
		return true
	default:
		return false
	}
}

func (c Cadence) IsRecurring() bool {
	return c != CadenceOneTime
}

type PricingType string

const (
	PricingTypeFlatFee PricingType = "flat_fee"
	PricingTypePerUnit PricingType = "per_unit"
)

type BillingOffset string

const (
	BillingOffsetPrepaid  BillingOffset = "prepaid"
	BillingOffsetPostpaid BillingOffset = "postpaid"
)

func (o BillingOffset) Valid() bool {
	switch o {
	case BillingOffsetPrepaid, BillingOffsetPostpaid:
		return true
	default:
		return false
	}
}

func (o BillingOffset) OrDefault() BillingOffset {
	if o == "" {
		return BillingOffsetPrepaid
	}

	return o
}

const (
	DefaultCurrency      = "USD"
	UnitUser             = "user"
	UnitFlat             = "unit"
	MeteredQuantityLabel = "Number of Users"
)

type Pricing struct {
	ID         string
	ProductID  string
	Name       string
	UnitAmount decimal.Decimal
	Currency   string
	Cadence    Cadence
	Kind       ProductKind
	Offset     BillingOffset
	// Quantity is only sent for usage pricing. It is a static committed count, not a live meter.
	Quantity *int64
}

func (p Pricing) Type() PricingType {
	if p.Kind.IsUsage() {
		return PricingTypePerUnit
	}

	return PricingTypeFlatFee
}

func (p Pricing) Unit() string {
	if p.Kind.IsUsage() {
		return UnitUser
	}

	return UnitFlat
}

func (p Pricing) IsRecurring() bool {
	return p.Cadence.IsRecurring()
}

func (p Pricing) MeteredQuantity() (int64, bool) {
	if !p.Kind.IsUsage() || p.Quantity == nil {
		return 0, false
	}

	return *p.Quantity, true
}

func (p Pricing) CurrencyOrDefault() string {
	if p.Currency == "" {
		return DefaultCurrency
	}

	return p.Currency
}
