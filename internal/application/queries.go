package application

import (
	"time"

	"github.com/bnema/zprov/internal/domain"
)

type Outcome string

const (
	OutcomeCustomerFailed Outcome = "customer_failed"
	OutcomeNoProducts     Outcome = "no_products"
	OutcomeContractFailed Outcome = "contract_failed"
	OutcomeCompleted      Outcome = "completed"
)

const (
	MessageCustomerFailed  = "Failed to create customer"
	MessageNoProducts      = "No products created successfully, cannot create contract"
	MessageContractFailed  = "Failed to create contract"
	MessageContractCreated = "Contract created successfully!"
)

type Stage string

const (
	StageProduct Stage = "product"
	StagePricing Stage = "pricing"
)

type ProductOutcome struct {
	Name      string
	ProductID string
	PricingID string
	// FailedStage is empty when both the product and its pricing were created.
	FailedStage Stage
	Failure     string
}

func (o ProductOutcome) Succeeded() bool {
	return o.FailedStage == ""
}

func (o ProductOutcome) Record() domain.ProductRecord {
	return domain.ProductRecord{
		ProductID: o.ProductID,
		PricingID: o.PricingID,
		Name:      o.Name,
	}
}

type Report struct {
	RunID           string
	StartedAt       time.Time
	FinishedAt      time.Time
	Customer        *domain.Customer
	CustomerFailure string
	Products        []ProductOutcome
	Contract        *domain.Contract
	ContractFailure string
	RequestedStart  time.Time
	RequestedEnd    time.Time
	Outcome         Outcome
	Message         string
}

func (r Report) Succeeded() bool {
	return r.Outcome == OutcomeCompleted
}

// Records returns the product/pricing pairs that made it into the contract, in plan order.
func (r Report) Records() []domain.ProductRecord {
	records := make([]domain.ProductRecord, 0, len(r.Products))
	for _, product := range r.Products {
		if product.Succeeded() {
			records = append(records, product.Record())
		}
	}

	return records
}
