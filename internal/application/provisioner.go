package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/zprov/internal/domain"
	"github.com/bnema/zprov/internal/ports"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrNilBillingAPI    = errors.New("billing api is nil")
	ErrInvalidUserCount = errors.New("user count must not be negative")
	ErrRunInterrupted   = errors.New("provisioning run interrupted")
)

// Provisioner drives the customer, product, pricing and contract requests strictly in order.
type Provisioner struct {
	billing  ports.BillingAPI
	clock    ports.Clock
	logger   zerolog.Logger
	newRunID func() string
}

func NewProvisioner(billing ports.BillingAPI, clock ports.Clock, logger zerolog.Logger) *Provisioner {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Provisioner{
		billing:  billing,
		clock:    clock,
		logger:   logger,
		newRunID: uuid.NewString,
	}
}

// Run returns an error only when the run cannot start or is cancelled. Remote failures are
// logged and folded into the report.
func (p *Provisioner) Run(ctx context.Context, cmd ProvisionCommand) (Report, error) {
	if p.billing == nil {
		return Report{}, ErrNilBillingAPI
	}
	if cmd.UserCount < 0 {
		return Report{}, fmt.Errorf("%w: %d", ErrInvalidUserCount, cmd.UserCount)
	}
	if err := cmd.Plan.Validate(); err != nil {
		return Report{}, fmt.Errorf("validate plan: %w", err)
	}

	report := Report{
		RunID:          p.newRunID(),
		StartedAt:      p.clock.Now(),
		RequestedStart: cmd.RequestedStart,
		RequestedEnd:   cmd.RequestedEnd,
	}
	logger := p.logger.With().Str("run_id", report.RunID).Logger()

	customer, err := p.billing.CreateCustomer(ctx, cmd.Plan.Customer)
	if err != nil {
		report.CustomerFailure = err.Error()
		return p.finish(logger, report, OutcomeCustomerFailed, MessageCustomerFailed), nil
	}
	report.Customer = &customer
	logger.Debug().Str("customer_id", customer.ID).Msg("customer created")

	for _, spec := range cmd.Plan.Products {
		if err := ctx.Err(); err != nil {
			report.FinishedAt = p.clock.Now()
			return report, fmt.Errorf("%w: %w", ErrRunInterrupted, err)
		}
		report.Products = append(report.Products, p.provisionProduct(ctx, logger, spec, cmd.UserCount))
	}

	records := report.Records()
	if len(records) == 0 {
		return p.finish(logger, report, OutcomeNoProducts, MessageNoProducts), nil
	}

	warnOnWindowMismatch(logger, cmd, cmd.Plan.Contract)

	contract, err := p.billing.CreateContract(ctx, domain.BuildContract(customer.ID, cmd.Plan.Contract, records))
	if err != nil {
		report.ContractFailure = err.Error()
		return p.finish(logger, report, OutcomeContractFailed, MessageContractFailed), nil
	}
	report.Contract = &contract

	return p.finish(logger, report, OutcomeCompleted, MessageContractCreated), nil
}

// provisionProduct creates one product and its pricing. A failed product skips its pricing.
func (p *Provisioner) provisionProduct(ctx context.Context, logger zerolog.Logger, spec domain.ProductSpec, userCount int64) ProductOutcome {
	outcome := ProductOutcome{Name: spec.Name}

	product, err := p.billing.CreateProduct(ctx, spec.Product())
	if err != nil {
		outcome.FailedStage = StageProduct
		outcome.Failure = err.Error()
		return outcome
	}
	outcome.ProductID = product.ID

	pricing, err := p.billing.AddPricing(ctx, spec.PricingFor(product.ID, userCount))
	if err != nil {
		outcome.FailedStage = StagePricing
		outcome.Failure = err.Error()
		return outcome
	}
	outcome.PricingID = pricing.ID

	logger.Debug().
		Str("product", spec.Name).
		Str("product_id", product.ID).
		Str("pricing_id", pricing.ID).
		Msg("product priced")

	return outcome
}

func (p *Provisioner) finish(logger zerolog.Logger, report Report, outcome Outcome, message string) Report {
	report.Outcome = outcome
	report.Message = message
	report.FinishedAt = p.clock.Now()

	event := logger.Info()
	if outcome != OutcomeCompleted {
		event = logger.Warn()
	}
	event.Str("outcome", string(outcome)).Msg(message)

	return report
}

// warnOnWindowMismatch logs when the requested window differs from the plan's contract window.
func warnOnWindowMismatch(logger zerolog.Logger, cmd ProvisionCommand, terms domain.ContractTerms) {
	startDiffers := !cmd.RequestedStart.IsZero() && !cmd.RequestedStart.Equal(terms.Start)
	endDiffers := !cmd.RequestedEnd.IsZero() && !cmd.RequestedEnd.Equal(terms.End)
	if !startDiffers && !endDiffers {
		return
	}

	logger.Warn().
		Str("requested_start", domain.FormatTimestamp(cmd.RequestedStart)).
		Str("requested_end", domain.FormatTimestamp(cmd.RequestedEnd)).
		Str("contract_start", domain.FormatTimestamp(terms.Start)).
		Str("contract_end", domain.FormatTimestamp(terms.End)).
		Msg("requested contract window differs from plan; phases follow the plan")
}
