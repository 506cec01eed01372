package summary

import (
	"strings"
	"testing"
	"time"

	"github.com/bnema/zprov/internal/application"
	"github.com/bnema/zprov/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedReport(t *testing.T) application.Report {
	t.Helper()

	plan := domain.DefaultPlan()
	products := []application.ProductOutcome{
		{Name: "One Time Fee", ProductID: "prod-1", PricingID: "price-1"},
		{Name: domain.PlatformFeeProductName, ProductID: "prod-2", PricingID: "price-2"},
		{Name: "Monthly User Fee", ProductID: "prod-3", PricingID: "price-3"},
	}
	records := make([]domain.ProductRecord, 0, len(products))
	for _, product := range products {
		records = append(records, product.Record())
	}

	contract := domain.BuildContract("cust-1", plan.Contract, records)
	contract.ID = "contract-1"
	started := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	return application.Report{
		RunID:      "run-1",
		StartedAt:  started,
		FinishedAt: started.Add(1500 * time.Millisecond),
		Customer:   &domain.Customer{ID: "cust-1", Name: plan.Customer.Name},
		Products:   products,
		Contract:   &contract,
		Outcome:    application.OutcomeCompleted,
		Message:    application.MessageContractCreated,
	}
}

func TestRenderCompletedRun(t *testing.T) {
	t.Parallel()

	output, err := Render(completedReport(t), RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "Billing Provisioning")
	assert.Contains(t, output, "run: run-1 (1.5s)")
	assert.Contains(t, output, "(cust-1)")
	assert.Contains(t, output, "products: 3/3 priced")
	assert.Contains(t, output, "product=prod-2 pricing=price-2")
	assert.Contains(t, output, "contract: ")
	assert.Contains(t, output, "(contract-1)")
	assert.Contains(t, output, "3 pricings")
	assert.Contains(t, output, "2 pricings")
	assert.Contains(t, output, "[One Time Fee, Monthly User Fee]")
	assert.Contains(t, output, application.MessageContractCreated)
}

func TestRenderCustomerFailure(t *testing.T) {
	t.Parallel()

	report := application.Report{
		RunID:           "run-2",
		CustomerFailure: "create customer: status 500: boom",
		Outcome:         application.OutcomeCustomerFailed,
		Message:         application.MessageCustomerFailed,
	}

	output, err := Render(report, RenderOptions{})
	require.NoError(t, err)
	assert.Contains(t, output, "customer: failed")
	assert.NotContains(t, output, "boom")
	assert.NotContains(t, output, "products:")
	assert.NotContains(t, output, "contract:")
	assert.Contains(t, output, application.MessageCustomerFailed)

	output, err = Render(report, RenderOptions{ShowFailures: true})
	require.NoError(t, err)
	assert.Contains(t, output, "status 500: boom")
}

func TestRenderPartialProductFailures(t *testing.T) {
	t.Parallel()

	report := application.Report{
		RunID:    "run-3",
		Customer: &domain.Customer{ID: "cust-1", Name: "Acme"},
		Products: []application.ProductOutcome{
			{Name: "Monthly Platform Fee", FailedStage: application.StageProduct, Failure: "create product: status 400"},
			{Name: "Monthly User Fee", ProductID: "prod-2", FailedStage: application.StagePricing, Failure: "add pricing: status 422"},
		},
		Outcome: application.OutcomeNoProducts,
		Message: application.MessageNoProducts,
	}

	output, err := Render(report, RenderOptions{ShowFailures: true})

	require.NoError(t, err)
	assert.Contains(t, output, "products: 0/2 priced")
	assert.Contains(t, output, "Monthly Platform Fee  (product step)")
	assert.Contains(t, output, "Monthly User Fee  (pricing step)")
	assert.Contains(t, output, "status 422")
	assert.NotContains(t, output, "contract:")
	assert.Contains(t, output, application.MessageNoProducts)
}

func TestRenderContractFailure(t *testing.T) {
	t.Parallel()

	report := completedReport(t)
	report.Contract = nil
	report.ContractFailure = "create contract: status 409: conflict"
	report.Outcome = application.OutcomeContractFailed
	report.Message = application.MessageContractFailed

	output, err := Render(report, RenderOptions{ShowFailures: true})

	require.NoError(t, err)
	assert.Contains(t, output, "contract: failed")
	assert.Contains(t, output, "status 409: conflict")
	assert.Contains(t, output, application.MessageContractFailed)
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "250ms", formatDuration(250*time.Millisecond))
	assert.Equal(t, "2.3s", formatDuration(2340*time.Millisecond))
}

func TestRenderKeepsSectionOrder(t *testing.T) {
	t.Parallel()

	output, err := Render(completedReport(t), RenderOptions{})
	require.NoError(t, err)

	order := []string{"Billing Provisioning", "customer:", "products:", "contract:", application.MessageContractCreated}
	last := -1
	for _, marker := range order {
		index := strings.Index(output, marker)
		require.GreaterOrEqual(t, index, 0, marker)
		assert.Greater(t, index, last, marker)
		last = index
	}
}

func TestRenderContractWithoutID(t *testing.T) {
	t.Parallel()

	report := completedReport(t)
	report.Contract.ID = ""

	output, err := Render(report, RenderOptions{})
	require.NoError(t, err)
	assert.Contains(t, output, "contract: Annual Contract 2024")
	assert.NotContains(t, output, "Annual Contract 2024 (")
}
