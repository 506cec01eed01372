package application

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/zprov/internal/domain"
	"github.com/bnema/zprov/internal/ports/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)

func newTestProvisioner(t *testing.T) (*Provisioner, *mocks.MockBillingAPI, *bytes.Buffer) {
	t.Helper()

	billing := mocks.NewMockBillingAPI(t)
	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().Return(testNow).Maybe()

	logs := &bytes.Buffer{}
	provisioner := NewProvisioner(billing, clock, zerolog.New(logs))
	provisioner.newRunID = func() string { return "run-1" }

	return provisioner, billing, logs
}

func defaultCommand() ProvisionCommand {
	start, end := DefaultRequestedWindow()
	return ProvisionCommand{
		Plan:           domain.DefaultPlan(),
		UserCount:      25,
		RequestedStart: start,
		RequestedEnd:   end,
	}
}

func productNamed(name string) interface{} {
	return mock.MatchedBy(func(product domain.Product) bool { return product.Name == name })
}

func pricingFor(productID string) interface{} {
	return mock.MatchedBy(func(pricing domain.Pricing) bool { return pricing.ProductID == productID })
}

func expectCustomer(billing *mocks.MockBillingAPI) {
	billing.EXPECT().CreateCustomer(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, customer domain.Customer) (domain.Customer, error) {
			customer.ID = "cus-1"
			return customer, nil
		}).Once()
}

func expectProduct(billing *mocks.MockBillingAPI, name, productID, pricingID string) {
	billing.EXPECT().CreateProduct(mock.Anything, productNamed(name)).
		RunAndReturn(func(_ context.Context, product domain.Product) (domain.Product, error) {
			product.ID = productID
			return product, nil
		}).Once()
	billing.EXPECT().AddPricing(mock.Anything, pricingFor(productID)).
		RunAndReturn(func(_ context.Context, pricing domain.Pricing) (domain.Pricing, error) {
			pricing.ID = pricingID
			return pricing, nil
		}).Once()
}

func remoteFailure(op string) error {
	return &domain.RemoteRequestError{Op: op, StatusCode: 500, Body: `{"detail":"boom"}`}
}

func TestProvisionerRunCreatesContractWithPhasedProducts(t *testing.T) {
	t.Parallel()

	provisioner, billing, _ := newTestProvisioner(t)

	expectCustomer(billing)
	expectProduct(billing, "One Time Fee", "p1", "pr1")
	expectProduct(billing, "Monthly Platform Fee", "p2", "pr2")
	expectProduct(billing, "Monthly User Fee", "p3", "pr3")

	var submitted domain.Contract
	billing.EXPECT().CreateContract(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, contract domain.Contract) (domain.Contract, error) {
			submitted = contract
			contract.ID = "ctr-1"
			return contract, nil
		}).Once()

	report, err := provisioner.Run(context.Background(), defaultCommand())
	require.NoError(t, err)

	assert.Equal(t, OutcomeCompleted, report.Outcome)
	assert.Equal(t, MessageContractCreated, report.Message)
	assert.True(t, report.Succeeded())
	assert.Equal(t, "run-1", report.RunID)
	assert.Equal(t, testNow, report.StartedAt)
	require.NotNil(t, report.Customer)
	assert.Equal(t, "cus-1", report.Customer.ID)
	require.NotNil(t, report.Contract)
	assert.Equal(t, "ctr-1", report.Contract.ID)

	assert.Equal(t, "cus-1", submitted.CustomerID)
	require.Len(t, submitted.Phases, 2)
	assert.Len(t, submitted.Phases[0].Records, 3)
	require.Len(t, submitted.Phases[1].Records, 2)
	for _, record := range submitted.Phases[1].Records {
		assert.NotEqual(t, domain.PlatformFeeProductName, record.Name)
	}
	assert.Equal(t, domain.ProductRecord{ProductID: "p3", PricingID: "pr3", Name: "Monthly User Fee"}, submitted.Phases[1].Records[1])
}

func TestProvisionerRunPassesUserCountAsMeteredQuantity(t *testing.T) {
	t.Parallel()

	provisioner, billing, _ := newTestProvisioner(t)

	expectCustomer(billing)
	expectProduct(billing, "One Time Fee", "p1", "pr1")
	expectProduct(billing, "Monthly Platform Fee", "p2", "pr2")
	billing.EXPECT().CreateProduct(mock.Anything, productNamed("Monthly User Fee")).
		Return(domain.Product{ID: "p3", Name: "Monthly User Fee"}, nil).Once()

	var usagePricing domain.Pricing
	billing.EXPECT().AddPricing(mock.Anything, pricingFor("p3")).
		Run(func(_ context.Context, pricing domain.Pricing) { usagePricing = pricing }).
		Return(domain.Pricing{ID: "pr3"}, nil).Once()
	billing.EXPECT().CreateContract(mock.Anything, mock.Anything).Return(domain.Contract{ID: "ctr-1"}, nil).Once()

	_, err := provisioner.Run(context.Background(), defaultCommand())
	require.NoError(t, err)

	quantity, ok := usagePricing.MeteredQuantity()
	require.True(t, ok)
	assert.Equal(t, int64(25), quantity)
	assert.Equal(t, domain.PricingTypePerUnit, usagePricing.Type())
	assert.Equal(t, domain.BillingOffsetPostpaid, usagePricing.Offset)
}

func TestProvisionerRunStopsWhenCustomerFails(t *testing.T) {
	t.Parallel()

	provisioner, billing, _ := newTestProvisioner(t)

	billing.EXPECT().CreateCustomer(mock.Anything, mock.Anything).
		Return(domain.Customer{}, remoteFailure("create customer")).Once()

	report, err := provisioner.Run(context.Background(), defaultCommand())
	require.NoError(t, err)

	assert.Equal(t, OutcomeCustomerFailed, report.Outcome)
	assert.Equal(t, MessageCustomerFailed, report.Message)
	assert.Contains(t, report.CustomerFailure, "status 500")
	assert.Nil(t, report.Customer)
	assert.Empty(t, report.Products)
	billing.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
	billing.AssertNotCalled(t, "CreateContract", mock.Anything, mock.Anything)
}

func TestProvisionerRunDropsProductWhosePricingFails(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		failing      string
		wantPhaseOne int
		wantPhaseTwo int
	}{
		{name: "platform fee pricing fails", failing: "Monthly Platform Fee", wantPhaseOne: 2, wantPhaseTwo: 2},
		{name: "one time fee pricing fails", failing: "One Time Fee", wantPhaseOne: 2, wantPhaseTwo: 1},
		{name: "user fee pricing fails", failing: "Monthly User Fee", wantPhaseOne: 2, wantPhaseTwo: 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			provisioner, billing, _ := newTestProvisioner(t)
			expectCustomer(billing)

			for i, spec := range domain.DefaultPlan().Products {
				productID := []string{"p1", "p2", "p3"}[i]
				if spec.Name != tt.failing {
					expectProduct(billing, spec.Name, productID, "pr-"+productID)
					continue
				}
				billing.EXPECT().CreateProduct(mock.Anything, productNamed(spec.Name)).
					Return(domain.Product{ID: productID, Name: spec.Name}, nil).Once()
				billing.EXPECT().AddPricing(mock.Anything, pricingFor(productID)).
					Return(domain.Pricing{}, remoteFailure("add pricing")).Once()
			}

			var submitted domain.Contract
			billing.EXPECT().CreateContract(mock.Anything, mock.Anything).
				Run(func(_ context.Context, contract domain.Contract) { submitted = contract }).
				Return(domain.Contract{ID: "ctr-1"}, nil).Once()

			report, err := provisioner.Run(context.Background(), defaultCommand())
			require.NoError(t, err)

			assert.Equal(t, OutcomeCompleted, report.Outcome)
			assert.Len(t, report.Records(), 2)
			assert.Len(t, submitted.Phases[0].Records, tt.wantPhaseOne)
			assert.Len(t, submitted.Phases[1].Records, tt.wantPhaseTwo)
			for _, record := range submitted.Phases[1].Records {
				assert.NotEqual(t, domain.PlatformFeeProductName, record.Name)
				assert.NotEqual(t, tt.failing, record.Name)
			}

			for _, product := range report.Products {
				if product.Name == tt.failing {
					assert.Equal(t, StagePricing, product.FailedStage)
					assert.Contains(t, product.Failure, "add pricing")
				}
			}
		})
	}
}

func TestProvisionerRunSkipsPricingWhenProductFails(t *testing.T) {
	t.Parallel()

	provisioner, billing, _ := newTestProvisioner(t)

	expectCustomer(billing)
	billing.EXPECT().CreateProduct(mock.Anything, productNamed("One Time Fee")).
		Return(domain.Product{}, remoteFailure("create product")).Once()
	expectProduct(billing, "Monthly Platform Fee", "p2", "pr2")
	expectProduct(billing, "Monthly User Fee", "p3", "pr3")
	billing.EXPECT().CreateContract(mock.Anything, mock.Anything).Return(domain.Contract{ID: "ctr-1"}, nil).Once()

	report, err := provisioner.Run(context.Background(), defaultCommand())
	require.NoError(t, err)

	require.Len(t, report.Products, 3)
	assert.Equal(t, StageProduct, report.Products[0].FailedStage)
	assert.Empty(t, report.Products[0].ProductID)
	assert.True(t, report.Products[1].Succeeded())
	assert.True(t, report.Products[2].Succeeded())
	billing.AssertNumberOfCalls(t, "AddPricing", 2)
}

func TestProvisionerRunSkipsContractWhenNoProductSucceeds(t *testing.T) {
	t.Parallel()

	provisioner, billing, _ := newTestProvisioner(t)

	expectCustomer(billing)
	billing.EXPECT().CreateProduct(mock.Anything, mock.Anything).
		Return(domain.Product{}, remoteFailure("create product")).Times(3)

	report, err := provisioner.Run(context.Background(), defaultCommand())
	require.NoError(t, err)

	assert.Equal(t, OutcomeNoProducts, report.Outcome)
	assert.Equal(t, MessageNoProducts, report.Message)
	assert.False(t, report.Succeeded())
	assert.Nil(t, report.Contract)
	billing.AssertNotCalled(t, "AddPricing", mock.Anything, mock.Anything)
	billing.AssertNotCalled(t, "CreateContract", mock.Anything, mock.Anything)
}

func TestProvisionerRunReportsContractFailure(t *testing.T) {
	t.Parallel()

	provisioner, billing, logs := newTestProvisioner(t)

	expectCustomer(billing)
	expectProduct(billing, "One Time Fee", "p1", "pr1")
	expectProduct(billing, "Monthly Platform Fee", "p2", "pr2")
	expectProduct(billing, "Monthly User Fee", "p3", "pr3")
	billing.EXPECT().CreateContract(mock.Anything, mock.Anything).
		Return(domain.Contract{}, remoteFailure("create contract")).Once()

	report, err := provisioner.Run(context.Background(), defaultCommand())
	require.NoError(t, err)

	assert.Equal(t, OutcomeContractFailed, report.Outcome)
	assert.Equal(t, MessageContractFailed, report.Message)
	assert.Contains(t, report.ContractFailure, "create contract")
	assert.Contains(t, logs.String(), `"outcome":"contract_failed"`)
	assert.Contains(t, logs.String(), `"run_id":"run-1"`)
}

func TestProvisionerRunRejectsInvalidInputBeforeAnyRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*ProvisionCommand)
		wantErr error
	}{
		{name: "negative user count", mutate: func(c *ProvisionCommand) { c.UserCount = -1 }, wantErr: ErrInvalidUserCount},
		{name: "invalid plan", mutate: func(c *ProvisionCommand) { c.Plan.Products = nil }, wantErr: domain.ErrInvalidPlan},
		{
			name: "overlapping phases",
			mutate: func(c *ProvisionCommand) {
				c.Plan.Contract.Phases[1].Start = c.Plan.Contract.Phases[0].Start
			},
			wantErr: domain.ErrInvalidPlan,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			provisioner, _, _ := newTestProvisioner(t)
			cmd := defaultCommand()
			tt.mutate(&cmd)

			_, err := provisioner.Run(context.Background(), cmd)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProvisionerRunWithoutBillingAPI(t *testing.T) {
	t.Parallel()

	provisioner := NewProvisioner(nil, nil, zerolog.Nop())

	_, err := provisioner.Run(context.Background(), defaultCommand())
	assert.ErrorIs(t, err, ErrNilBillingAPI)
}

func TestProvisionerRunStopsOnCancelledContext(t *testing.T) {
	t.Parallel()

	provisioner, billing, _ := newTestProvisioner(t)
	ctx, cancel := context.WithCancel(context.Background())

	billing.EXPECT().CreateCustomer(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, customer domain.Customer) (domain.Customer, error) {
			cancel()
			customer.ID = "cus-1"
			return customer, nil
		}).Once()

	report, err := provisioner.Run(ctx, defaultCommand())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRunInterrupted)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, report.Products)
}

func TestProvisionerRunWarnsWhenRequestedWindowDiffers(t *testing.T) {
	t.Parallel()

	provisioner, billing, logs := newTestProvisioner(t)

	expectCustomer(billing)
	expectProduct(billing, "One Time Fee", "p1", "pr1")
	expectProduct(billing, "Monthly Platform Fee", "p2", "pr2")
	expectProduct(billing, "Monthly User Fee", "p3", "pr3")

	var submitted domain.Contract
	billing.EXPECT().CreateContract(mock.Anything, mock.Anything).
		Run(func(_ context.Context, contract domain.Contract) { submitted = contract }).
		Return(domain.Contract{ID: "ctr-1"}, nil).Once()

	cmd := defaultCommand()
	cmd.RequestedStart = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	report, err := provisioner.Run(context.Background(), cmd)
	require.NoError(t, err)

	assert.Equal(t, OutcomeCompleted, report.Outcome)
	assert.Contains(t, logs.String(), "requested contract window differs from plan")
	assert.Equal(t, cmd.Plan.Contract.Phases[0].Start, submitted.Phases[0].Start)
	assert.Equal(t, cmd.Plan.Contract.Start, submitted.Terms.Start)
}

func TestProvisionerRunDoesNotWarnForDefaultWindow(t *testing.T) {
	t.Parallel()

	provisioner, billing, logs := newTestProvisioner(t)

	expectCustomer(billing)
	expectProduct(billing, "One Time Fee", "p1", "pr1")
	expectProduct(billing, "Monthly Platform Fee", "p2", "pr2")
	expectProduct(billing, "Monthly User Fee", "p3", "pr3")
	billing.EXPECT().CreateContract(mock.Anything, mock.Anything).Return(domain.Contract{ID: "ctr-1"}, nil).Once()

	_, err := provisioner.Run(context.Background(), defaultCommand())
	require.NoError(t, err)
	assert.NotContains(t, logs.String(), "requested contract window differs")
}
