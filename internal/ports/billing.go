package ports

import (
	"context"

	"github.com/bnema/zprov/internal/domain"
)

// BillingAPI creates billing entities remotely. Every method returns the input enriched with
// the server-assigned ID, or a *domain.RemoteRequestError.
type BillingAPI interface {
	CreateCustomer(ctx context.Context, customer domain.Customer) (domain.Customer, error)
	CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	AddPricing(ctx context.Context, pricing domain.Pricing) (domain.Pricing, error)
	CreateContract(ctx context.Context, contract domain.Contract) (domain.Contract, error)
}
