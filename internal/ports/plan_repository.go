package ports

import (
	"context"

	"github.com/bnema/zprov/internal/domain"
)

type PlanRepository interface {
	Load(ctx context.Context, path string) (domain.Plan, error)
	Save(ctx context.Context, path string, plan domain.Plan) error
}
