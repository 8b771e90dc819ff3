package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/arfeen-portal/arfeen-portal-sub002/internal/agentpricing/domain"
	"github.com/arfeen-portal/arfeen-portal-sub002/pkg/db/option"
	pkgrepo "github.com/arfeen-portal/arfeen-portal-sub002/pkg/repository"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

// FindActiveRuleByAgent is a maybe-single lookup: extra active rows for the
// same agent are configuration noise and the oldest wins.
func (r *repo) FindActiveRuleByAgent(ctx context.Context, db *gorm.DB, agentID string) (*domain.AgentPricingRule, error) {
	store := pkgrepo.ProvideStore[domain.AgentPricingRule](db)
	return store.FindOne(ctx,
		&domain.AgentPricingRule{AgentID: agentID, Active: true},
		option.WithSortBy("id ASC"),
	)
}
