package domain

import (
	"context"

	"gorm.io/gorm"
)

// Repository reads agent pricing rules. FindActiveRuleByAgent returns
// (nil, nil) when the agent has no active rule; an error means the store
// itself failed.
type Repository interface {
	FindActiveRuleByAgent(ctx context.Context, db *gorm.DB, agentID string) (*AgentPricingRule, error)
}
