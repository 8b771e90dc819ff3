package domain

import (
	"context"
	"errors"
)

// Service turns a base price into the three-tier quote shown to agents and
// customers. Two distinct variants exist on purpose: the agent variant reads
// the agent's stored rule, the demand variant prices from market signals only.
type Service interface {
	SuggestForAgent(ctx context.Context, basePrice float64, agentID string) (*PriceQuote, error)
	SuggestForDemand(ctx context.Context, basePrice float64, demandIndex int, occupancy string) (*PriceQuote, error)
}

// PriceTier is one of the three suggested price points.
type PriceTier struct {
	Price float64 `json:"price"`
	Label string  `json:"label"`
	Note  string  `json:"note"`
}

// PriceQuote is the tiered suggestion. Prices are whole SAR amounts. Reference
// is a per-call ulid so callers can correlate a suggestion in their logs; the
// quote itself is never persisted.
type PriceQuote struct {
	Reference   string    `json:"reference"`
	Currency    string    `json:"currency"`
	Cheapest    PriceTier `json:"cheapest"`
	Recommended PriceTier `json:"recommended"`
	VIP         PriceTier `json:"vip"`
}

var (
	ErrInvalidBasePrice   = errors.New("invalid_base_price")
	ErrInvalidDemandIndex = errors.New("invalid_demand_index")
	ErrInvalidOccupancy   = errors.New("invalid_occupancy")
)
