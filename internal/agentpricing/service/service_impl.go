package service

import (
	"context"
	"math"
	"strings"

	"github.com/arfeen-portal/arfeen-portal-sub002/internal/agentpricing/domain"
	"github.com/arfeen-portal/arfeen-portal-sub002/internal/config"
	"github.com/oklog/ulid/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Pricing *config.PricingConfigHolder
	Repo    domain.Repository
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	pricing *config.PricingConfigHolder
	repo    domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("agentpricing.service"),
		pricing: p.Pricing,
		repo:    p.Repo,
	}
}

// SuggestForAgent builds the tier quote from the agent's active rule, or from
// the configured defaults when the agent has none. Tier math runs in a fixed
// order: the cheapest floor first, then recommended with the margin clamp,
// then vip as 1.25x of the clamped recommended.
func (s *Service) SuggestForAgent(ctx context.Context, basePrice float64, agentID string) (*domain.PriceQuote, error) {
	if basePrice <= 0 {
		return nil, domain.ErrInvalidBasePrice
	}

	defaults := s.pricing.Get().AgentDefaults
	markupPct := defaults.MarkupPct
	minMargin := defaults.MinMargin
	maxDiscountPct := defaults.MaxDiscountPct

	if agentID = strings.TrimSpace(agentID); agentID != "" {
		rule, err := s.repo.FindActiveRuleByAgent(ctx, s.db, agentID)
		if err != nil {
			return nil, err
		}
		if rule != nil {
			markupPct = rule.MarkupPct
			minMargin = rule.MinMargin
			maxDiscountPct = rule.MaxDiscountPct
		} else {
			s.log.Debug("no active pricing rule for agent, using defaults",
				zap.String("agent_id", agentID),
			)
		}
	}

	minPrice := basePrice * (1 - maxDiscountPct/100)
	cheapest := math.Round(math.Max(minPrice, basePrice*0.95))

	recommended := math.Round(basePrice * (1 + markupPct/100))
	if recommended-basePrice < minMargin {
		recommended = math.Round(basePrice + minMargin)
	}

	vip := math.Round(recommended * 1.25)

	return &domain.PriceQuote{
		Reference: ulid.Make().String(),
		Currency:  "SAR",
		Cheapest: domain.PriceTier{
			Price: cheapest,
			Label: "Cheapest",
			Note:  "Lowest price within the allowed discount",
		},
		Recommended: domain.PriceTier{
			Price: recommended,
			Label: "Recommended",
			Note:  "Standard agent price",
		},
		VIP: domain.PriceTier{
			Price: vip,
			Label: "VIP",
			Note:  "Premium service tier",
		},
	}, nil
}

// SuggestForDemand prices from market signals alone, for callers with no agent
// rule such as public quoting. Each tier derives from the base price directly.
func (s *Service) SuggestForDemand(ctx context.Context, basePrice float64, demandIndex int, occupancy string) (*domain.PriceQuote, error) {
	if basePrice <= 0 {
		return nil, domain.ErrInvalidBasePrice
	}
	if demandIndex < 1 || demandIndex > 10 {
		return nil, domain.ErrInvalidDemandIndex
	}

	cfg := s.pricing.Get()

	occupancy = strings.ToLower(strings.TrimSpace(occupancy))
	occFactor, ok := cfg.Occupancy[occupancy]
	if !ok {
		return nil, domain.ErrInvalidOccupancy
	}

	demandFactor := cfg.Demand.MidFactor
	switch {
	case demandIndex > cfg.Demand.HighThreshold:
		demandFactor = cfg.Demand.HighFactor
	case demandIndex < cfg.Demand.LowThreshold:
		demandFactor = cfg.Demand.LowFactor
	}

	return &domain.PriceQuote{
		Reference: ulid.Make().String(),
		Currency:  "SAR",
		Cheapest: domain.PriceTier{
			Price: math.Round(basePrice * 0.95),
			Label: "Cheapest",
			Note:  "Early booking price",
		},
		Recommended: domain.PriceTier{
			Price: math.Round(basePrice * demandFactor),
			Label: "Recommended",
			Note:  "Demand-adjusted price",
		},
		VIP: domain.PriceTier{
			Price: math.Round(basePrice * occFactor),
			Label: "VIP",
			Note:  "Premium occupancy price",
		},
	}, nil
}
