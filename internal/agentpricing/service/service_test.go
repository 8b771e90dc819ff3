package service

import (
	"context"
	"testing"

	"github.com/arfeen-portal/arfeen-portal-sub002/internal/agentpricing/domain"
	"github.com/arfeen-portal/arfeen-portal-sub002/internal/agentpricing/repository"
	"github.com/arfeen-portal/arfeen-portal-sub002/internal/config"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.AgentPricingRule{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:      db,
		Log:     zap.NewNop(),
		Pricing: config.NewStaticPricingHolder(config.DefaultPricingConfig()),
		Repo:    repository.Provide(),
	})
	return svc, db, node
}

func seedRule(t *testing.T, db *gorm.DB, node *snowflake.Node, rule domain.AgentPricingRule) {
	t.Helper()
	rule.ID = node.Generate()
	require.NoError(t, db.Create(&rule).Error)
}

func TestSuggestForAgent_DefaultsWhenNoRule(t *testing.T) {
	svc, _, _ := newTestService(t)

	quote, err := svc.SuggestForAgent(context.Background(), 1000, "AG-001")
	require.NoError(t, err)

	assert.Equal(t, 950.0, quote.Cheapest.Price)
	assert.Equal(t, 1000.0, quote.Recommended.Price)
	assert.Equal(t, 1250.0, quote.VIP.Price)
	assert.Equal(t, "SAR", quote.Currency)
	assert.NotEmpty(t, quote.Reference)
}

func TestSuggestForAgent_RuleApplied(t *testing.T) {
	svc, db, node := newTestService(t)

	seedRule(t, db, node, domain.AgentPricingRule{
		AgentID:        "AG-002",
		MarkupPct:      10,
		MinMargin:      50,
		MaxDiscountPct: 15,
		Active:         true,
	})

	quote, err := svc.SuggestForAgent(context.Background(), 1000, "AG-002")
	require.NoError(t, err)

	// 15% discount floor (850) loses to the 95% floor (950)
	assert.Equal(t, 950.0, quote.Cheapest.Price)
	// markup 10% gives 1100; margin 100 >= 50, no clamp
	assert.Equal(t, 1100.0, quote.Recommended.Price)
	assert.Equal(t, 1375.0, quote.VIP.Price)
}

func TestSuggestForAgent_DeepDiscountFloorWins(t *testing.T) {
	svc, db, node := newTestService(t)

	seedRule(t, db, node, domain.AgentPricingRule{
		AgentID:        "AG-003",
		MaxDiscountPct: 2,
		Active:         true,
	})

	quote, err := svc.SuggestForAgent(context.Background(), 1000, "AG-003")
	require.NoError(t, err)

	// 2% discount floor (980) beats the 95% floor (950)
	assert.Equal(t, 980.0, quote.Cheapest.Price)
}

func TestSuggestForAgent_MinMarginClamp(t *testing.T) {
	svc, db, node := newTestService(t)

	seedRule(t, db, node, domain.AgentPricingRule{
		AgentID:        "AG-004",
		MarkupPct:      1,
		MinMargin:      100,
		MaxDiscountPct: 20,
		Active:         true,
	})

	quote, err := svc.SuggestForAgent(context.Background(), 1000, "AG-004")
	require.NoError(t, err)

	// markup gives 1010, margin 10 < 100, clamped to base + minMargin
	assert.Equal(t, 1100.0, quote.Recommended.Price)
	assert.Equal(t, 1375.0, quote.VIP.Price)
	assert.LessOrEqual(t, quote.Cheapest.Price, quote.Recommended.Price)
	assert.LessOrEqual(t, quote.Recommended.Price, quote.VIP.Price)
}

func TestSuggestForAgent_InactiveRuleIgnored(t *testing.T) {
	svc, db, node := newTestService(t)

	seedRule(t, db, node, domain.AgentPricingRule{
		AgentID:   "AG-005",
		MarkupPct: 50,
		Active:    false,
	})

	quote, err := svc.SuggestForAgent(context.Background(), 1000, "AG-005")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, quote.Recommended.Price)
}

func TestAgentPricingRule_InactiveFlagRoundTrips(t *testing.T) {
	_, db, node := newTestService(t)

	seedRule(t, db, node, domain.AgentPricingRule{
		AgentID:   "AG-050",
		MarkupPct: 50,
		Active:    false,
	})

	var got domain.AgentPricingRule
	require.NoError(t, db.First(&got, "agent_id = ?", "AG-050").Error)
	assert.False(t, got.Active)
}

func TestSuggestForAgent_Idempotent(t *testing.T) {
	svc, db, node := newTestService(t)

	seedRule(t, db, node, domain.AgentPricingRule{
		AgentID:        "AG-006",
		MarkupPct:      7,
		MinMargin:      25,
		MaxDiscountPct: 12,
		Active:         true,
	})

	first, err := svc.SuggestForAgent(context.Background(), 1234, "AG-006")
	require.NoError(t, err)
	second, err := svc.SuggestForAgent(context.Background(), 1234, "AG-006")
	require.NoError(t, err)

	assert.Equal(t, first.Cheapest, second.Cheapest)
	assert.Equal(t, first.Recommended, second.Recommended)
	assert.Equal(t, first.VIP, second.VIP)
}

func TestSuggestForAgent_MonotonicInBase(t *testing.T) {
	svc, db, node := newTestService(t)

	seedRule(t, db, node, domain.AgentPricingRule{
		AgentID:        "AG-007",
		MarkupPct:      10,
		MinMargin:      50,
		MaxDiscountPct: 15,
		Active:         true,
	})

	var prev *domain.PriceQuote
	for _, base := range []float64{100, 500, 1000, 2500, 10000} {
		quote, err := svc.SuggestForAgent(context.Background(), base, "AG-007")
		require.NoError(t, err)
		if prev != nil {
			assert.Greater(t, quote.Cheapest.Price, prev.Cheapest.Price)
			assert.Greater(t, quote.Recommended.Price, prev.Recommended.Price)
			assert.Greater(t, quote.VIP.Price, prev.VIP.Price)
		}
		prev = quote
	}
}

func TestSuggestForAgent_TierOrderingHolds(t *testing.T) {
	svc, db, node := newTestService(t)

	rules := []domain.AgentPricingRule{
		{AgentID: "AG-O1", MarkupPct: 0, MinMargin: 0, MaxDiscountPct: 0, Active: true},
		{AgentID: "AG-O2", MarkupPct: 0, MinMargin: 500, MaxDiscountPct: 20, Active: true},
		{AgentID: "AG-O3", MarkupPct: 25, MinMargin: 0, MaxDiscountPct: 50, Active: true},
	}
	for _, r := range rules {
		seedRule(t, db, node, r)
	}

	for _, r := range rules {
		for _, base := range []float64{1, 99, 1000, 99999} {
			quote, err := svc.SuggestForAgent(context.Background(), base, r.AgentID)
			require.NoError(t, err)
			assert.LessOrEqual(t, quote.Cheapest.Price, quote.Recommended.Price,
				"agent %s base %v", r.AgentID, base)
			assert.LessOrEqual(t, quote.Recommended.Price, quote.VIP.Price,
				"agent %s base %v", r.AgentID, base)
		}
	}
}

func TestSuggestForAgent_InvalidBasePrice(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.SuggestForAgent(context.Background(), 0, "AG-001")
	assert.ErrorIs(t, err, domain.ErrInvalidBasePrice)

	_, err = svc.SuggestForAgent(context.Background(), -10, "AG-001")
	assert.ErrorIs(t, err, domain.ErrInvalidBasePrice)
}

func TestSuggestForDemand_FactorBands(t *testing.T) {
	svc, _, _ := newTestService(t)

	cases := []struct {
		name        string
		demandIndex int
		recommended float64
	}{
		{"high demand", 9, 1080},
		{"boundary stays mid", 7, 1030},
		{"mid demand", 5, 1030},
		{"low boundary stays mid", 4, 1030},
		{"low demand", 2, 980},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quote, err := svc.SuggestForDemand(context.Background(), 1000, tc.demandIndex, "medium")
			require.NoError(t, err)
			assert.Equal(t, 950.0, quote.Cheapest.Price)
			assert.Equal(t, tc.recommended, quote.Recommended.Price)
			assert.Equal(t, 1250.0, quote.VIP.Price)
		})
	}
}

func TestSuggestForDemand_OccupancyFactors(t *testing.T) {
	svc, _, _ := newTestService(t)

	cases := map[string]float64{
		"high":   1300,
		"medium": 1250,
		"low":    1200,
	}
	for occupancy, vip := range cases {
		quote, err := svc.SuggestForDemand(context.Background(), 1000, 5, occupancy)
		require.NoError(t, err)
		assert.Equal(t, vip, quote.VIP.Price, "occupancy %s", occupancy)
	}
}

func TestSuggestForDemand_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.SuggestForDemand(context.Background(), 0, 5, "low")
	assert.ErrorIs(t, err, domain.ErrInvalidBasePrice)

	_, err = svc.SuggestForDemand(context.Background(), 1000, 0, "low")
	assert.ErrorIs(t, err, domain.ErrInvalidDemandIndex)

	_, err = svc.SuggestForDemand(context.Background(), 1000, 11, "low")
	assert.ErrorIs(t, err, domain.ErrInvalidDemandIndex)

	_, err = svc.SuggestForDemand(context.Background(), 1000, 5, "packed")
	assert.ErrorIs(t, err, domain.ErrInvalidOccupancy)
}
