package service

import (
	"context"
	"strings"

	"github.com/arfeen-portal/arfeen-portal-sub002/internal/config"
	obsmetrics "github.com/arfeen-portal/arfeen-portal-sub002/internal/observability/metrics"
	"github.com/arfeen-portal/arfeen-portal-sub002/internal/rate/domain"
	"github.com/shopspring/decimal"
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
	Metrics *obsmetrics.QuoteMetrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	pricing *config.PricingConfigHolder
	repo    domain.Repository
	metrics *obsmetrics.QuoteMetrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("rate.service"),
		pricing: p.Pricing,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

func (s *Service) FindTransportRule(ctx context.Context, criteria domain.TransportCriteria) (*domain.TransportRate, error) {
	rules, err := s.repo.ListActiveTransportRates(ctx, s.db)
	if err != nil {
		return nil, err
	}
	for i := range rules {
		if rules[i].Matches(criteria) {
			return &rules[i], nil
		}
	}
	return nil, nil
}

func (s *Service) FindHotelRule(ctx context.Context, criteria domain.HotelCriteria) (*domain.HotelRate, error) {
	rules, err := s.repo.ListActiveHotelRates(ctx, s.db)
	if err != nil {
		return nil, err
	}
	for i := range rules {
		if rules[i].Matches(criteria) {
			return &rules[i], nil
		}
	}
	return nil, nil
}

func (s *Service) FindFlightRule(ctx context.Context, criteria domain.FlightCriteria) (*domain.FlightRate, error) {
	rules, err := s.repo.ListActiveFlightRates(ctx, s.db)
	if err != nil {
		return nil, err
	}
	for i := range rules {
		if rules[i].Matches(criteria) {
			return &rules[i], nil
		}
	}
	return nil, nil
}

func (s *Service) TransportQuote(ctx context.Context, criteria domain.TransportCriteria) (*domain.BaseQuote, error) {
	criteria.VehicleType = strings.ToLower(strings.TrimSpace(criteria.VehicleType))
	if criteria.VehicleType == "" {
		return nil, domain.ErrInvalidVehicleType
	}
	if criteria.DistanceKm <= 0 {
		return nil, domain.ErrInvalidDistance
	}

	rule, err := s.FindTransportRule(ctx, criteria)
	if err != nil {
		return nil, err
	}

	distance := decimal.NewFromFloat(criteria.DistanceKm)
	quote := &domain.BaseQuote{
		ServiceType: domain.ServiceTypeTransport,
		Currency:    "SAR",
		Quantity:    criteria.DistanceKm,
	}

	var base decimal.Decimal
	if rule != nil {
		quote.Source = domain.SourceRule
		quote.RuleID = rule.ID.String()
		quote.RuleName = rule.Name
		quote.AgentCommissionPct = rule.AgentCommissionPct
		quote.ProfitPct = rule.ProfitPct
		switch {
		case rule.BasePrice != nil:
			base = *rule.BasePrice
		case rule.PerKmRate != nil:
			quote.UnitRate = rule.PerKmRate.InexactFloat64()
			base = rule.PerKmRate.Mul(distance)
		default:
			s.log.Warn("transport rule has no pricing basis, using fallback table",
				zap.String("rule_id", rule.ID.String()),
			)
			rule = nil
		}
	}
	if rule == nil {
		perKm, ok := s.pricing.Get().TransportPerKm[criteria.VehicleType]
		if !ok {
			return nil, domain.ErrNoFallbackRate
		}
		quote.Source = domain.SourceFallback
		quote.UnitRate = perKm
		quote.AgentCommissionPct = criteria.AgentCommissionPct
		quote.ProfitPct = criteria.ProfitPct
		base = decimal.NewFromFloat(perKm).Mul(distance)
	}

	s.fillAmounts(quote, base)
	s.metrics.RecordQuote(string(domain.ServiceTypeTransport), quote.Source)
	return quote, nil
}

func (s *Service) HotelQuote(ctx context.Context, criteria domain.HotelCriteria) (*domain.BaseQuote, error) {
	criteria.City = strings.TrimSpace(criteria.City)
	if criteria.City == "" {
		return nil, domain.ErrInvalidCity
	}
	if criteria.Nights <= 0 {
		return nil, domain.ErrInvalidNights
	}

	rule, err := s.FindHotelRule(ctx, criteria)
	if err != nil {
		return nil, err
	}

	nights := decimal.NewFromInt(int64(criteria.Nights))
	quote := &domain.BaseQuote{
		ServiceType: domain.ServiceTypeHotel,
		Currency:    "SAR",
		Quantity:    float64(criteria.Nights),
	}

	var base decimal.Decimal
	if rule != nil {
		quote.Source = domain.SourceRule
		quote.RuleID = rule.ID.String()
		quote.RuleName = rule.Name
		quote.AgentCommissionPct = rule.AgentCommissionPct
		quote.ProfitPct = rule.ProfitPct
		switch {
		case rule.BasePrice != nil:
			base = *rule.BasePrice
		case rule.PerNightRate != nil:
			quote.UnitRate = rule.PerNightRate.InexactFloat64()
			base = rule.PerNightRate.Mul(nights)
		default:
			s.log.Warn("hotel rule has no pricing basis, using fallback rate",
				zap.String("rule_id", rule.ID.String()),
			)
			rule = nil
		}
	}
	if rule == nil {
		perNight := s.pricing.Get().HotelPerNight
		quote.Source = domain.SourceFallback
		quote.UnitRate = perNight
		quote.AgentCommissionPct = criteria.AgentCommissionPct
		quote.ProfitPct = criteria.ProfitPct
		base = decimal.NewFromFloat(perNight).Mul(nights)
	}

	s.fillAmounts(quote, base)
	s.metrics.RecordQuote(string(domain.ServiceTypeHotel), quote.Source)
	return quote, nil
}

func (s *Service) FlightQuote(ctx context.Context, criteria domain.FlightCriteria) (*domain.BaseQuote, error) {
	criteria.OriginCode = strings.ToUpper(strings.TrimSpace(criteria.OriginCode))
	criteria.DestinationCode = strings.ToUpper(strings.TrimSpace(criteria.DestinationCode))
	if criteria.OriginCode == "" || criteria.DestinationCode == "" {
		return nil, domain.ErrInvalidRoute
	}

	rule, err := s.FindFlightRule(ctx, criteria)
	if err != nil {
		return nil, err
	}

	quote := &domain.BaseQuote{
		ServiceType: domain.ServiceTypeFlight,
		Currency:    "SAR",
		Quantity:    1,
	}

	var base decimal.Decimal
	if rule != nil {
		quote.Source = domain.SourceRule
		quote.RuleID = rule.ID.String()
		quote.RuleName = rule.Name
		quote.AgentCommissionPct = rule.AgentCommissionPct
		quote.ProfitPct = rule.ProfitPct
		base = rule.BasePrice
	} else {
		quote.Source = domain.SourceFallback
		quote.AgentCommissionPct = criteria.AgentCommissionPct
		quote.ProfitPct = criteria.ProfitPct
		base = decimal.NewFromFloat(s.pricing.Get().FlightBase)
	}

	s.fillAmounts(quote, base)
	s.metrics.RecordQuote(string(domain.ServiceTypeFlight), quote.Source)
	return quote, nil
}

// fillAmounts derives commission and marked-up total from the base fare:
// commission = base × commission_pct / 100, total = base + base × profit_pct / 100.
func (s *Service) fillAmounts(quote *domain.BaseQuote, base decimal.Decimal) {
	base = base.Round(2)
	hundred := decimal.NewFromInt(100)

	commission := base.Mul(decimal.NewFromFloat(quote.AgentCommissionPct)).Div(hundred).Round(2)
	total := base.Add(base.Mul(decimal.NewFromFloat(quote.ProfitPct)).Div(hundred)).Round(2)

	quote.BaseFare = base.InexactFloat64()
	quote.AgentCommission = commission.InexactFloat64()
	quote.TotalPrice = total.InexactFloat64()
}
