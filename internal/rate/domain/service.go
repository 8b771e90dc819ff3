package domain

import (
	"context"
	"errors"
)

// Service matches stored rate rules and computes base prices. Quotes never fail
// on missing rules: transport falls back to the static per-km table, hotel and
// flight to the configured default rates.
type Service interface {
	FindTransportRule(ctx context.Context, criteria TransportCriteria) (*TransportRate, error)
	FindHotelRule(ctx context.Context, criteria HotelCriteria) (*HotelRate, error)
	FindFlightRule(ctx context.Context, criteria FlightCriteria) (*FlightRate, error)

	TransportQuote(ctx context.Context, criteria TransportCriteria) (*BaseQuote, error)
	HotelQuote(ctx context.Context, criteria HotelCriteria) (*BaseQuote, error)
	FlightQuote(ctx context.Context, criteria FlightCriteria) (*BaseQuote, error)
}

// TransportCriteria describes a ground transport pricing request. The two
// percentage fields apply only on the fallback path, where no stored rule
// carries them.
type TransportCriteria struct {
	VehicleType        string  `json:"vehicle_type"`
	DistanceKm         float64 `json:"distance_km"`
	AgentCommissionPct float64 `json:"agent_commission_pct,omitempty"`
	ProfitPct          float64 `json:"profit_pct,omitempty"`
}

// HotelCriteria describes a hotel stay pricing request.
type HotelCriteria struct {
	City               string  `json:"city"`
	StarRating         int     `json:"star_rating"`
	RoomType           string  `json:"room_type"`
	Nights             int     `json:"nights"`
	AgentCommissionPct float64 `json:"agent_commission_pct,omitempty"`
	ProfitPct          float64 `json:"profit_pct,omitempty"`
}

// FlightCriteria describes a flight segment pricing request.
type FlightCriteria struct {
	OriginCode         string  `json:"origin_code"`
	DestinationCode    string  `json:"destination_code"`
	CabinClass         string  `json:"cabin_class"`
	AirlineCode        string  `json:"airline_code"`
	AgentCommissionPct float64 `json:"agent_commission_pct,omitempty"`
	ProfitPct          float64 `json:"profit_pct,omitempty"`
}

// Pricing sources for a BaseQuote.
const (
	SourceRule     = "rule"
	SourceFallback = "fallback"
)

// BaseQuote is the computed base price before agent tiering. Amounts are
// rounded to two decimal places in SAR.
type BaseQuote struct {
	ServiceType        ServiceType `json:"service_type"`
	RuleID             string      `json:"rule_id,omitempty"`
	RuleName           string      `json:"rule_name,omitempty"`
	Source             string      `json:"source"`
	Currency           string      `json:"currency"`
	Quantity           float64     `json:"quantity"`
	UnitRate           float64     `json:"unit_rate,omitempty"`
	BaseFare           float64     `json:"base_fare"`
	AgentCommissionPct float64     `json:"agent_commission_pct"`
	AgentCommission    float64     `json:"agent_commission"`
	ProfitPct          float64     `json:"profit_pct"`
	TotalPrice         float64     `json:"total_price"`
}

var (
	ErrInvalidVehicleType = errors.New("invalid_vehicle_type")
	ErrInvalidDistance    = errors.New("invalid_distance_km")
	ErrInvalidCity        = errors.New("invalid_city")
	ErrInvalidNights      = errors.New("invalid_nights")
	ErrInvalidRoute       = errors.New("invalid_route")
	// ErrNoFallbackRate means no stored rule matched and the fallback table has
	// no entry for the requested vehicle type either.
	ErrNoFallbackRate = errors.New("no_fallback_rate")
)
