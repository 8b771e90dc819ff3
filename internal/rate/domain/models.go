// Package domain contains persistence models for the rate engine.
package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// ServiceType is the product category a rate rule applies to.
type ServiceType string

const (
	ServiceTypeTransport ServiceType = "transport"
	ServiceTypeHotel     ServiceType = "hotel"
	ServiceTypeFlight    ServiceType = "flight"
)

// TransportRate prices a ground transport leg. Either BasePrice (flat) or
// PerKmRate must be set; BasePrice wins when both are.
type TransportRate struct {
	ID                 snowflake.ID     `gorm:"primaryKey" json:"id"`
	Name               string           `gorm:"type:text;not null" json:"name"`
	Priority           int              `gorm:"not null;default:100;index" json:"priority"`
	Active             bool             `gorm:"not null" json:"active"`
	VehicleType        string           `gorm:"column:vehicle_type;type:text;not null" json:"vehicle_type"`
	MinKm              float64          `gorm:"column:min_km;not null;default:0" json:"min_km"`
	MaxKm              float64          `gorm:"column:max_km;not null;default:0" json:"max_km"`
	BasePrice          *decimal.Decimal `gorm:"column:base_price;type:numeric(12,2)" json:"base_price,omitempty"`
	PerKmRate          *decimal.Decimal `gorm:"column:per_km_rate;type:numeric(12,2)" json:"per_km_rate,omitempty"`
	AgentCommissionPct float64          `gorm:"column:agent_commission_pct;not null;default:0" json:"agent_commission_pct"`
	ProfitPct          float64          `gorm:"column:profit_pct;not null;default:0" json:"profit_pct"`
	CreatedAt          time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (TransportRate) TableName() string { return "transport_rates" }

// Matches reports whether every defined constraint accepts the criteria.
// Range bounds are inclusive; MaxKm == 0 means unbounded.
func (r TransportRate) Matches(c TransportCriteria) bool {
	if !strings.EqualFold(r.VehicleType, c.VehicleType) {
		return false
	}
	if c.DistanceKm < r.MinKm {
		return false
	}
	if r.MaxKm > 0 && c.DistanceKm > r.MaxKm {
		return false
	}
	return true
}

// HotelRate prices a hotel stay. Either BasePrice (whole stay) or PerNightRate
// must be set; BasePrice wins when both are.
type HotelRate struct {
	ID                 snowflake.ID     `gorm:"primaryKey" json:"id"`
	Name               string           `gorm:"type:text;not null" json:"name"`
	Priority           int              `gorm:"not null;default:100;index" json:"priority"`
	Active             bool             `gorm:"not null" json:"active"`
	City               string           `gorm:"type:text;not null" json:"city"`
	StarRating         int              `gorm:"column:star_rating;not null;default:0" json:"star_rating"`
	RoomType           string           `gorm:"column:room_type;type:text" json:"room_type"`
	MinNights          int              `gorm:"column:min_nights;not null;default:0" json:"min_nights"`
	MaxNights          int              `gorm:"column:max_nights;not null;default:0" json:"max_nights"`
	BasePrice          *decimal.Decimal `gorm:"column:base_price;type:numeric(12,2)" json:"base_price,omitempty"`
	PerNightRate       *decimal.Decimal `gorm:"column:per_night_rate;type:numeric(12,2)" json:"per_night_rate,omitempty"`
	AgentCommissionPct float64          `gorm:"column:agent_commission_pct;not null;default:0" json:"agent_commission_pct"`
	ProfitPct          float64          `gorm:"column:profit_pct;not null;default:0" json:"profit_pct"`
	CreatedAt          time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (HotelRate) TableName() string { return "hotel_rates" }

// Matches reports whether every defined constraint accepts the criteria.
// A zero StarRating or empty RoomType on the rule matches anything.
func (r HotelRate) Matches(c HotelCriteria) bool {
	if !strings.EqualFold(r.City, c.City) {
		return false
	}
	if r.StarRating > 0 && r.StarRating != c.StarRating {
		return false
	}
	if r.RoomType != "" && !strings.EqualFold(r.RoomType, c.RoomType) {
		return false
	}
	if c.Nights < r.MinNights {
		return false
	}
	if r.MaxNights > 0 && c.Nights > r.MaxNights {
		return false
	}
	return true
}

// FlightRate prices a flight segment with a flat fare.
type FlightRate struct {
	ID                 snowflake.ID    `gorm:"primaryKey" json:"id"`
	Name               string          `gorm:"type:text;not null" json:"name"`
	Priority           int             `gorm:"not null;default:100;index" json:"priority"`
	Active             bool            `gorm:"not null" json:"active"`
	OriginCode         string          `gorm:"column:origin_code;type:text;not null" json:"origin_code"`
	DestinationCode    string          `gorm:"column:destination_code;type:text;not null" json:"destination_code"`
	CabinClass         string          `gorm:"column:cabin_class;type:text" json:"cabin_class"`
	AirlineCode        string          `gorm:"column:airline_code;type:text" json:"airline_code"`
	BasePrice          decimal.Decimal `gorm:"column:base_price;type:numeric(12,2);not null" json:"base_price"`
	AgentCommissionPct float64         `gorm:"column:agent_commission_pct;not null;default:0" json:"agent_commission_pct"`
	ProfitPct          float64         `gorm:"column:profit_pct;not null;default:0" json:"profit_pct"`
	CreatedAt          time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (FlightRate) TableName() string { return "flight_rates" }

// Matches reports whether every defined constraint accepts the criteria.
// Empty CabinClass or AirlineCode on the rule matches anything.
func (r FlightRate) Matches(c FlightCriteria) bool {
	if !strings.EqualFold(r.OriginCode, c.OriginCode) {
		return false
	}
	if !strings.EqualFold(r.DestinationCode, c.DestinationCode) {
		return false
	}
	if r.CabinClass != "" && !strings.EqualFold(r.CabinClass, c.CabinClass) {
		return false
	}
	if r.AirlineCode != "" && !strings.EqualFold(r.AirlineCode, c.AirlineCode) {
		return false
	}
	return true
}
