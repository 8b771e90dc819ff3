package domain

import (
	"context"

	"gorm.io/gorm"
)

// Repository lists active rate rules in ascending priority order. The first
// rule whose every defined predicate matches the request wins; overlapping
// ranges are resolved by priority order alone.
type Repository interface {
	ListActiveTransportRates(ctx context.Context, db *gorm.DB) ([]TransportRate, error)
	ListActiveHotelRates(ctx context.Context, db *gorm.DB) ([]HotelRate, error)
	ListActiveFlightRates(ctx context.Context, db *gorm.DB) ([]FlightRate, error)
}
