package repository

import (
	"context"

	"github.com/arfeen-portal/arfeen-portal-sub002/internal/rate/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListActiveTransportRates(ctx context.Context, db *gorm.DB) ([]domain.TransportRate, error) {
	var items []domain.TransportRate
	err := db.WithContext(ctx).
		Where("active = ?", true).
		Order("priority ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListActiveHotelRates(ctx context.Context, db *gorm.DB) ([]domain.HotelRate, error) {
	var items []domain.HotelRate
	err := db.WithContext(ctx).
		Where("active = ?", true).
		Order("priority ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListActiveFlightRates(ctx context.Context, db *gorm.DB) ([]domain.FlightRate, error) {
	var items []domain.FlightRate
	err := db.WithContext(ctx).
		Where("active = ?", true).
		Order("priority ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
