package service

import (
	"context"
	"testing"

	"github.com/arfeen-portal/arfeen-portal-sub002/internal/config"
	"github.com/arfeen-portal/arfeen-portal-sub002/internal/rate/domain"
	"github.com/arfeen-portal/arfeen-portal-sub002/internal/rate/repository"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&domain.TransportRate{},
		&domain.HotelRate{},
		&domain.FlightRate{},
	))

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

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestTransportQuote_FallbackPerKmTable(t *testing.T) {
	svc, _, _ := newTestService(t)

	quote, err := svc.TransportQuote(context.Background(), domain.TransportCriteria{
		VehicleType:        "gmc",
		DistanceKm:         50,
		AgentCommissionPct: 10,
		ProfitPct:          15,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.SourceFallback, quote.Source)
	assert.Equal(t, 4.0, quote.UnitRate)
	assert.Equal(t, 200.00, quote.BaseFare)
	assert.Equal(t, 20.00, quote.AgentCommission)
	assert.Equal(t, 230.00, quote.TotalPrice)
	assert.Equal(t, "SAR", quote.Currency)
}

func TestTransportQuote_RuleWinsOverFallback(t *testing.T) {
	svc, db, node := newTestService(t)

	require.NoError(t, db.Create(&domain.TransportRate{
		ID:                 node.Generate(),
		Name:               "Jeddah airport sedan",
		Priority:           10,
		Active:             true,
		VehicleType:        "sedan",
		MinKm:              0,
		MaxKm:              100,
		PerKmRate:          dec("3.20"),
		AgentCommissionPct: 5,
		ProfitPct:          10,
	}).Error)

	quote, err := svc.TransportQuote(context.Background(), domain.TransportCriteria{
		VehicleType: "sedan",
		DistanceKm:  40,
		// fallback-only percentages must be ignored when a rule matches
		AgentCommissionPct: 50,
		ProfitPct:          50,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.SourceRule, quote.Source)
	assert.Equal(t, "Jeddah airport sedan", quote.RuleName)
	assert.Equal(t, 128.00, quote.BaseFare)
	assert.Equal(t, 5.0, quote.AgentCommissionPct)
	assert.Equal(t, 6.40, quote.AgentCommission)
	assert.Equal(t, 140.80, quote.TotalPrice)
}

func TestTransportQuote_PriorityOrderFirstMatchWins(t *testing.T) {
	svc, db, node := newTestService(t)

	require.NoError(t, db.Create(&domain.TransportRate{
		ID:          node.Generate(),
		Name:        "general hiace",
		Priority:    100,
		Active:      true,
		VehicleType: "hiace",
		PerKmRate:   dec("3.00"),
	}).Error)
	require.NoError(t, db.Create(&domain.TransportRate{
		ID:          node.Generate(),
		Name:        "promo hiace",
		Priority:    5,
		Active:      true,
		VehicleType: "hiace",
		PerKmRate:   dec("2.50"),
	}).Error)

	quote, err := svc.TransportQuote(context.Background(), domain.TransportCriteria{
		VehicleType: "hiace",
		DistanceKm:  10,
	})
	require.NoError(t, err)

	assert.Equal(t, "promo hiace", quote.RuleName)
	assert.Equal(t, 25.00, quote.BaseFare)
}

func TestTransportQuote_InactiveRuleSkipped(t *testing.T) {
	svc, db, node := newTestService(t)

	require.NoError(t, db.Create(&domain.TransportRate{
		ID:          node.Generate(),
		Name:        "retired coaster",
		Priority:    1,
		Active:      false,
		VehicleType: "coaster",
		PerKmRate:   dec("1.00"),
	}).Error)

	quote, err := svc.TransportQuote(context.Background(), domain.TransportCriteria{
		VehicleType: "coaster",
		DistanceKm:  10,
	})
	require.NoError(t, err)

	// falls through to the static table at 3.5/km
	assert.Equal(t, domain.SourceFallback, quote.Source)
	assert.Equal(t, 35.00, quote.BaseFare)
}

func TestTransportRate_InactiveFlagRoundTrips(t *testing.T) {
	_, db, node := newTestService(t)

	id := node.Generate()
	require.NoError(t, db.Create(&domain.TransportRate{
		ID:          id,
		Name:        "retired sedan",
		Priority:    1,
		Active:      false,
		VehicleType: "sedan",
		PerKmRate:   dec("1.00"),
	}).Error)

	var got domain.TransportRate
	require.NoError(t, db.First(&got, "id = ?", id).Error)
	assert.False(t, got.Active)
}

func TestTransportQuote_RangeBoundsInclusive(t *testing.T) {
	svc, db, node := newTestService(t)

	require.NoError(t, db.Create(&domain.TransportRate{
		ID:          node.Generate(),
		Name:        "mid range sedan",
		Priority:    1,
		Active:      true,
		VehicleType: "sedan",
		MinKm:       20,
		MaxKm:       80,
		PerKmRate:   dec("2.00"),
	}).Error)

	for _, km := range []float64{20, 80} {
		quote, err := svc.TransportQuote(context.Background(), domain.TransportCriteria{
			VehicleType: "sedan",
			DistanceKm:  km,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.SourceRule, quote.Source, "distance %v should hit the rule", km)
	}

	quote, err := svc.TransportQuote(context.Background(), domain.TransportCriteria{
		VehicleType: "sedan",
		DistanceKm:  80.5,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SourceFallback, quote.Source)
}

func TestTransportQuote_FlatBasePriceWinsOverPerKm(t *testing.T) {
	svc, db, node := newTestService(t)

	require.NoError(t, db.Create(&domain.TransportRate{
		ID:          node.Generate(),
		Name:        "fixed makkah transfer",
		Priority:    1,
		Active:      true,
		VehicleType: "gmc",
		BasePrice:   dec("300.00"),
		PerKmRate:   dec("4.00"),
	}).Error)

	quote, err := svc.TransportQuote(context.Background(), domain.TransportCriteria{
		VehicleType: "gmc",
		DistanceKm:  10,
	})
	require.NoError(t, err)
	assert.Equal(t, 300.00, quote.BaseFare)
}

func TestTransportQuote_UnknownVehicleNoFallback(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.TransportQuote(context.Background(), domain.TransportCriteria{
		VehicleType: "limousine",
		DistanceKm:  10,
	})
	assert.ErrorIs(t, err, domain.ErrNoFallbackRate)
}

func TestTransportQuote_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.TransportQuote(context.Background(), domain.TransportCriteria{DistanceKm: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidVehicleType)

	_, err = svc.TransportQuote(context.Background(), domain.TransportCriteria{VehicleType: "sedan"})
	assert.ErrorIs(t, err, domain.ErrInvalidDistance)
}

func TestHotelQuote_PerNightRule(t *testing.T) {
	svc, db, node := newTestService(t)

	require.NoError(t, db.Create(&domain.HotelRate{
		ID:                 node.Generate(),
		Name:               "makkah 5-star double",
		Priority:           1,
		Active:             true,
		City:               "Makkah",
		StarRating:         5,
		RoomType:           "double",
		PerNightRate:       dec("420.00"),
		AgentCommissionPct: 8,
		ProfitPct:          12,
	}).Error)

	quote, err := svc.HotelQuote(context.Background(), domain.HotelCriteria{
		City:       "makkah",
		StarRating: 5,
		RoomType:   "Double",
		Nights:     3,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.SourceRule, quote.Source)
	assert.Equal(t, 1260.00, quote.BaseFare)
	assert.Equal(t, 100.80, quote.AgentCommission)
	assert.Equal(t, 1411.20, quote.TotalPrice)
}

func TestHotelQuote_WildcardStarAndRoom(t *testing.T) {
	svc, db, node := newTestService(t)

	require.NoError(t, db.Create(&domain.HotelRate{
		ID:           node.Generate(),
		Name:         "madinah any room",
		Priority:     1,
		Active:       true,
		City:         "Madinah",
		PerNightRate: dec("200.00"),
	}).Error)

	quote, err := svc.HotelQuote(context.Background(), domain.HotelCriteria{
		City:       "Madinah",
		StarRating: 3,
		RoomType:   "quad",
		Nights:     2,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SourceRule, quote.Source)
	assert.Equal(t, 400.00, quote.BaseFare)
}

func TestHotelQuote_FallbackDefaultRate(t *testing.T) {
	svc, _, _ := newTestService(t)

	quote, err := svc.HotelQuote(context.Background(), domain.HotelCriteria{
		City:   "Taif",
		Nights: 4,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.SourceFallback, quote.Source)
	assert.Equal(t, 150.0, quote.UnitRate)
	assert.Equal(t, 600.00, quote.BaseFare)
}

func TestHotelQuote_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.HotelQuote(context.Background(), domain.HotelCriteria{Nights: 2})
	assert.ErrorIs(t, err, domain.ErrInvalidCity)

	_, err = svc.HotelQuote(context.Background(), domain.HotelCriteria{City: "Makkah"})
	assert.ErrorIs(t, err, domain.ErrInvalidNights)
}

func TestFlightQuote_RuleAndFallback(t *testing.T) {
	svc, db, node := newTestService(t)

	fare := decimal.RequireFromString("850.00")
	require.NoError(t, db.Create(&domain.FlightRate{
		ID:              node.Generate(),
		Name:            "JED-CAI economy",
		Priority:        1,
		Active:          true,
		OriginCode:      "JED",
		DestinationCode: "CAI",
		CabinClass:      "economy",
		BasePrice:       fare,
		ProfitPct:       10,
	}).Error)

	quote, err := svc.FlightQuote(context.Background(), domain.FlightCriteria{
		OriginCode:      "jed",
		DestinationCode: "cai",
		CabinClass:      "economy",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SourceRule, quote.Source)
	assert.Equal(t, 850.00, quote.BaseFare)
	assert.Equal(t, 935.00, quote.TotalPrice)

	// unknown route falls back to the configured default fare
	quote, err = svc.FlightQuote(context.Background(), domain.FlightCriteria{
		OriginCode:      "JED",
		DestinationCode: "RUH",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SourceFallback, quote.Source)
	assert.Equal(t, 450.00, quote.BaseFare)
}

func TestFlightQuote_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.FlightQuote(context.Background(), domain.FlightCriteria{OriginCode: "JED"})
	assert.ErrorIs(t, err, domain.ErrInvalidRoute)
}
