package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// PricingConfig holds the rate-of-last-resort tables and pricing defaults that
// apply when no stored rule matches. Versioned in a config file so operators can
// adjust them without a deploy.
type PricingConfig struct {
	// TransportPerKm maps a vehicle type to its fallback SAR/km rate.
	TransportPerKm map[string]float64 `mapstructure:"transportPerKm"`
	// HotelPerNight is the fallback nightly rate when no hotel rule matches.
	HotelPerNight float64 `mapstructure:"hotelPerNight"`
	// FlightBase is the fallback flat fare when no flight rule matches.
	FlightBase float64 `mapstructure:"flightBase"`

	AgentDefaults AgentDefaults  `mapstructure:"agentDefaults"`
	Demand        DemandFactors  `mapstructure:"demand"`
	Occupancy     map[string]float64 `mapstructure:"occupancy"`
}

// AgentDefaults applies when an agent has no active pricing rule.
type AgentDefaults struct {
	MarkupPct      float64 `mapstructure:"markupPct"`
	MinMargin      float64 `mapstructure:"minMargin"`
	MaxDiscountPct float64 `mapstructure:"maxDiscountPct"`
}

// DemandFactors drive the demand-aware suggestion variant.
type DemandFactors struct {
	HighThreshold int     `mapstructure:"highThreshold"`
	LowThreshold  int     `mapstructure:"lowThreshold"`
	HighFactor    float64 `mapstructure:"highFactor"`
	LowFactor     float64 `mapstructure:"lowFactor"`
	MidFactor     float64 `mapstructure:"midFactor"`
}

func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		TransportPerKm: map[string]float64{
			"sedan":   2.5,
			"hiace":   3.0,
			"coaster": 3.5,
			"gmc":     4.0,
		},
		HotelPerNight: 150,
		FlightBase:    450,
		AgentDefaults: AgentDefaults{
			MarkupPct:      0,
			MinMargin:      0,
			MaxDiscountPct: 20,
		},
		Demand: DemandFactors{
			HighThreshold: 7,
			LowThreshold:  4,
			HighFactor:    1.08,
			LowFactor:     0.98,
			MidFactor:     1.03,
		},
		Occupancy: map[string]float64{
			"high":   1.3,
			"medium": 1.25,
			"low":    1.2,
		},
	}
}

// PricingConfigHolder serves the current pricing config and swaps it atomically
// on file change.
type PricingConfigHolder struct {
	current atomic.Value // holds PricingConfig
}

func NewPricingConfigHolder() (*PricingConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("pricing")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/arfeen/config") // Volume-mounted config
	v.AddConfigPath("/etc/arfeen")            // System config
	v.AddConfigPath(".")                      // Current directory (dev mode)

	v.SetEnvPrefix("ARFEEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// if config file not found, use defaults
		defaults := DefaultPricingConfig()
		v.SetDefault("pricing.transportPerKm", defaults.TransportPerKm)
		v.SetDefault("pricing.hotelPerNight", defaults.HotelPerNight)
		v.SetDefault("pricing.flightBase", defaults.FlightBase)
		v.SetDefault("pricing.agentDefaults", defaults.AgentDefaults)
		v.SetDefault("pricing.demand", defaults.Demand)
		v.SetDefault("pricing.occupancy", defaults.Occupancy)
	}

	var cfg PricingConfig
	if err := v.UnmarshalKey("pricing", &cfg); err != nil {
		return nil, err
	}
	if err := validatePricingConfig(cfg); err != nil {
		return nil, err
	}

	holder := &PricingConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated PricingConfig
		if err := v.UnmarshalKey("pricing", &updated); err != nil {
			log.Printf("[pricing-config] reload failed: %v", err)
			return
		}
		if err := validatePricingConfig(updated); err != nil {
			log.Printf("[pricing-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[pricing-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *PricingConfigHolder) Get() PricingConfig {
	return h.current.Load().(PricingConfig)
}

// NewStaticPricingHolder wraps a fixed config, for tests.
func NewStaticPricingHolder(cfg PricingConfig) *PricingConfigHolder {
	holder := &PricingConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func validatePricingConfig(cfg PricingConfig) error {
	if len(cfg.TransportPerKm) == 0 {
		return errors.New("pricing.transportPerKm cannot be empty")
	}
	for vehicleType, rate := range cfg.TransportPerKm {
		if strings.TrimSpace(vehicleType) == "" || rate <= 0 {
			return errors.New("pricing.transportPerKm entries must have a type and positive rate")
		}
	}
	if cfg.HotelPerNight <= 0 || cfg.FlightBase <= 0 {
		return errors.New("pricing fallback rates must be positive")
	}
	if cfg.AgentDefaults.MaxDiscountPct < 0 || cfg.AgentDefaults.MaxDiscountPct > 100 {
		return errors.New("pricing.agentDefaults.maxDiscountPct must be within 0..100")
	}
	if len(cfg.Occupancy) == 0 {
		return errors.New("pricing.occupancy cannot be empty")
	}
	return nil
}
