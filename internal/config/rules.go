package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Rules carries every tunable constant of the company delivery rules.
// The defaults reproduce the documented rule set; a rules file may
// override individual values for what-if runs.
type Rules struct {
	TrafficMultiplierLow    float64 `mapstructure:"traffic_multiplier_low"`
	TrafficMultiplierMedium float64 `mapstructure:"traffic_multiplier_medium"`
	TrafficMultiplierHigh   float64 `mapstructure:"traffic_multiplier_high"`

	// Weekly hours after which a driver starts the run fatigued.
	FatigueThresholdHours float64 `mapstructure:"fatigue_threshold_hours"`
	// In-run hours after which fatigue sets in for the rest of the run.
	FatigueTriggerHours float64 `mapstructure:"fatigue_trigger_hours"`
	// Delivery-time multiplier applied while fatigued.
	FatigueSlowdown float64 `mapstructure:"fatigue_slowdown"`

	// Grace window in minutes on top of the base route time. The
	// window is measured against the base time, never the adjusted
	// time.
	GraceMinutes  float64 `mapstructure:"grace_minutes"`
	LatePenaltyRs float64 `mapstructure:"late_penalty_rs"`

	HighValueThresholdRs float64 `mapstructure:"high_value_threshold_rs"`
	HighValueBonusRate   float64 `mapstructure:"high_value_bonus_rate"`

	FuelCostPerKm             float64 `mapstructure:"fuel_cost_per_km"`
	HighTrafficSurchargePerKm float64 `mapstructure:"high_traffic_surcharge_per_km"`
}

// DefaultRules returns the standard company rule set.
func DefaultRules() *Rules {
	return &Rules{
		TrafficMultiplierLow:      1.0,
		TrafficMultiplierMedium:   1.3,
		TrafficMultiplierHigh:     1.7,
		FatigueThresholdHours:     56, // 8h/day averaged over the trailing week
		FatigueTriggerHours:       8,
		FatigueSlowdown:           1.3,
		GraceMinutes:              10,
		LatePenaltyRs:             50,
		HighValueThresholdRs:      1000,
		HighValueBonusRate:        0.1,
		FuelCostPerKm:             5,
		HighTrafficSurchargePerKm: 2,
	}
}

// LoadRules reads rule overrides from a config file using viper.
// An empty path yields the defaults unchanged.
func LoadRules(path string) (*Rules, error) {
	v := viper.New()

	defaults := DefaultRules()
	v.SetDefault("traffic_multiplier_low", defaults.TrafficMultiplierLow)
	v.SetDefault("traffic_multiplier_medium", defaults.TrafficMultiplierMedium)
	v.SetDefault("traffic_multiplier_high", defaults.TrafficMultiplierHigh)
	v.SetDefault("fatigue_threshold_hours", defaults.FatigueThresholdHours)
	v.SetDefault("fatigue_trigger_hours", defaults.FatigueTriggerHours)
	v.SetDefault("fatigue_slowdown", defaults.FatigueSlowdown)
	v.SetDefault("grace_minutes", defaults.GraceMinutes)
	v.SetDefault("late_penalty_rs", defaults.LatePenaltyRs)
	v.SetDefault("high_value_threshold_rs", defaults.HighValueThresholdRs)
	v.SetDefault("high_value_bonus_rate", defaults.HighValueBonusRate)
	v.SetDefault("fuel_cost_per_km", defaults.FuelCostPerKm)
	v.SetDefault("high_traffic_surcharge_per_km", defaults.HighTrafficSurchargePerKm)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("load rules: read %q: %w", path, err)
		}
	}

	var rules Rules
	if err := v.Unmarshal(&rules); err != nil {
		return nil, fmt.Errorf("load rules: decode: %w", err)
	}

	return &rules, nil
}
