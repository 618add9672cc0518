package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/lodestarhq/lodestar/internal/schedule"
)

// Config holds all runtime configuration for a lodestar session.
// Values are populated from .lodestar.yaml, LODESTAR_* env vars, and CLI
// flags.
type Config struct {
	DBPath              string  `mapstructure:"db_path"`
	TelemetryPath       string  `mapstructure:"telemetry_path"`
	WorkingHoursStart   string  `mapstructure:"working_hours_start"`
	WorkingHoursEnd     string  `mapstructure:"working_hours_end"`
	HoursPerDay         float64 `mapstructure:"hours_per_day"`
	WorkingDays         []int   `mapstructure:"working_days"`
	RespectDependencies bool    `mapstructure:"respect_dependencies"`
	RespectWorkingHours bool    `mapstructure:"respect_working_hours"`
	Verbose             bool    `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags. Every field is
// defaulted here so downstream code never sees a partially configured
// value.
func Load() Config {
	viper.SetDefault("db_path", ".lodestar.db")
	viper.SetDefault("telemetry_path", "")
	viper.SetDefault("working_hours_start", "09:00")
	viper.SetDefault("working_hours_end", "17:00")
	viper.SetDefault("hours_per_day", 8)
	viper.SetDefault("working_days", []int{1, 2, 3, 4, 5})
	viper.SetDefault("respect_dependencies", true)
	viper.SetDefault("respect_working_hours", true)
	viper.SetDefault("verbose", false)

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}

// ScheduleSettings converts the config into scheduler settings.
func (c Config) ScheduleSettings() schedule.Settings {
	s := schedule.DefaultSettings()
	if c.WorkingHoursStart != "" {
		s.WorkingHoursStart = c.WorkingHoursStart
	}
	if c.WorkingHoursEnd != "" {
		s.WorkingHoursEnd = c.WorkingHoursEnd
	}
	if c.HoursPerDay > 0 {
		s.HoursPerDay = c.HoursPerDay
	}
	if len(c.WorkingDays) > 0 {
		days := make([]time.Weekday, 0, len(c.WorkingDays))
		for _, d := range c.WorkingDays {
			days = append(days, time.Weekday(d))
		}
		s.WorkingDays = days
	}
	s.RespectDependencies = c.RespectDependencies
	s.RespectWorkingHours = c.RespectWorkingHours
	return s
}
