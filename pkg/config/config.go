package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/stitts-dev/catdraft/internal/models"
	"github.com/stitts-dev/catdraft/internal/optimizer"
	"github.com/stitts-dev/catdraft/internal/scoring"
	"github.com/stitts-dev/catdraft/internal/standings"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	// Server
	Port     string `mapstructure:"PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Database
	DatabaseDriver string `mapstructure:"DATABASE_DRIVER"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`

	// Redis
	RedisURL string        `mapstructure:"REDIS_URL"`
	CacheTTL time.Duration `mapstructure:"CACHE_TTL"`

	// CORS
	CorsOrigins []string `mapstructure:"CORS_ORIGINS"`

	// Rate limiting
	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`

	// Scoring
	ScoringWorkers int `mapstructure:"SCORING_WORKERS"`

	// League
	NumTeams     int    `mapstructure:"NUM_TEAMS"`
	PlayoffSpots int    `mapstructure:"PLAYOFF_SPOTS"`
	NumRounds    int    `mapstructure:"NUM_ROUNDS"`
	RosterSlots  string `mapstructure:"ROSTER_SLOTS"`

	// Tuning
	BenchHitterWeight    float64 `mapstructure:"BENCH_HITTER_WEIGHT"`
	BenchPitcherWeight   float64 `mapstructure:"BENCH_PITCHER_WEIGHT"`
	AvailabilityDiscount float64 `mapstructure:"AVAILABILITY_DISCOUNT"`
	ADPSigma             float64 `mapstructure:"ADP_SIGMA"`

	// Simulation
	MaxSimulations    int `mapstructure:"MAX_SIMULATIONS"`
	SimulationWorkers int `mapstructure:"SIMULATION_WORKERS"`
}

func LoadConfig() (*Config, error) {
	return load(viper.New(), ".", "..")
}

// LoadConfigWithFlags binds command-line flags to config keys, so a flag set
// on the command line wins over the environment and .env. bindings maps a
// config key to a flag name.
func LoadConfigWithFlags(flags *pflag.FlagSet, bindings map[string]string) (*Config, error) {
	v := viper.New()
	if err := bindFlags(v, flags, bindings); err != nil {
		return nil, err
	}
	return load(v, ".", "..")
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet, bindings map[string]string) error {
	for key, name := range bindings {
		flag := flags.Lookup(name)
		if flag == nil {
			return fmt.Errorf("%w: no flag %q for %s", ErrInvalidConfig, name, key)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", name, err)
		}
	}
	return nil
}

func load(v *viper.Viper, paths ...string) (*Config, error) {
	v.SetConfigName(".env")
	v.SetConfigType("env")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	weights := scoring.DefaultWeights()
	bench := standings.DefaultBenchWeights()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_URL", "catdraft.db")
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("CACHE_TTL", "10m")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 20)
	v.SetDefault("RATE_LIMIT_BURST", 40)
	v.SetDefault("SCORING_WORKERS", 0) // 0 = one per CPU
	v.SetDefault("NUM_TEAMS", 10)
	v.SetDefault("PLAYOFF_SPOTS", 6)
	v.SetDefault("NUM_ROUNDS", 25)
	v.SetDefault("ROSTER_SLOTS", "C:1,1B:1,2B:1,3B:1,SS:1,OF:3,UTIL:2,SP:3,RP:2,P:2,BE:8")
	v.SetDefault("BENCH_HITTER_WEIGHT", bench.Hitter)
	v.SetDefault("BENCH_PITCHER_WEIGHT", bench.Pitcher)
	v.SetDefault("AVAILABILITY_DISCOUNT", weights.AvailabilityDiscount)
	v.SetDefault("ADP_SIGMA", weights.ADPSigma)
	v.SetDefault("MAX_SIMULATIONS", 1000)
	v.SetDefault("SIMULATION_WORKERS", 4)

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Parse CORS origins from comma-separated string
	config.CorsOrigins = nil
	if corsStr := v.GetString("CORS_ORIGINS"); corsStr != "" {
		for _, origin := range strings.Split(corsStr, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				config.CorsOrigins = append(config.CorsOrigins, origin)
			}
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate rejects league and tuning values the engine cannot run with
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("%w: DATABASE_DRIVER must be sqlite or postgres, got %q", ErrInvalidConfig, c.DatabaseDriver)
	}
	if c.NumTeams <= 0 {
		return fmt.Errorf("%w: NUM_TEAMS must be positive", ErrInvalidConfig)
	}
	if c.PlayoffSpots < 0 || c.PlayoffSpots > c.NumTeams {
		return fmt.Errorf("%w: PLAYOFF_SPOTS must be between 0 and NUM_TEAMS", ErrInvalidConfig)
	}
	if c.NumRounds <= 0 {
		return fmt.Errorf("%w: NUM_ROUNDS must be positive", ErrInvalidConfig)
	}
	if _, err := optimizer.ParseRosterSlots(c.RosterSlots); err != nil {
		return fmt.Errorf("%w: ROSTER_SLOTS: %v", ErrInvalidConfig, err)
	}
	if c.BenchHitterWeight < 0 || c.BenchHitterWeight > 1 || c.BenchPitcherWeight < 0 || c.BenchPitcherWeight > 1 {
		return fmt.Errorf("%w: bench weights must be within [0, 1]", ErrInvalidConfig)
	}
	if c.AvailabilityDiscount < 0 || c.AvailabilityDiscount > 1 {
		return fmt.Errorf("%w: AVAILABILITY_DISCOUNT must be within [0, 1]", ErrInvalidConfig)
	}
	if c.ADPSigma < 0 {
		return fmt.Errorf("%w: ADP_SIGMA must not be negative", ErrInvalidConfig)
	}
	if c.MaxSimulations <= 0 {
		return fmt.Errorf("%w: MAX_SIMULATIONS must be positive", ErrInvalidConfig)
	}
	return nil
}

// League is the default league context for requests that do not carry one
func (c *Config) League() (models.LeagueConfig, error) {
	slots, err := optimizer.ParseRosterSlots(c.RosterSlots)
	if err != nil {
		return models.LeagueConfig{}, err
	}
	specs := make([]models.RosterSlotSpec, len(slots))
	for i, s := range slots {
		specs[i] = models.RosterSlotSpec{Name: string(s.Name), Capacity: s.Capacity}
	}
	return models.LeagueConfig{
		NumTeams:     c.NumTeams,
		PlayoffSpots: c.PlayoffSpots,
		Rounds:       c.NumRounds,
		RosterSlots:  specs,
	}, nil
}

func (c *Config) Weights() scoring.Weights {
	w := scoring.DefaultWeights()
	w.DraftRounds = c.NumRounds
	w.AvailabilityDiscount = c.AvailabilityDiscount
	w.ADPSigma = c.ADPSigma
	return w
}

func (c *Config) BenchWeights() standings.BenchWeights {
	return standings.BenchWeights{Hitter: c.BenchHitterWeight, Pitcher: c.BenchPitcherWeight}
}
