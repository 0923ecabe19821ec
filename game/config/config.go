package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

var ErrInvalidConfig = errors.New("invalid configuration")

var validate = validator.New()

// Config holds the process settings read from the environment
type Config struct {
	LevelsDir  string        `env:"SOKOBAN_LEVELS_DIR"  envDefault:"levels"      validate:"required"`
	MaxLevel   int           `env:"SOKOBAN_MAX_LEVEL"   envDefault:"20"          validate:"min=1"`
	StartLevel int           `env:"SOKOBAN_START_LEVEL" envDefault:"1"           validate:"min=1,ltefield=MaxLevel"`
	SaveFile   string        `env:"SOKOBAN_SAVE_FILE"   envDefault:"save.sav"    validate:"required"`
	RecordsDB  string        `env:"SOKOBAN_RECORDS_DB"  envDefault:"records.db"`
	LogFile    string        `env:"SOKOBAN_LOG_FILE"    envDefault:"sokoban.log"`
	LogLevel   string        `env:"SOKOBAN_LOG_LEVEL"   envDefault:"info"        validate:"oneof=debug info warn error"`
	Tick       time.Duration `env:"SOKOBAN_TICK"        envDefault:"50ms"        validate:"min=1ms"`
}

// Load parses the environment into a Config and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints. Call it again after applying overrides.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	var details strings.Builder
	for _, fe := range verrs {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		switch fe.Tag() {
		case "required":
			details.WriteString(fmt.Sprintf("%s is required", fe.Field()))
		case "ltefield":
			details.WriteString(fmt.Sprintf("%s must not exceed %s", fe.Field(), fe.Param()))
		case "oneof":
			details.WriteString(fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()))
		case "min":
			details.WriteString(fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		default:
			details.WriteString(fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, details.String())
}
