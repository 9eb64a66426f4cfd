package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

var ErrInvalidMarks = errors.New("each mark must be a single character")

type Config struct {
	LogLevel  string   `yaml:"log-level" env:"TICTACTOE_LOG_LEVEL" env-default:"info"`
	Marks     []string `yaml:"marks" env:"TICTACTOE_MARKS" env-default:"x,o"`
	NoColor   bool     `yaml:"no-color" env:"TICTACTOE_NO_COLOR" env-default:"false"`
	SkipIntro bool     `yaml:"skip-intro" env:"TICTACTOE_SKIP_INTRO" env-default:"false"`
	Redis     Redis    `yaml:"redis"`
}

type Redis struct {
	Enabled bool          `yaml:"enabled" env:"TICTACTOE_REDIS_ENABLED" env-default:"false"`
	Host    string        `yaml:"host" env:"TICTACTOE_REDIS_HOST" env-default:"localhost"`
	Port    string        `yaml:"port" env:"TICTACTOE_REDIS_PORT" env-default:"6379"`
	KeyTTL  time.Duration `yaml:"key-ttl" env:"TICTACTOE_REDIS_KEY_TTL" env-default:"1h"`
}

// MustLoad - load configuration, panics on failure.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config: %w", err))
	}

	return config
}

// Load reads the YAML file at path with environment overrides. A missing
// file is not an error; environment and defaults are used instead.
func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); err == nil {
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	} else {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}
	}

	if _, err := config.GameMarks(); err != nil {
		return nil, err
	}

	return config, nil
}

// GameMarks converts the configured marks into board marks. Count and
// uniqueness are checked by the engine.
func (that *Config) GameMarks() ([]entity.Mark, error) {
	marks := make([]entity.Mark, 0, len(that.Marks))
	for _, raw := range that.Marks {
		if !utf8.ValidString(raw) || utf8.RuneCountInString(raw) != 1 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidMarks, raw)
		}

		r, _ := utf8.DecodeRuneInString(raw)
		marks = append(marks, entity.Mark(r))
	}

	return marks, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
