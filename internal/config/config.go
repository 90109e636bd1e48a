// Package config loads tempo settings from defaults, an optional
// .tempo.yaml file and TEMPO_* environment variables, in increasing order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/tempo/internal/calendar"
	"github.com/alexanderramin/tempo/internal/stats"
	"github.com/spf13/viper"
)

const (
	KeyDB          = "db"
	KeyTimezone    = "timezone"
	KeyWeekStart   = "week_start"
	KeyRecentLimit = "recent_limit"
	KeyLogUseCases = "log_use_cases"
)

// EnvConfigPath names a directory searched for .tempo.yaml before the
// defaults.
const EnvConfigPath = "TEMPO_CONFIG_PATH"

// Config is the resolved process configuration.
type Config struct {
	DBPath      string
	Location    *time.Location
	WeekStart   time.Weekday
	RecentLimit int
	LogUseCases bool
}

// Calendar builds the calendar the rest of the process buckets days with.
func (c Config) Calendar() *calendar.Calendar {
	return calendar.New(c.Location, c.WeekStart)
}

// Load reads configuration with a fresh viper instance.
func Load() (Config, error) {
	return LoadFrom(viper.New())
}

// LoadFrom reads configuration through v. Values already set on v win over
// the file and the environment.
func LoadFrom(v *viper.Viper) (Config, error) {
	v.SetDefault(KeyDB, "~/.tempo/tempo.db")
	v.SetDefault(KeyTimezone, "Local")
	v.SetDefault(KeyWeekStart, "monday")
	v.SetDefault(KeyRecentLimit, stats.DefaultRecentLimit)
	v.SetDefault(KeyLogUseCases, false)

	v.SetConfigName(".tempo") // .yaml is implicit
	v.SetEnvPrefix("TEMPO")
	v.AutomaticEnv()

	if override := os.Getenv(EnvConfigPath); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	v.AddConfigPath("$HOME/.tempo")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	dbPath, err := expandHome(v.GetString(KeyDB))
	if err != nil {
		return Config{}, err
	}

	loc, err := loadLocation(v.GetString(KeyTimezone))
	if err != nil {
		return Config{}, err
	}

	weekStart, err := calendar.ParseWeekday(v.GetString(KeyWeekStart))
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", KeyWeekStart, err)
	}

	limit := v.GetInt(KeyRecentLimit)
	if limit <= 0 {
		return Config{}, fmt.Errorf("config %s: must be positive, got %d", KeyRecentLimit, limit)
	}

	return Config{
		DBPath:      dbPath,
		Location:    loc,
		WeekStart:   weekStart,
		RecentLimit: limit,
		LogUseCases: v.GetBool(KeyLogUseCases),
	}, nil
}

func loadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", KeyTimezone, err)
	}
	return loc, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
