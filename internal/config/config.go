package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. GFITWEIGHT_CSV.
const EnvPrefix = "GFITWEIGHT"

// Settings holds runtime options that are not credentials.
type Settings struct {
	SecretsPath  string
	CSVPath      string
	AuthCode     string
	UserID       string
	StrictCreate bool
	Location     *time.Location
}

// SetDefaults registers env bindings and defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("secrets", DefaultSecretsPath())
	v.SetDefault("csv", "weights.csv")
	v.SetDefault("code", "")
	v.SetDefault("user", "me")
	v.SetDefault("strict_create", false)
	v.SetDefault("timezone", "Local")
}

// LoadSettings resolves Settings from v after flags have been bound.
func LoadSettings(v *viper.Viper) (*Settings, error) {
	loc, err := parseLocation(v.GetString("timezone"))
	if err != nil {
		return nil, err
	}

	user := strings.TrimSpace(v.GetString("user"))
	if user == "" {
		user = "me"
	}

	return &Settings{
		SecretsPath:  v.GetString("secrets"),
		CSVPath:      v.GetString("csv"),
		AuthCode:     strings.TrimSpace(v.GetString("code")),
		UserID:       user,
		StrictCreate: v.GetBool("strict_create"),
		Location:     loc,
	}, nil
}

// parseLocation loads a time zone by name, treating "" and "Local" as the system zone
func parseLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}
