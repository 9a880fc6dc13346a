package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds typed configuration for the cosplans CLI.
type Config struct {
	DatabasePath string
	DefaultTeam  string
	User         string
	// StreakGraceDays is how many calendar days back the streak tracker
	// looks for a day with completions before resetting the streak.
	// 1 means only yesterday counts (a zero-completion yesterday breaks
	// the streak immediately).
	StreakGraceDays int
	MaxSuggestions  int
	WebhookURL      string
}

// Load reads configuration from ~/.cosplans/config.yaml and COSPLANS_*
// environment variables, falling back to defaults when absent.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	home, err := os.UserHomeDir()
	if err == nil {
		v.AddConfigPath(filepath.Join(home, ".cosplans"))
	}

	v.SetEnvPrefix("cosplans")
	v.AutomaticEnv()

	setDefaults(v, home)

	// A missing config file is fine; only real read errors are reported.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	return Config{
		DatabasePath:    v.GetString("database_path"),
		DefaultTeam:     v.GetString("default_team"),
		User:            v.GetString("user"),
		StreakGraceDays: v.GetInt("streak_grace_days"),
		MaxSuggestions:  v.GetInt("max_suggestions"),
		WebhookURL:      v.GetString("webhook_url"),
	}, nil
}

func setDefaults(v *viper.Viper, home string) {
	dbPath := "cosplans.db"
	if home != "" {
		dbPath = filepath.Join(home, ".cosplans", "cosplans.db")
	}
	v.SetDefault("database_path", dbPath)
	v.SetDefault("default_team", "personal")
	v.SetDefault("user", "me")
	v.SetDefault("streak_grace_days", 1)
	v.SetDefault("max_suggestions", 5)
	v.SetDefault("webhook_url", "")
}
