// Package config loads bot configuration from the environment.
// Everything the bot needs to run is an environment variable; there is no
// config file and no persisted state of our own.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the full runtime configuration.
type Config struct {
	Slack    SlackConfig
	Airtable AirtableConfig
	Backend  BackendConfig
	Lunch    LunchConfig

	// HTTP listener for Slack's interaction and command callbacks
	BindAddr string `env:"OCBOT_BIND_ADDR" envDefault:":8080"`

	// debug | info | warn | error
	LogLevel string `env:"OCBOT_LOG_LEVEL" envDefault:"info"`

	// Optional path to a YAML file overriding the built-in help-menu resources
	ResourcesFile string `env:"OCBOT_RESOURCES_FILE"`
}

// SlackConfig carries platform credentials and the well-known channel IDs
// handlers post into.
type SlackConfig struct {
	BotToken      string `env:"SLACK_BOT_TOKEN,notEmpty"`
	SigningSecret string `env:"SLACK_SIGNING_SECRET,notEmpty"`

	CommunityChannel  string `env:"SLACK_COMMUNITY_CHANNEL,notEmpty"`
	TicketChannel     string `env:"SLACK_TICKET_CHANNEL,notEmpty"`
	MentorsChannel    string `env:"SLACK_MENTORS_CHANNEL,notEmpty"`
	ModeratorsChannel string `env:"SLACK_MODERATORS_CHANNEL,notEmpty"`
}

// AirtableConfig addresses the mentorship record base.
type AirtableConfig struct {
	APIKey  string `env:"AIRTABLE_API_KEY,notEmpty"`
	BaseID  string `env:"AIRTABLE_BASE_ID,notEmpty"`
	BaseURL string `env:"AIRTABLE_BASE_URL" envDefault:"https://api.airtable.com/v0"`
}

// BackendConfig addresses the moderation backend used by slash commands.
type BackendConfig struct {
	Host  string `env:"BACKEND_HOST" envDefault:"localhost"`
	Port  int    `env:"BACKEND_PORT" envDefault:"8000"`
	Token string `env:"BACKEND_TOKEN"`
}

// LunchConfig addresses the lunch-roulette proxy queried by /lunch.
type LunchConfig struct {
	ProxyURL string `env:"LUNCH_PROXY_URL" envDefault:"https://wheelof.com/lunch/yelpProxyJSON.php"`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
