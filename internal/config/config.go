package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
)

type Config struct {
	Sleeper     Sleeper
	HTTP        HTTP
	TelegramBot TelegramBot
	Schedule    Schedule
}

type Sleeper struct {
	LeagueID string        `envconfig:"SLEEPER_LEAGUE_ID" required:"true"`
	Week     int           `envconfig:"WEEK" default:"0"`
	BaseURL  string        `envconfig:"SLEEPER_BASE_URL" default:"https://api.sleeper.app/v1"`
	Timeout  time.Duration `envconfig:"SLEEPER_TIMEOUT" default:"30s"`
}

type HTTP struct {
	Addr           string `envconfig:"HTTP_ADDR" default:":8080"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"*"`
}

// TelegramBot is optional; an empty token disables the bot and the weekly post.
type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN"`
	ChatID int64  `envconfig:"CHAT_ID" default:"0"`
}

type Schedule struct {
	RefreshCron string `envconfig:"REFRESH_CRON" default:"*/15 * * * *"`
	Timezone    string `envconfig:"SCHEDULE_TIMEZONE" default:"America/Chicago"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	c.Sleeper.LeagueID = strings.TrimSpace(c.Sleeper.LeagueID)
	if c.Sleeper.LeagueID == "" {
		return fmt.Errorf("SLEEPER_LEAGUE_ID must not be empty")
	}
	if c.Sleeper.Week < 0 {
		return fmt.Errorf("WEEK must not be negative, got %d", c.Sleeper.Week)
	}
	c.Sleeper.BaseURL = strings.TrimRight(strings.TrimSpace(c.Sleeper.BaseURL), "/")
	if c.Sleeper.BaseURL == "" {
		return fmt.Errorf("SLEEPER_BASE_URL must not be empty")
	}
	if _, err := cron.ParseStandard(c.Schedule.RefreshCron); err != nil {
		return fmt.Errorf("invalid REFRESH_CRON %q: %w", c.Schedule.RefreshCron, err)
	}
	return nil
}

// Origins splits ALLOWED_ORIGINS into trimmed, non-empty entries.
func (h HTTP) Origins() []string {
	var origins []string
	for _, o := range strings.Split(h.AllowedOrigins, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func (t TelegramBot) Enabled() bool {
	return t.Token != ""
}
