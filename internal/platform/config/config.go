// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const glyphPairParts = 2

//nolint:lll // env defaults mirror the production deployment verbatim
type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"local"`

	// Source platform
	DiscordToken      string `env:"DISCORD_TOKEN,required"`
	DiscordGatewayURL string `env:"DISCORD_GATEWAY_URL" envDefault:"wss://gateway.discord.gg/?v=10&encoding=json"`
	DiscordAPIBaseURL string `env:"DISCORD_API_BASE_URL" envDefault:"https://discord.com/api/v10"`
	SeedGearChannel   string `env:"SEED_GEAR_CHANNEL,required"`
	EggChannel        string `env:"EGG_CHANNEL,required"`
	WeatherChannel    string `env:"WEATHER_CHANNEL,required"`

	// Destination platform
	WAGatewayURL   string        `env:"WA_GATEWAY_URL,required"`
	WAGatewayToken string        `env:"WA_GATEWAY_TOKEN"`
	WASendTimeout  time.Duration `env:"WA_SEND_TIMEOUT" envDefault:"30s"`
	PersonalIDs    []string      `env:"PERSONAL_IDS" envSeparator:","`
	GroupIDs       []string      `env:"GROUP_IDS" envSeparator:","`

	// Report pipeline
	HighValueKeywords []string `env:"HIGH_VALUE_KEYWORDS" envSeparator:"," envDefault:"Bug Egg,Legendary Egg,Mythical Egg,Dragon Fruit,Grape,Mango,Mushroom,Pepper,Cacao,Beanstalk,Advanced Sprinkler,Godly Sprinkler,Master Sprinkler,Harvest Tool,Lightning Rod"`
	GlyphOverrides    []string `env:"GLYPH_OVERRIDES" envSeparator:","`
	FooterLines       []string `env:"FOOTER_LINES" envSeparator:"|" envDefault:"🔗 Social Media:|https://www.tiktok.com/@irexus_official|https://www.instagram.com/irexus.roblox|shortcuts make it easier for you if available good stock (🚪Private Server Link)|https://www.roblox.com/share?code=eaef6c0b990a5248b4871df3ed22348a&type=Server"`
	Timezone          string   `env:"TZ_NAME" envDefault:"Asia/Jakarta"`
	TimezoneLabel     string   `env:"TZ_LABEL" envDefault:"Asia/Jakarta (WIB)"`

	// Runtime
	HealthPort          int           `env:"HEALTH_PORT" envDefault:"8080"`
	StatusInterval      time.Duration `env:"STATUS_INTERVAL" envDefault:"1m"`
	ReconnectMinBackoff time.Duration `env:"RECONNECT_MIN_BACKOFF" envDefault:"2s"`
	ReconnectMaxBackoff time.Duration `env:"RECONNECT_MAX_BACKOFF" envDefault:"1m"`
}

func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env file is optional, error is expected when not present

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment config: %w", err)
	}

	return cfg, nil
}

// ParseGlyphOverrides turns the configured "name=glyph" pairs into a
// map. Malformed pairs are skipped.
func (c *Config) ParseGlyphOverrides() map[string]string {
	overrides := make(map[string]string, len(c.GlyphOverrides))

	for _, pair := range c.GlyphOverrides {
		parts := strings.SplitN(pair, "=", glyphPairParts)
		if len(parts) != glyphPairParts {
			continue
		}

		name := strings.TrimSpace(parts[0])
		glyph := strings.TrimSpace(parts[1])

		if name != "" && glyph != "" {
			overrides[name] = glyph
		}
	}

	return overrides
}
