// Package config handles runtime configuration for the cyberdoom apps,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings shared by the studio and terminal apps.
//
// Fields:
//   - DatabaseDriver / DatabaseDSN: entity-store backend ("sqlite" or "pgx").
//   - GenAIEndpoint / GenAIAPIKey / GenAIModel: the hosted generation service.
//   - SessionSecret: HMAC secret for signing session tokens (HS256).
//   - SessionValidity: how long a persisted session survives a reload.
//   - AdminAccessCodeHash: bcrypt hash of the admin elevation code. Empty
//     disables self-elevation entirely.
//   - PublishBucket / PublishRegion / PublishBaseEndpoint and the publish
//     credentials: S3-compatible object storage for published artifacts.
type Config struct {
	DatabaseDriver      string
	DatabaseDSN         string
	GenAIEndpoint       string
	GenAIAPIKey         string
	GenAIModel          string
	SessionSecret       string
	SessionValidity     time.Duration
	AdminAccessCodeHash string
	PublishAccessKey    string
	PublishSecretKey    string
	PublishBucket       string
	PublishRegion       string
	PublishBaseEndpoint string
}

// LoadDefaults populates Config with development defaults.
// NOTE: SessionSecret must be overridden outside of local development.
func (c *Config) LoadDefaults() {
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "cyberdoom.db"
	c.GenAIEndpoint = "https://generativelanguage.googleapis.com"
	c.GenAIAPIKey = ""
	c.GenAIModel = "gemini-3-flash-preview"
	c.SessionSecret = "secretKey"
	c.SessionValidity = 24 * time.Hour
	c.AdminAccessCodeHash = ""
	c.PublishAccessKey = "admin"
	c.PublishSecretKey = "secretpassword"
	c.PublishBucket = "sites"
	c.PublishRegion = "us-east-1"
	c.PublishBaseEndpoint = "http://127.0.0.1:9000/"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
