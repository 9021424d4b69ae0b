package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/cyberdoom/internal/flagx"
	"github.com/dmitrijs2005/cyberdoom/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "24h"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config.
type JsonConfig struct {
	DatabaseDriver      string         `json:"database_driver"`
	DatabaseDSN         string         `json:"database_dsn"`
	GenAIEndpoint       string         `json:"genai_endpoint"`
	GenAIAPIKey         string         `json:"genai_api_key"`
	GenAIModel          string         `json:"genai_model"`
	SessionSecret       string         `json:"session_secret"`
	SessionValidity     timex.Duration `json:"session_validity"`
	AdminAccessCodeHash string         `json:"admin_access_code_hash"`
	PublishAccessKey    string         `json:"publish_access_key"`
	PublishSecretKey    string         `json:"publish_secret_key"`
	PublishBucket       string         `json:"publish_bucket"`
	PublishRegion       string         `json:"publish_region"`
	PublishBaseEndpoint string         `json:"publish_base_endpoint"`
}

// parseJson overlays Config with values loaded from a JSON file resolved via
// the -c/-config flags. Only fields present in the file override the current
// values. Panics on read or unmarshal errors (caller should recover if
// desired).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabaseDriver != "" {
		cfg.DatabaseDriver = jc.DatabaseDriver
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.GenAIEndpoint != "" {
		cfg.GenAIEndpoint = jc.GenAIEndpoint
	}
	if jc.GenAIAPIKey != "" {
		cfg.GenAIAPIKey = jc.GenAIAPIKey
	}
	if jc.GenAIModel != "" {
		cfg.GenAIModel = jc.GenAIModel
	}
	if jc.SessionSecret != "" {
		cfg.SessionSecret = jc.SessionSecret
	}
	if jc.SessionValidity.Duration != 0 {
		cfg.SessionValidity = time.Duration(jc.SessionValidity.Duration)
	}
	if jc.AdminAccessCodeHash != "" {
		cfg.AdminAccessCodeHash = jc.AdminAccessCodeHash
	}
	if jc.PublishAccessKey != "" {
		cfg.PublishAccessKey = jc.PublishAccessKey
	}
	if jc.PublishSecretKey != "" {
		cfg.PublishSecretKey = jc.PublishSecretKey
	}
	if jc.PublishBucket != "" {
		cfg.PublishBucket = jc.PublishBucket
	}
	if jc.PublishRegion != "" {
		cfg.PublishRegion = jc.PublishRegion
	}
	if jc.PublishBaseEndpoint != "" {
		cfg.PublishBaseEndpoint = jc.PublishBaseEndpoint
	}
}
