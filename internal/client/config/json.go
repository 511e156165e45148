package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/archedata/internal/flagx"
	"github.com/dmitrijs2005/archedata/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "30s" or as integer nanoseconds.
type JsonConfig struct {
	DatabasePath        string         `json:"database_path"`
	LogLevel            string         `json:"log_level"`
	LogFormat           string         `json:"log_format"`
	AdminEmail          string         `json:"admin_email"`
	AdminPassword       string         `json:"admin_password"`
	AIEndpoint          string         `json:"ai_endpoint"`
	AIModel             string         `json:"ai_model"`
	AIAPIKey            string         `json:"ai_api_key"`
	AITimeout           timex.Duration `json:"ai_timeout"`
	AIRequestsPerMinute int            `json:"ai_requests_per_minute"`
	S3Bucket            string         `json:"s3_bucket"`
	S3Region            string         `json:"s3_region"`
	S3BaseEndpoint      string         `json:"s3_base_endpoint"`
	S3AccessKey         string         `json:"s3_access_key"`
	S3SecretKey         string         `json:"s3_secret_key"`
}

// parseJson overlays Config with the values present in a JSON file.
//
// The file path comes from -c/-config or the ARCHEDATA_CONFIG environment
// variable (flagx.JsonConfigFlags). Keys missing from the file keep their
// current value. Panics on read or unmarshal errors.
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

	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.AdminEmail, jc.AdminEmail)
	setString(&cfg.AdminPassword, jc.AdminPassword)
	setString(&cfg.AIEndpoint, jc.AIEndpoint)
	setString(&cfg.AIModel, jc.AIModel)
	setString(&cfg.AIAPIKey, jc.AIAPIKey)
	if jc.AITimeout.Duration != 0 {
		cfg.AITimeout = jc.AITimeout.Duration
	}
	if jc.AIRequestsPerMinute != 0 {
		cfg.AIRequestsPerMinute = jc.AIRequestsPerMinute
	}
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
