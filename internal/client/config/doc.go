// Package config loads runtime configuration for the ArcheData CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults). The analyzer key
//     defaults to $OPENAI_API_KEY.
//  2. Optional JSON file (see parseJson) selected via -c / -config or
//     $ARCHEDATA_CONFIG.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
//	{
//	  "database_path": "data/archedata.db",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "admin_email": "admin@archedata.local",
//	  "admin_password": "change-me",
//	  "ai_endpoint": "",
//	  "ai_model": "gpt-4o-mini",
//	  "ai_api_key": "",
//	  "ai_timeout": "30s",
//	  "ai_requests_per_minute": 10,
//	  "s3_bucket": "archedata",
//	  "s3_region": "us-east-1",
//	  "s3_base_endpoint": "http://127.0.0.1:9000/",
//	  "s3_access_key": "minioadmin",
//	  "s3_secret_key": "minioadmin"
//	}
package config
