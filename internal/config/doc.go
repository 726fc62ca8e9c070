// Package config loads runtime configuration for the prepadmin console and
// its dev server.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  3. PREPADMIN_* environment variables.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   backend base URL, e.g. http://localhost:8000/api/v1
//	-s string   token store: sqlite, bolt, redis or memory
//	-d string   SQLite database path
//	-l string   log format: text, json or zap
//
// # File schema
//
// Durations accept Go duration strings or integer nanoseconds:
//
//	api_base_url: http://localhost:8000/api/v1
//	request_timeout: 30s
//	token_store: bolt
//	bolt_path: /var/lib/prepadmin/session.bolt
//	image_uploader: s3
//	s3:
//	  bucket: case-images
//	  base_endpoint: http://localhost:9000
//	dev_server:
//	  addr: 127.0.0.1:8000
//	  token_validity: 15m
package config
