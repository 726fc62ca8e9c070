package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

func parseEnv(cfg *Config) error {
	return loadEnv(cfg, os.LookupEnv)
}

func loadEnv(cfg *Config, lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"PREPADMIN_API_BASE_URL":       &cfg.APIBaseURL,
		"PREPADMIN_TOKEN_STORE":        &cfg.TokenStore,
		"PREPADMIN_DATABASE_PATH":      &cfg.DatabasePath,
		"PREPADMIN_BOLT_PATH":          &cfg.BoltPath,
		"PREPADMIN_REDIS_ADDR":         &cfg.RedisAddr,
		"PREPADMIN_REDIS_PASSWORD":     &cfg.RedisPass,
		"PREPADMIN_LOG_FORMAT":         &cfg.LogFormat,
		"PREPADMIN_LOG_LEVEL":          &cfg.LogLevel,
		"PREPADMIN_IMAGE_UPLOADER":     &cfg.ImageUploader,
		"PREPADMIN_S3_BUCKET":          &cfg.S3Bucket,
		"PREPADMIN_S3_REGION":          &cfg.S3Region,
		"PREPADMIN_S3_BASE_ENDPOINT":   &cfg.S3BaseEndpoint,
		"PREPADMIN_S3_ACCESS_KEY":      &cfg.S3AccessKey,
		"PREPADMIN_S3_SECRET_KEY":      &cfg.S3SecretKey,
		"PREPADMIN_DEV_ADDR":           &cfg.DevServerAddr,
		"PREPADMIN_DEV_SECRET":         &cfg.DevServerSecret,
		"PREPADMIN_DEV_ADMIN_EMAIL":    &cfg.DevAdminEmail,
		"PREPADMIN_DEV_ADMIN_PASSWORD": &cfg.DevAdminPassword,
	}
	for name, dst := range strs {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup("PREPADMIN_REQUEST_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("PREPADMIN_REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}

	if v, ok := lookup("PREPADMIN_REDIS_DB"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PREPADMIN_REDIS_DB: %w", err)
		}
		cfg.RedisDB = n
	}
	return nil
}
