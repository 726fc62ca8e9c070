package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/prepadmin/internal/flagx"
	"github.com/dmitrijs2005/prepadmin/internal/timex"
	"gopkg.in/yaml.v2"
)

// FileConfig is the DTO for JSON and YAML config files. Zero values leave
// the corresponding Config field untouched.
type FileConfig struct {
	APIBaseURL     string         `json:"api_base_url" yaml:"api_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout" yaml:"request_timeout"`

	TokenStore   string `json:"token_store" yaml:"token_store"`
	DatabasePath string `json:"database_path" yaml:"database_path"`
	BoltPath     string `json:"bolt_path" yaml:"bolt_path"`

	Redis struct {
		Addr     string `json:"addr" yaml:"addr"`
		Password string `json:"password" yaml:"password"`
		DB       int    `json:"db" yaml:"db"`
		Prefix   string `json:"prefix" yaml:"prefix"`
	} `json:"redis" yaml:"redis"`

	LogFormat string `json:"log_format" yaml:"log_format"`
	LogLevel  string `json:"log_level" yaml:"log_level"`

	ImageUploader string `json:"image_uploader" yaml:"image_uploader"`
	S3            struct {
		Region        string `json:"region" yaml:"region"`
		Bucket        string `json:"bucket" yaml:"bucket"`
		BaseEndpoint  string `json:"base_endpoint" yaml:"base_endpoint"`
		AccessKey     string `json:"access_key" yaml:"access_key"`
		SecretKey     string `json:"secret_key" yaml:"secret_key"`
		PublicBaseURL string `json:"public_base_url" yaml:"public_base_url"`
	} `json:"s3" yaml:"s3"`

	DevServer struct {
		Addr          string         `json:"addr" yaml:"addr"`
		Secret        string         `json:"secret" yaml:"secret"`
		AdminEmail    string         `json:"admin_email" yaml:"admin_email"`
		AdminPassword string         `json:"admin_password" yaml:"admin_password"`
		TokenValidity timex.Duration `json:"token_validity" yaml:"token_validity"`
	} `json:"dev_server" yaml:"dev_server"`
}

func parseFile(cfg *Config) error {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return nil
	}
	return loadFile(cfg, path)
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.APIBaseURL, fc.APIBaseURL)
	if fc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}

	setString(&cfg.TokenStore, fc.TokenStore)
	setString(&cfg.DatabasePath, fc.DatabasePath)
	setString(&cfg.BoltPath, fc.BoltPath)
	setString(&cfg.RedisAddr, fc.Redis.Addr)
	setString(&cfg.RedisPass, fc.Redis.Password)
	setString(&cfg.RedisPrefix, fc.Redis.Prefix)
	if fc.Redis.DB != 0 {
		cfg.RedisDB = fc.Redis.DB
	}

	setString(&cfg.LogFormat, fc.LogFormat)
	setString(&cfg.LogLevel, fc.LogLevel)

	setString(&cfg.ImageUploader, fc.ImageUploader)
	setString(&cfg.S3Region, fc.S3.Region)
	setString(&cfg.S3Bucket, fc.S3.Bucket)
	setString(&cfg.S3BaseEndpoint, fc.S3.BaseEndpoint)
	setString(&cfg.S3AccessKey, fc.S3.AccessKey)
	setString(&cfg.S3SecretKey, fc.S3.SecretKey)
	setString(&cfg.S3PublicBaseURL, fc.S3.PublicBaseURL)

	setString(&cfg.DevServerAddr, fc.DevServer.Addr)
	setString(&cfg.DevServerSecret, fc.DevServer.Secret)
	setString(&cfg.DevAdminEmail, fc.DevServer.AdminEmail)
	setString(&cfg.DevAdminPassword, fc.DevServer.AdminPassword)
	if fc.DevServer.TokenValidity.Duration != 0 {
		cfg.DevTokenValidity = fc.DevServer.TokenValidity.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
