package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// KV drivers
const (
	DriverREST     = "rest"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	KV         KVConfig         `yaml:"kv"`
	Cloudinary CloudinaryConfig `yaml:"cloudinary"`
	SMTP       SMTPConfig       `yaml:"smtp"`
	Site       SiteConfig       `yaml:"site"`
	JWT        JWTConfig        `yaml:"jwt"`
	Backup     BackupConfig     `yaml:"backup"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port int    `yaml:"port" env:"PORT"`
	Host string `yaml:"host" env:"HOST"`
	// SeedSamples fills the in-memory store with sample photos when no KV is configured
	SeedSamples bool `yaml:"seed_samples" env:"SEED_SAMPLE_PHOTOS"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

// KVConfig selects and configures the external record store
type KVConfig struct {
	Driver      string `yaml:"driver" env:"KV_DRIVER"`
	RESTURL     string `yaml:"rest_url" env:"KV_REST_API_URL"`
	RESTToken   string `yaml:"rest_token" env:"KV_REST_API_TOKEN"`
	RedisURL    string `yaml:"redis_url" env:"REDIS_URL"`
	PostgresDSN string `yaml:"postgres_dsn" env:"DATABASE_URL"`
}

// CloudinaryConfig holds media host credentials
type CloudinaryConfig struct {
	CloudName string `yaml:"cloud_name" env:"CLOUDINARY_CLOUD_NAME"`
	APIKey    string `yaml:"api_key" env:"CLOUDINARY_API_KEY"`
	APISecret string `yaml:"api_secret" env:"CLOUDINARY_API_SECRET"`
	Folder    string `yaml:"folder" env:"CLOUDINARY_FOLDER"`
}

// SMTPConfig holds mail transport credentials
type SMTPConfig struct {
	Host     string `yaml:"host" env:"SMTP_HOST"`
	Port     int    `yaml:"port" env:"SMTP_PORT"`
	Secure   bool   `yaml:"secure" env:"SMTP_SECURE"`
	Username string `yaml:"username" env:"SMTP_USER"`
	Password string `yaml:"password" env:"SMTP_PASS"`
	FromName string `yaml:"from_name" env:"SMTP_FROM_NAME"`
}

// SiteConfig holds the studio details used in emails
type SiteConfig struct {
	Name             string `yaml:"name" env:"STUDIO_NAME"`
	URL              string `yaml:"url" env:"NEXT_PUBLIC_SITE_URL"`
	PhotographerName string `yaml:"photographer_name" env:"PHOTOGRAPHER_NAME"`
	AdminEmail       string `yaml:"admin_email" env:"ADMIN_EMAIL"`
	StudioPhone      string `yaml:"studio_phone" env:"STUDIO_PHONE"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string        `yaml:"secret" env:"JWT_SECRET"`
	TTL    time.Duration `yaml:"ttl" env:"JWT_TTL"`
}

// BackupConfig holds the snapshot bucket configuration
type BackupConfig struct {
	S3Bucket  string `yaml:"s3_bucket" env:"BACKUP_S3_BUCKET"`
	Region    string `yaml:"region" env:"AWS_REGION"`
	Endpoint  string `yaml:"endpoint" env:"BACKUP_S3_ENDPOINT"`
	AccessKey string `yaml:"access_key" env:"AWS_ACCESS_KEY_ID"`
	SecretKey string `yaml:"secret_key" env:"AWS_SECRET_ACCESS_KEY"`
	Prefix    string `yaml:"prefix" env:"BACKUP_PREFIX"`
}

// Load reads configuration from an optional .env file, an optional YAML file
// and the process environment, in that order of increasing precedence.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8080},
		Log:    LogConfig{Level: "info", Format: "console"},
		KV:     KVConfig{Driver: DriverREST},
		Cloudinary: CloudinaryConfig{
			Folder: "sharp-images",
		},
		SMTP: SMTPConfig{Host: "smtp.gmail.com", Port: 587},
		Site: SiteConfig{
			Name:             "Sharp Images Photography",
			URL:              "http://localhost:3000",
			PhotographerName: "Sagar Kajale",
			AdminEmail:       "shubhamkd.a02@gmail.com",
			StudioPhone:      "+91 98765 43210",
		},
		JWT:    JWTConfig{TTL: 24 * time.Hour},
		Backup: BackupConfig{Region: "us-east-1", Prefix: "backups"},
	}
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Server.Port == 0 {
		c.Server.Port = def.Server.Port
	}
	if c.KV.Driver == "" {
		c.KV.Driver = def.KV.Driver
	}
	if c.SMTP.Port == 0 {
		c.SMTP.Port = def.SMTP.Port
	}
	if c.JWT.TTL <= 0 {
		c.JWT.TTL = def.JWT.TTL
	}
	if c.Backup.Region == "" {
		c.Backup.Region = def.Backup.Region
	}
}

// Configured reports whether the selected driver has what it needs to connect
func (c *KVConfig) Configured() bool {
	switch c.Driver {
	case DriverRedis:
		return c.RedisURL != ""
	case DriverPostgres:
		return c.PostgresDSN != ""
	default:
		return c.RESTURL != "" && c.RESTToken != ""
	}
}

// Configured reports whether uploads can reach the media host
func (c *CloudinaryConfig) Configured() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// Configured reports whether outbound mail can be sent
func (c *SMTPConfig) Configured() bool {
	return c.Host != "" && c.Username != "" && c.Password != ""
}

// Enabled reports whether admin tokens are issued and checked
func (c *JWTConfig) Enabled() bool {
	return c.Secret != ""
}

// Configured reports whether snapshots are uploaded to a bucket
func (c *BackupConfig) Configured() bool {
	return c.S3Bucket != ""
}
