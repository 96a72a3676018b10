package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Mongo      MongoConfig      `yaml:"mongodb"`
	Auth       AuthConfig       `yaml:"auth"`
	Stripe     StripeConfig     `yaml:"stripe"`
	Cloudinary CloudinaryConfig `yaml:"cloudinary"`
	Search     SearchConfig     `yaml:"search"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Seed       SeedConfig       `yaml:"seed"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port        string   `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// MongoConfig contains record store settings
type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
	// UseTransactions requires a replica set; multi-document commits fall
	// back to sequential writes when disabled.
	UseTransactions bool `yaml:"use_transactions"`
	TimeoutSeconds  int  `yaml:"timeout_seconds"`
}

// AuthConfig contains bearer-credential verification settings
type AuthConfig struct {
	JWTSecret     string `yaml:"jwt_secret"`
	TokenTTLHours int    `yaml:"token_ttl_hours"`
}

// StripeConfig contains checkout session settings
type StripeConfig struct {
	SecretKey  string `yaml:"secret_key"`
	Currency   string `yaml:"currency"`
	SuccessURL string `yaml:"success_url"`
	CancelURL  string `yaml:"cancel_url"`
}

// CloudinaryConfig contains media store settings
type CloudinaryConfig struct {
	CloudName string `yaml:"cloud_name"`
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	Folder    string `yaml:"folder"`
}

// SearchConfig contains search engine settings
type SearchConfig struct {
	Enabled     bool              `yaml:"enabled"`
	Meilisearch MeilisearchConfig `yaml:"meilisearch"`
}

// MeilisearchConfig contains Meilisearch connection settings
type MeilisearchConfig struct {
	Host   string `yaml:"host"`
	APIKey string `yaml:"api_key"`
}

// RateLimitConfig contains rate limiting settings for payment and upload routes
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requests_per_minute"`
	RequestsPerHour   int  `yaml:"requests_per_hour"`
}

// SeedConfig contains fixture data for the admin seed endpoint
type SeedConfig struct {
	Count     int            `yaml:"count"`
	Locations []SeedLocation `yaml:"locations"`
}

// SeedLocation is a named location with coordinates for seeded listings
type SeedLocation struct {
	Location string  `yaml:"location"`
	Lat      float64 `yaml:"lat"`
	Lng      float64 `yaml:"lng"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "5000",
			CORSOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Mongo: MongoConfig{
			URI:             "mongodb://localhost:27017",
			Database:        "homeHorizonDB",
			UseTransactions: false,
			TimeoutSeconds:  10,
		},
		Auth: AuthConfig{
			TokenTTLHours: 168,
		},
		Stripe: StripeConfig{
			Currency:   "bdt",
			SuccessURL: "http://localhost:5173/dashboard/payment-success?session_id={CHECKOUT_SESSION_ID}",
			CancelURL:  "http://localhost:5173/payment-cancelled",
		},
		Cloudinary: CloudinaryConfig{
			Folder: "home-horizon-users",
		},
		Search: SearchConfig{
			Enabled: false,
			Meilisearch: MeilisearchConfig{
				Host: "http://localhost:7700",
			},
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: 30,
			RequestsPerHour:   1800,
		},
		Seed: SeedConfig{
			Count: 20,
			Locations: []SeedLocation{
				{Location: "Gulshan, Dhaka", Lat: 23.7806, Lng: 90.4193},
				{Location: "Uttara, Dhaka", Lat: 23.8738, Lng: 90.3984},
				{Location: "Banani, Dhaka", Lat: 23.7936, Lng: 90.4068},
				{Location: "Dhanmondi, Dhaka", Lat: 23.745, Lng: 90.3748},
				{Location: "Mirpur, Dhaka", Lat: 23.8066, Lng: 90.369},
				{Location: "Rajshahi Sadar, Rajshahi", Lat: 24.3745, Lng: 88.6042},
				{Location: "Chawkbazar, Chattogram", Lat: 22.3422, Lng: 91.8347},
				{Location: "Khulna Sadar, Khulna", Lat: 22.8456, Lng: 89.5403},
				{Location: "Sylhet Sadar, Sylhet", Lat: 24.8949, Lng: 91.8687},
				{Location: "Rangpur Sadar, Rangpur", Lat: 25.7558, Lng: 89.2442},
			},
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(filepath string) (*Config, error) {
	// Start with default config
	config := DefaultConfig()

	// If file doesn't exist, return default config
	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return config, nil
	}

	// Read file
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// GetTimeout returns the store operation timeout as a duration
func (c *MongoConfig) GetTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// GetTokenTTL returns the issued-token lifetime as a duration
func (c *AuthConfig) GetTokenTTL() time.Duration {
	if c.TokenTTLHours <= 0 {
		return 168 * time.Hour
	}
	return time.Duration(c.TokenTTLHours) * time.Hour
}
