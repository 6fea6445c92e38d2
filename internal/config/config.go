package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration settings
type Config struct {
	// GitHub discovery
	GitHub GitHubConfig `yaml:"github" mapstructure:"github"`

	// Local clone discovery
	Local LocalConfig `yaml:"local" mapstructure:"local"`

	// Cache and storage locations
	Cache CacheConfig `yaml:"cache" mapstructure:"cache"`

	// Heatmap rendering
	Heatmap HeatmapConfig `yaml:"heatmap" mapstructure:"heatmap"`
}

type GitHubConfig struct {
	Token     string `yaml:"token" mapstructure:"token"`
	Username  string `yaml:"username" mapstructure:"username"`
	RateLimit int    `yaml:"rate_limit" mapstructure:"rate_limit"` // Requests per second
}

type LocalConfig struct {
	ReposDir     string   `yaml:"repos_dir" mapstructure:"repos_dir"`
	AuthorEmails []string `yaml:"author_emails" mapstructure:"author_emails"`
}

type CacheConfig struct {
	Directory string        `yaml:"directory" mapstructure:"directory"`
	TTL       time.Duration `yaml:"ttl" mapstructure:"ttl"`
	StorePath string        `yaml:"store_path" mapstructure:"store_path"`
}

type HeatmapConfig struct {
	FirstYear int     `yaml:"first_year" mapstructure:"first_year"`
	LastYear  int     `yaml:"last_year" mapstructure:"last_year"`
	CellSize  int     `yaml:"cell_size" mapstructure:"cell_size"`
	Buckets   int     `yaml:"buckets" mapstructure:"buckets"`
	DomainMax float64 `yaml:"domain_max" mapstructure:"domain_max"`
	OutputDir string  `yaml:"output_dir" mapstructure:"output_dir"`
}

// Years returns the configured year range, first to last inclusive.
func (h HeatmapConfig) Years() []int {
	if h.LastYear < h.FirstYear {
		return nil
	}
	years := make([]int, 0, h.LastYear-h.FirstYear+1)
	for y := h.FirstYear; y <= h.LastYear; y++ {
		years = append(years, y)
	}
	return years
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		GitHub: GitHubConfig{
			RateLimit: 10, // 10 requests per second
		},
		Local: LocalConfig{
			ReposDir: "repos",
		},
		Cache: CacheConfig{
			Directory: "cache",
			TTL:       12 * time.Hour,
			StorePath: filepath.Join("cache", "commits.db"),
		},
		Heatmap: HeatmapConfig{
			FirstYear: 2011,
			LastYear:  2015,
			CellSize:  12,
			Buckets:   7,
			DomainMax: 30,
			OutputDir: "public",
		},
	}
}

// Load loads configuration from file
func Load(path string) (*Config, error) {
	// Load .env files first (in order of precedence)
	loadEnvFiles()

	v := viper.New()
	v.SetConfigType("yaml")

	// Set defaults
	cfg := Default()
	v.SetDefault("github", cfg.GitHub)
	v.SetDefault("local", cfg.Local)
	v.SetDefault("cache", cfg.Cache)
	v.SetDefault("heatmap", cfg.Heatmap)

	// Load from environment variables
	v.SetEnvPrefix("COMMITMAP")
	v.AutomaticEnv()

	// Try to find config file
	if path != "" {
		v.SetConfigFile(path)
	} else {
		// Search for config in standard locations
		v.SetConfigName("config")
		v.AddConfigPath(".commitmap")
		v.AddConfigPath(".")
		homeDir, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(homeDir, ".commitmap"))
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	// Unmarshal into struct
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the parts of the configuration that rendering depends on.
func (c *Config) Validate() error {
	if c.Heatmap.LastYear < c.Heatmap.FirstYear {
		return fmt.Errorf("invalid year range: %d..%d", c.Heatmap.FirstYear, c.Heatmap.LastYear)
	}
	if c.Heatmap.CellSize <= 0 {
		return fmt.Errorf("cell size must be positive, got %d", c.Heatmap.CellSize)
	}
	if c.Heatmap.Buckets < 2 {
		return fmt.Errorf("need at least 2 intensity buckets, got %d", c.Heatmap.Buckets)
	}
	if c.Heatmap.DomainMax <= 0 {
		return fmt.Errorf("color domain max must be positive, got %v", c.Heatmap.DomainMax)
	}
	return nil
}

// loadEnvFiles loads .env files in order of precedence
func loadEnvFiles() {
	envFiles := []string{
		".env.local", // Local overrides (highest precedence)
		".env",       // Main environment file
	}

	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			godotenv.Load(file)
		}
	}

	// Also try loading from home directory
	homeDir, _ := os.UserHomeDir()
	homeEnvFile := filepath.Join(homeDir, ".commitmap", ".env")
	if _, err := os.Stat(homeEnvFile); err == nil {
		godotenv.Load(homeEnvFile)
	}
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		cfg.GitHub.Token = token
	}
	if username := os.Getenv("GITHUB_USERNAME"); username != "" {
		cfg.GitHub.Username = username
	}
	if rateLimit := os.Getenv("GITHUB_RATE_LIMIT"); rateLimit != "" {
		if rate, err := strconv.Atoi(rateLimit); err == nil {
			cfg.GitHub.RateLimit = rate
		}
	}
}
