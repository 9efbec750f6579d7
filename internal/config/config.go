// ABOUTME: Configuration for the vault CLI: data dir, provider, model, approach
// ABOUTME: JSON file in the data directory with environment overrides and defaults
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"mindvault/internal/models"
	"mindvault/internal/storage/sqlite"
)

const configFile = "config.json"

// Config holds all settings for the CLI and the LLM clients. It is
// passed explicitly to the components that need it; there is no
// ambient global state.
type Config struct {
	DataDir string `json:"-"`

	Provider        models.Provider `json:"-"`
	ProviderName    string          `json:"llm_provider"`
	Model           string          `json:"llm_model"`
	ApproachName    string          `json:"default_therapy_approach"`
	DefaultApproach models.Approach `json:"-"`

	// APIKeys is keyed by provider name. Environment variables take
	// precedence; see APIKey.
	APIKeys map[string]string `json:"api_keys"`

	OllamaBaseURL string        `json:"ollama_base_url,omitempty"`
	Timeout       time.Duration `json:"-"`
	MaxRetries    int           `json:"-"`
	RetryDelay    time.Duration `json:"-"`
}

// Default returns the default configuration rooted at dataDir. An
// empty dataDir uses the XDG default.
func Default(dataDir string) *Config {
	if dataDir == "" {
		dataDir = sqlite.DefaultDataDir()
	}
	return &Config{
		DataDir:         dataDir,
		Provider:        models.ProviderOpenAI,
		ProviderName:    models.ProviderOpenAI.String(),
		Model:           "gpt-4o-mini",
		DefaultApproach: models.ApproachCBT,
		ApproachName:    models.ApproachCBT.String(),
		APIKeys:         map[string]string{},
		OllamaBaseURL:   "http://localhost:11434/v1",
		Timeout:         getEnvDuration("MINDVAULT_LLM_TIMEOUT", 60*time.Second),
		MaxRetries:      getEnvInt("MINDVAULT_LLM_MAX_RETRIES", 3),
		RetryDelay:      getEnvDuration("MINDVAULT_LLM_RETRY_DELAY", 2*time.Second),
	}
}

// Load reads the config file under dataDir and applies environment
// overrides. The returned Config is always usable: a missing file
// creates defaults, and a malformed or unreadable one falls back to
// defaults with a non-nil error describing what was ignored.
func Load(dataDir string) (*Config, error) {
	cfg := Default(dataDir)
	path := filepath.Join(cfg.DataDir, configFile)

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		if saveErr := cfg.Save(); saveErr != nil {
			return cfg, fmt.Errorf("writing default config: %w", saveErr)
		}
	case err != nil:
		cfg.applyEnv()
		return cfg, fmt.Errorf("reading config (using defaults): %w", err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			fresh := Default(dataDir)
			fresh.applyEnv()
			return fresh, fmt.Errorf("malformed config %s (using defaults): %w", path, err)
		}
		cfg.resolveNames()
	}

	cfg.applyEnv()
	return cfg, nil
}

// resolveNames maps serialized provider/approach names onto their enum
// values, keeping defaults for unknown names.
func (c *Config) resolveNames() {
	if p, err := models.ParseProvider(c.ProviderName); err == nil {
		c.Provider = p
	} else {
		c.ProviderName = c.Provider.String()
	}
	if a, err := models.ParseApproach(c.ApproachName); err == nil {
		c.DefaultApproach = a
	} else {
		c.ApproachName = c.DefaultApproach.String()
	}
	if c.APIKeys == nil {
		c.APIKeys = map[string]string{}
	}
	if c.OllamaBaseURL == "" {
		c.OllamaBaseURL = "http://localhost:11434/v1"
	}
}

// applyEnv applies environment variable overrides.
func (c *Config) applyEnv() {
	if v := os.Getenv("MINDVAULT_PROVIDER"); v != "" {
		if p, err := models.ParseProvider(v); err == nil {
			c.Provider = p
			c.ProviderName = p.String()
		}
	}
	if v := os.Getenv("MINDVAULT_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("OLLAMA_BASE_URL"); v != "" {
		c.OllamaBaseURL = v
	}
}

// Save writes the configuration file under the data directory.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.DataDir, 0700); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	c.ProviderName = c.Provider.String()
	c.ApproachName = c.DefaultApproach.String()

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.DataDir, configFile), data, 0600)
}

// DBPath returns the vault database path under the data directory.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "vault.db")
}

// APIKey resolves the key for a provider: the provider-specific
// environment variable wins, then the config file map.
func (c *Config) APIKey(p models.Provider) string {
	switch p {
	case models.ProviderOpenAI:
		if v := os.Getenv("OPENAI_API_KEY"); v != "" {
			return v
		}
	case models.ProviderGemini:
		if v := os.Getenv("GEMINI_API_KEY"); v != "" {
			return v
		}
	}
	return c.APIKeys[p.String()]
}

// Helper functions
func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
