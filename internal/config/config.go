package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Config holds all configuration for the jobtrail server.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Supabase SupabaseConfig
	Redis    RedisConfig
	AI       AIConfig
	Intake   IntakeConfig
}

type ServerConfig struct {
	Port               int
	Env                string
	IngestKeyHash      string
	RateLimitPerMinute int
}

type DatabaseConfig struct {
	Backend         string
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	WriteTimeout    time.Duration
	ConnectAttempts int
}

type SupabaseConfig struct {
	URL string
	Key string
}

type RedisConfig struct {
	URL string
	// ConnectAttempts bounds the startup readiness pings.
	ConnectAttempts int
}

type AIConfig struct {
	Provider         string
	InferenceTimeout time.Duration
	OpenAI           OpenAIConfig
	Ollama           OllamaConfig
	VLLM             VLLMConfig
	Gemini           GeminiConfig
}

type OpenAIConfig struct {
	APIKey string
	Model  string
}

type OllamaConfig struct {
	BaseURL string
	Model   string
}

type VLLMConfig struct {
	BaseURL string
	Model   string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

// IntakeConfig controls the submission pipeline.
type IntakeConfig struct {
	// EnrichmentPolicy is "required" (a missing model credential is fatal) or
	// "optional" (enrichment is skipped when no credential is configured).
	EnrichmentPolicy     string
	EnrichmentMinLength  int
	MinDescriptionLength int
}

const (
	BackendPostgres = "postgres"
	BackendSupabase = "supabase"

	PolicyRequired = "required"
	PolicyOptional = "optional"

	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
	ProviderVLLM   = "vllm"
	ProviderGemini = "gemini"
	ProviderNone   = "none"
)

var validProviders = map[string]bool{
	ProviderOpenAI: true,
	ProviderOllama: true,
	ProviderVLLM:   true,
	ProviderGemini: true,
	ProviderNone:   true,
}

// HasCredential reports whether the selected provider has what it needs to be
// called. Local OpenAI-compatible servers need an address instead of a key.
func (c AIConfig) HasCredential() bool {
	switch c.Provider {
	case ProviderOpenAI:
		return c.OpenAI.APIKey != ""
	case ProviderGemini:
		return c.Gemini.APIKey != ""
	case ProviderOllama:
		return c.Ollama.BaseURL != ""
	case ProviderVLLM:
		return c.VLLM.BaseURL != "" && c.VLLM.Model != ""
	default:
		return false
	}
}

// Load reads configuration from the environment (and a .env file when present)
// and returns a validated Config.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is like Load but also reads keys from the given config file. Keys in
// the file use the environment variable names; the environment wins.
func LoadFile(path string) (*Config, error) {
	cfg, err := read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadExtraction reads the same sources as LoadFile but validates only the
// settings needed to run the extractor, for commands that never touch storage.
func LoadExtraction(path string) (*Config, error) {
	cfg, err := read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.validateExtraction(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func read(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               envInt(v, "JOBTRAIL_PORT", 8080),
			Env:                envString(v, "JOBTRAIL_ENV", "development"),
			IngestKeyHash:      v.GetString("INGEST_KEY_HASH"),
			RateLimitPerMinute: envInt(v, "RATE_LIMIT_PER_MINUTE", 60),
		},
		Database: DatabaseConfig{
			Backend:         envString(v, "STORE_BACKEND", BackendPostgres),
			URL:             v.GetString("DATABASE_URL"),
			MaxOpenConns:    envInt(v, "DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt(v, "DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: envDuration(v, "DATABASE_CONN_MAX_LIFETIME", 5*time.Minute),
			WriteTimeout:    envDuration(v, "DATABASE_WRITE_TIMEOUT", 10*time.Second),
			ConnectAttempts: envInt(v, "DATABASE_CONNECT_ATTEMPTS", 5),
		},
		Supabase: SupabaseConfig{
			URL: v.GetString("SUPABASE_URL"),
			Key: firstNonEmpty(v.GetString("SUPABASE_KEY"), v.GetString("SUPABASE_SERVICE_ROLE_KEY")),
		},
		Redis: RedisConfig{
			URL:             v.GetString("REDIS_URL"),
			ConnectAttempts: envInt(v, "REDIS_CONNECT_ATTEMPTS", 5),
		},
		AI: AIConfig{
			Provider:         v.GetString("AI_PROVIDER"),
			InferenceTimeout: envDurationSecs(v, "AI_INFERENCE_TIMEOUT_SECS", 30*time.Second),
			OpenAI: OpenAIConfig{
				APIKey: firstNonEmpty(v.GetString("OPENAI_API_KEY"), v.GetString("OPEN_AI_KEY")),
				Model:  envString(v, "OPENAI_MODEL", "gpt-4o-mini"),
			},
			Ollama: OllamaConfig{
				BaseURL: envString(v, "OLLAMA_BASE_URL", "http://localhost:11434"),
				Model:   envString(v, "OLLAMA_MODEL", "llama3"),
			},
			VLLM: VLLMConfig{
				BaseURL: envString(v, "VLLM_BASE_URL", "http://localhost:8000"),
				Model:   v.GetString("VLLM_MODEL"),
			},
			Gemini: GeminiConfig{
				APIKey: v.GetString("GEMINI_API_KEY"),
				Model:  envString(v, "GEMINI_MODEL", "gemini-2.5-flash"),
			},
		},
		Intake: IntakeConfig{
			EnrichmentPolicy:     envString(v, "ENRICHMENT_POLICY", PolicyRequired),
			EnrichmentMinLength:  envInt(v, "ENRICHMENT_MIN_LENGTH", 50),
			MinDescriptionLength: envInt(v, "INTAKE_MIN_DESCRIPTION_LENGTH", 50),
		},
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Backend {
	case BackendPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_BACKEND is postgres")
		}
	case BackendSupabase:
		if c.Supabase.URL == "" {
			return fmt.Errorf("SUPABASE_URL is required when STORE_BACKEND is supabase")
		}
		if !strings.HasPrefix(c.Supabase.URL, "http://") && !strings.HasPrefix(c.Supabase.URL, "https://") {
			return fmt.Errorf("SUPABASE_URL must start with http:// or https://, got %q", c.Supabase.URL)
		}
		if c.Supabase.Key == "" {
			return fmt.Errorf("SUPABASE_KEY is required when STORE_BACKEND is supabase")
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be one of postgres, supabase; got %q", c.Database.Backend)
	}

	if c.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}

	if c.Server.IngestKeyHash != "" {
		if _, err := bcrypt.Cost([]byte(c.Server.IngestKeyHash)); err != nil {
			return fmt.Errorf("INGEST_KEY_HASH must be a bcrypt hash: %w", err)
		}
	}

	return c.validateExtraction()
}

func (c *Config) validateExtraction() error {
	if c.AI.Provider == "" {
		return fmt.Errorf("AI_PROVIDER is required")
	}
	if !validProviders[c.AI.Provider] {
		return fmt.Errorf("AI_PROVIDER must be one of openai, ollama, vllm, gemini, none; got %q", c.AI.Provider)
	}
	if c.AI.InferenceTimeout <= 0 {
		return fmt.Errorf("AI_INFERENCE_TIMEOUT_SECS must be positive")
	}

	switch c.Intake.EnrichmentPolicy {
	case PolicyRequired:
		if err := c.AI.requireCredential(); err != nil {
			return err
		}
	case PolicyOptional:
	default:
		return fmt.Errorf("ENRICHMENT_POLICY must be one of required, optional; got %q", c.Intake.EnrichmentPolicy)
	}

	if c.Intake.MinDescriptionLength < 1 {
		return fmt.Errorf("INTAKE_MIN_DESCRIPTION_LENGTH must be at least 1")
	}

	return nil
}

func (c AIConfig) requireCredential() error {
	if c.HasCredential() {
		return nil
	}
	switch c.Provider {
	case ProviderOpenAI:
		return fmt.Errorf("OPENAI_API_KEY is required when ENRICHMENT_POLICY is required")
	case ProviderGemini:
		return fmt.Errorf("GEMINI_API_KEY is required when ENRICHMENT_POLICY is required")
	case ProviderOllama:
		return fmt.Errorf("OLLAMA_BASE_URL is required when ENRICHMENT_POLICY is required")
	case ProviderVLLM:
		return fmt.Errorf("VLLM_BASE_URL and VLLM_MODEL are required when ENRICHMENT_POLICY is required")
	default:
		return fmt.Errorf("AI_PROVIDER %q cannot satisfy ENRICHMENT_POLICY required", c.Provider)
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func envString(v *viper.Viper, key, defaultVal string) string {
	if s := v.GetString(key); s != "" {
		return s
	}
	return defaultVal
}

func envInt(v *viper.Viper, key string, defaultVal int) int {
	s := v.GetString(key)
	if s == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return i
}

func envDuration(v *viper.Viper, key string, defaultVal time.Duration) time.Duration {
	s := v.GetString(key)
	if s == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return defaultVal
	}
	return d
}

func envDurationSecs(v *viper.Viper, key string, defaultVal time.Duration) time.Duration {
	s := v.GetString(key)
	if s == "" {
		return defaultVal
	}
	secs, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return time.Duration(secs) * time.Second
}
