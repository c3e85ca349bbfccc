package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Server    ServerConfig
	STT       STTConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Host           string
	Port           int
	MaxUploadBytes int64
}

type STTConfig struct {
	Backend string // "local" or "openai"

	// Local faster-whisper backend.
	WhisperBin         string
	WhisperModel       string
	WhisperDevice      string
	WhisperComputeType string
	WhisperBeamSize    int

	// OpenAI backend.
	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

func Load() (*Config, error) {
	port, err := getEnvInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	maxUpload, err := getEnvInt64("MAX_UPLOAD_BYTES", 32<<20)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_BYTES: %w", err)
	}

	beamSize, err := getEnvInt("WHISPER_BEAM_SIZE", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid WHISPER_BEAM_SIZE: %w", err)
	}

	rps, err := getEnvFloat("RATE_LIMIT_RPS", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}

	burst, err := getEnvInt("RATE_LIMIT_BURST", 20)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           port,
			MaxUploadBytes: maxUpload,
		},
		STT: STTConfig{
			Backend:            getEnv("STT_BACKEND", "local"),
			WhisperBin:         getEnv("WHISPER_BIN", "whisper-ctranslate2"),
			WhisperModel:       getEnv("WHISPER_MODEL", "small"),
			WhisperDevice:      getEnv("WHISPER_DEVICE", "cpu"),
			WhisperComputeType: getEnv("WHISPER_COMPUTE_TYPE", "int8"),
			WhisperBeamSize:    beamSize,
			OpenAIKey:          getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:      getEnv("STT_OPENAI_BASE_URL", ""),
			OpenAIModel:        getEnv("STT_OPENAI_MODEL", ""),
		},
		RateLimit: RateLimitConfig{
			RPS:   rps,
			Burst: burst,
		},
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Validate() error {
	switch c.STT.Backend {
	case "local":
	case "openai":
		if c.STT.OpenAIKey == "" {
			return fmt.Errorf("STT_BACKEND=openai requires OPENAI_API_KEY")
		}
	default:
		return fmt.Errorf("unknown STT_BACKEND %q (want \"local\" or \"openai\")", c.STT.Backend)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvInt64(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseInt(v, 10, 64)
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(v, 64)
}
