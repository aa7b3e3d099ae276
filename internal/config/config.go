package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/Laisky/errors/v2"
	"github.com/joho/godotenv"
)

type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

// MaxCount bounds every caller-supplied sentence, phrase and paragraph count.
const MaxCount = 30

type AppConfig struct {
	Env                Environment
	LogLevel           string
	ServerPort         string
	RawBodyLog         bool
	HttpTimeoutSeconds int
	WorkerCount        int
	CacheSize          int
}

type CleanerConfig struct {
	DuplicateThreshold float64
	ShortLineTokens    int
	ResidualTokens     int
	// VocabularyFile is an optional YAML file overriding the built-in word
	// lists.
	VocabularyFile string
}

type SummaryConfig struct {
	Damping          float64
	MaxIterations    int
	Tolerance        float64
	DefaultSentences int
}

type KeyphraseConfig struct {
	DefaultCount int
	AcronymBoost int
	AlnumBoost   int
	MinChars     int
	MaxChars     int
}

type RetrievalConfig struct {
	TopK            int
	MaxContextChars int
}

type Config struct {
	App       AppConfig
	Cleaner   CleanerConfig
	Summary   SummaryConfig
	Keyphrase KeyphraseConfig
	Retrieval RetrievalConfig
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	appEnv := getEnv("APP_ENV", "development")
	env := parseEnvironment(appEnv)

	logLevel := getLogLevel(env)

	defaultWorkerCount := calculateDefaultWorkerCount()

	return &Config{
		App: AppConfig{
			Env:                env,
			LogLevel:           logLevel,
			ServerPort:         getEnv("APP_SERVER_PORT", "8080"),
			RawBodyLog:         getEnvBool("APP_RAW_BODY_LOG", false),
			HttpTimeoutSeconds: getEnvInt("APP_HTTP_TIMEOUT_SECONDS", 30),
			WorkerCount:        getEnvInt("APP_WORKER_COUNT", defaultWorkerCount),
			CacheSize:          getEnvInt("APP_CACHE_SIZE", 256),
		},
		Cleaner: CleanerConfig{
			DuplicateThreshold: getEnvFloat("CLEANER_DUPLICATE_THRESHOLD", 0.92),
			ShortLineTokens:    getEnvInt("CLEANER_SHORT_LINE_TOKENS", 4),
			ResidualTokens:     getEnvInt("CLEANER_RESIDUAL_TOKENS", 6),
			VocabularyFile:     getEnv("CLEANER_VOCABULARY_FILE", ""),
		},
		Summary: SummaryConfig{
			Damping:          getEnvFloat("SUMMARY_DAMPING", 0.85),
			MaxIterations:    getEnvInt("SUMMARY_MAX_ITERATIONS", 30),
			Tolerance:        getEnvFloat("SUMMARY_TOLERANCE", 1e-4),
			DefaultSentences: getEnvInt("SUMMARY_DEFAULT_SENTENCES", 5),
		},
		Keyphrase: KeyphraseConfig{
			DefaultCount: getEnvInt("KEYPHRASE_DEFAULT_COUNT", 12),
			AcronymBoost: getEnvInt("KEYPHRASE_ACRONYM_BOOST", 6),
			AlnumBoost:   getEnvInt("KEYPHRASE_ALNUM_BOOST", 4),
			MinChars:     getEnvInt("KEYPHRASE_MIN_CHARS", 3),
			MaxChars:     getEnvInt("KEYPHRASE_MAX_CHARS", 50),
		},
		Retrieval: RetrievalConfig{
			TopK:            getEnvInt("RETRIEVAL_TOP_K", 3),
			MaxContextChars: getEnvInt("RETRIEVAL_MAX_CONTEXT_CHARS", 12000),
		},
	}, nil
}

// Validate reports every invalid value at once.
func (c *Config) Validate() error {
	var errs []string
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Sprintf(format, args...))
		}
	}

	check(c.App.ServerPort != "", "APP_SERVER_PORT must not be empty")
	check(c.App.HttpTimeoutSeconds > 0, "APP_HTTP_TIMEOUT_SECONDS must be > 0, got %d", c.App.HttpTimeoutSeconds)
	check(c.App.WorkerCount > 0, "APP_WORKER_COUNT must be > 0, got %d", c.App.WorkerCount)
	check(c.App.CacheSize > 0, "APP_CACHE_SIZE must be > 0, got %d", c.App.CacheSize)

	check(c.Cleaner.DuplicateThreshold > 0 && c.Cleaner.DuplicateThreshold <= 1,
		"CLEANER_DUPLICATE_THRESHOLD must be in (0, 1], got %g", c.Cleaner.DuplicateThreshold)
	check(c.Cleaner.ShortLineTokens >= 0, "CLEANER_SHORT_LINE_TOKENS must be >= 0, got %d", c.Cleaner.ShortLineTokens)
	check(c.Cleaner.ResidualTokens >= 0, "CLEANER_RESIDUAL_TOKENS must be >= 0, got %d", c.Cleaner.ResidualTokens)

	check(c.Summary.Damping > 0 && c.Summary.Damping < 1,
		"SUMMARY_DAMPING must be in (0, 1), got %g", c.Summary.Damping)
	check(c.Summary.MaxIterations > 0, "SUMMARY_MAX_ITERATIONS must be > 0, got %d", c.Summary.MaxIterations)
	check(c.Summary.Tolerance > 0, "SUMMARY_TOLERANCE must be > 0, got %g", c.Summary.Tolerance)
	checkCount(check, "SUMMARY_DEFAULT_SENTENCES", c.Summary.DefaultSentences)

	checkCount(check, "KEYPHRASE_DEFAULT_COUNT", c.Keyphrase.DefaultCount)
	check(c.Keyphrase.AcronymBoost >= 0, "KEYPHRASE_ACRONYM_BOOST must be >= 0, got %d", c.Keyphrase.AcronymBoost)
	check(c.Keyphrase.AlnumBoost >= 0, "KEYPHRASE_ALNUM_BOOST must be >= 0, got %d", c.Keyphrase.AlnumBoost)
	check(c.Keyphrase.MinChars >= 0 && c.Keyphrase.MinChars <= c.Keyphrase.MaxChars,
		"KEYPHRASE_MIN_CHARS must be in [0, KEYPHRASE_MAX_CHARS], got %d..%d",
		c.Keyphrase.MinChars, c.Keyphrase.MaxChars)

	checkCount(check, "RETRIEVAL_TOP_K", c.Retrieval.TopK)
	check(c.Retrieval.MaxContextChars > 0, "RETRIEVAL_MAX_CONTEXT_CHARS must be > 0, got %d", c.Retrieval.MaxContextChars)

	if c.Cleaner.VocabularyFile != "" {
		if _, err := os.Stat(c.Cleaner.VocabularyFile); err != nil {
			errs = append(errs, fmt.Sprintf("CLEANER_VOCABULARY_FILE: %v", err))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Errorf("invalid configuration:\n - %s", strings.Join(errs, "\n - "))
}

func checkCount(check func(bool, string, ...any), key string, v int) {
	check(v >= 1 && v <= MaxCount, "%s must be in [1, %d], got %d", key, MaxCount, v)
}

// ClampCount maps a requested count into [1, MaxCount], using def when n is
// zero or negative.
func ClampCount(n, def int) int {
	if n <= 0 {
		n = def
	}
	return min(max(n, 1), MaxCount)
}

func parseEnvironment(envStr string) Environment {
	env := Environment(strings.ToLower(envStr))

	switch env {
	case Development, Production:
		return env
	default:
		return Development
	}
}

// calculateDefaultWorkerCount sizes the batch pool from CPU count, capped at
// 6. Machines reporting less than 1GB of memory get a single worker.
func calculateDefaultWorkerCount() int {
	cpuCores := runtime.NumCPU()

	var availableMemoryMB int64 = 4096

	if memInfo, err := os.ReadFile("/proc/meminfo"); err == nil {
		lines := strings.Split(string(memInfo), "\n")
		for _, line := range lines {
			if strings.HasPrefix(line, "MemTotal:") {
				fields := strings.Fields(line)
				if len(fields) >= 2 {
					if kb, err := strconv.ParseInt(fields[1], 10, 64); err == nil {
						availableMemoryMB = kb / 1024
						break
					}
				}
			}
		}
	}

	if availableMemoryMB < 1024 {
		return 1
	}

	return min(max(cpuCores, 1), 6)
}

func getLogLevel(env Environment) string {
	if env == Production {
		return getEnv("APP_LOG_LEVEL", "info")
	}

	return getEnv("APP_LOG_LEVEL", "debug")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value == "true" {
		return true
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
