package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ScorerLexical  = "lexical"
	ScorerSemantic = "semantic"
	ScorerVector   = "vector"
)

type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Scoring  ScoringConfig
	Database DatabaseConfig
	Qdrant   QdrantConfig
	Gemini   GeminiConfig
	Storage  StorageConfig
	Session  SessionConfig
	JobsFile string
}

type ServerConfig struct {
	Port string
	Env  string
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

type ScoringConfig struct {
	Scorer     string
	RandomSeed uint64
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
	VectorSize uint64
}

type GeminiConfig struct {
	APIKey     string
	EmbedModel string
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
	KeepUploads bool
}

type SessionConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Log: LogConfig{
			JSON:  getEnvAsBool("LOG_JSON", false),
			Debug: getEnvAsBool("LOG_DEBUG", false),
		},
		Scoring: ScoringConfig{
			Scorer:     strings.ToLower(getEnv("SCORER", ScorerLexical)),
			RandomSeed: getEnvAsUint64("RANDOM_SEED", 0),
		},
		Database: DatabaseConfig{
			Enabled:  getEnvAsBool("ARCHIVE_ENABLED", false),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "agentic_recruiter"),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", "http://localhost:6333"),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "recruiter_jobs"),
			VectorSize: getEnvAsUint64("QDRANT_VECTOR_SIZE", 768),
		},
		Gemini: GeminiConfig{
			APIKey:     getEnv("GEMINI_API_KEY", ""),
			EmbedModel: getEnv("GEMINI_EMBED_MODEL", "text-embedding-004"),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
			KeepUploads: getEnvAsBool("KEEP_UPLOADS", false),
		},
		Session: SessionConfig{
			TTL:           getEnvAsDuration("SESSION_TTL", "2h"),
			SweepInterval: getEnvAsDuration("SESSION_SWEEP_INTERVAL", "1m"),
		},
		JobsFile: getEnv("JOBS_FILE", ""),
	}
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	switch c.Scoring.Scorer {
	case ScorerLexical:
	case ScorerSemantic, ScorerVector:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for the %s scorer", c.Scoring.Scorer)
		}
	default:
		return fmt.Errorf("unknown scorer %q", c.Scoring.Scorer)
	}
	return nil
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsUint64(key string, defaultValue uint64) uint64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseUint(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
