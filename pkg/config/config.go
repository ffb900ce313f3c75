package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Backend and engine names accepted by the selector variables
const (
	StoreFile     = "file"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
	StoreMemory   = "memory"

	AudioLocal = "local"
	AudioMinIO = "minio"

	EngineAssemblyAI = "assemblyai"
	EngineWhisper    = "whisper"
	EngineGemini     = "gemini"
	EngineGroq       = "groq"
)

// Config holds application configuration
type Config struct {
	StoreBackend        string `envconfig:"STORE_BACKEND" default:"file" validate:"oneof=file postgres redis memory"`
	AudioBackend        string `envconfig:"AUDIO_BACKEND" default:"local" validate:"oneof=local minio"`
	TranscriptionEngine string `envconfig:"TRANSCRIPTION_ENGINE" default:"assemblyai" validate:"oneof=assemblyai whisper"`
	SummaryEngine       string `envconfig:"SUMMARY_ENGINE" default:"gemini" validate:"oneof=gemini groq"`

	Server     ServerConfig     `envconfig:"SERVER"`
	Log        LogConfig        `envconfig:"LOG"`
	Pipeline   PipelineConfig   `envconfig:"PIPELINE"`
	Database   DatabaseConfig   `envconfig:"DB"`
	Redis      RedisConfig      `envconfig:"REDIS"`
	Storage    StorageConfig    `envconfig:"STORAGE"`
	AssemblyAI AssemblyAIConfig `envconfig:"ASSEMBLYAI"`
	Whisper    WhisperConfig    `envconfig:"WHISPER"`
	Groq       GroqConfig       `envconfig:"GROQ"`
	Gemini     GeminiConfig     `envconfig:"GEMINI"`
	NATS       NATSConfig       `envconfig:"NATS"`
	Auth       AuthConfig       `envconfig:"AUTH"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080" validate:"required"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development" validate:"oneof=development staging production test"`
	Version         string   `envconfig:"VERSION" default:"1.0.0"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"*"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10" validate:"gte=0"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level string `split_words:"true" default:"info" validate:"oneof=debug info warn error"`
}

// PipelineConfig holds upload and on-disk layout settings
type PipelineConfig struct {
	UploadDir         string   `split_words:"true" default:"uploads"`
	DataDir           string   `split_words:"true" default:"data"`
	MaxUploadBytes    int64    `split_words:"true" default:"104857600" validate:"gt=0"`
	AllowedExtensions []string `split_words:"true" default:"wav,mp3,m4a,flac,ogg,webm" validate:"min=1,dive,required"`
	DefaultLanguage   string   `split_words:"true"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string `split_words:"true" default:"localhost"`
	Port        string `split_words:"true" default:"5432"`
	User        string `split_words:"true" default:"postgres"`
	Password    string `split_words:"true" default:"postgres"`
	Name        string `split_words:"true" default:"meeting_summarizer"`
	SSLMode     string `split_words:"true" default:"disable"`
	MaxConns    int    `split_words:"true" default:"25"`
	MinConns    int    `split_words:"true" default:"5"`
	AutoMigrate bool   `split_words:"true" default:"true"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host      string `split_words:"true" default:"localhost"`
	Port      string `split_words:"true" default:"6379"`
	Password  string `split_words:"true"`
	DB        int    `split_words:"true" default:"0"`
	KeyPrefix string `split_words:"true" default:"meetings"`
}

// StorageConfig holds object storage configuration
type StorageConfig struct {
	Endpoint        string `split_words:"true" default:"localhost:9000"`
	AccessKeyID     string `split_words:"true" default:"minioadmin"`
	SecretAccessKey string `split_words:"true" default:"minioadmin"`
	BucketName      string `split_words:"true" default:"meeting-audio"`
	UseSSL          bool   `split_words:"true" default:"false"`
}

// AssemblyAIConfig holds AssemblyAI configuration
type AssemblyAIConfig struct {
	APIKey        string `split_words:"true"`
	BaseURL       string `split_words:"true"`
	SpeakerLabels bool   `split_words:"true" default:"false"`
}

// WhisperConfig holds settings for an OpenAI-compatible transcription API
type WhisperConfig struct {
	APIKey  string        `split_words:"true"`
	BaseURL string        `split_words:"true" default:"https://api.groq.com/openai/v1" validate:"url"`
	Model   string        `split_words:"true" default:"whisper-large-v3"`
	Timeout time.Duration `split_words:"true" default:"10m"`
}

// GroqConfig holds Groq chat-completion configuration
type GroqConfig struct {
	APIKey      string        `split_words:"true"`
	BaseURL     string        `split_words:"true" default:"https://api.groq.com/openai/v1" validate:"url"`
	Model       string        `split_words:"true" default:"llama-3.3-70b-versatile"`
	Temperature float64       `split_words:"true" default:"0.3" validate:"gte=0,lte=2"`
	MaxTokens   int           `split_words:"true" default:"2048" validate:"gt=0"`
	Timeout     time.Duration `split_words:"true" default:"2m"`
}

// GeminiConfig holds Google Gemini configuration
type GeminiConfig struct {
	APIKey string `split_words:"true"`
	Model  string `split_words:"true" default:"gemini-2.0-flash"`
}

// NATSConfig holds stage-event publishing configuration. An empty URL
// disables publishing.
type NATSConfig struct {
	URL           string        `split_words:"true"`
	SubjectPrefix string        `split_words:"true" default:"meetings"`
	Timeout       time.Duration `split_words:"true" default:"10s"`
}

// AuthConfig holds API token configuration. An empty secret disables
// authentication.
type AuthConfig struct {
	JWTSecret   string        `split_words:"true"`
	Issuer      string        `split_words:"true" default:"meeting-summarizer"`
	TokenExpiry time.Duration `split_words:"true" default:"720h"`
}

// Load loads configuration from environment variables, reading the given
// dotenv files first (".env" when none are given)
func Load(envFiles ...string) (*Config, error) {
	// Missing dotenv files are not fatal
	if err := godotenv.Load(envFiles...); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	// GOOGLE_API_KEY is the name the Gemini SDKs document
	if config.Gemini.APIKey == "" {
		config.Gemini.APIKey = os.Getenv("GOOGLE_API_KEY")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	switch c.StoreBackend {
	case StorePostgres:
		if c.Database.Host == "" || c.Database.Name == "" {
			return fmt.Errorf("DB_HOST and DB_NAME are required when STORE_BACKEND=postgres")
		}
	case StoreRedis:
		if c.Redis.Host == "" {
			return fmt.Errorf("REDIS_HOST is required when STORE_BACKEND=redis")
		}
	case StoreFile:
		if c.Pipeline.DataDir == "" {
			return fmt.Errorf("PIPELINE_DATA_DIR is required when STORE_BACKEND=file")
		}
	}

	switch c.AudioBackend {
	case AudioMinIO:
		if c.Storage.Endpoint == "" || c.Storage.BucketName == "" {
			return fmt.Errorf("STORAGE_ENDPOINT and STORAGE_BUCKET_NAME are required when AUDIO_BACKEND=minio")
		}
	case AudioLocal:
		if c.Pipeline.UploadDir == "" {
			return fmt.Errorf("PIPELINE_UPLOAD_DIR is required when AUDIO_BACKEND=local")
		}
	}

	if c.Server.Environment == "production" && c.Auth.JWTSecret == "" {
		log.Printf("Warning: AUTH_JWT_SECRET is empty, the API is served without authentication")
	}

	return nil
}

// AuthEnabled reports whether API tokens are required
func (c *Config) AuthEnabled() bool {
	return c.Auth.JWTSecret != ""
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// GetServerAddr returns the HTTP listen address
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
