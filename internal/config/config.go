package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type StorageConfig struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	AccessKeySecret string
	NotesBucket     string
	UploadsBucket   string
}

type AIConfig struct {
	Provider      string // "gemini" or "whisper"
	GeminiApiKey  string
	GeminiModel   string
	OpenAiApiKey  string
	OpenAiBaseUrl string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Storage: StorageConfig{
			Endpoint:        getEnv("OSS_ENDPOINT", ""),
			Region:          getEnv("OSS_REGION", ""),
			AccessKeyID:     getEnv("OSS_ACCESS_KEY_ID", ""),
			AccessKeySecret: getEnv("OSS_ACCESS_KEY_SECRET", ""),
			NotesBucket:     getEnv("OSS_NOTES_BUCKET", "notes"),
			UploadsBucket:   getEnv("OSS_UPLOADS_BUCKET", "audio-uploads"),
		},
		Ai: AIConfig{
			Provider:      getEnv("AI_PROVIDER", "gemini"),
			GeminiApiKey:  getEnv("GOOGLE_GEMINI_API_KEY", ""),
			GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			OpenAiApiKey:  getEnv("OPENAI_API_KEY", ""),
			OpenAiBaseUrl: getEnv("OPENAI_BASE_URL", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
