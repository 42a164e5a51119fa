package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config collects everything the process reads from the environment.
type Config struct {
	MongoURI      string
	MongoDatabase string
	APIPort       string
	JWTSecret     string
	CORSOrigin    string

	SMTPHost  string
	SMTPPort  int
	EmailUser string
	EmailPass string

	RedisAddr string

	AppEnv string
}

// Load reads .env (if present) and the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}

	cfg := Config{
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "docspot"),
		APIPort:       getEnv("API_PORT", "8000"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		CORSOrigin:    getEnv("CORS_ORIGIN", "http://localhost:5173"),
		SMTPHost:      getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      getEnvInt("SMTP_PORT", 587),
		EmailUser:     os.Getenv("EMAIL_USER"),
		EmailPass:     os.Getenv("EMAIL_PASS"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		AppEnv:        getEnv("APP_ENV", "development"),
	}

	if cfg.JWTSecret == "" {
		log.Println("JWT_SECRET is NOT SET.")
	}
	return cfg
}

// Production reports whether cookies should be marked Secure.
func (c Config) Production() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
