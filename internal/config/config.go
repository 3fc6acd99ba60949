package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	JWTSecret   string
	MongoURI    string
	DBName      string
	PriceDSN    string // Postgres DSN for the price history source; empty disables it
	SkipAuth    bool
	Environment string
	AppId       string

	// Completeness heuristic for picking the "latest" submission.
	// Policy knobs, not fixed constants.
	CompleteMinFields int
	TotalFieldAlias   string
	TotalFieldKeys    []string

	// Template name availability check delay (policy parameter, not a timer).
	NameCheckDelayMs int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	return &Config{
		Port:              getEnv("PORT", "8080"),
		JWTSecret:         getEnv("JWT_SECRET", "secret"),
		MongoURI:          getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:            getEnv("DB_NAME", "go-assetreport"),
		PriceDSN:          getEnv("PRICE_DSN", ""),
		SkipAuth:          getEnv("SKIP_AUTH", "false") == "true",
		Environment:       getEnv("ENVIRONMENT", "development"),
		AppId:             getEnv("APP_ID", "go-assetreport"),
		CompleteMinFields: getEnvInt("COMPLETE_MIN_FIELDS", 5),
		TotalFieldAlias:   getEnv("TOTAL_FIELD_ALIAS", "field_13"),
		TotalFieldKeys:    getEnvList("TOTAL_FIELD_KEYS", "total,ending,balance"),
		NameCheckDelayMs:  getEnvInt("NAME_CHECK_DELAY_MS", 300),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvList(key, fallback string) []string {
	var out []string
	for _, p := range strings.Split(getEnv(key, fallback), ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
