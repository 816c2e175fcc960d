package configs

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver  string
	DBSource  string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration

	// Dev toggle: include the generated provisional password in user-creation
	// responses instead of only logging it.
	ReturnProvisional bool
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	return &Config{
		DBDriver:          getEnv("DB_DRIVER", "sqlite"),
		DBSource:          getEnv("DB_SOURCE", "kolder.db"),
		Port:              getEnv("PORT", "8000"),
		JWTSecret:         JWTSecret(),
		JWTTTL:            time.Duration(7*24) * time.Hour,
		ReturnProvisional: getEnv("RETURN_PROVISIONAL_IN_RESPONSE", "") == "1",
	}
}

// JWTSecret reads the signing secret straight from the environment so the
// auth middleware does not reload the whole config per request.
func JWTSecret() string {
	return getEnv("JWT_SECRET", "changeme")
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func MustGetEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok {
		log.Fatalf("missing env: %s", key)
	}
	return v
}
