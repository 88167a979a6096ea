package configs

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type ENV struct {
	Port         string
	AppEnv       string
	JWTSecret    string
	JWTExpiresIn string
	UploadDir    string
	DBHost       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBPort       string
}

func LoadEnv() ENV {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found")
	}

	env := ENV{
		Port:         os.Getenv("PORT"),
		AppEnv:       os.Getenv("APP_ENV"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWTExpiresIn: os.Getenv("JWT_EXPIRES_IN"),
		UploadDir:    os.Getenv("UPLOAD_DIR"),
		DBHost:       os.Getenv("DB_HOST"),
		DBUser:       os.Getenv("DB_USER"),
		DBPassword:   os.Getenv("DB_PASSWORD"),
		DBName:       os.Getenv("DB_NAME"),
		DBPort:       os.Getenv("DB_PORT"),
	}

	if env.Port == "" {
		env.Port = "5000"
	}
	if env.UploadDir == "" {
		env.UploadDir = "uploads"
	}
	if env.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET not set, using development default")
		env.JWTSecret = "dev-secret-do-not-use-in-production"
	}

	return env
}

func (e ENV) Production() bool {
	return e.AppEnv == "production"
}

// JWTExpiry parses JWT_EXPIRES_IN as a Go duration, defaulting to 24h.
func (e ENV) JWTExpiry() time.Duration {
	if e.JWTExpiresIn == "" {
		return 24 * time.Hour
	}
	d, err := time.ParseDuration(e.JWTExpiresIn)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN %q, using 24h", e.JWTExpiresIn)
		return 24 * time.Hour
	}
	return d
}

// UseDatabase reports whether a MySQL connection is configured; without one
// the service runs on the in-memory store.
func (e ENV) UseDatabase() bool {
	return e.DBHost != ""
}
