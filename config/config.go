package config

import (
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
)

// Config holds the application configuration and shared clients
type Config struct {
	AppPort   string
	MongoURI  string
	DBName    string
	JWTSecret string
	IsProd    bool

	MongoClient *mongo.Client
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // .env is optional

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "event_manager"
	}

	return &Config{
		AppPort:   port,
		MongoURI:  os.Getenv("MONGO_URI"),
		DBName:    dbName,
		JWTSecret: os.Getenv("JWT_SECRET"),
		IsProd:    os.Getenv("IS_PROD") == "true",
	}
}
