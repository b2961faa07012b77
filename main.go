package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	config "github.com/kevin/event-manager-go/config"
	routes "github.com/kevin/event-manager-go/routes"
)

func main() {
	cfg := config.LoadConfig()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	client, err := config.ConnectMongo(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to MongoDB: %v", err)
	}
	cfg.MongoClient = client
	logrus.Infof("MongoDB connected, database %q", cfg.DBName)

	if err := config.EnsureIndexes(cfg); err != nil {
		logrus.Fatalf("failed to create indexes: %v", err)
	}

	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(cors.Default())

	routes.SetupRoutes(r, cfg)

	logrus.Infof("Server running on :%s", cfg.AppPort)
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("server error: %v", err)
	}
}
