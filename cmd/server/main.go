package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/agenthands/tensorgraph/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using defaults")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := server.NewServer()
	r := srv.SetupRouter()

	logrus.WithField("port", port).Info("starting server")
	if err := r.Run(":" + port); err != nil {
		logrus.Fatal(err)
	}
}
