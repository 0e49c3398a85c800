package main

import (
	"log"
	"os"

	"Attendance/FiberConfig"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	setupLogging()
	FiberConfig.FiberConfig()
}

func setupLogging() {
	// Create logs directory if it doesn't exist
	if err := os.MkdirAll("logs", 0755); err != nil {
		log.Printf("Error creating logs directory: %v\n", err)
		return
	}

	// Set up main application log file
	logFile, err := os.OpenFile("logs/application.log",
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)

	if err != nil {
		log.Printf("Error opening log file: %v\n", err)
		return
	}

	// Redirect log output to the file
	log.SetOutput(logFile)
	log.SetFlags(log.Ldate | log.Ltime)
}
