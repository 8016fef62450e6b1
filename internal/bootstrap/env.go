package bootstrap

import (
	"log"

	"github.com/joho/godotenv"
)

// Loadenv loads variables from a .env file if one is present.
func Loadenv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
}
