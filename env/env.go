package env

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Load loads environment variables from the given .env files (".env" when
// none is given). Variables already set in the process win.
func Load(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		log.Printf("No .env file found")
	}
}

// StringVariable returns the value of an environment variable or a default value
func StringVariable(name, defaultValue string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return defaultValue
}

// FloatVariable returns the value of an environment variable as float64, or
// defaultValue when unset.
func FloatVariable(name string, defaultValue float64) (float64, error) {
	value := os.Getenv(name)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be a number, got: %s", name, value)
	}
	return f, nil
}
