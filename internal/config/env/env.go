package env

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Locations lists the .env files tried, in order, for the given environment name
func Locations(envName string) []string {
	if envName == "" {
		envName = "development"
	}
	return []string{
		filepath.Join("internal", "config", "env", fmt.Sprintf(".env.%s", envName)),
		fmt.Sprintf(".env.%s", envName),
		".env",
	}
}

// LoadEnv loads the first existing .env file for the current ENV.
// Variables already present in the process environment are never overwritten.
// It returns the path that was loaded, or "" when no file exists.
func LoadEnv() (string, error) {
	for _, loc := range Locations(os.Getenv("ENV")) {
		if _, err := os.Stat(loc); err != nil {
			continue
		}
		if err := godotenv.Load(loc); err != nil {
			return "", fmt.Errorf("error loading env file %s: %w", loc, err)
		}
		return loc, nil
	}
	return "", nil
}
