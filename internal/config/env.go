package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// loadDotenv reads a .env file from the working directory once per process.
// A missing file is not an error; real environment variables always win.
func loadDotenv() {
	dotenvOnce.Do(func() {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Printf("config: ignoring .env: %v", err)
		}
	})
}

// parseEnv fills target from environment variables using its env tags.
func parseEnv(target any) error {
	loadDotenv()
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// mustParse is parseEnv for startup code: a bad value stops the process.
func mustParse(target any) {
	if err := parseEnv(target); err != nil {
		log.Fatalf("config: %v", err)
	}
}
