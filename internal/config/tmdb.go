package config

import "time"

// TMDBConfig configures the external movie lookup.  An empty APIKey leaves
// the lookup endpoints answering 502.
type TMDBConfig struct {
	APIKey       string        `env:"TMDB_API_KEY"`
	BaseURL      string        `env:"TMDB_BASE_URL" envDefault:"https://api.themoviedb.org/3"`
	Language     string        `env:"TMDB_LANGUAGE" envDefault:"fr-FR"`
	Timeout      time.Duration `env:"TMDB_TIMEOUT" envDefault:"5s"`
	KeywordsFile string        `env:"TMDB_KEYWORDS_FILE"` // optional TOML override of the built-in table
}

func LoadTMDBConfig() TMDBConfig {
	var cfg TMDBConfig
	mustParse(&cfg)
	return cfg
}
