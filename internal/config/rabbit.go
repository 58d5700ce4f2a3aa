package config

// RabbitConfig configures activity notifications.  An empty URL disables
// publishing in the API server.
type RabbitConfig struct {
	URL      string `env:"RABBITMQ_URL"`
	Exchange string `env:"ACTIVITY_EXCHANGE" envDefault:"movienight.activity"`
	Queue    string `env:"ACTIVITY_QUEUE" envDefault:"movienight.activity.log"`
	LogPath  string `env:"ACTIVITY_LOG_PATH" envDefault:"logs/activity.log"`
}

func LoadRabbitConfig() RabbitConfig {
	var cfg RabbitConfig
	mustParse(&cfg)
	return cfg
}
