package config

import "os"

// Config carries everything read from the environment at startup.
// A .env file, if present, is loaded by main before this runs.
type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string

	RedisAddr string

	KafkaBrokers string
	KafkaTopic   string

	StripeSecretKey     string
	StripeWebhookSecret string
}

func Load() Config {
	return Config{
		Addr:                getenv("GROCER_ADDR", ":8080"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		KafkaBrokers:        os.Getenv("KAFKA_BROKERS"),
		KafkaTopic:          getenv("KAFKA_TOPIC", "grocer-events"),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
