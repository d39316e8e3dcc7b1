package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	BaseURL     string
	DatabaseDSN string

	KafkaBroker   string
	KafkaTopic    string
	KafkaGroupID  string
	KafkaUsername string
	KafkaPassword string

	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	OtpTTL        time.Duration

	CloudinaryUrl  string
	StripeSecret   string
	StripeCurrency string
	GoogleClientID string

	MailHost     string
	MailPort     string
	MailUser     string
	MailPassword string
	MailFrom     string
	MailFromName string
}

func LoadConfig() Config {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Println("Warning: .env not loaded:", err)
		}
	}

	return Config{
		ServerPort:  getEnv("SERVER_PORT", ":9000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:3000"),
		DatabaseDSN: os.Getenv("DATABASE_DSN"),

		KafkaBroker:   os.Getenv("KAFKA_BROKER"),
		KafkaTopic:    getEnv("KAFKA_TOPIC", "otp-emails"),
		KafkaGroupID:  getEnv("KAFKA_GROUP_ID", "mailer"),
		KafkaUsername: os.Getenv("KAFKA_USERNAME"),
		KafkaPassword: os.Getenv("KAFKA_PASSWORD"),

		AccessSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
		RefreshSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
		AccessTTL:     getEnvDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTTL:    getEnvDuration("REFRESH_TOKEN_TTL", 24*time.Hour),
		OtpTTL:        getEnvDuration("OTP_TTL", 2*time.Minute),

		CloudinaryUrl:  os.Getenv("CLOUDINARY_URL"),
		StripeSecret:   os.Getenv("STRIPE_SECRET_KEY"),
		StripeCurrency: getEnv("STRIPE_CURRENCY", "usd"),
		GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),

		MailHost:     os.Getenv("MAIL_HOST"),
		MailPort:     getEnv("MAIL_PORT", "587"),
		MailUser:     os.Getenv("MAIL_USER"),
		MailPassword: os.Getenv("MAIL_PASSWORD"),
		MailFrom:     os.Getenv("MAIL_FROM"),
		MailFromName: getEnv("MAIL_FROM_NAME", "CourseForge"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Warning: invalid duration for %s, using default: %v", key, err)
		return fallback
	}
	return d
}
