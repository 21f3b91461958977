package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppEnv   string
	Port     string
	Required []string

	DatabaseURL string
	RabbitMQURL string

	ColdLeadDays     int
	ColdLeadInterval time.Duration

	CORSAllowedOrigins []string
	RateLimitPerMinute int

	MailHost string
	MailPort int
	MailUser string
	MailPass string
	MailFrom string

	WhatsAppToken   string
	WhatsAppPhoneID string
	WhatsAppBaseURL string
}

// Load lê a configuração do ambiente. Valores ausentes assumem os padrões;
// valores presentes mas inválidos geram erro.
func Load() (*Config, error) {
	return LoadFrom(os.Getenv)
}

func LoadFrom(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		AppEnv:             getenv("APP_ENV"),
		Port:               withDefault(getenv("PORT"), "8080"),
		Required:           []string{"APP_ENV"},
		DatabaseURL:        getenv("DATABASE_URL"),
		RabbitMQURL:        getenv("RABBITMQ_URL"),
		CORSAllowedOrigins: splitList(withDefault(getenv("CORS_ALLOWED_ORIGINS"), "http://localhost:5173")),
		MailHost:           getenv("MAIL_HOST"),
		MailUser:           getenv("MAIL_USER"),
		MailPass:           getenv("MAIL_PASS"),
		MailFrom:           withDefault(getenv("MAIL_FROM"), "nao-responda@aguia.app"),
		WhatsAppToken:      getenv("WHATSAPP_ACCESS_TOKEN"),
		WhatsAppPhoneID:    getenv("WHATSAPP_PHONE_ID"),
		WhatsAppBaseURL:    getenv("WHATSAPP_BASE_URL"),
	}

	var err error
	if cfg.ColdLeadDays, err = intVar(getenv, "COLD_LEAD_DAYS", 30); err != nil {
		return nil, err
	}
	if cfg.ColdLeadDays < 1 {
		return nil, fmt.Errorf("COLD_LEAD_DAYS deve ser >= 1")
	}
	if cfg.RateLimitPerMinute, err = intVar(getenv, "RATE_LIMIT_RPM", 60); err != nil {
		return nil, err
	}
	if cfg.RateLimitPerMinute < 1 {
		return nil, fmt.Errorf("RATE_LIMIT_RPM deve ser >= 1")
	}
	if cfg.MailPort, err = intVar(getenv, "MAIL_PORT", 587); err != nil {
		return nil, err
	}

	cfg.ColdLeadInterval = time.Hour
	if raw := getenv("COLD_LEAD_INTERVAL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("COLD_LEAD_INTERVAL inválido: %q", raw)
		}
		cfg.ColdLeadInterval = d
	}

	return cfg, nil
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func intVar(getenv func(string) string, name string, def int) (int, error) {
	raw := getenv(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s inválido: %q", name, raw)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
