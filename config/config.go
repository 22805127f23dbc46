package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config представляет конфигурацию приложения
type Config struct {
	Server struct {
		Port int
	}
	DB struct {
		Host     string
		Port     int
		User     string
		Password string
		DBName   string
	}
	SMTP struct {
		Host     string
		Port     int
		Username string
		Password string
		From     string
	}
	Redis struct {
		Addr string
	}
	Billing struct {
		SweepInterval time.Duration // Интервал запуска биллинга
	}
	Rates struct {
		DefaultBaseRate float64 // Ставка по умолчанию, если ЦБ недоступен
	}
	AadharHMACKey   string // Ключ для HMAC-индекса номеров Aadhar
	AadharPublicKey string // Публичный ключ для шифрования номеров Aadhar
}

// NewConfig создает новый экземпляр конфигурации
func NewConfig() (*Config, error) {
	v := viper.New()

	// Значения по умолчанию
	v.SetDefault("server.port", 8080)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.name", "credit_db")
	v.SetDefault("smtp.host", "smtp.gmail.com")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.username", "your-email@gmail.com")
	v.SetDefault("smtp.password", "your-app-password")
	v.SetDefault("smtp.from", "your-email@gmail.com")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("billing.sweep_interval", "24h")
	v.SetDefault("rates.default_base_rate", 16.0)
	v.SetDefault("aadhar.hmac_key", "your-aadhar-hmac-key-here")
	v.SetDefault("aadhar.public_key", "")

	// Переменные окружения: SERVER_PORT, DB_HOST, SMTP_HOST и т.д.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Опциональный файл config.yaml в рабочей директории
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := &Config{}
	cfg.Server.Port = v.GetInt("server.port")
	cfg.DB.Host = v.GetString("db.host")
	cfg.DB.Port = v.GetInt("db.port")
	cfg.DB.User = v.GetString("db.user")
	cfg.DB.Password = v.GetString("db.password")
	cfg.DB.DBName = v.GetString("db.name")
	cfg.SMTP.Host = v.GetString("smtp.host")
	cfg.SMTP.Port = v.GetInt("smtp.port")
	cfg.SMTP.Username = v.GetString("smtp.username")
	cfg.SMTP.Password = v.GetString("smtp.password")
	cfg.SMTP.From = v.GetString("smtp.from")
	cfg.Redis.Addr = v.GetString("redis.addr")
	cfg.Billing.SweepInterval = v.GetDuration("billing.sweep_interval")
	cfg.Rates.DefaultBaseRate = v.GetFloat64("rates.default_base_rate")
	cfg.AadharHMACKey = v.GetString("aadhar.hmac_key")
	cfg.AadharPublicKey = v.GetString("aadhar.public_key")

	return cfg, nil
}
