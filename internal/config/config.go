// Package config предоставялет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"DATABASE_URL" env-required:"true"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	HTTPServer              `yaml:"http_server"`
	RedisConnection         `yaml:"redis_connection"`
	RabbitMQ                `yaml:"rabbitmq"`
	Session                 `yaml:"session"`
	PasswordReset           `yaml:"password_reset"`
	Upload                  `yaml:"upload"`
	Admin                   `yaml:"admin"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	RedisAddress     string        `yaml:"address" env:"REDIS_ADDRESS" env-default:"localhost:6379"`
	RedisPassword    string        `yaml:"password" env:"REDIS_PASSWORD"`
	RedisUser        string        `yaml:"user" env:"REDIS_USER"`
	RedisDB          int           `yaml:"db" env:"REDIS_DB"`
	RedisMaxRetries  int           `yaml:"max_retries" env:"REDIS_MAX_RETRIES"`
	RedisDialTimeout time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT"`
	RedisTimeout     time.Duration `yaml:"timeout" env:"REDIS_TIMEOUT"`
}

// RabbitMQ настройки брокера для публикации событий аккаунтов.
// Пустой URL отключает публикацию.
type RabbitMQ struct {
	RabbitURL        string        `yaml:"url" env:"RABBITMQ_URL"`
	RabbitExchange   string        `yaml:"exchange" env:"RABBITMQ_EXCHANGE" env-default:"accounts"`
	RabbitRetries    int           `yaml:"retries" env:"RABBITMQ_RETRIES" env-default:"5"`
	RabbitRetryDelay time.Duration `yaml:"retry_delay" env:"RABBITMQ_RETRY_DELAY" env-default:"2s"`
}

// Session настройки cookie-сессии
type Session struct {
	SecretKey    string        `yaml:"secret_key" env:"SECRET_KEY" env-required:"true"`
	SessionTTL   time.Duration `yaml:"ttl" env:"SESSION_TTL" env-default:"168h"`
	CookieName   string        `yaml:"cookie_name" env:"SESSION_COOKIE_NAME" env-default:"session"`
	CookieSecure bool          `yaml:"secure" env:"SESSION_COOKIE_SECURE"`
}

// PasswordReset время жизни ссылки на сброс пароля
type PasswordReset struct {
	ResetTTL time.Duration `yaml:"ttl" env:"PASSWORD_RESET_TTL" env-default:"1h"`
}

// Upload настройки загрузки документов
type Upload struct {
	UploadFolder     string `yaml:"folder" env:"UPLOAD_FOLDER" env-default:"./uploads"`
	MaxContentLength int64  `yaml:"max_content_length" env:"MAX_CONTENT_LENGTH" env-default:"16777216"`
}

// Admin учётная запись администратора, создаваемая при старте
type Admin struct {
	AdminEmail    string `yaml:"email" env:"ADMIN_EMAIL"`
	AdminUsername string `yaml:"username" env:"ADMIN_USERNAME" env-default:"admin"`
	AdminPassword string `yaml:"password" env:"ADMIN_PASSWORD"`
}

// MustLoad функция для загрузки конфига по пути из CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Load читает конфиг из файла, переменные окружения имеют приоритет.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"MigrationsPath: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"RabbitMQ:\n"+
			"  Exchange: %s\n"+
			"Session:\n"+
			"  TTL: %s\n"+
			"  CookieName: %s\n"+
			"Upload:\n"+
			"  Folder: %s\n",
		c.Env,
		c.MigrationsPath,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.RedisAddress,
		c.RedisDB,
		c.RabbitExchange,
		c.SessionTTL,
		c.CookieName,
		c.UploadFolder,
	)
}
