// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек приложения
type Config struct {
	Env                     string        `yaml:"env"`
	StorageConnectionString string        `yaml:"storage_connection_string"`
	IdentityCacheTTL        time.Duration `yaml:"identity_cache_ttl" env-default:"10m"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	SMTP                    `yaml:"smtp"`
	S3                      `yaml:"s3"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// JWTToken структура для работы с jwt-токенами.
// AccessTokenTTL и VerificationTokenTTL задают время жизни токенов
// с назначением "access_token" и "verification_token" соответственно.
type JWTToken struct {
	JWTSecretKey         string        `yaml:"jwt_secret_key"`
	AccessTokenTTL       time.Duration `yaml:"access_token_ttl" env-default:"15m"`
	VerificationTokenTTL time.Duration `yaml:"verification_token_ttl" env-default:"24h"`
}

// SMTP структура для настройки почтового релея
type SMTP struct {
	SMTPHost     string `yaml:"host"`
	SMTPPort     string `yaml:"port"`
	SMTPUser     string `yaml:"user"`
	SMTPPass     string `yaml:"pass"`
	SMTPFrom     string `yaml:"from"`
	SMTPFromName string `yaml:"from_name"`
}

// S3 структура для настройки объектного хранилища аватаров
type S3 struct {
	S3Endpoint      string `yaml:"endpoint"`
	S3Region        string `yaml:"region"`
	S3Bucket        string `yaml:"bucket"`
	S3AccessKey     string `yaml:"access_key"`
	S3SecretKey     string `yaml:"secret_key"`
	S3PublicBaseURL string `yaml:"public_base_url"`
}

// MustLoad загружает конфиг из файла, указанного в CONFIG_PATH.
// Завершает процесс, если файл отсутствует или не парсится.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
