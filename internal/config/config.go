package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string        `yaml:"env" env:"ENV" env-default:"local"`
	DSN      string        `yaml:"dsn" env:"DSN" env-required:"true"`
	TokenTTL time.Duration `yaml:"token_ttl" env-default:"15m"`
	HTTP     HTTPConfig    `yaml:"http"`
	Auth     AuthConfig    `yaml:"auth"`
	Storage  StorageConfig `yaml:"storage"`
	Redis    RedisConfig   `yaml:"redis"`
	Upload   UploadConfig  `yaml:"upload"`
}

type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

type AuthConfig struct {
	Secret          string        `yaml:"secret" env:"AUTH_SECRET" env-required:"true"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl" env-default:"15m"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" env-default:"168h"`
}

// StorageConfig is the object-storage write endpoint and CDN read host. It is
// validated once at startup and injected where needed; nothing re-reads the
// environment afterwards.
type StorageConfig struct {
	Zone     string `yaml:"zone" env:"BUNNY_NET_STORAGE_ZONE" env-required:"true"`
	APIKey   string `yaml:"api_key" env:"BUNNY_NET_STORAGE_API_KEY" env-required:"true"`
	Endpoint string `yaml:"endpoint" env:"BUNNY_NET_STORAGE_ENDPOINT" env-required:"true"`
	CDNURL   string `yaml:"cdn_url" env:"BUNNY_NET_CDN_URL" env-required:"true"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type UploadConfig struct {
	MaxPhotoSize int64 `yaml:"max_photo_size" env-default:"10485760"`
	MaxVideoSize int64 `yaml:"max_video_size" env-default:"104857600"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
