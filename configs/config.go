package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	ServerAddress        string   `mapstructure:"SERVER_ADDRESS"`
	MetricsServerAddress string   `mapstructure:"METRICS_SERVER_ADDRESS"`
	EnabledChannels      []string `mapstructure:"ENABLED_CHANNELS"`
	ChannelSendTimeoutMs int      `mapstructure:"CHANNEL_SEND_TIMEOUT_MS"`

	EmailAPIKey      string `mapstructure:"EMAIL_API_KEY"`
	EmailAPIURL      string `mapstructure:"EMAIL_API_URL"`
	EmailFromAddress string `mapstructure:"EMAIL_FROM_ADDRESS"`
	EmailFromName    string `mapstructure:"EMAIL_FROM_NAME"`

	SMSAPIKey   string `mapstructure:"SMS_API_KEY"`
	SMSAPIURL   string `mapstructure:"SMS_API_URL"`
	SMSUsername string `mapstructure:"SMS_USERNAME"`
	SMSSenderID string `mapstructure:"SMS_SENDER_ID"`

	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	OtelEndpoint    string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelInsecure    bool   `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`
	OtelServiceName string `mapstructure:"OTEL_SERVICE_NAME"`
}

var cfg *Config

func NewConfig(path string) (*Config, error) {
	relativeUrl, err := GetBasePath(path)
	if err != nil {
		return nil, fmt.Errorf("error getting base path: %v", err)
	}

	vip := viper.New()
	vip.SetConfigType("env")
	vip.SetConfigName(".env")
	vip.AddConfigPath(relativeUrl)
	vip.AutomaticEnv()

	if err := vip.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	vip.BindEnv("SERVER_ADDRESS")
	vip.BindEnv("METRICS_SERVER_ADDRESS")
	vip.BindEnv("ENABLED_CHANNELS")
	vip.BindEnv("CHANNEL_SEND_TIMEOUT_MS")
	vip.BindEnv("EMAIL_API_KEY")
	vip.BindEnv("EMAIL_API_URL")
	vip.BindEnv("EMAIL_FROM_ADDRESS")
	vip.BindEnv("EMAIL_FROM_NAME")
	vip.BindEnv("SMS_API_KEY")
	vip.BindEnv("SMS_API_URL")
	vip.BindEnv("SMS_USERNAME")
	vip.BindEnv("SMS_SENDER_ID")
	vip.BindEnv("FIREBASE_CREDENTIALS_FILE")
	vip.BindEnv("REDIS_ADDR")
	vip.BindEnv("REDIS_PASSWORD")
	vip.BindEnv("REDIS_DB")
	vip.BindEnv("OTEL_EXPORTER_OTLP_ENDPOINT")
	vip.BindEnv("OTEL_EXPORTER_OTLP_INSECURE")
	vip.BindEnv("OTEL_SERVICE_NAME")

	vip.SetDefault("SERVER_ADDRESS", ":8080")
	vip.SetDefault("METRICS_SERVER_ADDRESS", ":9090")
	vip.SetDefault("CHANNEL_SEND_TIMEOUT_MS", 10000)
	vip.SetDefault("EMAIL_API_URL", "https://api.resend.com/emails")
	vip.SetDefault("SMS_API_URL", "https://api.africastalking.com/version1/messaging")
	vip.SetDefault("ENABLED_CHANNELS", []string{"email", "sms", "push"})

	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %v", err)
	}

	return cfg, nil
}

func GetBasePath(path string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(cwd, "go.mod")); err == nil {
			return filepath.Join(cwd, path), nil
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			return "", errors.New("go.mod not found")
		}
		cwd = parent
	}
}

func GetConfig() *Config {
	return cfg
}

// SetTestConfig allows tests to set the global config variable directly.
func SetTestConfig(testCfg *Config) {
	cfg = testCfg
}
