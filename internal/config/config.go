package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Logger     LoggerConfig
	Models     ModelsConfig
	TFServing  TFServingConfig
	Kubernetes KubernetesConfig
	Database   DatabaseConfig
	Content    ContentConfig
	CORS       CORSConfig
	Auth       AuthConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type LoggerConfig struct {
	Level  string
	Format string
}

// ModelsConfig locates the model artifacts loaded at startup.
type ModelsConfig struct {
	SklearnPath string // serialized estimator file
	TFPath      string // SavedModel directory
	MaxFeatures int
}

type TFServingConfig struct {
	URL              string
	ModelName        string
	Timeout          time.Duration
	InferenceService string // KServe InferenceService to resolve the URL from
	Namespace        string
}

type KubernetesConfig struct {
	Enabled        bool
	InCluster      bool
	KubeConfigPath string
	DefaultNS      string
}

type DatabaseConfig struct {
	Enabled         bool
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type ContentConfig struct {
	DefaultLanguage string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type AuthConfig struct {
	BcryptCost int
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 5000)
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")
	v.SetDefault("MODELS_SKLEARN_PATH", "models/sklearn_model.json")
	v.SetDefault("MODELS_TF_PATH", "models/tf_model")
	v.SetDefault("MODELS_MAX_FEATURES", 1024)
	v.SetDefault("TF_SERVING_URL", "http://localhost:8501")
	v.SetDefault("TF_SERVING_MODEL_NAME", "")
	v.SetDefault("TF_SERVING_TIMEOUT", "30s")
	v.SetDefault("TF_SERVING_INFERENCE_SERVICE", "")
	v.SetDefault("TF_SERVING_NAMESPACE", "")
	v.SetDefault("KUBERNETES_ENABLED", false)
	v.SetDefault("KUBERNETES_IN_CLUSTER", false)
	v.SetDefault("KUBERNETES_KUBECONFIG", "")
	v.SetDefault("KUBERNETES_NAMESPACE", "model-serving")
	v.SetDefault("DATABASE_ENABLED", false)
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", 5432)
	v.SetDefault("DATABASE_USER", "postgres")
	v.SetDefault("DATABASE_PASSWORD", "postgres")
	v.SetDefault("DATABASE_NAME", "maternal_care")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 2)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("CONTENT_DEFAULT_LANGUAGE", "en")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("AUTH_BCRYPT_COST", 10)

	// Env
	v.AutomaticEnv()

	// Optional config file; env still wins
	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	tfTimeout, err := time.ParseDuration(v.GetString("TF_SERVING_TIMEOUT"))
	if err != nil {
		tfTimeout = 30 * time.Second
	}

	connLifetime, err := time.ParseDuration(v.GetString("DATABASE_CONN_MAX_LIFETIME"))
	if err != nil {
		connLifetime = 30 * time.Minute
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
		Models: ModelsConfig{
			SklearnPath: v.GetString("MODELS_SKLEARN_PATH"),
			TFPath:      v.GetString("MODELS_TF_PATH"),
			MaxFeatures: v.GetInt("MODELS_MAX_FEATURES"),
		},
		TFServing: TFServingConfig{
			URL:              v.GetString("TF_SERVING_URL"),
			ModelName:        v.GetString("TF_SERVING_MODEL_NAME"),
			Timeout:          tfTimeout,
			InferenceService: v.GetString("TF_SERVING_INFERENCE_SERVICE"),
			Namespace:        v.GetString("TF_SERVING_NAMESPACE"),
		},
		Kubernetes: KubernetesConfig{
			Enabled:        v.GetBool("KUBERNETES_ENABLED"),
			InCluster:      v.GetBool("KUBERNETES_IN_CLUSTER"),
			KubeConfigPath: v.GetString("KUBERNETES_KUBECONFIG"),
			DefaultNS:      v.GetString("KUBERNETES_NAMESPACE"),
		},
		Database: DatabaseConfig{
			Enabled:         v.GetBool("DATABASE_ENABLED"),
			Host:            v.GetString("DATABASE_HOST"),
			Port:            v.GetInt("DATABASE_PORT"),
			User:            v.GetString("DATABASE_USER"),
			Password:        v.GetString("DATABASE_PASSWORD"),
			Name:            v.GetString("DATABASE_NAME"),
			SSLMode:         v.GetString("DATABASE_SSLMODE"),
			MaxOpenConns:    v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DATABASE_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connLifetime,
		},
		Content: ContentConfig{
			DefaultLanguage: v.GetString("CONTENT_DEFAULT_LANGUAGE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Auth: AuthConfig{
			BcryptCost: v.GetInt("AUTH_BCRYPT_COST"),
		},
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
