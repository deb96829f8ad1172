package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	OpenAI     OpenAIConfig
	Transcript TranscriptConfig
	Logger     LoggerConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Path string
}

type OpenAIConfig struct {
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

type TranscriptConfig struct {
	Language string
	Timeout  time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../configs")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./configs")
	}

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30)
	viper.SetDefault("server.write_timeout", 30)
	viper.SetDefault("database.path", "germanlearning.db")
	viper.SetDefault("openai.model", "gpt-4-turbo")
	viper.SetDefault("openai.temperature", 0.7)
	viper.SetDefault("openai.timeout", 60)
	viper.SetDefault("transcript.language", "de")
	viper.SetDefault("transcript.timeout", 15)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")

	viper.AutomaticEnv()

	// The config file is optional; defaults plus environment variables are
	// enough to run.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		Database: DatabaseConfig{
			Path: viper.GetString("database.path"),
		},
		OpenAI: OpenAIConfig{
			APIKey:      viper.GetString("openai.api_key"),
			Model:       viper.GetString("openai.model"),
			Temperature: viper.GetFloat64("openai.temperature"),
			Timeout:     viper.GetDuration("openai.timeout") * time.Second,
		},
		Transcript: TranscriptConfig{
			Language: viper.GetString("transcript.language"),
			Timeout:  viper.GetDuration("transcript.timeout") * time.Second,
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		config.OpenAI.APIKey = key
	}
	if path := os.Getenv("DATABASE_PATH"); path != "" {
		config.Database.Path = path
	}

	if config.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set; configure it via environment or config file")
	}

	return config, nil
}
