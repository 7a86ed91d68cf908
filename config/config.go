package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port             string `mapstructure:"port"`
	DocumentDir      string `mapstructure:"document_dir"`
	IndexPath        string `mapstructure:"index_path"`
	AIEndpoint       string `mapstructure:"ai_endpoint"`
	Model            string `mapstructure:"model"`
	OpenRouterAPIKey string `mapstructure:"OPENROUTER_API_KEY"`
	EmbedEndpoint    string `mapstructure:"embed_endpoint"`
	EmbedModel       string `mapstructure:"embed_model"`
	OpenAIAPIKey     string `mapstructure:"OPENAI_API_KEY"`
	MaxChunkSize     int    `mapstructure:"max_chunk_size"`
	OverlapSize      int    `mapstructure:"overlap_size"`
	TopK             int    `mapstructure:"top_k"`
	RedisAddr        string `mapstructure:"redis_addr"`
	RedisDB          int    `mapstructure:"redis_db"`
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set up Viper to read from config file
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetDefault("port", "8080")
	v.SetDefault("document_dir", "data/documents")
	v.SetDefault("index_path", "embeddings/index.gob")
	v.SetDefault("ai_endpoint", "https://openrouter.ai/api/v1")
	v.SetDefault("model", "google/gemma-3-27b-it:free")
	v.SetDefault("embed_endpoint", "https://api.openai.com/v1")
	v.SetDefault("embed_model", "text-embedding-3-small")
	v.SetDefault("max_chunk_size", 800)
	v.SetDefault("overlap_size", 150)
	v.SetDefault("top_k", 4)
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_db", 0)

	// Set up Viper to read from environment variables
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Bind environment variables
	v.BindEnv("OPENROUTER_API_KEY")
	v.BindEnv("OPENAI_API_KEY")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}
