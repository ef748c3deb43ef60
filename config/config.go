package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoadConfig loads configuration from a .env file and config.yaml.
// Environment variables override file values, so BOT_TOKEN can come from
// either place. Missing files are fine; every ledger setting has a default.
func LoadConfig() {
	// Load environment variables from .env if present.
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, skipping.")
	}

	viper.SetConfigName("config") // config file name (without extension)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("bot.dataFile", "data/ledger.json")
	viper.SetDefault("bot.auditDb", "data/audit.db")
	viper.SetDefault("bot.auditRetentionDays", 90)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("No config.yaml found, using environment variables and defaults.")
		} else {
			panic(fmt.Errorf("fatal error parsing config file: %w", err))
		}
	}
}
