package config

import (
	"fmt"
	"os"
	"strconv"
)

// FromEnv applies environment overrides on top of cfg.
// Falls back to the given values when variables are not set.
func FromEnv(cfg Config) Config {
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		cfg.DB.Driver = driver
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		cfg.DB.DSN = dsn
	}
	if val := getEnvInt("WS_SEND_BUFFER"); val > 0 {
		cfg.WS.SendBuffer = val
	}
	if val := getEnvInt("WS_BROADCAST_BUFFER"); val > 0 {
		cfg.WS.BroadcastBuffer = val
	}

	// DB_HOST and friends select postgres with a composed DSN.
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.DB.Driver = "postgres"
		cfg.DB.DSN = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host,
			os.Getenv("DB_PORT"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"))
	}

	return cfg
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}
