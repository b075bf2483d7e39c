package config

import (
	"os"
	"strconv"
)

// Config carries process configuration read from the environment
type Config struct {
	MongoURI  string
	MongoDB   string
	RedisAddr string
	Port      string
	UnlockAll bool
	SaveRPS   float64
	SaveBurst int
}

// Load reads configuration from environment variables with development
// defaults
func Load() *Config {
	return &Config{
		MongoURI:  getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:   getEnv("MONGO_DB", "adventcal"),
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		Port:      getEnv("PORT", "8080"),
		UnlockAll: getBool("UNLOCK_ALL_DAYS", false),
		SaveRPS:   getFloat("SAVE_RPS", 1),
		SaveBurst: getInt("SAVE_BURST", 5),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}

func getInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getFloat(key string, defaultVal float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultVal
	}
	return f
}
