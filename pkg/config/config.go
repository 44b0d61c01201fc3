package config

import "os"

type Config struct {
	Port          string
	Env           string
	PostgresUrl   string
	MongoURI      string
	JWTSecret     string
	JWTExpiresIn  string
	EncryptionKey string
}

func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		PostgresUrl:   getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:      getEnv("MONGO_URI", ""),
		JWTSecret:     getEnv("JWT_SECRET", "supersecretjwtkey"),
		JWTExpiresIn:  getEnv("JWT_EXPIRES_IN", "48h"),
		EncryptionKey: getEnv("ENCRYPTION_KEY", "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
