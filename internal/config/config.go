package config

import "os"

// Config carries all environment-supplied settings.
type Config struct {
	MongoURI      string
	MongoDatabase string
	RedisAddr     string
	HTTPPort      string

	JWTSecret     string
	SessionCookie string

	// Static admin identity; when AdminPasswordHash is empty the server
	// falls back to the users collection instead.
	AdminEmail        string
	AdminName         string
	AdminPasswordHash string

	// Legacy static key for the x-api-key header. Empty disables the
	// strategy.
	AdminAPIKey string

	DataDir            string
	CORSAllowedOrigins string
}

// Load reads configuration from the environment with defaults suitable
// for local development.
func Load() *Config {
	return &Config{
		MongoURI:           getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:      getEnv("MONGO_DATABASE", "labsite"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		JWTSecret:          getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		SessionCookie:      getEnv("SESSION_COOKIE", "labsite_session"),
		AdminEmail:         getEnv("ADMIN_EMAIL", ""),
		AdminName:          getEnv("ADMIN_NAME", "Admin User"),
		AdminPasswordHash:  getEnv("ADMIN_PASSWORD_HASH", ""),
		AdminAPIKey:        getEnv("ADMIN_API_KEY", ""),
		DataDir:            getEnv("DATA_DIR", "data"),
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
