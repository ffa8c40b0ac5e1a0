package config

import (
	"os"
	"time"
)

const (
	appNameVar     = "APP_NAME"
	apiBaseURLVar  = "API_BASE_URL"
	dataFolderVar  = "DATA_FOLDER"
	credSecretVar  = "CREDENTIAL_SECRET"
	httpTimeoutVar = "HTTP_TIMEOUT"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Alef Delta")
}

func (EnvVars) GetAPIBaseURL() string {
	return GetEnv(apiBaseURLVar, "http://localhost:8080/api")
}

func (EnvVars) GetDataFolder() string {
	return GetEnv(dataFolderVar, "./data")
}

// GetCredentialSecret returns the secret sealing the durable credential file.
func (EnvVars) GetCredentialSecret() string {
	return GetEnv(credSecretVar, "")
}

func (EnvVars) GetRequestTimeout() time.Duration {
	raw := GetEnv(httpTimeoutVar, "15s")
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
