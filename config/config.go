package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("MELODIX_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("MELODIX_DEBUG") == "true"
}

func GetListen() string {
	return os.Getenv("MELODIX_LISTEN")
}

func GetPort() int {
	port, err := strconv.Atoi(os.Getenv("MELODIX_PORT"))
	if err != nil || port <= 0 {
		return 8080
	}
	return port
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("MELODIX_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "data"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("MELODIX_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "/var/log"
	}
	return logFolderPath
}

// GetJWTSecret returns the token signing secret. Empty means the caller
// should generate an ephemeral one for this process.
func GetJWTSecret() string {
	return os.Getenv("MELODIX_JWT_SECRET")
}

func GetTokenLifetime() time.Duration {
	hours, err := strconv.Atoi(os.Getenv("MELODIX_TOKEN_LIFETIME_HOURS"))
	if err != nil || hours <= 0 {
		return 72 * time.Hour
	}
	return time.Duration(hours) * time.Hour
}

func GetAdminEmail() string {
	email := os.Getenv("MELODIX_ADMIN_EMAIL")
	if email == "" {
		email = "admin@melodix.local"
	}
	return email
}

func GetAdminPassword() string {
	password := os.Getenv("MELODIX_ADMIN_PASSWORD")
	if password == "" {
		password = "admin"
	}
	return password
}
