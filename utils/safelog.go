// utils/safelog.go
// Level-filtered logging that masks personal data in production builds.
package utils

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
)

var (
	// IsProduction switches masking on. Development builds log verbatim.
	IsProduction = os.Getenv("ENVIRONMENT") == "production" ||
		os.Getenv("ENV") == "production"

	LogLevel = getLogLevel()
)

const (
	LogLevelDebug = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func getLogLevel() int {
	switch strings.ToUpper(os.Getenv("LOG_LEVEL")) {
	case "DEBUG":
		return LogLevelDebug
	case "WARN", "WARNING":
		return LogLevelWarn
	case "ERROR":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

var (
	emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	// JWTs in URLs or payload dumps: three dot-separated base64url blocks.
	jwtRegex = regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`)

	bearerRegex = regexp.MustCompile(`Bearer\s+[A-Za-z0-9._-]+`)
)

// MaskString hides emails and tokens in a log line when running in
// production mode.
func MaskString(input string) string {
	if !IsProduction {
		return input
	}
	result := emailRegex.ReplaceAllString(input, "***@***.***")
	result = jwtRegex.ReplaceAllString(result, "***.***.***")
	result = bearerRegex.ReplaceAllString(result, "Bearer ***")
	return result
}

// MaskEmail masks an email address in production mode.
func MaskEmail(email string) string {
	if !IsProduction {
		return email
	}
	return "***@***.***"
}

// MaskToken keeps only a short prefix of a token.
func MaskToken(token string) string {
	if !IsProduction {
		return token
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:8] + "..."
}

func Debug(format string, args ...interface{}) {
	if LogLevel > LogLevelDebug {
		return
	}
	log.Printf("[DEBUG] %s", MaskString(fmt.Sprintf(format, args...)))
}

func Info(format string, args ...interface{}) {
	if LogLevel > LogLevelInfo {
		return
	}
	log.Printf("[INFO] %s", MaskString(fmt.Sprintf(format, args...)))
}

func Warn(format string, args ...interface{}) {
	if LogLevel > LogLevelWarn {
		return
	}
	log.Printf("[WARN] %s", MaskString(fmt.Sprintf(format, args...)))
}

func Error(format string, args ...interface{}) {
	log.Printf("[ERROR] %s", MaskString(fmt.Sprintf(format, args...)))
}

// LogAuthAction records a login/logout/refresh outcome without exposing the
// account in production logs.
func LogAuthAction(action, username string, success bool) {
	status := "SUCCESS"
	if !success {
		status = "FAILED"
	}
	if IsProduction {
		log.Printf("[Auth] %s - User: *** Status: %s", action, status)
	} else {
		log.Printf("[Auth] %s - User: %s Status: %s", action, username, status)
	}
}
