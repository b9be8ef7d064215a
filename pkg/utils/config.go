package utils

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type AuthConfig struct {
	JWTSecret   string
	JWTIssuer   string
	JWTDuration time.Duration
}

func LoadAuthConfig() AuthConfig {
	secret := os.Getenv("COVERHUB_JWT_SECRET")
	if secret == "" {
		// dev default (change for production)
		secret = "dev-secret-change-me"
	}

	issuer := os.Getenv("COVERHUB_JWT_ISSUER")
	if issuer == "" {
		issuer = "coverhub"
	}

	return AuthConfig{
		JWTSecret:   secret,
		JWTIssuer:   issuer,
		JWTDuration: hoursFromEnv("COVERHUB_JWT_TTL_HOURS", 24*time.Hour),
	}
}

type ServerConfig struct {
	Addr string
	// SiteDir is the built static site served under "/". Empty disables it.
	SiteDir string
	// CoverElementID is the id of the element that receives the cover.
	CoverElementID string
}

func LoadServerConfig() ServerConfig {
	return ServerConfig{
		Addr:           envOr("COVERHUB_HTTP_ADDR", ":8080"),
		SiteDir:        strings.TrimSpace(os.Getenv("COVERHUB_SITE_DIR")),
		CoverElementID: envOr("COVERHUB_COVER_ELEMENT_ID", "cover"),
	}
}

type GrpcConfig struct {
	Addr string
}

func LoadGrpcConfig() GrpcConfig {
	return GrpcConfig{Addr: envOr("COVERHUB_GRPC_ADDR", ":9090")}
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// hoursFromEnv parses a whole number of hours; bad or non-positive values
// fall back to def.
func hoursFromEnv(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return time.Duration(n) * time.Hour
}
