// config.go - Haupt-Konfigurationsfunktionen fuer visiond
//
// Dieses Modul enthaelt:
// - Host: Gibt Scheme und Host des API-Servers zurueck (VISIOND_HOST)
// - AllowedOrigins: Gibt erlaubte Origins zurueck (VISIOND_ORIGINS)
// - Backend: Gibt die URL des Generation-Backends zurueck (VISIOND_BACKEND)
// - Model: Gibt den Modellnamen zurueck (VISIOND_MODEL)
// - TempDir: Gibt das Verzeichnis fuer gestagte Medien zurueck (VISIOND_TMPDIR)
// - LogLevel: Gibt das Log-Level zurueck (VISIOND_DEBUG)
//
// Utility-Funktionen und AsMap/Values sind in config_utils.go ausgelagert.
package envconfig

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Host gibt Scheme und Host des API-Servers zurueck
// Konfigurierbar via VISIOND_HOST
// Default: http://127.0.0.1:9280
func Host() *url.URL {
	defaultPort := "9280"

	s := strings.TrimSpace(Var("VISIOND_HOST"))
	scheme, hostport, ok := strings.Cut(s, "://")
	switch {
	case !ok:
		scheme, hostport = "http", s
	case scheme == "http":
		defaultPort = "80"
	case scheme == "https":
		defaultPort = "443"
	}

	hostport, path, _ := strings.Cut(hostport, "/")
	host, port, err := net.SplitHostPort(hostport)
	if err != nil {
		host, port = "127.0.0.1", defaultPort
		if ip := net.ParseIP(strings.Trim(hostport, "[]")); ip != nil {
			host = ip.String()
		} else if hostport != "" {
			host = hostport
		}
	}

	if n, err := strconv.ParseInt(port, 10, 32); err != nil || n > 65535 || n < 0 {
		slog.Warn("invalid port, using default", "port", port, "default", defaultPort)
		port = defaultPort
	}

	return &url.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(host, port),
		Path:   path,
	}
}

// AllowedOrigins gibt erlaubte Origins zurueck
// Konfigurierbar via VISIOND_ORIGINS (komma-separiert)
// Enthaelt Standard-Origins fuer localhost
func AllowedOrigins() (origins []string) {
	if s := Var("VISIOND_ORIGINS"); s != "" {
		origins = strings.Split(s, ",")
	}

	// Standard-Origins fuer localhost
	for _, origin := range []string{"localhost", "127.0.0.1", "0.0.0.0"} {
		origins = append(origins,
			fmt.Sprintf("http://%s", origin),
			fmt.Sprintf("https://%s", origin),
			fmt.Sprintf("http://%s", net.JoinHostPort(origin, "*")),
			fmt.Sprintf("https://%s", net.JoinHostPort(origin, "*")),
		)
	}

	// App-Protokolle
	origins = append(origins,
		"app://*",
		"file://*",
		"vscode-webview://*",
		"vscode-file://*",
	)

	return origins
}

// Backend gibt die URL des Generation-Backends zurueck
// Konfigurierbar via VISIOND_BACKEND
// Default: http://127.0.0.1:8000 (lokaler vLLM-Server)
func Backend() *url.URL {
	s := strings.TrimSpace(Var("VISIOND_BACKEND"))
	if s == "" {
		return &url.URL{Scheme: "http", Host: "127.0.0.1:8000"}
	}

	if !strings.Contains(s, "://") {
		s = "http://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		slog.Warn("invalid backend url, using default", "url", s, "error", err)
		return &url.URL{Scheme: "http", Host: "127.0.0.1:8000"}
	}

	return u
}

// Model gibt den Namen des bedienten Vision-Language-Modells zurueck
// Konfigurierbar via VISIOND_MODEL
// Default: Qwen/Qwen3-VL-235B-A22B-Instruct
func Model() string {
	if s := Var("VISIOND_MODEL"); s != "" {
		return s
	}

	return "Qwen/Qwen3-VL-235B-A22B-Instruct"
}

// TempDir gibt das Verzeichnis fuer gestagte Video-Daten zurueck
// Konfigurierbar via VISIOND_TMPDIR
// Default: $TMPDIR/visiond
func TempDir() string {
	if s := Var("VISIOND_TMPDIR"); s != "" {
		return s
	}

	return filepath.Join(os.TempDir(), "visiond")
}

// LogLevel gibt das Log-Level zurueck
// Konfigurierbar via VISIOND_DEBUG
// Werte: 0/false = INFO (Default), 1/true = DEBUG, 2 = TRACE
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("VISIOND_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}

	return level
}

// Var gibt eine Environment-Variable zurueck
// Entfernt fuehrende/trailing Quotes und Leerzeichen
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}
