// config_utils.go - Utility-Funktionen und Export fuer Konfiguration
//
// Dieses Modul enthaelt:
// - EnvVar: Struktur fuer Environment-Variablen-Info
// - AsMap: Gibt alle Konfigurationen als Map zurueck
// - Values: Gibt alle Konfigurationswerte als String-Map zurueck
package envconfig

import (
	"fmt"
	"slices"
)

// EnvVar repraesentiert eine Environment-Variable mit Metadaten
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap gibt alle Konfigurationen als Map zurueck
// Enthaelt Namen, aktuelle Werte und Beschreibungen
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"VISIOND_DEBUG":   {"VISIOND_DEBUG", LogLevel(), "Show additional debug information (e.g. VISIOND_DEBUG=1)"},
		"VISIOND_HOST":    {"VISIOND_HOST", Host(), "IP Address for the visiond server (default 127.0.0.1:9280)"},
		"VISIOND_ORIGINS": {"VISIOND_ORIGINS", AllowedOrigins(), "A comma separated list of allowed origins"},
		"VISIOND_BACKEND": {"VISIOND_BACKEND", Backend(), "URL of the generation backend (default http://127.0.0.1:8000)"},
		"VISIOND_MODEL":   {"VISIOND_MODEL", Model(), "Name of the served vision-language model"},
		"VISIOND_TMPDIR":  {"VISIOND_TMPDIR", TempDir(), "Directory for staged media files"},
	}
}

// Values gibt alle Konfigurationswerte als String-Map zurueck
// Verwendet fuer das Startup-Logging
func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}

// EnvVars gibt alle Environment-Variablen sortiert zurueck
// Verwendet fuer die CLI-Hilfe
func EnvVars() []EnvVar {
	vars := AsMap()

	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	slices.Sort(names)

	sorted := make([]EnvVar, 0, len(names))
	for _, name := range names {
		sorted = append(sorted, vars[name])
	}
	return sorted
}
