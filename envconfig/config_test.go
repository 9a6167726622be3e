// config_test.go - Tests fuer die Environment-Konfiguration
package envconfig

import (
	"log/slog"
	"testing"
)

func TestHost(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  string
	}{
		{"Default", "", "http://127.0.0.1:9280"},
		{"Nur Port", "127.0.0.1:8080", "http://127.0.0.1:8080"},
		{"Nur Host", "0.0.0.0", "http://0.0.0.0:9280"},
		{"Mit Schema", "http://example.com", "http://example.com:80"},
		{"HTTPS", "https://example.com", "https://example.com:443"},
		{"Ungueltiger Port faellt auf Default", "127.0.0.1:99999", "http://127.0.0.1:9280"},
		{"Mit Quotes", `"127.0.0.1:8080"`, "http://127.0.0.1:8080"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("VISIOND_HOST", tc.value)
			if got := Host().String(); got != tc.want {
				t.Errorf("Host() = %q, erwartet %q", got, tc.want)
			}
		})
	}
}

func TestBackend(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  string
	}{
		{"Default", "", "http://127.0.0.1:8000"},
		{"Ohne Schema", "vllm.internal:8000", "http://vllm.internal:8000"},
		{"Mit Schema", "https://vllm.internal:8443", "https://vllm.internal:8443"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("VISIOND_BACKEND", tc.value)
			if got := Backend().String(); got != tc.want {
				t.Errorf("Backend() = %q, erwartet %q", got, tc.want)
			}
		})
	}
}

func TestModel(t *testing.T) {
	t.Setenv("VISIOND_MODEL", "")
	if got := Model(); got != "Qwen/Qwen3-VL-235B-A22B-Instruct" {
		t.Errorf("Model() = %q, erwartet Default", got)
	}

	t.Setenv("VISIOND_MODEL", "my/model")
	if got := Model(); got != "my/model" {
		t.Errorf("Model() = %q, erwartet my/model", got)
	}
}

func TestLogLevel(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  slog.Level
	}{
		{"Default Info", "", slog.LevelInfo},
		{"Debug via true", "true", slog.LevelDebug},
		{"Debug via 1", "1", slog.LevelDebug},
		{"Trace via 2", "2", slog.Level(-8)},
		{"Explizit aus", "0", slog.LevelInfo},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("VISIOND_DEBUG", tc.value)
			if got := LogLevel(); got != tc.want {
				t.Errorf("LogLevel() = %v, erwartet %v", got, tc.want)
			}
		})
	}
}

func TestVar(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  string
	}{
		{"Leerzeichen getrimmt", "  wert  ", "wert"},
		{"Doppelte Quotes entfernt", `"wert"`, "wert"},
		{"Einfache Quotes entfernt", "'wert'", "wert"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("VISIOND_TEST", tc.value)
			if got := Var("VISIOND_TEST"); got != tc.want {
				t.Errorf("Var() = %q, erwartet %q", got, tc.want)
			}
		})
	}
}

func TestAsMapVollstaendig(t *testing.T) {
	vars := AsMap()
	for _, name := range []string{"VISIOND_DEBUG", "VISIOND_HOST", "VISIOND_ORIGINS", "VISIOND_BACKEND", "VISIOND_MODEL", "VISIOND_TMPDIR"} {
		if _, ok := vars[name]; !ok {
			t.Errorf("AsMap() enthaelt %s nicht", name)
		}
	}
}
