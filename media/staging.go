// MODUL: staging
// ZWECK: Byte-Store fuer temporaer gestagte Video-Daten
// INPUT: Base64-Payloads oder Upload-Streams
// OUTPUT: Dateipfade auf uuid-benannte Dateien im Staging-Verzeichnis
// NEBENEFFEKTE: Legt Dateien und das Staging-Verzeichnis an
// ABHAENGIGKEITEN: google/uuid, os, io (stdlib)
// HINWEISE: Gestagte Dateien muessen nach dem Backend-Aufruf auf jedem
// Austrittspfad via Remove entfernt werden; Remove maskiert nie das
// urspruengliche Ergebnis

package media

import (
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store staged Medien-Bytes in uuid-benannte Dateien unterhalb von dir.
type Store struct {
	dir string
}

// NewStore erstellt einen Store fuer das angegebene Verzeichnis.
// Das Verzeichnis wird beim ersten Staging angelegt.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// StageVideo dekodiert einen Base64-Video-Payload und schreibt ihn in eine
// temporaere Datei. Ohne Format-Tag wird ein MP4-Container angenommen.
func (s *Store) StageVideo(b64 string) (string, error) {
	// data-URL-Prefix entfernen, falls vorhanden
	if _, rest, ok := strings.Cut(b64, "base64,"); ok {
		b64 = rest
	}

	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", fmt.Errorf("invalid base64 video: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("video_%s.mp4", uuid.New().String()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("stage video: %w", err)
	}

	slog.Debug("video staged", "path", path, "bytes", len(data))
	return path, nil
}

// StageUpload schreibt einen Upload-Stream in eine temporaere Datei.
// name fliesst in den Dateinamen ein, der uuid-Anteil verhindert Kollisionen.
func (s *Store) StageUpload(name string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("%s_%s", uuid.New().String(), filepath.Base(name)))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("stage upload: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("stage upload: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("stage upload: %w", err)
	}

	return path, nil
}

// Remove entfernt eine gestagte Datei. Fehler werden nur geloggt, damit die
// Aufraeumpflicht nie das eigentliche Task-Ergebnis ueberdeckt.
func (s *Store) Remove(path string) {
	if path == "" {
		return
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to remove staged file", "path", path, "error", err)
	}
}
