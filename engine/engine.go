// MODUL: engine
// ZWECK: Schnittstelle zum Generation-Backend und expliziter Ready-Zustand
// INPUT: Kanonische Messages plus Generierungsparameter
// OUTPUT: Generierter Text (blockierend oder als Delta-Stream)
// NEBENEFFEKTE: Keine (Implementierungen in vllm.go)
// ABHAENGIGKEITEN: message (intern)
// HINWEISE: Der Handle modelliert Uninitialized|Ready als getaggte Variante
// statt eines ad-hoc geprueften Null-Globals

package engine

import (
	"context"
	"errors"

	"github.com/visiond/visiond/message"
)

// ErrNotReady wird zurueckgegeben, solange kein Backend initialisiert ist.
var ErrNotReady = errors.New("inference engine not initialized")

// Options sind die Generierungsparameter eines einzelnen Aufrufs.
// Sie werden unveraendert an das Backend durchgereicht.
type Options struct {
	// MaxTokens ist die maximale Anzahl generierter Tokens (>= 1)
	MaxTokens int

	// Temperature ist die Sampling-Temperatur (>= 0)
	Temperature float64

	// TopP ist der Nucleus-Sampling-Parameter (0-1)
	TopP float64

	// Seed macht die Generierung reproduzierbar; nil wird im Backend auf
	// den festen Seed 0 abgebildet
	Seed *int
}

// StreamFunc empfaengt Text-Deltas in Emissionsreihenfolge. Der vollstaendige
// Text ist die Konkatenation aller Deltas. Ein Fehler bricht den Stream ab.
type StreamFunc func(delta string) error

// Engine ist die Schnittstelle zum Generation-Backend.
type Engine interface {
	// Generate fuehrt die kanonische Message blockierend aus
	Generate(ctx context.Context, messages []message.Message, opts Options) (string, error)

	// GenerateStream liefert den generierten Text als praefix-erweiternde
	// Deltas in Ankunftsreihenfolge
	GenerateStream(ctx context.Context, messages []message.Message, opts Options, fn StreamFunc) error

	// Ready gibt an, ob das Backend Anfragen annehmen kann
	Ready() bool
}

// Handle haelt den Backend-Zustand: Uninitialized (kein Engine) oder
// Ready (Engine gesetzt). Der Handle wird einmal beim Start befuellt und
// danach nur noch gelesen.
type Handle struct {
	engine Engine
}

// NewHandle erstellt einen uninitialisierten Handle.
func NewHandle() *Handle {
	return &Handle{}
}

// NewReadyHandle erstellt einen Handle im Ready-Zustand.
func NewReadyHandle(e Engine) *Handle {
	return &Handle{engine: e}
}

// Set setzt die Engine und ueberfuehrt den Handle in den Ready-Zustand.
// Wird genau einmal beim Prozess-Start aufgerufen.
func (h *Handle) Set(e Engine) {
	h.engine = e
}

// Engine gibt die Engine zurueck oder ErrNotReady im
// Uninitialized-Zustand.
func (h *Handle) Engine() (Engine, error) {
	if h == nil || h.engine == nil {
		return nil, ErrNotReady
	}
	return h.engine, nil
}

// Ready gibt an, ob eine initialisierte und bereite Engine vorliegt.
func (h *Handle) Ready() bool {
	if h == nil || h.engine == nil {
		return false
	}
	return h.engine.Ready()
}
