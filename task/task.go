// MODUL: task
// ZWECK: Dispatcher - Validierung, Medien-Aufloesung, Prompt- und
// Message-Kompilierung, Backend-Aufruf, Normalisierung, Envelope-Bau
// INPUT: Typisierte Task-Requests
// OUTPUT: api.TaskResponse Envelopes (immer, nie ein propagierter Fehler)
// NEBENEFFEKTE: Backend-Aufrufe, Entfernen gestagter Medien
// ABHAENGIGKEITEN: api, engine, media, message (intern)
// HINWEISE: Jeder Task registriert einen kleinen planner statt einer
// monolithischen Verzweigungskette; task-Dateien: grounding.go, spatial.go,
// video.go, description.go, document.go, ocr.go, comparison.go

package task

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/visiond/visiond/api"
	"github.com/visiond/visiond/engine"
	"github.com/visiond/visiond/media"
	"github.com/visiond/visiond/message"
)

// Dokumentierte Defaults fuer ausgelassene Parameter (Teil des Kontrakts).
const (
	DefaultMaxTokens  = 2048
	DocumentMaxTokens = 4096

	DefaultTemperature = 0.0
	DefaultTopP        = 1.0

	DefaultMinPixels  = 64 * 32 * 32
	DefaultMaxPixels  = 2048 * 32 * 32
	DocumentMinPixels = 512 * 32 * 32
	DocumentMaxPixels = 4608 * 32 * 32
	OCRMinPixels      = 512 * 32 * 32

	DefaultTotalPixels = 20480 * 32 * 32
	DefaultMaxFrames   = 2048
	DefaultSampleFPS   = 2.0

	MinComparisonImages = 2
	MaxComparisonImages = 4
)

// plan ist das kompilierte Ergebnis der Pipeline-Schritte Aufloesung,
// Prompt-Wahl und Message-Kompilierung.
type plan struct {
	messages []message.Message
	opts     engine.Options

	// structured aktiviert die Fence-Normalisierung des Ergebnisses
	structured bool

	metadata map[string]any

	// staged ist der Pfad einer gestagten Datei, die nach dem
	// Backend-Aufruf auf jedem Austrittspfad entfernt wird
	staged string
}

// planner kompiliert einen Task-Request. Jeder Task-Typ registriert genau
// eine Implementierung.
type planner interface {
	taskType() api.TaskType
	validate() error
	plan(store *media.Store) (*plan, error)
}

// Dispatcher orchestriert die Task-Pipeline. Der Engine-Handle wird bei
// Konstruktion injiziert und danach nur gelesen; der Dispatcher haelt
// keinerlei Zustand ueber einen Request hinaus.
type Dispatcher struct {
	handle *engine.Handle
	store  *media.Store
}

// NewDispatcher erstellt einen Dispatcher mit injiziertem Engine-Handle
// und Byte-Store.
func NewDispatcher(handle *engine.Handle, store *media.Store) *Dispatcher {
	return &Dispatcher{handle: handle, store: store}
}

// Handle gibt den injizierten Engine-Handle zurueck.
func (d *Dispatcher) Handle() *engine.Handle {
	return d.handle
}

// Store gibt den Byte-Store zurueck (verwendet vom Upload-Endpoint).
func (d *Dispatcher) Store() *media.Store {
	return d.store
}

// dispatch fuehrt die Pipeline strikt in Reihenfolge aus: Validierung,
// Kompilierung (Aufloesung + Prompt + Message), Backend-Aufruf,
// Normalisierung, Envelope. Jeder Fehler ab der Kompilierung wird an
// dieser Grenze gefangen und als Failure-Envelope zurueckgegeben.
func (d *Dispatcher) dispatch(ctx context.Context, p planner) (resp api.TaskResponse) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("task panicked", "task", p.taskType(), "panic", r)
			resp = failure(fmt.Errorf("internal error: %v", r))
		}
	}()

	if err := p.validate(); err != nil {
		return failure(err)
	}

	pl, err := p.plan(d.store)
	if err != nil {
		return failure(err)
	}

	if pl.staged != "" {
		defer d.store.Remove(pl.staged)
	}

	eng, err := d.handle.Engine()
	if err != nil {
		return failure(err)
	}

	result, err := eng.Generate(ctx, pl.messages, pl.opts)
	if err != nil {
		slog.Error("generation failed", "task", p.taskType(), "error", err)
		return failure(err)
	}

	if pl.structured {
		result = ExtractJSON(result)
	}

	return api.TaskResponse{
		Success:  true,
		Result:   result,
		Metadata: pl.metadata,
	}
}

func failure(err error) api.TaskResponse {
	return api.TaskResponse{Success: false, Error: err.Error()}
}

// ============================================================================
// Gemeinsame Hilfsfunktionen der planner
// ============================================================================

// validateOptions prueft die Bereichs-Invarianten der Generierungsparameter.
func validateOptions(o api.InferenceOptions) error {
	if o.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must be at least 1")
	}
	if o.Temperature < 0 || o.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0.0 and 2.0")
	}
	if o.TopP < 0 || o.TopP > 1 {
		return fmt.Errorf("top_p must be between 0.0 and 1.0")
	}
	return nil
}

// options ersetzt ausgelassene Generierungsparameter durch die Defaults.
func options(o api.InferenceOptions, defaultMaxTokens int) engine.Options {
	maxTokens := o.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}

	topP := o.TopP
	if topP == 0 {
		topP = DefaultTopP
	}

	return engine.Options{
		MaxTokens:   maxTokens,
		Temperature: o.Temperature,
		TopP:        topP,
		Seed:        o.Seed,
	}
}

// pixelBudget ersetzt ausgelassene Pixel-Budgets durch die Defaults.
func pixelBudget(min, max, defaultMin, defaultMax int) message.PixelBudget {
	if min == 0 {
		min = defaultMin
	}
	if max == 0 {
		max = defaultMax
	}
	return message.PixelBudget{Min: min, Max: max}
}

// promptOrDefault gibt den Caller-Prompt zurueck, wenn er nicht leer ist,
// sonst das berechnete Template. Templates werden nie mit Caller-Text
// gemischt.
func promptOrDefault(callerPrompt, defaultPrompt string) string {
	if trimmed := strings.TrimSpace(callerPrompt); trimmed != "" {
		return callerPrompt
	}
	return defaultPrompt
}
