// types.go - Core API Types fuer visiond
// Enthaelt: TaskType, OutputFormat, StatusError, Request-Typen aller Tasks,
// TaskResponse (Envelope), HealthResponse
package api

import (
	"fmt"
)

// TaskType identifiziert eine der unterstuetzten Vision-Language-Operationen.
type TaskType string

const (
	TaskGrounding2D          TaskType = "2d_grounding"
	TaskSpatialUnderstanding TaskType = "spatial_understanding"
	TaskVideoUnderstanding   TaskType = "video_understanding"
	TaskImageDescription     TaskType = "image_description"
	TaskDocumentParsing      TaskType = "document_parsing"
	TaskDocumentOCR          TaskType = "document_ocr"
	TaskWildOCR              TaskType = "wild_ocr"
	TaskImageComparison      TaskType = "image_comparison"
)

// TaskTypes listet alle unterstuetzten Tasks in stabiler Reihenfolge.
func TaskTypes() []TaskType {
	return []TaskType{
		TaskGrounding2D,
		TaskSpatialUnderstanding,
		TaskVideoUnderstanding,
		TaskImageDescription,
		TaskDocumentParsing,
		TaskDocumentOCR,
		TaskWildOCR,
		TaskImageComparison,
	}
}

// OutputFormat steuert das gewuenschte Ausgabeformat eines Tasks.
type OutputFormat string

const (
	FormatJSON           OutputFormat = "json"
	FormatText           OutputFormat = "text"
	FormatHTML           OutputFormat = "html"
	FormatMarkdown       OutputFormat = "markdown"
	FormatLaTeX          OutputFormat = "latex"
	FormatQwenVLHTML     OutputFormat = "qwenvl_html"
	FormatQwenVLMarkdown OutputFormat = "qwenvl_markdown"
)

// StatusError is an error with an HTTP status code and message.
type StatusError struct {
	StatusCode   int
	Status       string
	ErrorMessage string `json:"error"`
}

func (e StatusError) Error() string {
	switch {
	case e.Status != "" && e.ErrorMessage != "":
		return fmt.Sprintf("%s: %s", e.Status, e.ErrorMessage)
	case e.Status != "":
		return e.Status
	case e.ErrorMessage != "":
		return e.ErrorMessage
	default:
		// this should not happen
		return "something went wrong, please see the visiond server logs for details"
	}
}

// ============================================================================
// Gemeinsame Request-Bausteine
// ============================================================================

// InferenceOptions - Generierungsparameter, in jedem Task-Request enthalten.
// Null-Werte werden serverseitig durch die dokumentierten Defaults ersetzt.
type InferenceOptions struct {
	// Prompt ueberschreibt das Default-Template des Tasks, wenn nicht leer
	Prompt string `json:"prompt,omitempty"`

	// MaxTokens ist die maximale Anzahl generierter Tokens (Default taskabhaengig)
	MaxTokens int `json:"max_tokens,omitempty"`

	// Temperature ist die Sampling-Temperatur, gueltig in [0, 2]
	Temperature float64 `json:"temperature,omitempty"`

	// TopP ist der Nucleus-Sampling-Parameter, gueltig in [0, 1]
	TopP float64 `json:"top_p,omitempty"`

	// Seed macht die Generierung reproduzierbar (Default: fester Seed 0)
	Seed *int `json:"seed,omitempty"`
}

// ImageInput - Bildquelle plus Pixel-Budget.
// Aufloesungs-Prioritaet: ImageURL vor ImageBase64.
type ImageInput struct {
	// ImageURL ist die URL des Bildes
	ImageURL string `json:"image_url,omitempty"`

	// ImageBase64 ist das Base64-kodierte Bild (roh oder als data-URL)
	ImageBase64 string `json:"image_base64,omitempty"`

	// MinPixels ist das minimale Pixel-Budget fuer die Bildverarbeitung
	MinPixels int `json:"min_pixels,omitempty"`

	// MaxPixels ist das maximale Pixel-Budget fuer die Bildverarbeitung
	MaxPixels int `json:"max_pixels,omitempty"`
}

// VideoInput - Videoquelle plus Sampling-Parameter.
// Aufloesungs-Prioritaet: VideoURL, VideoBase64, FrameURLs, FrameBase64List.
type VideoInput struct {
	// VideoURL ist die URL der Videodatei
	VideoURL string `json:"video_url,omitempty"`

	// VideoBase64 ist die Base64-kodierte Videodatei
	VideoBase64 string `json:"video_base64,omitempty"`

	// FrameURLs ist eine geordnete Liste von Frame-URLs
	FrameURLs []string `json:"frame_urls,omitempty"`

	// FrameBase64List ist eine geordnete Liste Base64-kodierter Frames
	FrameBase64List []string `json:"frame_base64_list,omitempty"`

	// MaxFrames ist die maximale Anzahl verarbeiteter Frames (Default 2048)
	MaxFrames int `json:"max_frames,omitempty"`

	// SampleFPS ist die Sampling-Rate in Frames pro Sekunde (Default 2.0)
	SampleFPS float64 `json:"sample_fps,omitempty"`

	// TotalPixels ist das Pixel-Budget ueber alle Frames (Default 20480*32*32)
	TotalPixels int `json:"total_pixels,omitempty"`

	// MinPixels ist das minimale Pixel-Budget pro Frame (Default 64*32*32)
	MinPixels int `json:"min_pixels,omitempty"`
}

// ============================================================================
// Task Request Types
// ============================================================================

// Grounding2DRequest - Objekterkennung mit Bounding-Boxen.
// Endpoint: POST /api/v1/grounding/2d
type Grounding2DRequest struct {
	InferenceOptions
	ImageInput

	// Categories filtert die Erkennung auf die angegebenen Objektkategorien
	Categories []string `json:"categories,omitempty"`

	// OutputFormat ist das Ausgabeformat (Default json)
	OutputFormat OutputFormat `json:"output_format,omitempty"`

	// IncludeAttributes fordert zusaetzliche Objektattribute an
	IncludeAttributes bool `json:"include_attributes,omitempty"`
}

// SpatialUnderstandingRequest - Raeumliches Schliessen ueber ein Bild.
// Endpoint: POST /api/v1/spatial/understanding
type SpatialUnderstandingRequest struct {
	InferenceOptions
	ImageInput

	// Query ist die raeumliche Frage und dient unveraendert als Prompt
	Query string `json:"query"`

	// OutputFormat ist das Ausgabeformat (Default json)
	OutputFormat OutputFormat `json:"output_format,omitempty"`
}

// VideoUnderstandingRequest - Videoanalyse.
// Endpoint: POST /api/v1/video/understanding
type VideoUnderstandingRequest struct {
	InferenceOptions
	VideoInput

	// Task beschreibt die Art der Videoanalyse (Default "description")
	Task string `json:"task,omitempty"`
}

// ImageDescriptionRequest - Bildbeschreibung.
// Endpoint: POST /api/v1/image/description
type ImageDescriptionRequest struct {
	InferenceOptions
	ImageInput

	// DetailLevel ist basic, detailed oder comprehensive (Default detailed)
	DetailLevel string `json:"detail_level,omitempty"`
}

// DocumentParsingRequest - Dokumentenkonvertierung.
// Endpoint: POST /api/v1/document/parsing
type DocumentParsingRequest struct {
	InferenceOptions
	ImageInput

	// OutputFormat ist html, markdown, qwenvl_html oder qwenvl_markdown
	// (Default qwenvl_html)
	OutputFormat OutputFormat `json:"output_format,omitempty"`
}

// OCRRequest - Texterkennung auf Dokumenten oder Wildbildern.
// Endpoints: POST /api/v1/ocr/document, POST /api/v1/ocr/wild
type OCRRequest struct {
	InferenceOptions
	ImageInput

	// OutputFormat ist das Ausgabeformat (Default text)
	OutputFormat OutputFormat `json:"output_format,omitempty"`

	// Granularity ist word, line oder paragraph (Default line)
	Granularity string `json:"granularity,omitempty"`

	// IncludeBBox fordert Bounding-Boxen pro Texteinheit an
	IncludeBBox bool `json:"include_bbox,omitempty"`
}

// ImageComparisonRequest - Vergleich von 2 bis 4 Bildern.
// Endpoint: POST /api/v1/image/comparison
type ImageComparisonRequest struct {
	InferenceOptions

	// ImageURLs ist die geordnete Liste der Bild-URLs (2-4 Bilder)
	ImageURLs []string `json:"image_urls,omitempty"`

	// ImageBase64List ist die geordnete Liste Base64-kodierter Bilder (2-4)
	ImageBase64List []string `json:"image_base64_list,omitempty"`

	// ComparisonType ist differences, changes oder similarities
	// (Default differences)
	ComparisonType string `json:"comparison_type,omitempty"`

	// OutputFormat ist das Ausgabeformat (Default json)
	OutputFormat OutputFormat `json:"output_format,omitempty"`

	// MinPixels ist das minimale Pixel-Budget, geteilt von allen Bildern
	MinPixels int `json:"min_pixels,omitempty"`

	// MaxPixels ist das maximale Pixel-Budget, geteilt von allen Bildern
	MaxPixels int `json:"max_pixels,omitempty"`
}

// ============================================================================
// Response Types
// ============================================================================

// TaskResponse - Einheitlicher Antwort-Envelope aller Task-Endpoints.
// Genau eines von Result (bei Success) oder Error (bei Fehler) ist belegt.
type TaskResponse struct {
	// Success gibt an, ob der Task erfolgreich ausgefuehrt wurde
	Success bool `json:"success"`

	// Result ist das Task-Ergebnis (String, ggf. von Markdown-Fences befreit)
	Result any `json:"result"`

	// Error ist die Fehlermeldung, wenn Success false ist
	Error string `json:"error,omitempty"`

	// Metadata enthaelt taskspezifische Diagnose-Felder
	Metadata map[string]any `json:"metadata,omitempty"`
}

// HealthResponse - Antwort des Health-Endpoints.
type HealthResponse struct {
	// Status ist "healthy" oder "unhealthy"
	Status string `json:"status"`

	// ModelLoaded gibt an, ob das Generation-Backend bereit ist
	ModelLoaded bool `json:"model_loaded"`

	// Version ist die API-Version
	Version string `json:"version"`
}

// TaskListResponse - Antwort des Task-Listen-Endpoints.
type TaskListResponse struct {
	// Tasks sind die unterstuetzten Task-Typen
	Tasks []TaskType `json:"tasks"`
}
