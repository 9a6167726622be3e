// MODUL: ocr
// ZWECK: Planner fuer Texterkennung (Dokumente und Naturszenen)
// INPUT: api.OCRRequest
// OUTPUT: Kompilierter plan (Single-Image-Message + OCR-Template)
// NEBENEFFEKTE: Keine
// ABHAENGIGKEITEN: api, media, message, prompt (intern)
// HINWEISE: Mit include_bbox wird immer ein JSON-Array aus
// bbox_2d/text_content Objekten angefordert, unabhaengig vom Format-Feld

package task

import (
	"context"

	"github.com/visiond/visiond/api"
	"github.com/visiond/visiond/media"
	"github.com/visiond/visiond/message"
	"github.com/visiond/visiond/prompt"
)

// DocumentOCR extrahiert Text aus einem Dokumentenbild.
func (d *Dispatcher) DocumentOCR(ctx context.Context, req *api.OCRRequest) api.TaskResponse {
	return d.dispatch(ctx, &ocr{req: req, wild: false})
}

// WildOCR extrahiert Text aus einer Naturszene (Schilder, Labels, ...).
func (d *Dispatcher) WildOCR(ctx context.Context, req *api.OCRRequest) api.TaskResponse {
	return d.dispatch(ctx, &ocr{req: req, wild: true})
}

type ocr struct {
	req  *api.OCRRequest
	wild bool
}

func (t *ocr) taskType() api.TaskType {
	if t.wild {
		return api.TaskWildOCR
	}
	return api.TaskDocumentOCR
}

func (t *ocr) validate() error {
	return validateOptions(t.req.InferenceOptions)
}

func (t *ocr) plan(_ *media.Store) (*plan, error) {
	in, err := media.ResolveImage(t.req.ImageURL, t.req.ImageBase64)
	if err != nil {
		return nil, err
	}

	format := t.req.OutputFormat
	if format == "" {
		format = api.FormatText
	}

	granularity := t.req.Granularity
	if granularity == "" {
		granularity = "line"
	}

	promptText := promptOrDefault(t.req.Prompt, prompt.OCR(granularity, t.req.IncludeBBox, format, t.wild))

	budget := pixelBudget(t.req.MinPixels, t.req.MaxPixels, OCRMinPixels, DefaultMaxPixels)

	return &plan{
		messages:   message.BuildImage(in, promptText, budget),
		opts:       options(t.req.InferenceOptions, DocumentMaxTokens),
		structured: t.req.IncludeBBox || format == api.FormatJSON,
		metadata: map[string]any{
			"task":          string(t.taskType()),
			"granularity":   granularity,
			"include_bbox":  t.req.IncludeBBox,
			"output_format": string(format),
		},
	}, nil
}
