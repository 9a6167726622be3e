// MODUL: document
// ZWECK: Planner fuer Dokumenten-Parsing
// INPUT: api.DocumentParsingRequest
// OUTPUT: Kompilierter plan (Single-Image-Message + Format-Template)
// NEBENEFFEKTE: Keine
// ABHAENGIGKEITEN: api, media, message, prompt (intern)
// HINWEISE: Dokumente bekommen das erweiterte Pixel-Budget und 4096 Tokens

package task

import (
	"context"

	"github.com/visiond/visiond/api"
	"github.com/visiond/visiond/media"
	"github.com/visiond/visiond/message"
	"github.com/visiond/visiond/prompt"
)

// DocumentParsing konvertiert ein Dokumentenbild in ein strukturiertes
// Format.
func (d *Dispatcher) DocumentParsing(ctx context.Context, req *api.DocumentParsingRequest) api.TaskResponse {
	return d.dispatch(ctx, &document{req: req})
}

type document struct {
	req *api.DocumentParsingRequest
}

func (t *document) taskType() api.TaskType { return api.TaskDocumentParsing }

func (t *document) validate() error {
	return validateOptions(t.req.InferenceOptions)
}

func (t *document) plan(_ *media.Store) (*plan, error) {
	in, err := media.ResolveImage(t.req.ImageURL, t.req.ImageBase64)
	if err != nil {
		return nil, err
	}

	format := t.req.OutputFormat
	if format == "" {
		format = api.FormatQwenVLHTML
	}

	promptText := promptOrDefault(t.req.Prompt, prompt.DocumentParsing(format))

	budget := pixelBudget(t.req.MinPixels, t.req.MaxPixels, DocumentMinPixels, DocumentMaxPixels)

	return &plan{
		messages: message.BuildImage(in, promptText, budget),
		opts:     options(t.req.InferenceOptions, DocumentMaxTokens),
		metadata: map[string]any{
			"task":          string(api.TaskDocumentParsing),
			"output_format": string(format),
		},
	}, nil
}
