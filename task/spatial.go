// MODUL: spatial
// ZWECK: Planner fuer raeumliches Schliessen ueber ein Bild
// INPUT: api.SpatialUnderstandingRequest
// OUTPUT: Kompilierter plan (Single-Image-Message + Query als Prompt)
// NEBENEFFEKTE: Keine
// ABHAENGIGKEITEN: api, media, message (intern)
// HINWEISE: Dieser Task hat kein Template - die Query des Callers ist der
// Prompt; ein expliziter Prompt gewinnt auch hier

package task

import (
	"context"
	"errors"
	"strings"

	"github.com/visiond/visiond/api"
	"github.com/visiond/visiond/media"
	"github.com/visiond/visiond/message"
)

// SpatialUnderstanding beantwortet eine raeumliche Frage zu einem Bild.
func (d *Dispatcher) SpatialUnderstanding(ctx context.Context, req *api.SpatialUnderstandingRequest) api.TaskResponse {
	return d.dispatch(ctx, &spatial{req: req})
}

type spatial struct {
	req *api.SpatialUnderstandingRequest
}

func (t *spatial) taskType() api.TaskType { return api.TaskSpatialUnderstanding }

func (t *spatial) validate() error {
	if strings.TrimSpace(t.req.Query) == "" {
		return errors.New("query is required")
	}
	return validateOptions(t.req.InferenceOptions)
}

func (t *spatial) plan(_ *media.Store) (*plan, error) {
	in, err := media.ResolveImage(t.req.ImageURL, t.req.ImageBase64)
	if err != nil {
		return nil, err
	}

	format := t.req.OutputFormat
	if format == "" {
		format = api.FormatJSON
	}

	promptText := promptOrDefault(t.req.Prompt, t.req.Query)

	budget := pixelBudget(t.req.MinPixels, t.req.MaxPixels, DefaultMinPixels, DefaultMaxPixels)

	return &plan{
		messages:   message.BuildImage(in, promptText, budget),
		opts:       options(t.req.InferenceOptions, DefaultMaxTokens),
		structured: format == api.FormatJSON,
		metadata: map[string]any{
			"task":          string(api.TaskSpatialUnderstanding),
			"query":         t.req.Query,
			"output_format": string(format),
		},
	}, nil
}
