// MODUL: grounding
// ZWECK: Planner fuer 2D-Grounding (Objekterkennung mit Bounding-Boxen)
// INPUT: api.Grounding2DRequest
// OUTPUT: Kompilierter plan (Single-Image-Message + Grounding-Prompt)
// NEBENEFFEKTE: Keine
// ABHAENGIGKEITEN: api, media, message, prompt (intern)
// HINWEISE: Bounding-Boxen in relativen Koordinaten (0-1000)

package task

import (
	"context"

	"github.com/visiond/visiond/api"
	"github.com/visiond/visiond/media"
	"github.com/visiond/visiond/message"
	"github.com/visiond/visiond/prompt"
)

// Grounding2D fuehrt 2D-Objekterkennung aus.
func (d *Dispatcher) Grounding2D(ctx context.Context, req *api.Grounding2DRequest) api.TaskResponse {
	return d.dispatch(ctx, &grounding{req: req})
}

type grounding struct {
	req *api.Grounding2DRequest
}

func (t *grounding) taskType() api.TaskType { return api.TaskGrounding2D }

func (t *grounding) validate() error {
	return validateOptions(t.req.InferenceOptions)
}

func (t *grounding) plan(_ *media.Store) (*plan, error) {
	in, err := media.ResolveImage(t.req.ImageURL, t.req.ImageBase64)
	if err != nil {
		return nil, err
	}

	format := t.req.OutputFormat
	if format == "" {
		format = api.FormatJSON
	}

	promptText := promptOrDefault(t.req.Prompt, prompt.Grounding(t.req.Categories, t.req.IncludeAttributes))

	budget := pixelBudget(t.req.MinPixels, t.req.MaxPixels, DefaultMinPixels, DefaultMaxPixels)

	return &plan{
		messages:   message.BuildImage(in, promptText, budget),
		opts:       options(t.req.InferenceOptions, DefaultMaxTokens),
		structured: format == api.FormatJSON,
		metadata: map[string]any{
			"task":               string(api.TaskGrounding2D),
			"output_format":      string(format),
			"include_attributes": t.req.IncludeAttributes,
			"num_categories":     len(t.req.Categories),
		},
	}, nil
}
