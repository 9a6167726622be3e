// MODUL: description
// ZWECK: Planner fuer Bildbeschreibungen
// INPUT: api.ImageDescriptionRequest
// OUTPUT: Kompilierter plan (Single-Image-Message + Detail-Template)
// NEBENEFFEKTE: Keine
// ABHAENGIGKEITEN: api, media, message, prompt (intern)

package task

import (
	"context"

	"github.com/visiond/visiond/api"
	"github.com/visiond/visiond/media"
	"github.com/visiond/visiond/message"
	"github.com/visiond/visiond/prompt"
)

// ImageDescription beschreibt ein Bild auf der gewuenschten Detail-Stufe.
func (d *Dispatcher) ImageDescription(ctx context.Context, req *api.ImageDescriptionRequest) api.TaskResponse {
	return d.dispatch(ctx, &description{req: req})
}

type description struct {
	req *api.ImageDescriptionRequest
}

func (t *description) taskType() api.TaskType { return api.TaskImageDescription }

func (t *description) validate() error {
	return validateOptions(t.req.InferenceOptions)
}

func (t *description) plan(_ *media.Store) (*plan, error) {
	in, err := media.ResolveImage(t.req.ImageURL, t.req.ImageBase64)
	if err != nil {
		return nil, err
	}

	detailLevel := t.req.DetailLevel
	if detailLevel == "" {
		detailLevel = "detailed"
	}

	promptText := promptOrDefault(t.req.Prompt, prompt.Description(detailLevel))

	budget := pixelBudget(t.req.MinPixels, t.req.MaxPixels, DefaultMinPixels, DefaultMaxPixels)

	return &plan{
		messages: message.BuildImage(in, promptText, budget),
		opts:     options(t.req.InferenceOptions, DefaultMaxTokens),
		metadata: map[string]any{
			"task":         string(api.TaskImageDescription),
			"detail_level": detailLevel,
		},
	}, nil
}
