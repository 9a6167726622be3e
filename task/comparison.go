// MODUL: comparison
// ZWECK: Planner fuer den Vergleich von 2 bis 4 Bildern
// INPUT: api.ImageComparisonRequest
// OUTPUT: Kompilierter plan (Multi-Image-Message in Caller-Reihenfolge)
// NEBENEFFEKTE: Keine
// ABHAENGIGKEITEN: api, media, message, prompt (intern)
// HINWEISE: Die Bildreihenfolge traegt Semantik (vorher/nachher, Frame
// 1/2/3) und wird unveraendert an das Backend weitergegeben

package task

import (
	"context"

	"github.com/visiond/visiond/api"
	"github.com/visiond/visiond/media"
	"github.com/visiond/visiond/message"
	"github.com/visiond/visiond/prompt"
)

// ImageComparison vergleicht 2 bis 4 Bilder in Caller-Reihenfolge.
func (d *Dispatcher) ImageComparison(ctx context.Context, req *api.ImageComparisonRequest) api.TaskResponse {
	return d.dispatch(ctx, &comparison{req: req})
}

type comparison struct {
	req *api.ImageComparisonRequest
}

func (t *comparison) taskType() api.TaskType { return api.TaskImageComparison }

func (t *comparison) validate() error {
	return validateOptions(t.req.InferenceOptions)
}

func (t *comparison) plan(_ *media.Store) (*plan, error) {
	inputs, err := media.ResolveImageList(t.req.ImageURLs, t.req.ImageBase64List, MinComparisonImages, MaxComparisonImages)
	if err != nil {
		return nil, err
	}

	comparisonType := t.req.ComparisonType
	if comparisonType == "" {
		comparisonType = "differences"
	}

	format := t.req.OutputFormat
	if format == "" {
		format = api.FormatJSON
	}

	promptText := promptOrDefault(t.req.Prompt, prompt.Comparison(comparisonType, format, len(inputs)))

	budget := pixelBudget(t.req.MinPixels, t.req.MaxPixels, DefaultMinPixels, DefaultMaxPixels)

	return &plan{
		messages:   message.BuildImages(inputs, promptText, budget),
		opts:       options(t.req.InferenceOptions, DefaultMaxTokens),
		structured: format == api.FormatJSON,
		metadata: map[string]any{
			"task":            string(api.TaskImageComparison),
			"num_images":      len(inputs),
			"comparison_type": comparisonType,
			"output_format":   string(format),
		},
	}, nil
}
