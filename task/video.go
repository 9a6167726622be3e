// MODUL: video
// ZWECK: Planner fuer Video-Understanding
// INPUT: api.VideoUnderstandingRequest
// OUTPUT: Kompilierter plan (Video-Message mit Sampling-Parametern)
// NEBENEFFEKTE: Staged Base64-Video in den Byte-Store
// ABHAENGIGKEITEN: api, media, message (intern)
// HINWEISE: Die Repraesentation (ganzes Video vs. Frame-Liste) folgt dem
// Resolver-Pfad; gestagte Dateien raeumt der Dispatcher nach dem
// Backend-Aufruf ab

package task

import (
	"context"
	"errors"
	"strings"

	"github.com/visiond/visiond/api"
	"github.com/visiond/visiond/media"
	"github.com/visiond/visiond/message"
)

// VideoUnderstanding analysiert ein Video oder eine Frame-Sequenz.
func (d *Dispatcher) VideoUnderstanding(ctx context.Context, req *api.VideoUnderstandingRequest) api.TaskResponse {
	return d.dispatch(ctx, &video{req: req})
}

type video struct {
	req *api.VideoUnderstandingRequest
}

func (t *video) taskType() api.TaskType { return api.TaskVideoUnderstanding }

func (t *video) validate() error {
	if strings.TrimSpace(t.req.Prompt) == "" {
		return errors.New("prompt is required")
	}
	return validateOptions(t.req.InferenceOptions)
}

func (t *video) plan(store *media.Store) (*plan, error) {
	in, err := media.ResolveVideo(t.req.VideoURL, t.req.VideoBase64, t.req.FrameURLs, t.req.FrameBase64List, store)
	if err != nil {
		return nil, err
	}

	sampling := message.VideoSampling{
		TotalPixels: t.req.TotalPixels,
		MinPixels:   t.req.MinPixels,
		MaxFrames:   t.req.MaxFrames,
		SampleFPS:   t.req.SampleFPS,
	}
	if sampling.TotalPixels == 0 {
		sampling.TotalPixels = DefaultTotalPixels
	}
	if sampling.MinPixels == 0 {
		sampling.MinPixels = DefaultMinPixels
	}
	if sampling.MaxFrames == 0 {
		sampling.MaxFrames = DefaultMaxFrames
	}
	if sampling.SampleFPS == 0 {
		sampling.SampleFPS = DefaultSampleFPS
	}

	pl := &plan{
		messages: message.BuildVideo(in, t.req.Prompt, sampling),
		opts:     options(t.req.InferenceOptions, DefaultMaxTokens),
		metadata: map[string]any{
			"task":       string(api.TaskVideoUnderstanding),
			"video_type": videoType(t.req),
		},
	}

	// Nur von ResolveVideo gestagte Dateien abraeumen
	if in.Kind == media.KindFile {
		pl.staged = in.Ref
	}

	return pl, nil
}

// videoType bestimmt die Quellart fuer die Metadaten.
func videoType(req *api.VideoUnderstandingRequest) string {
	switch {
	case req.VideoURL != "":
		return "url"
	case req.VideoBase64 != "":
		return "base64"
	case len(req.FrameURLs) > 0:
		return "frame_urls"
	case len(req.FrameBase64List) > 0:
		return "frame_base64_list"
	default:
		return "unknown"
	}
}
