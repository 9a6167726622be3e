// MODUL: message
// ZWECK: Kompilierung aufgeloester Medien und Prompts zu kanonischen Messages
// INPUT: media.Input Referenzen, Instruktionstext, Pixel-/Frame-Budgets
// OUTPUT: Geordnete Content-Sequenzen fuer das Generation-Backend
// NEBENEFFEKTE: Keine
// ABHAENGIGKEITEN: media (intern)
// HINWEISE: Der Text-Part steht immer zuletzt; beim Bildvergleich entspricht
// die Part-Reihenfolge der Caller-Reihenfolge (Ordnung traegt Semantik)

package message

import (
	"github.com/visiond/visiond/media"
)

const (
	TypeImage = "image"
	TypeVideo = "video"
	TypeText  = "text"
)

// PixelBudget begrenzt die Bildverarbeitung pro Bild-Part.
type PixelBudget struct {
	Min int
	Max int
}

// VideoSampling buendelt die Sampling-Parameter eines Video-Parts.
type VideoSampling struct {
	TotalPixels int
	MinPixels   int
	MaxFrames   int
	SampleFPS   float64
}

// Content ist ein einzelner Part einer kanonischen Message.
type Content struct {
	Type string `json:"type"`

	// Text ist der Instruktionstext (nur TypeText)
	Text string `json:"text,omitempty"`

	// Image ist die Bildreferenz (nur TypeImage)
	Image string `json:"image,omitempty"`

	// Video ist die Referenz auf ein ganzes Video (TypeVideo)
	Video string `json:"video,omitempty"`

	// Frames sind geordnete Frame-Referenzen, alternativ zu Video (TypeVideo)
	Frames []string `json:"frames,omitempty"`

	MinPixels   int     `json:"min_pixels,omitempty"`
	MaxPixels   int     `json:"max_pixels,omitempty"`
	TotalPixels int     `json:"total_pixels,omitempty"`
	MaxFrames   int     `json:"max_frames,omitempty"`
	SampleFPS   float64 `json:"sample_fps,omitempty"`
}

// Message ist eine geordnete Content-Sequenz einer Rolle.
type Message struct {
	Role    string    `json:"role"`
	Content []Content `json:"content"`
}

// BuildImage kompiliert eine Single-Image-Message: ein Bild-Part gefolgt
// von genau einem Text-Part.
func BuildImage(in media.Input, promptText string, budget PixelBudget) []Message {
	return BuildImages([]media.Input{in}, promptText, budget)
}

// BuildImages kompiliert eine Multi-Image-Message: N Bild-Parts in
// Caller-Reihenfolge, danach genau ein Text-Part. Das Pixel-Budget gilt
// identisch fuer alle Bild-Parts.
func BuildImages(ins []media.Input, promptText string, budget PixelBudget) []Message {
	content := make([]Content, 0, len(ins)+1)
	for _, in := range ins {
		content = append(content, Content{
			Type:      TypeImage,
			Image:     in.Ref,
			MinPixels: budget.Min,
			MaxPixels: budget.Max,
		})
	}

	content = append(content, Content{Type: TypeText, Text: promptText})

	return []Message{{Role: "user", Content: content}}
}

// BuildVideo kompiliert eine Video-Message: ein Video-Part mit entweder
// einer dereferenzierbaren Video-Referenz oder einer geordneten Frame-Liste,
// danach genau ein Text-Part. Die Repraesentation folgt dem Resolver-Pfad
// und wird hier nicht neu hergeleitet.
func BuildVideo(in media.Input, promptText string, sampling VideoSampling) []Message {
	part := Content{
		Type:        TypeVideo,
		TotalPixels: sampling.TotalPixels,
		MinPixels:   sampling.MinPixels,
		MaxFrames:   sampling.MaxFrames,
		SampleFPS:   sampling.SampleFPS,
	}

	if in.Kind == media.KindFrames {
		part.Frames = in.Frames
	} else {
		part.Video = in.Ref
	}

	return []Message{{
		Role:    "user",
		Content: []Content{part, {Type: TypeText, Text: promptText}},
	}}
}
