// MODUL: media
// ZWECK: Aufloesung heterogener Medienquellen zu kanonischen Referenzen
// INPUT: URL, Base64-Payload oder Frame-Listen aus Task-Requests
// OUTPUT: Getaggte Input-Werte (URL, Inline-data-URL, Datei, Frame-Liste)
// NEBENEFFEKTE: Keine (Staging von Video-Bytes ist in staging.go)
// ABHAENGIGKEITEN: encoding/base64, strings (stdlib)
// HINWEISE: Prioritaet ist fix und total: URL vor Base64 vor Frame-URLs
// vor Frame-Base64; die erste belegte Quelle gewinnt

package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// Kind unterscheidet die Varianten einer aufgeloesten Medienreferenz.
type Kind int

const (
	// KindURL ist eine entfernte, dereferenzierbare URL
	KindURL Kind = iota

	// KindInline ist eine selbstbeschreibende data-URL mit eingebetteten Bytes
	KindInline

	// KindFile ist ein Pfad zu einer gestagten Datei im Byte-Store
	KindFile

	// KindFrames ist eine geordnete Liste von Frame-Referenzen (Video)
	KindFrames
)

// Input ist die getaggte Repraesentation einer aufgeloesten Medienquelle.
// Downstream-Code verzweigt ueber Kind statt ueber Feld-Praesenz.
type Input struct {
	Kind Kind

	// Ref ist URL, data-URL oder Dateipfad (alle Kinds ausser KindFrames)
	Ref string

	// Frames sind die geordneten Frame-Referenzen (nur KindFrames)
	Frames []string
}

var (
	ErrNoImage  = errors.New("either image_url or image_base64 must be provided")
	ErrNoVideo  = errors.New("one of video_url, video_base64, frame_urls, or frame_base64_list must be provided")
	ErrNoFrames = errors.New("either frame_urls or frame_base64_list must be provided")
)

// ResolveImage loest eine Bildquelle auf.
// Prioritaet: URL vor Base64. Keine Quelle ist ein Validierungsfehler.
func ResolveImage(imageURL, imageBase64 string) (Input, error) {
	switch {
	case imageURL != "":
		return Input{Kind: KindURL, Ref: imageURL}, nil
	case imageBase64 != "":
		return Input{Kind: KindInline, Ref: DataURL(imageBase64)}, nil
	default:
		return Input{}, ErrNoImage
	}
}

// ResolveFrames loest eine geordnete Frame-Liste auf.
// Prioritaet: Frame-URLs vor Frame-Base64.
func ResolveFrames(frameURLs, frameBase64List []string) (Input, error) {
	switch {
	case len(frameURLs) > 0:
		return Input{Kind: KindFrames, Frames: frameURLs}, nil
	case len(frameBase64List) > 0:
		frames := make([]string, len(frameBase64List))
		for i, b64 := range frameBase64List {
			frames[i] = DataURL(b64)
		}
		return Input{Kind: KindFrames, Frames: frames}, nil
	default:
		return Input{}, ErrNoFrames
	}
}

// ResolveVideo loest eine Videoquelle auf.
// Base64-Video wird in den Store gestaged, weil der Compiler downstream
// einen dereferenzierbaren Pfad erwartet; der Aufrufer entfernt die Datei
// nach dem Backend-Aufruf ueber store.Remove.
// Prioritaet: video_url, video_base64, frame_urls, frame_base64_list.
func ResolveVideo(videoURL, videoBase64 string, frameURLs, frameBase64List []string, store *Store) (Input, error) {
	switch {
	case videoURL != "":
		return Input{Kind: KindURL, Ref: videoURL}, nil
	case videoBase64 != "":
		path, err := store.StageVideo(videoBase64)
		if err != nil {
			return Input{}, err
		}
		return Input{Kind: KindFile, Ref: path}, nil
	case len(frameURLs) > 0 || len(frameBase64List) > 0:
		return ResolveFrames(frameURLs, frameBase64List)
	default:
		return Input{}, ErrNoVideo
	}
}

// ResolveImageList loest eine geordnete Bildliste fuer den Bildvergleich auf.
// Die Anzahl muss im geschlossenen Bereich [min, max] liegen; Verletzungen
// sind Validierungsfehler und erreichen nie das Backend.
func ResolveImageList(imageURLs, imageBase64List []string, min, max int) ([]Input, error) {
	var inputs []Input

	switch {
	case len(imageURLs) > 0:
		for _, u := range imageURLs {
			inputs = append(inputs, Input{Kind: KindURL, Ref: u})
		}
	case len(imageBase64List) > 0:
		for _, b64 := range imageBase64List {
			inputs = append(inputs, Input{Kind: KindInline, Ref: DataURL(b64)})
		}
	default:
		return nil, errors.New("either image_urls or image_base64_list must be provided")
	}

	if len(inputs) < min || len(inputs) > max {
		return nil, fmt.Errorf("number of images must be between %d and %d", min, max)
	}

	return inputs, nil
}

// DataURL normalisiert einen Base64-Payload zu einer selbstbeschreibenden
// data-URL. Bereits getaggte Payloads werden unveraendert durchgereicht;
// ungetaggte werden ueber Magic-Bytes typisiert, Default ist JPEG.
func DataURL(b64 string) string {
	if strings.HasPrefix(b64, "data:") {
		return b64
	}

	return fmt.Sprintf("data:%s;base64,%s", sniffMimeType(b64), b64)
}

// sniffMimeType bestimmt den MIME-Typ eines Base64-Payloads ueber die
// Magic-Bytes der ersten dekodierten Bytes. Unbekannte Signaturen werden
// als JPEG angenommen.
func sniffMimeType(b64 string) string {
	// 16 Rohbytes reichen fuer alle Signaturen; Base64 in 4er-Bloecken lesen
	prefix := b64
	if len(prefix) > 24 {
		prefix = prefix[:24]
	}
	prefix = prefix[:len(prefix)-len(prefix)%4]

	data, err := base64.StdEncoding.DecodeString(prefix)
	if err != nil || len(data) < 12 {
		return "image/jpeg"
	}

	switch {
	case data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47:
		return "image/png"
	case data[0] == 0x52 && data[1] == 0x49 && data[2] == 0x46 && data[3] == 0x46 &&
		data[8] == 'W' && data[9] == 'E' && data[10] == 'B' && data[11] == 'P':
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
