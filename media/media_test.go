// MODUL: media_test
// ZWECK: Tests fuer die Aufloesung heterogener Medienquellen
// INPUT: Synthetische URLs, Base64-Payloads und Frame-Listen
// OUTPUT: Testresultate
// NEBENEFFEKTE: keine
// ABHAENGIGKEITEN: testing
// HINWEISE: Testet Prioritaetsordnung, data-URL-Normalisierung und die
// Anzahl-Invariante der Bildliste

package media

import (
	"errors"
	"strings"
	"testing"
)

// Gueltige Base64-Praefixe mit bekannten Magic-Bytes
const (
	pngBase64  = "iVBORw0KGgoAAAANSUhEUgAA"
	webpBase64 = "UklGRgAAAABXRUJQ"
	jpegBase64 = "/9j/4AAQSkZJRgABAQAAAQAB"
)

func TestResolveImagePrioritaet(t *testing.T) {
	// URL gewinnt immer ueber Base64
	in, err := ResolveImage("https://example.com/a.jpg", jpegBase64)
	if err != nil {
		t.Fatalf("unerwarteter Fehler: %v", err)
	}
	if in.Kind != KindURL {
		t.Errorf("Kind = %v, erwartet KindURL", in.Kind)
	}
	if in.Ref != "https://example.com/a.jpg" {
		t.Errorf("Ref = %q, erwartet die URL", in.Ref)
	}
}

func TestResolveImageBase64(t *testing.T) {
	in, err := ResolveImage("", jpegBase64)
	if err != nil {
		t.Fatalf("unerwarteter Fehler: %v", err)
	}
	if in.Kind != KindInline {
		t.Errorf("Kind = %v, erwartet KindInline", in.Kind)
	}
	if !strings.HasPrefix(in.Ref, "data:image/jpeg;base64,") {
		t.Errorf("Ref = %q, erwartet data-URL Praefix", in.Ref)
	}
}

func TestResolveImageOhneQuelle(t *testing.T) {
	_, err := ResolveImage("", "")
	if !errors.Is(err, ErrNoImage) {
		t.Errorf("err = %v, erwartet ErrNoImage", err)
	}
}

func TestDataURL(t *testing.T) {
	cases := []struct {
		name string
		b64  string
		want string
	}{
		{"PNG Magic-Bytes", pngBase64, "data:image/png;base64," + pngBase64},
		{"WebP Magic-Bytes", webpBase64, "data:image/webp;base64," + webpBase64},
		{"JPEG Default", jpegBase64, "data:image/jpeg;base64," + jpegBase64},
		{"Zu kurze Daten", "abc", "data:image/jpeg;base64,abc"},
		{"Bereits getaggt", "data:image/png;base64,AAAA", "data:image/png;base64,AAAA"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DataURL(tc.b64); got != tc.want {
				t.Errorf("DataURL(%q) = %q, erwartet %q", tc.b64, got, tc.want)
			}
		})
	}
}

func TestResolveFramesOrdnung(t *testing.T) {
	urls := []string{"https://example.com/1.jpg", "https://example.com/2.jpg", "https://example.com/3.jpg"}

	in, err := ResolveFrames(urls, nil)
	if err != nil {
		t.Fatalf("unerwarteter Fehler: %v", err)
	}
	if in.Kind != KindFrames {
		t.Fatalf("Kind = %v, erwartet KindFrames", in.Kind)
	}
	for i, u := range urls {
		if in.Frames[i] != u {
			t.Errorf("Frames[%d] = %q, erwartet %q", i, in.Frames[i], u)
		}
	}
}

func TestResolveFramesBase64Normalisiert(t *testing.T) {
	in, err := ResolveFrames(nil, []string{pngBase64, jpegBase64})
	if err != nil {
		t.Fatalf("unerwarteter Fehler: %v", err)
	}
	if len(in.Frames) != 2 {
		t.Fatalf("len(Frames) = %d, erwartet 2", len(in.Frames))
	}
	if !strings.HasPrefix(in.Frames[0], "data:image/png;base64,") {
		t.Errorf("Frames[0] = %q, erwartet PNG data-URL", in.Frames[0])
	}
	if !strings.HasPrefix(in.Frames[1], "data:image/jpeg;base64,") {
		t.Errorf("Frames[1] = %q, erwartet JPEG data-URL", in.Frames[1])
	}
}

func TestResolveVideoPrioritaet(t *testing.T) {
	// URL gewinnt ueber alle anderen Quellen, es wird nichts gestaged
	in, err := ResolveVideo("https://example.com/v.mp4", "QUJD", []string{"f1"}, []string{"f2"}, NewStore(t.TempDir()))
	if err != nil {
		t.Fatalf("unerwarteter Fehler: %v", err)
	}
	if in.Kind != KindURL {
		t.Errorf("Kind = %v, erwartet KindURL", in.Kind)
	}
}

func TestResolveVideoFrames(t *testing.T) {
	in, err := ResolveVideo("", "", []string{"https://example.com/f1.jpg"}, nil, NewStore(t.TempDir()))
	if err != nil {
		t.Fatalf("unerwarteter Fehler: %v", err)
	}
	if in.Kind != KindFrames {
		t.Errorf("Kind = %v, erwartet KindFrames", in.Kind)
	}
}

func TestResolveVideoOhneQuelle(t *testing.T) {
	_, err := ResolveVideo("", "", nil, nil, NewStore(t.TempDir()))
	if !errors.Is(err, ErrNoVideo) {
		t.Errorf("err = %v, erwartet ErrNoVideo", err)
	}
}

func TestResolveImageListAnzahl(t *testing.T) {
	cases := []struct {
		name    string
		urls    []string
		wantErr bool
	}{
		{"Zwei Bilder", []string{"a", "b"}, false},
		{"Vier Bilder", []string{"a", "b", "c", "d"}, false},
		{"Ein Bild zu wenig", []string{"a"}, true},
		{"Fuenf Bilder zu viel", []string{"a", "b", "c", "d", "e"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inputs, err := ResolveImageList(tc.urls, nil, 2, 4)
			if tc.wantErr {
				if err == nil {
					t.Fatal("Fehler erwartet, bekam nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unerwarteter Fehler: %v", err)
			}
			if len(inputs) != len(tc.urls) {
				t.Errorf("len(inputs) = %d, erwartet %d", len(inputs), len(tc.urls))
			}
			// Reihenfolge muss der Caller-Reihenfolge entsprechen
			for i, u := range tc.urls {
				if inputs[i].Ref != u {
					t.Errorf("inputs[%d].Ref = %q, erwartet %q", i, inputs[i].Ref, u)
				}
			}
		})
	}
}

func TestResolveImageListOhneQuelle(t *testing.T) {
	if _, err := ResolveImageList(nil, nil, 2, 4); err == nil {
		t.Error("Fehler erwartet, bekam nil")
	}
}
