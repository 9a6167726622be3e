// MODUL: prompt
// ZWECK: Default-Prompt-Templates pro Task
// INPUT: Strukturierte Task-Parameter (Kategorien, Detail-Level, Formate)
// OUTPUT: Deterministische Instruktions-Strings
// NEBENEFFEKTE: Keine (reine Funktionen)
// ABHAENGIGKEITEN: api (intern), fmt/strings (stdlib)
// HINWEISE: Ein nicht-leerer Caller-Prompt gewinnt immer ueber jedes
// Template; die Entscheidung trifft der Dispatcher, nie dieses Modul

package prompt

import (
	"fmt"
	"strings"

	"github.com/visiond/visiond/api"
)

// Grounding baut den Prompt fuer 2D-Grounding.
// Mit Kategorien wird die Erkennung gefiltert, sonst werden alle Objekte
// erkannt. includeAttributes erweitert das JSON-Schema um ein
// attributes-Feld.
func Grounding(categories []string, includeAttributes bool) string {
	var b strings.Builder

	if len(categories) > 0 {
		quoted := make([]string, len(categories))
		for i, cat := range categories {
			quoted[i] = fmt.Sprintf("%q", cat)
		}
		fmt.Fprintf(&b, "Locate every instance that belongs to the following categories: %s. ", strings.Join(quoted, ", "))
	} else {
		b.WriteString("Detect all objects in the image. ")
	}

	if includeAttributes {
		b.WriteString(`For each object, report bbox coordinates, label, and any relevant attributes (such as color, type, etc.) in JSON format like: {"bbox_2d": [x1, y1, x2, y2], "label": "object_name", "attributes": {...}}.`)
	} else {
		b.WriteString("Report bbox coordinates in JSON format.")
	}

	return b.String()
}

// Description baut den Prompt fuer Bildbeschreibungen.
// Drei feste Detail-Stufen; unbekannte Stufen fallen auf "detailed" zurueck.
func Description(detailLevel string) string {
	switch detailLevel {
	case "basic":
		return "Provide a brief description of the image."
	case "comprehensive":
		return "Provide a comprehensive and thorough description of the image. " +
			"Include details about: objects and their attributes, people and their actions, " +
			"spatial relationships, colors, textures, background elements, mood, and any text visible in the image."
	default:
		return "Provide a detailed description of the image, including objects, people, actions, and context."
	}
}

// DocumentParsing baut den Prompt fuer Dokumenten-Parsing.
// Unbekannte Formate fallen auf die qwenvl_html Variante zurueck.
func DocumentParsing(format api.OutputFormat) string {
	switch format {
	case api.FormatHTML:
		return "Convert the document to HTML format."
	case api.FormatMarkdown:
		return "Convert the document to Markdown format."
	case api.FormatQwenVLMarkdown:
		return "qwenvl markdown"
	case api.FormatJSON:
		return "Parse the document and output structured information in JSON format."
	default:
		return "qwenvl html"
	}
}

// OCR baut den Prompt fuer Texterkennung.
// wild unterscheidet Naturszenen von Dokumenten. Mit includeBBox wird
// unabhaengig vom Format ein JSON-Array aus bbox_2d/text_content Objekten
// angefordert, granular nach word/line/paragraph.
func OCR(granularity string, includeBBox bool, format api.OutputFormat, wild bool) string {
	var b strings.Builder

	if wild {
		b.WriteString("Read and extract all visible text from the image, including text on signs, labels, and any other surfaces. ")
	} else {
		b.WriteString("Read all the text in the image. ")
	}

	if includeBBox {
		level := granularity
		switch level {
		case "word", "line":
		default:
			level = "paragraph"
		}
		fmt.Fprintf(&b, "Spotting all the text in the image with %s-level, and output in JSON format as "+
			"[{'bbox_2d': [x1, y1, x2, y2], 'text_content': 'text'}, ...].", level)
	} else if format == api.FormatJSON {
		b.WriteString("Output the text content in JSON format.")
	} else {
		b.WriteString("Please output only the text content from the image without any additional descriptions or formatting.")
	}

	return b.String()
}

// Comparison baut den Prompt fuer den Bildvergleich.
// Drei Vergleichstypen, parametrisiert ueber die Bildanzahl; bei JSON-Ausgabe
// wird ein festes Schema (summary/differences/common_elements) angefordert.
func Comparison(comparisonType string, format api.OutputFormat, numImages int) string {
	var b strings.Builder

	switch comparisonType {
	case "changes":
		fmt.Fprintf(&b, "Analyze these %d images in sequence and describe what has changed from one image to the next. ", numImages)
		b.WriteString("Focus on temporal changes, movements, additions, or removals. ")
	case "similarities":
		fmt.Fprintf(&b, "Compare these %d images and identify common elements and similarities. ", numImages)
		b.WriteString("Focus on shared objects, patterns, themes, or visual characteristics. ")
	case "differences":
		fmt.Fprintf(&b, "Compare these %d images and identify all differences between them. ", numImages)
		b.WriteString("Focus on changes in objects, positions, colors, text, or any visual elements. ")
	default:
		fmt.Fprintf(&b, "Compare these %d images and identify all differences between them. ", numImages)
	}

	if format == api.FormatJSON {
		b.WriteString("Provide a detailed analysis in JSON format with the following structure: " +
			`{"summary": "brief overview", "differences": [{"description": "...", "location": "...", ` +
			`"images_affected": [1, 2]}], "common_elements": ["..."]}`)
	} else {
		b.WriteString("Provide a detailed textual analysis of the comparison.")
	}

	return b.String()
}
