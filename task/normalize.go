// MODUL: normalize
// ZWECK: Best-Effort-Extraktion von JSON aus gefenctem Modell-Output
// INPUT: Roher Modell-Text
// OUTPUT: Entfencter, getrimmter String
// NEBENEFFEKTE: Keine
// ABHAENGIGKEITEN: strings (stdlib)
// HINWEISE: Totale Funktion - ohne Fence wird der Text unveraendert
// (getrimmt) zurueckgegeben; das Ergebnis wird bewusst NICHT als JSON
// geparst oder validiert

package task

import (
	"strings"
)

// ExtractJSON entfernt einen fuehrenden ```json Fence-Marker und verwirft
// alles ab dem naechsten ``` Marker. Eine Zeile gilt nur dann als Opener,
// wenn sie exakt aus ```json besteht. Fehlformatierter Modell-Output
// passiert die Funktion unveraendert.
func ExtractJSON(response string) string {
	lines := strings.Split(response, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "```json" {
			response = strings.Join(lines[i+1:], "\n")
			response, _, _ = strings.Cut(response, "```")
			break
		}
	}

	return strings.TrimSpace(response)
}
