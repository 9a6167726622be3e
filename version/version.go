// version.go - Versionsinformation fuer visiond
// Wird beim Release-Build via -ldflags ueberschrieben
package version

var Version string = "1.0.0"
