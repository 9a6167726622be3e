// cmd_test.go - Tests fuer das CLI-Setup
package cmd

import (
	"testing"
)

func TestNewCLI(t *testing.T) {
	cli := NewCLI()

	if cli.Use != "visiond" {
		t.Errorf("Use = %q, erwartet visiond", cli.Use)
	}

	names := make(map[string]bool)
	for _, c := range cli.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"serve", "version"} {
		if !names[want] {
			t.Errorf("Subcommand %q fehlt", want)
		}
	}

	if flag := cli.Flags().Lookup("version"); flag == nil {
		t.Error("Flag --version fehlt")
	}
}

func TestServeCmdAlias(t *testing.T) {
	cmd := newServeCmd()

	found := false
	for _, alias := range cmd.Aliases {
		if alias == "start" {
			found = true
		}
	}
	if !found {
		t.Errorf("Aliases = %v, erwartet start", cmd.Aliases)
	}
}
