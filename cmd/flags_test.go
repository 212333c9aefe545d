package cmd

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestAddFlag(t *testing.T) {
	c := &cobra.Command{Use: "test"}
	var (
		s string
		b bool
		n int
		u uint64
	)
	switches.addFlag(c, &s, "input-dir", "data/prepared")
	switches.addFlag(c, &b, "gzip", false)
	switches.addFlag(c, &n, "batch-size", 500)
	switches.addFlag(c, &u, "seed", uint64(0))
	if f := c.Flags().Lookup("input-dir"); f == nil || f.Shorthand != "i" || f.DefValue != "data/prepared" {
		t.Fatalf("input-dir flag not registered as expected: %+v", f)
	}
	if f := c.Flags().Lookup("batch-size"); f == nil || f.DefValue != "500" {
		t.Fatalf("batch-size flag not registered as expected: %+v", f)
	}
	if err := c.Flags().Set("gzip", "true"); err != nil || !b {
		t.Fatalf("gzip flag did not bind: err=%v b=%v", err, b)
	}
}

func TestCommandsRegistered(t *testing.T) {
	expected := map[string]bool{"load": false, "cube": false, "seed": false, "schema": false, "version": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := expected[c.Name()]; ok {
			expected[c.Name()] = true
		}
	}
	for name, found := range expected {
		if !found {
			t.Fatalf("command %v not registered", name)
		}
	}
}
