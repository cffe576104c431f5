package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestColoredPlain(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = saved }()

	if got := Colored(); got != Version {
		t.Errorf("Colored() = %q, want %q", got, Version)
	}
}

func TestColoredOddVersion(t *testing.T) {
	saved := Version
	Version = "nightly"
	defer func() { Version = saved }()

	if got := Colored(); got != "nightly" {
		t.Errorf("Colored() = %q", got)
	}
}
