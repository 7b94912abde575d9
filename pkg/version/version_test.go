package version

import (
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	if Version == "" {
		t.Fatal("Version must not be empty")
	}
	if !strings.Contains(Version, ".") {
		t.Errorf("Version = %q, expected a dotted version string", Version)
	}
}
