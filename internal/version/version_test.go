package version

import (
	"strings"
	"testing"
)

func TestGetVersionDefault(t *testing.T) {
	origVersion := Version
	defer func() { Version = origVersion }()

	Version = "dev"
	if got := GetVersion(); got != "dev" {
		t.Errorf("GetVersion() with defaults = %v, want dev", got)
	}
}

func TestGetVersionWithLdflags(t *testing.T) {
	origVersion := Version
	defer func() { Version = origVersion }()

	Version = "v1.2.3"
	if got := GetVersion(); got != "v1.2.3" {
		t.Errorf("GetVersion() with ldflags = %v, want v1.2.3", got)
	}
}

func TestGetFullVersion(t *testing.T) {
	origVersion := Version
	origCommit := GitCommit
	defer func() {
		Version = origVersion
		GitCommit = origCommit
	}()

	Version = "v1.2.3"
	GitCommit = "abc1234"

	got := GetFullVersion()
	if !strings.Contains(got, "v1.2.3") || !strings.Contains(got, "abc1234") {
		t.Errorf("GetFullVersion() = %v, want version and commit", got)
	}
}
