package core

import "testing"

func TestVersionInfo(t *testing.T) {
	oldVersion, oldBuild, oldCommit := Version, BuildTime, GitCommit
	t.Cleanup(func() { Version, BuildTime, GitCommit = oldVersion, oldBuild, oldCommit })

	Version, BuildTime, GitCommit = "v1.2.3", "2024-01-15T10:30:00Z", "abc1234"
	want := "v1.2.3 (built 2024-01-15T10:30:00Z, commit abc1234)"
	if got := VersionInfo(); got != want {
		t.Errorf("VersionInfo() = %q, want %q", got, want)
	}
}
