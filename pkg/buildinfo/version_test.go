package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	s := String()
	for _, want := range []string{"version: " + Version, "commit: " + Commit, "built: " + Date} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}

func TestTemplate(t *testing.T) {
	tmpl := Template()
	if !strings.HasPrefix(tmpl, "{{.Name}} version ") {
		t.Errorf("Template() = %q, want cobra name placeholder prefix", tmpl)
	}
	if !strings.HasSuffix(tmpl, "\n") {
		t.Error("Template() should end with a newline")
	}
}

func TestFill(t *testing.T) {
	oldVersion, oldCommit, oldDate := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldVersion, oldCommit, oldDate })

	stamped := debug.BuildInfo{
		Main: debug.Module{Version: "v1.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2025-01-02T03:04:05Z"},
		},
	}

	tests := []struct {
		name string
		set  [3]string // Version, Commit, Date before fill
		info debug.BuildInfo
		want [3]string
	}{
		{
			name: "go install",
			set:  [3]string{"dev", "none", "unknown"},
			info: stamped,
			want: [3]string{"v1.4.0", "abc123", "2025-01-02T03:04:05Z"},
		},
		{
			name: "ldflags win",
			set:  [3]string{"v2.0.0", "feed", "today"},
			info: stamped,
			want: [3]string{"v2.0.0", "feed", "today"},
		},
		{
			name: "devel build",
			set:  [3]string{"dev", "none", "unknown"},
			info: debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			want: [3]string{"dev", "none", "unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, Commit, Date = tt.set[0], tt.set[1], tt.set[2]
			fill(&tt.info)
			if got := [3]string{Version, Commit, Date}; got != tt.want {
				t.Errorf("fill() = %v, want %v", got, tt.want)
			}
		})
	}
}
