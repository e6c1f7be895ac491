package render

import (
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already safe", "Brute_Force-v1.2", "Brute_Force-v1.2"},
		{"spaces become underscores", "Brute Force Detection", "Brute_Force_Detection"},
		{"shell metacharacters", "rm -rf /; echo", "rm_-rf____echo"},
		{"slashes", "a/b\\c", "a_b_c"},
		{"unicode", "détection", "d_tection"},
		{"empty stays empty", "", ""},
		{"brackets and quotes", `[ESCU] "Test"`, "_ESCU___Test_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.in); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilenameTruncates(t *testing.T) {
	long := strings.Repeat("a", MaxFilenameLen+50)
	got := SanitizeFilename(long)
	if len(got) != MaxFilenameLen {
		t.Errorf("len = %d, want %d", len(got), MaxFilenameLen)
	}
}

func TestSanitizeFilenameTotal(t *testing.T) {
	// Any input yields something made only of safe characters.
	inputs := []string{"\x00\x01\x02", "  \t\n", "日本語", "a b\tc\nd"}
	for _, in := range inputs {
		got := SanitizeFilename(in)
		if unsafeChars.MatchString(got) {
			t.Errorf("SanitizeFilename(%q) = %q still contains unsafe characters", in, got)
		}
	}
}
