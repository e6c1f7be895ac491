package cobra

import (
	"bytes"
	"strings"
	"testing"
)

// executeCmd runs the root command with the given args and returns stdout, stderr, and error.
func executeCmd(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	rootCmd := NewRootCmd()
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRoot_Help(t *testing.T) {
	tests := []string{"--help", "-h"}
	for _, arg := range tests {
		t.Run(arg, func(t *testing.T) {
			stdout, _, err := executeCmd(arg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !strings.Contains(stdout, "conf2wiki") {
				t.Error("expected 'conf2wiki' in help output")
			}
			if !strings.Contains(stdout, "Available Commands") {
				t.Error("expected 'Available Commands' in help output")
			}
			for _, cmd := range []string{"export", "upload", "sync", "fields", "doctor", "version"} {
				if !strings.Contains(stdout, cmd) {
					t.Errorf("expected '%s' command in help output", cmd)
				}
			}
		})
	}
}

func TestRoot_Version(t *testing.T) {
	tests := []string{"--version", "version"}
	for _, arg := range tests {
		t.Run(arg, func(t *testing.T) {
			stdout, _, err := executeCmd(arg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(stdout, "conf2wiki") {
				t.Error("expected 'conf2wiki' in version output")
			}
		})
	}
}

func TestRoot_UnknownCommand(t *testing.T) {
	_, _, err := executeCmd("nonexistent")
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("expected 'unknown command' in error, got: %v", err)
	}
}

func TestExportCmd_Help(t *testing.T) {
	stdout, _, err := executeCmd("export", "--help")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "export") {
		t.Error("expected 'export' in help output")
	}
	if !strings.Contains(stdout, "--dry-run") {
		t.Error("expected '--dry-run' flag in help output")
	}
}

func TestUploadCmd_Help(t *testing.T) {
	stdout, _, err := executeCmd("upload", "--help")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "upload") {
		t.Error("expected 'upload' in help output")
	}
	if !strings.Contains(stdout, "--dry-run") {
		t.Error("expected '--dry-run' flag in help output")
	}
}

func TestSyncCmd_Help(t *testing.T) {
	stdout, _, err := executeCmd("sync", "--help")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, flag := range []string{"--dry-run", "--export-only", "--upload-only"} {
		if !strings.Contains(stdout, flag) {
			t.Errorf("expected '%s' in sync help output", flag)
		}
	}
}

func TestDoctorCmd_Help(t *testing.T) {
	stdout, _, err := executeCmd("doctor", "--help")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "--check-wiki") {
		t.Error("expected '--check-wiki' flag in help output")
	}
}

func TestFieldsCmd_TooManyArgs(t *testing.T) {
	_, _, err := executeCmd("fields", "query1", "query2")
	if err == nil {
		t.Fatal("expected error for too many args")
	}
}

func TestExportCmd_RejectsArgs(t *testing.T) {
	_, _, err := executeCmd("export", "unexpected")
	if err == nil {
		t.Fatal("expected error for positional args")
	}
}

func TestGlobalVerboseFlag(t *testing.T) {
	// Reset global opts before test
	globalOpts = GlobalOpts{}

	_, _, _ = executeCmd("--verbose", "version")

	if !GetGlobalOpts().Verbose {
		t.Error("expected verbose flag to be set")
	}
}
