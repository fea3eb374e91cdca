package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

// runCommand executes the root command with args and captures stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestUserAddAndList(t *testing.T) {
	dbFile := filepath.Join(t.TempDir(), "tinyplan.db")
	t.Setenv("TINYPLAN_DB_PATH", dbFile)

	out, err := runCommand(t, "user", "add", "Ann", "+1-555-0100")
	if err != nil {
		t.Fatalf("user add: %v", err)
	}
	if !strings.Contains(out, "Created user 1") {
		t.Errorf("user add output = %q, want created user 1", out)
	}

	out, err = runCommand(t, "user", "list")
	if err != nil {
		t.Fatalf("user list: %v", err)
	}
	if !strings.Contains(out, "Ann") || !strings.Contains(out, "+1-555-0100") {
		t.Errorf("user list output = %q, want Ann with phone", out)
	}
}

func TestDuplicatePhoneSurfacesFriendlyError(t *testing.T) {
	dbFile := filepath.Join(t.TempDir(), "tinyplan.db")
	t.Setenv("TINYPLAN_DB_PATH", dbFile)

	if _, err := runCommand(t, "user", "add", "Ann", "+1-555-0100"); err != nil {
		t.Fatalf("first add: %v", err)
	}

	_, err := runCommand(t, "user", "add", "Bob", "+1-555-0100")
	if err == nil {
		t.Fatal("expected duplicate phone error")
	}
}

func TestTaskFlow(t *testing.T) {
	dbFile := filepath.Join(t.TempDir(), "tinyplan.db")
	t.Setenv("TINYPLAN_DB_PATH", dbFile)

	if _, err := runCommand(t, "user", "add", "Ann", "+1-555-0100"); err != nil {
		t.Fatalf("user add: %v", err)
	}
	if _, err := runCommand(t, "task", "add", "1", "Buy", "milk"); err != nil {
		t.Fatalf("task add: %v", err)
	}

	out, err := runCommand(t, "task", "list", "1")
	if err != nil {
		t.Fatalf("task list: %v", err)
	}
	if !strings.Contains(out, "Buy milk") {
		t.Errorf("task list output = %q, want Buy milk", out)
	}
}

func TestTaskForUnknownUserFails(t *testing.T) {
	dbFile := filepath.Join(t.TempDir(), "tinyplan.db")
	t.Setenv("TINYPLAN_DB_PATH", dbFile)

	if _, err := runCommand(t, "task", "add", "99", "Orphan"); err == nil {
		t.Fatal("expected invalid reference error")
	}
}

func TestProjectAssignAndMembers(t *testing.T) {
	dbFile := filepath.Join(t.TempDir(), "tinyplan.db")
	t.Setenv("TINYPLAN_DB_PATH", dbFile)

	if _, err := runCommand(t, "user", "add", "Ann", "+1-555-0100"); err != nil {
		t.Fatalf("user add: %v", err)
	}
	if _, err := runCommand(t, "project", "add", "Launch"); err != nil {
		t.Fatalf("project add: %v", err)
	}
	if _, err := runCommand(t, "project", "assign", "1", "1"); err != nil {
		t.Fatalf("project assign: %v", err)
	}

	out, err := runCommand(t, "project", "members", "1")
	if err != nil {
		t.Fatalf("project members: %v", err)
	}
	if !strings.Contains(out, "Ann") {
		t.Errorf("members output = %q, want Ann", out)
	}

	out, err = runCommand(t, "project", "list", "--user", "1")
	if err != nil {
		t.Fatalf("project list --user: %v", err)
	}
	if !strings.Contains(out, "Launch") {
		t.Errorf("project list output = %q, want Launch", out)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"a very long project title", 10, "a very ..."},
		{"abc", 2, "ab"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
