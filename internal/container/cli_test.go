package container

import (
	"strings"
	"testing"
)

func TestCLIRuntime_ImplementsRuntimeInterface(t *testing.T) {
	var _ Runtime = (*CLIRuntime)(nil)
}

func TestNewCLIRuntime(t *testing.T) {
	rt := NewCLIRuntime("docker", nil)
	if rt == nil {
		t.Fatal("NewCLIRuntime returned nil")
	}
	if rt.bin != "docker" {
		t.Errorf("expected runtime docker, got %s", rt.bin)
	}
}

func TestSplitOptions(t *testing.T) {
	got, err := SplitOptions([]string{"-v /home/user:/root", "-e TERM=xterm", "--privileged"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"-v", "/home/user:/root", "-e", "TERM=xterm", "--privileged"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("arg %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestSplitOptions_QuotedValues(t *testing.T) {
	got, err := SplitOptions([]string{`-e MSG="hello world"`})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[1] != "MSG=hello world" {
		t.Errorf("unexpected split %v", got)
	}
}

func TestSplitOptions_UnterminatedQuote(t *testing.T) {
	if _, err := SplitOptions([]string{`-e MSG="oops`}); err == nil {
		t.Fatal("expected error for unterminated quote")
	}
}

func TestSplitOptions_Empty(t *testing.T) {
	got, err := SplitOptions(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no args, got %v", got)
	}
}

func TestExecArgs(t *testing.T) {
	got, err := execArgs("berth-e-0011223344556677", []string{"-it", "-u root"}, []string{"/bin/ash", "-l"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "exec -it -u root berth-e-0011223344556677 /bin/ash -l"
	if strings.Join(got, " ") != want {
		t.Errorf("expected %q, got %q", want, strings.Join(got, " "))
	}
}

func TestState_Runnable(t *testing.T) {
	cases := map[State]bool{
		StateCreated:  true,
		StateRunning:  true,
		StateExited:   true,
		StatePaused:   false,
		State("dead"): false,
	}
	for state, want := range cases {
		if got := state.Runnable(); got != want {
			t.Errorf("state %q: expected runnable=%v, got %v", state, want, got)
		}
	}
}

func TestCommandError_IncludesCommandAndStderr(t *testing.T) {
	err := &CommandError{
		Cmd:      "docker create --name x alpine:edge",
		ExitCode: 125,
		Stderr:   "Error: No such image",
	}

	msg := err.Error()
	if !strings.Contains(msg, "docker create") {
		t.Errorf("error should include the command, got: %s", msg)
	}
	if !strings.Contains(msg, "exit 125") {
		t.Errorf("error should include the exit code, got: %s", msg)
	}
	if !strings.Contains(msg, "No such image") {
		t.Errorf("error should include stderr, got: %s", msg)
	}
}
