package notify

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestCommandFor(t *testing.T) {
	n := Notification{Title: `Build "done"`, Message: `it's \ok`, Urgency: Critical}
	tests := []struct {
		goos string
		want Command
	}{
		{"linux", Command{Name: "notify-send", Args: []string{"-u", "critical", "--", `Build "done"`, `it's \ok`}}},
		{"freebsd", Command{Name: "notify-send", Args: []string{"-u", "critical", "--", `Build "done"`, `it's \ok`}}},
		{"darwin", Command{Name: "osascript", Args: []string{"-e", `display notification "it's \\ok" with title "Build \"done\""`}}},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			got, err := CommandFor(tt.goos, n)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CommandFor(%s) = %#v, want %#v", tt.goos, got, tt.want)
			}
		})
	}

	win, err := CommandFor("windows", n)
	if err != nil {
		t.Fatal(err)
	}
	script := win.Args[len(win.Args)-1]
	if win.Name != "powershell" || !strings.Contains(script, `CreateTextNode('it''s \ok')`) {
		t.Errorf("windows command = %#v", win)
	}

	if _, err := CommandFor("plan9", n); !errors.Is(err, ErrUnsupportedOS) {
		t.Errorf("CommandFor(plan9) error = %v", err)
	}
	if _, err := CommandFor("linux", Notification{}); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("CommandFor(empty) error = %v", err)
	}
}

func TestCommandForDefaultUrgency(t *testing.T) {
	got, err := CommandFor("linux", Notification{Message: "m"})
	if err != nil {
		t.Fatal(err)
	}
	if got.Args[1] != "normal" {
		t.Errorf("urgency = %q, want normal", got.Args[1])
	}
}

func TestCommandForDashMessage(t *testing.T) {
	got, err := CommandFor("linux", Notification{Title: "-t", Message: "--help"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"-u", "normal", "--", "-t", "--help"}
	if !reflect.DeepEqual(got.Args, want) {
		t.Errorf("args = %q, want %q", got.Args, want)
	}
}

func TestParseUrgency(t *testing.T) {
	for in, want := range map[string]Urgency{"": Normal, "LOW": Low, "critical": Critical} {
		got, err := ParseUrgency(in)
		if err != nil || got != want {
			t.Errorf("ParseUrgency(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseUrgency("urgent"); !errors.Is(err, ErrInvalidUrgency) {
		t.Errorf("ParseUrgency(urgent) error = %v", err)
	}
}

func TestNotifierSend(t *testing.T) {
	var gotPath string
	var gotArgs []string
	nt := &Notifier{
		GOOS:   "linux",
		Lookup: func(name string) (string, error) { return "/usr/bin/" + name, nil },
		Exec: func(_ context.Context, path string, args ...string) error {
			gotPath, gotArgs = path, args
			return nil
		},
	}
	if err := nt.Send(context.Background(), Notification{Title: "t", Message: "m"}); err != nil {
		t.Fatal(err)
	}
	if gotPath != "/usr/bin/notify-send" || !reflect.DeepEqual(gotArgs, []string{"-u", "normal", "--", "t", "m"}) {
		t.Errorf("exec %s %v", gotPath, gotArgs)
	}

	missing := errors.New("not found")
	nt.Lookup = func(string) (string, error) { return "", missing }
	if err := nt.Send(context.Background(), Notification{Message: "m"}); !errors.Is(err, missing) {
		t.Errorf("Send() error = %v, want lookup error", err)
	}
}

func TestRun(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}

	res, err := Run(context.Background(), []string{sh, "-c", "exit 3"}, nil, io.Discard, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
	n := res.Notification("bytesized")
	if n.Urgency != Critical || !strings.Contains(n.Message, "status 3") {
		t.Errorf("Notification() = %+v", n)
	}

	res, err = Run(context.Background(), []string{sh, "-c", "true"}, nil, io.Discard, io.Discard)
	if err != nil || res.ExitCode != 0 {
		t.Fatalf("Run(true) = %+v, %v", res, err)
	}
	if n := res.Notification("x"); !strings.Contains(n.Message, "finished") {
		t.Errorf("Notification() = %+v", n)
	}

	if _, err := Run(context.Background(), []string{"/nonexistent/command"}, nil, io.Discard, io.Discard); err == nil {
		t.Error("Run() of a missing command succeeded")
	}
}

func TestRunResultRoundsElapsed(t *testing.T) {
	r := RunResult{Args: []string{"make"}, Elapsed: 1234 * time.Millisecond}
	if n := r.Notification(""); !strings.Contains(n.Message, "1.2s") {
		t.Errorf("Notification() = %q", n.Message)
	}
}
