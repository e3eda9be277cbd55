package progress

import (
	"bytes"
	"testing"
)

func TestCIReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{Out: &buf, Description: "Rendering sections"}
	r.Start(2)
	r.Update(1, "intro")
	r.Update(2, "closing")
	r.Finish()

	want := "Rendering sections: 2 sections\n[1/2] intro\n[2/2] closing\nRendering sections: done\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestNewReporterInCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewReporter("x").(*CIReporter); !ok {
		t.Error("expected CIReporter when CI is set")
	}
}

func TestNewReporterInTerminal(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	if _, ok := NewReporter("x").(*TerminalReporter); !ok {
		t.Error("expected TerminalReporter outside CI")
	}
}
