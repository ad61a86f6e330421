// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	t.Parallel()

	for _, id := range []Id{
		VagrantNotFoundId,
		VagrantfileNotFoundId,
		CommandFailedId,
		SSHConfigFailedId,
		ConfigLoadFailedId,
		MachineNotFoundId,
	} {
		issue := Get(id)
		if issue == nil {
			t.Fatalf("Get(%d) = nil", id)
		}
		if issue.Id() != id {
			t.Errorf("Get(%d).Id() = %d", id, issue.Id())
		}
		if strings.TrimSpace(string(issue.MarkdownMsg())) == "" {
			t.Errorf("issue %d has an empty message", id)
		}
	}
}

func TestValues(t *testing.T) {
	t.Parallel()

	if got := len(Values()); got != len(issues) {
		t.Errorf("Values() returned %d issues, want %d", got, len(issues))
	}
}

func TestIssue_Render(t *testing.T) {
	// Not parallel: swaps the package-level renderer.

	// Swap the glamour renderer for a pass-through so the test does not
	// depend on terminal styling.
	orig := render
	render = func(in, _ string) (string, error) { return in, nil }
	t.Cleanup(func() { render = orig })

	out, err := Get(VagrantNotFoundId).Render("dark")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, "Vagrant binary not found") {
		t.Errorf("Render() output missing title:\n%s", out)
	}
	if !strings.Contains(out, "See also") {
		t.Errorf("Render() should append doc links:\n%s", out)
	}
}

func TestIssue_LinkAccessorsCopy(t *testing.T) {
	t.Parallel()

	issue := Get(VagrantNotFoundId)
	links := issue.DocLinks()
	if len(links) == 0 {
		t.Fatal("expected doc links on the vagrant-not-found issue")
	}
	links[0] = "mutated"
	if issue.DocLinks()[0] == "mutated" {
		t.Error("DocLinks() must return a defensive copy")
	}
}
