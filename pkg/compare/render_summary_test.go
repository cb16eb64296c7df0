package compare

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderSummaryIncludesCountsOnly(t *testing.T) {
	result := Diff(build(object("id", "name")), build(object("id", "email")), DefaultOptions())

	var out bytes.Buffer
	if err := RenderSummary(&out, result); err != nil {
		t.Fatalf("RenderSummary failed: %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"Summary of changes:",
		"- total: 2",
		"- breaking: 2",
		"- non-breaking: 0",
		"- additions: 1",
		"- deletions: 1",
		"- modifications: 0",
		"Compatible: false",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q in summary: %s", want, text)
		}
	}
	if strings.Contains(text, "root.name") {
		t.Fatalf("did not expect paths in summary text output: %s", text)
	}
}

func TestRenderSummaryNoChanges(t *testing.T) {
	var out bytes.Buffer
	if err := RenderSummary(&out, Result{Summary: Summary{Compatible: true}}); err != nil {
		t.Fatalf("RenderSummary failed: %v", err)
	}
	if out.String() != "No changes found.\n" {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestRenderSummaryWriteError(t *testing.T) {
	if err := RenderSummary(failingWriter{}, Result{}); err == nil {
		t.Fatalf("expected write error")
	}
}
