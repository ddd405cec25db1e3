package display

import (
	"strings"
	"testing"
)

func TestWrapText(t *testing.T) {
	in := "Durable franchise with expanding cloud margins and a strong balance sheet."

	out := wrapText(in, 30)
	for i, line := range strings.Split(out, "\n") {
		if len(line) > 30 {
			t.Fatalf("line %d exceeds width: %q", i, line)
		}
	}
	if strings.ReplaceAll(out, "\n", " ") != in {
		t.Fatalf("wrapping must preserve words, got %q", out)
	}
}

func TestWrapTextEmpty(t *testing.T) {
	if got := wrapText("", 20); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestStageLabelFallsBackToName(t *testing.T) {
	if got := stageLabel("warmup"); got != "warmup" {
		t.Fatalf("expected raw name, got %q", got)
	}
}
