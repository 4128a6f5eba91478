package hxui

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRenderFlashesOOBEmpty(t *testing.T) {
	if got := RenderFlashesOOB(nil); got != "" {
		t.Errorf("RenderFlashesOOB(nil) = %q, want empty string", got)
	}
}

func TestRenderFlashesOOB(t *testing.T) {
	got := RenderFlashesOOB([]Flash{
		{Level: FlashInfo, Message: "Showing 20 items per page"},
		{Level: FlashError, Message: "Could not load page"},
	})

	for _, want := range []string{
		`id="toasts"`,
		`hx-swap-oob="beforeend"`,
		`class="toast toast-info" role="status"`,
		`class="toast toast-error" role="alert"`,
		"Showing 20 items per page",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderFlashesOOB() missing %q in %s", want, got)
		}
	}
}

func TestRenderFlashesOOBEscapes(t *testing.T) {
	got := RenderFlashesOOB([]Flash{{Level: `x" onclick="y`, Message: "<script>alert(1)</script>"}})
	if strings.Contains(got, "<script>") || strings.Contains(got, `x" onclick`) {
		t.Errorf("RenderFlashesOOB() did not escape input: %s", got)
	}
}

func TestParseFlashesRoundTrip(t *testing.T) {
	flashes := []Flash{{Level: FlashSuccess, Message: "one"}, {Level: FlashWarning, Message: "two"}}
	got := parseFlashesFromHTML("<p>body</p>" + RenderFlashesOOB(flashes))

	if len(got) != 2 {
		t.Fatalf("parseFlashesFromHTML() = %v, want 2 flashes", got)
	}
	for i := range flashes {
		if got[i] != flashes[i] {
			t.Errorf("flash %d = %+v, want %+v", i, got[i], flashes[i])
		}
	}
}

func TestToastContainer(t *testing.T) {
	var buf bytes.Buffer
	if err := ToastContainer().Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(buf.String(), `id="toasts"`) || !strings.Contains(buf.String(), `aria-live="polite"`) {
		t.Errorf("ToastContainer() = %s", buf.String())
	}
}
