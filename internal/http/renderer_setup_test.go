package httpx

import (
	"os"
	"testing"
)

// requireRenderer parses the templates from the source tree, skipping the
// test when they are not reachable from the package directory.
func requireRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{TemplateFS: os.DirFS(TemplatePathFromTest)})
	if err != nil {
		t.Skipf("templates unavailable: %v", err)
	}
	return tr
}
