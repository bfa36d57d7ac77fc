package httpx

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rushil0704/auth-client-1/internal/dashboard"
)

func TestContentTemplateFor(t *testing.T) {
	t.Parallel()
	tr := requireRenderer(t)

	cases := map[string]string{
		PageDashboard:   "dashboard-content",
		PageUsers:       "users-list-content",
		PageCategories:  "categories-list-content",
		PageImageUpload: "image-upload-content",
		"unknown":       "dashboard-content",
	}
	for page, want := range cases {
		assert.Equal(t, want, ContentTemplateFor(page), "page %s", page)
		assert.True(t, tr.HasTemplate(want), "%s is parsed", want)
	}
}

func TestTemplateHelpers_RenderSection(t *testing.T) {
	t.Parallel()
	tr := requireRenderer(t)

	cloned, err := tr.t.Clone()
	require.NoError(t, err)
	cloned, err = cloned.Parse(`{{define "section"}}{{ renderSection .Page .Data }}{{end}}`)
	require.NoError(t, err)

	data := map[string]any{"Dashboard": dashboard.Generate(nil)}

	t.Run("dashboard renders cards and charts", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, cloned.ExecuteTemplate(&buf, "section", map[string]any{"Page": PageDashboard, "Data": data}))
		for _, want := range []string{"metric-title", "EBITDA", "Profit margin", "Debt to equity"} {
			assert.Contains(t, buf.String(), want)
		}
	})

	t.Run("unknown page falls back to dashboard", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, cloned.ExecuteTemplate(&buf, "section", map[string]any{"Page": "nope", "Data": data}))
		assert.Contains(t, buf.String(), "EBITDA")
	})
}
