package components

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardview/views/models"
)

func renderString(t *testing.T, fn func(*strings.Builder) error) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, fn(&sb))
	return sb.String()
}

func TestBoardList(t *testing.T) {
	ctx := context.Background()

	out := renderString(t, func(sb *strings.Builder) error {
		return BoardList([]models.BoardView{{Slug: "demo", Title: "Demo <b>"}}).Render(ctx, sb)
	})
	assert.Contains(t, out, `href="#/b/demo"`)
	assert.Contains(t, out, "Demo &lt;b&gt;")

	out = renderString(t, func(sb *strings.Builder) error {
		return BoardList(nil).Render(ctx, sb)
	})
	assert.Contains(t, out, "No published boards found.")
}

func TestCardGrid_LinkedAndInertCards(t *testing.T) {
	ctx := context.Background()
	cards := []models.CardView{
		{ID: "1", Title: "Linked", LinkURL: "https://example.com/a", ImageURL: "img.png"},
		{ID: "2", Title: "Plain", DescriptionHTML: "<p>hi</p>"},
	}

	out := renderString(t, func(sb *strings.Builder) error {
		return CardGrid(cards).Render(ctx, sb)
	})

	assert.Contains(t, out, `href="https://example.com/a" target="_blank" rel="noopener noreferrer"`)
	assert.Contains(t, out, `<img src="img.png" alt="">`)
	assert.Contains(t, out, "Open link ↗")
	assert.Contains(t, out, `<div class="card inert">`)
	assert.Contains(t, out, `<div class="placeholder"></div>`)
	assert.Contains(t, out, "<p>hi</p>")
	assert.Contains(t, out, "No link")
	assert.Equal(t, 1, strings.Count(out, "<a "), "only the linked card is an anchor")
}

func TestCardGrid_RejectsScriptURLs(t *testing.T) {
	out := renderString(t, func(sb *strings.Builder) error {
		return CardGrid([]models.CardView{{Title: "x", LinkURL: "javascript:alert(1)"}}).Render(context.Background(), sb)
	})
	assert.NotContains(t, out, "javascript:")
}

func TestCategoryFilter(t *testing.T) {
	ctx := context.Background()

	out := renderString(t, func(sb *strings.Builder) error {
		return CategoryFilter([]models.CategoryView{
			{ID: "1", Title: "A", Selected: true},
			{ID: "2", Title: "B"},
		}, false).Render(ctx, sb)
	})
	assert.Contains(t, out, `<button class="btn" data-filter="all">All</button>`)
	assert.Contains(t, out, `<button class="btn active" data-filter="1">A</button>`)
	assert.Contains(t, out, `<button class="btn" data-filter="2">B</button>`)

	out = renderString(t, func(sb *strings.Builder) error {
		return CategoryFilter(nil, true).Render(ctx, sb)
	})
	assert.Empty(t, out)
}

func TestAmbient(t *testing.T) {
	ctx := context.Background()

	out := renderString(t, func(sb *strings.Builder) error { return Ambient("img.png").Render(ctx, sb) })
	assert.Contains(t, out, `data-background="img.png"`)

	out = renderString(t, func(sb *strings.Builder) error { return Ambient("").Render(ctx, sb) })
	assert.Contains(t, out, `data-background=""`)
}
