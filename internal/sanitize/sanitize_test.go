package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrict(t *testing.T) {
	t.Run("strips all tags", func(t *testing.T) {
		assert.Equal(t, "hello", Strict("<b>hello</b>"))
		assert.Equal(t, "alert(1)", Strict("<script>alert(1)</script>"))
	})

	t.Run("plain text passes through", func(t *testing.T) {
		assert.Equal(t, "just a name", Strict("just a name"))
	})
}

func TestContent(t *testing.T) {
	t.Run("removes script but keeps safe markup", func(t *testing.T) {
		got := Content("<strong>hi</strong><script>alert(1)</script>")
		assert.Contains(t, got, "<strong>hi</strong>")
		assert.NotContains(t, got, "<script>")
		assert.NotContains(t, got, "</script>")
	})

	t.Run("removes event handlers", func(t *testing.T) {
		got := Content(`<p onclick="steal()">text</p>`)
		assert.Equal(t, "<p>text</p>", got)
	})

	t.Run("forces nofollow on links", func(t *testing.T) {
		got := Content(`<a href="https://example.com">link</a>`)
		assert.Contains(t, got, `rel="nofollow"`)
		assert.Contains(t, got, `href="https://example.com"`)
	})

	t.Run("drops javascript urls", func(t *testing.T) {
		got := Content(`<a href="javascript:alert(1)">x</a>`)
		assert.NotContains(t, got, "javascript:")
	})

	t.Run("keeps images with src and alt", func(t *testing.T) {
		got := Content(`<img src="https://example.com/a.png" alt="pic" onerror="x()">`)
		assert.Contains(t, got, `src="https://example.com/a.png"`)
		assert.Contains(t, got, `alt="pic"`)
		assert.NotContains(t, got, "onerror")
	})
}
