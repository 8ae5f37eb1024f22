// Package sanitize is the storage-side XSS boundary for untrusted visitor
// input. It never rejects input; anything outside the allow-list is removed.
package sanitize

import "github.com/microcosm-cc/bluemonday"

var (
	// strictPolicy strips every tag. Used for nicknames, websites and other
	// plain-text fields.
	strictPolicy = bluemonday.StrictPolicy()

	// contentPolicy keeps the safe subset of HTML that rendered Markdown
	// produces in comment and message bodies.
	contentPolicy = newContentPolicy()
)

func newContentPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"p", "br", "em", "strong", "code", "pre", "blockquote",
		"ul", "ol", "li", "h1", "h2", "h3", "h4", "h5", "h6",
		"a", "img", "table", "thead", "tbody", "tr", "th", "td",
		"del", "hr", "sup", "sub", "span",
	)
	p.AllowURLSchemes("http", "https")
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("src", "alt").OnElements("img")
	p.AllowAttrs("class").OnElements("code", "pre", "span")
	p.RequireNoFollowOnLinks(true)

	return p
}

// Strict removes all markup, returning plain text.
func Strict(s string) string {
	return strictPolicy.Sanitize(s)
}

// Content keeps the allowed subset and neutralizes everything else.
func Content(s string) string {
	return contentPolicy.Sanitize(s)
}
