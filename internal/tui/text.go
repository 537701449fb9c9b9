package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/net/html"
	"mvdan.cc/xurls/v2"
)

var urlRegex = xurls.Strict()

// PlainText strips markup from a message body and decodes its entities. The
// relay linkifies bodies, so URLs arrive wrapped in <a> tags.
func PlainText(body string) string {
	if !strings.ContainsAny(body, "<&") {
		return body
	}
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(body))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}

// highlightLinks renders every URL in s with style.
func highlightLinks(s string, style lipgloss.Style) string {
	if !strings.Contains(s, ".") {
		return s
	}
	return urlRegex.ReplaceAllStringFunc(s, func(u string) string {
		return style.Render(u)
	})
}
