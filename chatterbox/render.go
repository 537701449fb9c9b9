package chatterbox

import (
	"regexp"
	"time"
)

// TimestampLayout is the format used when a payload carries no "when".
const TimestampLayout = "15:04:05"

// Templates for each display category. Fields are written as {name}.
var templates = map[Category]string{
	CategoryMessage:  "[{when}] <{sender}> {message}",
	CategoryAction:   "[{when}] * {sender} {message}",
	CategoryJoin:     "[{when}] -- {message}",
	CategoryNick:     "[{when}] -- {message}",
	CategoryDirected: "[{when}] {sender} => {target}: {message}",
}

var placeholder = regexp.MustCompile(`\{(\w+)\}`)

// Render substitutes {name} placeholders in tmpl with fields[name].
// Placeholders without a field render as the empty string.
func Render(tmpl string, fields map[string]string) string {
	return placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		return fields[m[1:len(m)-1]]
	})
}

// TemplateFor returns the display template of a category, falling back to
// the message template.
func TemplateFor(c Category) string {
	if t, ok := templates[c]; ok {
		return t
	}
	return templates[CategoryMessage]
}

// ChatEntry is one renderable unit of chat history.
type ChatEntry struct {
	Category  Category
	Timestamp string
	Sender    string
	Target    string // directed messages only
	Body      string
	Text      string // template output
}

// RenderEntry builds a ChatEntry for an event of category c. now supplies the
// timestamp when the payload has none.
func RenderEntry(c Category, p Payload, now time.Time) ChatEntry {
	when := p.When
	if when == "" {
		when = now.Format(TimestampLayout)
	}
	e := ChatEntry{
		Category:  c,
		Timestamp: when,
		Sender:    p.Sender,
		Body:      p.Message,
	}
	if c == CategoryDirected {
		e.Target = p.Target
	}
	e.Text = Render(TemplateFor(c), map[string]string{
		"mode":    c.String(),
		"when":    e.Timestamp,
		"sender":  e.Sender,
		"target":  e.Target,
		"message": e.Body,
	})
	return e
}
