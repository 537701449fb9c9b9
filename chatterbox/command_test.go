package chatterbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCommand(t *testing.T) {
	tests := []struct {
		line string
		want Request
	}{
		{"hello world", Request{Category: CategoryMessage, Body: "hello world"}},
		{"  padded  ", Request{Category: CategoryMessage, Body: "  padded  "}},
		{"/nick alice", Request{Category: CategoryNick, Body: "alice"}},
		{"/nick  bob extra words", Request{Category: CategoryNick, Body: "bob"}},
		{"/me waves", Request{Category: CategoryAction, Body: "waves"}},
		{"/names", Request{Category: CategoryNames}},
		{"/names ignored", Request{Category: CategoryNames}},
		{"/msg bob hi there", Request{Category: CategoryDirected, Body: "hi there", Extra: map[string]string{"target": "bob"}}},
		{"/msg jo-ann  ok", Request{Category: CategoryDirected, Body: "ok", Extra: map[string]string{"target": "jo-ann"}}},
		{"/topic new topic", Request{Category: CategoryTopic, Body: "new topic"}},
		{"/topic", Request{Category: CategoryTopic}},
		{"/dance now", Request{Category: CategoryMessage, Body: "/dance now"}},
		{"/NICK alice", Request{Category: CategoryMessage, Body: "/NICK alice"}},
		{"/nickname x", Request{Category: CategoryMessage, Body: "/nickname x"}},
		{"not /me at start", Request{Category: CategoryMessage, Body: "not /me at start"}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := EncodeCommand(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeCommandUnsendable(t *testing.T) {
	for _, line := range []string{"", "   ", "\t", "/nick", "/nick   ", "/me", "/me  ", "/msg", "/msg bob", "/msg bob   "} {
		_, err := EncodeCommand(line)
		assert.ErrorIs(t, err, ErrUnsendable, "line %q", line)
	}
}

func TestRequestForm(t *testing.T) {
	req := Request{Category: CategoryDirected, Body: "hi & bye", Extra: map[string]string{"target": "bob"}}
	form := req.Form()
	assert.Equal(t, "msg", form.Get("mode"))
	assert.Equal(t, "hi & bye", form.Get("message"))
	assert.Equal(t, "bob", form.Get("target"))
	assert.Equal(t, "message=hi+%26+bye&mode=msg&target=bob", req.Encode())

	// Extras never override the fixed fields.
	req = Request{Category: CategoryMessage, Body: "x", Extra: map[string]string{"mode": "nick"}}
	assert.Equal(t, "message", req.Form().Get("mode"))
}

func TestUsage(t *testing.T) {
	assert.Equal(t, []string{
		"/me <text>",
		"/msg <target> <text>",
		"/names",
		"/nick <name>",
		"/topic [text]",
	}, Usage())
}
