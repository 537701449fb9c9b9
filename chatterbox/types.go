package chatterbox

import (
	"encoding/json"
	"net/url"
)

// Category is the protocol's event-type tag, shared by inbound events and
// outgoing requests (the relay calls it "mode").
type Category int

const (
	CategoryUnknown Category = iota

	// Transport-level categories, produced by a Stream rather than the relay.
	CategoryOpen
	CategoryError

	// Payload-bearing categories.
	CategoryMessage
	CategoryAction
	CategoryNote
	CategoryJoin
	CategoryNick
	CategoryDirected
	CategoryTopic
	CategoryNames
	CategoryAlert
)

// String returns the wire name of the category.
func (c Category) String() string {
	switch c {
	case CategoryOpen:
		return "open"
	case CategoryError:
		return "error"
	case CategoryMessage:
		return "message"
	case CategoryAction:
		return "action"
	case CategoryNote:
		return "note"
	case CategoryJoin:
		return "join"
	case CategoryNick:
		return "nick"
	case CategoryDirected:
		return "msg"
	case CategoryTopic:
		return "topic"
	case CategoryNames:
		return "names"
	case CategoryAlert:
		return "alert"
	default:
		return "unknown"
	}
}

// ParseCategory converts a wire event name to a Category.
// Unrecognized names map to CategoryUnknown.
func ParseCategory(name string) Category {
	switch name {
	case "open":
		return CategoryOpen
	case "error":
		return CategoryError
	case "message":
		return CategoryMessage
	case "action":
		return CategoryAction
	case "note":
		return CategoryNote
	case "join":
		return CategoryJoin
	case "nick":
		return CategoryNick
	case "msg":
		return CategoryDirected
	case "topic":
		return CategoryTopic
	case "names":
		return CategoryNames
	case "alert":
		return CategoryAlert
	default:
		return CategoryUnknown
	}
}

// RendersEntry reports whether events of this category produce a ChatEntry.
func (c Category) RendersEntry() bool {
	switch c {
	case CategoryMessage, CategoryAction, CategoryNote, CategoryJoin,
		CategoryNick, CategoryDirected, CategoryAlert:
		return true
	default:
		return false
	}
}

// Event is one item delivered by a Stream.
// For CategoryError, Err carries the transport reason; for payload-bearing
// categories, Data holds the raw JSON payload.
type Event struct {
	Category Category
	Name     string
	Data     json.RawMessage
	Err      error
}

// Request is an outgoing request to the relay. It is built, sent once and
// discarded.
type Request struct {
	Category Category
	Body     string
	Extra    map[string]string
}

// Form returns the request as form fields: message, mode and any extras.
func (r Request) Form() url.Values {
	v := url.Values{}
	for k, val := range r.Extra {
		v.Set(k, val)
	}
	v.Set("message", r.Body)
	v.Set("mode", r.Category.String())
	return v
}

// Encode returns the application/x-www-form-urlencoded request body.
func (r Request) Encode() string {
	return r.Form().Encode()
}

// UnmarshalData decodes RawMessage into target.
func UnmarshalData(data json.RawMessage, v any) error {
	return json.Unmarshal(data, v)
}
