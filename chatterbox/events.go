package chatterbox

// Payload is the body of every entry-bearing and topic event.
type Payload struct {
	Message string `json:"message"`
	When    string `json:"when,omitempty"`
	Sender  string `json:"sender,omitempty"`
	Target  string `json:"target,omitempty"`
}

// NamesPayload carries the roster snapshot; message is a list of nicknames.
type NamesPayload struct {
	Message []string `json:"message"`
	Sender  string   `json:"sender,omitempty"`
}
