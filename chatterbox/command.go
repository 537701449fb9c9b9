package chatterbox

import (
	"maps"
	"regexp"
	"slices"
	"strings"
)

// verb describes one slash command: the category it sends and how its
// argument text becomes the request.
type verb struct {
	Category Category
	Usage    string
	// Encode turns the text after the verb into a request. It returns
	// ErrUnsendable when the arguments do not satisfy the verb.
	Encode func(args string) (Request, error)
}

var (
	firstToken  = regexp.MustCompile(`^\S+`)
	directedArg = regexp.MustCompile(`^([-\w]+)\s+(.+)$`)
	commandLine = regexp.MustCompile(`^/(\w+)(?:\s+|$)`)
)

var verbs = map[string]verb{
	"nick": {
		Category: CategoryNick,
		Usage:    "/nick <name>",
		Encode: func(args string) (Request, error) {
			name := firstToken.FindString(strings.TrimSpace(args))
			if name == "" {
				return Request{}, ErrUnsendable
			}
			return Request{Category: CategoryNick, Body: name}, nil
		},
	},
	"me": {
		Category: CategoryAction,
		Usage:    "/me <text>",
		Encode: func(args string) (Request, error) {
			if strings.TrimSpace(args) == "" {
				return Request{}, ErrUnsendable
			}
			return Request{Category: CategoryAction, Body: args}, nil
		},
	},
	"names": {
		Category: CategoryNames,
		Usage:    "/names",
		Encode: func(string) (Request, error) {
			return Request{Category: CategoryNames}, nil
		},
	},
	"msg": {
		Category: CategoryDirected,
		Usage:    "/msg <target> <text>",
		Encode: func(args string) (Request, error) {
			m := directedArg.FindStringSubmatch(strings.TrimSpace(args))
			if m == nil {
				return Request{}, ErrUnsendable
			}
			return Request{
				Category: CategoryDirected,
				Body:     m[2],
				Extra:    map[string]string{"target": m[1]},
			}, nil
		},
	},
	"topic": {
		Category: CategoryTopic,
		Usage:    "/topic [text]",
		Encode: func(args string) (Request, error) {
			return Request{Category: CategoryTopic, Body: args}, nil
		},
	},
}

// EncodeCommand parses one line of user input into an outgoing request.
//
// A line "/verb args" with a known verb is encoded by that verb. Anything
// else, including unknown verbs, is sent verbatim as a message. Input that is
// blank, or a verb whose required text is missing, returns ErrUnsendable.
func EncodeCommand(line string) (Request, error) {
	if strings.TrimSpace(line) == "" {
		return Request{}, ErrUnsendable
	}
	if loc := commandLine.FindStringSubmatchIndex(line); loc != nil {
		if v, ok := verbs[line[loc[2]:loc[3]]]; ok {
			return v.Encode(line[loc[1]:])
		}
	}
	return Request{Category: CategoryMessage, Body: line}, nil
}

// Usage returns the usage strings of all verbs, sorted by verb name.
func Usage() []string {
	out := make([]string, 0, len(verbs))
	for _, n := range slices.Sorted(maps.Keys(verbs)) {
		out = append(out, verbs[n].Usage)
	}
	return out
}
