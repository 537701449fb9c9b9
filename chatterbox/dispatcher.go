package chatterbox

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Dispatcher routes stream events to registered callbacks, one per category.
type Dispatcher struct {
	onOpen        func()
	onStreamError func(error)
	onEntry       func(Category, Payload)
	onTopic       func(Payload)
	onNames       func(NamesPayload)
	onUnknown     func(Event)
	onError       func(error)
}

func (d *Dispatcher) SetOnOpen(fn func())                   { d.onOpen = fn }
func (d *Dispatcher) SetOnStreamError(fn func(error))       { d.onStreamError = fn }
func (d *Dispatcher) SetOnEntry(fn func(Category, Payload)) { d.onEntry = fn }
func (d *Dispatcher) SetOnTopic(fn func(Payload))           { d.onTopic = fn }
func (d *Dispatcher) SetOnNames(fn func(NamesPayload))      { d.onNames = fn }
func (d *Dispatcher) SetOnUnknown(fn func(Event))           { d.onUnknown = fn }
func (d *Dispatcher) SetOnError(fn func(error))             { d.onError = fn }

// Dispatch decodes ev and invokes the callback for its category. A payload
// that does not decode is reported through the error callback and dropped.
func (d *Dispatcher) Dispatch(ev Event) {
	switch ev.Category {
	case CategoryOpen:
		if d.onOpen != nil {
			d.onOpen()
		}
	case CategoryError:
		if d.onStreamError == nil {
			return
		}
		err := ev.Err
		if err == nil {
			err = ErrTransportFailure
		}
		d.onStreamError(err)
	case CategoryMessage, CategoryAction, CategoryNote, CategoryJoin,
		CategoryNick, CategoryDirected, CategoryAlert:
		if d.onEntry == nil {
			return
		}
		var p Payload
		if err := decodeObject(ev.Data, &p); err != nil {
			d.fireError(WrapError(ErrorMalformedPayload, "failed to unmarshal "+ev.Category.String()+" event", err))
			return
		}
		d.onEntry(ev.Category, p)
	case CategoryTopic:
		if d.onTopic == nil {
			return
		}
		var p Payload
		if err := decodeObject(ev.Data, &p); err != nil {
			d.fireError(WrapError(ErrorMalformedPayload, "failed to unmarshal topic event", err))
			return
		}
		d.onTopic(p)
	case CategoryNames:
		if d.onNames == nil {
			return
		}
		var p NamesPayload
		if err := decodeObject(ev.Data, &p); err != nil {
			d.fireError(WrapError(ErrorMalformedPayload, "failed to unmarshal names event", err))
			return
		}
		d.onNames(p)
	case CategoryUnknown:
		if ev.Err != nil {
			d.fireError(ev.Err)
			return
		}
		if d.onUnknown != nil {
			d.onUnknown(ev)
		}
	}
}

// decodeObject unmarshals data, which must be a JSON object.
func decodeObject(data json.RawMessage, v any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return errors.New("payload is not a JSON object")
	}
	return UnmarshalData(trimmed, v)
}

func (d *Dispatcher) fireError(err error) {
	if d.onError != nil && err != nil {
		d.onError(err)
	}
}
