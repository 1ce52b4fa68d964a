package log

import (
	"fmt"
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// FormatVersion is the capture file format written by this package.
const FormatVersion = 1

// EventTag is the CBOR tag number wrapping every event of a version 1
// capture file. A later format gets a new tag, so a reader rejects events it
// cannot interpret instead of decoding them into the wrong fields.
const EventTag uint64 = 41000 + FormatVersion

var (
	eventEncMode cbor.EncMode
	eventDecMode cbor.DecMode
)

func init() {
	tags := cbor.NewTagSet()
	// Untagged events still decode; they predate the tag.
	err := tags.Add(
		cbor.TagOptions{EncTag: cbor.EncTagRequired, DecTag: cbor.DecTagOptional},
		reflect.TypeOf(Event{}),
		EventTag,
	)
	if err != nil {
		panic(fmt.Sprintf("capture log: register event tag: %v", err))
	}

	// Canonical maps and RFC3339Nano timestamps keep nanosecond ordering.
	eventEncMode, err = cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}.EncModeWithTags(tags)
	if err != nil {
		panic(fmt.Sprintf("capture log: encoder mode: %v", err))
	}

	// Unknown map keys are ignored so newer fields in the same format version
	// stay readable.
	eventDecMode, err = cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}.DecModeWithTags(tags)
	if err != nil {
		panic(fmt.Sprintf("capture log: decoder mode: %v", err))
	}
}

// EncodeEvent encodes an Event as a tagged CBOR item.
func EncodeEvent(event Event) ([]byte, error) {
	return eventEncMode.Marshal(event)
}

// DecodeEvent decodes one CBOR item into an Event. Items carrying a tag
// other than EventTag are rejected.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := eventDecMode.Unmarshal(data, &event); err != nil {
		return Event{}, fmt.Errorf("decode capture event: %w", err)
	}
	return event, nil
}

// NewEncoder returns an event stream encoder writing to w.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return eventEncMode.NewEncoder(w)
}

// NewDecoder returns an event stream decoder reading from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return eventDecMode.NewDecoder(r)
}
