package quillhtml

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidJSON reports delta input that is not syntactically valid JSON.
var ErrInvalidJSON = errors.New("invalid json")

// Delta is an ordered list of insert operations.
type Delta struct {
	Ops []Op
	// HasOps reports whether the source carried an ops collection at all.
	// A delta without one renders to an empty string.
	HasOps bool
}

// Op is a single insert operation.
// Embeds (non-string inserts) decode with an empty Insert.
type Op struct {
	Insert     string
	Attributes Attributes
}

// Attribute is one formatting attribute of an operation.
// Value is a bool, string, float64 or nil, as decoded from JSON.
type Attribute struct {
	Name  string
	Value any
}

// Attributes keeps the attributes of an operation in document order.
type Attributes []Attribute

// Get returns the value of the named attribute.
func (a Attributes) Get(name string) (any, bool) {
	if i := a.index(name); i >= 0 {
		return a[i].Value, true
	}
	return nil, false
}

func (a Attributes) index(name string) int {
	for i, attr := range a {
		if attr.Name == name {
			return i
		}
	}
	return -1
}

// DecodeError reports a delta that could not be decoded.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("quillhtml: %s: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DecodeDelta parses delta JSON.
//   - Returns a *DecodeError wrapping ErrInvalidJSON for malformed JSON
//   - A document that is not an object, or has no array under "ops",
//     decodes to a Delta with HasOps false and no error
//   - Operations that are not objects are skipped
func DecodeDelta(data []byte) (Delta, error) {
	if !json.Valid(data) {
		return Delta{}, &DecodeError{Op: "decode", Err: ErrInvalidJSON}
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return Delta{}, nil
	}
	raw, ok := top["ops"]
	if !ok {
		return Delta{}, nil
	}
	var rawOps []json.RawMessage
	if err := json.Unmarshal(raw, &rawOps); err != nil || rawOps == nil {
		return Delta{}, nil
	}
	d := Delta{Ops: make([]Op, 0, len(rawOps)), HasOps: true}
	for _, rawOp := range rawOps {
		op, ok := decodeOp(rawOp)
		if !ok {
			continue
		}
		d.Ops = append(d.Ops, op)
	}
	return d, nil
}

type wireOp struct {
	Insert     json.RawMessage `json:"insert"`
	Attributes Attributes      `json:"attributes"`
}

func decodeOp(raw json.RawMessage) (Op, bool) {
	if len(raw) == 0 || raw[0] != '{' {
		return Op{}, false
	}
	var w wireOp
	if err := json.Unmarshal(raw, &w); err != nil {
		return Op{}, false
	}
	op := Op{Attributes: w.Attributes}
	if len(w.Insert) > 0 && w.Insert[0] == '"' {
		if err := json.Unmarshal(w.Insert, &op.Insert); err != nil {
			return Op{}, false
		}
	}
	return op, true
}

// UnmarshalJSON decodes a JSON object keeping key order. A repeated key
// keeps its first position and takes the last value.
// Values other than objects decode to nil attributes.
func (a *Attributes) UnmarshalJSON(b []byte) error {
	*a = nil
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil
	}
	var out Attributes
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := keyTok.(string)
		var value any
		if err := dec.Decode(&value); err != nil {
			return err
		}
		if i := out.index(name); i >= 0 {
			out[i].Value = value
			continue
		}
		out = append(out, Attribute{Name: name, Value: value})
	}
	*a = out
	return nil
}
