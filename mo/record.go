// Package mo models the managed-object records returned by the switch
// management API and provides the WorkingData index over a bulk query result.
package mo

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

// Attributes is the string-valued attribute bag of a managed object. The API
// sends every field as a string regardless of semantic type; callers cast
// counters and booleans at the boundary.
type Attributes map[string]string

// Record is a single class-tagged managed object. On the wire it is a
// one-key envelope: {"<class>": {"attributes": {...}, "children": [...]}}.
type Record struct {
	Class      string
	Attributes Attributes
	Children   []Record
}

type recordBody struct {
	Attributes Attributes        `json:"attributes"`
	Children   []json.RawMessage `json:"children,omitempty"`
}

// DN returns the distinguished name of the record, or "" if it has none.
func (r Record) DN() string {
	return r.Attributes["dn"]
}

// Attr returns the named attribute, erroring when the key is absent. The API
// is assumed to send every declared attribute; a missing key is malformed
// data and is fatal to the current operation.
func (r Record) Attr(key string) (string, error) {
	v, ok := r.Attributes[key]
	if !ok {
		return "", errors.Errorf("%s %q: missing attribute %q", r.Class, r.DN(), key)
	}
	return v, nil
}

// UnmarshalJSON decodes the single-key class envelope. Source data is always
// single-tagged in practice; if more than one class is present the first in
// iteration order wins.
func (r *Record) UnmarshalJSON(b []byte) error {
	var envelope map[string]recordBody
	if err := json.Unmarshal(b, &envelope); err != nil {
		return errors.Wrap(err, "decode record envelope")
	}
	for class, body := range envelope {
		r.Class = class
		r.Attributes = body.Attributes
		r.Children = r.Children[:0]
		for _, raw := range body.Children {
			var child Record
			if err := json.Unmarshal(raw, &child); err != nil {
				return errors.Wrapf(err, "decode child of %s", class)
			}
			r.Children = append(r.Children, child)
		}
		break
	}
	return nil
}

// MarshalJSON re-encodes the single-key class envelope.
func (r Record) MarshalJSON() ([]byte, error) {
	children := make([]json.RawMessage, 0, len(r.Children))
	for _, child := range r.Children {
		b, err := json.Marshal(child)
		if err != nil {
			return nil, err
		}
		children = append(children, b)
	}
	return json.Marshal(map[string]recordBody{
		r.Class: {Attributes: r.Attributes, Children: children},
	})
}

// APIError is an error record returned inside the imdata envelope.
type APIError struct {
	Code string
	Text string
}

func (e *APIError) Error() string {
	return "api error " + e.Code + ": " + e.Text
}

type imdata struct {
	Imdata []Record `json:"imdata"`
}

// DecodeImdata unpacks an {"imdata": [...]} response body. A record tagged
// with the class "error" is converted into an *APIError.
func DecodeImdata(b []byte) ([]Record, error) {
	var resp imdata
	if err := json.Unmarshal(b, &resp); err != nil {
		return nil, errors.Wrap(err, "decode imdata")
	}
	for _, r := range resp.Imdata {
		if r.Class == "error" {
			return nil, &APIError{
				Code: r.Attributes["code"],
				Text: r.Attributes["text"],
			}
		}
	}
	return resp.Imdata, nil
}

// Getter is the transport collaborator. Get issues one blocking request and
// returns the decoded imdata records; errors surface unchanged, there is no
// retry or pagination at this layer.
type Getter interface {
	Get(ctx context.Context, path string) ([]Record, error)
}
