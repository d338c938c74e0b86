package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
)

var jsonNull = []byte("null")

// Object is a decoded JSON object whose members are kept as raw JSON in
// wire order. It is the building block for the hand written decoders of the
// schema entities, which need field aliases, duplicate detection and field
// level error context that struct tags cannot express.
type Object struct {
	fields *orderedmap.OrderedMap[string, json.RawMessage]
	used   map[string]struct{}
}

// DecodeObject parses data as a JSON object. Duplicate keys are rejected.
func DecodeObject(data []byte) (*Object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, NewDecodeError("", string(data), err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, NewDecodeError(
			"", string(data), fmt.Errorf("%w: expected object",
				ErrInvalidType),
		)
	}

	obj := &Object{
		fields: orderedmap.NewOrderedMap[string, json.RawMessage](),
		used:   make(map[string]struct{}),
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, NewDecodeError("", "", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, NewDecodeError(
				"", fmt.Sprint(tok), ErrInvalidType,
			)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, NewDecodeError(key, "", err)
		}

		if !obj.fields.Set(key, raw) {
			return nil, NewDecodeError(key, "", ErrDuplicateKey)
		}
	}

	// Consume the closing brace and make sure nothing follows it.
	if _, err := dec.Token(); err != nil {
		return nil, NewDecodeError("", "", err)
	}
	if _, err := dec.Token(); err == nil {
		return nil, NewDecodeError("", "", ErrTrailingBytes)
	}

	return obj, nil
}

// Keys returns the member names in wire order.
func (o *Object) Keys() []string {
	return o.fields.Keys()
}

// Has reports whether the object carries a non-null member with the given
// name.
func (o *Object) Has(name string) bool {
	raw, ok := o.fields.Get(name)
	return ok && !bytes.Equal(raw, jsonNull)
}

// Raw returns the raw JSON of a member, marking it as consumed.
func (o *Object) Raw(name string) (json.RawMessage, bool) {
	raw, ok := o.fields.Get(name)
	if ok {
		o.used[name] = struct{}{}
	}

	return raw, ok
}

// Required decodes the named member into dst. A missing or null member is
// an error.
func (o *Object) Required(name string, dst any) error {
	raw, ok := o.Raw(name)
	if !ok {
		return NewDecodeError(name, "", ErrMissingField)
	}
	if bytes.Equal(raw, jsonNull) {
		return NewDecodeError(
			name, "null", fmt.Errorf("%w: null", ErrInvalidType),
		)
	}

	return WithField(name, Unmarshal(raw, dst))
}

// Optional decodes the named member into dst if it is present and not
// null. It reports whether dst was written.
func (o *Object) Optional(name string, dst any) (bool, error) {
	raw, ok := o.Raw(name)
	if !ok || bytes.Equal(raw, jsonNull) {
		return false, nil
	}

	if err := Unmarshal(raw, dst); err != nil {
		return false, WithField(name, err)
	}

	return true, nil
}

// Alias decodes exactly one of the given member names into dst. The first
// name is the canonical one and is used in error messages. It is an error
// for none, or more than one, of the aliases to be present.
func (o *Object) Alias(dst any, names ...string) error {
	var found []string
	for _, name := range names {
		if o.Has(name) {
			found = append(found, name)
		}
	}

	switch len(found) {
	case 0:
		return NewDecodeError(names[0], "", ErrMissingField)

	case 1:
		for _, name := range names {
			o.used[name] = struct{}{}
		}
		return o.Required(found[0], dst)

	default:
		return NewDecodeError(
			names[0], strings.Join(found, ","), ErrDuplicateKey,
		)
	}
}

// DisallowUnknown returns an error naming the first member, in wire order,
// that was not consumed by Required, Optional, Alias or Raw.
func (o *Object) DisallowUnknown() error {
	for _, key := range o.fields.Keys() {
		if _, ok := o.used[key]; !ok {
			return NewDecodeError(key, "", ErrUnexpectedField)
		}
	}

	return nil
}

// IsNull reports whether data is the JSON null literal.
func IsNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), jsonNull)
}

// Unmarshal is json.Unmarshal with the standard library's type errors
// mapped onto this package's sentinel errors.
func Unmarshal(data []byte, dst any) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return classifyJSONError(err)
	}

	return nil
}

// DecodeArray decodes a JSON array, calling decodeElem for each element in
// order. Element errors carry the element index in their field path.
func DecodeArray(data []byte, decodeElem func(int, json.RawMessage) error) error {
	if IsNull(data) {
		return NewDecodeError(
			"", "null", fmt.Errorf("%w: expected array",
				ErrInvalidType),
		)
	}

	var elems []json.RawMessage
	if err := Unmarshal(data, &elems); err != nil {
		return err
	}

	for i, elem := range elems {
		if err := decodeElem(i, elem); err != nil {
			return WithIndex("", i, err)
		}
	}

	return nil
}

// classifyJSONError maps encoding/json errors onto sentinel errors. Errors
// that are already DecodeErrors pass through untouched.
func classifyJSONError(err error) error {
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return err
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		cause := ErrInvalidType
		if strings.HasPrefix(typeErr.Value, "number") {
			cause = ErrOutOfRange
		}

		return &DecodeError{
			Field: typeErr.Field,
			Value: typeErr.Value,
			Err: fmt.Errorf("%w: cannot decode into %v", cause,
				typeErr.Type),
		}
	}

	return &DecodeError{Err: err}
}
