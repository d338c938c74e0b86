package codec

import (
	"bytes"
	"encoding/json"
)

// KeyValue is one member of an OrderedMap.
type KeyValue[V any] struct {
	Key   string
	Value V
}

// OrderedMap is a JSON object decoded as an association list. Member order
// is kept as it appeared on the wire and keys are unique.
type OrderedMap[V any] []KeyValue[V]

// Get returns the value stored under key.
func (m OrderedMap[V]) Get(key string) (V, bool) {
	for _, kv := range m {
		if kv.Key == key {
			return kv.Value, true
		}
	}

	var zero V
	return zero, false
}

// Keys returns the keys in order.
func (m OrderedMap[V]) Keys() []string {
	keys := make([]string, 0, len(m))
	for _, kv := range m {
		keys = append(keys, kv.Key)
	}

	return keys
}

// MarshalJSON writes the members in slice order.
func (m OrderedMap[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range m {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(kv.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(kv.Value)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object, keeping member order and rejecting
// duplicate keys.
func (m *OrderedMap[V]) UnmarshalJSON(data []byte) error {
	obj, err := DecodeObject(data)
	if err != nil {
		return err
	}

	out := make(OrderedMap[V], 0, len(obj.Keys()))
	for _, key := range obj.Keys() {
		var v V
		raw, _ := obj.Raw(key)
		if err := Unmarshal(raw, &v); err != nil {
			return WithField(key, err)
		}

		out = append(out, KeyValue[V]{Key: key, Value: v})
	}
	*m = out

	return nil
}
