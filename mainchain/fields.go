package mainchain

import (
	"github.com/torkelrogstad/bip300301/codec"
)

// fieldReader decodes the members of a JSON object one after the other and
// remembers the first error, so entity decoders can list their fields
// without checking an error after each one.
type fieldReader struct {
	obj *codec.Object
	err error
}

// newFieldReader parses data as a JSON object.
func newFieldReader(data []byte) *fieldReader {
	obj, err := codec.DecodeObject(data)
	return &fieldReader{obj: obj, err: err}
}

// required decodes a member that must be present and not null.
func (r *fieldReader) required(name string, dst any) {
	if r.err != nil {
		return
	}
	r.err = r.obj.Required(name, dst)
}

// optional decodes a member if it is present and not null. It reports
// whether dst was written.
func (r *fieldReader) optional(name string, dst any) bool {
	if r.err != nil {
		return false
	}

	ok, err := r.obj.Optional(name, dst)
	r.err = err

	return ok
}

// alias decodes a member that may appear under any one of names.
func (r *fieldReader) alias(dst any, names ...string) {
	if r.err != nil {
		return
	}
	r.err = r.obj.Alias(dst, names...)
}

// has reports whether a non-null member is present.
func (r *fieldReader) has(name string) bool {
	return r.err == nil && r.obj.Has(name)
}

// done returns the first error encountered. Members that were not read are
// ignored.
func (r *fieldReader) done() error {
	return r.err
}

// strict returns the first error encountered, or an error naming the first
// member that was not read.
func (r *fieldReader) strict() error {
	if r.err != nil {
		return r.err
	}

	return r.obj.DisallowUnknown()
}
