// Package exterrors provides structured-field error inspection: any
// error in an Unwrap chain can expose a Fields() map and have it
// picked up by the logger without parsing message text.
package exterrors

import "errors"

type fieldsErr interface {
	Fields() map[string]interface{}
}

type fieldsWrap struct {
	err    error
	fields map[string]interface{}
}

func (fw fieldsWrap) Error() string { return fw.err.Error() }

func (fw fieldsWrap) Unwrap() error { return fw.err }

func (fw fieldsWrap) Fields() map[string]interface{} { return fw.fields }

// Fields collects the structured fields exposed along err's Unwrap
// chain. When the same key appears at several depths, the outermost
// value wins.
func Fields(err error) map[string]interface{} {
	fields := make(map[string]interface{}, 5)

	for ; err != nil; err = errors.Unwrap(err) {
		fe, ok := err.(fieldsErr)
		if !ok {
			continue
		}
		for k, v := range fe.Fields() {
			if _, ok := fields[k]; !ok {
				fields[k] = v
			}
		}
	}

	return fields
}

// WithFields attaches fields to err. The returned error unwraps to
// err and exposes fields to Fields.
func WithFields(err error, fields map[string]interface{}) error {
	return fieldsWrap{err: err, fields: fields}
}
