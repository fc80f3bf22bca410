package driver

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"jsobj/pkg/errors"
	"jsobj/pkg/vm"
)

// ParseValue decodes a JSON document into a realm value. Objects inherit from
// Object.prototype and keep their key order; arrays become Array objects.
// The bare word undefined is accepted as well.
func (e *Engine) ParseValue(text string) (vm.Value, error) {
	text = strings.TrimSpace(text)
	if text == "undefined" {
		return vm.Undefined, nil
	}
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	val, err := e.decodeValue(dec)
	if err != nil {
		return vm.Undefined, syntaxError(err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return vm.Undefined, errors.NewTypeError("Unexpected token after JSON value")
	}
	return val, nil
}

// ParseArgs decodes a JSON array into an argument list.
func (e *Engine) ParseArgs(text string) ([]vm.Value, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	v, err := e.ParseValue(text)
	if err != nil {
		return nil, err
	}
	if !v.IsObject() || v.AsObject().ClassOr("") != "Array" {
		return nil, errors.NewTypeError("arguments must be a JSON array, got %s", e.realm.Inspect(v))
	}
	return e.realm.ArrayValues(v.AsObject())
}

func syntaxError(err error) error {
	return errors.NewTypeError("Invalid JSON: %s", err).CausedBy(err)
}

func (e *Engine) decodeValue(dec *json.Decoder) (vm.Value, error) {
	token, err := dec.Token()
	if err != nil {
		return vm.Undefined, err
	}

	switch t := token.(type) {
	case nil:
		return vm.Null, nil
	case bool:
		return vm.BooleanValue(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return vm.Undefined, err
		}
		return vm.NumberValue(f), nil
	case string:
		return vm.NewString(t), nil
	case json.Delim:
		switch t {
		case '{':
			obj := e.realm.NewObject()
			for dec.More() {
				keyToken, err := dec.Token()
				if err != nil {
					return vm.Undefined, err
				}
				key, ok := keyToken.(string)
				if !ok {
					return vm.Undefined, fmt.Errorf("expected string key in object")
				}
				value, err := e.decodeValue(dec)
				if err != nil {
					return vm.Undefined, err
				}
				// Duplicate keys keep their first position and take the last value.
				obj.SetOwn(key, value)
			}
			if _, err := dec.Token(); err != nil {
				return vm.Undefined, err
			}
			return vm.ObjectValue(obj), nil
		case '[':
			var elements []vm.Value
			for dec.More() {
				elem, err := e.decodeValue(dec)
				if err != nil {
					return vm.Undefined, err
				}
				elements = append(elements, elem)
			}
			if _, err := dec.Token(); err != nil {
				return vm.Undefined, err
			}
			return vm.ObjectValue(e.realm.NewArray(elements)), nil
		}
	}
	return vm.Undefined, fmt.Errorf("unexpected JSON token %v", token)
}
