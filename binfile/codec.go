package binfile

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"reflect"

	"gopkg.in/yaml.v2"
)

// Codec converts records to and from the bytes stored in a slot.
type Codec[T any] interface {
	Marshal(v T) ([]byte, error)
	Unmarshal(data []byte) (T, error)
}

// GobCodec encodes each record as a self-describing gob stream. Records that
// hold interface values must have their concrete types registered with
// gob.Register. A nil pointer record cannot be encoded.
type GobCodec[T any] struct{}

func (GobCodec[T]) Marshal(v T) ([]byte, error) {
	// gob panics on a top-level nil pointer instead of returning an error
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, fmt.Errorf("gob encode: nil %T record", v)
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, fmt.Errorf("gob encode: %w", err)
	}
	return buf.Bytes(), nil
}

func (GobCodec[T]) Unmarshal(data []byte) (T, error) {
	var v T
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&v); err != nil {
		return v, fmt.Errorf("gob decode: %w", err)
	}
	return v, nil
}

// YAMLCodec stores records as YAML documents, which keeps payloads readable
// in a dump.
type YAMLCodec[T any] struct{}

func (YAMLCodec[T]) Marshal(v T) ([]byte, error) {
	return yaml.Marshal(v)
}

func (YAMLCodec[T]) Unmarshal(data []byte) (T, error) {
	var v T
	if err := yaml.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("yaml decode: %w", err)
	}
	return v, nil
}

// StringCodec stores string records as their raw bytes.
type StringCodec struct{}

func (StringCodec) Marshal(v string) ([]byte, error) {
	return []byte(v), nil
}

func (StringCodec) Unmarshal(data []byte) (string, error) {
	return string(data), nil
}

var (
	_ Codec[int]    = GobCodec[int]{}
	_ Codec[int]    = YAMLCodec[int]{}
	_ Codec[string] = StringCodec{}
)
