package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Codec converts between wire bytes and a platform's input/output types.
type Codec[I, O any] interface {
	Decode(body []byte) (I, error)
	Encode(out O) ([]byte, error)
	ContentType() string
}

// JSONCodec reads and writes JSON.
type JSONCodec[I, O any] struct{}

// Decode implements Codec. An empty or "null" body is malformed.
func (JSONCodec[I, O]) Decode(body []byte) (I, error) {
	return decodeJSON[I](body)
}

// Encode implements Codec.
func (JSONCodec[I, O]) Encode(out O) ([]byte, error) {
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encoding reply: %w", err)
	}
	return data, nil
}

// ContentType implements Codec.
func (JSONCodec[I, O]) ContentType() string { return "application/json" }

// HTMLCodec reads JSON and answers with an HTML fragment.
type HTMLCodec[I any] struct{}

// Decode implements Codec.
func (HTMLCodec[I]) Decode(body []byte) (I, error) {
	return decodeJSON[I](body)
}

// Encode implements Codec.
func (HTMLCodec[I]) Encode(out string) ([]byte, error) { return []byte(out), nil }

// ContentType implements Codec.
func (HTMLCodec[I]) ContentType() string { return "text/html; charset=utf-8" }

func decodeJSON[I any](body []byte) (I, error) {
	var in I
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return in, decodeError(fmt.Errorf("empty body"))
	}
	if err := json.Unmarshal(trimmed, &in); err != nil {
		return in, decodeError(err)
	}
	return in, nil
}
