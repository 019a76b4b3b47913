// Package apiconnect wires the grocery.v1 services to connect-go handlers and
// clients.
package apiconnect

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// codecName replaces connect's default protojson codec for application/json
// and application/connect+json requests.
const codecName = "json"

type jsonCodec struct{}

func (jsonCodec) Name() string { return codecName }

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Codec returns the codec all handlers and clients in this package use.
func Codec() connect.Codec { return jsonCodec{} }

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
}
