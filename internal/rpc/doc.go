// Package rpc describes the Connect services the browser talks to: the
// procedure paths, request and response messages, handler constructors and
// typed clients.
//
// Messages are plain Go structs carried as JSON. Every handler and client
// built here is configured with Codec, which replaces Connect's
// protobuf-only JSON codec under the same "json" name, so browsers post
// application/json bodies exactly as they would to a protoc-generated
// service.
package rpc
