// Package flodesk implements the upstream gateway: a closed enumeration of
// actions with typed payloads, and an HTTP client that executes them against
// the Flodesk v1 API. Handlers build a Request per inbound call and hand it
// to the Gateway; this package owns the wire details (paths, auth, error
// decoding) so the HTTP layer never touches the provider directly.
package flodesk
