// Package api implements the HTTP layer of the proxy: per-route request
// validation, dispatch to the upstream gateway, and normalization of
// successes and failures into the uniform {success, ...} envelope.
package api
