// Package banana is a client for the remote image-edit API.
//
// An edit sends one to three images, an API key and a prompt as a single
// multipart/form-data POST and decodes the returned base64 image. The client
// never returns an error for expected failures: bad input, transport errors,
// non-2xx responses and malformed payloads all produce a Result whose Failure
// is set, whose Text carries the human-readable message, and whose Image is a
// blank 512x512 placeholder. Callers always receive a usable result.
//
// No retry is attempted. The only cancellation mechanisms are the caller's
// context and the client's fixed request timeout.
package banana
