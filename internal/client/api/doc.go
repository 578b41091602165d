// Package api defines the remote grading service interface and its HTTP
// implementation. The service owns authentication, test and question storage,
// OCR, and similarity scoring; this package only moves requests and responses
// and normalizes failures into a small error taxonomy (ErrUnavailable,
// ErrUnauthorized, *ServerError).
package api
