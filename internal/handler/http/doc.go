// Package http exposes the user directory over HTTP.
//
// Route handlers decode the request, hand the caller's session context to the
// service layer and translate the returned outcome into a response: render
// outcomes become 200 JSON view models, redirect outcomes become 302 responses
// with a Location header and flash headers. Tracing, access logging, session
// resolution and sign-in throttling are middleware of this package.
package http
