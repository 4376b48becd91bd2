// Package server holds the HTTP server configuration.
//
// The serve command builds the Fiber application; this package defines the
// listen port, the API key guarding every route and the deadline applied to
// comparison runs triggered over HTTP.
package server
