// Package server holds the configuration of the HTTP server started by the serve command.
//
// The serve command owns the Fiber application itself; this package only defines
// the listen port and the API key checked by the auth middleware.
package server
