// Package server holds the HTTP server configuration and shared response helpers.
//
// The start command builds the Fiber app; this package defines the settings it
// reads (port, API key, read timeout) and the helpers feature handlers use to
// turn catalog errors into responses:
//
//   - unknown filter names and unparseable keys answer 400
//   - absent keys answer 404 through NotFound
//   - catalog load failures answer 500 with the load error message
package server
