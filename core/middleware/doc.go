// Package middleware groups the Fiber middleware every route passes through.
//
//   - rayid: tags each request with an X-Ray-ID (kept when the client sends
//     one) so request logs can be correlated.
//   - auth: requires the configured API key in X-API-Key or ?api_key. An empty
//     key disables the check.
//
// The start command installs rayid first, then request logging, then auth.
package middleware
