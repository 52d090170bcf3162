package common

// RequestIDHeader carries the per-request id in and out of the HTTP server.
const RequestIDHeader = "X-Request-ID"

// DatabaseFileName is the SQLite file created inside the configured data
// directory.
const DatabaseFileName = "toomanytabs.db"
