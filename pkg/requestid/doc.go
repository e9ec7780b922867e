// Package requestid correlates log records of one HTTP request.
//
// Middleware reuses a client-supplied X-Request-ID when it is short and made
// of [a-zA-Z0-9_-], otherwise it generates a UUID. The id is echoed in the
// response header and bound to the request context, where LoggerExtractor
// picks it up for every log record.
package requestid
