// Package requestid tags every HTTP request with a correlation id.
//
// Middleware accepts an incoming X-Request-ID header when it is a short
// token of letters, digits, dashes and underscores, and otherwise generates
// a UUID. The id is available through FromContext and is added to log
// records by LoggerExtractor.
package requestid
