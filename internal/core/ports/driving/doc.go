// Package driving provides interfaces exposed to external actors
// (primary/inbound ports): grounded search, grounded answering, and the
// search history log.
package driving
