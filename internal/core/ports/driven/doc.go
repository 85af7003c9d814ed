// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): the knowledge-source query capability, the
// configuration-store registry capability, web search, text generation,
// prompt templates, and the search history log.
package driven
