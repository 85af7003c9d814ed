// Package services implements the retrieval core: the source registry
// loader, the search orchestrator with its primary title query and keyword
// fallback scan, the grounded answer assembler, and the history service.
package services
