// Package domain contains the core business types for Kotae: knowledge-source
// descriptors, raw source records, canonical search results, keyword
// extraction rules, and record normalisation. The package has no
// dependencies outside the standard library so that retrieval semantics
// stay testable without any adapter.
package domain
