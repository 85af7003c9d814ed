// Package file provides file-based configuration adapters: a typed TOML
// settings store with change watching, and a prompt store for user-editable
// LLM prompt templates.
package file
