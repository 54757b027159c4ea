// Package grammar wraps a LanguageTool-compatible text checking service as a
// best-effort enrichment step: any failure, including timeout, returns the
// input text unchanged.
package grammar
