// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): LLM providers, stores, normalisers,
// and the chunking pipeline.
package driven
