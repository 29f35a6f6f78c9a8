// Package driving provides interfaces for primary/inbound ports consumed
// by the CLI and TUI adapters.
package driving
