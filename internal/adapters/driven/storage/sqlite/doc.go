// Package sqlite provides a SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. It implements:
//
//   - DeckStore: deck and card persistence
//
// The database file lives under the application data directory and is
// migrated on open from SQL files embedded in the migrations subpackage.
package sqlite
