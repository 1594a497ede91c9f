// Package sqlitedriver registers a SQLite database/sql driver under the name
// "sqlite3". When built with CGO it uses go-sqlcipher which provides
// SQLCipher encryption for the knowledge stores. When CGO is unavailable it
// falls back to the pure-Go modernc.org/sqlite driver — functional but
// without encryption support.
//
// Import this package for its side effects only:
//
//	import _ "github.com/teradata-labs/mentor/internal/sqlitedriver"
package sqlitedriver
