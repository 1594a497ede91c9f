//go:build cgo

package sqlitedriver

import (
	_ "github.com/mutecomm/go-sqlcipher/v4" // registers "sqlite3" driver with encryption
)

// EncryptionSupported reports whether the registered driver honors
// PRAGMA key. The SQLCipher build does.
const EncryptionSupported = true
