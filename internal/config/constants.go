package config

// Defaults for CLI runs.
const (
	DefaultSampleCount = 10000
	DefaultSeed        = uint64(42)
)

// SQLDriverName is the database/sql driver registered by modernc.org/sqlite.
const SQLDriverName = "sqlite"

// DefaultStoreFile is where the CLI persists runs unless told otherwise.
const DefaultStoreFile = "funprob.db"
