package database

import (
	"database/sql"
	"time"

	sqldb "github.com/clipvault/clipvault/internal/database/sqlc"
)

func nullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

func stringPtrToNullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	if *value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func optionalString(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}

func optionalStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	val := ns.String
	return &val
}

func boolToInt64(value bool) int64 {
	if value {
		return 1
	}
	return 0
}

// Timestamps are stored as unix nanoseconds so ordering and age comparisons
// stay exact regardless of driver time formatting.
func timeToUnixNano(t time.Time) int64 {
	return t.UnixNano()
}

func unixNanoToTime(n int64) time.Time {
	return time.Unix(0, n)
}

func queriesFromContext(ctx *Context) *sqldb.Queries {
	if ctx == nil {
		return nil
	}
	if ctx.Queries != nil {
		return ctx.Queries
	}
	if ctx.DB == nil {
		return nil
	}
	return sqldb.New(ctx.DB)
}
