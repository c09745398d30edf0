package sqlite

import (
	"context"
	"database/sql"
	"net/url"
	"strings"
	"time"

	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver
	_ "modernc.org/sqlite"                               // Local SQLite driver
)

const timeLayout = time.RFC3339Nano

// Open connects to dbURL, picking the Turso driver for remote URLs and the
// embedded SQLite driver for everything else.
func Open(dbURL string) (*sql.DB, error) {
	driverName := "sqlite"
	if isRemoteURL(dbURL) {
		driverName = "libsql"
	}

	db, err := sql.Open(driverName, dbURL)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func isRemoteURL(dbURL string) bool {
	return strings.Contains(dbURL, "libsql://") || strings.Contains(dbURL, "wss://") ||
		strings.HasPrefix(dbURL, "https://") || strings.HasPrefix(dbURL, "http://")
}

// RemoteDSN appends the auth token the libsql driver expects as a query parameter
func RemoteDSN(dbURL, authToken string) string {
	if authToken == "" || !isRemoteURL(dbURL) {
		return dbURL
	}
	sep := "?"
	if strings.Contains(dbURL, "?") {
		sep = "&"
	}
	return dbURL + sep + "authToken=" + url.QueryEscape(authToken)
}

// migrate runs statements one at a time so both drivers accept them
func migrate(ctx context.Context, db *sql.DB, statements []string) error {
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
