package store

import (
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Supported values for the database.driver config key.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type dialect struct {
	driverName    string
	timestampType string
	numbered      bool // $1, $2 placeholders instead of ?
}

var dialects = map[string]dialect{
	DriverSQLite:   {driverName: "sqlite", timestampType: "DATETIME"},
	DriverPostgres: {driverName: "pgx", timestampType: "TIMESTAMPTZ", numbered: true},
}

func (d dialect) schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS jobs (
			id              TEXT PRIMARY KEY,
			title           TEXT NOT NULL,
			company         TEXT NOT NULL,
			location        TEXT NOT NULL,
			description     TEXT NOT NULL DEFAULT '',
			work_mode       TEXT NOT NULL,
			job_type        TEXT NOT NULL DEFAULT '',
			compensation    TEXT NOT NULL DEFAULT '',
			required_skills TEXT NOT NULL DEFAULT '[]',
			link            TEXT NOT NULL DEFAULT '',
			apply_by        TEXT NOT NULL DEFAULT '',
			status          TEXT NOT NULL,
			posted_by       TEXT NOT NULL DEFAULT '',
			created_at      ` + d.timestampType + ` NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_status_created ON jobs (status, created_at)`,
		`CREATE TABLE IF NOT EXISTS profiles (
			user_id    TEXT PRIMARY KEY,
			name       TEXT NOT NULL DEFAULT '',
			email      TEXT NOT NULL DEFAULT '',
			skills     TEXT NOT NULL DEFAULT '[]',
			region     TEXT NOT NULL DEFAULT '',
			role       TEXT NOT NULL DEFAULT 'student',
			updated_at ` + d.timestampType + ` NOT NULL
		)`,
	}
}

// rebind rewrites ? placeholders to $n for dialects that need it. Queries
// must not contain a literal question mark.
func (d dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
