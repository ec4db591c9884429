package portfolio

// migration holds a single schema migration with its target version. The
// statements are executed one at a time and must be valid for both SQLite
// and PostgreSQL.
type migration struct {
	version    int
	statements []string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		statements: []string{
			`CREATE TABLE IF NOT EXISTS profile (
	id           INTEGER PRIMARY KEY,
	name         TEXT NOT NULL,
	location     TEXT NOT NULL DEFAULT '',
	phone        TEXT NOT NULL DEFAULT '',
	email        TEXT NOT NULL DEFAULT '',
	linkedin     TEXT NOT NULL DEFAULT '',
	github       TEXT NOT NULL DEFAULT '',
	summary      TEXT NOT NULL DEFAULT ''
)`,
			`CREATE TABLE IF NOT EXISTS skills (
	ord      INTEGER PRIMARY KEY,
	category TEXT NOT NULL,
	items    TEXT NOT NULL DEFAULT '[]'
)`,
			`CREATE TABLE IF NOT EXISTS experience (
	ord        INTEGER PRIMARY KEY,
	company    TEXT NOT NULL,
	role       TEXT NOT NULL DEFAULT '',
	period     TEXT NOT NULL DEFAULT '',
	location   TEXT NOT NULL DEFAULT '',
	highlights TEXT NOT NULL DEFAULT '[]'
)`,
			`CREATE TABLE IF NOT EXISTS projects (
	ord        INTEGER PRIMARY KEY,
	name       TEXT NOT NULL,
	tech       TEXT NOT NULL DEFAULT '[]',
	highlights TEXT NOT NULL DEFAULT '[]'
)`,
			`CREATE TABLE IF NOT EXISTS certifications (
	ord   INTEGER PRIMARY KEY,
	title TEXT NOT NULL
)`,
		},
	},
	{
		version: 2,
		statements: []string{
			`CREATE TABLE IF NOT EXISTS education (
	id          INTEGER PRIMARY KEY,
	degree      TEXT NOT NULL DEFAULT '',
	institution TEXT NOT NULL DEFAULT '',
	location    TEXT NOT NULL DEFAULT '',
	period      TEXT NOT NULL DEFAULT ''
)`,
		},
	},
}
