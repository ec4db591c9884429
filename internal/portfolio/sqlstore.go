package portfolio

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nhle/portfolio-term/internal/model"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// profileID is the key of the single profile row.
const profileID = 1

// SQLStore keeps one portfolio in a SQLite or PostgreSQL database. List
// fields are stored as JSON arrays; row order is kept in an ord column.
type SQLStore struct {
	db     *sqlx.DB
	driver string
}

// OpenStore opens (or creates) the database at dsn with the given driver
// ("sqlite" or "pgx") and runs any pending schema migrations.
func OpenStore(driver, dsn string) (*SQLStore, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s db: %w", driver, err)
	}

	if driver == DriverSQLite {
		// One connection so that ":memory:" databases are shared.
		db.SetMaxOpenConns(1)

		// Enable WAL mode for better concurrent read performance.
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enabling WAL mode: %w", err)
		}
	}

	s := &SQLStore{db: db, driver: driver}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLStore) runMigrations() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
	version    INTEGER NOT NULL,
	applied_at TEXT NOT NULL
)`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	var currentVersion int
	if err := s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version"); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	record := s.db.Rebind("INSERT INTO schema_version (version, applied_at) VALUES (?, ?)")
	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		for _, stmt := range m.statements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("applying migration v%d: %w", m.version, err)
			}
		}
		if _, err := s.db.Exec(record, m.version, time.Now().UTC().Format(time.RFC3339)); err != nil {
			return fmt.Errorf("recording migration v%d: %w", m.version, err)
		}
	}

	return nil
}

type profileRow struct {
	ID       int    `db:"id"`
	Name     string `db:"name"`
	Location string `db:"location"`
	Phone    string `db:"phone"`
	Email    string `db:"email"`
	LinkedIn string `db:"linkedin"`
	GitHub   string `db:"github"`
	Summary  string `db:"summary"`
}

type skillRow struct {
	Ord      int    `db:"ord"`
	Category string `db:"category"`
	Items    string `db:"items"`
}

type experienceRow struct {
	Ord        int    `db:"ord"`
	Company    string `db:"company"`
	Role       string `db:"role"`
	Period     string `db:"period"`
	Location   string `db:"location"`
	Highlights string `db:"highlights"`
}

type projectRow struct {
	Ord        int    `db:"ord"`
	Name       string `db:"name"`
	Tech       string `db:"tech"`
	Highlights string `db:"highlights"`
}

// Load reads the stored portfolio. It returns ErrNotFound when nothing has
// been imported yet.
func (s *SQLStore) Load(ctx context.Context) (*model.PortfolioData, error) {
	var profile profileRow
	err := s.db.GetContext(ctx, &profile, s.db.Rebind("SELECT * FROM profile WHERE id = ?"), profileID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting profile: %w", err)
	}

	data := &model.PortfolioData{
		Personal: model.PersonalInfo{
			Name:     profile.Name,
			Location: profile.Location,
			Phone:    profile.Phone,
			Email:    profile.Email,
			LinkedIn: profile.LinkedIn,
			GitHub:   profile.GitHub,
		},
		Summary: profile.Summary,
	}

	var skills []skillRow
	if err := s.db.SelectContext(ctx, &skills, "SELECT * FROM skills ORDER BY ord"); err != nil {
		return nil, fmt.Errorf("listing skills: %w", err)
	}
	for _, r := range skills {
		group := model.SkillGroup{Category: r.Category}
		if err := decodeList(r.Items, &group.Items); err != nil {
			return nil, fmt.Errorf("decoding skills %q: %w", r.Category, err)
		}
		data.Skills = append(data.Skills, group)
	}

	var experience []experienceRow
	if err := s.db.SelectContext(ctx, &experience, "SELECT * FROM experience ORDER BY ord"); err != nil {
		return nil, fmt.Errorf("listing experience: %w", err)
	}
	for _, r := range experience {
		entry := model.ExperienceEntry{Company: r.Company, Role: r.Role, Period: r.Period, Location: r.Location}
		if err := decodeList(r.Highlights, &entry.Highlights); err != nil {
			return nil, fmt.Errorf("decoding experience %q: %w", r.Company, err)
		}
		data.Experience = append(data.Experience, entry)
	}

	var projects []projectRow
	if err := s.db.SelectContext(ctx, &projects, "SELECT * FROM projects ORDER BY ord"); err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	for _, r := range projects {
		entry := model.ProjectEntry{Name: r.Name}
		if err := decodeList(r.Tech, &entry.Tech); err != nil {
			return nil, fmt.Errorf("decoding project %q tech: %w", r.Name, err)
		}
		if err := decodeList(r.Highlights, &entry.Highlights); err != nil {
			return nil, fmt.Errorf("decoding project %q: %w", r.Name, err)
		}
		data.Projects = append(data.Projects, entry)
	}

	err = s.db.GetContext(ctx, &data.Education,
		s.db.Rebind("SELECT degree, institution, location, period FROM education WHERE id = ?"), profileID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("getting education: %w", err)
	}

	if err := s.db.SelectContext(ctx, &data.Certifications, "SELECT title FROM certifications ORDER BY ord"); err != nil {
		return nil, fmt.Errorf("listing certifications: %w", err)
	}

	return data, nil
}

// Import replaces the stored portfolio with data in one transaction.
func (s *SQLStore) Import(ctx context.Context, data *model.PortfolioData) error {
	if err := data.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"profile", "skills", "experience", "projects", "education", "certifications"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	p := data.Personal
	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO profile (id, name, location, phone, email, linkedin, github, summary)
		VALUES (:id, :name, :location, :phone, :email, :linkedin, :github, :summary)`,
		profileRow{
			ID: profileID, Name: p.Name, Location: p.Location, Phone: p.Phone,
			Email: p.Email, LinkedIn: p.LinkedIn, GitHub: p.GitHub, Summary: data.Summary,
		})
	if err != nil {
		return fmt.Errorf("inserting profile: %w", err)
	}

	for i, g := range data.Skills {
		_, err := tx.NamedExecContext(ctx,
			`INSERT INTO skills (ord, category, items) VALUES (:ord, :category, :items)`,
			skillRow{Ord: i, Category: g.Category, Items: encodeList(g.Items)})
		if err != nil {
			return fmt.Errorf("inserting skills %q: %w", g.Category, err)
		}
	}

	for i, e := range data.Experience {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO experience (ord, company, role, period, location, highlights)
			VALUES (:ord, :company, :role, :period, :location, :highlights)`,
			experienceRow{
				Ord: i, Company: e.Company, Role: e.Role, Period: e.Period,
				Location: e.Location, Highlights: encodeList(e.Highlights),
			})
		if err != nil {
			return fmt.Errorf("inserting experience %q: %w", e.Company, err)
		}
	}

	for i, pr := range data.Projects {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO projects (ord, name, tech, highlights)
			VALUES (:ord, :name, :tech, :highlights)`,
			projectRow{Ord: i, Name: pr.Name, Tech: encodeList(pr.Tech), Highlights: encodeList(pr.Highlights)})
		if err != nil {
			return fmt.Errorf("inserting project %q: %w", pr.Name, err)
		}
	}

	edu := data.Education
	_, err = tx.ExecContext(ctx,
		tx.Rebind(`INSERT INTO education (id, degree, institution, location, period) VALUES (?, ?, ?, ?, ?)`),
		profileID, edu.Degree, edu.Institution, edu.Location, edu.Period)
	if err != nil {
		return fmt.Errorf("inserting education: %w", err)
	}

	for i, c := range data.Certifications {
		_, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO certifications (ord, title) VALUES (?, ?)`), i, c)
		if err != nil {
			return fmt.Errorf("inserting certification %q: %w", c, err)
		}
	}

	return tx.Commit()
}

func encodeList(items []string) string {
	if items == nil {
		items = []string{}
	}
	raw, _ := json.Marshal(items)
	return string(raw)
}

func decodeList(raw string, out *[]string) error {
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), out)
}
