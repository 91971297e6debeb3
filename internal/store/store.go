package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/internai/internai/internal/filter"
	"github.com/internai/internai/internal/model"
)

// Store is the system of record for admin-managed postings and user profiles.
type Store interface {
	CreateJob(ctx context.Context, job *model.JobPosting) error
	GetJob(ctx context.Context, id string) (*model.JobPosting, error)
	UpdateJob(ctx context.Context, job model.JobPosting) error
	DeleteJob(ctx context.Context, id string) error
	SearchJobs(ctx context.Context, q filter.StoredQuery) ([]model.JobPosting, error)
	LatestJobs(ctx context.Context, n int) ([]model.JobPosting, error)
	GetProfile(ctx context.Context, userID string) (*model.UserProfile, error)
	UpsertProfile(ctx context.Context, p model.UserProfile) error
	Seed(ctx context.Context) (int, error)
	Close() error
}

const jobColumns = `id, title, company, location, description, work_mode, job_type,
	compensation, required_skills, link, apply_by, status, posted_by, created_at`

// SQLStore implements Store over database/sql for SQLite and Postgres.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
	now     func() time.Time
}

func newSQLStore(db *sql.DB, d dialect) *SQLStore {
	return &SQLStore{db: db, dialect: d, now: time.Now}
}

// Open connects with the named driver ("sqlite" or "postgres") and ensures
// the schema exists.
func Open(ctx context.Context, driver, dsn string) (*SQLStore, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("%w: unknown database driver %q", model.ErrInvalidInput, driver)
	}

	db, err := sql.Open(d.driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s db: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging %s db: %w", driver, err)
	}

	s := newSQLStore(db, d)
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath.
func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLStore, error) {
	return Open(ctx, DriverSQLite, dbPath)
}

func (s *SQLStore) migrate(ctx context.Context) error {
	for _, stmt := range s.dialect.schema() {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}

// CreateJob assigns an ID and creation time to job and inserts it. Status
// defaults to active and work mode to On-site.
func (s *SQLStore) CreateJob(ctx context.Context, job *model.JobPosting) error {
	return s.insertJob(ctx, job, s.now().UTC())
}

func (s *SQLStore) insertJob(ctx context.Context, job *model.JobPosting, createdAt time.Time) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Status == "" {
		job.Status = model.StatusActive
	}
	if job.WorkMode == "" {
		job.WorkMode = model.WorkModeOnSite
	}
	job.Source = model.SourceLocal
	job.SourceAt = createdAt

	skills, err := json.Marshal(nonNil(job.RequiredSkills))
	if err != nil {
		return fmt.Errorf("encoding skills for job %s: %w", job.ID, err)
	}

	_, err = s.db.ExecContext(ctx, s.dialect.rebind(`INSERT INTO jobs (`+jobColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		job.ID, job.Title, job.Company, job.Location, job.Description, string(job.WorkMode), job.Type,
		job.Compensation, string(skills), job.Link, job.ApplyBy, job.Status, job.PostedBy, job.SourceAt,
	)
	if err != nil {
		return fmt.Errorf("inserting job %s: %w", job.ID, err)
	}
	return nil
}

func (s *SQLStore) GetJob(ctx context.Context, id string) (*model.JobPosting, error) {
	row := s.db.QueryRowContext(ctx, s.dialect.rebind(`SELECT `+jobColumns+` FROM jobs WHERE id = ?`), id)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("job %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading job %s: %w", id, err)
	}
	return job, nil
}

// UpdateJob replaces every mutable field of the stored posting with job's.
func (s *SQLStore) UpdateJob(ctx context.Context, job model.JobPosting) error {
	skills, err := json.Marshal(nonNil(job.RequiredSkills))
	if err != nil {
		return fmt.Errorf("encoding skills for job %s: %w", job.ID, err)
	}
	res, err := s.db.ExecContext(ctx, s.dialect.rebind(`UPDATE jobs SET
		title = ?, company = ?, location = ?, description = ?, work_mode = ?, job_type = ?,
		compensation = ?, required_skills = ?, link = ?, apply_by = ?, status = ?
		WHERE id = ?`),
		job.Title, job.Company, job.Location, job.Description, string(job.WorkMode), job.Type,
		job.Compensation, string(skills), job.Link, job.ApplyBy, job.Status, job.ID,
	)
	if err != nil {
		return fmt.Errorf("updating job %s: %w", job.ID, err)
	}
	return expectOne(res, "job "+job.ID)
}

func (s *SQLStore) DeleteJob(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.dialect.rebind(`DELETE FROM jobs WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("deleting job %s: %w", id, err)
	}
	return expectOne(res, "job "+id)
}

// SearchJobs returns active postings matching q, newest first. Role and
// company narrow the SQL scan; skills and state are applied by q.Match.
func (s *SQLStore) SearchJobs(ctx context.Context, q filter.StoredQuery) ([]model.JobPosting, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	query := `SELECT ` + jobColumns + ` FROM jobs WHERE status = ?`
	args := []any{model.StatusActive}
	if q.Role != "" {
		query += ` AND LOWER(title) LIKE ? ESCAPE '\'`
		args = append(args, likePattern(q.Role))
	}
	if q.Company != "" {
		query += ` AND LOWER(company) LIKE ? ESCAPE '\'`
		args = append(args, likePattern(q.Company))
	}
	query += ` ORDER BY created_at DESC`

	jobs, err := s.queryJobs(ctx, s.dialect.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("searching jobs: %w", err)
	}

	out := jobs[:0]
	for _, j := range jobs {
		if q.Match(j) {
			out = append(out, j)
		}
	}
	return out, nil
}

// LatestJobs returns the n most recently created active postings.
func (s *SQLStore) LatestJobs(ctx context.Context, n int) ([]model.JobPosting, error) {
	jobs, err := s.queryJobs(ctx,
		s.dialect.rebind(`SELECT `+jobColumns+` FROM jobs WHERE status = ? ORDER BY created_at DESC LIMIT ?`),
		model.StatusActive, n,
	)
	if err != nil {
		return nil, fmt.Errorf("loading latest %d jobs: %w", n, err)
	}
	return jobs, nil
}

func (s *SQLStore) GetProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	var (
		p      model.UserProfile
		skills string
	)
	err := s.db.QueryRowContext(ctx,
		s.dialect.rebind(`SELECT user_id, name, email, skills, region, role, updated_at FROM profiles WHERE user_id = ?`),
		userID,
	).Scan(&p.ID, &p.Name, &p.Email, &skills, &p.Region, &p.Role, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile %s: %w", userID, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading profile %s: %w", userID, err)
	}
	if err := json.Unmarshal([]byte(skills), &p.Skills); err != nil {
		return nil, fmt.Errorf("decoding skills for profile %s: %w", userID, err)
	}
	return &p, nil
}

// UpsertProfile inserts p or overwrites the existing profile with the same ID.
func (s *SQLStore) UpsertProfile(ctx context.Context, p model.UserProfile) error {
	if p.Role == "" {
		p.Role = model.RoleStudent
	}
	skills, err := json.Marshal(nonNil(p.Skills))
	if err != nil {
		return fmt.Errorf("encoding skills for profile %s: %w", p.ID, err)
	}
	_, err = s.db.ExecContext(ctx, s.dialect.rebind(`INSERT INTO profiles (user_id, name, email, skills, region, role, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			name = excluded.name, email = excluded.email, skills = excluded.skills,
			region = excluded.region, role = excluded.role, updated_at = excluded.updated_at`),
		p.ID, p.Name, p.Email, string(skills), p.Region, p.Role, s.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving profile %s: %w", p.ID, err)
	}
	return nil
}

// IsEmpty returns true if the jobs table has no rows.
func (s *SQLStore) IsEmpty(ctx context.Context) (bool, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&count); err != nil {
		return false, fmt.Errorf("checking if store is empty: %w", err)
	}
	return count == 0, nil
}

// Close closes the underlying database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) queryJobs(ctx context.Context, query string, args ...any) ([]model.JobPosting, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []model.JobPosting{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(row scanner) (*model.JobPosting, error) {
	var (
		j        model.JobPosting
		workMode string
		skills   string
	)
	err := row.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Description, &workMode, &j.Type,
		&j.Compensation, &skills, &j.Link, &j.ApplyBy, &j.Status, &j.PostedBy, &j.SourceAt)
	if err != nil {
		return nil, err
	}
	j.WorkMode = model.WorkMode(workMode)
	j.Source = model.SourceLocal
	if err := json.Unmarshal([]byte(skills), &j.RequiredSkills); err != nil {
		return nil, fmt.Errorf("decoding skills for job %s: %w", j.ID, err)
	}
	return &j, nil
}

func expectOne(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, model.ErrNotFound)
	}
	return nil
}

// likePattern builds a case-insensitive substring pattern, escaping LIKE
// metacharacters in s.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(strings.TrimSpace(s))) + "%"
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
