package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/sitescan"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ sitescan.RunService = (*RunService)(nil)

// RunService implements sitescan.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

const runColumns = `id, url, domain, title, builder, output_dir, success, error,
	sections, images_total, images_downloaded, images_failed, fonts, videos, created_at`

// CreateRun stores a run, generating an ID and timestamp when unset.
func (s *RunService) CreateRun(ctx context.Context, run *sitescan.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	run.CreatedAt = run.CreatedAt.UTC().Truncate(time.Second)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (`+runColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.URL, run.Domain, run.Title, string(run.Builder), run.OutputDir, run.Success, run.Error, run.Sections,
		run.Images.Total, run.Images.Downloaded, run.Images.Failed, run.Fonts, run.Videos,
		run.CreatedAt.Format(time.RFC3339))

	return err
}

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*sitescan.Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sitescan.Errorf(sitescan.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter sitescan.RunFilter) ([]*sitescan.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + runColumns + " FROM runs WHERE 1=1")

	if filter.Domain != nil {
		query.WriteString(" AND domain = ?")
		args = append(args, *filter.Domain)
	}
	if filter.Success != nil {
		query.WriteString(" AND success = ?")
		args = append(args, *filter.Success)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")

	// SQLite requires LIMIT whenever OFFSET is given; -1 means unlimited.
	if filter.Limit > 0 || filter.Offset > 0 {
		limit := filter.Limit
		if limit <= 0 {
			limit = -1
		}
		query.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*sitescan.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*sitescan.Run, error) {
	var run sitescan.Run
	var builder, createdAt string

	if err := row.Scan(&run.ID, &run.URL, &run.Domain, &run.Title, &builder, &run.OutputDir,
		&run.Success, &run.Error, &run.Sections, &run.Images.Total, &run.Images.Downloaded,
		&run.Images.Failed, &run.Fonts, &run.Videos, &createdAt); err != nil {
		return nil, err
	}
	run.Builder = sitescan.Builder(builder)

	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at of run %s: %w", run.ID, err)
	}
	run.CreatedAt = t
	return &run, nil
}
