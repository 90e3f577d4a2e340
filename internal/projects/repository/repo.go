package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/site-builder-backend/internal/projects/domain"
)

const pgUniqueViolation = "23505"

const projectColumns = `id, user_id, project_name, subdomain, custom_domain, status,
       template_id, ai_enabled, site_config, created_at, updated_at`

// ProjectRepository provides owner-scoped persistence for projects.
type ProjectRepository struct {
	db  *sql.DB
	log *zap.Logger
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB, log *zap.Logger) *ProjectRepository {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProjectRepository{db: db, log: log.Named("project_repo")}
}

// Insert stores a new project. ID and timestamps are assigned here.
func (r *ProjectRepository) Insert(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	const q = `
INSERT INTO projects (id, user_id, project_name, subdomain, custom_domain, status,
                      template_id, ai_enabled, site_config)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::jsonb)
RETURNING ` + projectColumns

	id := uuid.NewString()
	row := r.db.QueryRowContext(ctx, q,
		id, p.UserID, p.Name, p.Subdomain, p.CustomDomain, string(p.Status),
		p.TemplateID, p.AIEnabled, p.SiteConfig,
	)
	out, err := scanProject(row)
	if err != nil {
		return nil, r.classify("insert", err, zap.String("user_id", p.UserID))
	}
	return out, nil
}

// SelectAll returns the owner's projects, newest first.
func (r *ProjectRepository) SelectAll(ctx context.Context, ownerID string) ([]domain.Project, error) {
	const q = `
SELECT ` + projectColumns + `
FROM projects
WHERE user_id = $1
ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, r.classify("select all", err, zap.String("user_id", ownerID))
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, r.classify("scan", err, zap.String("user_id", ownerID))
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, r.classify("select all", err, zap.String("user_id", ownerID))
	}
	return out, nil
}

// SelectOne returns one project if it exists and belongs to ownerID.
func (r *ProjectRepository) SelectOne(ctx context.Context, id, ownerID string) (*domain.Project, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}

	const q = `
SELECT ` + projectColumns + `
FROM projects
WHERE id = $1 AND user_id = $2`

	p, err := scanProject(r.db.QueryRowContext(ctx, q, id, ownerID))
	if err != nil {
		return nil, r.classify("select one", err, zap.String("project_id", id))
	}
	return p, nil
}

// Update writes the non-nil fields of u and bumps updated_at.
func (r *ProjectRepository) Update(ctx context.Context, id, ownerID string, u domain.Update) (*domain.Project, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}

	const q = `
UPDATE projects
SET project_name  = COALESCE($3, project_name),
    subdomain     = COALESCE($4, subdomain),
    custom_domain = COALESCE($5, custom_domain),
    status        = COALESCE($6, status),
    template_id   = COALESCE($7, template_id),
    ai_enabled    = COALESCE($8, ai_enabled),
    site_config   = COALESCE($9::jsonb, site_config),
    updated_at    = now()
WHERE id = $1 AND user_id = $2
RETURNING ` + projectColumns

	var status, siteConfig any
	if u.Status != nil {
		status = string(*u.Status)
	}
	if u.SiteConfig != nil {
		siteConfig = *u.SiteConfig
	}

	row := r.db.QueryRowContext(ctx, q,
		id, ownerID, u.Name, u.Subdomain, u.CustomDomain, status,
		u.TemplateID, u.AIEnabled, siteConfig,
	)
	p, err := scanProject(row)
	if err != nil {
		return nil, r.classify("update", err, zap.String("project_id", id))
	}
	return p, nil
}

// Delete removes the project. ErrNotFound if nothing matched.
func (r *ProjectRepository) Delete(ctx context.Context, id, ownerID string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}

	const q = `DELETE FROM projects WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, q, id, ownerID)
	if err != nil {
		return r.classify("delete", err, zap.String("project_id", id))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return r.classify("delete", err, zap.String("project_id", id))
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SubdomainTaken reports whether any project, of any owner, uses subdomain.
func (r *ProjectRepository) SubdomainTaken(ctx context.Context, subdomain string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM projects WHERE subdomain = $1)`
	var taken bool
	if err := r.db.QueryRowContext(ctx, q, subdomain).Scan(&taken); err != nil {
		return false, r.classify("subdomain lookup", err, zap.String("subdomain", subdomain))
	}
	return taken, nil
}

// classify maps driver errors onto the domain taxonomy.
func (r *ProjectRepository) classify(op string, err error, fields ...zap.Field) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
		r.log.Info("unique violation", append(fields, zap.String("op", op), zap.String("constraint", pqErr.Constraint))...)
		return domain.ErrConflict
	}
	r.log.Error("storage failure", append(fields, zap.String("op", op), zap.Error(err))...)
	return &domain.StorageError{Err: err}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var (
		p            domain.Project
		status       string
		subdomain    sql.NullString
		customDomain sql.NullString
		templateID   sql.NullString
	)
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &subdomain, &customDomain, &status,
		&templateID, &p.AIEnabled, &p.SiteConfig, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Status = domain.Status(status)
	p.Subdomain = nullString(subdomain)
	p.CustomDomain = nullString(customDomain)
	p.TemplateID = nullString(templateID)
	return &p, nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
