package project

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainproject "github.com/alanyang/folio/internal/domain/project"
	portproject "github.com/alanyang/folio/internal/port/project"
)

var _ portproject.Repository = (*Repository)(nil)

const projectColumns = `id, title, description, git_repo_link, project_link, stack,
	technologies, deployed, banner, gallery, created_at, updated_at`

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts p. Timestamps come from the database clock, the same one
// UpdateByID uses, so list order is consistent across instances.
func (r *Repository) Create(ctx context.Context, p domainproject.Project) (domainproject.Project, error) {
	banner, gallery, err := marshalImages(&p.Banner, p.Gallery)
	if err != nil {
		return domainproject.Project{}, err
	}

	row := r.pool.QueryRow(ctx,
		`INSERT INTO projects (id, title, description, git_repo_link, project_link, stack,
		     technologies, deployed, banner, gallery)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+projectColumns,
		p.ID, p.Title, p.Description, p.GitRepoLink, p.ProjectLink, p.Stack,
		p.Technologies, p.Deployed, banner, gallery,
	)

	out, err := scanProject(row)
	if err != nil {
		return domainproject.Project{}, classify("insert project", err)
	}
	return out, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (domainproject.Project, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id,
	)

	out, err := scanProject(row)
	if err != nil {
		return domainproject.Project{}, classify("get project", err)
	}
	return out, nil
}

// UpdateByID writes only the non-nil fields of patch. updated_at is always bumped.
func (r *Repository) UpdateByID(ctx context.Context, id uuid.UUID, patch domainproject.Patch) (domainproject.Project, error) {
	banner, gallery, err := marshalImages(patch.Banner, patch.Gallery)
	if err != nil {
		return domainproject.Project{}, err
	}

	row := r.pool.QueryRow(ctx,
		`UPDATE projects SET
		     title         = COALESCE($2, title),
		     description   = COALESCE($3, description),
		     git_repo_link = COALESCE($4, git_repo_link),
		     project_link  = COALESCE($5, project_link),
		     stack         = COALESCE($6, stack),
		     technologies  = COALESCE($7, technologies),
		     deployed      = COALESCE($8, deployed),
		     banner        = COALESCE($9::jsonb, banner),
		     gallery       = COALESCE($10::jsonb, gallery),
		     updated_at    = now()
		 WHERE id = $1
		 RETURNING `+projectColumns,
		id, patch.Title, patch.Description, patch.GitRepoLink, patch.ProjectLink, patch.Stack,
		patch.Technologies, patch.Deployed, banner, gallery,
	)

	out, err := scanProject(row)
	if err != nil {
		return domainproject.Project{}, classify("update project", err)
	}
	return out, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return classify("delete project", err)
	}
	if tag.RowsAffected() == 0 {
		return domainproject.ErrNotFound
	}
	return nil
}

func (r *Repository) ListByUpdatedDesc(ctx context.Context) ([]domainproject.Project, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+projectColumns+` FROM projects ORDER BY updated_at DESC, id`,
	)
	if err != nil {
		return nil, classify("list projects", err)
	}
	defer rows.Close()

	projects := []domainproject.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, classify("scan project", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list projects", err)
	}
	return projects, nil
}

// marshalImages encodes the jsonb columns. A nil input encodes to nil so
// COALESCE keeps the stored value.
func marshalImages(banner *domainproject.Image, gallery []domainproject.Image) ([]byte, []byte, error) {
	var bannerJSON, galleryJSON []byte
	var err error
	if banner != nil {
		if bannerJSON, err = json.Marshal(banner); err != nil {
			return nil, nil, fmt.Errorf("marshal banner: %w", err)
		}
	}
	if gallery != nil {
		if galleryJSON, err = json.Marshal(gallery); err != nil {
			return nil, nil, fmt.Errorf("marshal gallery: %w", err)
		}
	}
	return bannerJSON, galleryJSON, nil
}

func scanProject(row pgx.Row) (domainproject.Project, error) {
	var out domainproject.Project
	var bannerBytes, galleryBytes []byte
	if err := row.Scan(
		&out.ID, &out.Title, &out.Description, &out.GitRepoLink, &out.ProjectLink, &out.Stack,
		&out.Technologies, &out.Deployed, &bannerBytes, &galleryBytes, &out.CreatedAt, &out.UpdatedAt,
	); err != nil {
		return domainproject.Project{}, err
	}
	if err := json.Unmarshal(bannerBytes, &out.Banner); err != nil {
		return domainproject.Project{}, fmt.Errorf("decode banner: %w", err)
	}
	if err := json.Unmarshal(galleryBytes, &out.Gallery); err != nil || out.Gallery == nil {
		out.Gallery = []domainproject.Image{}
	}
	return out, nil
}

func classify(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domainproject.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &domainproject.PersistenceError{Op: op, Code: pgErr.Code, Message: pgErr.Message, Err: err}
	}
	return fmt.Errorf("%s: %w", op, err)
}
