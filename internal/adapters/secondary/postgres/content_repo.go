package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"maternal-care-service/internal/core/domain"
	output "maternal-care-service/internal/core/ports/output"
)

const contentSchema = `
	CREATE TABLE IF NOT EXISTS education_content (
		language    TEXT    NOT NULL,
		position    INTEGER NOT NULL,
		title       TEXT    NOT NULL,
		description TEXT    NOT NULL,
		PRIMARY KEY (language, position)
	);

	CREATE TABLE IF NOT EXISTS faq_content (
		language TEXT    NOT NULL,
		position INTEGER NOT NULL,
		id       TEXT    NOT NULL,
		question TEXT    NOT NULL,
		answer   TEXT    NOT NULL,
		PRIMARY KEY (language, position)
	);
`

// ContentRepository reads localized content from PostgreSQL.
type ContentRepository struct {
	pool *pgxpool.Pool
}

// NewContentRepository creates a new ContentRepository
func NewContentRepository(pool *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{pool: pool}
}

// Migrate creates the content tables when missing.
func (r *ContentRepository) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, contentSchema); err != nil {
		return fmt.Errorf("migrate content schema: %w", err)
	}
	return nil
}

func (r *ContentRepository) ListEducation(ctx context.Context, language string) ([]domain.EducationArticle, error) {
	query := `
		SELECT title, description
		FROM education_content
		WHERE language = $1
		ORDER BY position ASC
	`

	rows, err := r.pool.Query(ctx, query, language)
	if err != nil {
		return nil, fmt.Errorf("list education content: %w", err)
	}
	defer rows.Close()

	var items []domain.EducationArticle
	for rows.Next() {
		var a domain.EducationArticle
		if err := rows.Scan(&a.Title, &a.Description); err != nil {
			return nil, fmt.Errorf("scan education row: %w", err)
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate education rows: %w", err)
	}

	return items, nil
}

func (r *ContentRepository) ListFAQ(ctx context.Context, language string) ([]domain.FAQEntry, error) {
	query := `
		SELECT id, question, answer
		FROM faq_content
		WHERE language = $1
		ORDER BY position ASC
	`

	rows, err := r.pool.Query(ctx, query, language)
	if err != nil {
		return nil, fmt.Errorf("list faq content: %w", err)
	}
	defer rows.Close()

	var items []domain.FAQEntry
	for rows.Next() {
		var e domain.FAQEntry
		if err := rows.Scan(&e.ID, &e.Question, &e.Answer); err != nil {
			return nil, fmt.Errorf("scan faq row: %w", err)
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate faq rows: %w", err)
	}

	return items, nil
}

var _ output.ContentRepository = (*ContentRepository)(nil)
