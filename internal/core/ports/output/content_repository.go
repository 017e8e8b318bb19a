package ports

import (
	"context"

	"maternal-care-service/internal/core/domain"
)

// ContentRepository defines the contract for localized content lookup.
// An empty result means the language has no content.
type ContentRepository interface {
	// ListEducation returns education articles for a language in display order
	ListEducation(ctx context.Context, language string) ([]domain.EducationArticle, error)

	// ListFAQ returns FAQ entries for a language in display order
	ListFAQ(ctx context.Context, language string) ([]domain.FAQEntry, error)
}
