package services

import (
	"context"
	"strings"

	"maternal-care-service/internal/core/domain"
	output "maternal-care-service/internal/core/ports/output"
)

// ContentCatalog serves localized education and FAQ content. Languages
// without content fall back to the default language.
type ContentCatalog struct {
	repo            output.ContentRepository
	defaultLanguage string
}

func NewContentCatalog(repo output.ContentRepository, defaultLanguage string) *ContentCatalog {
	if defaultLanguage == "" {
		defaultLanguage = domain.DefaultLanguage
	}
	return &ContentCatalog{repo: repo, defaultLanguage: defaultLanguage}
}

func (s *ContentCatalog) Education(ctx context.Context, language string) ([]domain.EducationArticle, error) {
	language = normalizeLanguage(language)
	if language != "" && language != s.defaultLanguage {
		items, err := s.repo.ListEducation(ctx, language)
		if err != nil {
			return nil, err
		}
		if len(items) > 0 {
			return items, nil
		}
	}
	return s.repo.ListEducation(ctx, s.defaultLanguage)
}

func (s *ContentCatalog) FAQ(ctx context.Context, language string) ([]domain.FAQEntry, error) {
	language = normalizeLanguage(language)
	if language != "" && language != s.defaultLanguage {
		items, err := s.repo.ListFAQ(ctx, language)
		if err != nil {
			return nil, err
		}
		if len(items) > 0 {
			return items, nil
		}
	}
	return s.repo.ListFAQ(ctx, s.defaultLanguage)
}

func normalizeLanguage(language string) string {
	return strings.ToLower(strings.TrimSpace(language))
}
