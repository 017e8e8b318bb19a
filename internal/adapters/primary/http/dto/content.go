package dto

import "maternal-care-service/internal/core/domain"

type EducationResponse struct {
	Content []domain.EducationArticle `json:"content"`
}

type FAQResponse struct {
	Content []domain.FAQEntry `json:"content"`
}

type AssistantRequest struct {
	Query string `json:"query"`
}

type AssistantResponse struct {
	Response string `json:"response"`
}

func ToEducationResponse(items []domain.EducationArticle) EducationResponse {
	if items == nil {
		items = []domain.EducationArticle{}
	}
	return EducationResponse{Content: items}
}

func ToFAQResponse(items []domain.FAQEntry) FAQResponse {
	if items == nil {
		items = []domain.FAQEntry{}
	}
	return FAQResponse{Content: items}
}
