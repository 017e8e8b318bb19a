package domain

// DefaultLanguage is served when a requested language has no content.
const DefaultLanguage = "en"

type EducationArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type FAQEntry struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
