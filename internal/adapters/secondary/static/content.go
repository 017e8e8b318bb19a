package static

import (
	"context"

	"maternal-care-service/internal/core/domain"
	output "maternal-care-service/internal/core/ports/output"
)

var education = map[string][]domain.EducationArticle{
	"en": {
		{Title: "Nutrition During Pregnancy", Description: "Learn about essential nutrients for a healthy pregnancy."},
		{Title: "Understanding Prenatal Tests", Description: "A comprehensive guide to prenatal screenings and tests."},
		{Title: "Preparing for Labor and Delivery", Description: "What to expect and how to prepare for your big day."},
	},
	"sw": {
		{Title: "Lishe Wakati wa Ujauzito", Description: "Jifunze kuhusu virutubishi muhimu kwa ujauzito wenye afya."},
		{Title: "Kuelewa Vipimo vya Kabla ya Kujifungua", Description: "Mwongozo kamili wa uchunguzi na vipimo vya kabla ya kujifungua."},
		{Title: "Kujiandaa kwa Uchungu na Kujifungua", Description: "Cha kutarajia na jinsi ya kujiandaa kwa siku yako kubwa."},
	},
}

var faq = map[string][]domain.FAQEntry{
	"en": {
		{
			ID:       "1",
			Question: "What foods should I avoid during pregnancy?",
			Answer:   "Avoid raw or undercooked meat, unpasteurized dairy, high-mercury fish, raw eggs, unwashed produce, excessive caffeine, alcohol, and processed junk food.",
		},
		{
			ID:       "2",
			Question: "How much weight should I gain during pregnancy?",
			Answer:   "Weight gain depends on pre-pregnancy BMI. Normal weight: 25-35 pounds, underweight: 28-40 pounds, overweight: 15-25 pounds, obese: 11-20 pounds.",
		},
	},
	"sw": {
		{
			ID:       "1",
			Question: "Ni vyakula gani ninapaswa kuepuka wakati wa ujauzito?",
			Answer:   "Epuka nyama mbichi au isiyopikwa vizuri, maziwa yasiyochemshwa, samaki wenye zebaki nyingi, mayai mabichi, mazao yasiyooshwa, kofeini nyingi, pombe, na vyakula vya takataka vilivyosindikwa.",
		},
		{
			ID:       "2",
			Question: "Nipaswa kuongeza uzito kiasi gani wakati wa ujauzito?",
			Answer:   "Ongezeko la uzito hutegemea BMI kabla ya ujauzito. Uzito wa kawaida: pauni 25-35, uzito mdogo: pauni 28-40, uzito zaidi: pauni 15-25, mnene: pauni 11-20.",
		},
	},
}

type contentRepo struct{}

// NewContentRepository returns the built-in English and Swahili content.
func NewContentRepository() output.ContentRepository {
	return contentRepo{}
}

func (contentRepo) ListEducation(_ context.Context, language string) ([]domain.EducationArticle, error) {
	items := education[language]
	out := make([]domain.EducationArticle, len(items))
	copy(out, items)
	return out, nil
}

func (contentRepo) ListFAQ(_ context.Context, language string) ([]domain.FAQEntry, error) {
	items := faq[language]
	out := make([]domain.FAQEntry, len(items))
	copy(out, items)
	return out, nil
}
