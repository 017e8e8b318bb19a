package services

import (
	"fmt"
	"strings"
)

// AssistantRule answers a query containing any of its keywords.
type AssistantRule struct {
	Keywords []string
	Response string
}

// DefaultAssistantRules are evaluated in order; the first match wins.
var DefaultAssistantRules = []AssistantRule{
	{
		Keywords: []string{"symptom", "common symptoms"},
		Response: "Common symptoms in the first trimester include morning sickness, fatigue, hormonal changes, and the need for prenatal vitamins.",
	},
	{
		Keywords: []string{"who are you", "your name"},
		Response: "I am your AI Pregnancy Assistant, here to help answer your pregnancy-related questions.",
	},
	{
		Keywords: []string{"due date"},
		Response: "Your due date is an estimate of when your baby will be born, typically 40 weeks from the start of your last menstrual period.",
	},
}

// AssistantService is a keyword-driven responder.
type AssistantService struct {
	rules []AssistantRule
}

func NewAssistantService(rules []AssistantRule) *AssistantService {
	if rules == nil {
		rules = DefaultAssistantRules
	}
	return &AssistantService{rules: rules}
}

func (s *AssistantService) Respond(query string) string {
	query = strings.ToLower(query)
	for _, rule := range s.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(query, kw) {
				return rule.Response
			}
		}
	}
	return fmt.Sprintf("Sorry, I don't have an answer for that yet. You asked: %s", query)
}
