package domain

// Priority is the severity tier of a recommendation.
type Priority string

const (
	PriorityHigh   Priority = "alta"
	PriorityMedium Priority = "media"
)

// Recommendation is one rule-derived improvement suggestion.
type Recommendation struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
}

type recommendationRule struct {
	applies        func(AnswerSet) bool
	recommendation Recommendation
}

// Evaluated in order; the output keeps this order.
var recommendationRules = []recommendationRule{
	{
		applies: func(a AnswerSet) bool { return a.Password != AnswerYes },
		recommendation: Recommendation{
			Title:       "Weak Passwords",
			Description: "Use a unique, strong password for every account.",
			Priority:    PriorityHigh,
		},
	},
	{
		applies: func(a AnswerSet) bool { return a.TwoFactor != AnswerYes },
		recommendation: Recommendation{
			Title:       "Two-Factor Authentication",
			Description: "Turn on 2FA for all of your important accounts.",
			Priority:    PriorityHigh,
		},
	},
	{
		applies: func(a AnswerSet) bool { return a.Updates != AnswerAlways },
		recommendation: Recommendation{
			Title:       "Pending Updates",
			Description: "Keep your operating system and applications up to date.",
			Priority:    PriorityMedium,
		},
	},
	{
		applies: func(a AnswerSet) bool { return a.PublicWifi == AnswerYes },
		recommendation: Recommendation{
			Title:       "Public WiFi Networks",
			Description: "Avoid public WiFi or use a VPN to protect your data.",
			Priority:    PriorityMedium,
		},
	},
	{
		applies: func(a AnswerSet) bool { return a.Backup != AnswerYes },
		recommendation: Recommendation{
			Title:       "Backups",
			Description: "Back up your important information regularly.",
			Priority:    PriorityMedium,
		},
	},
}

// Recommend returns the recommendations triggered by answers. The result is
// never nil so it serialises as an empty list.
func Recommend(answers AnswerSet) []Recommendation {
	result := make([]Recommendation, 0, len(recommendationRules))
	for _, rule := range recommendationRules {
		if rule.applies(answers) {
			result = append(result, rule.recommendation)
		}
	}
	return result
}
