package domain

import "fmt"

// QuestionID identifies one of the fixed questionnaire entries.
type QuestionID string

const (
	QuestionPassword   QuestionID = "password"
	QuestionTwoFactor  QuestionID = "twoFactor"
	QuestionUpdates    QuestionID = "updates"
	QuestionPublicWifi QuestionID = "publicWifi"
	QuestionBackup     QuestionID = "backup"
)

// AnswerValue is one enumerated option of a question.
type AnswerValue string

const (
	AnswerYes       AnswerValue = "si"
	AnswerNo        AnswerValue = "no"
	AnswerAlways    AnswerValue = "siempre"
	AnswerSometimes AnswerValue = "a-veces"
	AnswerNever     AnswerValue = "nunca"
)

// Option is a selectable answer shown to the user.
type Option struct {
	Value AnswerValue `json:"value"`
	Label string      `json:"label"`
}

// Question describes a questionnaire entry and its accepted values.
type Question struct {
	ID      QuestionID `json:"id"`
	Prompt  string     `json:"question"`
	Options []Option   `json:"options"`
}

var questionnaire = []Question{
	{
		ID:     QuestionPassword,
		Prompt: "¿Usas contraseñas únicas y fuertes para cada cuenta?",
		Options: []Option{
			{Value: AnswerYes, Label: "Sí, siempre"},
			{Value: AnswerNo, Label: "No"},
		},
	},
	{
		ID:     QuestionTwoFactor,
		Prompt: "¿Tienes autenticación de dos factores activada?",
		Options: []Option{
			{Value: AnswerYes, Label: "Sí"},
			{Value: AnswerNo, Label: "No"},
		},
	},
	{
		ID:     QuestionUpdates,
		Prompt: "¿Actualizas regularmente tus dispositivos y aplicaciones?",
		Options: []Option{
			{Value: AnswerAlways, Label: "Siempre"},
			{Value: AnswerSometimes, Label: "A veces"},
			{Value: AnswerNever, Label: "Nunca"},
		},
	},
	{
		ID:     QuestionPublicWifi,
		Prompt: "¿Usas redes WiFi públicas sin VPN?",
		Options: []Option{
			{Value: AnswerYes, Label: "Sí"},
			{Value: AnswerNo, Label: "No"},
		},
	},
	{
		ID:     QuestionBackup,
		Prompt: "¿Realizas copias de seguridad de tus datos importantes?",
		Options: []Option{
			{Value: AnswerYes, Label: "Sí"},
			{Value: AnswerNo, Label: "No"},
		},
	},
}

// Questions returns a copy of the fixed questionnaire in presentation order.
func Questions() []Question {
	result := make([]Question, 0, len(questionnaire))
	for _, q := range questionnaire {
		q.Options = append([]Option(nil), q.Options...)
		result = append(result, q)
	}
	return result
}

// Accepts reports whether value is one of the question's options.
func (q Question) Accepts(value AnswerValue) bool {
	for _, opt := range q.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// AnswerSet is a complete, validated questionnaire response.
type AnswerSet struct {
	Password   AnswerValue `json:"password"`
	TwoFactor  AnswerValue `json:"twoFactor"`
	Updates    AnswerValue `json:"updates"`
	PublicWifi AnswerValue `json:"publicWifi"`
	Backup     AnswerValue `json:"backup"`
}

// Get returns the answer recorded for id.
func (a AnswerSet) Get(id QuestionID) AnswerValue {
	switch id {
	case QuestionPassword:
		return a.Password
	case QuestionTwoFactor:
		return a.TwoFactor
	case QuestionUpdates:
		return a.Updates
	case QuestionPublicWifi:
		return a.PublicWifi
	case QuestionBackup:
		return a.Backup
	}
	return ""
}

func (a *AnswerSet) set(id QuestionID, value AnswerValue) {
	switch id {
	case QuestionPassword:
		a.Password = value
	case QuestionTwoFactor:
		a.TwoFactor = value
	case QuestionUpdates:
		a.Updates = value
	case QuestionPublicWifi:
		a.PublicWifi = value
	case QuestionBackup:
		a.Backup = value
	}
}

// ParseAnswerSet checks raw against the questionnaire. Unknown keys are
// ignored; every missing or out-of-range answer yields one FieldError.
func ParseAnswerSet(raw map[string]any) (AnswerSet, []FieldError) {
	var (
		set  AnswerSet
		errs []FieldError
	)
	for _, q := range questionnaire {
		field := "answers." + string(q.ID)
		value, ok := raw[string(q.ID)]
		if !ok || value == nil {
			errs = append(errs, FieldError{Field: field, Message: "answer is required"})
			continue
		}
		text, ok := value.(string)
		if !ok {
			errs = append(errs, FieldError{Field: field, Message: "answer must be a string", Value: fmt.Sprint(value)})
			continue
		}
		if !q.Accepts(AnswerValue(text)) {
			errs = append(errs, FieldError{Field: field, Message: "invalid value", Value: text})
			continue
		}
		set.set(q.ID, AnswerValue(text))
	}
	return set, errs
}

// Validate re-checks an already typed AnswerSet, e.g. one decoded from storage.
func (a AnswerSet) Validate() []FieldError {
	var errs []FieldError
	for _, q := range questionnaire {
		value := a.Get(q.ID)
		if !q.Accepts(value) {
			errs = append(errs, FieldError{Field: "answers." + string(q.ID), Message: "invalid value", Value: string(value)})
		}
	}
	return errs
}
