package domain

// SurveyKind distinguishes the two survey rounds.
type SurveyKind string

const (
	SurveyPre  SurveyKind = "pre-survey"
	SurveyPost SurveyKind = "post-survey"
)

// Scale question identifiers, in display order.
const (
	QuestionSociety     = "sociedad"
	QuestionPreparation = "preparacion"
	QuestionHealth      = "salud"
	QuestionEducation   = "educacion"
	QuestionArt         = "arte"
)

// ScaleQuestions lists the 1..5 scale questions asked in both rounds.
var ScaleQuestions = []string{
	QuestionSociety,
	QuestionPreparation,
	QuestionHealth,
	QuestionEducation,
	QuestionArt,
}

// PredominantEmotions are the choices for the single-pick emotion question.
var PredominantEmotions = []string{
	"esperanza",
	"curiosidad",
	"preocupacion",
	"miedo",
	"entusiasmo",
	"ansiedad",
}

// SurveyAnswers is one completed survey round.
type SurveyAnswers struct {
	Society     int    `json:"sociedad"`
	Preparation int    `json:"preparacion"`
	Health      int    `json:"salud"`
	Education   int    `json:"educacion"`
	Art         int    `json:"arte"`
	HopeText    string `json:"esperanza_text"`
	WorryText   string `json:"preocupacion_text"`
	Emotion     string `json:"emocion"`
}

// Scale returns the answer for a scale question id, or 0 if unknown.
func (a SurveyAnswers) Scale(question string) int {
	switch question {
	case QuestionSociety:
		return a.Society
	case QuestionPreparation:
		return a.Preparation
	case QuestionHealth:
		return a.Health
	case QuestionEducation:
		return a.Education
	case QuestionArt:
		return a.Art
	default:
		return 0
	}
}

// Participant identifies who answered. Only UserID is mandatory.
type Participant struct {
	UserID    string `json:"userId"`
	FirstName string `json:"nombre,omitempty"`
	LastName  string `json:"apellido,omitempty"`
	Email     string `json:"email,omitempty"`
}

// ScaleChange is the before/after movement on one scale question.
type ScaleChange struct {
	Question string `json:"question"`
	Before   int    `json:"before"`
	After    int    `json:"after"`
	Change   int    `json:"change"`
}

// Huella is the shareable before/after summary of one participant.
// A text comparison is nil when either round left that answer empty.
type Huella struct {
	Scales      []ScaleChange `json:"scales"`
	Hope        *Comparison   `json:"esperanza,omitempty"`
	Worry       *Comparison   `json:"preocupacion,omitempty"`
	EmotionPre  string        `json:"emocion_pre"`
	EmotionPost string        `json:"emocion_post"`
}
