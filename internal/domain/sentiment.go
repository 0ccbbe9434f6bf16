package domain

import "context"

// Label is the coarse sentiment class of a text.
type Label string

const (
	LabelPositive Label = "positive"
	LabelNeutral  Label = "neutral"
	LabelNegative Label = "negative"
)

// ParseLabel accepts English and Spanish label spellings.
// Returns false for anything it does not recognise.
func ParseLabel(s string) (Label, bool) {
	switch s {
	case "positive", "positivo", "positiva":
		return LabelPositive, true
	case "neutral":
		return LabelNeutral, true
	case "negative", "negativo", "negativa":
		return LabelNegative, true
	default:
		return "", false
	}
}

// Source names the analysis path that produced a result.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// Emotion is a tag from the fixed emotion vocabulary.
type Emotion string

const (
	EmotionHope        Emotion = "esperanza"
	EmotionWorry       Emotion = "preocupación"
	EmotionCuriosity   Emotion = "curiosidad"
	EmotionEnthusiasm  Emotion = "entusiasmo"
	EmotionAnxiety     Emotion = "ansiedad"
	EmotionFrustration Emotion = "frustración"
	EmotionFear        Emotion = "miedo"
	EmotionOptimism    Emotion = "optimismo"
	EmotionSkepticism  Emotion = "escepticismo"
)

var emotionAliases = map[string]Emotion{
	"esperanza":    EmotionHope,
	"preocupación": EmotionWorry,
	"preocupacion": EmotionWorry,
	"curiosidad":   EmotionCuriosity,
	"entusiasmo":   EmotionEnthusiasm,
	"ansiedad":     EmotionAnxiety,
	"frustración":  EmotionFrustration,
	"frustracion":  EmotionFrustration,
	"miedo":        EmotionFear,
	"optimismo":    EmotionOptimism,
	"escepticismo": EmotionSkepticism,
}

// ParseEmotion maps a lowercase tag, with or without accents, onto the vocabulary.
func ParseEmotion(s string) (Emotion, bool) {
	e, ok := emotionAliases[s]
	return e, ok
}

// MaxEmotions caps the number of emotion tags in a result.
const MaxEmotions = 3

// SentimentResult is the normalized outcome of analysing one text.
type SentimentResult struct {
	Score    float64   `json:"score"`
	Label    Label     `json:"label"`
	Emotions []Emotion `json:"emotions"`
	Source   Source    `json:"source"`
}

// Comparison holds a before/after pair of analyses.
type Comparison struct {
	Before   SentimentResult `json:"before"`
	After    SentimentResult `json:"after"`
	Change   float64         `json:"change"`
	Improved bool            `json:"improved"`
}

// Analyzer turns free text into a sentiment result. Implementations never fail;
// any internal error degrades to a locally computed result.
type Analyzer interface {
	Analyze(ctx context.Context, text string) SentimentResult
}
