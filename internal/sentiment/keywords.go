package sentiment

import (
	"strings"

	"github.com/pscheid92/huella/internal/domain"
)

type keywordFamily struct {
	emotion domain.Emotion
	stems   []string
}

// Families are scanned in this order; the first MaxEmotions matches are reported.
var keywordFamilies = []keywordFamily{
	{domain.EmotionHope, []string{"esper", "optimis", "positiv", "bien", "bueno", "mejor", "creo que", "ayud", "benefici", "oportunid"}},
	{domain.EmotionWorry, []string{"mied", "temor", "terror", "asust", "preocup", "riesgo", "peligr"}},
	{domain.EmotionCuriosity, []string{"curios", "interes", "aprend", "descubr"}},
	{domain.EmotionEnthusiasm, []string{"entusias", "emocion", "feliz", "alegr", "content"}},
	{domain.EmotionAnxiety, []string{"ansied", "nervios", "inquiet"}},
	{domain.EmotionFrustration, []string{"frustrac", "enojo", "molest", "enfad"}},
}

// MatchEmotions returns the emotion families whose stems occur in text.
// Matching is case-insensitive substring matching, in family order.
func MatchEmotions(text string) []domain.Emotion {
	lowerText := strings.ToLower(text)

	emotions := make([]domain.Emotion, 0, len(keywordFamilies))
	for _, family := range keywordFamilies {
		for _, stem := range family.stems {
			if strings.Contains(lowerText, stem) {
				emotions = append(emotions, family.emotion)
				break
			}
		}
	}
	return emotions
}
