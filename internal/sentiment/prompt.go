package sentiment

import "fmt"

const promptTemplate = `Analiza el sentimiento del siguiente texto en español sobre Inteligencia Artificial.

IMPORTANTE: Sé específico y no uses "neutral" a menos que el texto sea realmente neutral. La mayoría de los textos tienen alguna inclinación positiva o negativa.

Responde SOLO con un objeto JSON válido (sin markdown, sin explicaciones adicionales) con esta estructura exacta:
{
  "score": número entre -1 y 1 (donde: -1 = muy negativo, -0.5 = negativo, 0 = completamente neutral, 0.5 = positivo, 1 = muy positivo),
  "sentiment": "positivo" | "neutral" | "negativo" (usa "neutral" solo si el texto no expresa opinión),
  "emotions": ["emoción1", "emoción2"] (máximo 3 emociones detectadas como: esperanza, miedo, curiosidad, preocupación, entusiasmo, ansiedad, optimismo, escepticismo)
}

Texto a analizar: %q

Considera:
- Palabras positivas: espero, creo, bien, mejor, ayudar, beneficio, oportunidad, avance, positivo, útil, bueno
- Palabras negativas: preocupa, miedo, riesgo, peligro, malo, peor, problema, amenaza, negativo, difícil
- Si hay expectativas o esperanzas, el sentimiento tiende a positivo
- Si hay preocupaciones o miedos, el sentimiento tiende a negativo`

// BuildPrompt renders the classification prompt for one text. The text is quoted so
// embedded quotes cannot break out of the instruction.
func BuildPrompt(text string) string {
	return fmt.Sprintf(promptTemplate, text)
}
