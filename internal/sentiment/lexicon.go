package sentiment

import (
	"bufio"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

//go:embed lexicon.tsv
var lexiconData string

// negators flip the weight of the word that follows them.
var negators = map[string]struct{}{
	"no": {}, "nunca": {}, "jamas": {}, "tampoco": {}, "ni": {},
	"not": {}, "never": {}, "dont": {}, "cant": {}, "isnt": {}, "wont": {},
}

var foldAccents = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u",
	"à", "a", "è", "e", "ì", "i", "ò", "o", "ù", "u",
)

// Lexicon maps normalized words to AFINN-style weights.
type Lexicon map[string]int

// DefaultLexicon returns the embedded Spanish and English word list.
func DefaultLexicon() Lexicon {
	lex, err := ParseLexicon(lexiconData)
	if err != nil {
		panic(fmt.Sprintf("embedded lexicon is invalid: %v", err))
	}
	return lex
}

// ParseLexicon reads "word<TAB>weight" lines. Blank lines and lines starting with # are skipped.
func ParseLexicon(data string) (Lexicon, error) {
	lex := make(Lexicon)
	scanner := bufio.NewScanner(strings.NewReader(data))
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected word and weight, got %q", line, text)
		}
		weight, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid weight %q: %w", line, fields[1], err)
		}
		lex[normalizeWord(fields[0])] = weight
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lexicon: %w", err)
	}
	return lex, nil
}

// Score sums the weights of every known word in text. A word directly preceded by a
// negator contributes its negated weight.
func (l Lexicon) Score(text string) int {
	tokens := tokenize(text)

	total := 0
	for i, tok := range tokens {
		weight, ok := l[tok]
		if !ok {
			continue
		}
		if i > 0 {
			if _, negated := negators[tokens[i-1]]; negated {
				weight = -weight
			}
		}
		total += weight
	}
	return total
}

func tokenize(text string) []string {
	lowered := foldAccents.Replace(strings.ToLower(text))
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return r
		case r == '\'':
			return -1
		default:
			return ' '
		}
	}, lowered)
	return strings.Fields(cleaned)
}

func normalizeWord(w string) string {
	return foldAccents.Replace(strings.ToLower(w))
}
