package graph

import "strings"

// AnswerUnrecognized is the sentinel returned when no canonical quiz label
// can be extracted from the user's answer.
const AnswerUnrecognized = "unrecognized"

// canonical label per accepted token. Digits map positionally to letters.
var answerTokens = map[string]string{
	"A": "A", "B": "B", "C": "C", "D": "D",
	"1": "A", "2": "B", "3": "C", "4": "D",
}

// NormalizeAnswer maps free-text quiz input to one of the canonical labels
// {A, B, C, D} or AnswerUnrecognized. It accepts bare letters and digits in
// any case, and phrases such as "option b" or "alternative 3". It is a total
// function: it never fails and has no side effects.
//
// When the input mentions more than one distinct label ("A or B"), the
// answer is ambiguous and the sentinel is returned rather than picking the
// first match.
func NormalizeAnswer(raw string) string {
	trimmed := strings.ToUpper(strings.TrimSpace(raw))
	if trimmed == "" {
		return AnswerUnrecognized
	}

	// Fast path: the whole input is a single accepted token.
	if label, ok := answerTokens[trimmed]; ok {
		return label
	}

	// Tokenize on anything that is not a letter or digit so "b)", "(2)"
	// and "option C." all yield clean tokens.
	tokens := strings.FieldsFunc(trimmed, func(r rune) bool {
		return !(r >= 'A' && r <= 'Z') && !(r >= '0' && r <= '9')
	})

	found := ""
	for _, tok := range tokens {
		label, ok := answerTokens[tok]
		if !ok {
			continue
		}
		if found != "" && found != label {
			// Two distinct labels in the same answer: ambiguous.
			return AnswerUnrecognized
		}
		found = label
	}

	if found == "" {
		return AnswerUnrecognized
	}
	return found
}

// yesWords are the affirmative continuation responses, matching the
// variants the conversation historically accepted.
var yesWords = map[string]bool{
	"yes": true, "y": true, "yeah": true, "yep": true,
	"sim": true, "s": true, "si": true,
}

// NormalizeContinue interprets a yes/no-style response as a continuation
// decision. A reply is affirmative when its first word is one of the yes
// variants, so "yes please" continues. Everything else ends the session,
// including soft agreements like "sure" or "ok" that the word list does not
// cover; ending is the safe default for an ambiguous reply.
func NormalizeContinue(raw string) bool {
	fields := strings.Fields(strings.ToLower(raw))
	if len(fields) == 0 {
		return false
	}
	return yesWords[strings.Trim(fields[0], ",.!?")]
}
