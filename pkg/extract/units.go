package extract

import (
	"context"
	"strings"
	"unicode"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/pkoukk/tiktoken-go"

	"github.com/luppa-project/luppa/pkg/loader"
)

type textUnit struct {
	id         string
	documentID string
	start      int
	end        int
	text       string
}

// transformIntoUnits splits text into token-bounded units along sentence
// boundaries. A single sentence longer than maxTokens becomes its own unit
// rather than being cut mid-sentence.
func transformIntoUnits(
	text string,
	documentID string,
	encoder string,
	maxTokens int,
) ([]textUnit, error) {
	enc, err := tiktoken.GetEncoding(encoder)
	if err != nil {
		return nil, err
	}

	sentences := splitIntoSentences(text)
	if len(sentences) == 0 {
		return nil, nil
	}

	var units []textUnit
	unitStart := -1
	unitEnd := -1

	flushUnit := func() error {
		if unitStart < 0 || unitEnd <= unitStart {
			return nil
		}
		uID, err := gonanoid.New()
		if err != nil {
			return err
		}

		var unitText strings.Builder
		for i := unitStart; i < unitEnd; i++ {
			if i > unitStart {
				unitText.WriteString(" ")
			}
			unitText.WriteString(sentences[i])
		}

		units = append(units, textUnit{
			id:         uID,
			documentID: documentID,
			start:      unitStart,
			end:        unitEnd,
			text:       strings.TrimSpace(unitText.String()),
		})
		unitStart = -1
		unitEnd = -1
		return nil
	}

	for i := range sentences {
		if unitStart < 0 {
			unitStart = i
			unitEnd = i + 1
			continue
		}

		var testText strings.Builder
		for j := unitStart; j <= i; j++ {
			if j > unitStart {
				testText.WriteString(" ")
			}
			testText.WriteString(sentences[j])
		}

		testTokens := len(enc.Encode(testText.String(), nil, nil))

		if testTokens <= maxTokens {
			unitEnd = i + 1
		} else {
			if err := flushUnit(); err != nil {
				return nil, err
			}
			unitStart = i
			unitEnd = i + 1
		}
	}

	if err := flushUnit(); err != nil {
		return nil, err
	}

	return units, nil
}

func unitsFromDocument(
	ctx context.Context,
	doc loader.Document,
	encoder string,
) ([]textUnit, error) {
	textBytes, err := doc.GetText(ctx)
	if err != nil {
		return nil, err
	}
	text := strings.TrimSpace(string(textBytes))
	if text == "" {
		return nil, nil
	}

	return transformIntoUnits(text, doc.ID, encoder, doc.MaxTokens)
}

// splitIntoSentences breaks text into sentences. Paragraph breaks always end
// the current sentence, so list-style documents split cleanly even without
// terminal punctuation.
func splitIntoSentences(text string) []string {
	lines := strings.Split(text, "\n")
	var sentences []string
	var current strings.Builder

	flush := func() {
		s := strings.TrimSpace(current.String())
		if s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}

		for _, sentence := range splitLineIntoSentences(trimmed) {
			if current.Len() > 0 {
				current.WriteString(" ")
			}
			current.WriteString(sentence)

			trimmedSentence := strings.TrimSpace(sentence)
			if strings.HasSuffix(trimmedSentence, ".") ||
				strings.HasSuffix(trimmedSentence, "!") ||
				strings.HasSuffix(trimmedSentence, "?") {
				flush()
			}
		}
	}
	flush()

	return sentences
}

func splitLineIntoSentences(line string) []string {
	var sentences []string
	var current strings.Builder

	for i := 0; i < len(line); i++ {
		current.WriteByte(line[i])

		if line[i] == '.' || line[i] == '!' || line[i] == '?' {
			// "1. First item" style numeric listings are not sentence ends.
			if i > 0 && unicode.IsDigit(rune(line[i-1])) &&
				i+1 < len(line) && line[i+1] == ' ' {
				continue
			}

			j := i + 1
			for j < len(line) && (line[j] == '.' || line[j] == '!' || line[j] == '?') {
				current.WriteByte(line[j])
				j++
			}
			for j < len(line) && (line[j] == '"' || line[j] == '\'' || line[j] == ')' ||
				line[j] == ']' || line[j] == '}') {
				current.WriteByte(line[j])
				j++
			}

			sentence := strings.TrimSpace(current.String())
			if sentence != "" {
				sentences = append(sentences, sentence)
			}
			current.Reset()
			i = j - 1
		}
	}

	remaining := strings.TrimSpace(current.String())
	if remaining != "" {
		sentences = append(sentences, remaining)
	}

	return sentences
}
