package analysis

import (
	"fmt"

	"github.com/heartmarshall/subvocab-backend/internal/domain"
)

const systemPromptTemplate = `You are a language analysis assistant that helps English learners (CEFR levels %s) understand vocabulary in video subtitles. For each sentence, identify important or difficult words based on the user's level, and provide detailed information about them. Also identify any idioms, slang, or native expressions and explain how native speakers use them. You MUST ONLY respond with a valid JSON object and nothing else. Do not include any explanatory text or markdown formatting.`

const userPromptTemplate = `Analyze the following subtitle text for a student with English level %d-%d (%s): %q

Provide the analysis ONLY in JSON format with the following structure. Do not include any explanatory text before or after the JSON:
{
  "text": %q,
  "words": [
    {
      "word": "difficult_word",
      "phonetic": "/fəˈnetɪk/",
      "difficulty": 4,
      "meanings": [
        {"partOfSpeech": "n.", "definition": "meaning as noun"},
        {"partOfSpeech": "v.", "definition": "meaning as verb"}
      ],
      "examples": ["Example sentence using the word."],
      "similar": ["synonym1", "synonym2", "related_phrase"]
    }
  ],
  "nativeExpressions": [
    {
      "expression": "native_expression_or_idiom",
      "meaning": "what this expression means",
      "usage": "how and when native speakers use this expression",
      "examples": ["Example sentence showing usage"]
    }
  ]
}

"difficulty" is an integer from 1 (A1) to 6 (C2).`

// Level is the learner's difficulty range on the 1..6 scale.
type Level struct {
	Min int
	Max int
}

func (l Level) cefr() string {
	if r := domain.LevelRange(l.Min, l.Max); r != "" {
		return r
	}
	return "B1-B2"
}

func systemPrompt(level Level) string {
	return fmt.Sprintf(systemPromptTemplate, level.cefr())
}

func userPrompt(level Level, sentence string) string {
	return fmt.Sprintf(userPromptTemplate, level.Min, level.Max, level.cefr(), sentence, sentence)
}
