package domain

// Meaning is one part-of-speech / definition pair of a word.
type Meaning struct {
	PartOfSpeech string `json:"partOfSpeech"`
	Definition   string `json:"definition"`
}

// WordAnnotation describes a word a learner at the configured level is
// likely to find difficult.
type WordAnnotation struct {
	Word       string    `json:"word"`
	Phonetic   string    `json:"phonetic"`
	Difficulty int       `json:"difficulty"`
	CEFR       string    `json:"cefr,omitempty"`
	Band       Band      `json:"band,omitempty"`
	Meanings   []Meaning `json:"meanings"`
	Examples   []string  `json:"examples"`
	Similar    []string  `json:"similar"`
}

// ExpressionAnnotation describes an idiom, slang or native expression.
type ExpressionAnnotation struct {
	Expression string   `json:"expression"`
	Meaning    string   `json:"meaning"`
	Usage      string   `json:"usage"`
	Examples   []string `json:"examples"`
}

// SentenceAnalysis is the enrichment of one sentence. Error is set when
// enrichment failed; Words and NativeExpressions are then empty.
type SentenceAnalysis struct {
	Text              string                 `json:"text"`
	Words             []WordAnnotation       `json:"words"`
	NativeExpressions []ExpressionAnnotation `json:"nativeExpressions"`
	Error             string                 `json:"error,omitempty"`
}

// Degraded reports whether the analysis carries an error marker.
func (s SentenceAnalysis) Degraded() bool {
	return s.Error != ""
}

// EmptyAnalysis returns an analysis of sentence with no annotations.
func EmptyAnalysis(sentence string) SentenceAnalysis {
	return SentenceAnalysis{
		Text:              sentence,
		Words:             []WordAnnotation{},
		NativeExpressions: []ExpressionAnnotation{},
	}
}

// DegradedAnalysis returns an empty analysis of sentence marked with reason.
func DegradedAnalysis(sentence, reason string) SentenceAnalysis {
	a := EmptyAnalysis(sentence)
	a.Error = reason
	return a
}

// Normalize replaces nil slices with empty ones so the JSON form always
// carries arrays.
func (s *SentenceAnalysis) Normalize() {
	if s.Words == nil {
		s.Words = []WordAnnotation{}
	}
	if s.NativeExpressions == nil {
		s.NativeExpressions = []ExpressionAnnotation{}
	}
	for i := range s.Words {
		w := &s.Words[i]
		if w.Meanings == nil {
			w.Meanings = []Meaning{}
		}
		if w.Examples == nil {
			w.Examples = []string{}
		}
		if w.Similar == nil {
			w.Similar = []string{}
		}
	}
	for i := range s.NativeExpressions {
		if s.NativeExpressions[i].Examples == nil {
			s.NativeExpressions[i].Examples = []string{}
		}
	}
}
