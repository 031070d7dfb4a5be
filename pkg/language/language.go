// Package language tags record descriptions with an ISO-639-1 code.
package language

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// Languages the detector chooses from. The store localizes descriptions
// into these.
var Languages = []lingua.Language{
	lingua.English,
	lingua.French,
	lingua.German,
	lingua.Spanish,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Dutch,
	lingua.Japanese,
	lingua.Korean,
	lingua.Chinese,
}

// MinConfidence below which a guess is reported as unknown.
const MinConfidence = 0.5

// Tag is a detected language.
type Tag struct {
	Code       string  `json:"code" yaml:"code"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

type Detector struct {
	detector lingua.LanguageDetector
}

// NewDetector builds a detector over Languages. Building loads the language
// models, so reuse the result.
func NewDetector() *Detector {
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(Languages...).
			Build(),
	}
}

// Detect returns the language of text, or false when the text is empty or
// no language reaches MinConfidence.
func (d *Detector) Detect(text string) (Tag, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Tag{}, false
	}

	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return Tag{}, false
	}

	confidence := d.detector.ComputeLanguageConfidence(text, lang)
	if confidence < MinConfidence {
		return Tag{}, false
	}

	return Tag{
		Code:       strings.ToLower(lang.IsoCode639_1().String()),
		Confidence: confidence,
	}, true
}
