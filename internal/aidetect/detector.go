// Package aidetect provides a heuristic score for how machine-generated a
// piece of text looks.
//
// The scorer is not a trained classifier. It combines cheap lexical
// statistics that correlate with generated prose: low sentence-length
// variance (burstiness), unusually even stop-word density, and low
// type-token ratio. The score is advisory and bounded to [0, 1].
package aidetect

import (
	"math"
	"strings"
	"sync"
	"unicode"
)

// model holds the read-only scoring parameters. It is built once per process
// and shared by all requests.
type model struct {
	stopWords map[string]struct{}

	// Reference points for each lexical signal, calibrated against a small
	// corpus of human-written abstracts.
	meanBurstiness    float64
	meanTypeToken     float64
	meanStopDensity   float64
	burstinessWeight  float64
	typeTokenWeight   float64
	stopDensityWeight float64
}

// loadModel is the process-wide lazily initialized model accessor. The handle
// is immutable after construction and safe for concurrent use.
var loadModel = sync.OnceValue(func() *model {
	stops := strings.Fields(
		"a an the and or but of in on at to for with by from as is are was " +
			"were be been being it its this that these those we our they their " +
			"he she his her you your i not no so if then than which who whom " +
			"can could may might must shall should will would do does did have " +
			"has had there here when where while also such more most other some")
	stopWords := make(map[string]struct{}, len(stops))
	for _, s := range stops {
		stopWords[s] = struct{}{}
	}
	return &model{
		stopWords:         stopWords,
		meanBurstiness:    0.55,
		meanTypeToken:     0.62,
		meanStopDensity:   0.42,
		burstinessWeight:  0.45,
		typeTokenWeight:   0.30,
		stopDensityWeight: 0.25,
	}
})

// MinWords is the smallest input the detector scores. Shorter texts do not
// carry enough signal for the statistics to mean anything.
const MinWords = 30

// Result holds a detection score with the signals it was derived from.
type Result struct {
	// Score is the machine-generation likelihood in [0, 1].
	Score float64 `json:"score"`

	// Words is the number of words the signals were computed over.
	Words int `json:"words"`

	// Burstiness is the coefficient of variation of sentence lengths.
	Burstiness float64 `json:"burstiness"`

	// TypeTokenRatio is distinct words over total words.
	TypeTokenRatio float64 `json:"type_token_ratio"`

	// StopWordDensity is the share of stop-words among all words.
	StopWordDensity float64 `json:"stop_word_density"`

	// Reliable is false when the input was too short to score; Score is 0
	// in that case.
	Reliable bool `json:"reliable"`
}

// Score computes the detection result for a text. It never fails: inputs too
// short to score return an unreliable zero result.
func Score(text string) Result {
	m := loadModel()

	words := tokenize(text)
	if len(words) < MinWords {
		return Result{Words: len(words)}
	}

	burstiness := sentenceBurstiness(text)
	typeToken := typeTokenRatio(words)
	stopDensity := m.stopDensity(words)

	// Each signal contributes how far below (or above, for stop-word
	// density) its human reference point the text sits.
	score := m.burstinessWeight*deficit(burstiness, m.meanBurstiness) +
		m.typeTokenWeight*deficit(typeToken, m.meanTypeToken) +
		m.stopDensityWeight*excess(stopDensity, m.meanStopDensity)

	return Result{
		Score:           clamp01(score),
		Words:           len(words),
		Burstiness:      burstiness,
		TypeTokenRatio:  typeToken,
		StopWordDensity: stopDensity,
		Reliable:        true,
	}
}

// deficit maps "how far below the reference" to [0, 1].
func deficit(value, reference float64) float64 {
	if reference <= 0 {
		return 0
	}
	return clamp01((reference - value) / reference)
}

// excess maps "how far above the reference" to [0, 1].
func excess(value, reference float64) float64 {
	if reference <= 0 {
		return 0
	}
	return clamp01((value - reference) / reference)
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

// tokenize lowercases and splits text into words, stripping punctuation.
func tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)
	return strings.Fields(cleaned)
}

// sentenceBurstiness returns the coefficient of variation of sentence word
// counts. Human prose alternates short and long sentences; uniformly sized
// sentences push this toward zero.
func sentenceBurstiness(text string) float64 {
	sentences := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	var lengths []float64
	for _, s := range sentences {
		if n := len(strings.Fields(s)); n > 0 {
			lengths = append(lengths, float64(n))
		}
	}
	if len(lengths) < 2 {
		return 0
	}

	var sum float64
	for _, l := range lengths {
		sum += l
	}
	mean := sum / float64(len(lengths))

	var variance float64
	for _, l := range lengths {
		variance += (l - mean) * (l - mean)
	}
	variance /= float64(len(lengths))

	if mean == 0 {
		return 0
	}
	return math.Sqrt(variance) / mean
}

// typeTokenRatio returns distinct words over total words.
func typeTokenRatio(words []string) float64 {
	distinct := make(map[string]struct{}, len(words))
	for _, w := range words {
		distinct[w] = struct{}{}
	}
	return float64(len(distinct)) / float64(len(words))
}

// stopDensity returns the share of stop-words among all words.
func (m *model) stopDensity(words []string) float64 {
	stops := 0
	for _, w := range words {
		if _, ok := m.stopWords[w]; ok {
			stops++
		}
	}
	return float64(stops) / float64(len(words))
}
