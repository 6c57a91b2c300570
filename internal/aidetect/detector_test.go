package aidetect

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

const humanSample = `We tried three approaches. The first failed almost immediately, ` +
	`which surprised nobody on the team given how brittle the original parser was. ` +
	`Second attempt: rewrite the tokenizer from scratch, benchmark it against the ` +
	`legacy path, and ship behind a flag. That one worked. Finally we spent a week ` +
	`deleting dead code, arguing about naming, and fixing the long tail of weird ` +
	`unicode inputs users kept finding in production logs.`

func TestScoreTooShortIsUnreliable(t *testing.T) {
	result := Score("only a few words here")

	assert.False(t, result.Reliable)
	assert.Equal(t, 0.0, result.Score)
	assert.Less(t, result.Words, MinWords)
}

func TestScoreEmptyInput(t *testing.T) {
	result := Score("")

	assert.False(t, result.Reliable)
	assert.Equal(t, 0, result.Words)
}

func TestScoreIsBounded(t *testing.T) {
	uniform := strings.Repeat("The model performs the task and produces the result. ", 12)

	for _, text := range []string{humanSample, uniform} {
		result := Score(text)
		assert.True(t, result.Reliable)
		assert.GreaterOrEqual(t, result.Score, 0.0)
		assert.LessOrEqual(t, result.Score, 1.0)
	}
}

func TestScoreUniformTextScoresHigherThanVariedText(t *testing.T) {
	// Identical sentences repeated: zero burstiness and a collapsed
	// type-token ratio, both hallmarks the scorer keys on.
	uniform := strings.Repeat("The model performs the task and produces the result. ", 12)

	uniformResult := Score(uniform)
	humanResult := Score(humanSample)

	assert.Greater(t, uniformResult.Score, humanResult.Score)
	assert.Equal(t, 0.0, uniformResult.Burstiness)
	assert.Greater(t, humanResult.TypeTokenRatio, uniformResult.TypeTokenRatio)
}

func TestScoreIsDeterministic(t *testing.T) {
	first := Score(humanSample)
	second := Score(humanSample)

	assert.Equal(t, first, second)
}

func TestScoreConcurrentFirstUse(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result := Score(humanSample)
			assert.True(t, result.Reliable)
		}()
	}
	wg.Wait()
}

func TestSentenceBurstiness(t *testing.T) {
	assert.Equal(t, 0.0, sentenceBurstiness("One sentence only"))
	assert.Equal(t, 0.0, sentenceBurstiness("Same length here. Same length too."))
	assert.Greater(t, sentenceBurstiness("Short. This sentence is considerably longer than the first one."), 0.0)
}

func TestTypeTokenRatio(t *testing.T) {
	assert.Equal(t, 1.0, typeTokenRatio([]string{"a", "b", "c"}))
	assert.Equal(t, 0.5, typeTokenRatio([]string{"a", "a", "b", "b"}))
}
