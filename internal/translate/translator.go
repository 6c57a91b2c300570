// Package translate provides best-effort translation of arbitrary-language
// input into the query language used by the bibliographic search API.
//
// Translation is advisory, never blocking: any failure (network, quota,
// detection failure, malformed response) degrades transparently to the
// original text. A single attempt is made per call; the matching pipeline
// already has text-level fallback behavior.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pubscout/journal-matcher/internal/apiclient"
)

const (
	// DefaultBaseURL is the public translate endpoint used by default.
	DefaultBaseURL = "https://translate.googleapis.com"

	// maxInputRunes bounds the text sent upstream; abstracts are short and
	// the endpoint rejects very long query strings.
	maxInputRunes = 4500
)

// Config holds configuration for the translator.
type Config struct {
	// Enabled controls whether translation is attempted at all.
	Enabled bool

	// BaseURL is the translation endpoint base URL.
	BaseURL string

	// TargetLanguage is the fixed target language code (e.g. "en").
	TargetLanguage string

	// Timeout is the per-call timeout.
	Timeout time.Duration
}

// Translator performs single-attempt, auto-detect-source translation.
type Translator struct {
	config     Config
	httpClient *apiclient.Client
	logger     zerolog.Logger
}

// New creates a new Translator.
func New(cfg Config, logger zerolog.Logger) *Translator {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.TargetLanguage == "" {
		cfg.TargetLanguage = "en"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}

	return &Translator{
		config: cfg,
		httpClient: apiclient.New(apiclient.Config{
			Timeout: cfg.Timeout,
			// Translation gets no retries; one attempt per call.
			MaxRetries: -1,
		}),
		logger: logger.With().Str("component", "translator").Logger(),
	}
}

// NewWithHTTPClient creates a Translator with a custom HTTP client for tests.
func NewWithHTTPClient(cfg Config, httpClient *apiclient.Client, logger zerolog.Logger) *Translator {
	t := New(cfg, logger)
	t.httpClient = httpClient
	return t
}

// Translate translates text into the configured target language, with the
// source language auto-detected upstream. The second return value reports
// whether the text was actually translated; on any failure the original
// input is returned unchanged.
func (t *Translator) Translate(ctx context.Context, text string) (string, bool) {
	if !t.config.Enabled || strings.TrimSpace(text) == "" {
		return text, false
	}

	input := text
	if runes := []rune(input); len(runes) > maxInputRunes {
		input = string(runes[:maxInputRunes])
	}

	translated, err := t.call(ctx, input)
	if err != nil {
		t.logger.Warn().Err(err).Msg("translation failed, using original text")
		return text, false
	}
	if strings.TrimSpace(translated) == "" {
		return text, false
	}
	return translated, translated != input
}

// call issues the upstream request and parses the segment response.
func (t *Translator) call(ctx context.Context, text string) (string, error) {
	base, err := url.Parse(t.config.BaseURL)
	if err != nil {
		return "", err
	}
	base.Path = "/translate_a/single"

	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", "auto")
	params.Set("tl", t.config.TargetLanguage)
	params.Set("dt", "t")
	params.Set("q", text)
	base.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base.String(), nil)
	if err != nil {
		return "", err
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
		return "", &statusError{code: resp.StatusCode}
	}

	// The endpoint returns nested arrays; the first element holds the
	// translated segments as [translated, original, ...] tuples.
	var payload []json.RawMessage
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&payload); err != nil {
		return "", err
	}
	if len(payload) == 0 {
		return "", errMalformedResponse
	}

	var segments [][]json.RawMessage
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", err
	}

	var builder strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		var part string
		if err := json.Unmarshal(seg[0], &part); err != nil {
			continue
		}
		builder.WriteString(part)
	}
	return builder.String(), nil
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("translate endpoint returned status %d", e.code)
}

var errMalformedResponse = &malformedError{}

type malformedError struct{}

func (*malformedError) Error() string { return "malformed translate response" }
