// Package scan checks published pages against an AI-content-detection API
// and records the scores.
package scan

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Score thresholds, in percent AI-likelihood.
const (
	passThreshold    = 20
	warningThreshold = 40
)

// The detection API caps submitted content length.
const maxContentLength = 15000

const minWordCount = 50

const defaultEndpoint = "https://api.originality.ai/api/v1/scan/ai"

// ErrNotEnoughContent is returned when a page has too little prose to score.
var ErrNotEnoughContent = errors.New("not enough content to analyze")

// Result is one scored page.
type Result struct {
	ID           string    `json:"id,omitempty"`
	URL          string    `json:"url"`
	URLPath      string    `json:"urlPath"`
	AIScore      int       `json:"aiScore"`
	HumanScore   int       `json:"humanScore"`
	Status       string    `json:"status"`
	WordsChecked int       `json:"wordCount"`
	CreditsUsed  int       `json:"creditsUsed"`
	ContentHash  string    `json:"-"`
	CheckedAt    time.Time `json:"checkedAt"`
}

// Repository persists scan results keyed by URL.
type Repository interface {
	Upsert(ctx context.Context, result Result) (*Result, error)
	GetByURL(ctx context.Context, url string) (*Result, error)
	List(ctx context.Context) ([]Result, error)
}

// Scanner fetches pages, scores them, and stores the outcome.
type Scanner struct {
	apiKey   string
	endpoint string
	repo     Repository
	httpc    *http.Client
	logger   *log.Logger
}

func New(apiKey string, repo Repository, logger *log.Logger) *Scanner {
	return &Scanner{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		repo:     repo,
		httpc:    &http.Client{Timeout: 60 * time.Second},
		logger:   logger,
	}
}

// SetEndpoint overrides the detection API endpoint.
func (s *Scanner) SetEndpoint(endpoint string) {
	s.endpoint = endpoint
}

// ScanURL fetches the page, extracts its text, and scores it. When the
// page's content hash matches the stored result, the stored scores are
// returned without spending detection credits.
func (s *Scanner) ScanURL(ctx context.Context, pageURL string) (*Result, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid url %q", pageURL)
	}

	text, err := s.fetchText(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	wordCount := len(strings.Fields(text))
	if wordCount < minWordCount {
		return nil, fmt.Errorf("%w: %d words", ErrNotEnoughContent, wordCount)
	}

	hash := HashContent(text)
	if prior, err := s.repo.GetByURL(ctx, pageURL); err == nil && prior != nil && prior.ContentHash == hash {
		s.logger.Printf("content unchanged for %s, reusing stored score", pageURL)
		return prior, nil
	}

	aiScore, humanScore, err := s.detect(ctx, text)
	if err != nil {
		return nil, err
	}

	result := Result{
		URL:          pageURL,
		URLPath:      parsed.Path,
		AIScore:      aiScore,
		HumanScore:   humanScore,
		Status:       StatusFor(aiScore),
		WordsChecked: wordCount,
		CreditsUsed:  1,
		ContentHash:  hash,
		CheckedAt:    time.Now().UTC(),
	}

	stored, err := s.repo.Upsert(ctx, result)
	if err != nil {
		// The score is still useful when storage fails.
		s.logger.Printf("store scan result for %s: %v", pageURL, err)
		return &result, nil
	}
	return stored, nil
}

// History returns all stored results.
func (s *Scanner) History(ctx context.Context) ([]Result, error) {
	return s.repo.List(ctx)
}

func (s *Scanner) fetchText(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; SME-AI-Scanner/1.0)")

	resp, err := s.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch page: %d", resp.StatusCode)
	}

	html, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("read page: %w", err)
	}
	return ExtractText(string(html)), nil
}

func (s *Scanner) detect(ctx context.Context, text string) (aiScore, humanScore int, err error) {
	if len(text) > maxContentLength {
		text = text[:maxContentLength]
	}

	body, err := json.Marshal(map[string]interface{}{
		"content":        text,
		"aiModelVersion": "1",
		"storeScan":      false,
	})
	if err != nil {
		return 0, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-OAI-API-KEY", s.apiKey)

	resp, err := s.httpc.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("detection request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("detection API error: %d", resp.StatusCode)
	}

	var payload struct {
		Score struct {
			AI       float64 `json:"ai"`
			Original float64 `json:"original"`
		} `json:"score"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, 0, fmt.Errorf("decode detection response: %w", err)
	}

	return int(math.Round(payload.Score.AI * 100)), int(math.Round(payload.Score.Original * 100)), nil
}

// StatusFor classifies an AI-likelihood percentage.
func StatusFor(aiScore int) string {
	switch {
	case aiScore < passThreshold:
		return "pass"
	case aiScore < warningThreshold:
		return "warning"
	default:
		return "fail"
	}
}

var (
	scriptRe = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	styleRe  = regexp.MustCompile(`(?is)<style\b.*?</style>`)
	tagRe    = regexp.MustCompile(`<[^>]+>`)
	spaceRe  = regexp.MustCompile(`\s+`)
)

// ExtractText strips scripts, styles, tags, and common entities from HTML.
func ExtractText(html string) string {
	text := scriptRe.ReplaceAllString(html, "")
	text = styleRe.ReplaceAllString(text, "")
	text = tagRe.ReplaceAllString(text, " ")

	replacer := strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
	)
	text = replacer.Replace(text)

	return strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
}

// HashContent produces a short fingerprint used to skip re-scoring unchanged
// pages.
func HashContent(content string) string {
	var hash int32
	for _, r := range content {
		hash = (hash << 5) - hash + int32(r)
	}
	return fmt.Sprintf("%x", uint32(hash))
}
