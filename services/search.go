package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrNoSearchResults is returned when a provider answers without results
var ErrNoSearchResults = errors.New("no search results")

// Searcher runs a web search and returns a plain-text summary
type Searcher interface {
	Search(ctx context.Context, query string) (string, error)
}

// StubSearcher returns a canned sentence and performs no I/O
type StubSearcher struct {
	log *logrus.Entry
}

// NewStubSearcher creates the default, offline searcher
func NewStubSearcher(log *logrus.Entry) *StubSearcher {
	return &StubSearcher{log: log}
}

func (s *StubSearcher) Search(_ context.Context, query string) (string, error) {
	s.log.WithField("query", query).Info("performing web search")
	return fmt.Sprintf("The web search results for '%s' indicate that the capital of France is Paris.", query), nil
}

// SerpAPISearcher queries SerpAPI's Google engine
type SerpAPISearcher struct {
	apiKey  string
	baseURL string
	count   int
	client  *http.Client
	log     *logrus.Entry
}

// NewSerpAPISearcher creates a searcher returning at most count results
func NewSerpAPISearcher(apiKey, baseURL string, count int, log *logrus.Entry) *SerpAPISearcher {
	return &SerpAPISearcher{
		apiKey:  apiKey,
		baseURL: baseURL,
		count:   count,
		client:  &http.Client{Timeout: 15 * time.Second},
		log:     log,
	}
}

type serpAPIResponse struct {
	Error          string `json:"error"`
	OrganicResults []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic_results"`
}

func (s *SerpAPISearcher) Search(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("num", strconv.Itoa(s.count))
	params.Set("api_key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("building serpapi request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	s.log.WithField("query", query).Info("performing web search")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("serpapi error: %s: %s", resp.Status, strings.TrimSpace(string(bodyBytes)))
	}

	var result serpAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding serpapi response: %w", err)
	}
	if result.Error != "" {
		return "", fmt.Errorf("serpapi error: %s", result.Error)
	}
	if len(result.OrganicResults) == 0 {
		return "", ErrNoSearchResults
	}

	lines := make([]string, 0, s.count)
	for i, r := range result.OrganicResults {
		if i >= s.count {
			break
		}
		lines = append(lines, fmt.Sprintf("%d. %s - %s (%s)", i+1, r.Title, r.Snippet, r.Link))
	}
	return strings.Join(lines, "\n"), nil
}
