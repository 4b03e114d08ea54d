package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/hashicorp/go-set/v2"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/nlewis84/weekly-summary/lib/caches"
	"github.com/nlewis84/weekly-summary/lib/model"
	"github.com/nlewis84/weekly-summary/lib/transcripts"
	"github.com/nlewis84/weekly-summary/lib/utils"
)

const (
	DefaultAPIURL = "https://api.github.com"

	transcriptSuffix = "-week-in-review.md"

	weeksCacheKey = "history:weeks"
)

var weekKeyRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsWeekKey reports whether s is a valid week ending key (YYYY-MM-DD).
func IsWeekKey(s string) bool {
	return weekKeyRe.MatchString(s)
}

type StoreOptions struct {
	// Repo is the repository holding the summaries, as "owner/name".
	Repo string

	// Token is the bearer credential. Required: the store refuses to
	// construct without it rather than failing on the first request.
	Token string

	// Dirs are the directories searched for summaries, usually one per
	// calendar year.
	Dirs []string

	// APIURL overrides the GitHub API base URL (tests).
	APIURL string
}

// Store reads weekly summaries from a GitHub repository through the
// contents API. Each week resolves to either a structured JSON file or a
// narrated transcript parsed into the same shape. Results, including
// absent weeks, are cached.
type Store struct {
	apiURL string
	owner  string
	repo   string
	token  string
	dirs   []string

	transport *Transport
	parser    *transcripts.Parser
	cache     caches.Cache
}

func NewStore(opts *StoreOptions, transport *Transport, parser *transcripts.Parser, cache caches.Cache) (*Store, error) {
	if opts.Token == "" {
		return nil, errors.New("GITHUB_TOKEN required for GitHub fetch")
	}

	owner, repo, found := strings.Cut(opts.Repo, "/")
	if !found || owner == "" || repo == "" {
		return nil, errors.New("GITHUB_REPO must be owner/repo")
	}

	if len(opts.Dirs) == 0 {
		return nil, errors.New("at least one summaries directory is required")
	}

	apiURL := opts.APIURL
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	return &Store{
		apiURL:    strings.TrimSuffix(apiURL, "/"),
		owner:     owner,
		repo:      repo,
		token:     opts.Token,
		dirs:      opts.Dirs,
		transport: transport,
		parser:    parser,
		cache:     cache,
	}, nil
}

// ListWeeks enumerates the week keys available across all configured
// directories, most recent first. A directory that does not exist yet is
// skipped; any other failure aborts.
func (s *Store) ListWeeks(ctx context.Context, bustCache bool) ([]string, error) {
	if !bustCache {
		if cached, ok := s.cache.Get(weeksCacheKey); ok {
			return cached.([]string), nil
		}
	}

	weeks := set.New[string](0)

	for _, dir := range s.dirs {
		items, err := s.listDir(ctx, dir)
		if err != nil {
			return nil, err
		}

		for _, item := range items {
			if item.Type != "file" {
				continue
			}

			if week, ok := weekFromFileName(item.Name); ok {
				weeks.Insert(week)
			}
		}
	}

	result := weeks.Slice()
	utils.SortDesc(result)

	s.cache.Set(weeksCacheKey, result)
	return result, nil
}

// FetchWeek resolves one week to a summary, or to nil if no file exists for
// it anywhere. The structured form wins over the transcript form; the
// directory matching the week's year is tried first.
func (s *Store) FetchWeek(ctx context.Context, week string, bustCache bool) (*model.WeeklySummary, error) {
	key := weekCacheKey(week)

	if !bustCache {
		if cached, ok := s.cache.Get(key); ok {
			return cached.(*model.WeeklySummary), nil
		}
	}

	dirs := s.dirsForWeek(week)

	for _, dir := range dirs {
		raw, found, err := s.fileContent(ctx, dir+"/"+week+".json")
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}

		summary := &model.WeeklySummary{}
		err = json.Unmarshal(raw, summary)
		if err != nil {
			return nil, errors.Wrapf(err, "malformed summary %v/%v.json", dir, week)
		}

		summary.Normalize()
		s.cache.Set(key, summary)
		return summary, nil
	}

	for _, dir := range dirs {
		raw, found, err := s.fileContent(ctx, dir+"/"+week+transcriptSuffix)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}

		summary := s.parser.Parse(string(raw))
		if summary == nil {
			// unusable transcript, same as absent
			continue
		}

		summary.Normalize()
		s.cache.Set(key, summary)
		return summary, nil
	}

	s.cache.Set(key, (*model.WeeklySummary)(nil))
	return nil, nil
}

// BustWeek drops the cached result for one week, forcing the next fetch to
// hit the network.
func (s *Store) BustWeek(week string) {
	s.cache.Bust(weekCacheKey(week))
	s.cache.Bust(weeksCacheKey)
}

func weekCacheKey(week string) string {
	return "history:week:" + week
}

func weekFromFileName(name string) (string, bool) {
	var week string
	switch {
	case strings.HasSuffix(name, transcriptSuffix):
		week = strings.TrimSuffix(name, transcriptSuffix)
	case strings.HasSuffix(name, ".json"):
		week = strings.TrimSuffix(name, ".json")
	default:
		return "", false
	}

	if !IsWeekKey(week) {
		return "", false
	}
	return week, true
}

func (s *Store) dirsForWeek(week string) []string {
	year := week[:4]

	matching, others := lo.FilterReject(s.dirs, func(dir string, _ int) bool {
		return strings.Contains(dir, year)
	})

	return append(matching, others...)
}

type contentItem struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"`
}

func (s *Store) listDir(ctx context.Context, dir string) ([]contentItem, error) {
	resp, err := s.get(ctx, s.contentsURL(dir))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var items []contentItem
	err = json.NewDecoder(resp.Body).Decode(&items)
	if err != nil {
		return nil, errors.Wrapf(err, "listing %v", dir)
	}

	return items, nil
}

func (s *Store) fileContent(ctx context.Context, path string) ([]byte, bool, error) {
	resp, err := s.get(ctx, s.contentsURL(path))
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, apiError(resp)
	}

	var file struct {
		Content  string `json:"content"`
		Encoding string `json:"encoding"`
	}
	err = json.NewDecoder(resp.Body).Decode(&file)
	if err != nil {
		return nil, false, errors.Wrapf(err, "fetching %v", path)
	}

	if file.Content == "" || file.Encoding != "base64" {
		return nil, false, errors.Errorf("invalid GitHub content response for %v", path)
	}

	raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(file.Content, "\n", ""))
	if err != nil {
		return nil, false, errors.Wrapf(err, "decoding %v", path)
	}

	return raw, true, nil
}

func (s *Store) contentsURL(path string) string {
	return fmt.Sprintf("%v/repos/%v/%v/contents/%v", s.apiURL, s.owner, s.repo, path)
}

func (s *Store) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Accept", "application/vnd.github+json")

	return s.transport.Do(req)
}

func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
		return errors.Errorf("GitHub API: %v", payload.Message)
	}

	return errors.Errorf("GitHub API: %v", resp.Status)
}
