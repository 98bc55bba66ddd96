// Package version checks GitHub for a newer softdo release. The check
// is best effort: the task list and the reminder scheduler never depend
// on it, and every failure degrades to "no update".
package version

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Current is set at build time via -ldflags.
var Current = "1.7.2"

const defaultAPIBase = "https://api.github.com"

type githubRelease struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
	Body    string `json:"body"`
}

type Info struct {
	HasUpdate     bool
	LatestVersion string
	ReleaseURL    string
	ReleaseNotes  string
}

type Checker struct {
	repo     string
	apiBase  string
	client   *http.Client
	cacheDir string
}

type Option func(*Checker)

// WithAPIBase points the checker at a different API host (tests).
func WithAPIBase(base string) Option {
	return func(c *Checker) { c.apiBase = strings.TrimRight(base, "/") }
}

// WithCacheDir sets where the skip-version marker lives.
func WithCacheDir(dir string) Option {
	return func(c *Checker) { c.cacheDir = dir }
}

func NewChecker(repo string, opts ...Option) *Checker {
	c := &Checker{
		repo:    repo,
		apiBase: defaultAPIBase,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check fetches the latest release and compares it to the running
// version. A version the user chose to skip reports no update.
func (c *Checker) Check() (Info, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", c.apiBase, c.repo)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return Info{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "SoftDo-App")

	resp, err := c.client.Do(req)
	if err != nil {
		return Info{}, fmt.Errorf("check for updates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Info{}, fmt.Errorf("github api returned status %d", resp.StatusCode)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return Info{}, fmt.Errorf("parse release info: %w", err)
	}

	latest := normalize(release.TagName)
	if latest == "" || latest == normalize(Current) {
		return Info{}, nil
	}
	if c.skippedVersion() == latest {
		return Info{}, nil
	}
	return Info{
		HasUpdate:     true,
		LatestVersion: release.TagName,
		ReleaseURL:    release.HTMLURL,
		ReleaseNotes:  release.Body,
	}, nil
}

// SkipVersion remembers a version the user declined, so later checks
// stay quiet about it.
func (c *Checker) SkipVersion(version string) error {
	if c.cacheDir == "" {
		return nil
	}
	if err := os.MkdirAll(c.cacheDir, 0o755); err != nil {
		return err
	}
	payload, err := json.Marshal(skipState{Version: normalize(version)})
	if err != nil {
		return err
	}
	path := c.skipPath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

type skipState struct {
	Version string `json:"version"`
}

func (c *Checker) skippedVersion() string {
	if c.cacheDir == "" {
		return ""
	}
	raw, err := os.ReadFile(c.skipPath())
	if err != nil {
		return ""
	}
	var state skipState
	if err := json.Unmarshal(raw, &state); err != nil {
		return ""
	}
	return state.Version
}

func (c *Checker) skipPath() string {
	return filepath.Join(c.cacheDir, "skip-version.json")
}

func normalize(v string) string {
	return strings.TrimPrefix(strings.TrimSpace(v), "v")
}
