// Package content loads restaurant records from markdown files with YAML
// front matter.
package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"

	"eatlocal.org/eatlocal-web/internal/restaurants"
)

const (
	defaultContentDir = "content/restaurants"
	defaultCacheTTL   = 5 * time.Minute
	excerptLimit      = 160
)

// recordNamespace scopes generated record IDs.
var recordNamespace = uuid.MustParse("6f1d0c2e-9a43-4b7e-8e0a-2c51d8f4b7a1")

type frontMatter struct {
	Title    string   `yaml:"title"`
	Category string   `yaml:"category"`
	Location string   `yaml:"location"`
	Tags     textList `yaml:"tags"`
	Services textList `yaml:"services"`
	Website  string   `yaml:"website"`
	Phone    string   `yaml:"phone"`
}

// textList accepts either a scalar or a sequence of scalars.
type textList string

func (t *textList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*t = textList(strings.TrimSpace(node.Value))
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: expected text item", item.Line)
			}
			if v := strings.TrimSpace(item.Value); v != "" {
				items = append(items, v)
			}
		}
		*t = textList(strings.Join(items, ", "))
		return nil
	default:
		return fmt.Errorf("line %d: expected text or list of text", node.Line)
	}
}

// Store serves restaurant records from a content directory, caching the
// parsed set in memory.
type Store struct {
	dir      string
	ttl      time.Duration
	renderer *Renderer
	logger   *zap.Logger
	now      func() time.Time

	group singleflight.Group

	mu      sync.RWMutex
	cached  []restaurants.Record
	expires time.Time
}

// Option customises a Store.
type Option func(*Store)

// WithCacheTTL overrides how long loaded records are reused.
func WithCacheTTL(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore constructs a Store rooted at dir.
func NewStore(dir string, opts ...Option) *Store {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = defaultContentDir
	}
	s := &Store{
		dir:      dir,
		ttl:      defaultCacheTTL,
		renderer: NewRenderer(),
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the configured content directory.
func (s *Store) Dir() string {
	return s.dir
}

// Records returns every record sorted by title. The returned slice is a copy
// and may be modified by the caller.
func (s *Store) Records(ctx context.Context) ([]restaurants.Record, error) {
	if records, ok := s.fromCache(); ok {
		return records, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// The load is shared by every caller waiting on the flight, so it must
	// not end when the first caller's request does.
	v, err, _ := s.group.Do(s.dir, func() (any, error) {
		if records, ok := s.fromCache(); ok {
			return records, nil
		}
		records, err := s.load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		s.store(records)
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return cloneRecords(v.([]restaurants.Record)), nil
}

// Invalidate drops cached records so the next call reloads from disk.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = nil
	s.expires = time.Time{}
}

func (s *Store) fromCache() ([]restaurants.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cached == nil || s.now().After(s.expires) {
		return nil, false
	}
	return cloneRecords(s.cached), true
}

func (s *Store) store(records []restaurants.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = cloneRecords(records)
	s.expires = s.now().Add(s.ttl)
}

func (s *Store) load(ctx context.Context) ([]restaurants.Record, error) {
	var files []string
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(d.Name()), ".md") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("content directory missing", zap.String("dir", s.dir))
			return []restaurants.Record{}, nil
		}
		return nil, fmt.Errorf("content: walk %s: %w", s.dir, err)
	}

	records := make([]restaurants.Record, 0, len(files))
	for _, file := range files {
		rec, err := s.readRecord(file)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	sortRecords(records)
	s.logger.Debug("content loaded", zap.String("dir", s.dir), zap.Int("records", len(records)))
	return records, nil
}

func (s *Store) readRecord(file string) (restaurants.Record, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return restaurants.Record{}, fmt.Errorf("content: read %s: %w", file, err)
	}
	rel, err := filepath.Rel(s.dir, file)
	if err != nil {
		rel = file
	}
	rel = filepath.ToSlash(rel)

	fm, body := splitFrontMatter(string(data))
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return restaurants.Record{}, fmt.Errorf("content: parse front matter %s: %w", file, err)
		}
	}

	html, err := s.renderer.Render([]byte(body))
	if err != nil {
		return restaurants.Record{}, fmt.Errorf("content: render %s: %w", file, err)
	}

	return restaurants.Record{
		ID:       RecordID(rel),
		Title:    strings.TrimSpace(front.Title),
		Category: restaurants.Category(strings.TrimSpace(front.Category)),
		Location: strings.TrimSpace(front.Location),
		Tags:     string(front.Tags),
		Services: string(front.Services),
		Website:  strings.TrimSpace(front.Website),
		Phone:    strings.TrimSpace(front.Phone),
		Body:     html,
		Excerpt:  Excerpt(html, excerptLimit),
		Source:   rel,
	}, nil
}

// RecordID derives the stable identifier for a content file path.
func RecordID(relPath string) string {
	return uuid.NewSHA1(recordNamespace, []byte(relPath)).String()
}

func sortRecords(records []restaurants.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Title == records[j].Title {
			return records[i].Source < records[j].Source
		}
		return records[i].Title < records[j].Title
	})
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	input = strings.ReplaceAll(input, "\r\n", "\n")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n")
		}
	}
	return "", input
}

func cloneRecords(src []restaurants.Record) []restaurants.Record {
	if src == nil {
		return nil
	}
	out := make([]restaurants.Record, len(src))
	copy(out, src)
	return out
}
