package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"listinglab/internal/content"
	"listinglab/internal/infra"
	"listinglab/internal/middleware"
	"listinglab/internal/providers/caption"
	"listinglab/internal/providers/collections"
	"listinglab/internal/providers/videogen"
	"listinglab/internal/render"
	"listinglab/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// stubStore implements Users, Contents and Histories in memory, with
// per-write failure switches so tests can exercise the persistence tiers.
type stubStore struct {
	mu sync.Mutex

	users map[string]*store.User

	details   map[uuid.UUID]*store.ContentDetail
	summaries map[uuid.UUID]*store.ContentSummary
	indexed   map[uuid.UUID][]uuid.UUID
	history   []content.HistoryEntry

	failDetail  bool
	failSummary bool
	failIndex   bool
	failHistory bool
}

func newStubStore() *stubStore {
	return &stubStore{
		users:     make(map[string]*store.User),
		details:   make(map[uuid.UUID]*store.ContentDetail),
		summaries: make(map[uuid.UUID]*store.ContentSummary),
		indexed:   make(map[uuid.UUID][]uuid.UUID),
	}
}

func (s *stubStore) BySessionToken(ctx context.Context, token string) (*store.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[token]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *stubStore) AppendContentID(ctx context.Context, userID, contentID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failIndex {
		return fmt.Errorf("index write refused")
	}
	s.indexed[userID] = append(s.indexed[userID], contentID)
	return nil
}

func (s *stubStore) PutDetail(ctx context.Context, d *store.ContentDetail) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failDetail {
		return fmt.Errorf("detail write refused")
	}
	s.details[d.ID] = d
	return nil
}

func (s *stubStore) PutSummary(ctx context.Context, sum *store.ContentSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSummary {
		return fmt.Errorf("summary write refused")
	}
	s.summaries[sum.ContentID] = sum
	return nil
}

func (s *stubStore) DetailByID(ctx context.Context, id, userID uuid.UUID) (*store.ContentDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.details[id]
	if !ok || d.UserID != userID {
		return nil, pgx.ErrNoRows
	}
	return d, nil
}

func (s *stubStore) SummariesByUser(ctx context.Context, userID uuid.UUID) ([]store.ContentSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []store.ContentSummary
	for _, sum := range s.summaries {
		if sum.UserID == userID {
			out = append(out, *sum)
		}
	}
	return out, nil
}

func (s *stubStore) Append(ctx context.Context, userID uuid.UUID, e *content.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failHistory {
		return fmt.Errorf("history write refused")
	}
	s.history = append(s.history, *e)
	return nil
}

func (s *stubStore) List(ctx context.Context, userID uuid.UUID, feature string) ([]content.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []content.HistoryEntry
	for _, e := range s.history {
		if e.Feature == feature {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *stubStore) Delete(ctx context.Context, userID uuid.UUID, feature string, ts time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.history {
		if e.Feature == feature && e.Timestamp.Equal(ts) {
			s.history = append(s.history[:i], s.history[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("no entry at %s", ts)
}

// fakeCollections scripts the collections provider: a submit response plus a
// sequence of status bodies served in order.
type fakeCollections struct {
	mu           sync.Mutex
	submitStatus int
	submitBody   string
	statusBodies []string
	statusCalls  int
	lastTemplate string
}

func (f *fakeCollections) server() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPost {
			var req struct {
				TemplateSet string `json:"template_set"`
			}
			_ = jsonDecode(r, &req)
			f.lastTemplate = req.TemplateSet
			if f.submitStatus != 0 {
				w.WriteHeader(f.submitStatus)
			}
			_, _ = w.Write([]byte(f.submitBody))
			return
		}
		idx := f.statusCalls
		if idx >= len(f.statusBodies) {
			idx = len(f.statusBodies) - 1
		}
		f.statusCalls++
		_, _ = w.Write([]byte(f.statusBodies[idx]))
	}))
}

func jsonDecode(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

type stubCaptions struct {
	text string
	err  error
}

func (s stubCaptions) Caption(ctx context.Context, req caption.Request) (string, error) {
	return s.text, s.err
}

func instantPoller(maxAttempts int) render.Poller {
	p := render.NewPoller(time.Millisecond, maxAttempts, zerolog.Nop())
	p.Sleep = func(context.Context, time.Duration) error { return nil }
	return p
}

func newTestApp(db *stubStore, collectionsURL, videoURL string, captions caption.Generator) *App {
	cfg := &infra.Config{
		PropertyTemplateSet:    "property_showcase",
		TipTemplateSet:         "agent_advice",
		ReviewTemplateSet:      "client_review",
		PreferredAssetFragment: "square",
		VideoTemplateID:        "tmpl-video-1",
		DefaultLocale:          "en",
	}
	return &App{
		Logger:      zerolog.Nop(),
		Config:      cfg,
		Users:       db,
		Contents:    db,
		Histories:   db,
		Collections: collections.NewClient(collectionsURL, "test-key", nil),
		Extractor:   collections.Extractor{PreferredFragment: cfg.PreferredAssetFragment, Logger: zerolog.Nop()},
		Video:       videogen.NewClient(videoURL, "test-key", nil),
		Generator: &content.Generator{
			Poller:    instantPoller(24),
			Captions:  captions,
			Persister: &content.Persister{Logger: zerolog.Nop()},
			Logger:    zerolog.Nop(),
		},
	}
}

func authedRequest(method, target, body string, userID uuid.UUID) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := middleware.WithUserID(r.Context(), userID)
	ctx = middleware.WithLocale(ctx, "en")
	return r.WithContext(ctx)
}
