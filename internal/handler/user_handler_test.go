package handler_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v3"

	"github.com/ArkaPrabhaChowdhury/movie-recommender/internal/handler"
	"github.com/ArkaPrabhaChowdhury/movie-recommender/internal/models"
	"github.com/ArkaPrabhaChowdhury/movie-recommender/internal/service"
)

// In-memory stores matching the repository contracts.

type memInteractions struct {
	mu     sync.Mutex
	events map[string][]models.InteractionEvent
}

func (s *memInteractions) Upsert(_ context.Context, e models.InteractionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.events == nil {
		s.events = map[string][]models.InteractionEvent{}
	}
	list := s.events[e.UserID][:0:0]
	for _, old := range s.events[e.UserID] {
		if old.ContentID == e.ContentID && old.ContentType == e.ContentType {
			continue
		}
		list = append(list, old)
	}
	s.events[e.UserID] = append([]models.InteractionEvent{e}, list...)
	return nil
}

func (s *memInteractions) List(_ context.Context, userID, action string) ([]models.InteractionEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.InteractionEvent
	for _, e := range s.events[userID] {
		if action == "" || e.Action == action {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *memInteractions) Remove(_ context.Context, userID string, contentID int, contentType string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.events[userID]
	kept := list[:0]
	removed := 0
	for _, e := range list {
		if e.ContentID == contentID && e.ContentType == contentType {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.events[userID] = kept
	return removed, nil
}

type memProfiles struct {
	mu       sync.Mutex
	profiles map[string]models.UserProfile
}

func (s *memProfiles) Upsert(_ context.Context, p models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profiles == nil {
		s.profiles = map[string]models.UserProfile{}
	}
	s.profiles[p.UserID] = p
	return nil
}

func (s *memProfiles) Get(_ context.Context, userID string) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &p, nil
}

func (s *memProfiles) All(_ context.Context) ([]models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.UserProfile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (s *memProfiles) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, userID)
	return nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	prefs := service.NewPreferenceService(&memInteractions{}, &memProfiles{}, nil)
	h := handler.NewUserHandler(prefs)

	app := fiber.New()
	app.Post("/api/v1/user/interaction", h.RecordInteraction)
	app.Get("/api/v1/user/:id/profile", h.GetProfile)
	app.Get("/api/v1/user/:id/interactions", h.GetInteractions)
	app.Get("/api/v1/user/:id/liked", h.GetLiked)
	app.Delete("/api/v1/user/:id/interaction/:contentID", h.RemoveInteraction)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return out
}

func TestRecordInteractionEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/user/interaction", models.InteractionEvent{
		UserID:      "u1",
		ContentID:   42,
		ContentType: "movie",
		Title:       "Test Movie",
		Action:      "liked",
		Genres:      []string{"action"},
		Language:    "hindi",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["status"] != "success" {
		t.Fatalf("body = %v", body)
	}
}

func TestRecordInteractionEndpointValidation(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/user/interaction", models.InteractionEvent{
		UserID:      "u1",
		ContentID:   42,
		ContentType: "movie",
		Action:      "loved",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["error"] == "" {
		t.Fatalf("expected error message, got %v", body)
	}
}

func TestGetInteractionsRejectsUnknownAction(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/u1/interactions?action=hated", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestProfileEndpointAfterInteractions(t *testing.T) {
	app := newTestApp(t)

	postJSON(t, app, "/api/v1/user/interaction", models.InteractionEvent{
		UserID: "u1", ContentID: 1, ContentType: "movie", Title: "One",
		Action: "liked", Genres: []string{"drama"}, Language: "hindi",
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/u1/profile", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	stats, ok := body["stats"].(map[string]any)
	if !ok {
		t.Fatalf("missing stats in %v", body)
	}
	if stats["total_interactions"].(float64) != 1 || stats["liked_content"].(float64) != 1 {
		t.Fatalf("stats = %v", stats)
	}
}

func TestRemoveInteractionEndpoint(t *testing.T) {
	app := newTestApp(t)

	postJSON(t, app, "/api/v1/user/interaction", models.InteractionEvent{
		UserID: "u1", ContentID: 7, ContentType: "movie", Title: "Seven",
		Action: "liked", Genres: []string{"thriller"}, Language: "english",
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/user/u1/interaction/7?content_type=movie", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if body := decodeBody(t, resp); body["status"] != "success" {
		t.Fatalf("body = %v", body)
	}

	// Removing again reports not_found without failing the request.
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/user/u1/interaction/7?content_type=movie", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if body := decodeBody(t, resp); body["status"] != "not_found" {
		t.Fatalf("body = %v", body)
	}
}
