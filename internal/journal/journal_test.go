package journal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/chatbots/internal/db"
	"github.com/ziadkadry99/chatbots/internal/webhook"
)

func setupStore(t *testing.T, hub *Hub) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database, hub, nil)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestRecordAndGetByID(t *testing.T) {
	store := setupStore(t, nil)
	ctx := context.Background()

	ev := webhook.Event{
		Platform:  "telegram",
		Bot:       "main",
		Command:   "/about",
		Outcome:   webhook.OutcomeReplied,
		Status:    http.StatusOK,
		Duration:  42 * time.Millisecond,
		RequestID: "req-1",
	}
	store.Record(ctx, ev)

	entries, err := store.Query(ctx, QueryFilter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}

	got, err := store.GetByID(ctx, entries[0].ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Platform != "telegram" || got.Bot != "main" || got.Command != "/about" {
		t.Errorf("unexpected entry: %+v", got)
	}
	if got.Outcome != webhook.OutcomeReplied {
		t.Errorf("Outcome = %q, want %q", got.Outcome, webhook.OutcomeReplied)
	}
	if got.DurationMS != 42 {
		t.Errorf("DurationMS = %d, want 42", got.DurationMS)
	}
	if got.RequestID != "req-1" {
		t.Errorf("RequestID = %q", got.RequestID)
	}
	if got.Timestamp.IsZero() {
		t.Error("timestamp not parsed")
	}
}

func TestRecordWithoutBot(t *testing.T) {
	store := setupStore(t, nil)
	store.Record(context.Background(), webhook.Event{Platform: "basecamp", Bot: "-", Outcome: webhook.OutcomeUnauthorized, Status: 401})

	entries, err := store.Query(context.Background(), QueryFilter{Outcome: webhook.OutcomeUnauthorized})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(entries) != 1 || entries[0].Bot != "" {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestRecordSurvivesCancelledContext(t *testing.T) {
	store := setupStore(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store.Record(ctx, webhook.Event{Platform: "telegram", Outcome: webhook.OutcomeSilent, Status: 200})

	entries, err := store.Query(context.Background(), QueryFilter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("len(entries) = %d, want 1", len(entries))
	}
}

func TestGetByIDNotFound(t *testing.T) {
	store := setupStore(t, nil)
	if _, err := store.GetByID(context.Background(), "missing"); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestQueryFilters(t *testing.T) {
	store := setupStore(t, nil)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	seed := []Entry{
		{Timestamp: base, Platform: "telegram", Bot: "main", Command: "/about", Outcome: webhook.OutcomeReplied, Status: 200},
		{Timestamp: base.Add(time.Minute), Platform: "telegram", Bot: "side", Command: "/help", Outcome: webhook.OutcomeSilent, Status: 200},
		{Timestamp: base.Add(2 * time.Minute), Platform: "basecamp", Command: "/about", Outcome: webhook.OutcomeFailed, Status: 500, Error: "boom"},
		{Timestamp: base.Add(3 * time.Minute), Platform: "telegram", Bot: "main", Outcome: webhook.OutcomeUnauthorized, Status: 401},
	}
	for i := range seed {
		if err := store.Insert(ctx, &seed[i]); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	since := base.Add(time.Minute)
	until := base.Add(2 * time.Minute)
	tests := []struct {
		name   string
		filter QueryFilter
		want   int
	}{
		{"all", QueryFilter{}, 4},
		{"platform", QueryFilter{Platform: "telegram"}, 3},
		{"bot", QueryFilter{Platform: "telegram", Bot: "main"}, 2},
		{"outcome", QueryFilter{Outcome: webhook.OutcomeFailed}, 1},
		{"since", QueryFilter{Since: &since}, 3},
		{"window", QueryFilter{Since: &since, Until: &until}, 2},
		{"limit", QueryFilter{Limit: 2}, 2},
		{"offset", QueryFilter{Offset: 3}, 1},
		{"limit and offset", QueryFilter{Limit: 2, Offset: 3}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Query(ctx, tt.filter)
			if err != nil {
				t.Fatalf("Query: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}

	all, _ := store.Query(ctx, QueryFilter{})
	if all[0].Outcome != webhook.OutcomeUnauthorized {
		t.Errorf("newest entry first expected, got %+v", all[0])
	}
}

func TestDeleteBeforeAndPrune(t *testing.T) {
	store := setupStore(t, nil)
	ctx := context.Background()
	now := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	store.now = fixedClock(now)

	for _, age := range []int{1, 10, 40, 90} {
		e := Entry{Timestamp: now.AddDate(0, 0, -age), Platform: "telegram", Outcome: webhook.OutcomeReplied, Status: 200}
		if err := store.Insert(ctx, &e); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	n, err := store.Prune(ctx, 30)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if n != 2 {
		t.Errorf("pruned %d, want 2", n)
	}

	n, err = store.Prune(ctx, 0)
	if err != nil || n != 0 {
		t.Errorf("Prune(0) = %d, %v; want no-op", n, err)
	}

	n, err = store.DeleteBefore(ctx, now)
	if err != nil {
		t.Fatalf("DeleteBefore: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted %d, want 2", n)
	}
}

func TestHubPublish(t *testing.T) {
	hub := NewHub(nil)
	ch, unsubscribe := hub.Subscribe()
	if hub.Subscribers() != 1 {
		t.Fatalf("Subscribers = %d, want 1", hub.Subscribers())
	}

	store := setupStore(t, hub)
	store.Record(context.Background(), webhook.Event{Platform: "telegram", Command: "/start", Outcome: webhook.OutcomeReplied, Status: 200})

	select {
	case e := <-ch:
		if e.Command != "/start" || e.ID == "" {
			t.Errorf("unexpected entry %+v", e)
		}
	case <-time.After(time.Second):
		t.Fatal("no entry published")
	}

	unsubscribe()
	unsubscribe()
	if hub.Subscribers() != 0 {
		t.Errorf("Subscribers = %d after unsubscribe", hub.Subscribers())
	}
	hub.Publish(Entry{ID: "after"})
}

func TestHubDropsForSlowSubscribers(t *testing.T) {
	hub := NewHub(nil)
	_, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*2; i++ {
			hub.Publish(Entry{ID: "x"})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full subscriber")
	}
}

func setupRouter(store *Store, hub *Hub, token string) chi.Router {
	r := chi.NewRouter()
	RegisterRoutes(r, store, hub, token)
	return r
}

func TestRoutes(t *testing.T) {
	store := setupStore(t, nil)
	ctx := context.Background()
	e := Entry{Platform: "telegram", Bot: "main", Command: "/about", Outcome: webhook.OutcomeReplied, Status: 200}
	if err := store.Insert(ctx, &e); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	r := setupRouter(store, nil, "")

	req := httptest.NewRequest(http.MethodGet, "/api/dispatches/?platform=telegram", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var list []Entry
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 1 || list[0].ID != e.ID {
		t.Errorf("unexpected list %+v", list)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/dispatches/"+e.ID, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/dispatches/nope", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing status = %d, want 404", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/dispatches/?platform=basecamp", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("empty result should be [], got %s", w.Body.String())
	}
}

func TestRoutesRequireToken(t *testing.T) {
	store := setupStore(t, nil)
	r := setupRouter(store, nil, "admin-secret")

	tests := []struct {
		name   string
		setup  func(*http.Request)
		target string
		want   int
	}{
		{"no token", func(*http.Request) {}, "/api/dispatches/", http.StatusUnauthorized},
		{"wrong bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, "/api/dispatches/", http.StatusUnauthorized},
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer admin-secret") }, "/api/dispatches/", http.StatusOK},
		{"api key", func(r *http.Request) { r.Header.Set("X-API-Key", "admin-secret") }, "/api/dispatches/", http.StatusOK},
		{"query", func(*http.Request) {}, "/api/dispatches/?token=admin-secret", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestStreamWebSocket(t *testing.T) {
	hub := NewHub(nil)
	store := setupStore(t, hub)
	server := httptest.NewServer(setupRouter(store, hub, ""))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/dispatches/stream"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	defer conn.Close()
	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("expected 101, got %d", resp.StatusCode)
	}

	deadline := time.Now().Add(2 * time.Second)
	for hub.Subscribers() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	store.Record(context.Background(), webhook.Event{Platform: "basecamp", Command: "/help", Outcome: webhook.OutcomeReplied, Status: 200})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Entry
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Platform != "basecamp" || got.Command != "/help" {
		t.Errorf("unexpected streamed entry %+v", got)
	}
}
