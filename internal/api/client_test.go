package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// newTestServer creates an httptest server routing requests to handlers
// keyed by "METHOD /path".
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.Method+" "+r.URL.Path]
		if !ok {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

func testDraft() WorkoutDraft {
	reps := 5
	weight := 60.0
	tmpl := int64(3)
	return WorkoutDraft{
		ID:         12,
		TemplateID: &tmpl,
		StartedAt:  time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC),
		UpdatedAt:  time.Date(2026, 8, 1, 18, 5, 0, 0, time.UTC),
		SessionData: SessionData{Exercises: []ExerciseData{{
			DefinitionID: 10,
			Name:         "Bench Press",
			Sets:         []SetData{{Reps: &reps, Weight: &weight}, NewSet()},
		}}},
	}
}

// TestStartWorkoutSendsTemplateID verifies the start request carries the
// template reference and the bearer token, and the draft decodes.
func TestStartWorkoutSendsTemplateID(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"POST /api/v1/workouts/start": func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
				t.Errorf("Authorization = %q", got)
			}
			if r.Header.Get("X-Request-ID") == "" {
				t.Error("missing X-Request-ID")
			}
			var body struct {
				TemplateID *int64 `json:"template_id"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.TemplateID == nil || *body.TemplateID != 3 {
				t.Errorf("template_id = %v, want 3", body.TemplateID)
			}
			w.WriteHeader(http.StatusCreated)
			writeTestJSON(t, w, testDraft())
		},
	})
	defer ts.Close()

	c := NewClient(ts.URL)
	c.SetToken("tok-1")

	tmpl := int64(3)
	d, err := c.StartWorkout(context.Background(), &tmpl)
	if err != nil {
		t.Fatal(err)
	}
	if d.ID != 12 {
		t.Errorf("draft id = %d, want 12", d.ID)
	}
	if len(d.SessionData.Exercises) != 1 || d.SessionData.Exercises[0].Name != "Bench Press" {
		t.Errorf("session data not decoded: %+v", d.SessionData)
	}
}

// TestGetDraftNotFound verifies a 404 decodes into *Error and IsNotFound
// recognizes it.
func TestGetDraftNotFound(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/workouts/draft": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			writeTestJSON(t, w, map[string]string{"detail": "No active workout draft"})
		},
	})
	defer ts.Close()

	c := NewClient(ts.URL)
	_, err := c.GetDraft(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsNotFound(err) {
		t.Errorf("IsNotFound = false for 404: %v", err)
	}
	if got := Detail(err, "fallback"); got != "No active workout draft" {
		t.Errorf("Detail = %q", got)
	}
}

// TestUpdateDraftSendsWholeDocument verifies the PUT body carries the full
// session_data replacement, nulls included.
func TestUpdateDraftSendsWholeDocument(t *testing.T) {
	draft := testDraft()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"PUT /api/v1/workouts/draft": func(w http.ResponseWriter, r *http.Request) {
			var body struct {
				SessionData SessionData `json:"session_data"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			exs := body.SessionData.Exercises
			if len(exs) != 1 || len(exs[0].Sets) != 2 {
				t.Fatalf("payload shape: %+v", body.SessionData)
			}
			if !exs[0].Sets[1].Ghost() {
				t.Error("ghost set's null fields not preserved")
			}
			writeTestJSON(t, w, draft)
		},
	})
	defer ts.Close()

	c := NewClient(ts.URL)
	got, err := c.UpdateDraft(context.Background(), draft.SessionData)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != draft.ID {
		t.Errorf("draft id = %d", got.ID)
	}
}

// TestLoginUsesPasswordForm verifies login is form-encoded with the email
// in the username field (OAuth2 password flow).
func TestLoginUsesPasswordForm(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"POST /api/v1/auth/login": func(w http.ResponseWriter, r *http.Request) {
			if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
				t.Errorf("Content-Type = %q", ct)
			}
			if err := r.ParseForm(); err != nil {
				t.Fatal(err)
			}
			if got := r.PostForm.Get("username"); got != "a@b.c" {
				t.Errorf("username = %q", got)
			}
			if got := r.PostForm.Get("password"); got != "hunter2" {
				t.Errorf("password = %q", got)
			}
			writeTestJSON(t, w, Token{AccessToken: "jwt-123", TokenType: "bearer"})
		},
	})
	defer ts.Close()

	c := NewClient(ts.URL)
	tok, err := c.Login(context.Background(), "a@b.c", "hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if tok.AccessToken != "jwt-123" {
		t.Errorf("access_token = %q", tok.AccessToken)
	}
}

// TestErrorDetailFallback verifies a detail-less error body still produces
// a usable *Error and Detail falls back.
func TestErrorDetailFallback(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"POST /api/v1/workouts/finish": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
	})
	defer ts.Close()

	c := NewClient(ts.URL)
	_, err := c.FinishWorkout(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if got := Detail(err, "Failed to finish workout"); got != "Failed to finish workout" {
		t.Errorf("Detail fallback = %q", got)
	}
}

// TestFinishWorkoutDecodesCompletedSession verifies the terminal snapshot
// decodes including the server-computed score.
func TestFinishWorkoutDecodesCompletedSession(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"POST /api/v1/workouts/finish": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, CompletedSession{
				ID:           44,
				SessionScore: 812.5,
				CompletedAt:  time.Date(2026, 8, 1, 19, 0, 0, 0, time.UTC),
				CompletedSets: []CompletedSet{
					{ExerciseDefinitionID: 10, SetNumber: 1, Reps: 5, Weight: 100, EpleyScore: 116.66},
				},
			})
		},
	})
	defer ts.Close()

	c := NewClient(ts.URL)
	cs, err := c.FinishWorkout(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if cs.ID != 44 || cs.SessionScore != 812.5 {
		t.Errorf("completed session = %+v", cs)
	}
	if len(cs.CompletedSets) != 1 {
		t.Errorf("completed sets = %d, want 1", len(cs.CompletedSets))
	}
}

// TestDeleteDraft verifies a 204 delete succeeds and a 404 comes back as a
// recognizable not-found.
func TestDeleteDraft(t *testing.T) {
	gone := false
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"DELETE /api/v1/workouts/draft": func(w http.ResponseWriter, r *http.Request) {
			if gone {
				w.WriteHeader(http.StatusNotFound)
				writeTestJSON(t, w, map[string]string{"detail": "No active workout draft"})
				return
			}
			gone = true
			w.WriteHeader(http.StatusNoContent)
		},
	})
	defer ts.Close()

	c := NewClient(ts.URL)
	if err := c.DeleteDraft(context.Background()); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	err := c.DeleteDraft(context.Background())
	if !IsNotFound(err) {
		t.Errorf("second delete: IsNotFound = false: %v", err)
	}
}

// TestListSessionsQuery verifies the analytics filter lands in the query
// string and the list decodes.
func TestListSessionsQuery(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/analytics/sessions": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("template_id"); got != "3" {
				t.Errorf("template_id = %q, want 3", got)
			}
			name := "Push Day A"
			writeTestJSON(t, w, []SessionSummary{
				{ID: 1, TemplateName: &name, SessionScore: 500},
			})
		},
	})
	defer ts.Close()

	c := NewClient(ts.URL)
	tmpl := int64(3)
	sessions, err := c.ListSessions(context.Background(), &tmpl)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 || *sessions[0].TemplateName != "Push Day A" {
		t.Errorf("sessions = %+v", sessions)
	}
}

// TestAddDraftExerciseReturnsMergedDraft verifies the server's merged draft
// comes back whole.
func TestAddDraftExerciseReturnsMergedDraft(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"POST /api/v1/workouts/draft/add-exercise": func(w http.ResponseWriter, r *http.Request) {
			var body struct {
				ExerciseDefinitionID int64 `json:"exercise_definition_id"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.ExerciseDefinitionID != 42 {
				t.Errorf("exercise_definition_id = %d, want 42", body.ExerciseDefinitionID)
			}
			d := testDraft()
			d.SessionData.Exercises = append(d.SessionData.Exercises, ExerciseData{
				DefinitionID: 42, Name: "Curl", Sets: []SetData{NewSet()},
			})
			writeTestJSON(t, w, d)
		},
	})
	defer ts.Close()

	c := NewClient(ts.URL)
	d, err := c.AddDraftExercise(context.Background(), 42)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.SessionData.Exercises) != 2 {
		t.Errorf("merged draft has %d exercises, want 2", len(d.SessionData.Exercises))
	}
}
