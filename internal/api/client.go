// Package api is the HTTP client for the liftlog workout server.
//
// All request/response shapes mirror the server's REST API (snake_case JSON,
// error bodies of the form {"detail": "..."}). The client carries a bearer
// token once authenticated and tags every request with an X-Request-ID.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client calls the liftlog REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a Client targeting the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken sets the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// SetHTTPClient replaces the underlying HTTP client. Used for tailnet
// dialing, where the transport comes from a tsnet server.
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

// do sends a JSON request and decodes the response into out (if non-nil).
// Non-2xx responses come back as *Error with the body's detail message.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("api: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	return decodeResponse(resp, out)
}

func (c *Client) setHeaders(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
}

func decodeResponse(resp *http.Response, out any) error {
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode}
		var detail struct {
			Detail string `json:"detail"`
		}
		if err := json.Unmarshal(data, &detail); err == nil {
			apiErr.Detail = detail.Detail
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}

// --- Auth ---

// Register creates a new account and returns its access token.
func (c *Client) Register(ctx context.Context, email, password string) (*Token, error) {
	body := map[string]string{"email": email, "password": password}
	var tok Token
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", nil, body, &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

// Login authenticates with the OAuth2 password flow (form-encoded, the
// username field carries the email) and returns an access token.
func (c *Client) Login(ctx context.Context, email, password string) (*Token, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("api: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: login: %w", err)
	}
	var tok Token
	if err := decodeResponse(resp, &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/api/v1/auth/me", nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// --- Exercises ---

func (c *Client) ListExercises(ctx context.Context) ([]Exercise, error) {
	var out []Exercise
	if err := c.do(ctx, http.MethodGet, "/api/v1/exercises", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateExercise(ctx context.Context, name string) (*Exercise, error) {
	var out Exercise
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, "/api/v1/exercises", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetExercise(ctx context.Context, id int64) (*Exercise, error) {
	var out Exercise
	if err := c.do(ctx, http.MethodGet, "/api/v1/exercises/"+itoa(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateExercise(ctx context.Context, id int64, name string) (*Exercise, error) {
	var out Exercise
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPut, "/api/v1/exercises/"+itoa(id), nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteExercise(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/exercises/"+itoa(id), nil, nil, nil)
}

// --- Splits ---

func (c *Client) ListSplits(ctx context.Context) ([]Split, error) {
	var out []Split
	if err := c.do(ctx, http.MethodGet, "/api/v1/splits", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateSplit(ctx context.Context, name string) (*Split, error) {
	var out Split
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, "/api/v1/splits", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSplit returns a split with its templates (and their exercises).
func (c *Client) GetSplit(ctx context.Context, id int64) (*Split, error) {
	var out Split
	if err := c.do(ctx, http.MethodGet, "/api/v1/splits/"+itoa(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SplitUpdate carries optional fields for updating a split.
type SplitUpdate struct {
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (c *Client) UpdateSplit(ctx context.Context, id int64, upd SplitUpdate) (*Split, error) {
	var out Split
	if err := c.do(ctx, http.MethodPut, "/api/v1/splits/"+itoa(id), nil, upd, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteSplit(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/splits/"+itoa(id), nil, nil, nil)
}

// --- Templates ---

func (c *Client) ListTemplates(ctx context.Context, splitID *int64) ([]Template, error) {
	var query url.Values
	if splitID != nil {
		query = url.Values{"split_id": {itoa(*splitID)}}
	}
	var out []Template
	if err := c.do(ctx, http.MethodGet, "/api/v1/templates", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTemplate(ctx context.Context, splitID int64, name string, order int) (*Template, error) {
	var out Template
	body := map[string]any{"split_id": splitID, "name": name, "order": order}
	if err := c.do(ctx, http.MethodPost, "/api/v1/templates", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetTemplate(ctx context.Context, id int64) (*Template, error) {
	var out Template
	if err := c.do(ctx, http.MethodGet, "/api/v1/templates/"+itoa(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TemplateUpdate carries optional fields for updating a template.
type TemplateUpdate struct {
	Name  *string `json:"name,omitempty"`
	Order *int    `json:"order,omitempty"`
}

func (c *Client) UpdateTemplate(ctx context.Context, id int64, upd TemplateUpdate) (*Template, error) {
	var out Template
	if err := c.do(ctx, http.MethodPut, "/api/v1/templates/"+itoa(id), nil, upd, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTemplate(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/templates/"+itoa(id), nil, nil, nil)
}

func (c *Client) AddTemplateExercise(ctx context.Context, templateID, exerciseID int64, order int) (*Template, error) {
	var out Template
	body := map[string]any{"exercise_definition_id": exerciseID, "order": order}
	path := "/api/v1/templates/" + itoa(templateID) + "/exercises"
	if err := c.do(ctx, http.MethodPost, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RemoveTemplateExercise(ctx context.Context, templateID, exerciseID int64) error {
	path := "/api/v1/templates/" + itoa(templateID) + "/exercises/" + itoa(exerciseID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// ExerciseOrder pairs an exercise with its position for reordering.
type ExerciseOrder struct {
	ExerciseDefinitionID int64 `json:"exercise_definition_id"`
	Order                int   `json:"order"`
}

func (c *Client) ReorderTemplateExercises(ctx context.Context, templateID int64, orders []ExerciseOrder) (*Template, error) {
	var out Template
	body := map[string]any{"exercise_orders": orders}
	path := "/api/v1/templates/" + itoa(templateID) + "/exercises/reorder"
	if err := c.do(ctx, http.MethodPut, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Workouts ---

// StartWorkout creates a new draft, seeded from templateID when non-nil.
// If a draft already exists the server returns it unchanged.
func (c *Client) StartWorkout(ctx context.Context, templateID *int64) (*WorkoutDraft, error) {
	var out WorkoutDraft
	body := map[string]any{"template_id": templateID}
	if err := c.do(ctx, http.MethodPost, "/api/v1/workouts/start", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDraft fetches the active draft. Returns a 404 *Error when none exists;
// callers treat that as normal absence, not failure.
func (c *Client) GetDraft(ctx context.Context) (*WorkoutDraft, error) {
	var out WorkoutDraft
	if err := c.do(ctx, http.MethodGet, "/api/v1/workouts/draft", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateDraft replaces the draft's session data wholesale (no diffing) and
// returns the server's view of the updated draft.
func (c *Client) UpdateDraft(ctx context.Context, data SessionData) (*WorkoutDraft, error) {
	var out WorkoutDraft
	body := map[string]any{"session_data": data}
	if err := c.do(ctx, http.MethodPut, "/api/v1/workouts/draft", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddDraftExercise appends an exercise to the draft server-side and returns
// the full merged draft.
func (c *Client) AddDraftExercise(ctx context.Context, exerciseID int64) (*WorkoutDraft, error) {
	var out WorkoutDraft
	body := map[string]any{"exercise_definition_id": exerciseID}
	if err := c.do(ctx, http.MethodPost, "/api/v1/workouts/draft/add-exercise", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FinishWorkout converts the draft into a completed session. The server
// scores valid sets and deletes the draft.
func (c *Client) FinishWorkout(ctx context.Context) (*CompletedSession, error) {
	var out CompletedSession
	if err := c.do(ctx, http.MethodPost, "/api/v1/workouts/finish", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteDraft discards the draft. Returns a 404 *Error when it is already gone.
func (c *Client) DeleteDraft(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/workouts/draft", nil, nil, nil)
}

// --- Analytics ---

func (c *Client) ListSessions(ctx context.Context, templateID *int64) ([]SessionSummary, error) {
	var query url.Values
	if templateID != nil {
		query = url.Values{"template_id": {itoa(*templateID)}}
	}
	var out []SessionSummary
	if err := c.do(ctx, http.MethodGet, "/api/v1/analytics/sessions", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetExerciseHistory(ctx context.Context, exerciseID int64) ([]ExerciseSessionHistory, error) {
	var out []ExerciseSessionHistory
	path := "/api/v1/analytics/exercise/" + itoa(exerciseID) + "/history"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetExerciseSummary(ctx context.Context, exerciseID int64) (*ExerciseSummary, error) {
	var out ExerciseSummary
	path := "/api/v1/analytics/exercise/" + itoa(exerciseID) + "/summary"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
