package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dosada05/fantasy-league/league"
	"github.com/Dosada05/fantasy-league/live"
	"github.com/Dosada05/fantasy-league/middleware"
	"github.com/Dosada05/fantasy-league/models"
	"github.com/Dosada05/fantasy-league/repositories"
	"github.com/Dosada05/fantasy-league/services"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
)

const testAdminID = 1

type nullEventRepo struct{}

func (nullEventRepo) Append(context.Context, models.Event) error { return nil }

func (nullEventRepo) ListRecent(context.Context, int) ([]repositories.StoredEvent, error) {
	return []repositories.StoredEvent{}, nil
}

type stubTreasury struct {
	balance uint64
}

func (t *stubTreasury) Balance(context.Context) (uint64, error) { return t.balance, nil }

func (t *stubTreasury) Transfer(_ context.Context, _ int, amount uint64) error {
	t.balance -= amount
	return nil
}

func newTestHandler(t *testing.T) *LeagueHandler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := services.NewLeagueService(
		league.DefaultRosterNames,
		&stubTreasury{balance: 100 * league.FlatTopTenReward},
		nullEventRepo{},
		live.NewHub(logger),
		nil,
		logger,
	)
	if err := svc.Initialize(testAdminID); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return NewLeagueHandler(svc)
}

func requestAs(userID int, role models.UserRole, method, target, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	r := httptest.NewRequest(method, target, reader)
	claims := jwt.MapClaims{
		"user_id": float64(userID),
		"role":    string(role),
	}
	return r.WithContext(middleware.WithClaims(r.Context(), claims))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestCreateTeam_ReturnsCreatedTeam(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	r := requestAs(7, models.RolePlayer, http.MethodPost, "/teams", `{"player_ids":[0,1,2]}`)
	h.CreateTeam(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body: %s)", w.Code, w.Body.String())
	}

	var resp struct {
		Team models.Team `json:"team"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Team.ID != 0 || resp.Team.OwnerID != 7 {
		t.Fatalf("unexpected team in response: %+v", resp.Team)
	}
}

func TestCreateTeam_Validation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"duplicate players", `{"player_ids":[0,0,1]}`, http.StatusBadRequest},
		{"unknown player", `{"player_ids":[0,1,99]}`, http.StatusBadRequest},
		{"wrong team size", `{"player_ids":[0,1]}`, http.StatusBadRequest},
		{"malformed json", `{"player_ids":`, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHandler(t)
			w := httptest.NewRecorder()
			r := requestAs(7, models.RolePlayer, http.MethodPost, "/teams", tc.body)
			h.CreateTeam(w, r)

			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body: %s)", w.Code, tc.wantStatus, w.Body.String())
			}
		})
	}
}

func TestClaimReward_BeforeAnnouncementConflicts(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	r := requestAs(7, models.RolePlayer, http.MethodPost, "/teams", `{"player_ids":[0,1,2]}`)
	h.CreateTeam(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("CreateTeam status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	r = requestAs(7, models.RolePlayer, http.MethodPost, "/teams/0/claim", "")
	h.ClaimReward(w, withURLParam(r, "teamID", "0"))

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409 (body: %s)", w.Code, w.Body.String())
	}
}

func TestAnnounceThenClaim_FullFlow(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	r := requestAs(7, models.RolePlayer, http.MethodPost, "/teams", `{"player_ids":[0,1,2]}`)
	h.CreateTeam(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("CreateTeam status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	r = requestAs(testAdminID, models.RoleAdmin, http.MethodPost, "/results",
		`{"goals":[0,1,1,0,0,1],"assists":[1,1,0,0,1,1]}`)
	h.AnnounceResult(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("AnnounceResult status = %d (body: %s)", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r = requestAs(7, models.RolePlayer, http.MethodPost, "/teams/0/claim", "")
	h.ClaimReward(w, withURLParam(r, "teamID", "0"))
	if w.Code != http.StatusOK {
		t.Fatalf("ClaimReward status = %d (body: %s)", w.Code, w.Body.String())
	}

	var resp struct {
		TeamID int    `json:"team_id"`
		Amount uint64 `json:"amount"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Amount != league.FlatTopTenReward {
		t.Fatalf("amount = %d, want %d", resp.Amount, league.FlatTopTenReward)
	}

	// Second claim must be rejected with a conflict.
	w = httptest.NewRecorder()
	r = requestAs(7, models.RolePlayer, http.MethodPost, "/teams/0/claim", "")
	h.ClaimReward(w, withURLParam(r, "teamID", "0"))
	if w.Code != http.StatusConflict {
		t.Fatalf("second claim status = %d, want 409", w.Code)
	}
}

func TestClaimReward_ForeignTeamForbidden(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	r := requestAs(7, models.RolePlayer, http.MethodPost, "/teams", `{"player_ids":[0,1,2]}`)
	h.CreateTeam(w, r)

	w = httptest.NewRecorder()
	r = requestAs(testAdminID, models.RoleAdmin, http.MethodPost, "/results",
		`{"goals":[0,0,0,0,0,0],"assists":[0,0,0,0,0,0]}`)
	h.AnnounceResult(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("AnnounceResult status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	r = requestAs(8, models.RolePlayer, http.MethodPost, "/teams/0/claim", "")
	h.ClaimReward(w, withURLParam(r, "teamID", "0"))
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403 (body: %s)", w.Code, w.Body.String())
	}
}

func TestAnnounceResult_NonAdminForbidden(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	r := requestAs(7, models.RolePlayer, http.MethodPost, "/results",
		`{"goals":[0,0,0,0,0,0],"assists":[0,0,0,0,0,0]}`)
	h.AnnounceResult(w, r)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403 (body: %s)", w.Code, w.Body.String())
	}
}

func TestGetStandings_OpenLeague(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	h.GetStandings(w, httptest.NewRequest(http.MethodGet, "/standings", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		State     string        `json:"state"`
		Standings []models.Team `json:"standings"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.State != string(league.StateOpen) {
		t.Fatalf("state = %q, want open", resp.State)
	}
}

func TestGetRoster_ReturnsCatalog(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	h.GetRoster(w, httptest.NewRequest(http.MethodGet, "/roster", nil))

	var resp struct {
		Players []models.Player `json:"players"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp.Players) != 6 || resp.Players[0].Name != "Salah" {
		t.Fatalf("unexpected roster: %+v", resp.Players)
	}
}
