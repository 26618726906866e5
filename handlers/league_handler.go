package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Dosada05/fantasy-league/middleware"
	"github.com/Dosada05/fantasy-league/models"
	"github.com/Dosada05/fantasy-league/services"
)

type LeagueHandler struct {
	leagueService *services.LeagueService
}

func NewLeagueHandler(ls *services.LeagueService) *LeagueHandler {
	return &LeagueHandler{
		leagueService: ls,
	}
}

type createTeamInput struct {
	PlayerIDs []int `json:"player_ids"`
}

func (h *LeagueHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var input createTeamInput
	err := readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if len(input.PlayerIDs) != models.TeamSize {
		badRequestResponse(w, r, errors.New("player_ids must contain exactly 3 player ids"))
		return
	}

	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	team, err := h.leagueService.CreateTeam(r.Context(), currentUserID,
		input.PlayerIDs[0], input.PlayerIDs[1], input.PlayerIDs[2])
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"team": team,
	}

	err = writeJSON(w, http.StatusCreated, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *LeagueHandler) GetTeamByID(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.leagueService.Team(teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"team": team,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *LeagueHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	response := jsonResponse{
		"teams": h.leagueService.Teams(),
	}

	err := writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *LeagueHandler) GetRoster(w http.ResponseWriter, r *http.Request) {
	response := jsonResponse{
		"players": h.leagueService.Roster(),
	}

	err := writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *LeagueHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	response := jsonResponse{
		"state":     h.leagueService.State(),
		"standings": h.leagueService.Standings(),
	}

	err := writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

type announceResultInput struct {
	Goals   []uint64 `json:"goals"`
	Assists []uint64 `json:"assists"`
}

func (h *LeagueHandler) AnnounceResult(w http.ResponseWriter, r *http.Request) {
	var input announceResultInput
	err := readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	err = h.leagueService.AnnounceResult(r.Context(), currentUserID, input.Goals, input.Assists)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"state":     h.leagueService.State(),
		"standings": h.leagueService.Standings(),
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *LeagueHandler) ClaimReward(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	amount, err := h.leagueService.ClaimReward(r.Context(), currentUserID, teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"team_id": teamID,
		"amount":  amount,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *LeagueHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 500 {
			badRequestResponse(w, r, errors.New("limit must be an integer between 1 and 500"))
			return
		}
		limit = parsed
	}

	events, err := h.leagueService.ListEvents(r.Context(), limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"events": events,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}
