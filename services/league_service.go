package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/fantasy-league/league"
	"github.com/Dosada05/fantasy-league/live"
	"github.com/Dosada05/fantasy-league/models"
	"github.com/Dosada05/fantasy-league/repositories"
	"github.com/Dosada05/fantasy-league/storage"
	"golang.org/x/sync/errgroup"
)

// LeagueService owns the league aggregate and wires its collaborators: the
// Postgres event log and websocket hub behind the engine's event sink, the
// treasury, and the optional R2 archive written after the announcement.
type LeagueService struct {
	league    *league.League
	eventRepo repositories.EventRepository
	hub       *live.Hub
	uploader  storage.FileUploader // nil disables the standings archive
	logger    *slog.Logger
}

func NewLeagueService(
	rosterNames []string,
	treasury league.Treasury,
	eventRepo repositories.EventRepository,
	hub *live.Hub,
	uploader storage.FileUploader,
	logger *slog.Logger,
) *LeagueService {
	s := &LeagueService{
		eventRepo: eventRepo,
		hub:       hub,
		uploader:  uploader,
		logger:    logger,
	}
	s.league = league.New(rosterNames, s, treasury, league.SystemClock())
	return s
}

// Initialize registers the admin identity with the engine. Called once at
// startup; a restart over existing state is the caller's concern.
func (s *LeagueService) Initialize(adminID int) error {
	return s.league.Initialize(adminID)
}

// Notify implements league.EventSink: it appends the event to the ledger log
// and pushes it to the live feed. The state transition has already committed,
// so persistence errors are logged rather than surfaced.
func (s *LeagueService) Notify(ctx context.Context, event models.Event) {
	if err := s.eventRepo.Append(ctx, event); err != nil {
		s.logger.Error("failed to append ledger event",
			slog.String("kind", string(event.Kind())),
			slog.Any("error", err),
		)
	}
	s.hub.Broadcast(live.FeedMessage{
		Type:    string(event.Kind()),
		Payload: event,
	})
}

func (s *LeagueService) CreateTeam(ctx context.Context, ownerID, p1, p2, p3 int) (models.Team, error) {
	return s.league.CreateTeam(ctx, ownerID, p1, p2, p3)
}

// AnnounceResult runs the announcement transition and, on success, archives
// the final standings. Archive failures never fail the announcement: the
// state transition is already committed and the archive is derived data.
func (s *LeagueService) AnnounceResult(ctx context.Context, callerID int, goals, assists []uint64) error {
	if err := s.league.AnnounceResult(ctx, callerID, goals, assists); err != nil {
		return err
	}

	if s.uploader != nil {
		if err := s.archiveResult(ctx, goals, assists); err != nil {
			s.logger.Error("failed to archive final standings", slog.Any("error", err))
		}
	}
	return nil
}

func (s *LeagueService) ClaimReward(ctx context.Context, callerID, teamID int) (uint64, error) {
	return s.league.ClaimReward(ctx, callerID, teamID)
}

func (s *LeagueService) Team(id int) (models.Team, error) { return s.league.Team(id) }

func (s *LeagueService) Teams() []models.Team { return s.league.Teams() }

func (s *LeagueService) Standings() []models.Team { return s.league.Standings() }

func (s *LeagueService) Roster() []models.Player { return s.league.Roster() }

func (s *LeagueService) State() league.SettlementState { return s.league.State() }

func (s *LeagueService) ListEvents(ctx context.Context, limit int) ([]repositories.StoredEvent, error) {
	return s.eventRepo.ListRecent(ctx, limit)
}

// archiveResult uploads the final standings and the raw result sheet as two
// JSON objects, concurrently.
func (s *LeagueService) archiveResult(ctx context.Context, goals, assists []uint64) error {
	stamp := time.Now().UTC().Format("20060102T150405Z")

	standings, err := json.Marshal(struct {
		Roster    []models.Player `json:"roster"`
		Standings []models.Team   `json:"standings"`
	}{
		Roster:    s.league.Roster(),
		Standings: s.league.Standings(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal standings: %w", err)
	}

	sheet, err := json.Marshal(struct {
		Goals   []uint64 `json:"goals"`
		Assists []uint64 `json:"assists"`
	}{Goals: goals, Assists: assists})
	if err != nil {
		return fmt.Errorf("failed to marshal result sheet: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		key := fmt.Sprintf("results/%s/standings.json", stamp)
		_, err := s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(standings))
		return err
	})
	g.Go(func() error {
		key := fmt.Sprintf("results/%s/result-sheet.json", stamp)
		_, err := s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(sheet))
		return err
	})
	return g.Wait()
}
