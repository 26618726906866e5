package services

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/Dosada05/fantasy-league/league"
	"github.com/Dosada05/fantasy-league/live"
	"github.com/Dosada05/fantasy-league/models"
	"github.com/Dosada05/fantasy-league/repositories"
	"github.com/Dosada05/fantasy-league/storage"
)

const testAdminID = 1

type memoryEventRepo struct {
	mu     sync.Mutex
	events []models.Event
}

func (r *memoryEventRepo) Append(_ context.Context, event models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *memoryEventRepo) ListRecent(context.Context, int) ([]repositories.StoredEvent, error) {
	return nil, nil
}

type memoryTreasury struct {
	balance uint64
}

func (t *memoryTreasury) Balance(context.Context) (uint64, error) { return t.balance, nil }

func (t *memoryTreasury) Transfer(_ context.Context, _ int, amount uint64) error {
	t.balance -= amount
	return nil
}

type memoryUploader struct {
	mu   sync.Mutex
	keys []string
}

func (u *memoryUploader) Upload(_ context.Context, key, _ string, _ io.Reader) (*storage.UploadResult, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.keys = append(u.keys, key)
	return &storage.UploadResult{Key: key}, nil
}

func (u *memoryUploader) GetPublicURL(key string) string { return "https://cdn.test/" + key }

func newTestService(t *testing.T) (*LeagueService, *memoryEventRepo, *memoryUploader) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	events := &memoryEventRepo{}
	uploader := &memoryUploader{}
	svc := NewLeagueService(
		league.DefaultRosterNames,
		&memoryTreasury{balance: 100 * league.FlatTopTenReward},
		events,
		live.NewHub(logger),
		uploader,
		logger,
	)
	if err := svc.Initialize(testAdminID); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return svc, events, uploader
}

func TestLeagueService_CreateTeamAppendsEvent(t *testing.T) {
	svc, events, _ := newTestService(t)

	team, err := svc.CreateTeam(context.Background(), 7, 0, 1, 2)
	if err != nil {
		t.Fatalf("CreateTeam: %v", err)
	}
	if team.ID != 0 {
		t.Fatalf("team id = %d, want 0", team.ID)
	}

	if len(events.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events.events))
	}
	created, ok := events.events[0].(models.TeamCreatedEvent)
	if !ok {
		t.Fatalf("got %T, want TeamCreatedEvent", events.events[0])
	}
	if created.TeamID != 0 || created.OwnerID != 7 {
		t.Fatalf("event payload mismatch: %+v", created)
	}
}

func TestLeagueService_AnnounceArchivesStandings(t *testing.T) {
	svc, events, uploader := newTestService(t)

	if _, err := svc.CreateTeam(context.Background(), 7, 0, 1, 2); err != nil {
		t.Fatalf("CreateTeam: %v", err)
	}

	goals := []uint64{0, 1, 1, 0, 0, 1}
	assists := []uint64{1, 1, 0, 0, 1, 1}
	if err := svc.AnnounceResult(context.Background(), testAdminID, goals, assists); err != nil {
		t.Fatalf("AnnounceResult: %v", err)
	}

	if svc.State() != league.StateClosed {
		t.Fatalf("state = %s, want closed", svc.State())
	}
	if len(events.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events.events))
	}

	if len(uploader.keys) != 2 {
		t.Fatalf("expected 2 archive objects, got %v", uploader.keys)
	}
	var hasStandings, hasSheet bool
	for _, key := range uploader.keys {
		if strings.HasSuffix(key, "/standings.json") {
			hasStandings = true
		}
		if strings.HasSuffix(key, "/result-sheet.json") {
			hasSheet = true
		}
	}
	if !hasStandings || !hasSheet {
		t.Fatalf("archive keys incomplete: %v", uploader.keys)
	}
}

func TestLeagueService_AnnounceFailureSkipsArchive(t *testing.T) {
	svc, _, uploader := newTestService(t)

	err := svc.AnnounceResult(context.Background(), 999, []uint64{0}, []uint64{0})
	if err == nil {
		t.Fatalf("expected error for non-admin caller")
	}
	if len(uploader.keys) != 0 {
		t.Fatalf("failed announcement still archived: %v", uploader.keys)
	}
}

func TestLeagueService_ClaimAppendsEvent(t *testing.T) {
	svc, events, _ := newTestService(t)

	owner := 7
	if _, err := svc.CreateTeam(context.Background(), owner, 0, 1, 2); err != nil {
		t.Fatalf("CreateTeam: %v", err)
	}
	goals := []uint64{0, 1, 1, 0, 0, 1}
	assists := []uint64{1, 1, 0, 0, 1, 1}
	if err := svc.AnnounceResult(context.Background(), testAdminID, goals, assists); err != nil {
		t.Fatalf("AnnounceResult: %v", err)
	}

	amount, err := svc.ClaimReward(context.Background(), owner, 0)
	if err != nil {
		t.Fatalf("ClaimReward: %v", err)
	}
	if amount != league.FlatTopTenReward {
		t.Fatalf("amount = %d, want %d", amount, league.FlatTopTenReward)
	}

	last := events.events[len(events.events)-1]
	claimed, ok := last.(models.RewardClaimedEvent)
	if !ok {
		t.Fatalf("got %T, want RewardClaimedEvent", last)
	}
	if claimed.Amount != league.FlatTopTenReward || claimed.OwnerID != owner {
		t.Fatalf("claim event payload mismatch: %+v", claimed)
	}
}
