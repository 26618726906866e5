package league

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Dosada05/fantasy-league/models"
)

// SettlementState gates team creation, the result announcement and reward
// claims. The only transition is Open -> Closed, performed exactly once by
// AnnounceResult; Closed is terminal.
type SettlementState string

const (
	StateOpen   SettlementState = "open"
	StateClosed SettlementState = "closed"
)

// League is the competition ledger aggregate: the immutable roster, the team
// registry and the settlement state, guarded by a single lock so that every
// mutating operation commits atomically and serially.
type League struct {
	mu          sync.Mutex
	initialized bool
	adminID     int
	roster      *Roster
	teams       []*models.Team
	state       SettlementState

	sink     EventSink
	treasury Treasury
	clock    Clock
}

// New builds a league over the given roster names. The league accepts no
// operations until Initialize is called with the admin identity.
func New(rosterNames []string, sink EventSink, treasury Treasury, clock Clock) *League {
	if clock == nil {
		clock = SystemClock()
	}
	return &League{
		roster:   NewRoster(rosterNames),
		state:    StateOpen,
		sink:     sink,
		treasury: treasury,
		clock:    clock,
	}
}

// Initialize records the admin identity and opens the league for team
// creation. It may succeed only once.
func (l *League) Initialize(adminID int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.initialized {
		return ErrAlreadyInitialized
	}
	l.initialized = true
	l.adminID = adminID
	return nil
}

// CreateTeam registers a team of three distinct roster players for ownerID.
// Preconditions are checked in order: settlement still open, every player in
// the roster, players pairwise distinct. The new team id equals the registry
// length at creation time, so ids are dense and reflect creation order.
func (l *League) CreateTeam(ctx context.Context, ownerID, p1, p2, p3 int) (models.Team, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.initialized {
		return models.Team{}, ErrNotInitialized
	}
	if l.state != StateOpen {
		return models.Team{}, ErrResultAlreadyAnnounced
	}
	for _, id := range [...]int{p1, p2, p3} {
		if !l.roster.Exists(id) {
			return models.Team{}, fmt.Errorf("%w: id %d", ErrPlayerNotFound, id)
		}
	}
	if p1 == p2 || p1 == p3 || p2 == p3 {
		return models.Team{}, ErrDuplicatePlayer
	}

	team := &models.Team{
		ID:        len(l.teams),
		OwnerID:   ownerID,
		PlayerIDs: [models.TeamSize]int{p1, p2, p3},
		CreatedAt: l.clock.Now(),
	}
	l.teams = append(l.teams, team)

	l.notify(ctx, models.TeamCreatedEvent{
		OwnerID:   team.OwnerID,
		TeamID:    team.ID,
		PlayerIDs: team.PlayerIDs,
		CreatedAt: team.CreatedAt,
	})
	return *team, nil
}

// AnnounceResult scores every registered team from the per-player goal and
// assist vectors (indexed by player id), ranks all teams, and irreversibly
// closes the settlement. Only the admin may announce, and only once.
// Announcing with zero teams is valid and still closes the league.
func (l *League) AnnounceResult(ctx context.Context, callerID int, goals, assists []uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.initialized {
		return ErrNotInitialized
	}
	if callerID != l.adminID {
		return ErrNotAdmin
	}
	if l.state != StateOpen {
		return ErrResultAlreadyAnnounced
	}

	playerPoints, err := ScorePlayers(goals, assists)
	if err != nil {
		return err
	}

	// Compute every total before mutating anything, so a missing stat aborts
	// the announcement with no team touched.
	totals := make([]uint64, len(l.teams))
	for i, team := range l.teams {
		var sum uint64
		for _, id := range team.PlayerIDs {
			if id >= len(playerPoints) {
				return fmt.Errorf("%w: player %d", ErrPlayerStatsMissing, id)
			}
			sum += playerPoints[id]
		}
		totals[i] = sum
	}

	for i, team := range l.teams {
		team.Points = totals[i]
	}
	rankTeams(l.teams)
	l.state = StateClosed

	l.notify(ctx, models.ResultAnnouncedEvent{
		Goals:       append([]uint64(nil), goals...),
		Assists:     append([]uint64(nil), assists...),
		AnnouncedAt: l.clock.Now(),
	})
	return nil
}

// ClaimReward settles the reward for one team, exactly once. The caller must
// be the team's owner. Teams ranked in the top ten receive FlatTopTenReward
// from the treasury; all others claim successfully with a zero amount. The
// claimed flag is set only after the transfer succeeds, so an underfunded
// treasury leaves the claim retryable.
func (l *League) ClaimReward(ctx context.Context, callerID, teamID int) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.initialized {
		return 0, ErrNotInitialized
	}
	if l.state != StateClosed {
		return 0, ErrResultNotAnnounced
	}
	if teamID < 0 || teamID >= len(l.teams) {
		return 0, ErrTeamNotFound
	}
	team := l.teams[teamID]
	if callerID != team.OwnerID {
		return 0, ErrNotTeamOwner
	}
	if team.RewardClaimed {
		return 0, ErrRewardAlreadyClaimed
	}

	var reward uint64
	if team.Rank >= 1 && team.Rank <= rewardRankCutoff {
		reward = FlatTopTenReward
	}
	if reward == 0 {
		team.RewardClaimed = true
		return 0, nil
	}

	balance, err := l.treasury.Balance(ctx)
	if err != nil {
		return 0, fmt.Errorf("treasury balance check failed: %w", err)
	}
	if balance < reward {
		return 0, ErrInsufficientFunds
	}
	if err := l.treasury.Transfer(ctx, callerID, reward); err != nil {
		return 0, fmt.Errorf("treasury transfer failed: %w", err)
	}
	team.RewardClaimed = true

	l.notify(ctx, models.RewardClaimedEvent{
		OwnerID:   team.OwnerID,
		TeamID:    team.ID,
		Amount:    reward,
		ClaimedAt: l.clock.Now(),
	})
	return reward, nil
}

// Team returns a copy of the team with the given id.
func (l *League) Team(id int) (models.Team, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if id < 0 || id >= len(l.teams) {
		return models.Team{}, ErrTeamNotFound
	}
	return *l.teams[id], nil
}

// Teams returns copies of all teams in creation order.
func (l *League) Teams() []models.Team {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.Team, len(l.teams))
	for i, t := range l.teams {
		out[i] = *t
	}
	return out
}

// Standings returns all teams ordered by rank once the result is announced,
// and by creation order before that.
func (l *League) Standings() []models.Team {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.Team, len(l.teams))
	for i, t := range l.teams {
		out[i] = *t
	}
	if l.state == StateClosed {
		sort.Slice(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	}
	return out
}

// Roster returns the player catalog in id order.
func (l *League) Roster() []models.Player {
	return l.roster.Players()
}

// State reports the current settlement state.
func (l *League) State() SettlementState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *League) notify(ctx context.Context, event models.Event) {
	if l.sink != nil {
		l.sink.Notify(ctx, event)
	}
}
