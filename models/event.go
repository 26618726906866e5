package models

import "time"

// EventKind identifies one of the three ledger event types.
type EventKind string

const (
	EventTeamCreated     EventKind = "team_created"
	EventResultAnnounced EventKind = "result_announced"
	EventRewardClaimed   EventKind = "reward_claimed"
)

// Event is a single entry of the append-only ledger event log.
type Event interface {
	Kind() EventKind
	OccurredAt() time.Time
}

type TeamCreatedEvent struct {
	OwnerID   int           `json:"owner_id"`
	TeamID    int           `json:"team_id"`
	PlayerIDs [TeamSize]int `json:"player_ids"`
	CreatedAt time.Time     `json:"created_at"`
}

func (e TeamCreatedEvent) Kind() EventKind       { return EventTeamCreated }
func (e TeamCreatedEvent) OccurredAt() time.Time { return e.CreatedAt }

// ResultAnnouncedEvent carries the full per-player goal and assist vectors
// supplied by the admin, indexed by player id.
type ResultAnnouncedEvent struct {
	Goals       []uint64  `json:"goals"`
	Assists     []uint64  `json:"assists"`
	AnnouncedAt time.Time `json:"announced_at"`
}

func (e ResultAnnouncedEvent) Kind() EventKind       { return EventResultAnnounced }
func (e ResultAnnouncedEvent) OccurredAt() time.Time { return e.AnnouncedAt }

type RewardClaimedEvent struct {
	OwnerID   int       `json:"owner_id"`
	TeamID    int       `json:"team_id"`
	Amount    uint64    `json:"amount"`
	ClaimedAt time.Time `json:"claimed_at"`
}

func (e RewardClaimedEvent) Kind() EventKind       { return EventRewardClaimed }
func (e RewardClaimedEvent) OccurredAt() time.Time { return e.ClaimedAt }
