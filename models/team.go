package models

import "time"

// TeamSize is the fixed number of players on every team.
const TeamSize = 3

// Team is a user-submitted selection of exactly three distinct players plus
// its derived score, rank and claim status. Teams are never edited or deleted;
// Points and Rank are written once by the result announcement, RewardClaimed
// once by a successful claim.
type Team struct {
	ID            int           `json:"id"`
	OwnerID       int           `json:"owner_id"`
	PlayerIDs     [TeamSize]int `json:"player_ids"`
	Points        uint64        `json:"points"`
	Rank          int           `json:"rank"` // 0 means unranked
	RewardClaimed bool          `json:"reward_claimed"`
	CreatedAt     time.Time     `json:"created_at"`
}
