package league

import (
	"sort"
	"testing"

	"github.com/Dosada05/fantasy-league/models"
)

func teamsWithPoints(points ...uint64) []*models.Team {
	teams := make([]*models.Team, len(points))
	for i, p := range points {
		teams[i] = &models.Team{ID: i, Points: p}
	}
	return teams
}

func TestRankTeams_TieBreakFavorsLowerID(t *testing.T) {
	teams := teamsWithPoints(18, 9, 12, 12)

	rankTeams(teams)

	want := []int{1, 4, 2, 3}
	for i, team := range teams {
		if team.Rank != want[i] {
			t.Fatalf("team %d rank = %d, want %d (all: %v)", i, team.Rank, want[i], ranksOf(teams))
		}
	}
}

func TestRankTeams_RanksFormPermutation(t *testing.T) {
	tests := []struct {
		name   string
		points []uint64
	}{
		{"empty", nil},
		{"single", []uint64{7}},
		{"all tied", []uint64{5, 5, 5, 5}},
		{"strictly decreasing", []uint64{40, 30, 20, 10}},
		{"mixed", []uint64{12, 0, 12, 18, 0, 3}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			teams := teamsWithPoints(tc.points...)
			rankTeams(teams)

			seen := make(map[int]bool, len(teams))
			for _, team := range teams {
				if team.Rank < 1 || team.Rank > len(teams) {
					t.Fatalf("rank %d out of [1,%d]", team.Rank, len(teams))
				}
				if seen[team.Rank] {
					t.Fatalf("duplicate rank %d", team.Rank)
				}
				seen[team.Rank] = true
			}
		})
	}
}

// TestRankTeams_MatchesSortBasedReference checks the pairwise count against
// sorting by (points descending, id ascending) and assigning positional ranks.
func TestRankTeams_MatchesSortBasedReference(t *testing.T) {
	cases := [][]uint64{
		{18, 9, 12, 12},
		{0, 0, 0},
		{6, 3, 9, 9, 9, 6, 0, 18, 3},
		{1},
	}

	for _, points := range cases {
		teams := teamsWithPoints(points...)
		rankTeams(teams)

		ref := teamsWithPoints(points...)
		sort.Slice(ref, func(i, j int) bool {
			if ref[i].Points != ref[j].Points {
				return ref[i].Points > ref[j].Points
			}
			return ref[i].ID < ref[j].ID
		})
		wantByID := make(map[int]int, len(ref))
		for pos, team := range ref {
			wantByID[team.ID] = pos + 1
		}

		for _, team := range teams {
			if team.Rank != wantByID[team.ID] {
				t.Fatalf("points %v: team %d rank = %d, sort reference = %d",
					points, team.ID, team.Rank, wantByID[team.ID])
			}
		}
	}
}

func ranksOf(teams []*models.Team) []int {
	ranks := make([]int, len(teams))
	for i, t := range teams {
		ranks[i] = t.Rank
	}
	return ranks
}
