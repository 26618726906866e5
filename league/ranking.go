package league

import "github.com/Dosada05/fantasy-league/models"

// rankTeams assigns every team its position in the total order (points
// descending, id ascending), so ranks form a permutation of 1..N. Ties on
// points are broken in favor of the earlier-created team (lower id).
//
// The pairwise count is O(N²); at league sizes that is cheaper to reason about
// than a sort, and a sort by (-points, id) is behavior-equivalent (verified in
// ranking_test.go).
func rankTeams(teams []*models.Team) {
	for _, t := range teams {
		rank := 1
		for _, other := range teams {
			if other.ID == t.ID {
				continue
			}
			if other.Points > t.Points || (other.Points == t.Points && other.ID < t.ID) {
				rank++
			}
		}
		t.Rank = rank
	}
}
