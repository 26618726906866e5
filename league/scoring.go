package league

// Scoring constants, in points per statistic.
const (
	PointsPerGoal   uint64 = 6
	PointsPerAssist uint64 = 3
)

// FlatTopTenReward is the payout, in native currency minor units, for every
// team ranked in the top ten.
const FlatTopTenReward uint64 = 2_000_000

// rewardRankCutoff is the worst rank that still pays out.
const rewardRankCutoff = 10

// ScorePlayers maps per-player goal and assist counts to points:
// points[i] = goals[i]*PointsPerGoal + assists[i]*PointsPerAssist.
//
// The two vectors must have equal length; otherwise ErrLengthMismatch is
// returned and no partial result is produced.
func ScorePlayers(goals, assists []uint64) ([]uint64, error) {
	if len(goals) != len(assists) {
		return nil, ErrLengthMismatch
	}
	points := make([]uint64, len(goals))
	for i := range goals {
		points[i] = goals[i]*PointsPerGoal + assists[i]*PointsPerAssist
	}
	return points, nil
}
