package league

import "github.com/Dosada05/fantasy-league/models"

// DefaultRosterNames is the fixed player catalog used unless a deployment
// overrides it. Order matters: a player's id is its position in this list.
var DefaultRosterNames = []string{
	"Salah",
	"Rashford",
	"Bruno Fernandes",
	"De Bruyne",
	"Trent",
	"Maquire",
}

// Roster is the immutable, ordered catalog of eligible players.
type Roster struct {
	players []models.Player
}

// NewRoster assigns each name an id equal to its position in the sequence.
func NewRoster(names []string) *Roster {
	players := make([]models.Player, len(names))
	for i, name := range names {
		players[i] = models.Player{ID: i, Name: name}
	}
	return &Roster{players: players}
}

func (r *Roster) Exists(id int) bool {
	return id >= 0 && id < len(r.players)
}

// Get returns the player with the given id, or ErrPlayerNotFound if the id is
// outside the roster.
func (r *Roster) Get(id int) (models.Player, error) {
	if !r.Exists(id) {
		return models.Player{}, ErrPlayerNotFound
	}
	return r.players[id], nil
}

func (r *Roster) Len() int { return len(r.players) }

// Players returns a copy of the catalog in id order.
func (r *Roster) Players() []models.Player {
	out := make([]models.Player, len(r.players))
	copy(out, r.players)
	return out
}
