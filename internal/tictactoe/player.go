package tictactoe

import (
	"strings"

	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

// Player owns one mark for the lifetime of an Engine. Its win counter
// accumulates across rounds and is only changed by the Engine.
type Player struct {
	mark entity.Mark
	name string
	wins int
}

func newPlayer(mark entity.Mark) *Player {
	return &Player{
		mark: mark,
		name: "Player " + strings.ToUpper(mark.String()),
	}
}

func (that *Player) Mark() entity.Mark {
	return that.mark
}

func (that *Player) Name() string {
	return that.name
}

// TripleValue is the aggregate a line reaches when this player holds all of it.
func (that *Player) TripleValue() int {
	return 3 * that.mark.Code()
}

func (that *Player) Wins() int {
	return that.wins
}

func (that *Player) String() string {
	return that.name
}
