// Package tictactoe implements the game-state engine: board, turn rotation,
// move validation and win detection for a two player 3x3 game.
package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

const (
	playersCount = 2

	// no line can be complete before the fifth move.
	minTurnsToWin = 5
	maxTurns      = entity.BoardSize
)

type State int

const (
	StateEmpty State = iota
	StateInProgress
	StateDecided
	StateExhausted
)

func (that State) String() string {
	switch that {
	case StateEmpty:
		return "empty"
	case StateInProgress:
		return "in progress"
	case StateDecided:
		return "decided"
	case StateExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("State(%d)", int(that))
	}
}

// Move records who placed which mark where.
type Move struct {
	Player   *Player
	Mark     entity.Mark
	Position entity.Position
}

// Engine is the sole source of truth for a game session. It is not safe for
// concurrent use; a session must be driven by one caller at a time.
type Engine struct {
	players [playersCount]*Player

	board    entity.Board
	turns    int
	round    int
	nextTurn *Player
	outcome  entity.Outcome
	lastMove *Move
}

// New creates an engine for exactly two distinct printable marks. The first
// mark moves first.
func New(marks ...entity.Mark) (*Engine, error) {
	if len(marks) != playersCount {
		return nil, fmt.Errorf("%w: got %d marks, exactly %d are required to play",
			apperror.ErrConfiguration, len(marks), playersCount)
	}

	for _, mark := range marks {
		if !mark.Printable() {
			return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, rune(mark))
		}
	}

	first, second := newPlayer(marks[0]), newPlayer(marks[1])
	if first.mark == second.mark || first.name == second.name {
		return nil, fmt.Errorf("%w: %q and %q", apperror.ErrDuplicateMarks, rune(first.mark), rune(second.mark))
	}

	engine := &Engine{
		players: [playersCount]*Player{first, second},
	}
	engine.Reset()

	return engine, nil
}

// Place puts mark on pos for player. A rejected move leaves the engine
// untouched. The returned outcome reflects the state after the call.
func (that *Engine) Place(player *Player, mark entity.Mark, pos entity.Position) (entity.Outcome, error) {
	if err := that.validateMove(player, mark, pos); err != nil {
		return that.outcome, err
	}

	that.board.Set(pos, mark)
	that.lastMove = &Move{Player: player, Mark: mark, Position: pos}
	that.turns++
	that.nextTurn = that.opponent(player)

	if that.turns >= minTurnsToWin {
		that.detectWinner()
	}

	return that.outcome, nil
}

// validateMove - checks if the move is legal without changing any state.
func (that *Engine) validateMove(player *Player, mark entity.Mark, pos entity.Position) error {
	if !pos.Valid() {
		return fmt.Errorf("%w: %d, expected %d..%d", apperror.ErrInvalidPosition, pos, entity.MinPosition, entity.MaxPosition)
	}

	if !that.isRegistered(player) {
		return apperror.ErrUnknownPlayer
	}

	if player.mark != mark {
		return fmt.Errorf("%w: %q is not %s's mark", apperror.ErrMarkMismatch, rune(mark), player.name)
	}

	if that.IsFinished() {
		return apperror.ErrRoundFinished
	}

	if that.nextTurn != player {
		return fmt.Errorf("%w: %s moves next", apperror.ErrNotYourTurn, that.nextTurn.name)
	}

	if that.board.IsOccupied(pos) {
		return fmt.Errorf("%w: position %d", apperror.ErrCellOccupied, pos)
	}

	return nil
}

// detectWinner - awards the first fully owned line in detection order.
func (that *Engine) detectWinner() {
	for _, line := range entity.WinLines() {
		owner := that.board.Owner(line)
		if owner.IsEmpty() {
			continue
		}

		that.outcome = entity.Outcome{Found: true, Mark: owner, Line: line}
		if winner := that.playerByMark(owner); winner != nil {
			winner.wins++
		}

		return
	}
}

// Reset starts a new round. Win counters are kept.
func (that *Engine) Reset() {
	that.board = entity.NewBoard()
	that.turns = 0
	that.outcome = entity.Outcome{}
	that.lastMove = nil
	that.nextTurn = that.players[0]
	that.round++
}

func (that *Engine) Board() entity.Board {
	return that.board
}

func (that *Engine) Outcome() entity.Outcome {
	return that.outcome
}

func (that *Engine) Players() [playersCount]*Player {
	return that.players
}

func (that *Engine) NextTurn() *Player {
	return that.nextTurn
}

func (that *Engine) Turns() int {
	return that.turns
}

// Round is the 1-based number of the current round.
func (that *Engine) Round() int {
	return that.round
}

func (that *Engine) LastMove() (Move, bool) {
	if that.lastMove == nil {
		return Move{}, false
	}
	return *that.lastMove, true
}

func (that *Engine) State() State {
	switch {
	case that.outcome.Found:
		return StateDecided
	case that.turns >= maxTurns:
		return StateExhausted
	case that.turns == 0:
		return StateEmpty
	default:
		return StateInProgress
	}
}

// IsFinished reports whether the round is decided or exhausted.
func (that *Engine) IsFinished() bool {
	state := that.State()
	return state == StateDecided || state == StateExhausted
}

// PlayerFor resolves a player by the numeric code of its mark. A line
// aggregate resolves through TripleValue()/3.
func (that *Engine) PlayerFor(code int) (*Player, error) {
	for _, player := range that.players {
		if player.mark.Code() == code {
			return player, nil
		}
	}

	return nil, fmt.Errorf("%w: mark code %d", apperror.ErrPlayerNotFound, code)
}

// Winner returns the player that decided the round, or nil.
func (that *Engine) Winner() *Player {
	if !that.outcome.Found {
		return nil
	}
	return that.playerByMark(that.outcome.Mark)
}

func (that *Engine) Columns() [3]entity.LineValue {
	return [3]entity.LineValue{
		that.lineValue(entity.Columns[0]),
		that.lineValue(entity.Columns[1]),
		that.lineValue(entity.Columns[2]),
	}
}

func (that *Engine) Rows() [3]entity.LineValue {
	return [3]entity.LineValue{
		that.lineValue(entity.Rows[0]),
		that.lineValue(entity.Rows[1]),
		that.lineValue(entity.Rows[2]),
	}
}

func (that *Engine) Crosswise() [2]entity.LineValue {
	return [2]entity.LineValue{
		that.lineValue(entity.Crosswise[0]),
		that.lineValue(entity.Crosswise[1]),
	}
}

// Lines returns all 8 line aggregates in detection order.
func (that *Engine) Lines() []entity.LineValue {
	lines := entity.WinLines()

	values := make([]entity.LineValue, 0, len(lines))
	for _, line := range lines {
		values = append(values, that.lineValue(line))
	}

	return values
}

func (that *Engine) lineValue(line entity.Line) entity.LineValue {
	return entity.LineValue{Value: that.board.Value(line), Line: line}
}

func (that *Engine) isRegistered(player *Player) bool {
	for _, p := range that.players {
		if p == player {
			return true
		}
	}
	return false
}

func (that *Engine) opponent(player *Player) *Player {
	if that.players[0] == player {
		return that.players[1]
	}
	return that.players[0]
}

func (that *Engine) playerByMark(mark entity.Mark) *Player {
	for _, player := range that.players {
		if player.mark == mark {
			return player
		}
	}
	return nil
}
