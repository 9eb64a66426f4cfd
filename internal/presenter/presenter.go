// Package presenter renders the game to text. It only reads engine state.
package presenter

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

const intro = `
 _____ _        _____            _____
|_   _(_) ___  |_   _|_ _  ___  |_   _|__   ___
  | | | |/ __|   | |/ _' |/ __|   | |/ _ \ / _ \
  | | | | (__    | | (_| | (__    | | (_) |  __/
  |_| |_|\___|   |_|\__,_|\___|   |_| \___/ \___|

How to Play:
    Each player takes turns entering a position on the playing board.
    To win, a player must match 3 marks in a row, column or crosswise pattern.
`

const rowSeparator = "---------"

// player colors, assigned in registration order.
var palette = []string{"9", "12", "10", "13"}

type Scorer interface {
	Name() string
	Wins() int
}

type Presenter struct {
	out    *termenv.Output
	colors map[entity.Mark]termenv.Color
}

type options struct {
	profile *termenv.Profile
}

type Option func(*options)

// WithoutColor renders plain text regardless of the terminal.
func WithoutColor() Option {
	return WithProfile(termenv.Ascii)
}

// WithProfile forces a color profile instead of detecting it from the writer.
func WithProfile(profile termenv.Profile) Option {
	return func(that *options) {
		that.profile = &profile
	}
}

func New(w io.Writer, opts ...Option) *Presenter {
	conf := &options{}
	for _, opt := range opts {
		opt(conf)
	}

	var outputOpts []termenv.OutputOption
	if conf.profile != nil {
		outputOpts = append(outputOpts, termenv.WithProfile(*conf.profile))
	}

	return &Presenter{
		out:    termenv.NewOutput(w, outputOpts...),
		colors: make(map[entity.Mark]termenv.Color),
	}
}

// Register assigns a display color to each mark.
func (that *Presenter) Register(marks ...entity.Mark) {
	for _, mark := range marks {
		if _, ok := that.colors[mark]; ok {
			continue
		}
		that.colors[mark] = that.out.Color(palette[len(that.colors)%len(palette)])
	}
}

// Show writes text to the output.
func (that *Presenter) Show(text string) error {
	if _, err := io.WriteString(that.out, text); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (that *Presenter) Intro() string {
	return intro
}

// Board renders the grid. Empty cells show their position and the winning
// line, if any, is highlighted.
func (that *Presenter) Board(board entity.Board, outcome entity.Outcome) string {
	var sb strings.Builder

	sb.WriteString("\n")
	for _, pos := range board.Positions() {
		sb.WriteString(that.cell(board, outcome, pos))

		switch {
		case pos == entity.MaxPosition:
			sb.WriteString("\n")
		case pos%3 == 0:
			sb.WriteString("\n" + rowSeparator + "\n")
		default:
			sb.WriteString(" | ")
		}
	}

	return sb.String()
}

func (that *Presenter) cell(board entity.Board, outcome entity.Outcome, pos entity.Position) string {
	mark := board.At(pos)
	if mark.IsEmpty() {
		return strconv.Itoa(int(pos))
	}

	style := that.out.String(mark.String())
	if color, ok := that.colors[mark]; ok {
		style = style.Foreground(color)
	}
	if outcome.Found && outcome.Line.Contains(pos) {
		style = style.Bold().Reverse()
	}

	return style.String()
}

func (that *Presenter) Prompt(name string) string {
	return name + " enter a position: "
}

func (that *Presenter) Ask(question string) string {
	return question + " y/n: "
}

func (that *Presenter) Winner(name string) string {
	return that.out.String(name + " has won!").Bold().String() + "\n"
}

func (that *Presenter) Draw() string {
	return "It's a draw!\n"
}

// Rejected explains why a move was refused.
func (that *Presenter) Rejected(err error) string {
	var msg string

	switch {
	case errors.Is(err, apperror.ErrCellOccupied):
		msg = "This position is already taken!"
	case errors.Is(err, apperror.ErrInvalidPosition),
		errors.Is(err, apperror.ErrNotANumber),
		errors.Is(err, apperror.ErrInputTooLong):
		msg = fmt.Sprintf("Choose a position between %d and %d.", entity.MinPosition, entity.MaxPosition)
	case errors.Is(err, apperror.ErrNotYourTurn):
		msg = "It's not your turn."
	case errors.Is(err, apperror.ErrRoundFinished):
		msg = "This round is already over."
	default:
		msg = "Move rejected: " + err.Error()
	}

	return msg + "\n"
}

// Tally lists every player's cumulative wins, one line each.
func (that *Presenter) Tally(players ...Scorer) string {
	var sb strings.Builder
	for _, player := range players {
		fmt.Fprintf(&sb, "%s wins: %d\n", player.Name(), player.Wins())
	}
	return sb.String()
}
