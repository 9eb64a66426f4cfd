// Package session drives a game from line based input: it prompts players,
// forwards their moves to the engine and asks whether to play another round.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
	"github.com/rocketscienceinc/tictactoe-cli/internal/presenter"
	"github.com/rocketscienceinc/tictactoe-cli/internal/tictactoe"
)

// maxLineLength bounds a single answer. Longer lines are discarded and rejected.
const maxLineLength = 1024

var ErrInputClosed = errors.New("input closed")

var confirmations = []string{"yes", "YES", "Yes", "y", "Y"}

type roundJournal interface {
	Append(ctx context.Context, sessionID string, record *entity.RoundRecord) error
}

type lineResult struct {
	line string
	err  error
}

type Session struct {
	logger *slog.Logger
	id     string

	engine    *tictactoe.Engine
	presenter *presenter.Presenter
	journal   roundJournal

	input     *bufio.Reader
	lines     chan lineResult
	skipIntro bool
	now       func() time.Time
}

type Option func(*Session)

// WithSkipIntro starts the first round without asking for confirmation.
func WithSkipIntro(skip bool) Option {
	return func(that *Session) {
		that.skipIntro = skip
	}
}

func WithClock(now func() time.Time) Option {
	return func(that *Session) {
		that.now = now
	}
}

func New(
	logger *slog.Logger,
	id string,
	engine *tictactoe.Engine,
	view *presenter.Presenter,
	journal roundJournal,
	input io.Reader,
	opts ...Option,
) *Session {
	session := &Session{
		logger:    logger.With("component", "session", "session", id),
		id:        id,
		engine:    engine,
		presenter: view,
		journal:   journal,
		input:     bufio.NewReader(input),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(session)
	}

	return session
}

// IsYes reports whether value confirms a question.
func IsYes(value string) bool {
	value = strings.TrimSpace(value)
	for _, confirm := range confirmations {
		if value == confirm {
			return true
		}
	}
	return false
}

// Run plays rounds until the players stop or ctx is canceled, then prints the
// tally. Run must be called once.
func (that *Session) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	// reads block, so they happen apart from ctx handling
	done := make(chan struct{})
	defer close(done)
	that.lines = make(chan lineResult)
	go that.readLines(done)

	if err := that.say(that.presenter.Intro()); err != nil {
		return err
	}

	if !that.skipIntro {
		ready, err := that.confirm(ctx, "Are you ready to start the game?")
		if err != nil {
			return that.finish(err)
		}
		if !ready {
			log.Info("players are not ready")
			return nil
		}
	}

	for {
		if err := that.playRound(ctx); err != nil {
			return that.finish(err)
		}

		that.recordRound(ctx)

		again, err := that.confirm(ctx, "Continue playing?")
		if err != nil {
			return that.finish(err)
		}
		if !again {
			return that.finish(nil)
		}

		that.engine.Reset()
		log.Debug("board reset", "round", that.engine.Round())
	}
}

// playRound - asks for moves until the round is decided or exhausted.
func (that *Session) playRound(ctx context.Context) error {
	log := that.logger.With("method", "playRound", "round", that.engine.Round())

	for !that.engine.IsFinished() {
		if err := that.say(that.presenter.Board(that.engine.Board(), that.engine.Outcome())); err != nil {
			return err
		}

		player := that.engine.NextTurn()
		line, err := that.ask(ctx, that.presenter.Prompt(player.Name()))
		if err != nil && !errors.Is(err, apperror.ErrInputTooLong) {
			return err
		}

		var pos entity.Position
		if err == nil {
			pos, err = parsePosition(line)
		}
		if err == nil {
			_, err = that.engine.Place(player, player.Mark(), pos)
		}
		if err != nil {
			log.Debug("move rejected", "player", player.Name(), "input_length", len(line), "error", err)
			if err = that.say(that.presenter.Rejected(err)); err != nil {
				return err
			}
			continue
		}

		log.Debug("move placed", "player", player.Name(), "position", pos, "turn", that.engine.Turns())
	}

	if err := that.say(that.presenter.Board(that.engine.Board(), that.engine.Outcome())); err != nil {
		return err
	}

	if winner := that.engine.Winner(); winner != nil {
		log.Info("round won", "player", winner.Name(), "line", that.engine.Outcome().Line)
		return that.say(that.presenter.Winner(winner.Name()))
	}

	log.Info("round drawn")
	return that.say(that.presenter.Draw())
}

// recordRound - mirrors the finished round to the journal. Failures are only logged.
func (that *Session) recordRound(ctx context.Context) {
	log := that.logger.With("method", "recordRound")

	record := &entity.RoundRecord{
		Round:      that.engine.Round(),
		Winner:     entity.NoWinner,
		Turns:      that.engine.Turns(),
		FinishedAt: that.now().UTC(),
	}

	if outcome := that.engine.Outcome(); outcome.Found {
		line := outcome.Line
		record.Winner = outcome.Mark.String()
		record.Line = &line
	}

	if err := that.journal.Append(ctx, that.id, record); err != nil {
		log.Error("failed to record round", "error", err)
	}
}

// finish - prints the tally. A closed input ends the session normally, a
// canceled context still reports its error.
func (that *Session) finish(err error) error {
	stopped := errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
	if err != nil && !stopped && !errors.Is(err, ErrInputClosed) {
		return err
	}

	players := that.engine.Players()
	if sayErr := that.say("\n" + that.presenter.Tally(players[0], players[1])); sayErr != nil {
		return sayErr
	}

	if stopped {
		return err
	}

	return nil
}

func (that *Session) confirm(ctx context.Context, question string) (bool, error) {
	answer, err := that.ask(ctx, that.presenter.Ask(question))
	if errors.Is(err, apperror.ErrInputTooLong) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return IsYes(answer), nil
}

func (that *Session) ask(ctx context.Context, prompt string) (string, error) {
	if err := that.say(prompt); err != nil {
		return "", err
	}
	return that.readLine(ctx)
}

func (that *Session) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("session stopped: %w", err)
	}

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("session stopped: %w", ctx.Err())
	case result, ok := <-that.lines:
		if !ok {
			return "", ErrInputClosed
		}
		return result.line, result.err
	}
}

// readLines - feeds input lines to the session until the input fails or done
// is closed.
func (that *Session) readLines(done <-chan struct{}) {
	defer close(that.lines)

	for {
		line, err := readBoundedLine(that.input)

		select {
		case that.lines <- lineResult{line: line, err: err}:
		case <-done:
			return
		}

		if err != nil && !errors.Is(err, apperror.ErrInputTooLong) {
			return
		}
	}
}

// readBoundedLine - reads one line without its terminator. A line over
// maxLineLength is consumed in full and reported as apperror.ErrInputTooLong.
func readBoundedLine(input *bufio.Reader) (string, error) {
	var (
		line    []byte
		tooLong bool
	)

	for {
		chunk, isPrefix, err := input.ReadLine()
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}

		if !tooLong && len(line)+len(chunk) > maxLineLength {
			tooLong, line = true, nil
		}
		if !tooLong {
			line = append(line, chunk...)
		}

		if !isPrefix {
			break
		}
	}

	if tooLong {
		return "", apperror.ErrInputTooLong
	}

	return string(line), nil
}

func (that *Session) say(text string) error {
	return that.presenter.Show(text)
}

func parsePosition(line string) (entity.Position, error) {
	value, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", apperror.ErrNotANumber, line)
	}
	return entity.Position(value), nil
}
