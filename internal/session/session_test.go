package session

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
	"github.com/rocketscienceinc/tictactoe-cli/internal/presenter"
	"github.com/rocketscienceinc/tictactoe-cli/internal/tictactoe"
	mockedSession "github.com/rocketscienceinc/tictactoe-cli/mocks/session"
)

var (
	errJournalDown = errors.New("journal is down")

	fixedNow = time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)
)

type fixture struct {
	session *Session
	engine  *tictactoe.Engine
	journal *mockedSession.MockroundJournal
	output  *bytes.Buffer
	logs    *bytes.Buffer
}

func newFixture(t *testing.T, input string, opts ...Option) *fixture {
	t.Helper()

	engine, err := tictactoe.New('x', 'o')
	require.NoError(t, err)

	output, logs := &bytes.Buffer{}, &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	journal := mockedSession.NewMockroundJournal(t)

	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	session := New(logger, "session-1", engine, presenter.New(output, presenter.WithoutColor()), journal,
		strings.NewReader(input), opts...)

	return &fixture{
		session: session,
		engine:  engine,
		journal: journal,
		output:  output,
		logs:    logs,
	}
}

// expectRounds - expects times appends for session-1 answering err and
// collects the recorded rounds.
func (that *fixture) expectRounds(err error, times int) *[]entity.RoundRecord {
	records := &[]entity.RoundRecord{}

	that.journal.EXPECT().
		Append(mock.Anything, "session-1", mock.AnythingOfType("*entity.RoundRecord")).
		Run(func(_ context.Context, _ string, record *entity.RoundRecord) {
			*records = append(*records, *record)
		}).
		Return(err).
		Times(times)

	return records
}

func lines(values ...string) string {
	return strings.Join(values, "\n") + "\n"
}

func TestIsYes(t *testing.T) {
	for _, value := range []string{"y", "Y", "yes", "Yes", "YES", " y "} {
		assert.True(t, IsYes(value), "value %q", value)
	}

	for _, value := range []string{"n", "no", "foo", "", "yEs", "ye"} {
		assert.False(t, IsYes(value), "value %q", value)
	}
}

func TestSession_Run(t *testing.T) {
	t.Run("Plays a winning round and prints the tally", func(t *testing.T) {
		// Given: players that confirm, let X win the left column and stop
		f := newFixture(t, lines("y", "1", "2", "4", "5", "7", "n"))
		records := f.expectRounds(nil, 1)

		// When: running the session
		err := f.session.Run(context.Background())
		require.NoError(t, err)

		// Then: the round is announced and the tally printed
		output := f.output.String()
		assert.Contains(t, output, "How to Play")
		assert.Contains(t, output, "Are you ready to start the game? y/n: ")
		assert.Contains(t, output, "Player X enter a position: ")
		assert.Contains(t, output, "Player O enter a position: ")
		assert.Contains(t, output, "Player X has won!")
		assert.Contains(t, output, "Player X wins: 1\nPlayer O wins: 0\n")
		assert.Contains(t, output, "\nx | o | 3\n---------\nx | o | 6\n---------\nx | 8 | 9\n")

		// Then: the round is recorded in the journal
		require.Len(t, *records, 1)
		line := entity.Line{1, 4, 7}
		assert.Equal(t, entity.RoundRecord{
			Round:      1,
			Winner:     "x",
			Line:       &line,
			Turns:      5,
			FinishedAt: fixedNow,
		}, (*records)[0])
	})

	t.Run("Stops when the players are not ready", func(t *testing.T) {
		f := newFixture(t, lines("n"))

		err := f.session.Run(context.Background())
		require.NoError(t, err)

		assert.NotContains(t, f.output.String(), "enter a position")
		f.journal.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Re-prompts after rejected moves", func(t *testing.T) {
		// Given: an occupied cell, a word and an out of range number
		f := newFixture(t, lines("1", "1", "foo", "12", "2", "4", "5", "7", "no"), WithSkipIntro(true))
		f.expectRounds(nil, 1)

		// When: running the session
		err := f.session.Run(context.Background())
		require.NoError(t, err)

		// Then: each rejection is explained and the game goes on
		output := f.output.String()
		assert.Equal(t, 1, strings.Count(output, "This position is already taken!"))
		assert.Equal(t, 2, strings.Count(output, "Choose a position between 1 and 9."))
		assert.NotContains(t, output, "Are you ready")
		assert.Contains(t, output, "Player X has won!")
		assert.Equal(t, 1, f.engine.Players()[0].Wins())
	})

	t.Run("Plays a draw then another round", func(t *testing.T) {
		// Given: a drawn round, a confirmation and a winning round
		f := newFixture(t, lines(
			"1", "2", "3", "5", "4", "6", "8", "7", "9",
			"y",
			"1", "2", "4", "5", "7",
			"n",
		), WithSkipIntro(true))
		records := f.expectRounds(nil, 2)

		// When: running the session
		err := f.session.Run(context.Background())
		require.NoError(t, err)

		// Then: both rounds are reported
		output := f.output.String()
		assert.Contains(t, output, "It's a draw!")
		assert.Contains(t, output, "Continue playing? y/n: ")
		assert.Contains(t, output, "Player X wins: 1\nPlayer O wins: 0\n")

		// Then: the journal holds the draw and the win
		require.Len(t, *records, 2)
		assert.Equal(t, 1, (*records)[0].Round)
		assert.True(t, (*records)[0].IsDraw())
		assert.Nil(t, (*records)[0].Line)
		assert.Equal(t, 9, (*records)[0].Turns)
		assert.Equal(t, 2, (*records)[1].Round)
		assert.Equal(t, "x", (*records)[1].Winner)
	})

	t.Run("Ends normally when the input is closed", func(t *testing.T) {
		f := newFixture(t, lines("1"), WithSkipIntro(true))

		err := f.session.Run(context.Background())
		require.NoError(t, err)

		assert.Contains(t, f.output.String(), "Player X wins: 0\nPlayer O wins: 0\n")
		assert.Equal(t, 1, f.engine.Turns())
		f.journal.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Stops when the context is canceled", func(t *testing.T) {
		f := newFixture(t, lines("1", "2"), WithSkipIntro(true))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := f.session.Run(ctx)

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, f.engine.Turns())
		assert.Contains(t, f.output.String(), "Player X wins: 0\nPlayer O wins: 0\n")
	})

	t.Run("Stops a blocked read when the context is canceled", func(t *testing.T) {
		// Given: an input that never delivers a line
		reader, writer := io.Pipe()
		t.Cleanup(func() { _ = writer.Close() })

		engine, err := tictactoe.New('x', 'o')
		require.NoError(t, err)
		logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
		session := New(logger, "session-1", engine, presenter.New(io.Discard, presenter.WithoutColor()),
			mockedSession.NewMockroundJournal(t), reader, WithSkipIntro(true))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		// When: running the session until the deadline
		err = session.Run(ctx)

		// Then: Run returns instead of waiting for input
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("Journal failures do not stop the game", func(t *testing.T) {
		// Given: a journal that always fails
		f := newFixture(t, lines("1", "2", "4", "5", "7", "n"), WithSkipIntro(true))
		f.expectRounds(errJournalDown, 1)

		// When: running the session
		err := f.session.Run(context.Background())

		// Then: the game ends normally and the failure is logged
		require.NoError(t, err)
		assert.Contains(t, f.output.String(), "Player X wins: 1")
		assert.Contains(t, f.logs.String(), "failed to record round")
	})

	t.Run("Rejects an overlong line and re-prompts", func(t *testing.T) {
		// Given: a position line far beyond the input limit, then a normal game
		input := strings.Repeat("1", 70000) + "\n" + lines("1", "2", "4", "5", "7", "n")
		f := newFixture(t, input, WithSkipIntro(true))
		f.expectRounds(nil, 1)

		// When: running the session
		err := f.session.Run(context.Background())

		// Then: the line is rejected like any bad position and the game goes on
		require.NoError(t, err)
		output := f.output.String()
		assert.Equal(t, 1, strings.Count(output, "Choose a position between 1 and 9."))
		assert.Contains(t, output, "Player X has won!")
		assert.Equal(t, 5, f.engine.Turns())
	})

	t.Run("Treats an overlong answer as no", func(t *testing.T) {
		// Given: a finished round and an overlong answer to continue
		input := lines("1", "2", "4", "5", "7") + strings.Repeat("y", maxLineLength+1) + "\n" + lines("y")
		f := newFixture(t, input, WithSkipIntro(true))
		f.expectRounds(nil, 1)

		// When: running the session
		err := f.session.Run(context.Background())

		// Then: the session ends after the first round
		require.NoError(t, err)
		assert.Contains(t, f.output.String(), "Player X wins: 1\nPlayer O wins: 0\n")
		assert.Equal(t, 1, f.engine.Round())
	})
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, io.ErrClosedPipe
}

func TestSession_RunOutputFailure(t *testing.T) {
	// Given: a presenter whose writer always fails
	engine, err := tictactoe.New('x', 'o')
	require.NoError(t, err)

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	session := New(logger, "session-1", engine, presenter.New(failingWriter{}, presenter.WithoutColor()),
		mockedSession.NewMockroundJournal(t), strings.NewReader(lines("y")))

	// When: running the session
	err = session.Run(context.Background())

	// Then: the write error is returned
	require.ErrorIs(t, err, io.ErrClosedPipe)
}
