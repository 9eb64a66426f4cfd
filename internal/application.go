package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/tictactoe-cli/internal/config"
	"github.com/rocketscienceinc/tictactoe-cli/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-cli/internal/presenter"
	"github.com/rocketscienceinc/tictactoe-cli/internal/repository"
	"github.com/rocketscienceinc/tictactoe-cli/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-cli/internal/session"
	"github.com/rocketscienceinc/tictactoe-cli/internal/tictactoe"
)

const (
	purgeTimeout    = 5 * time.Second
	shutdownTimeout = 2 * time.Second
)

var ErrAddrNotFound = errors.New("redis host is empty")

// RunApp - runs a game session reading moves from in and rendering to out.
func RunApp(logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	marks, err := conf.GameMarks()
	if err != nil {
		return fmt.Errorf("could not read marks: %w", err)
	}

	engine, err := tictactoe.New(marks...)
	if err != nil {
		return fmt.Errorf("could not set up game: %w", err)
	}

	sessionID := pkg.GenerateNewSessionID()

	journal, closeJournal, err := openJournal(ctx, log, conf, sessionID)
	if err != nil {
		return err
	}
	defer closeJournal()

	var viewOpts []presenter.Option
	if conf.NoColor {
		viewOpts = append(viewOpts, presenter.WithoutColor())
	}
	view := presenter.New(out, viewOpts...)
	view.Register(marks...)

	gameSession := session.New(logger, sessionID, engine, view, journal, in,
		session.WithSkipIntro(conf.SkipIntro))

	// the session blocks on input, so it runs apart from signal handling
	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting game session", "session", sessionID)
		errCh <- gameSession.Run(ctx)
	}()

	select {
	case err = <-errCh:
	case <-ctx.Done():
		log.Info("Application context canceled, waiting for the game session")

		// the journal closes after the session so no round is appended mid-purge
		select {
		case err = <-errCh:
		case <-time.After(shutdownTimeout):
			log.Warn("Game session did not stop in time")
			return nil
		}
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("game session error: %w", err)
	}

	log.Info("Game session finished")
	return nil
}

// openJournal - connects the round journal when redis is enabled. The returned
// func purges the session and closes the connection.
func openJournal(
	ctx context.Context,
	log *slog.Logger,
	conf *config.Config,
	sessionID string,
) (repository.RoundJournal, func(), error) {
	if !conf.Redis.Enabled {
		return repository.NewNopJournal(), func() {}, nil
	}

	if conf.Redis.Host == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	journal := repository.NewRoundJournal(redisStorage, conf.Redis.KeyTTL)

	closeFn := func() {
		purgeCtx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
		defer cancel()

		if err := journal.Purge(purgeCtx, sessionID); err != nil && !errors.Is(err, repository.ErrSessionNotFound) {
			log.Error("could not purge session rounds", "error", err)
		}

		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return journal, closeFn, nil
}
