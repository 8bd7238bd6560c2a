package commands

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/msgtools/telstra-numbers/internal/config"
	"github.com/msgtools/telstra-numbers/internal/logging"
	"github.com/msgtools/telstra-numbers/internal/output"
	"github.com/msgtools/telstra-numbers/internal/telstra"
)

// session is the per-invocation state every API command starts from.
type session struct {
	cfg     *config.Config
	logger  *slog.Logger
	printer *output.Printer
	closer  io.Closer
}

// newSession loads and validates config, then builds the logger and printer.
// Callers must Close the session.
func newSession(cmd *cobra.Command) (*session, error) {
	printer := output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), GetJSONOutput(), GetVerbose())

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	file := cfg.Log.File
	if logFile != "" {
		file = logFile
	}
	logger, closer, err := logging.New(logging.Options{
		Level:  level,
		Format: cfg.Log.Format,
		File:   file,
		Stderr: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, logger: logger, printer: printer, closer: closer}
	if cfg.ConfigFile != "" {
		logger.Debug("config loaded", slog.String("file", cfg.ConfigFile))
	}
	if err := cfg.Validate(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Close flushes the log writer.
func (s *session) Close() {
	s.closer.Close()
}

func (s *session) options() []telstra.Option {
	return []telstra.Option{
		telstra.WithLogger(s.logger),
		telstra.WithObserver(s.printer.Exchange),
	}
}

// authenticate obtains the run's token using the calling tool's timeout.
func (s *session) authenticate(ctx context.Context, timeout time.Duration) (*oauth2.Token, error) {
	return telstra.Authenticate(ctx, s.cfg, timeout, s.options()...)
}

// client authenticates and returns an API client bound to the token.
func (s *session) client(ctx context.Context, timeout time.Duration) (*telstra.Client, error) {
	tok, err := s.authenticate(ctx, timeout)
	if err != nil {
		return nil, err
	}
	return telstra.NewClient(s.cfg, tok, s.options()...), nil
}
