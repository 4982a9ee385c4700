package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/boddenberg/citadel-bfa-go/internal/card"
	"github.com/boddenberg/citadel-bfa-go/internal/config"
	"github.com/boddenberg/citadel-bfa-go/internal/domain"
	"github.com/boddenberg/citadel-bfa-go/internal/editor"
	"github.com/boddenberg/citadel-bfa-go/internal/handler"
	"github.com/boddenberg/citadel-bfa-go/internal/infra/observability"
	"github.com/boddenberg/citadel-bfa-go/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCardCmd() *cobra.Command {
	var (
		userID  string
		logFile string
	)
	cmd := &cobra.Command{
		Use:   "card <company-uuid>",
		Short: "Open the company card in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := uuid.Validate(args[0]); err != nil {
				return fmt.Errorf("company id must be a uuid: %w", err)
			}
			if userID == "" {
				userID = os.Getenv("CITADEL_USER_ID")
			}
			if userID == "" {
				return fmt.Errorf("no user: pass --user or set CITADEL_USER_ID")
			}
			logger, err := fileLogger(logFile)
			if err != nil {
				return err
			}
			defer logger.Sync()
			return runCard(cmd.Context(), args[0], &domain.Session{UserID: userID}, logger)
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "CRM user id acting on the card (default $CITADEL_USER_ID)")
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file; logging is off when empty")
	return cmd
}

// fileLogger keeps log output off the terminal the TUI draws on.
func fileLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return logger, nil
}

func runCard(ctx context.Context, companyID string, sess *domain.Session, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	metrics := observability.NewMetrics()
	api := newCRMClient(cfg, metrics, logger)
	users, err := newUserCache(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer users.Close()

	svc := handler.NewServices(api, users, metrics, logger)

	res := svc.Companies.Page(ctx, sess, companyID)
	if res.Kind != domain.KindNone {
		return fmt.Errorf("load company %s: %s", companyID, res.Kind)
	}
	if res.Value == nil || res.Value.Company == nil {
		return fmt.Errorf("load company %s: empty response", companyID)
	}

	toasts := editor.NewRecorder(logger)
	c := card.NewCompanyCard(sess, *res.Value, card.Deps{
		Companies:     svc.Companies,
		Opportunities: svc.Opportunities,
		People:        svc.People,
		Notifier:      toasts,
		Logger:        logger,
		Metrics:       metrics,
	})

	p := tea.NewProgram(tui.NewModel(ctx, c, toasts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run card: %w", err)
	}
	return nil
}
