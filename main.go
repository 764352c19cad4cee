package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/quadroqm/quadro/internal/access"
	"github.com/quadroqm/quadro/internal/api"
	"github.com/quadroqm/quadro/internal/auth"
	"github.com/quadroqm/quadro/internal/cache"
	"github.com/quadroqm/quadro/internal/config"
	"github.com/quadroqm/quadro/internal/logging"
	"github.com/quadroqm/quadro/internal/services/catalog"
	"github.com/quadroqm/quadro/internal/services/task"
	"github.com/quadroqm/quadro/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := logging.Init(); err != nil {
		log.Printf("logging unavailable: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Server.BaseURL == "" {
		return fmt.Errorf("no server configured: set server.base_url in the config file or QUADRO_SERVER_URL")
	}

	sessionPath, err := auth.DefaultSessionPath()
	if err != nil {
		return fmt.Errorf("resolve session path: %w", err)
	}

	// The program pointer is filled in after construction so the forced
	// logout callback can stop the UI when a token refresh fails.
	var program *tea.Program
	authClient, err := auth.NewClient(cfg.Server.BaseURL, auth.NewFileStore(sessionPath), func() {
		if program != nil {
			program.Send(tui.SessionExpired())
		}
	})
	if err != nil {
		return fmt.Errorf("init auth: %w", err)
	}

	ctx := context.Background()
	if !authClient.HasValidSession() {
		if err := loginPrompt(ctx, authClient); err != nil {
			return err
		}
	}

	apiClient := api.NewClient(cfg.Server.BaseURL, authClient.HTTPClient())
	svc := task.NewService(apiClient)

	perms := access.NewCache(apiClient)
	if err := perms.Populate(ctx); err != nil {
		slog.Warn("failed to load permissions", "error", err)
	}

	// The snapshot cache gives the board something to draw before the
	// first fetch lands. Losing it is never fatal.
	var snapshot *cache.Snapshot
	deps := tui.Deps{
		Service: svc,
		Catalog: catalog.NewService(apiClient),
		Access:  perms,
		Config:  cfg,
		Logout: func() error {
			authClient.Logout(context.Background())
			return nil
		},
	}
	if cachePath, err := cache.DefaultPath(); err == nil {
		if snapshot, err = cache.Open(cachePath); err == nil {
			deps.Snapshot = snapshot
			if tasks, _, err := snapshot.LoadTasks(ctx); err == nil {
				deps.WarmStart = tasks
			}
			defer snapshot.Close()
		} else {
			slog.Warn("failed to open board snapshot", "error", err)
		}
	}

	program = tea.NewProgram(tui.InitialModel(deps), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	if m, ok := final.(tui.Model); ok && m.LoggedOut() {
		fmt.Println("Session expired, please log in again.")
	}
	return nil
}

// loginPrompt collects credentials until the server accepts them
func loginPrompt(ctx context.Context, authClient *auth.Client) error {
	for {
		var username, password string
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("username is required")
					}
					return nil
				}).
				Value(&username),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("password is required")
					}
					return nil
				}).
				Value(&password),
		))
		if err := form.Run(); err != nil {
			return fmt.Errorf("login aborted: %w", err)
		}

		if err := authClient.Login(ctx, username, password); err != nil {
			fmt.Fprintf(os.Stderr, "login failed: %v\n", err)
			continue
		}
		return nil
	}
}
