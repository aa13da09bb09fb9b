// Package cli implements tollgatectl, the administration tool for the
// client registry. It opens the same SQLite database and pepper file as the
// server.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/app"
	"github.com/aussiebroadwan/tollgate/internal/tollgate/service"
	"github.com/aussiebroadwan/tollgate/pkg/cryptox"
)

// registry is opened lazily by commands that need it.
type registry struct {
	cfg   *app.Config
	close func() error
}

func (r *registry) open(ctx context.Context) (*service.ClientService, error) {
	if err := cryptox.LoadPepper(r.cfg.PepperFile); err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}
	db, err := app.OpenDatabase(ctx, r.cfg.DatabaseFile)
	if err != nil {
		return nil, err
	}
	r.close = db.Close
	return &service.ClientService{Clients: db}, nil
}

func (r *registry) Close() {
	if r.close != nil {
		_ = r.close()
		r.close = nil
	}
}

// NewRootCommand builds the tollgatectl command tree. Flags override the
// matching values of cfg.
func NewRootCommand(cfg app.Config) *cobra.Command {
	reg := &registry{cfg: &cfg}

	root := &cobra.Command{
		Use:          "tollgatectl",
		Short:        "Administer the tollgate client registry",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&cfg.DatabaseFile, "database", cfg.DatabaseFile, "path to the SQLite database (AUTH_DATABASE_FILE)")
	root.PersistentFlags().StringVar(&cfg.PepperFile, "pepper", cfg.PepperFile, "path to the pepper file (AUTH_PEPPER_FILE)")

	root.AddCommand(newClientsCommand(reg))
	return root
}
