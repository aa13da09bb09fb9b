package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/tollgate/internal/tollgate/service"
)

func newClientsCommand(reg *registry) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Manage registered OAuth clients",
	}
	cmd.AddCommand(
		newClientsAddCommand(reg),
		newClientsListCommand(reg),
		newClientsRemoveCommand(reg),
		newClientsSeedCommand(reg),
	)
	return cmd
}

func newClientsAddCommand(reg *registry) *cobra.Command {
	var secret string

	cmd := &cobra.Command{
		Use:   "add [client-id]",
		Short: "Register a client; id and secret are generated when omitted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clients, err := reg.open(cmd.Context())
			if err != nil {
				return err
			}
			defer reg.Close()

			var id string
			if len(args) == 1 {
				id = args[0]
			}

			client, plain, err := clients.AddClient(cmd.Context(), id, secret)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "client_id:     %s\n", client.ID)
			fmt.Fprintf(out, "client_secret: %s\n", plain)
			if secret == "" {
				fmt.Fprintln(cmd.ErrOrStderr(), "the secret is not stored in plain text; save it now")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "client secret (generated when empty)")
	return cmd
}

func newClientsListCommand(reg *registry) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List registered clients",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clients, err := reg.open(cmd.Context())
			if err != nil {
				return err
			}
			defer reg.Close()

			list, err := clients.ListClients(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CLIENT ID\tCREATED")
			for _, c := range list {
				fmt.Fprintf(tw, "%s\t%s\n", c.ID, c.CreatedAt.UTC().Format(time.RFC3339))
			}
			return tw.Flush()
		},
	}
}

func newClientsRemoveCommand(reg *registry) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <client-id>",
		Aliases: []string{"rm"},
		Short:   "Remove a client; tokens already issued stay valid until they expire",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clients, err := reg.open(cmd.Context())
			if err != nil {
				return err
			}
			defer reg.Close()

			if err := clients.RemoveClient(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
			return nil
		},
	}
}

func newClientsSeedCommand(reg *registry) *cobra.Command {
	var dev bool

	cmd := &cobra.Command{
		Use:   "seed [id:secret,...]",
		Short: "Insert clients into an empty registry",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var seeds []service.ClientSeed
			switch {
			case len(args) == 1:
				parsed, err := service.ParseSeedClients(args[0])
				if err != nil {
					return err
				}
				seeds = parsed
			case dev:
				seeds = service.DevSeedClients
			default:
				return fmt.Errorf("nothing to seed: pass id:secret pairs or --dev")
			}

			clients, err := reg.open(cmd.Context())
			if err != nil {
				return err
			}
			defer reg.Close()

			added, err := clients.Seed(cmd.Context(), seeds)
			if err != nil {
				return err
			}
			if added == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "registry is not empty; nothing seeded")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d clients\n", added)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dev, "dev", false, "seed the development sample clients")
	return cmd
}
