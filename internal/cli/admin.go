package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"
)

func (a *App) adminCommand() *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "Session administration (SUPER_ADMIN only)",
		Commands: []*cli.Command{
			{
				Name:  "sessions",
				Usage: "List active user sessions",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if err := a.requireAdmin(ctx); err != nil {
						return err
					}

					sessions, err := a.Admin.Sessions(ctx)
					if err != nil {
						return err
					}

					w := a.tabWriter()
					fmt.Fprintln(w, "TOKEN\tUSER\tEMAIL\tISSUED\tEXPIRES\tACTIVE")
					for _, s := range sessions {
						fmt.Fprintf(w, "%d\t%s %s\t%s\t%s\t%s\t%t\n",
							s.TokenID, s.FirstName, s.LastName, s.Email,
							s.IssuedAt.Format(time.RFC3339), s.ExpiresAt.Format(time.RFC3339), s.IsActive)
					}
					w.Flush()
					return nil
				},
			},
			{
				Name:      "logout-session",
				Usage:     "Force-terminate one session",
				ArgsUsage: "<tokenId>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if err := a.requireAdmin(ctx); err != nil {
						return err
					}
					tokenID, err := requireIDArg(cmd, 0, "tokenId")
					if err != nil {
						return err
					}
					if err := a.Admin.ForceLogout(ctx, tokenID); err != nil {
						return err
					}
					a.printf("Session %d terminated\n", tokenID)
					return nil
				},
			},
			{
				Name:  "cleanup",
				Usage: "Remove expired sessions",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if err := a.requireAdmin(ctx); err != nil {
						return err
					}
					if err := a.Admin.CleanupExpired(ctx); err != nil {
						return err
					}
					a.printf("Expired sessions removed\n")
					return nil
				},
			},
		},
	}
}

// requireAdmin hides the admin surface from non-admins; the server is
// still the authority on every call.
func (a *App) requireAdmin(ctx context.Context) error {
	if err := a.requireAuth(ctx); err != nil {
		return err
	}
	if !a.Perms.IsSuperAdmin() {
		return fmt.Errorf("admin commands require the SUPER_ADMIN role")
	}
	return nil
}
