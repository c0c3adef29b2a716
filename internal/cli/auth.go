package cli

import (
	"context"

	"github.com/urfave/cli/v3"
)

func (a *App) loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Log in through the identity provider",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "code",
				Usage: "authorization code obtained out of band, skips the browser flow",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if code := cmd.String("code"); code != "" {
				resp, err := a.Flow.Exchange(ctx, code)
				if err != nil {
					return err
				}
				a.printf("Logged in as %s %s (%s)\n", resp.FirstName, resp.LastName, resp.Role)
				return nil
			}

			resp, err := a.Flow.Run(ctx, func(url string) error {
				a.printf("Opening %s\n", url)
				return openBrowser(url)
			})
			if err != nil {
				return err
			}
			a.printf("Logged in as %s %s (%s)\n", resp.FirstName, resp.LastName, resp.Role)
			return nil
		},
	}
}

func (a *App) logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "End the session locally and on the server",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logoutURL, err := a.Services.AuthService.Logout(ctx)
			if err != nil {
				return err
			}
			a.printf("Logged out.\n")
			if logoutURL != "" {
				a.printf("Complete provider logout at %s\n", logoutURL)
			}
			return nil
		},
	}
}

func (a *App) whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "Show the authenticated identity",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := a.requireAuth(ctx); err != nil {
				return err
			}

			user, err := a.Services.AuthService.Me(ctx)
			if err != nil {
				return err
			}
			a.printf("%s <%s>\nrole: %s\n", user.FullName(), user.Email, user.Role)
			return nil
		},
	}
}
