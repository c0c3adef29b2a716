package cli

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/oapi-codegen/runtime/types"
	"github.com/urfave/cli/v3"

	"github.com/hrcore/hrconsole/internal/authflow"
	"github.com/hrcore/hrconsole/internal/config"
	"github.com/hrcore/hrconsole/internal/entity"
	"github.com/hrcore/hrconsole/internal/permissions"
	"github.com/hrcore/hrconsole/internal/resource"
	"github.com/hrcore/hrconsole/internal/services"
	"github.com/hrcore/hrconsole/internal/session"
)

// App wires the assembled components into the command tree. Everything
// it needs is injected by the composition root in cmd.
type App struct {
	Config   *config.Config
	Session  *session.Store
	Services *services.Services
	Runtime  *resource.Runtime

	Profiles *resource.ProfileHooks
	Feedback *resource.FeedbackHooks
	Absences *resource.AbsenceHooks
	Admin    *resource.AdminHooks
	Perms    *permissions.Resolver
	Flow     *authflow.Flow

	Out io.Writer
}

// Command builds the root command.
func (a *App) Command() *cli.Command {
	return &cli.Command{
		Name:  "hrconsole",
		Usage: "Terminal client for the HR core service",
		Commands: []*cli.Command{
			a.loginCommand(),
			a.logoutCommand(),
			a.whoamiCommand(),
			a.profileCommand(),
			a.feedbackCommand(),
			a.absenceCommand(),
			a.adminCommand(),
		},
	}
}

// requireAuth revalidates the rehydrated session before the first
// protected command runs.
func (a *App) requireAuth(ctx context.Context) error {
	if err := a.Services.AuthService.Revalidate(ctx); err != nil {
		return fmt.Errorf("session is no longer valid, run `hrconsole login`")
	}
	if !a.Session.IsAuthenticated() {
		return fmt.Errorf("not logged in, run `hrconsole login`")
	}
	return nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.Out, format, args...)
}

func (a *App) tabWriter() *tabwriter.Writer {
	return tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
}

func (a *App) printPageFooter(page, totalPages int, totalElements int64) {
	a.printf("page %d of %d (%d total)\n", page+1, totalPages, totalElements)
}

func requireArg(cmd *cli.Command, index int, name string) (string, error) {
	value := cmd.Args().Get(index)
	if value == "" {
		return "", fmt.Errorf("missing %s argument", name)
	}
	return value, nil
}

func requireIDArg(cmd *cli.Command, index int, name string) (int64, error) {
	value, err := requireArg(cmd, index, name)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be numeric", name, value)
	}
	return id, nil
}

func parseDate(value, flagName string) (types.Date, error) {
	if value == "" {
		return types.Date{}, fmt.Errorf("missing --%s", flagName)
	}
	t, err := time.Parse(types.DateFormat, value)
	if err != nil {
		return types.Date{}, fmt.Errorf("invalid --%s %q: expected YYYY-MM-DD", flagName, value)
	}
	return types.Date{Time: t}, nil
}

func statusColor(status string) string {
	switch status {
	case string(entity.AbsenceApproved):
		return color.GreenString(status)
	case string(entity.AbsenceRejected):
		return color.RedString(status)
	case string(entity.AbsencePending):
		return color.YellowString(status)
	}
	return status
}

// openBrowser hands the login URL to the platform opener. Failure is
// not fatal; the URL is logged for manual use.
func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
