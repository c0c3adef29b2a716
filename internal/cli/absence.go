package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/oapi-codegen/runtime/types"
	"github.com/urfave/cli/v3"

	"github.com/hrcore/hrconsole/internal/entity"
	"github.com/hrcore/hrconsole/internal/search"
)

func (a *App) absenceCommand() *cli.Command {
	return &cli.Command{
		Name:  "absence",
		Usage: "Browse and manage absence requests",
		Commands: []*cli.Command{
			a.absenceListCommand(),
			a.absenceSubmitCommand(),
			a.absenceApproveCommand(),
			a.absenceRejectCommand(),
			a.absenceUpdateCommand(),
			a.absenceConflictsCommand(),
		},
	}
}

func absenceFilterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "user", Usage: "filter by requester id"},
		&cli.StringFlag{Name: "status", Value: search.SentinelAll, Usage: "PENDING, APPROVED, REJECTED or all"},
		&cli.StringFlag{Name: "type", Value: search.SentinelAll, Usage: "VACATION, SICK_LEAVE, PERSONAL, OTHER or all"},
		&cli.StringFlag{Name: "search", Usage: "free text over reason"},
		&cli.IntFlag{Name: "page", Value: 0},
	}
}

func absenceFilterFromFlags(cmd *cli.Command) *search.AbsenceFilter {
	filter := search.NewAbsenceFilter()
	if v := cmd.String("user"); v != "" {
		filter.SetUser(v)
	}
	filter.SetStatus(search.NormalizeSelector(cmd.String("status")))
	filter.SetType(search.NormalizeSelector(cmd.String("type")))
	if v := cmd.String("search"); v != "" {
		filter.SetSearch(v)
	}
	filter.SetPage(int(cmd.Int("page")))
	return filter
}

func (a *App) absenceListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "Search absence requests",
		Flags: absenceFilterFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := a.requireAuth(ctx); err != nil {
				return err
			}

			page, err := a.Absences.Search(ctx, absenceFilterFromFlags(cmd).Build())
			if err != nil {
				return err
			}
			a.renderAbsencePage(page)
			return nil
		},
	}
}

func (a *App) absenceSubmitCommand() *cli.Command {
	return &cli.Command{
		Name:  "submit",
		Usage: "Request a leave of absence",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "user", Usage: "requester id, defaults to the current user"},
			&cli.StringFlag{Name: "start", Required: true, Usage: "start date, YYYY-MM-DD"},
			&cli.StringFlag{Name: "end", Required: true, Usage: "end date, YYYY-MM-DD"},
			&cli.StringFlag{Name: "type", Required: true, Usage: "VACATION, SICK_LEAVE, PERSONAL or OTHER"},
			&cli.StringFlag{Name: "reason"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := a.requireAuth(ctx); err != nil {
				return err
			}

			userID := cmd.String("user")
			if userID == "" {
				user := a.Session.CurrentUser()
				if user == nil {
					return fmt.Errorf("no current user in session")
				}
				userID = user.ID
			}

			startDate, err := parseDate(cmd.String("start"), "start")
			if err != nil {
				return err
			}
			endDate, err := parseDate(cmd.String("end"), "end")
			if err != nil {
				return err
			}

			if a.Config.Features.AbsenceConflictCheck {
				a.warnAboutConflicts(ctx, userID, startDate, endDate)
			}

			created, err := a.Absences.Submit(ctx, entity.SubmitAbsenceRequest{
				UserID:    userID,
				StartDate: startDate,
				EndDate:   endDate,
				Type:      entity.AbsenceType(strings.ToUpper(cmd.String("type"))),
				Reason:    cmd.String("reason"),
			})
			if err != nil {
				return err
			}
			a.printf("Submitted request %d (%s)\n", created.ID, created.Status)
			return nil
		},
	}
}

// warnAboutConflicts surfaces overlapping requests before submission.
// The check is advisory, a failure never blocks the submit.
func (a *App) warnAboutConflicts(ctx context.Context, userID string, start, end types.Date) {
	page, err := a.Absences.CheckConflicts(ctx, entity.ConflictCheckRequest{
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil || page == nil || len(page.Content) == 0 {
		return
	}

	a.printf("Warning: %d overlapping request(s):\n", page.TotalElements)
	for _, r := range page.Content {
		a.printf("  #%d %s to %s (%s)\n", r.ID,
			r.StartDate.Format(types.DateFormat), r.EndDate.Format(types.DateFormat), r.Status)
	}
}

func (a *App) absenceApproveCommand() *cli.Command {
	return &cli.Command{
		Name:      "approve",
		Usage:     "Approve a pending request",
		ArgsUsage: "<requestId>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := a.requireAuth(ctx); err != nil {
				return err
			}
			id, err := requireIDArg(cmd, 0, "requestId")
			if err != nil {
				return err
			}

			updated, err := a.Absences.Approve(ctx, id)
			if err != nil {
				return err
			}
			a.printf("Request %d is now %s\n", updated.ID, updated.Status)
			return nil
		},
	}
}

func (a *App) absenceRejectCommand() *cli.Command {
	return &cli.Command{
		Name:      "reject",
		Usage:     "Reject a pending request",
		ArgsUsage: "<requestId>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "reason", Usage: "rejection reason shown to the requester"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := a.requireAuth(ctx); err != nil {
				return err
			}
			id, err := requireIDArg(cmd, 0, "requestId")
			if err != nil {
				return err
			}

			updated, err := a.Absences.Reject(ctx, id, cmd.String("reason"))
			if err != nil {
				return err
			}
			a.printf("Request %d is now %s\n", updated.ID, updated.Status)
			return nil
		},
	}
}

func (a *App) absenceUpdateCommand() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Manager update of status or comment",
		ArgsUsage: "<requestId>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "status", Usage: "PENDING, APPROVED or REJECTED"},
			&cli.StringFlag{Name: "comment"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := a.requireAuth(ctx); err != nil {
				return err
			}
			id, err := requireIDArg(cmd, 0, "requestId")
			if err != nil {
				return err
			}

			var update entity.ManagerAbsenceUpdate
			if v := cmd.String("status"); v != "" {
				status := entity.AbsenceStatus(strings.ToUpper(v))
				update.Status = &status
			}
			if v := cmd.String("comment"); v != "" {
				update.ManagerComment = &v
			}

			updated, err := a.Absences.ManagerUpdate(ctx, id, update)
			if err != nil {
				return err
			}
			a.printf("Request %d is now %s\n", updated.ID, updated.Status)
			return nil
		},
	}
}

func (a *App) absenceConflictsCommand() *cli.Command {
	return &cli.Command{
		Name:  "conflicts",
		Usage: "List requests overlapping a date range",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "user", Required: true},
			&cli.StringFlag{Name: "start", Required: true, Usage: "YYYY-MM-DD"},
			&cli.StringFlag{Name: "end", Required: true, Usage: "YYYY-MM-DD"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := a.requireAuth(ctx); err != nil {
				return err
			}

			startDate, err := parseDate(cmd.String("start"), "start")
			if err != nil {
				return err
			}
			endDate, err := parseDate(cmd.String("end"), "end")
			if err != nil {
				return err
			}

			page, err := a.Absences.CheckConflicts(ctx, entity.ConflictCheckRequest{
				UserID:    cmd.String("user"),
				StartDate: startDate,
				EndDate:   endDate,
			})
			if err != nil {
				return err
			}
			a.renderAbsencePage(page)
			return nil
		},
	}
}

func (a *App) renderAbsencePage(page *entity.Page[entity.AbsenceRequest]) {
	w := a.tabWriter()
	fmt.Fprintln(w, "ID\tUSER\tFROM\tTO\tTYPE\tSTATUS\tREASON")
	for _, r := range page.Content {
		reason := ""
		if r.Reason != nil {
			reason = *r.Reason
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.UserID,
			r.StartDate.Format(types.DateFormat), r.EndDate.Format(types.DateFormat),
			r.Type, statusColor(string(r.Status)), reason,
		)
	}
	w.Flush()
	a.printPageFooter(page.Page, page.TotalPages, page.TotalElements)
}
