package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hrcore/hrconsole/internal/entity"
	"github.com/hrcore/hrconsole/internal/search"
)

func (a *App) feedbackCommand() *cli.Command {
	return &cli.Command{
		Name:  "feedback",
		Usage: "Browse and manage peer feedback",
		Commands: []*cli.Command{
			a.feedbackListCommand(),
			a.feedbackForCommand(),
			a.feedbackSubmitCommand(),
			a.feedbackModerateCommand("approve"),
			a.feedbackModerateCommand("reject"),
			a.feedbackPolishCommand(),
		},
	}
}

func feedbackFilterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "user", Usage: "filter by recipient id"},
		&cli.StringFlag{Name: "from", Usage: "filter by author id"},
		&cli.StringFlag{Name: "status", Value: search.SentinelAll, Usage: "PENDING, APPROVED, REJECTED or all"},
		&cli.StringFlag{Name: "contains", Usage: "filter by content substring"},
		&cli.IntFlag{Name: "page", Value: 0},
	}
}

func feedbackFilterFromFlags(cmd *cli.Command) *search.FeedbackFilter {
	filter := search.NewFeedbackFilter()
	if v := cmd.String("user"); v != "" {
		filter.SetUser(v)
	}
	if v := cmd.String("from"); v != "" {
		filter.SetFromUser(v)
	}
	filter.SetStatus(search.NormalizeSelector(cmd.String("status")))
	if v := cmd.String("contains"); v != "" {
		filter.SetContentContains(v)
	}
	filter.SetPage(int(cmd.Int("page")))
	return filter
}

func (a *App) feedbackListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "Search feedback",
		Flags: feedbackFilterFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := a.requireAuth(ctx); err != nil {
				return err
			}

			page, err := a.Feedback.Search(ctx, feedbackFilterFromFlags(cmd).Build())
			if err != nil {
				return err
			}
			a.renderFeedbackPage(page)
			return nil
		},
	}
}

func (a *App) feedbackForCommand() *cli.Command {
	return &cli.Command{
		Name:      "for",
		Usage:     "Feedback visible on a user's profile",
		ArgsUsage: "<userId>",
		Flags:     feedbackFilterFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := a.requireAuth(ctx); err != nil {
				return err
			}
			userID, err := requireArg(cmd, 0, "userId")
			if err != nil {
				return err
			}

			page, err := a.Feedback.ForUser(ctx, userID, feedbackFilterFromFlags(cmd).Build())
			if err != nil {
				return err
			}
			a.renderFeedbackPage(page)
			return nil
		},
	}
}

func (a *App) feedbackSubmitCommand() *cli.Command {
	return &cli.Command{
		Name:  "submit",
		Usage: "Submit feedback for a colleague",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "to", Required: true, Usage: "recipient id"},
			&cli.StringFlag{Name: "content", Required: true},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := a.requireAuth(ctx); err != nil {
				return err
			}

			from := a.Session.CurrentUser()
			if from == nil {
				return fmt.Errorf("no current user in session")
			}

			feedback, err := a.Feedback.Submit(ctx, entity.SubmitFeedbackRequest{
				FromUserID: from.ID,
				ToUserID:   cmd.String("to"),
				Content:    cmd.String("content"),
			})
			if err != nil {
				return err
			}
			a.printf("Submitted feedback %d (%s)\n", feedback.ID, feedback.Status)
			return nil
		},
	}
}

func (a *App) feedbackModerateCommand(verb string) *cli.Command {
	return &cli.Command{
		Name:      verb,
		Usage:     "Moderate a pending feedback item",
		ArgsUsage: "<feedbackId>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := a.requireAuth(ctx); err != nil {
				return err
			}
			id, err := requireIDArg(cmd, 0, "feedbackId")
			if err != nil {
				return err
			}

			var feedback *entity.Feedback
			if verb == "approve" {
				feedback, err = a.Feedback.Approve(ctx, id)
			} else {
				feedback, err = a.Feedback.Reject(ctx, id)
			}
			if err != nil {
				return err
			}
			a.printf("Feedback %d is now %s\n", feedback.ID, feedback.Status)
			return nil
		},
	}
}

func (a *App) feedbackPolishCommand() *cli.Command {
	return &cli.Command{
		Name:      "polish",
		Usage:     "Request an AI-polished rendering of the feedback",
		ArgsUsage: "<feedbackId>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := a.requireAuth(ctx); err != nil {
				return err
			}
			id, err := requireIDArg(cmd, 0, "feedbackId")
			if err != nil {
				return err
			}

			feedback, err := a.Feedback.Polish(ctx, id)
			if err != nil {
				return err
			}
			if feedback.PolishedContent != nil {
				a.printf("%s\n", *feedback.PolishedContent)
			}
			return nil
		},
	}
}

func (a *App) renderFeedbackPage(page *entity.Page[entity.Feedback]) {
	w := a.tabWriter()
	fmt.Fprintln(w, "ID\tFROM\tTO\tSTATUS\tCONTENT")
	for _, f := range page.Content {
		content := f.Content
		if len(content) > 60 {
			content = content[:57] + "..."
		}
		fmt.Fprintf(w, "%d\t%s %s\t%s %s\t%s\t%s\n",
			f.ID,
			f.FromUser.FirstName, f.FromUser.LastName,
			f.ToUser.FirstName, f.ToUser.LastName,
			statusColor(string(f.Status)),
			content,
		)
	}
	w.Flush()
	a.printPageFooter(page.Page, page.TotalPages, page.TotalElements)
}
