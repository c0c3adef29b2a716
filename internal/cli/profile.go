package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hrcore/hrconsole/internal/entity"
	"github.com/hrcore/hrconsole/internal/search"
)

func (a *App) profileCommand() *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "Browse and manage employee profiles",
		Commands: []*cli.Command{
			a.profileListCommand(),
			a.profileBrowseCommand(),
			a.profileGetCommand(),
			a.profileCreateCommand(),
			a.profileUpdateCommand(),
			a.profileDeleteCommand(),
			a.profileReportsCommand(),
			a.profileManagerCommand(),
		},
	}
}

func profileFilterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "search", Usage: "free text over name and email"},
		&cli.StringFlag{Name: "role", Value: search.SentinelAll, Usage: "EMPLOYEE, MANAGER, SUPER_ADMIN or all"},
		&cli.StringFlag{Name: "manager", Usage: "filter by manager id"},
		&cli.StringFlag{Name: "department", Usage: "filter by department"},
		&cli.IntFlag{Name: "page", Value: 0},
		&cli.StringFlag{Name: "sort", Usage: "sort field, defaults to lastName"},
		&cli.StringFlag{Name: "dir", Usage: "ASC or DESC"},
	}
}

func profileFilterFromFlags(cmd *cli.Command) *search.ProfileFilter {
	filter := search.NewProfileFilter()
	if v := cmd.String("search"); v != "" {
		filter.SetSearch(v)
	}
	filter.SetRole(search.NormalizeSelector(cmd.String("role")))
	if v := cmd.String("manager"); v != "" {
		filter.SetManager(v)
	}
	if v := cmd.String("department"); v != "" {
		filter.SetDepartment(v)
	}
	if v := cmd.String("sort"); v != "" {
		filter.SetSort(v, strings.ToUpper(cmd.String("dir")))
	}
	// Page last so flag-driven filters do not reset it back to zero.
	filter.SetPage(int(cmd.Int("page")))
	return filter
}

func (a *App) profileListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "Search profiles",
		Flags: profileFilterFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := a.requireAuth(ctx); err != nil {
				return err
			}

			page, err := a.Profiles.Search(ctx, profileFilterFromFlags(cmd).Build())
			if err != nil {
				return err
			}
			a.renderUserPage(page)
			return nil
		},
	}
}

// profileBrowseCommand is the live-search analog: each input line updates
// the free-text filter and the actual request fires only after typing
// pauses.
func (a *App) profileBrowseCommand() *cli.Command {
	return &cli.Command{
		Name:  "browse",
		Usage: "Interactive profile search, one query per input line",
		Flags: profileFilterFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := a.requireAuth(ctx); err != nil {
				return err
			}

			filter := profileFilterFromFlags(cmd)
			runSearch := func(req entity.ProfileSearchRequest) {
				page, err := a.Profiles.Search(ctx, req)
				if err != nil {
					a.printf("search failed: %v\n", err)
					return
				}
				a.renderUserPage(page)
			}

			debouncer := search.NewDebouncer(search.DefaultDebounce, runSearch)
			defer debouncer.Stop()

			// The filter stays on this goroutine; the debouncer only ever
			// sees the built request snapshot.
			a.printf("Type to search, empty line to quit.\n")
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					break
				}
				filter.SetSearch(line)
				debouncer.Trigger(filter.Build())
			}
			debouncer.Flush()
			return scanner.Err()
		},
	}
}

func (a *App) profileGetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Show one profile with permissions and manager",
		ArgsUsage: "<userId>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := a.requireAuth(ctx); err != nil {
				return err
			}
			userID, err := requireArg(cmd, 0, "userId")
			if err != nil {
				return err
			}

			user, err := a.Profiles.Get(ctx, userID)
			if err != nil {
				return err
			}
			a.renderUser(user)

			if manager, err := a.Profiles.ManagerOf(ctx, userID); err == nil && manager != nil {
				a.printf("manager: %s <%s>\n", manager.FullName(), manager.Email)
			}

			perms := a.Perms.For(ctx, userID)
			a.printf("can edit: %t, can delete: %t, can give feedback: %t, can request absence: %t\n",
				perms.CanEdit, perms.CanDelete, perms.CanGiveFeedback, perms.CanRequestAbsence)
			return nil
		},
	}
}

func (a *App) profileCreateCommand() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Create a profile",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "first-name", Required: true},
			&cli.StringFlag{Name: "last-name", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
			&cli.StringFlag{Name: "phone"},
			&cli.StringFlag{Name: "department"},
			&cli.StringFlag{Name: "role"},
			&cli.StringFlag{Name: "manager"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := a.requireAuth(ctx); err != nil {
				return err
			}

			req := entity.CreateProfileRequest{
				Email:     cmd.String("email"),
				FirstName: cmd.String("first-name"),
				LastName:  cmd.String("last-name"),
				Password:  cmd.String("password"),
			}
			if v := cmd.String("phone"); v != "" {
				req.Phone = &v
			}
			if v := cmd.String("department"); v != "" {
				req.Department = &v
			}
			if v := cmd.String("role"); v != "" {
				role := entity.Role(strings.ToUpper(v))
				if !role.Valid() {
					return fmt.Errorf("invalid role %q", v)
				}
				req.Role = &role
			}
			if v := cmd.String("manager"); v != "" {
				req.ManagerID = &v
			}

			user, err := a.Profiles.Create(ctx, req)
			if err != nil {
				return err
			}
			a.printf("Created %s (%s)\n", user.FullName(), user.ID)
			return nil
		},
	}
}

func (a *App) profileUpdateCommand() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Update profile fields, unset flags stay untouched",
		ArgsUsage: "<userId>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email"},
			&cli.StringFlag{Name: "first-name"},
			&cli.StringFlag{Name: "last-name"},
			&cli.StringFlag{Name: "phone"},
			&cli.StringFlag{Name: "department"},
			&cli.StringFlag{Name: "role"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := a.requireAuth(ctx); err != nil {
				return err
			}
			userID, err := requireArg(cmd, 0, "userId")
			if err != nil {
				return err
			}

			var req entity.UpdateProfileRequest
			if v := cmd.String("email"); v != "" {
				req.Email = &v
			}
			if v := cmd.String("first-name"); v != "" {
				req.FirstName = &v
			}
			if v := cmd.String("last-name"); v != "" {
				req.LastName = &v
			}
			if v := cmd.String("phone"); v != "" {
				req.Phone = &v
			}
			if v := cmd.String("department"); v != "" {
				req.Department = &v
			}
			if v := cmd.String("role"); v != "" {
				role := entity.Role(strings.ToUpper(v))
				if !role.Valid() {
					return fmt.Errorf("invalid role %q", v)
				}
				req.Role = &role
			}

			user, err := a.Profiles.Update(ctx, userID, req)
			if err != nil {
				return err
			}
			a.printf("Updated %s\n", user.FullName())
			return nil
		},
	}
}

func (a *App) profileDeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a profile",
		ArgsUsage: "<userId>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := a.requireAuth(ctx); err != nil {
				return err
			}
			userID, err := requireArg(cmd, 0, "userId")
			if err != nil {
				return err
			}
			if err := a.Profiles.Delete(ctx, userID); err != nil {
				return err
			}
			a.printf("Deleted %s\n", userID)
			return nil
		},
	}
}

func (a *App) profileReportsCommand() *cli.Command {
	return &cli.Command{
		Name:      "reports",
		Usage:     "List direct reports of a manager",
		ArgsUsage: "<userId>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := a.requireAuth(ctx); err != nil {
				return err
			}
			userID, err := requireArg(cmd, 0, "userId")
			if err != nil {
				return err
			}

			users, err := a.Profiles.DirectReports(ctx, userID)
			if err != nil {
				return err
			}
			a.renderUsers(users)
			return nil
		},
	}
}

func (a *App) profileManagerCommand() *cli.Command {
	return &cli.Command{
		Name:  "manager",
		Usage: "Inspect or change a profile's manager",
		Commands: []*cli.Command{
			{
				Name:      "get",
				ArgsUsage: "<userId>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if err := a.requireAuth(ctx); err != nil {
						return err
					}
					userID, err := requireArg(cmd, 0, "userId")
					if err != nil {
						return err
					}

					manager, err := a.Profiles.ManagerOf(ctx, userID)
					if err != nil {
						return err
					}
					if manager == nil {
						a.printf("no manager assigned\n")
						return nil
					}
					a.printf("%s <%s> (%s)\n", manager.FullName(), manager.Email, manager.ID)
					return nil
				},
			},
			{
				Name:      "set",
				ArgsUsage: "<userId> <managerId>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if err := a.requireAuth(ctx); err != nil {
						return err
					}
					userID, err := requireArg(cmd, 0, "userId")
					if err != nil {
						return err
					}
					managerID, err := requireArg(cmd, 1, "managerId")
					if err != nil {
						return err
					}
					if err := a.Profiles.AssignManager(ctx, userID, managerID); err != nil {
						return err
					}
					a.printf("Manager assigned\n")
					return nil
				},
			},
			{
				Name:      "remove",
				ArgsUsage: "<userId>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if err := a.requireAuth(ctx); err != nil {
						return err
					}
					userID, err := requireArg(cmd, 0, "userId")
					if err != nil {
						return err
					}
					if err := a.Profiles.RemoveManager(ctx, userID); err != nil {
						return err
					}
					a.printf("Manager removed\n")
					return nil
				},
			},
			{
				Name:  "candidates",
				Usage: "List users who can be assigned as manager",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if err := a.requireAuth(ctx); err != nil {
						return err
					}
					users, err := a.Profiles.AvailableManagers(ctx)
					if err != nil {
						return err
					}
					a.renderUsers(users)
					return nil
				},
			},
		},
	}
}

func (a *App) renderUserPage(page *entity.Page[entity.User]) {
	a.renderUsers(page.Content)
	a.printPageFooter(page.Page, page.TotalPages, page.TotalElements)
}

func (a *App) renderUsers(users []entity.User) {
	w := a.tabWriter()
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tDEPARTMENT")
	for _, u := range users {
		department := ""
		if u.Department != nil {
			department = *u.Department
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.FullName(), u.Email, u.Role, department)
	}
	w.Flush()
}

func (a *App) renderUser(u *entity.User) {
	a.printf("%s <%s>\nid: %s\nrole: %s\n", u.FullName(), u.Email, u.ID, u.Role)
	if u.Department != nil {
		a.printf("department: %s\n", *u.Department)
	}
	if u.Phone != nil {
		a.printf("phone: %s\n", *u.Phone)
	}
}
