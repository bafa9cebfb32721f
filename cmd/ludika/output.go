package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/TheManchineel/ludika-go/config"
	"github.com/TheManchineel/ludika-go/internal/domain/model"
)

// printResult renders data according to the selected output format. In JSON
// mode the configured JMESPath expression is applied first; table mode falls
// back to JSON for types without a dedicated renderer.
func (a *app) printResult(data any, table func(io.Writer) error) error {
	if a.format == config.OutputFormatTable && table != nil {
		return table(os.Stdout)
	}
	return a.printJSON(data)
}

func (a *app) printJSON(data any) error {
	// Round-trip through generic JSON so the projection sees the wire shape,
	// not Go struct fields.
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	var generic any
	if err = json.Unmarshal(raw, &generic); err != nil {
		return fmt.Errorf("decode output: %w", err)
	}

	projected, err := a.eval.Project(a.queryExpr, generic)
	if err != nil {
		return fmt.Errorf("apply query: %w", err)
	}

	out, err := json.MarshalIndent(projected, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return writeln(os.Stdout, string(out))
}

func gamesTable(games []model.Game, total int, serverPaginated bool) func(io.Writer) error {
	return func(out io.Writer) error {
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		if err := writeln(w, "ID\tNAME\tSTATUS\tTAGS\tURL"); err != nil {
			return err
		}
		for _, g := range games {
			names := make([]string, 0, len(g.Tags))
			for _, tag := range g.Tags {
				names = append(names, tag.Name)
			}
			if err := writef(w, "%d\t%s\t%s\t%s\t%s\n",
				g.ID, g.Name, g.Status, strings.Join(names, ","), g.URL); err != nil {
				return err
			}
		}
		if err := w.Flush(); err != nil {
			return err
		}
		if serverPaginated && total > len(games) {
			return writef(out, "\nShowing %d of %d games\n", len(games), total)
		}
		return nil
	}
}

func gameDetailTable(g *model.Game) func(io.Writer) error {
	return func(out io.Writer) error {
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		if err := writef(w, "ID\t%d\n", g.ID); err != nil {
			return err
		}
		if err := writef(w, "Name\t%s\n", g.Name); err != nil {
			return err
		}
		if err := writef(w, "Status\t%s\n", g.Status); err != nil {
			return err
		}
		if err := writef(w, "URL\t%s\n", g.URL); err != nil {
			return err
		}
		if g.ProposingUser != nil {
			if err := writef(w, "Proposed by\t%s\n", g.ProposingUser); err != nil {
				return err
			}
		}
		names := make([]string, 0, len(g.Tags))
		for _, tag := range g.Tags {
			names = append(names, tag.Name)
		}
		if err := writef(w, "Tags\t%s\n", strings.Join(names, ",")); err != nil {
			return err
		}
		if err := writef(w, "Images\t%d\n", len(g.Images)); err != nil {
			return err
		}
		if err := w.Flush(); err != nil {
			return err
		}
		if g.Description != "" {
			return writef(out, "\n%s\n", g.Description)
		}
		return nil
	}
}

func gameWithReviewsTable(g *model.GameWithReviews) func(io.Writer) error {
	return func(out io.Writer) error {
		if err := gameDetailTable(&g.Game)(out); err != nil {
			return err
		}
		if len(g.Reviews) == 0 {
			return writeln(out, "\nNo reviews yet.")
		}
		if err := writef(out, "\nReviews (%d):\n", len(g.Reviews)); err != nil {
			return err
		}
		for i := range g.Reviews {
			if err := writeln(out); err != nil {
				return err
			}
			if err := reviewTable(&g.Reviews[i])(out); err != nil {
				return err
			}
		}
		return nil
	}
}

func tagsTable(tags []model.Tag) func(io.Writer) error {
	return func(out io.Writer) error {
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		if err := writeln(w, "ID\tNAME\tICON"); err != nil {
			return err
		}
		for _, tag := range tags {
			icon := ""
			if tag.Icon != nil {
				icon = *tag.Icon
			}
			if err := writef(w, "%d\t%s\t%s\n", tag.ID, tag.Name, icon); err != nil {
				return err
			}
		}
		return w.Flush()
	}
}

func criteriaTable(criteria []model.ReviewCriterion) func(io.Writer) error {
	return func(out io.Writer) error {
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		if err := writeln(w, "ID\tNAME\tDESCRIPTION"); err != nil {
			return err
		}
		for _, c := range criteria {
			desc := ""
			if c.Description != nil {
				desc = *c.Description
			}
			if err := writef(w, "%d\t%s\t%s\n", c.ID, c.Name, desc); err != nil {
				return err
			}
		}
		return w.Flush()
	}
}

func reviewTable(r *model.Review) func(io.Writer) error {
	return func(out io.Writer) error {
		if err := writef(out, "Review %d by %s (%s)\n",
			r.ID, r.Author.VisibleName, r.UpdatedAt.Format(time.DateOnly)); err != nil {
			return err
		}
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		for _, rating := range r.Ratings {
			if err := writef(w, "  %s\t%d/5\n", rating.Criterion.Name, rating.Score); err != nil {
				return err
			}
		}
		if err := w.Flush(); err != nil {
			return err
		}
		if r.ReviewText != nil && *r.ReviewText != "" {
			return writef(out, "\n%s\n", *r.ReviewText)
		}
		return nil
	}
}

func usersTable(users []model.User) func(io.Writer) error {
	return func(out io.Writer) error {
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		if err := writeln(w, "UUID\tNAME\tROLE\tENABLED\tLAST LOGIN"); err != nil {
			return err
		}
		for _, u := range users {
			lastLogin := "never"
			if u.LastLogin != nil {
				lastLogin = u.LastLogin.Format(time.DateTime)
			}
			if err := writef(w, "%s\t%s\t%s\t%t\t%s\n",
				u.UUID, u.VisibleName, u.Role, u.Enabled, lastLogin); err != nil {
				return err
			}
		}
		return w.Flush()
	}
}

func userDetailTable(u *model.User) func(io.Writer) error {
	return usersTable([]model.User{*u})
}

// confirm aborts unless the user agreed, either via --yes or interactively.
func confirm(yes bool, action string) error {
	if yes {
		return nil
	}
	if err := writef(os.Stderr, "%s. Type \"yes\" to continue: ", action); err != nil {
		return err
	}
	reader := bufio.NewReader(os.Stdin)
	resp, err := reader.ReadString('\n')
	if err != nil {
		return errors.New("aborted")
	}
	if strings.TrimSpace(resp) != "yes" {
		return errors.New("aborted")
	}
	return nil
}

// promptSecret reads one line from stdin without echoing a flag value in shell
// history. Used when a password flag is left empty.
func promptSecret(label string) (string, error) {
	if err := writef(os.Stderr, "%s: ", label); err != nil {
		return "", err
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", fmt.Errorf("%s is required", strings.ToLower(label))
	}
	return line, nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	if len(args) == 0 {
		_, err := fmt.Fprintln(w)
		return err
	}
	_, err := fmt.Fprintln(w, args...)
	return err
}
