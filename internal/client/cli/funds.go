package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Austin-Patrician/eastmoney/internal/client/models"
)

func (a *App) ListFunds(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	funds, err := a.fundService.List(ctx)
	if err != nil {
		return err
	}
	if len(funds) == 0 {
		fmt.Fprintln(a.out, "No funds on the watch list")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCODE\tNAME\tTYPE\tSCHEDULE")
	for _, f := range funds {
		schedule := "off"
		if f.ScheduleEnabled {
			schedule = strings.TrimSpace(f.ScheduleTime + " " + f.ScheduleInterval)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", f.ID, f.FundCode, f.FundName, f.FundType, schedule)
	}
	return w.Flush()
}

func (a *App) AddFund(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	var nf models.NewFund
	var err error
	if nf.FundCode, err = getSimpleText(a.reader, "Enter fund code", a.out); err != nil {
		return err
	}
	if nf.FundName, err = getSimpleText(a.reader, "Enter fund name", a.out); err != nil {
		return err
	}
	if nf.FundType, err = getSimpleText(a.reader, "Enter fund type (optional)", a.out); err != nil {
		return err
	}

	f, err := a.fundService.Add(ctx, nf)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s %s (id %s)\n", f.FundCode, f.FundName, f.ID)
	return nil
}

// DeleteFund takes the fund id from args or prompts for it.
func (a *App) DeleteFund(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	var id string
	if len(args) > 0 {
		id = args[0]
	} else {
		var err error
		if id, err = getSimpleText(a.reader, "Enter fund id", a.out); err != nil {
			return err
		}
	}

	if err := a.fundService.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted")
	return nil
}

// SearchFunds joins args into the keyword or prompts for it. Results are
// printed as the data service returned them, one per line.
func (a *App) SearchFunds(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	keyword := strings.Join(args, " ")
	if keyword == "" {
		var err error
		if keyword, err = getSimpleText(a.reader, "Enter keyword", a.out); err != nil {
			return err
		}
	}

	results, err := a.fundService.Search(ctx, keyword)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(a.out, "Nothing found")
		return nil
	}
	for _, r := range results {
		fmt.Fprintln(a.out, string(r))
	}
	return nil
}
