package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/me/backoffice/internal/api"
	"github.com/me/backoffice/internal/listquery"
	"github.com/me/backoffice/internal/period"
	"github.com/me/backoffice/pkg/model"
)

// browseDebounce is the search debounce of the browse loop.
var browseDebounce = listquery.DebounceDelay

const browseHelp = `Type text to search. Commands:
  :period today|yesterday|week|month|none   toggle a period
  :month YYYY-MM                           pick a month
  :size 10|20|50|100                       rows per page
  :page N, :next, :prev                    move between pages
  :filter VALUE                            set the status or country filter
  :r                                       fetch again
  :q                                       quit`

func newBrowseCmd() *cobra.Command {
	var (
		lf     listFlags
		filter string
	)
	names := make([]string, 0, len(entities))
	for _, e := range entities {
		names = append(names, e.name)
	}
	cmd := &cobra.Command{
		Use:       "browse <entity>",
		Short:     "Browse a list interactively",
		Long:      "Browse " + strings.Join(names, ", ") + " with a live search.\n\n" + browseHelp,
		Args:      cobra.ExactArgs(1),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := lookupEntity(args[0])
			if err != nil {
				return err
			}
			c, err := lf.controller(listquery.WithDebounceDelay(browseDebounce))
			if err != nil {
				return err
			}
			defer c.Close()

			b := &browser{entity: e, c: c, filter: filter}
			return b.run(cmd.Context(), cmd.InOrStdin())
		},
	}
	lf.register(cmd)
	cmd.Flags().StringVar(&filter, "filter", "", "Status for requests and payments, country for visitors")
	return cmd
}

// browser is one interactive browse session.
type browser struct {
	entity entity
	c      *listquery.Controller
	filter string
	pages  int
}

// run reads lines from in until :q or end of input. Search text is fed to
// the controller and fetched once the debounced value commits; a search
// still pending at end of input is committed before returning.
func (b *browser) run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	b.fetch(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case text := <-b.c.Committed():
			if b.c.CommitSearch(text) {
				b.fetch(ctx)
			}
		case line, ok := <-lines:
			if !ok {
				if s := b.c.State(); s.SearchText != s.DebouncedSearch && b.c.CommitSearch(s.SearchText) {
					b.fetch(ctx)
				}
				return nil
			}
			if !strings.HasPrefix(line, ":") {
				b.c.OnSearchChange(line)
				continue
			}
			refetch, quit, err := b.command(line)
			switch {
			case quit:
				return nil
			case err != nil:
				out.failure("%v", err)
			case refetch:
				b.fetch(ctx)
			}
		}
	}
}

// command applies one ":" command. It reports whether the list must be
// fetched again and whether the session ends.
func (b *browser) command(line string) (refetch, quit bool, err error) {
	name, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "q", "quit":
		return false, true, nil
	case "r":
		return true, false, nil
	case "help", "h":
		out.println(browseHelp)
		return false, false, nil
	case "period":
		p, err := parsePeriod(arg)
		if err != nil {
			return false, false, err
		}
		return b.c.OnPeriodChange(p), false, nil
	case "month":
		m, err := period.ParseMonth(arg)
		if err != nil {
			return false, false, err
		}
		return b.c.OnMonthSelect(m), false, nil
	case "size":
		n, err := strconv.Atoi(arg)
		if err != nil || !listquery.ValidPageSize(n) {
			return false, false, fmt.Errorf("page size must be one of %v", listquery.PageSizes)
		}
		return b.c.OnPageSizeChange(n), false, nil
	case "page":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			return false, false, fmt.Errorf("invalid page %q", arg)
		}
		return b.c.OnPageChange(n), false, nil
	case "next":
		page := b.c.State().Page
		if b.pages > 0 && page >= b.pages {
			return false, false, fmt.Errorf("already on the last page")
		}
		return b.c.OnPageChange(page + 1), false, nil
	case "prev":
		page := b.c.State().Page
		if page <= 1 {
			return false, false, fmt.Errorf("already on the first page")
		}
		return b.c.OnPageChange(page - 1), false, nil
	case "filter":
		if b.entity.filterFlag == "" {
			return false, false, fmt.Errorf("%s have no filter", b.entity.name)
		}
		changed := arg != b.filter
		b.filter = arg
		if changed {
			b.c.OnPageChange(1)
		}
		return changed, false, nil
	default:
		return false, false, fmt.Errorf("unknown command %q, :help lists commands", line)
	}
}

func (b *browser) fetch(ctx context.Context) {
	p := b.c.Params()
	lp, err := b.entity.fetch(ctx, p, b.filter)
	if err != nil {
		logger.Debug("browse fetch failed", "entity", b.entity.name, "error", err)
		if !upstream(err) {
			out.failure("%v", err)
			return
		}
		for _, msg := range api.Messages(err) {
			out.failure("%s", msg)
		}
		if api.IsRetryable(err) {
			out.println("Type :r to retry.")
		}
		return
	}
	b.pages = lp.pages
	out.println(out.paint(color.Bold, b.title()))
	if err := lp.print(); err != nil {
		out.failure("%v", err)
	}
}

// upstream reports whether err came from the API rather than from local
// input checks.
func upstream(err error) bool {
	var ae *model.APIError
	var fe *api.FetchError
	return errors.As(err, &ae) || errors.As(err, &fe)
}

// title describes the state being shown.
func (b *browser) title() string {
	s := b.c.State()
	parts := []string{b.entity.name}
	if q := strings.TrimSpace(s.DebouncedSearch); q != "" {
		parts = append(parts, fmt.Sprintf("search %q", q))
	}
	switch {
	case s.Month != nil:
		parts = append(parts, "month "+s.Month.String())
	case s.Period != period.None:
		parts = append(parts, "period "+s.Period.String())
	}
	if b.filter != "" {
		parts = append(parts, b.entity.filterFlag+" "+b.filter)
	}
	parts = append(parts, fmt.Sprintf("page %d, %d per page", s.Page, s.PageSize))
	return "== " + strings.Join(parts, " | ") + " =="
}
