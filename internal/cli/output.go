package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"gopkg.in/yaml.v3"

	"github.com/me/backoffice/pkg/model"
)

// printer writes command results in the configured format.
type printer struct {
	w      io.Writer
	format string
	colors bool
}

func newPrinter(w io.Writer, format, colorMode string) (*printer, error) {
	colors, err := resolveColors(colorMode)
	if err != nil {
		return nil, err
	}
	return &printer{w: w, format: format, colors: colors}, nil
}

// resolveColors decides whether to colorize from the --color mode. In auto
// mode NO_COLOR, TERM=dumb and a non-terminal stdout disable colors.
func resolveColors(mode string) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false, nil
		}
		if os.Getenv("TERM") == "dumb" {
			return false, nil
		}
		return !color.NoColor, nil
	default:
		return false, fmt.Errorf("invalid color mode %q: must be auto, always, or never", mode)
	}
}

// structured reports whether results are printed as json or yaml.
func (p *printer) structured() bool {
	return p.format == "json" || p.format == "yaml"
}

// emit writes v as json or yaml. It must only be called when structured.
func (p *printer) emit(v any) error {
	switch p.format {
	case "json":
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported output format %q", p.format)
}

// table writes v in the structured formats, or header and rows as a table.
func (p *printer) table(v any, header []string, rows [][]string) error {
	if p.structured() {
		return p.emit(v)
	}
	if len(rows) == 0 {
		p.println(p.paint(color.Faint, "No results."))
		return nil
	}
	t := tablewriter.NewTable(p.w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)
	t.Header(header)
	if err := t.Bulk(rows); err != nil {
		return fmt.Errorf("table rows: %w", err)
	}
	return t.Render()
}

// fields writes v in the structured formats, or label/value pairs.
func (p *printer) fields(v any, pairs [][2]string) error {
	if p.structured() {
		return p.emit(v)
	}
	width := 0
	for _, kv := range pairs {
		width = max(width, len([]rune(kv[0])))
	}
	for _, kv := range pairs {
		label := fmt.Sprintf("%-*s", width+1, kv[0]+":")
		p.println(p.paint(color.Bold, label) + " " + kv[1])
	}
	return nil
}

// footer prints the paging summary under a table.
func (p *printer) footer(shown, total, page, pages int) {
	if p.structured() {
		return
	}
	p.println(p.paint(color.Faint, fmt.Sprintf("\n%d of %s shown, page %d of %d",
		shown, humanize.Comma(int64(total)), page, max(pages, 1))))
}

func (p *printer) success(format string, args ...any) {
	p.println(p.paint(color.FgGreen, fmt.Sprintf(format, args...)))
}

func (p *printer) failure(format string, args ...any) {
	p.println(p.paint(color.FgRed, fmt.Sprintf(format, args...)))
}

func (p *printer) println(s string) {
	fmt.Fprintln(p.w, s)
}

func (p *printer) paint(attr color.Attribute, s string) string {
	if !p.colors {
		return s
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(s)
}

func (p *printer) requestStatus(s model.RequestStatus) string {
	switch s {
	case model.RequestStatusApproved:
		return p.paint(color.FgGreen, string(s))
	case model.RequestStatusRejected:
		return p.paint(color.FgRed, string(s))
	case model.RequestStatusInProgress:
		return p.paint(color.FgYellow, string(s))
	default:
		return p.paint(color.FgCyan, string(s))
	}
}

func (p *printer) paymentStatus(s model.PaymentStatus) string {
	if s == model.PaymentStatusCompleted {
		return p.paint(color.FgGreen, string(s))
	}
	return p.paint(color.FgYellow, string(s))
}

// ago renders t relative to the CLI clock.
func ago(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.RelTime(t, clock.Now(), "ago", "from now")
}
