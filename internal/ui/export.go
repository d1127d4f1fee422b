package ui

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/microcosm-cc/bluemonday"
	"github.com/xuri/excelize/v2"

	"github.com/me/backoffice/internal/api"
	"github.com/me/backoffice/internal/format"
	"github.com/me/backoffice/internal/listquery"
	"github.com/me/backoffice/internal/metrics"
	"github.com/me/backoffice/pkg/model"
)

const (
	exportPageSize = 100
	maxExportRows  = 10000
)

// sheet is one exported table.
type sheet struct {
	File   string // file name prefix and metrics label
	Name   string
	Header []string
	Rows   [][]any
}

// exporter fetches every row matching p and the extra filters.
type exporter func(ctx context.Context, ui *UI, p listquery.Params, extra url.Values) (*sheet, error)

// HandleExport serves the filtered list as an .xlsx workbook. The page and
// page size of the list are ignored.
func (ui *UI) HandleExport(export exporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, extra := listState(r, "status", "country")
		p := listquery.ParamsFor(s, ui.resolver)

		sh, err := export(r.Context(), ui, p, extra)
		if err != nil {
			fe, status := ui.failFetch(r, "export", err)
			ui.render(w, r, status, "error", map[string]any{
				"Title": "Экспорт",
				"Error": fe,
			})
			return
		}

		f, err := sh.workbook()
		if err != nil {
			ui.logger.Error("build workbook failed", "export", sh.File, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		defer f.Close()

		filename := fmt.Sprintf("%s-%s.xlsx", sh.File, ui.now().Format("2006-01-02"))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		if err := f.Write(w); err != nil {
			ui.logger.Error("write workbook failed", "export", sh.File, "error", err)
			return
		}
		metrics.RecordExport(sh.File)
		ui.logger.Info("exported", "export", sh.File, "rows", len(sh.Rows))
	}
}

func (sh *sheet) workbook() (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sh.Name); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("header style: %w", err)
	}

	sw, err := f.NewStreamWriter(sh.Name)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stream writer: %w", err)
	}
	header := make([]any, len(sh.Header))
	for i, h := range sh.Header {
		header[i] = excelize.Cell{StyleID: bold, Value: h}
	}
	if err := sw.SetRow("A1", header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, row := range sh.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		f.Close()
		return nil, fmt.Errorf("flush: %w", err)
	}
	return f, nil
}

// plainText strips all markup from reminder text for the spreadsheet.
var plainText = bluemonday.StrictPolicy()

// allPages walks a paginated endpoint from the first page until the last
// one or maxExportRows.
func allPages[T any](ctx context.Context, p listquery.Params, fetch func(context.Context, listquery.Params) ([]T, int, error)) ([]T, error) {
	p.Page, p.Limit = 1, exportPageSize
	var out []T
	for {
		items, pages, err := fetch(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", p.Page, err)
		}
		out = append(out, items...)
		if len(items) == 0 || p.Page >= pages || len(out) >= maxExportRows {
			break
		}
		p.Page++
	}
	if len(out) > maxExportRows {
		out = out[:maxExportRows]
	}
	return out, nil
}

func exportRequests(ctx context.Context, ui *UI, p listquery.Params, extra url.Values) (*sheet, error) {
	status := model.RequestStatus(extra.Get("status"))
	items, err := allPages(ctx, p, func(ctx context.Context, p listquery.Params) ([]model.Request, int, error) {
		l, err := ui.client.Requests.List(ctx, api.RequestFilter{Params: p, Status: status})
		return l.Requests, l.Pages(), err
	})
	if err != nil {
		return nil, err
	}
	sh := &sheet{
		File:   "requests",
		Name:   "Заявки",
		Header: []string{"№", "ФИО", "Телефон", "Email", "Telegram", "Код партнера", "Источник", "Статус", "Создана"},
	}
	loc := ui.now().Location()
	for _, rq := range items {
		sh.Rows = append(sh.Rows, []any{rq.ID, rq.FullName, rq.Phone, rq.Email, rq.Telegram, rq.PartnerCode, rq.Source, rq.Status.Label(), format.DateTime(rq.CreatedAt, loc)})
	}
	return sh, nil
}

func exportPayments(status model.PaymentStatus, file, name string) exporter {
	return func(ctx context.Context, ui *UI, p listquery.Params, _ url.Values) (*sheet, error) {
		items, err := allPages(ctx, p, func(ctx context.Context, p listquery.Params) ([]model.Payment, int, error) {
			l, err := ui.client.Payments.List(ctx, api.PaymentFilter{Params: p, Status: status})
			return l.Payments, l.Pages(), err
		})
		if err != nil {
			return nil, err
		}
		sh := &sheet{
			File:   file,
			Name:   name,
			Header: []string{"№", "ФИО", "Email", "Продукт", "Источник", "Сумма, ₽", "Статус", "Дата"},
		}
		loc := ui.now().Location()
		for _, pm := range items {
			sh.Rows = append(sh.Rows, []any{pm.ID, pm.FullName, pm.Email, pm.Product, pm.Source, pm.Rubles(), pm.Status.Label(), format.DateTime(pm.CreatedAt, loc)})
		}
		return sh, nil
	}
}

var (
	exportCompletedPayments = exportPayments(model.PaymentStatusCompleted, "payments", "Оплаты")
	exportPendingPayments   = exportPayments(model.PaymentStatusPending, "not-completed-payments", "Незавершённые")
)

func exportClients(ctx context.Context, ui *UI, p listquery.Params, extra url.Values) (*sheet, error) {
	sh, err := exportCompletedPayments(ctx, ui, p, extra)
	if err != nil {
		return nil, err
	}
	sh.File, sh.Name = "clients", "Клиенты"
	return sh, nil
}

func exportVisitors(ctx context.Context, ui *UI, p listquery.Params, extra url.Values) (*sheet, error) {
	country := extra.Get("country")
	items, err := allPages(ctx, p, func(ctx context.Context, p listquery.Params) ([]model.Visitor, int, error) {
		l, err := ui.client.Visitors.List(ctx, api.VisitorFilter{Params: p, Country: country})
		return l.Visitors, l.Pages(), err
	})
	if err != nil {
		return nil, err
	}
	sh := &sheet{
		File:   "visitors",
		Name:   "Посетители",
		Header: []string{"ID", "Источник", "UTM", "Страна", "Устройство", "Браузер", "Страниц", "Время на сайте", "Дата"},
	}
	loc := ui.now().Location()
	for _, v := range items {
		sh.Rows = append(sh.Rows, []any{v.ID, v.TrafficSource, v.UTMTags, v.Country, v.Device, v.Browser, v.PagesViewed, v.TimeOnSite, format.DateTime(v.CreatedAt, loc)})
	}
	return sh, nil
}

func exportPartners(ctx context.Context, ui *UI, p listquery.Params, _ url.Values) (*sheet, error) {
	l, err := ui.client.Partners.List(ctx, p)
	if err != nil {
		return nil, err
	}
	sh := &sheet{
		File:   "partners",
		Name:   "Партнеры",
		Header: []string{"№", "Имя", "Username", "Код", "Реквизиты", "Тип реквизитов", "Бонус", "Создан"},
	}
	loc := ui.now().Location()
	for _, pt := range listquery.Paginate(l.Partners, 1, maxExportRows) {
		sh.Rows = append(sh.Rows, []any{pt.ID, pt.Name, pt.Username, pt.Code, pt.Requisites, pt.RequisiteType.Label(), pt.BonusStatus.BonusLabel(), format.DateTime(pt.CreatedAt, loc)})
	}
	return sh, nil
}

func exportReminders(ctx context.Context, ui *UI, p listquery.Params, _ url.Values) (*sheet, error) {
	l, err := ui.client.Notifications.List(ctx, p)
	if err != nil {
		return nil, err
	}
	sh := &sheet{
		File:   "reminders",
		Name:   "Напоминания",
		Header: []string{"№", "Текст", "До", "Осталось", "Создано"},
	}
	now := ui.now()
	for _, n := range listquery.Paginate(l.Notifications, 1, maxExportRows) {
		text := plainText.Sanitize(n.Text)
		sh.Rows = append(sh.Rows, []any{n.ID, text, format.DateTime(n.End, now.Location()), format.TimeLeft(n.End, now), format.DateTime(n.CreatedAt, now.Location())})
	}
	return sh, nil
}
