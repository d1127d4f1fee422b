package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/microcosm-cc/bluemonday"

	"github.com/me/backoffice/internal/api"
	"github.com/me/backoffice/internal/format"
	"github.com/me/backoffice/internal/listquery"
	"github.com/me/backoffice/pkg/model"
)

// listPage is one fetched page ready for printing.
type listPage struct {
	data   any
	header []string
	rows   [][]string
	total  int
	page   int
	pages  int
}

func (lp listPage) print() error {
	if err := out.table(lp.data, lp.header, lp.rows); err != nil {
		return err
	}
	if len(lp.rows) > 0 {
		out.footer(len(lp.rows), lp.total, lp.page, lp.pages)
	}
	return nil
}

// entity is a listable resource. filter is the value of the entity's extra
// filter flag, if it has one.
type entity struct {
	name       string
	filterFlag string
	filterHelp string
	fetch      func(ctx context.Context, p listquery.Params, filter string) (listPage, error)
}

var entities = []entity{
	{
		name:       "requests",
		filterFlag: "status",
		filterHelp: "Status (PENDING, IN_PROGRESS, APPROVED, REJECTED)",
		fetch:      fetchRequests,
	},
	{
		name:       "payments",
		filterFlag: "status",
		filterHelp: "Status (PENDING, COMPLETED)",
		fetch:      fetchPayments,
	},
	{
		name:       "visitors",
		filterFlag: "country",
		filterHelp: "Country",
		fetch:      fetchVisitors,
	},
	{name: "partners", fetch: fetchPartners},
	{name: "reminders", fetch: fetchReminders},
}

func lookupEntity(name string) (entity, error) {
	for _, e := range entities {
		if e.name == name {
			return e, nil
		}
	}
	return entity{}, fmt.Errorf("unknown entity %q", name)
}

func fetchRequests(ctx context.Context, p listquery.Params, filter string) (listPage, error) {
	status := model.RequestStatus(filter)
	if status != "" && !status.Valid() {
		return listPage{}, fmt.Errorf("unknown request status %q", filter)
	}
	l, err := client.Requests.List(ctx, api.RequestFilter{Params: p, Status: status})
	if err != nil {
		return listPage{}, fmt.Errorf("list requests: %w", err)
	}
	lp := listPage{
		data:   l,
		header: []string{"ID", "Name", "Phone", "Email", "Partner", "Source", "Status", "Created"},
		total:  l.Total,
		page:   p.Page,
		pages:  l.Pages(),
	}
	for _, r := range l.Requests {
		lp.rows = append(lp.rows, []string{
			strconv.Itoa(r.ID), r.FullName, r.Phone, r.Email, format.Dash(r.PartnerCode),
			r.Source, out.requestStatus(r.Status), ago(r.CreatedAt),
		})
	}
	return lp, nil
}

func fetchPayments(ctx context.Context, p listquery.Params, filter string) (listPage, error) {
	status := model.PaymentStatus(filter)
	if status != "" && !status.Valid() {
		return listPage{}, fmt.Errorf("unknown payment status %q", filter)
	}
	l, err := client.Payments.List(ctx, api.PaymentFilter{Params: p, Status: status})
	if err != nil {
		return listPage{}, fmt.Errorf("list payments: %w", err)
	}
	lp := listPage{
		data:   l,
		header: []string{"ID", "Name", "Email", "Product", "Amount", "Status", "Created"},
		total:  l.Total,
		page:   p.Page,
		pages:  l.Pages(),
	}
	for _, pm := range l.Payments {
		lp.rows = append(lp.rows, []string{
			strconv.Itoa(pm.ID), pm.FullName, pm.Email, pm.Product,
			format.Rubles(pm.Amount), out.paymentStatus(pm.Status), ago(pm.CreatedAt),
		})
	}
	return lp, nil
}

func fetchVisitors(ctx context.Context, p listquery.Params, filter string) (listPage, error) {
	l, err := client.Visitors.List(ctx, api.VisitorFilter{Params: p, Country: filter})
	if err != nil {
		return listPage{}, fmt.Errorf("list visitors: %w", err)
	}
	lp := listPage{
		data:   l,
		header: []string{"ID", "Source", "Country", "Device", "Browser", "Pages", "Time", "Created"},
		total:  l.Total,
		page:   p.Page,
		pages:  l.Pages(),
	}
	for _, v := range l.Visitors {
		lp.rows = append(lp.rows, []string{
			v.ID, v.TrafficSource, v.Country, v.Device, v.Browser,
			strconv.Itoa(v.PagesViewed), v.TimeOnSite, ago(v.CreatedAt),
		})
	}
	return lp, nil
}

// plainText strips reminder markup for the terminal.
var plainText = bluemonday.StrictPolicy()

// fetchPartners pages locally; the partners endpoint returns every match.
func fetchPartners(ctx context.Context, p listquery.Params, _ string) (listPage, error) {
	l, err := client.Partners.List(ctx, p)
	if err != nil {
		return listPage{}, fmt.Errorf("list partners: %w", err)
	}
	items := listquery.Paginate(l.Partners, p.Page, p.Limit)
	lp := listPage{
		data:   items,
		header: []string{"ID", "Name", "Username", "Code", "Requisites", "Bonus", "Created"},
		total:  len(l.Partners),
		page:   p.Page,
		pages:  listquery.TotalPages(len(l.Partners), p.Limit),
	}
	for _, pt := range items {
		lp.rows = append(lp.rows, []string{
			strconv.Itoa(pt.ID), pt.Name, pt.Username, pt.Code,
			pt.RequisiteType.Label(), out.paymentStatus(pt.BonusStatus), ago(pt.CreatedAt),
		})
	}
	return lp, nil
}

// fetchReminders pages locally; the notifications endpoint returns every
// match.
func fetchReminders(ctx context.Context, p listquery.Params, _ string) (listPage, error) {
	l, err := client.Notifications.List(ctx, p)
	if err != nil {
		return listPage{}, fmt.Errorf("list reminders: %w", err)
	}
	items := listquery.Paginate(l.Notifications, p.Page, p.Limit)
	lp := listPage{
		data:   items,
		header: []string{"ID", "Text", "Ends", "Left"},
		total:  len(l.Notifications),
		page:   p.Page,
		pages:  listquery.TotalPages(len(l.Notifications), p.Limit),
	}
	now := clock.Now()
	for _, n := range items {
		lp.rows = append(lp.rows, []string{
			strconv.Itoa(n.ID), plainText.Sanitize(n.Text),
			format.DateTime(n.End, resolver.Now().Location()), format.TimeLeft(n.End, now),
		})
	}
	return lp, nil
}
