package apitest

import (
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/me/backoffice/pkg/model"
)

// --- requests ---

func (f *Fake) filterRequests(lq listQuery, status, source string) []model.Request {
	var out []model.Request
	for _, rq := range f.Requests {
		if status != "" && string(rq.Status) != status {
			continue
		}
		if source != "" && rq.Source != source {
			continue
		}
		if !lq.inRange(rq.CreatedAt) || !lq.matches(rq.FullName, rq.Email, rq.Phone, rq.Telegram, rq.PartnerCode) {
			continue
		}
		out = append(out, rq)
	}
	return out
}

func (f *Fake) listRequests(w http.ResponseWriter, r *http.Request) {
	lq := parseListQuery(r, "limit")
	f.mu.Lock()
	items := f.filterRequests(lq, r.URL.Query().Get("status"), r.URL.Query().Get("source"))
	f.mu.Unlock()
	items, p := page(items, lq)
	writeJSON(w, http.StatusOK, model.RequestList{Requests: items, Pagination: p})
}

func (f *Fake) requestsByPartner(w http.ResponseWriter, r *http.Request) {
	lq := parseListQuery(r, "limit")
	code := chi.URLParam(r, "code")
	f.mu.Lock()
	var items []model.Request
	for _, rq := range f.Requests {
		if rq.PartnerCode == code {
			items = append(items, rq)
		}
	}
	f.mu.Unlock()
	items, p := page(items, lq)
	writeJSON(w, http.StatusOK, model.RequestList{Requests: items, Pagination: p})
}

func (f *Fake) requestStats(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var s model.RequestStats
	for _, rq := range f.Requests {
		switch rq.Status {
		case model.RequestStatusPending:
			s.Pending++
		case model.RequestStatusInProgress:
			s.InProgress++
		case model.RequestStatusApproved:
			s.Approved++
		case model.RequestStatusRejected:
			s.Rejected++
		}
	}
	writeJSON(w, http.StatusOK, s)
}

func (f *Fake) getRequest(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := intID(r)
	i := slices.IndexFunc(f.Requests, func(x model.Request) bool { return x.ID == id })
	if i < 0 {
		notFound(w, "Request", chi.URLParam(r, "id"))
		return
	}
	writeJSON(w, http.StatusOK, f.Requests[i])
}

func (f *Fake) createRequest(w http.ResponseWriter, r *http.Request) {
	var in model.CreateRequest
	if !decode(w, r, &in) {
		return
	}
	if in.FullName == "" || in.Email == "" {
		badRequest(w, "fullName should not be empty", "email must be an email")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now().UTC()
	rq := model.Request{
		ID: f.newID(), FullName: in.FullName, Phone: in.Phone, Email: in.Email,
		Telegram: in.Telegram, PartnerCode: in.PartnerCode, Source: in.Source,
		Status: in.Status, CreatedAt: now, UpdatedAt: now,
	}
	if rq.Status == "" {
		rq.Status = model.RequestStatusPending
	}
	f.Requests = append(f.Requests, rq)
	writeJSON(w, http.StatusCreated, rq)
}

func (f *Fake) updateRequest(w http.ResponseWriter, r *http.Request) {
	var in model.UpdateRequest
	if !decode(w, r, &in) {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	id := intID(r)
	i := slices.IndexFunc(f.Requests, func(x model.Request) bool { return x.ID == id })
	if i < 0 {
		notFound(w, "Request", chi.URLParam(r, "id"))
		return
	}
	rq := &f.Requests[i]
	set(&rq.FullName, in.FullName)
	set(&rq.Phone, in.Phone)
	set(&rq.Email, in.Email)
	set(&rq.Telegram, in.Telegram)
	set(&rq.PartnerCode, in.PartnerCode)
	set(&rq.Source, in.Source)
	set(&rq.Status, in.Status)
	rq.UpdatedAt = time.Now().UTC()
	writeJSON(w, http.StatusOK, *rq)
}

func (f *Fake) deleteRequest(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := intID(r)
	n := len(f.Requests)
	f.Requests = slices.DeleteFunc(f.Requests, func(x model.Request) bool { return x.ID == id })
	if len(f.Requests) == n {
		notFound(w, "Request", chi.URLParam(r, "id"))
		return
	}
	w.WriteHeader(http.StatusOK)
}

// --- payments ---

func (f *Fake) listPayments(w http.ResponseWriter, r *http.Request) {
	lq := parseListQuery(r, "limit")
	status := r.URL.Query().Get("status")
	f.mu.Lock()
	var items []model.Payment
	for _, p := range f.Payments {
		if status != "" && string(p.Status) != status {
			continue
		}
		if !lq.inRange(p.CreatedAt) || !lq.matches(p.FullName, p.Email, p.Product, p.Source) {
			continue
		}
		items = append(items, p)
	}
	f.mu.Unlock()
	items, p := page(items, lq)
	writeJSON(w, http.StatusOK, model.PaymentList{Payments: items, Pagination: p})
}

func (f *Fake) paymentStats(w http.ResponseWriter, r *http.Request) {
	lq := parseListQuery(r, "limit")
	f.mu.Lock()
	defer f.mu.Unlock()
	var s model.PaymentStats
	for _, p := range f.Payments {
		if !lq.inRange(p.CreatedAt) {
			continue
		}
		switch p.Status {
		case model.PaymentStatusPending:
			s.Pending++
		case model.PaymentStatusCompleted:
			s.Completed++
			s.TotalAmount += p.Amount
		}
	}
	writeJSON(w, http.StatusOK, s)
}

func (f *Fake) getPayment(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := intID(r)
	i := slices.IndexFunc(f.Payments, func(x model.Payment) bool { return x.ID == id })
	if i < 0 {
		notFound(w, "Payment", chi.URLParam(r, "id"))
		return
	}
	writeJSON(w, http.StatusOK, f.Payments[i])
}

func (f *Fake) createPayment(w http.ResponseWriter, r *http.Request) {
	var in model.CreatePayment
	if !decode(w, r, &in) {
		return
	}
	if in.Amount <= 0 {
		badRequest(w, "amount must be a positive number")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now().UTC()
	p := model.Payment{
		ID: f.newID(), FullName: in.FullName, Email: in.Email, Source: in.Source,
		Product: in.Product, Amount: in.Amount, PromoCodeID: in.PromoCodeID,
		Status: in.Status, CreatedAt: now, UpdatedAt: now,
	}
	f.Payments = append(f.Payments, p)
	writeJSON(w, http.StatusCreated, p)
}

// --- visitors ---

func (f *Fake) listVisitors(w http.ResponseWriter, r *http.Request) {
	lq := parseListQuery(r, "limit")
	q := r.URL.Query()
	f.mu.Lock()
	var items []model.Visitor
	for _, v := range f.Visitors {
		if c := q.Get("country"); c != "" && v.Country != c {
			continue
		}
		if d := q.Get("device"); d != "" && v.Device != d {
			continue
		}
		if b := q.Get("browser"); b != "" && v.Browser != b {
			continue
		}
		if s := q.Get("trafficSource"); s != "" && v.TrafficSource != s {
			continue
		}
		if !lq.inRange(v.CreatedAt) || !lq.matches(v.ID, v.Country, v.TrafficSource, v.UTMTags) {
			continue
		}
		items = append(items, v)
	}
	f.mu.Unlock()
	items, p := page(items, lq)
	writeJSON(w, http.StatusOK, model.VisitorList{Visitors: items, Pagination: p})
}

func (f *Fake) visitorsBy(field string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		value := chi.URLParam(r, "value")
		f.mu.Lock()
		defer f.mu.Unlock()
		out := []model.Visitor{}
		for _, v := range f.Visitors {
			if (field == "country" && v.Country == value) || (field == "trafficSource" && v.TrafficSource == value) {
				out = append(out, v)
			}
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (f *Fake) visitorStats(w http.ResponseWriter, r *http.Request) {
	dim := chi.URLParam(r, "dim")
	f.mu.Lock()
	defer f.mu.Unlock()
	out := model.VisitorStats{}
	for _, v := range f.Visitors {
		switch dim {
		case "country":
			out[v.Country]++
		case "device":
			out[v.Device]++
		case "browser":
			out[v.Browser]++
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (f *Fake) getVisitor(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := chi.URLParam(r, "id")
	i := slices.IndexFunc(f.Visitors, func(x model.Visitor) bool { return x.ID == id })
	if i < 0 {
		notFound(w, "Visitor", id)
		return
	}
	writeJSON(w, http.StatusOK, f.Visitors[i])
}

func (f *Fake) createVisitor(w http.ResponseWriter, r *http.Request) {
	var in model.CreateVisitor
	if !decode(w, r, &in) {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now().UTC()
	v := model.Visitor{
		ID: "v" + strconv.Itoa(f.newID()), TrafficSource: in.TrafficSource, UTMTags: in.UTMTags,
		Country: in.Country, Device: in.Device, Browser: in.Browser, PagesViewed: in.PagesViewed,
		TimeOnSite: in.TimeOnSite, CookieFile: in.CookieFile, CreatedAt: now, UpdatedAt: now,
	}
	f.Visitors = append(f.Visitors, v)
	writeJSON(w, http.StatusCreated, v)
}

func (f *Fake) updateVisitor(w http.ResponseWriter, r *http.Request) {
	var in model.UpdateVisitor
	if !decode(w, r, &in) {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	id := chi.URLParam(r, "id")
	i := slices.IndexFunc(f.Visitors, func(x model.Visitor) bool { return x.ID == id })
	if i < 0 {
		notFound(w, "Visitor", id)
		return
	}
	v := &f.Visitors[i]
	set(&v.TrafficSource, in.TrafficSource)
	set(&v.UTMTags, in.UTMTags)
	set(&v.Country, in.Country)
	set(&v.Device, in.Device)
	set(&v.Browser, in.Browser)
	set(&v.PagesViewed, in.PagesViewed)
	set(&v.TimeOnSite, in.TimeOnSite)
	set(&v.CookieFile, in.CookieFile)
	v.UpdatedAt = time.Now().UTC()
	writeJSON(w, http.StatusOK, *v)
}

func (f *Fake) deleteVisitor(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := chi.URLParam(r, "id")
	n := len(f.Visitors)
	f.Visitors = slices.DeleteFunc(f.Visitors, func(x model.Visitor) bool { return x.ID == id })
	if len(f.Visitors) == n {
		notFound(w, "Visitor", id)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// --- partners ---

func (f *Fake) listPartners(w http.ResponseWriter, r *http.Request) {
	lq := parseListQuery(r, "limit")
	f.mu.Lock()
	defer f.mu.Unlock()
	items := []model.Partner{}
	for _, p := range f.Partners {
		if lq.inRange(p.CreatedAt) && lq.matches(p.Name, p.Username, p.Code) {
			items = append(items, p)
		}
	}
	writeJSON(w, http.StatusOK, model.PartnerList{Partners: items, Total: len(items)})
}

func (f *Fake) partnerBy(match func(model.Partner, string) bool, param string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		value := r.URL.Query().Get(param)
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, p := range f.Partners {
			if match(p, value) {
				writeJSON(w, http.StatusOK, p)
				return
			}
		}
		writeJSON(w, http.StatusOK, nil)
	}
}

func (f *Fake) getPartner(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := intID(r)
	i := slices.IndexFunc(f.Partners, func(x model.Partner) bool { return x.ID == id })
	if i < 0 {
		notFound(w, "Partner", chi.URLParam(r, "id"))
		return
	}
	writeJSON(w, http.StatusOK, f.Partners[i])
}

func (f *Fake) createPartner(w http.ResponseWriter, r *http.Request) {
	var in model.CreatePartner
	if !decode(w, r, &in) {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if slices.ContainsFunc(f.Partners, func(p model.Partner) bool { return p.Code == in.Code }) {
		writeJSON(w, http.StatusConflict, map[string]any{
			"statusCode": 409, "message": "Partner code already exists", "error": "Conflict",
		})
		return
	}
	p := model.Partner{
		ID: f.newID(), Name: in.Name, Username: in.Username, Requisites: in.Requisites,
		RequisiteType: in.RequisiteType, BonusStatus: in.BonusStatus, Code: in.Code,
		CreatedAt: time.Now().UTC(),
	}
	f.Partners = append(f.Partners, p)
	writeJSON(w, http.StatusCreated, p)
}

func (f *Fake) updatePartner(w http.ResponseWriter, r *http.Request) {
	var in model.UpdatePartner
	if !decode(w, r, &in) {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	id := intID(r)
	i := slices.IndexFunc(f.Partners, func(x model.Partner) bool { return x.ID == id })
	if i < 0 {
		notFound(w, "Partner", chi.URLParam(r, "id"))
		return
	}
	p := &f.Partners[i]
	set(&p.Name, in.Name)
	set(&p.Username, in.Username)
	set(&p.Requisites, in.Requisites)
	set(&p.RequisiteType, in.RequisiteType)
	set(&p.BonusStatus, in.BonusStatus)
	set(&p.Code, in.Code)
	writeJSON(w, http.StatusOK, *p)
}

func (f *Fake) deletePartner(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := intID(r)
	n := len(f.Partners)
	f.Partners = slices.DeleteFunc(f.Partners, func(x model.Partner) bool { return x.ID == id })
	if len(f.Partners) == n {
		notFound(w, "Partner", chi.URLParam(r, "id"))
		return
	}
	w.WriteHeader(http.StatusOK)
}

// --- notifications ---

func (f *Fake) listNotifications(w http.ResponseWriter, r *http.Request) {
	lq := parseListQuery(r, "limit")
	f.mu.Lock()
	defer f.mu.Unlock()
	items := []model.Notification{}
	for _, n := range f.Notifications {
		if lq.inRange(n.CreatedAt) && lq.matches(n.Text) {
			items = append(items, n)
		}
	}
	writeJSON(w, http.StatusOK, model.NotificationList{Notifications: items, Total: len(items)})
}

func (f *Fake) activeNotifications(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	f.mu.Lock()
	defer f.mu.Unlock()
	items := []model.Notification{}
	for _, n := range f.Notifications {
		if n.IsActive(now) {
			items = append(items, n)
		}
	}
	writeJSON(w, http.StatusOK, model.NotificationList{Notifications: items, Total: len(items)})
}

func (f *Fake) getNotification(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := intID(r)
	i := slices.IndexFunc(f.Notifications, func(x model.Notification) bool { return x.ID == id })
	if i < 0 {
		notFound(w, "Notification", chi.URLParam(r, "id"))
		return
	}
	writeJSON(w, http.StatusOK, f.Notifications[i])
}

func (f *Fake) createNotification(w http.ResponseWriter, r *http.Request) {
	var in model.CreateNotification
	if !decode(w, r, &in) {
		return
	}
	if in.Text == "" {
		badRequest(w, "text should not be empty")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	n := model.Notification{ID: f.newID(), Text: in.Text, End: in.End, CreatedAt: time.Now().UTC()}
	f.Notifications = append(f.Notifications, n)
	writeJSON(w, http.StatusCreated, n)
}

func (f *Fake) updateNotification(w http.ResponseWriter, r *http.Request) {
	var in model.UpdateNotification
	if !decode(w, r, &in) {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	id := intID(r)
	i := slices.IndexFunc(f.Notifications, func(x model.Notification) bool { return x.ID == id })
	if i < 0 {
		notFound(w, "Notification", chi.URLParam(r, "id"))
		return
	}
	n := &f.Notifications[i]
	set(&n.Text, in.Text)
	set(&n.End, in.End)
	writeJSON(w, http.StatusOK, *n)
}

func (f *Fake) deleteNotification(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := intID(r)
	n := len(f.Notifications)
	f.Notifications = slices.DeleteFunc(f.Notifications, func(x model.Notification) bool { return x.ID == id })
	if len(f.Notifications) == n {
		notFound(w, "Notification", chi.URLParam(r, "id"))
		return
	}
	w.WriteHeader(http.StatusOK)
}

// --- buttons ---

func (f *Fake) listButtons(w http.ResponseWriter, r *http.Request) {
	lq := parseListQuery(r, "pageSize")
	f.mu.Lock()
	items := slices.Clone(f.Buttons)
	f.mu.Unlock()
	items, p := page(items, lq)
	writeJSON(w, http.StatusOK, model.ButtonList{
		Data: items, Total: p.Total, Page: p.Page, PageSize: p.Limit, TotalPages: p.TotalPages,
	})
}

func (f *Fake) buttonStats(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	byType := map[string]*model.ButtonStats{}
	var order []string
	for _, b := range f.Buttons {
		s, ok := byType[b.Type]
		if !ok {
			s = &model.ButtonStats{Type: b.Type}
			byType[b.Type] = s
			order = append(order, b.Type)
		}
		s.TotalClicks += b.ClickCount
		s.ButtonCount++
	}
	out := []model.ButtonStats{}
	for _, t := range order {
		out = append(out, *byType[t])
	}
	writeJSON(w, http.StatusOK, out)
}

func (f *Fake) getButton(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := intID(r)
	i := slices.IndexFunc(f.Buttons, func(x model.Button) bool { return x.ID == id })
	if i < 0 {
		notFound(w, "Button", chi.URLParam(r, "id"))
		return
	}
	writeJSON(w, http.StatusOK, f.Buttons[i])
}

func (f *Fake) createButton(w http.ResponseWriter, r *http.Request) {
	var in model.CreateButton
	if !decode(w, r, &in) {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now().UTC()
	b := model.Button{
		ID: f.newID(), Name: in.Name, Type: in.Type, URL: in.URL, Description: in.Description,
		IsActive: in.IsActive == nil || *in.IsActive, CreatedAt: now, UpdatedAt: now,
	}
	f.Buttons = append(f.Buttons, b)
	writeJSON(w, http.StatusCreated, b)
}

func (f *Fake) updateButton(w http.ResponseWriter, r *http.Request) {
	var in model.UpdateButton
	if !decode(w, r, &in) {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	id := intID(r)
	i := slices.IndexFunc(f.Buttons, func(x model.Button) bool { return x.ID == id })
	if i < 0 {
		notFound(w, "Button", chi.URLParam(r, "id"))
		return
	}
	b := &f.Buttons[i]
	set(&b.Name, in.Name)
	set(&b.Type, in.Type)
	set(&b.URL, in.URL)
	set(&b.Description, in.Description)
	set(&b.IsActive, in.IsActive)
	writeJSON(w, http.StatusOK, *b)
}

func (f *Fake) deleteButton(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := intID(r)
	n := len(f.Buttons)
	f.Buttons = slices.DeleteFunc(f.Buttons, func(x model.Button) bool { return x.ID == id })
	if len(f.Buttons) == n {
		notFound(w, "Button", chi.URLParam(r, "id"))
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (f *Fake) clickButton(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := intID(r)
	i := slices.IndexFunc(f.Buttons, func(x model.Button) bool { return x.ID == id })
	if i < 0 {
		notFound(w, "Button", chi.URLParam(r, "id"))
		return
	}
	f.Buttons[i].ClickCount++
	writeJSON(w, http.StatusOK, f.Buttons[i])
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
