package model

// RequestStatus is the processing state of a sales request.
type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "PENDING"
	RequestStatusInProgress RequestStatus = "IN_PROGRESS"
	RequestStatusApproved   RequestStatus = "APPROVED"
	RequestStatusRejected   RequestStatus = "REJECTED"
)

// RequestStatuses lists request statuses in display order.
var RequestStatuses = []RequestStatus{
	RequestStatusPending,
	RequestStatusInProgress,
	RequestStatusApproved,
	RequestStatusRejected,
}

var requestStatusLabels = map[RequestStatus]string{
	RequestStatusPending:    "Новая",
	RequestStatusInProgress: "В работе",
	RequestStatusApproved:   "Завершена",
	RequestStatusRejected:   "Отклонена",
}

// String returns the wire value of the status.
func (s RequestStatus) String() string {
	return string(s)
}

// Label returns the operator-facing name of the status. Unknown values are
// shown as sent.
func (s RequestStatus) Label() string {
	if l, ok := requestStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Valid reports whether s is a known request status.
func (s RequestStatus) Valid() bool {
	_, ok := requestStatusLabels[s]
	return ok
}

// PaymentStatus is the settlement state of a payment. It is also used for
// partner bonus payouts.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
)

// String returns the wire value of the status.
func (s PaymentStatus) String() string {
	return string(s)
}

// Label returns the operator-facing name of a payment status.
func (s PaymentStatus) Label() string {
	switch s {
	case PaymentStatusCompleted:
		return "Оплачен"
	case PaymentStatusPending:
		return "Не оплачен"
	}
	return string(s)
}

// BonusLabel returns the operator-facing name of a partner bonus status.
func (s PaymentStatus) BonusLabel() string {
	switch s {
	case PaymentStatusCompleted:
		return "Выплачен"
	case PaymentStatusPending:
		return "Ожидает"
	}
	return string(s)
}

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	return s == PaymentStatusPending || s == PaymentStatusCompleted
}

// RequisiteType is how a partner receives bonus payouts.
type RequisiteType string

const (
	RequisiteCard     RequisiteType = "Card"
	RequisiteYoomoney RequisiteType = "Yoomoney"
)

// Label returns the operator-facing name of the requisite type.
func (t RequisiteType) Label() string {
	switch t {
	case RequisiteCard:
		return "Карта"
	case RequisiteYoomoney:
		return "ЮMoney"
	}
	return string(t)
}
