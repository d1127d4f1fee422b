package model

import "testing"

func TestRequestStatus_Label(t *testing.T) {
	tests := []struct {
		status RequestStatus
		want   string
	}{
		{RequestStatusPending, "Новая"},
		{RequestStatusInProgress, "В работе"},
		{RequestStatusApproved, "Завершена"},
		{RequestStatusRejected, "Отклонена"},
		{RequestStatus("ARCHIVED"), "ARCHIVED"},
	}
	for _, tt := range tests {
		if got := tt.status.Label(); got != tt.want {
			t.Errorf("RequestStatus(%q).Label() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestRequestStatus_Valid(t *testing.T) {
	for _, s := range RequestStatuses {
		if !s.Valid() {
			t.Errorf("RequestStatus(%q).Valid() = false, want true", s)
		}
	}
	if RequestStatus("pending").Valid() {
		t.Error("lowercase status should be invalid")
	}
}

func TestPaymentStatus_Labels(t *testing.T) {
	if got := PaymentStatusCompleted.Label(); got != "Оплачен" {
		t.Errorf("Label() = %q, want %q", got, "Оплачен")
	}
	if got := PaymentStatusPending.BonusLabel(); got != "Ожидает" {
		t.Errorf("BonusLabel() = %q, want %q", got, "Ожидает")
	}
	if PaymentStatus("REFUNDED").Valid() {
		t.Error("REFUNDED should be invalid")
	}
}

func TestRequisiteType_Label(t *testing.T) {
	if got := RequisiteYoomoney.Label(); got != "ЮMoney" {
		t.Errorf("Label() = %q, want %q", got, "ЮMoney")
	}
	if got := RequisiteType("Crypto").Label(); got != "Crypto" {
		t.Errorf("Label() = %q, want %q", got, "Crypto")
	}
}
