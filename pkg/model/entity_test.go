package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestPayment_Rubles(t *testing.T) {
	p := Payment{Amount: 1234550}
	if got := p.Rubles(); got != 12345.5 {
		t.Errorf("Rubles() = %v, want 12345.5", got)
	}
	s := PaymentStats{TotalAmount: 100}
	if got := s.TotalRubles(); got != 1 {
		t.Errorf("TotalRubles() = %v, want 1", got)
	}
}

func TestRequestList_DecodeFlattensPagination(t *testing.T) {
	body := `{"requests":[{"id":3,"fullName":"Иван","status":"IN_PROGRESS","createdAt":"2025-06-01T10:00:00.000Z"}],"total":31,"page":2,"limit":10,"totalPages":4}`
	var l RequestList
	if err := json.Unmarshal([]byte(body), &l); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(l.Requests) != 1 || l.Requests[0].Status != RequestStatusInProgress {
		t.Fatalf("Requests = %+v", l.Requests)
	}
	if l.Total != 31 || l.Page != 2 || l.Pages() != 4 {
		t.Errorf("Pagination = %+v", l.Pagination)
	}
}

func TestNotification_IsActive(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	n := Notification{End: now.Add(time.Hour)}
	if !n.IsActive(now) {
		t.Error("IsActive() = false before end")
	}
	if n.IsActive(now.Add(2 * time.Hour)) {
		t.Error("IsActive() = true after end")
	}
}

func TestUser_DisplayName(t *testing.T) {
	tests := []struct {
		u    User
		want string
	}{
		{User{FirstName: "Анна", LastName: "Петрова", Username: "anna"}, "Анна Петрова"},
		{User{FirstName: "Анна", Username: "anna"}, "Анна"},
		{User{Username: "anna"}, "anna"},
	}
	for _, tt := range tests {
		if got := tt.u.DisplayName(); got != tt.want {
			t.Errorf("DisplayName() = %q, want %q", got, tt.want)
		}
	}
}

func TestRequestStats_Total(t *testing.T) {
	s := RequestStats{Pending: 1, Approved: 2, Rejected: 3, InProgress: 4}
	if got := s.Total(); got != 10 {
		t.Errorf("Total() = %d, want 10", got)
	}
}
