package model

import "testing"

func TestPagination_Pages(t *testing.T) {
	tests := []struct {
		name string
		in   Pagination
		want int
	}{
		{"reported", Pagination{Total: 95, Limit: 10, TotalPages: 7}, 7},
		{"computed", Pagination{Total: 95, Limit: 10}, 10},
		{"exact", Pagination{Total: 40, Limit: 20}, 2},
		{"empty", Pagination{Limit: 10}, 1},
		{"no limit", Pagination{Total: 5}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Pages(); got != tt.want {
				t.Errorf("Pages() = %d, want %d", got, tt.want)
			}
		})
	}
}
