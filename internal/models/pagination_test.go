package models

import (
	"reflect"
	"testing"
)

func TestPageWindow(t *testing.T) {
	tests := []struct {
		name           string
		total          int64
		page           int64
		limit          int64
		wantPage       int64
		wantTotalPages int64
		wantSkip       int64
	}{
		{"empty collection reads first page", 0, 4, 10, 1, 1, 0},
		{"last partial page", 23, 3, 10, 3, 3, 20},
		{"page past the end is clamped", 23, 5, 10, 3, 3, 20},
		{"exact multiple", 20, 2, 10, 2, 2, 10},
		{"single document", 1, 1, 50, 1, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, totalPages, skip := PageWindow(tt.total, tt.page, tt.limit)
			if page != tt.wantPage || totalPages != tt.wantTotalPages || skip != tt.wantSkip {
				t.Errorf("PageWindow() = (%d, %d, %d), want (%d, %d, %d)",
					page, totalPages, skip, tt.wantPage, tt.wantTotalPages, tt.wantSkip)
			}
		})
	}
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		page     int64
		limit    int64
		returned int
		want     Pagination
	}{
		{
			name: "no documents",
			want: Pagination{},
			page: 1, limit: 10,
		},
		{
			name:  "third page of 23",
			total: 23, page: 3, limit: 10, returned: 3,
			want: Pagination{CurrentPage: 3, TotalPages: 3, TotalDocuments: 23, Start: 21, End: 23},
		},
		{
			name:  "page 5 of 23 clamps to 3",
			total: 23, page: 5, limit: 10, returned: 3,
			want: Pagination{CurrentPage: 3, TotalPages: 3, TotalDocuments: 23, Start: 21, End: 23},
		},
		{
			name:  "first page of 3 with limit 2",
			total: 3, page: 1, limit: 2, returned: 2,
			want: Pagination{CurrentPage: 1, TotalPages: 2, TotalDocuments: 3, Start: 1, End: 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewPagination(tt.total, tt.page, tt.limit, tt.returned); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NewPagination() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
