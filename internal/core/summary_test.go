package core

import (
	"reflect"
	"testing"
)

func TestTotalAmount(t *testing.T) {
	records := []Record{
		{Amount: 20},
		{Amount: 12.5},
		{Amount: 7.25},
	}
	want := 39.75

	if got := TotalAmount(records); got != want {
		t.Errorf("TotalAmount = %v, want %v", got, want)
	}

	// Order independence.
	reversed := []Record{records[2], records[1], records[0]}
	if got := TotalAmount(reversed); got != want {
		t.Errorf("TotalAmount (reversed) = %v, want %v", got, want)
	}

	if got := TotalAmount(nil); got != 0 {
		t.Errorf("TotalAmount(nil) = %v, want 0", got)
	}
}

func TestMonthBuckets(t *testing.T) {
	records := []Record{
		{Date: "2024-03-01"},
		{Date: "2024-03-15"},
		{Date: "2024-01-02"},
		{Date: "2023-12-31"},
		{Date: "2024-03-01"},
	}
	want := []string{"2024-03", "2024-01", "2023-12"}

	if got := MonthBuckets(records); !reflect.DeepEqual(got, want) {
		t.Errorf("MonthBuckets = %v, want %v", got, want)
	}

	if got := MonthBuckets(nil); len(got) != 0 {
		t.Errorf("MonthBuckets(nil) = %v, want empty", got)
	}
}
