package api

import (
	"net/http"
	"reflect"
	"testing"
)

func TestAvailableTimesExcludesBookedSlots(t *testing.T) {
	harness := newBookingTestApp(t)

	status, body := doRequest(t, harness.app, http.MethodPost, "/bookings", `{"date":"2024-06-20","time":"10:00"}`, nil)
	if status != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", status, body)
	}

	status, body = doRequest(t, harness.app, http.MethodGet, "/available-times/2024-06-20", "", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	response := availableTimesResponse{}
	decodeJSON(t, body, &response)
	if want := []string{"09:00", "11:00"}; !reflect.DeepEqual(response.AvailableTimes, want) {
		t.Fatalf("available_times = %v, want %v", response.AvailableTimes, want)
	}
}

func TestAvailableTimesEmptyForClosedDay(t *testing.T) {
	harness := newBookingTestApp(t)

	status, body := doRequest(t, harness.app, http.MethodGet, "/available-times/2024-06-16", "", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	if body != `{"available_times":[]}` {
		t.Fatalf("expected empty list for closed day, got %s", body)
	}
}

func TestAvailableTimesRejectsInvalidDate(t *testing.T) {
	harness := newBookingTestApp(t)

	for _, raw := range []string{"2024-02-30", "tomorrow", "2024-6-1"} {
		status, body := doRequest(t, harness.app, http.MethodGet, "/available-times/"+raw, "", nil)
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400 for %q, got %d: %s", raw, status, body)
		}
		if body != `{"error":"invalid date"}` {
			t.Fatalf("unexpected error body for %q: %s", raw, body)
		}
	}
}
