package api

import (
	"fmt"
	"net/http"
	"testing"

	"campusevents/internal/dto"
	"campusevents/internal/model"
	"campusevents/internal/service"
)

func TestEventCRUD(t *testing.T) {
	ts := newTestServer(t, service.Options{})

	w := ts.do(t, http.MethodPost, "/api/events", "", map[string]any{
		"title":            "Tech Talk",
		"description":      "An evening of talks",
		"date":             "2026-10-01",
		"time":             "18:00",
		"location":         "Auditorium A",
		"max_participants": 50,
	})
	wantStatus(t, w, 201)

	var created model.Event
	decode(t, w, &created)
	if created.ID == 0 || created.Title != "Tech Talk" {
		t.Fatalf("unexpected created event %+v", created)
	}

	w = ts.do(t, http.MethodGet, fmt.Sprintf("/api/events/%d", created.ID), "", nil)
	wantStatus(t, w, 200)
	var fetched model.Event
	decode(t, w, &fetched)
	if fetched.Location != "Auditorium A" {
		t.Errorf("location = %q", fetched.Location)
	}

	w = ts.do(t, http.MethodGet, "/api/events", "", nil)
	wantStatus(t, w, 200)
	var list []model.EventWithCount
	decode(t, w, &list)
	if len(list) != 1 || list[0].RegisteredCount != 0 {
		t.Errorf("unexpected list %+v", list)
	}

	w = ts.do(t, http.MethodPut, fmt.Sprintf("/api/events/%d", created.ID), "", map[string]any{
		"title":            "Tech Talk (moved)",
		"description":      "An evening of talks",
		"date":             "2026-10-02",
		"time":             "19:00",
		"location":         "Auditorium B",
		"max_participants": 40,
	})
	wantStatus(t, w, 200)
	var updated model.Event
	decode(t, w, &updated)
	if updated.Title != "Tech Talk (moved)" || updated.MaxParticipants != 40 {
		t.Errorf("unexpected updated event %+v", updated)
	}

	w = ts.do(t, http.MethodDelete, fmt.Sprintf("/api/events/%d", created.ID), "", nil)
	wantStatus(t, w, 200)
	var deleted dto.MessageResponse
	decode(t, w, &deleted)
	if deleted.Message != "Event deleted successfully" {
		t.Errorf("message = %q", deleted.Message)
	}

	// Second delete hits a missing event.
	w = ts.do(t, http.MethodDelete, fmt.Sprintf("/api/events/%d", created.ID), "", nil)
	wantStatus(t, w, 404)
	if msg := errorOf(t, w); msg != "Event not found" {
		t.Errorf("unexpected error %q", msg)
	}
}

func TestDeleteEventWithDependents(t *testing.T) {
	ts := newTestServer(t, service.Options{})
	eventID := ts.createEvent(t, "Farewell Party", 10)
	token, id := ts.signupStudent(t, "saul")

	w := ts.do(t, http.MethodPost, fmt.Sprintf("/api/events/%d/register", eventID), token, nil)
	wantStatus(t, w, 201)
	w = ts.do(t, http.MethodPost, fmt.Sprintf("/api/events/%d/attendance", eventID), "", map[string]any{
		"attendance_records": []map[string]any{{"student_id": id, "status": "present"}},
	})
	wantStatus(t, w, 200)
	w = ts.do(t, http.MethodPost, fmt.Sprintf("/api/events/%d/feedback", eventID), token, map[string]any{
		"rating": 5, "comment": "Great",
	})
	wantStatus(t, w, 201)

	// A registered, attended and rated event must still delete cleanly.
	w = ts.do(t, http.MethodDelete, fmt.Sprintf("/api/events/%d", eventID), "", nil)
	wantStatus(t, w, 200)

	if len(ts.repo.regs) != 0 || len(ts.repo.atts) != 0 || len(ts.repo.fbs) != 0 {
		t.Errorf("dependents survived delete: %d regs, %d atts, %d fbs",
			len(ts.repo.regs), len(ts.repo.atts), len(ts.repo.fbs))
	}

	w = ts.do(t, http.MethodGet, "/api/events/my-registrations", token, nil)
	wantStatus(t, w, 200)
	var mine []model.StudentRegistration
	decode(t, w, &mine)
	if len(mine) != 0 {
		t.Errorf("got %d registrations after delete, want 0", len(mine))
	}
}

func TestEventNotFound(t *testing.T) {
	ts := newTestServer(t, service.Options{})

	w := ts.do(t, http.MethodGet, "/api/events/9999", "", nil)
	wantStatus(t, w, 404)

	w = ts.do(t, http.MethodPut, "/api/events/9999", "", map[string]any{
		"title":            "Ghost",
		"date":             "2026-10-01",
		"time":             "10:00",
		"location":         "Nowhere",
		"max_participants": 5,
	})
	wantStatus(t, w, 404)
}

func TestCreateEventValidation(t *testing.T) {
	ts := newTestServer(t, service.Options{})

	cases := []map[string]any{
		{"date": "2026-10-01", "time": "10:00", "location": "Hall", "max_participants": 5},
		{"title": "No date", "time": "10:00", "location": "Hall", "max_participants": 5},
		{"title": "No capacity", "date": "2026-10-01", "time": "10:00", "location": "Hall"},
		{"title": "Bad capacity", "date": "2026-10-01", "time": "10:00", "location": "Hall", "max_participants": -1},
	}
	for _, body := range cases {
		w := ts.do(t, http.MethodPost, "/api/events", "", body)
		wantStatus(t, w, 400)
	}
}

func TestUpdateEventValidation(t *testing.T) {
	ts := newTestServer(t, service.Options{})
	eventID := ts.createEvent(t, "Workshop", 10)

	w := ts.do(t, http.MethodPut, fmt.Sprintf("/api/events/%d", eventID), "", map[string]any{
		"title": "Workshop",
	})
	wantStatus(t, w, 400)
	if msg := errorOf(t, w); msg != "Missing required fields: title, date, time, location, max_participants" {
		t.Errorf("unexpected error %q", msg)
	}
}
