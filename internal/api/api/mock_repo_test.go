package api

import (
	"context"
	"math"
	"sort"
	"time"

	"campusevents/internal/model"
	"campusevents/internal/repo"
)

// mockRepo is an in-memory stand-in for the Postgres repository. It mirrors
// the store's semantics closely enough for handler tests: capacity checks,
// duplicate detection, upserts and report aggregation.
type mockRepo struct {
	students map[int64]*model.Student
	admins   map[int64]*model.Admin
	events   map[int64]*model.Event
	regs     map[int64]*model.Registration
	atts     map[int64]*model.Attendance
	fbs      map[int64]*model.Feedback
	nextID   int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		students: make(map[int64]*model.Student),
		admins:   make(map[int64]*model.Admin),
		events:   make(map[int64]*model.Event),
		regs:     make(map[int64]*model.Registration),
		atts:     make(map[int64]*model.Attendance),
		fbs:      make(map[int64]*model.Feedback),
	}
}

func (m *mockRepo) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *mockRepo) MigrateUp(string) error   { return nil }
func (m *mockRepo) MigrateDown(string) error { return nil }

func (m *mockRepo) CreateStudent(_ context.Context, s *model.Student) (int64, error) {
	for _, existing := range m.students {
		if existing.Email == s.Email || existing.StudentID == s.StudentID {
			return 0, repo.ErrDuplicateAccount
		}
	}
	s.ID = m.id()
	s.CreatedAt = time.Now()
	m.students[s.ID] = s
	return s.ID, nil
}

func (m *mockRepo) StudentExists(_ context.Context, email, studentNumber string) (bool, error) {
	for _, s := range m.students {
		if s.Email == email || s.StudentID == studentNumber {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepo) GetStudentByEmail(_ context.Context, email string) (*model.Student, error) {
	for _, s := range m.students {
		if s.Email == email {
			return s, nil
		}
	}
	return nil, repo.ErrStudentNotFound
}

func (m *mockRepo) GetStudentByID(_ context.Context, id int64) (*model.Student, error) {
	s, ok := m.students[id]
	if !ok {
		return nil, repo.ErrStudentNotFound
	}
	return s, nil
}

func (m *mockRepo) ListStudents(_ context.Context) ([]model.Student, error) {
	out := make([]model.Student, 0, len(m.students))
	for _, id := range sortedKeys(m.students) {
		out = append(out, *m.students[id])
	}
	return out, nil
}

func (m *mockRepo) CreateAdmin(_ context.Context, a *model.Admin) (int64, error) {
	for _, existing := range m.admins {
		if existing.Email == a.Email || existing.Username == a.Username {
			return 0, repo.ErrDuplicateAccount
		}
	}
	a.ID = m.id()
	a.CreatedAt = time.Now()
	m.admins[a.ID] = a
	return a.ID, nil
}

func (m *mockRepo) AdminExists(_ context.Context, email, username string) (bool, error) {
	for _, a := range m.admins {
		if a.Email == email || a.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepo) GetAdminByEmail(_ context.Context, email string) (*model.Admin, error) {
	for _, a := range m.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, repo.ErrAdminNotFound
}

func (m *mockRepo) CreateEvent(_ context.Context, e *model.Event) (int64, error) {
	e.ID = m.id()
	e.CreatedAt = time.Now()
	m.events[e.ID] = e
	return e.ID, nil
}

func (m *mockRepo) GetEventByID(_ context.Context, id int64) (*model.Event, error) {
	e, ok := m.events[id]
	if !ok {
		return nil, repo.ErrEventNotFound
	}
	return e, nil
}

func (m *mockRepo) ListEvents(_ context.Context) ([]model.EventWithCount, error) {
	keys := sortedKeys(m.events)
	out := make([]model.EventWithCount, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		e := m.events[keys[i]]
		out = append(out, model.EventWithCount{Event: *e, RegisteredCount: m.countRegs(e.ID)})
	}
	return out, nil
}

func (m *mockRepo) UpdateEvent(_ context.Context, e *model.Event) error {
	existing, ok := m.events[e.ID]
	if !ok {
		return repo.ErrEventNotFound
	}
	e.CreatedAt = existing.CreatedAt
	m.events[e.ID] = e
	return nil
}

// DeleteEvent removes the event and its dependents, mirroring the schema's
// ON DELETE CASCADE on registrations, attendance and feedback.
func (m *mockRepo) DeleteEvent(_ context.Context, id int64) error {
	if _, ok := m.events[id]; !ok {
		return repo.ErrEventNotFound
	}
	delete(m.events, id)
	for regID, r := range m.regs {
		if r.EventID == id {
			delete(m.regs, regID)
		}
	}
	for attID, a := range m.atts {
		if a.EventID == id {
			delete(m.atts, attID)
		}
	}
	for fbID, f := range m.fbs {
		if f.EventID == id {
			delete(m.fbs, fbID)
		}
	}
	return nil
}

func (m *mockRepo) countRegs(eventID int64) int {
	count := 0
	for _, r := range m.regs {
		if r.EventID == eventID {
			count++
		}
	}
	return count
}

func (m *mockRepo) findReg(studentID, eventID int64) *model.Registration {
	for _, r := range m.regs {
		if r.StudentID == studentID && r.EventID == eventID {
			return r
		}
	}
	return nil
}

func (m *mockRepo) RegisterTx(_ context.Context, studentID, eventID int64) (int64, error) {
	event, ok := m.events[eventID]
	if !ok {
		return 0, repo.ErrEventNotFound
	}
	if m.findReg(studentID, eventID) != nil {
		return 0, repo.ErrDuplicateRegistration
	}
	if m.countRegs(eventID) >= event.MaxParticipants {
		return 0, repo.ErrEventFull
	}
	reg := &model.Registration{
		ID:           m.id(),
		StudentID:    studentID,
		EventID:      eventID,
		RegisteredAt: time.Now(),
	}
	m.regs[reg.ID] = reg
	return reg.ID, nil
}

func (m *mockRepo) Unregister(_ context.Context, studentID, eventID int64) error {
	reg := m.findReg(studentID, eventID)
	if reg == nil {
		return repo.ErrRegistrationNotFound
	}
	delete(m.regs, reg.ID)
	return nil
}

func (m *mockRepo) HasRegistration(_ context.Context, studentID, eventID int64) (bool, error) {
	return m.findReg(studentID, eventID) != nil, nil
}

func (m *mockRepo) ListRegistrantsForEvent(_ context.Context, eventID int64) ([]model.EventRegistrant, error) {
	var out []model.EventRegistrant
	for _, id := range sortedKeys(m.regs) {
		r := m.regs[id]
		if r.EventID != eventID {
			continue
		}
		s := m.students[r.StudentID]
		out = append(out, model.EventRegistrant{
			RegistrationID: r.ID,
			RegisteredAt:   r.RegisteredAt,
			StudentID:      s.ID,
			Name:           s.Name,
			Email:          s.Email,
			StudentNumber:  s.StudentID,
			Department:     s.Department,
			Year:           s.Year,
		})
	}
	return out, nil
}

func (m *mockRepo) ListRegistrationsForStudent(_ context.Context, studentID int64) ([]model.StudentRegistration, error) {
	var out []model.StudentRegistration
	for _, id := range sortedKeys(m.regs) {
		r := m.regs[id]
		if r.StudentID != studentID {
			continue
		}
		e := m.events[r.EventID]
		out = append(out, model.StudentRegistration{
			RegistrationID:  r.ID,
			RegisteredAt:    r.RegisteredAt,
			EventID:         e.ID,
			Title:           e.Title,
			Description:     e.Description,
			Date:            e.Date,
			Time:            e.Time,
			Location:        e.Location,
			MaxParticipants: e.MaxParticipants,
		})
	}
	return out, nil
}

func (m *mockRepo) findAttendance(studentID, eventID int64) *model.Attendance {
	for _, a := range m.atts {
		if a.StudentID == studentID && a.EventID == eventID {
			return a
		}
	}
	return nil
}

func (m *mockRepo) MarkBatchTx(_ context.Context, eventID int64, records []model.AttendanceMark) (int, error) {
	for _, rec := range records {
		if m.findReg(rec.StudentID, eventID) == nil {
			return 0, &repo.NotRegisteredError{StudentID: rec.StudentID}
		}
	}
	for _, rec := range records {
		if existing := m.findAttendance(rec.StudentID, eventID); existing != nil {
			existing.Status = rec.Status
			existing.MarkedAt = time.Now()
			continue
		}
		a := &model.Attendance{
			ID:        m.id(),
			StudentID: rec.StudentID,
			EventID:   eventID,
			Status:    rec.Status,
			MarkedAt:  time.Now(),
		}
		m.atts[a.ID] = a
	}
	return len(records), nil
}

func (m *mockRepo) AttendanceSheet(_ context.Context, eventID int64) ([]model.AttendanceRow, error) {
	var out []model.AttendanceRow
	for _, id := range sortedKeys(m.regs) {
		r := m.regs[id]
		if r.EventID != eventID {
			continue
		}
		s := m.students[r.StudentID]
		row := model.AttendanceRow{
			StudentID:     s.ID,
			StudentNumber: s.StudentID,
			Name:          s.Name,
			Email:         s.Email,
			Department:    s.Department,
			Year:          s.Year,
			RegisteredAt:  r.RegisteredAt,
			Status:        model.AttendanceNotMarked,
		}
		if a := m.findAttendance(r.StudentID, eventID); a != nil {
			row.Status = a.Status
			marked := a.MarkedAt
			row.MarkedAt = &marked
		}
		out = append(out, row)
	}
	return out, nil
}

func (m *mockRepo) HasPresentAttendance(_ context.Context, studentID, eventID int64) (bool, error) {
	a := m.findAttendance(studentID, eventID)
	return a != nil && a.Status == model.AttendancePresent, nil
}

func (m *mockRepo) UpsertFeedback(_ context.Context, f *model.Feedback) (int64, bool, error) {
	for _, existing := range m.fbs {
		if existing.StudentID == f.StudentID && existing.EventID == f.EventID {
			existing.Rating = f.Rating
			existing.Comment = f.Comment
			existing.SubmittedAt = time.Now()
			return existing.ID, true, nil
		}
	}
	f.ID = m.id()
	f.SubmittedAt = time.Now()
	m.fbs[f.ID] = f
	return f.ID, false, nil
}

func (m *mockRepo) GetFeedback(_ context.Context, studentID, eventID int64) (*model.Feedback, error) {
	for _, f := range m.fbs {
		if f.StudentID == studentID && f.EventID == eventID {
			return f, nil
		}
	}
	return nil, repo.ErrFeedbackNotFound
}

func (m *mockRepo) ListFeedbackForEvent(_ context.Context, eventID int64) ([]model.EventFeedback, error) {
	var out []model.EventFeedback
	for _, id := range sortedKeys(m.fbs) {
		f := m.fbs[id]
		if f.EventID != eventID {
			continue
		}
		s := m.students[f.StudentID]
		out = append(out, model.EventFeedback{
			ID:            f.ID,
			Rating:        f.Rating,
			Comment:       f.Comment,
			SubmittedAt:   f.SubmittedAt,
			StudentName:   s.Name,
			StudentNumber: s.StudentID,
			Department:    s.Department,
		})
	}
	return out, nil
}

func (m *mockRepo) ListFeedbackForStudent(_ context.Context, studentID int64) ([]model.StudentFeedback, error) {
	var out []model.StudentFeedback
	for _, id := range sortedKeys(m.fbs) {
		f := m.fbs[id]
		if f.StudentID != studentID {
			continue
		}
		e := m.events[f.EventID]
		out = append(out, model.StudentFeedback{
			ID:          f.ID,
			Rating:      f.Rating,
			Comment:     f.Comment,
			SubmittedAt: f.SubmittedAt,
			EventTitle:  e.Title,
			EventDate:   e.Date,
		})
	}
	return out, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (m *mockRepo) eventAggregates(eventID int64) (regs, present, feedbackCount int, avgRating float64) {
	for _, r := range m.regs {
		if r.EventID == eventID {
			regs++
		}
	}
	sum := 0
	for _, a := range m.atts {
		if a.EventID == eventID && a.Status == model.AttendancePresent {
			present++
		}
	}
	for _, f := range m.fbs {
		if f.EventID == eventID {
			feedbackCount++
			sum += f.Rating
		}
	}
	if feedbackCount > 0 {
		avgRating = round2(float64(sum) / float64(feedbackCount))
	}
	return regs, present, feedbackCount, avgRating
}

func (m *mockRepo) EventPopularity(_ context.Context) ([]model.EventPopularity, error) {
	var out []model.EventPopularity
	for _, id := range sortedKeys(m.events) {
		e := m.events[id]
		regs, present, _, avg := m.eventAggregates(e.ID)
		p := model.EventPopularity{
			EventID:           e.ID,
			Title:             e.Title,
			Date:              e.Date,
			Location:          e.Location,
			RegistrationCount: regs,
			AttendanceCount:   present,
			AverageRating:     avg,
		}
		if regs > 0 {
			p.AttendancePercentage = round2(float64(present) * 100 / float64(regs))
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RegistrationCount != out[j].RegistrationCount {
			return out[i].RegistrationCount > out[j].RegistrationCount
		}
		return out[i].AttendanceCount > out[j].AttendanceCount
	})
	return out, nil
}

func (m *mockRepo) participationFor(s *model.Student) model.StudentParticipation {
	p := model.StudentParticipation{
		StudentID:     s.ID,
		Name:          s.Name,
		Email:         s.Email,
		StudentNumber: s.StudentID,
		University:    s.University,
	}
	for _, r := range m.regs {
		if r.StudentID == s.ID {
			p.TotalRegistrations++
		}
	}
	for _, a := range m.atts {
		if a.StudentID == s.ID && a.Status == model.AttendancePresent {
			p.TotalAttendances++
		}
	}
	if p.TotalRegistrations > 0 {
		p.AttendanceRate = round2(float64(p.TotalAttendances) * 100 / float64(p.TotalRegistrations))
	}
	sum, count := 0, 0
	for _, f := range m.fbs {
		if f.StudentID == s.ID {
			sum += f.Rating
			count++
		}
	}
	if count > 0 {
		p.AverageRating = round2(float64(sum) / float64(count))
	}
	return p
}

func (m *mockRepo) StudentParticipation(_ context.Context, studentID int64) (*model.StudentParticipation, error) {
	s, ok := m.students[studentID]
	if !ok {
		return nil, repo.ErrStudentNotFound
	}
	p := m.participationFor(s)
	return &p, nil
}

func (m *mockRepo) TopStudents(_ context.Context, limit int) ([]model.StudentParticipation, error) {
	var out []model.StudentParticipation
	for _, id := range sortedKeys(m.students) {
		out = append(out, m.participationFor(m.students[id]))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalAttendances != out[j].TotalAttendances {
			return out[i].TotalAttendances > out[j].TotalAttendances
		}
		return out[i].TotalRegistrations > out[j].TotalRegistrations
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockRepo) EventReportSummary(_ context.Context, eventID int64) (*model.EventReportSummary, error) {
	e, ok := m.events[eventID]
	if !ok {
		return nil, repo.ErrEventNotFound
	}
	regs, present, feedbackCount, avg := m.eventAggregates(eventID)
	s := &model.EventReportSummary{
		Event:              *e,
		TotalRegistrations: regs,
		TotalAttendances:   present,
		AverageRating:      avg,
		FeedbackCount:      feedbackCount,
	}
	if regs > 0 {
		s.AttendancePercentage = round2(float64(present) * 100 / float64(regs))
	}
	return s, nil
}

func (m *mockRepo) EventParticipants(_ context.Context, eventID int64) ([]model.EventParticipant, error) {
	var out []model.EventParticipant
	for _, id := range sortedKeys(m.regs) {
		r := m.regs[id]
		if r.EventID != eventID {
			continue
		}
		s := m.students[r.StudentID]
		p := model.EventParticipant{
			StudentID:     s.ID,
			Name:          s.Name,
			Email:         s.Email,
			StudentNumber: s.StudentID,
			RegisteredAt:  r.RegisteredAt,
		}
		if a := m.findAttendance(r.StudentID, eventID); a != nil {
			status := a.Status
			p.AttendanceStatus = &status
		}
		for _, f := range m.fbs {
			if f.StudentID == r.StudentID && f.EventID == eventID {
				rating, comment := f.Rating, f.Comment
				p.Rating = &rating
				p.Comment = &comment
			}
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *mockRepo) DashboardStats(_ context.Context, university string) (*model.DashboardStats, error) {
	stats := &model.DashboardStats{TotalEvents: len(m.events)}
	for _, s := range m.students {
		if university == "" || s.University == university {
			stats.TotalStudents++
		}
	}
	for _, r := range m.regs {
		s := m.students[r.StudentID]
		if university == "" || (s != nil && s.University == university) {
			stats.TotalRegistrations++
		}
	}
	keys := sortedKeys(m.events)
	for i := len(keys) - 1; i >= 0 && len(stats.RecentEvents) < 5; i-- {
		e := m.events[keys[i]]
		stats.RecentEvents = append(stats.RecentEvents, model.EventWithCount{
			Event:           *e,
			RegisteredCount: m.countRegs(e.ID),
		})
	}
	return stats, nil
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
