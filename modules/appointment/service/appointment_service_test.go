package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"agenda-api/core/errors"
	"agenda-api/core/queue"
	"agenda-api/modules/appointment/dto"
	"agenda-api/modules/appointment/entity"
	"agenda-api/modules/appointment/repository"
	authentity "agenda-api/modules/auth/entity"

	"github.com/google/uuid"
)

// fakeAppointmentRepo mimics the database unique constraint with a mutex so
// concurrent Create calls race exactly like real inserts would.
type fakeAppointmentRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{items: map[uuid.UUID]*entity.Appointment{}}
}

func (f *fakeAppointmentRepo) Insert(ctx context.Context, a *entity.Appointment) (*entity.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.Day.Equal(a.Day) && existing.SlotStart == a.SlotStart {
			return nil, repository.ErrDuplicateSlot
		}
	}
	stored := *a
	stored.CreatedAt = time.Now()
	f.items[a.ID] = &stored
	return &stored, nil
}

func (f *fakeAppointmentRepo) OccupiedSlots(ctx context.Context, day time.Time) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var slots []string
	for _, a := range f.items {
		if a.Day.Equal(day) {
			slots = append(slots, a.SlotStart)
		}
	}
	return slots, nil
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAppointmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, id)
	return nil
}

func (f *fakeAppointmentRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Appointment
	for _, a := range f.items {
		if a.OwnerID == ownerID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) ListAll(ctx context.Context) ([]entity.AppointmentWithOwner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.AppointmentWithOwner
	for _, a := range f.items {
		out = append(out, entity.AppointmentWithOwner{Appointment: *a})
	}
	return out, nil
}

type fakeScheduleProvider struct {
	slots []string
	err   *errors.AppError
}

func (f *fakeScheduleProvider) ActiveSlots(ctx context.Context) ([]string, *errors.AppError) {
	if f.err != nil {
		return nil, f.err
	}
	return f.slots, nil
}

type fakeUserDirectory struct {
	users map[uuid.UUID]*authentity.User
}

func (f *fakeUserDirectory) GetUserByID(ctx context.Context, id uuid.UUID) (*authentity.User, *errors.AppError) {
	u, ok := f.users[id]
	if !ok {
		return nil, errors.New(errors.ErrNotFound, "user not found")
	}
	return u, nil
}

type fakeConfirmationQueue struct {
	mu       sync.Mutex
	enqueued []queue.BookingConfirmationPayload
}

func (f *fakeConfirmationQueue) EnqueueBookingConfirmation(ctx context.Context, p queue.BookingConfirmationPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enqueued = append(f.enqueued, p)
	return nil
}

func newTestService(t *testing.T) (AppointmentServiceInterface, *fakeAppointmentRepo, *fakeUserDirectory, *fakeConfirmationQueue, uuid.UUID) {
	t.Helper()
	repo := newFakeAppointmentRepo()
	userID := uuid.New()
	users := &fakeUserDirectory{users: map[uuid.UUID]*authentity.User{
		userID: {ID: userID, FirstName: "Ana", LastName: "Lopez", Email: "ana@example.com"},
	}}
	q := &fakeConfirmationQueue{}
	svc := NewAppointmentService(repo, &fakeScheduleProvider{
		slots: []string{"09:00", "09:30", "10:00", "10:30"},
	}, users, q)
	return svc, repo, users, q, userID
}

func TestCreateAppointment(t *testing.T) {
	svc, _, _, q, userID := newTestService(t)

	resp, appErr := svc.Create(context.Background(), userID, false, &dto.CreateAppointmentRequest{
		Date:      "2026-09-01",
		SlotStart: "09:30",
		Reason:    "checkup",
	})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if resp.Date != "2026-09-01" || resp.SlotStart != "09:30" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.Code == "" {
		t.Error("expected a reference code")
	}
	if resp.OwnerID != userID.String() {
		t.Errorf("expected owner %s, got %s", userID, resp.OwnerID)
	}

	occ, appErr := svc.Occupied(context.Background(), "2026-09-01")
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if len(occ.Occupied) != 1 || occ.Occupied[0] != "09:30" {
		t.Errorf("expected occupancy [09:30], got %v", occ.Occupied)
	}

	if len(q.enqueued) != 1 {
		t.Fatalf("expected one confirmation enqueued, got %d", len(q.enqueued))
	}
	if q.enqueued[0].Email != "ana@example.com" || q.enqueued[0].SlotStart != "09:30" {
		t.Errorf("unexpected confirmation payload: %+v", q.enqueued[0])
	}
}

func TestCreateAppointmentValidation(t *testing.T) {
	svc, _, _, _, userID := newTestService(t)

	tests := []struct {
		name string
		req  dto.CreateAppointmentRequest
	}{
		{"missing date", dto.CreateAppointmentRequest{SlotStart: "09:00"}},
		{"missing slot", dto.CreateAppointmentRequest{Date: "2026-09-01"}},
		{"bad date format", dto.CreateAppointmentRequest{Date: "01/09/2026", SlotStart: "09:00"}},
		{"bad slot format", dto.CreateAppointmentRequest{Date: "2026-09-01", SlotStart: "9am"}},
		{"slot outside schedule", dto.CreateAppointmentRequest{Date: "2026-09-01", SlotStart: "22:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, appErr := svc.Create(context.Background(), userID, false, &tt.req)
			if appErr == nil {
				t.Fatal("expected error")
			}
			if appErr.Code != errors.ErrInvalidInput {
				t.Errorf("expected %s, got %s", errors.ErrInvalidInput, appErr.Code)
			}
		})
	}
}

func TestCreateAppointmentSlotTaken(t *testing.T) {
	svc, _, _, _, userID := newTestService(t)

	req := &dto.CreateAppointmentRequest{Date: "2026-09-01", SlotStart: "10:00"}
	if _, appErr := svc.Create(context.Background(), userID, false, req); appErr != nil {
		t.Fatalf("first booking failed: %v", appErr)
	}

	_, appErr := svc.Create(context.Background(), userID, false, req)
	if appErr == nil {
		t.Fatal("expected second booking to fail")
	}
	if appErr.Code != errors.ErrSlotTaken {
		t.Errorf("expected %s, got %s", errors.ErrSlotTaken, appErr.Code)
	}
}

// Concurrent bookings for the same slot must produce exactly one winner.
func TestCreateAppointmentConcurrent(t *testing.T) {
	svc, _, users, _, _ := newTestService(t)

	const n = 20
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.New()
		users.users[ids[i]] = &authentity.User{ID: ids[i], Email: "u@example.com"}
	}

	var wg sync.WaitGroup
	results := make(chan *errors.AppError, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(owner uuid.UUID) {
			defer wg.Done()
			_, appErr := svc.Create(context.Background(), owner, false, &dto.CreateAppointmentRequest{
				Date:      "2026-09-02",
				SlotStart: "09:00",
			})
			results <- appErr
		}(ids[i])
	}
	wg.Wait()
	close(results)

	var wins, taken int
	for appErr := range results {
		switch {
		case appErr == nil:
			wins++
		case appErr.Code == errors.ErrSlotTaken:
			taken++
		default:
			t.Fatalf("unexpected error: %v", appErr)
		}
	}
	if wins != 1 {
		t.Errorf("expected exactly 1 winner, got %d", wins)
	}
	if taken != n-1 {
		t.Errorf("expected %d SLOT_TAKEN, got %d", n-1, taken)
	}
}

func TestCreateOnBehalf(t *testing.T) {
	svc, _, users, _, adminID := newTestService(t)

	otherID := uuid.New()
	users.users[otherID] = &authentity.User{ID: otherID, FirstName: "Luis", Email: "luis@example.com"}

	t.Run("non admin cannot book for others", func(t *testing.T) {
		_, appErr := svc.Create(context.Background(), adminID, false, &dto.CreateAppointmentRequest{
			Date:      "2026-09-03",
			SlotStart: "09:00",
			OwnerID:   otherID.String(),
		})
		if appErr == nil || appErr.Code != errors.ErrForbidden {
			t.Fatalf("expected FORBIDDEN, got %v", appErr)
		}
	})

	t.Run("non admin may name themselves", func(t *testing.T) {
		resp, appErr := svc.Create(context.Background(), otherID, false, &dto.CreateAppointmentRequest{
			Date:      "2026-09-03",
			SlotStart: "09:30",
			OwnerID:   otherID.String(),
		})
		if appErr != nil {
			t.Fatalf("unexpected error: %v", appErr)
		}
		if resp.OwnerID != otherID.String() {
			t.Errorf("expected owner %s, got %s", otherID, resp.OwnerID)
		}
	})

	t.Run("admin books for another user", func(t *testing.T) {
		resp, appErr := svc.Create(context.Background(), adminID, true, &dto.CreateAppointmentRequest{
			Date:      "2026-09-03",
			SlotStart: "10:00",
			OwnerID:   otherID.String(),
		})
		if appErr != nil {
			t.Fatalf("unexpected error: %v", appErr)
		}
		if resp.OwnerID != otherID.String() {
			t.Errorf("expected owner %s, got %s", otherID, resp.OwnerID)
		}
	})

	t.Run("admin target must exist", func(t *testing.T) {
		_, appErr := svc.Create(context.Background(), adminID, true, &dto.CreateAppointmentRequest{
			Date:      "2026-09-03",
			SlotStart: "10:30",
			OwnerID:   uuid.New().String(),
		})
		if appErr == nil || appErr.Code != errors.ErrNotFound {
			t.Fatalf("expected NOT_FOUND, got %v", appErr)
		}
	})
}

// Full booking flow: one-slot schedule, first caller wins, second loses,
// the admin listing shows the single winner.
func TestBookingScenario(t *testing.T) {
	repo := newFakeAppointmentRepo()
	userA := uuid.New()
	userB := uuid.New()
	users := &fakeUserDirectory{users: map[uuid.UUID]*authentity.User{
		userA: {ID: userA, FirstName: "Ana", Email: "ana@example.com"},
		userB: {ID: userB, FirstName: "Luis", Email: "luis@example.com"},
	}}
	svc := NewAppointmentService(repo, &fakeScheduleProvider{slots: []string{"09:00"}}, users, nil)

	created, appErr := svc.Create(context.Background(), userA, false, &dto.CreateAppointmentRequest{
		Date: "2024-06-01", SlotStart: "09:00",
	})
	if appErr != nil {
		t.Fatalf("first booking failed: %v", appErr)
	}

	if _, appErr := svc.Create(context.Background(), userB, false, &dto.CreateAppointmentRequest{
		Date: "2024-06-01", SlotStart: "09:00",
	}); appErr == nil || appErr.Code != errors.ErrSlotTaken {
		t.Fatalf("expected SLOT_TAKEN for second booking, got %v", appErr)
	}

	all, appErr := svc.ListAll(context.Background())
	if appErr != nil {
		t.Fatalf("list failed: %v", appErr)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(all))
	}
	if all[0].ID != created.ID || all[0].OwnerID != userA.String() {
		t.Errorf("unexpected booking in listing: %+v", all[0])
	}
}

func TestOccupiedEmptyDay(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)

	occ, appErr := svc.Occupied(context.Background(), "2026-12-24")
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if occ.Occupied == nil {
		t.Error("occupied must be an empty slice, not nil")
	}
	if len(occ.Occupied) != 0 {
		t.Errorf("expected no occupancy, got %v", occ.Occupied)
	}
}

func TestCancelFreesSlot(t *testing.T) {
	svc, _, _, _, userID := newTestService(t)

	req := &dto.CreateAppointmentRequest{Date: "2026-09-04", SlotStart: "09:00"}
	created, appErr := svc.Create(context.Background(), userID, false, req)
	if appErr != nil {
		t.Fatalf("booking failed: %v", appErr)
	}

	id, _ := uuid.Parse(created.ID)
	if appErr := svc.Cancel(context.Background(), id, userID, false); appErr != nil {
		t.Fatalf("cancel failed: %v", appErr)
	}

	// The slot is free again and can be rebooked.
	if _, appErr := svc.Create(context.Background(), userID, false, req); appErr != nil {
		t.Fatalf("rebooking freed slot failed: %v", appErr)
	}
}

func TestCancelAuthorization(t *testing.T) {
	svc, _, users, _, ownerID := newTestService(t)

	strangerID := uuid.New()
	users.users[strangerID] = &authentity.User{ID: strangerID, Email: "x@example.com"}

	created, appErr := svc.Create(context.Background(), ownerID, false, &dto.CreateAppointmentRequest{
		Date:      "2026-09-05",
		SlotStart: "09:00",
	})
	if appErr != nil {
		t.Fatalf("booking failed: %v", appErr)
	}
	id, _ := uuid.Parse(created.ID)

	if appErr := svc.Cancel(context.Background(), id, strangerID, false); appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Fatalf("expected FORBIDDEN for stranger, got %v", appErr)
	}

	// Admins may cancel anyone's appointment.
	if appErr := svc.Cancel(context.Background(), id, strangerID, true); appErr != nil {
		t.Fatalf("admin cancel failed: %v", appErr)
	}

	if appErr := svc.Cancel(context.Background(), id, ownerID, false); appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Fatalf("expected NOT_FOUND for cancelled appointment, got %v", appErr)
	}
}

func TestCreateScheduleNotConfigured(t *testing.T) {
	repo := newFakeAppointmentRepo()
	userID := uuid.New()
	users := &fakeUserDirectory{users: map[uuid.UUID]*authentity.User{
		userID: {ID: userID, Email: "a@example.com"},
	}}
	svc := NewAppointmentService(repo, &fakeScheduleProvider{
		err: errors.New(errors.ErrScheduleNotConfigured, "schedule has not been configured"),
	}, users, nil)

	_, appErr := svc.Create(context.Background(), userID, false, &dto.CreateAppointmentRequest{
		Date:      "2026-09-01",
		SlotStart: "09:00",
	})
	if appErr == nil || appErr.Code != errors.ErrScheduleNotConfigured {
		t.Fatalf("expected SCHEDULE_NOT_CONFIGURED, got %v", appErr)
	}
}

func TestListMine(t *testing.T) {
	svc, _, users, _, userID := newTestService(t)

	otherID := uuid.New()
	users.users[otherID] = &authentity.User{ID: otherID, Email: "o@example.com"}

	for _, slot := range []string{"09:00", "09:30"} {
		if _, appErr := svc.Create(context.Background(), userID, false, &dto.CreateAppointmentRequest{
			Date: "2026-09-06", SlotStart: slot,
		}); appErr != nil {
			t.Fatalf("booking failed: %v", appErr)
		}
	}
	if _, appErr := svc.Create(context.Background(), otherID, false, &dto.CreateAppointmentRequest{
		Date: "2026-09-06", SlotStart: "10:00",
	}); appErr != nil {
		t.Fatalf("booking failed: %v", appErr)
	}

	mine, appErr := svc.ListMine(context.Background(), userID)
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if len(mine) != 2 {
		t.Errorf("expected 2 appointments, got %d", len(mine))
	}
	for _, a := range mine {
		if a.OwnerID != userID.String() {
			t.Errorf("foreign appointment in listing: %+v", a)
		}
	}
}
