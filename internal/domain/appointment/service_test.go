package appointment

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore/internal/platform/clock"
)

// mockRepo is a mutex-guarded in-memory ledger. The mutex doubles as
// the transaction boundary in mockTx so the concurrent booking test
// exercises real interleaving.
type mockRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*Appointment
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: make(map[uuid.UUID]*Appointment)}
}

func (m *mockRepo) Create(_ context.Context, a *Appointment) error {
	for _, ex := range m.items {
		if ex.DoctorID == a.DoctorID && ex.Date == a.Date &&
			ex.TimeSlot == a.TimeSlot && ex.Active() {
			return ErrDuplicateBooking
		}
	}
	a.ID = uuid.New()
	cp := *a
	m.items[a.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	a, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *mockRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	a, ok := m.items[id]
	if !ok {
		return ErrNotFound
	}
	a.Status = status
	return nil
}

func (m *mockRepo) ListByDoctor(_ context.Context, doctorID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	var out []*Appointment
	for _, a := range m.items {
		if a.DoctorID == doctorID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

func (m *mockRepo) AllByDoctor(_ context.Context, doctorID uuid.UUID) ([]*Appointment, error) {
	var out []*Appointment
	for _, a := range m.items {
		if a.DoctorID == doctorID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	var out []*Appointment
	for _, a := range m.items {
		if a.PatientID == patientID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

func (m *mockRepo) ListActiveByDoctorDate(_ context.Context, doctorID uuid.UUID, date string) ([]*Appointment, error) {
	var out []*Appointment
	for _, a := range m.items {
		if a.DoctorID == doctorID && a.Date == date && a.Active() {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockRepo) HasActive(_ context.Context, doctorID uuid.UUID, date, slot string) (bool, error) {
	for _, a := range m.items {
		if a.DoctorID == doctorID && a.Date == date && a.TimeSlot == slot && a.Active() {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepo) HasActivePatientDay(_ context.Context, patientID, doctorID uuid.UUID, date string) (bool, error) {
	for _, a := range m.items {
		if a.PatientID == patientID && a.DoctorID == doctorID && a.Date == date && a.Active() {
			return true, nil
		}
	}
	return false, nil
}

type openSlots struct {
	open map[string]bool
}

func (o *openSlots) IsOpen(_ context.Context, doctorID uuid.UUID, date, slot string) (bool, error) {
	return o.open[doctorID.String()+"|"+date+"|"+slot], nil
}

func newTestService(repo *mockRepo, slots *openSlots, clk clock.Clock) *Service {
	runTx := func(ctx context.Context, fn func(ctx context.Context) error) error {
		repo.mu.Lock()
		defer repo.mu.Unlock()
		return fn(ctx)
	}
	return NewService(repo, slots, clk, 300, runTx)
}

func setup(t *testing.T) (*Service, *mockRepo, *openSlots, uuid.UUID, uuid.UUID) {
	t.Helper()
	repo := newMockRepo()
	slots := &openSlots{open: make(map[string]bool)}
	svc := newTestService(repo, slots, clock.At("2025-06-01", "10:00"))
	return svc, repo, slots, uuid.New(), uuid.New()
}

func openSlot(slots *openSlots, doctorID uuid.UUID, date, slot string) {
	slots.open[doctorID.String()+"|"+date+"|"+slot] = true
}

func TestRecord(t *testing.T) {
	svc, _, slots, doctorID, patientID := setup(t)
	openSlot(slots, doctorID, "2025-06-02", "10:00-10:15")

	a := &Appointment{
		DoctorID:  doctorID,
		PatientID: patientID,
		Date:      "2025-06-02",
		TimeSlot:  "10:00-10:15",
	}
	if err := svc.Record(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID == uuid.Nil {
		t.Error("expected id to be assigned")
	}
	if a.Status != StatusPending {
		t.Errorf("status = %s, want pending", a.Status)
	}
	if a.Fee != 300 {
		t.Errorf("fee = %d, want 300", a.Fee)
	}
}

func TestRecord_Rejections(t *testing.T) {
	svc, _, slots, doctorID, patientID := setup(t)
	openSlot(slots, doctorID, "2025-06-02", "10:00-10:15")
	openSlot(slots, doctorID, "2025-06-01", "09:30-09:45")

	tests := []struct {
		name    string
		date    string
		slot    string
		wantErr error
	}{
		{"yesterday", "2025-05-31", "10:00-10:15", ErrPastDate},
		{"elapsed slot today", "2025-06-01", "09:30-09:45", ErrPastDate},
		{"slot never opened", "2025-06-02", "11:00-11:15", ErrSlotNotOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Record(context.Background(), &Appointment{
				DoctorID:  doctorID,
				PatientID: patientID,
				Date:      tt.date,
				TimeSlot:  tt.slot,
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecord_SlotStartingNowIsBookable(t *testing.T) {
	svc, _, slots, doctorID, patientID := setup(t)
	openSlot(slots, doctorID, "2025-06-01", "10:00-10:15")

	err := svc.Record(context.Background(), &Appointment{
		DoctorID:  doctorID,
		PatientID: patientID,
		Date:      "2025-06-01",
		TimeSlot:  "10:00-10:15",
	})
	if err != nil {
		t.Fatalf("slot starting at now should be bookable: %v", err)
	}
}

func TestRecord_DuplicateSlot(t *testing.T) {
	svc, _, slots, doctorID, _ := setup(t)
	openSlot(slots, doctorID, "2025-06-02", "10:00-10:15")

	first := &Appointment{DoctorID: doctorID, PatientID: uuid.New(), Date: "2025-06-02", TimeSlot: "10:00-10:15"}
	if err := svc.Record(context.Background(), first); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	second := &Appointment{DoctorID: doctorID, PatientID: uuid.New(), Date: "2025-06-02", TimeSlot: "10:00-10:15"}
	if err := svc.Record(context.Background(), second); !errors.Is(err, ErrDuplicateBooking) {
		t.Errorf("got %v, want ErrDuplicateBooking", err)
	}
}

func TestRecord_DuplicateSlotAfterCancelIsAllowed(t *testing.T) {
	svc, _, slots, doctorID, _ := setup(t)
	openSlot(slots, doctorID, "2025-06-02", "10:00-10:15")

	first := &Appointment{DoctorID: doctorID, PatientID: uuid.New(), Date: "2025-06-02", TimeSlot: "10:00-10:15"}
	if err := svc.Record(context.Background(), first); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if err := svc.Cancel(context.Background(), first.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	second := &Appointment{DoctorID: doctorID, PatientID: uuid.New(), Date: "2025-06-02", TimeSlot: "10:00-10:15"}
	if err := svc.Record(context.Background(), second); err != nil {
		t.Errorf("rebooking a cancelled slot should succeed: %v", err)
	}
}

func TestRecord_DuplicatePatientDay(t *testing.T) {
	svc, _, slots, doctorID, patientID := setup(t)
	openSlot(slots, doctorID, "2025-06-02", "10:00-10:15")
	openSlot(slots, doctorID, "2025-06-02", "11:00-11:15")

	first := &Appointment{DoctorID: doctorID, PatientID: patientID, Date: "2025-06-02", TimeSlot: "10:00-10:15"}
	if err := svc.Record(context.Background(), first); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	second := &Appointment{DoctorID: doctorID, PatientID: patientID, Date: "2025-06-02", TimeSlot: "11:00-11:15"}
	if err := svc.Record(context.Background(), second); !errors.Is(err, ErrDuplicatePatientDay) {
		t.Errorf("got %v, want ErrDuplicatePatientDay", err)
	}
}

func TestRecord_ConcurrentSameSlot(t *testing.T) {
	svc, _, slots, doctorID, _ := setup(t)
	openSlot(slots, doctorID, "2025-06-02", "10:00-10:15")

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = svc.Record(context.Background(), &Appointment{
				DoctorID:  doctorID,
				PatientID: uuid.New(),
				Date:      "2025-06-02",
				TimeSlot:  "10:00-10:15",
			})
		}(i)
	}
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrDuplicateBooking):
			dup++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if ok != 1 || dup != n-1 {
		t.Errorf("got %d successes and %d duplicates, want 1 and %d", ok, dup, n-1)
	}
}

func TestTransitions(t *testing.T) {
	svc, _, slots, doctorID, patientID := setup(t)
	openSlot(slots, doctorID, "2025-06-02", "10:00-10:15")
	ctx := context.Background()

	a := &Appointment{DoctorID: doctorID, PatientID: patientID, Date: "2025-06-02", TimeSlot: "10:00-10:15"}
	if err := svc.Record(ctx, a); err != nil {
		t.Fatalf("record: %v", err)
	}

	if err := svc.Confirm(ctx, a.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := svc.Confirm(ctx, a.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("double confirm: got %v, want ErrInvalidTransition", err)
	}
	if err := svc.Complete(ctx, a.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := svc.Cancel(ctx, a.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("cancel after complete: got %v, want ErrInvalidTransition", err)
	}
}

func TestCancel_Idempotent(t *testing.T) {
	svc, _, slots, doctorID, patientID := setup(t)
	openSlot(slots, doctorID, "2025-06-02", "10:00-10:15")
	ctx := context.Background()

	a := &Appointment{DoctorID: doctorID, PatientID: patientID, Date: "2025-06-02", TimeSlot: "10:00-10:15"}
	if err := svc.Record(ctx, a); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := svc.Cancel(ctx, a.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := svc.Cancel(ctx, a.ID); err != nil {
		t.Errorf("second cancel should be a no-op: %v", err)
	}

	got, _ := svc.Get(ctx, a.ID)
	if got.Status != StatusCancelled {
		t.Errorf("status = %s, want cancelled", got.Status)
	}
}

func TestListForDoctor_SortedAndClassified(t *testing.T) {
	svc, repo, _, doctorID, _ := setup(t)
	ctx := context.Background()

	// seeded directly; ledger rows predate "now" = 2025-06-01 10:00
	seed := []struct {
		date, slot string
	}{
		{"2025-06-01", "10:00-10:15"},
		{"2025-05-30", "14:00-14:15"},
		{"2025-06-01", "09:30-09:45"},
	}
	for _, s := range seed {
		repo.Create(ctx, &Appointment{
			DoctorID: doctorID, PatientID: uuid.New(),
			Date: s.date, TimeSlot: s.slot, Status: StatusPending,
		})
	}

	views, total, err := svc.ListForDoctor(ctx, doctorID, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}

	wantOrder := []string{"14:00-14:15", "09:30-09:45", "10:00-10:15"}
	wantStatus := []string{"past", "past", "upcoming"}
	for i, v := range views {
		if v.TimeSlot != wantOrder[i] {
			t.Errorf("views[%d].TimeSlot = %s, want %s", i, v.TimeSlot, wantOrder[i])
		}
		if v.TimeStatus != wantStatus[i] {
			t.Errorf("views[%d].TimeStatus = %s, want %s", i, v.TimeStatus, wantStatus[i])
		}
	}
}

func TestTimeStatus_BoundaryAtNow(t *testing.T) {
	now := clock.At("2025-06-01", "10:00").Now()

	ending := &Appointment{Date: "2025-06-01", TimeSlot: "09:45-10:00"}
	if got := ending.TimeStatusAt(now); got != "past" {
		t.Errorf("slot ending at now = %s, want past", got)
	}
	starting := &Appointment{Date: "2025-06-01", TimeSlot: "10:00-10:15"}
	if got := starting.TimeStatusAt(now); got != "upcoming" {
		t.Errorf("slot starting at now = %s, want upcoming", got)
	}
}
