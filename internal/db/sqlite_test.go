package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/peluqapp/peluq/internal/appointment"
)

func newTestRepo(t *testing.T) *SQLite {
	t.Helper()
	repo, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("creating test repository: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	if err := repo.EnsureCatalogue(context.Background()); err != nil {
		t.Fatalf("seeding catalogue: %v", err)
	}
	return repo
}

func bookTestAppointment(t *testing.T, repo *SQLite, date, start string) *appointment.Appointment {
	t.Helper()
	ctx := context.Background()

	client, err := repo.FindOrCreateClient(ctx, "Rosa")
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}

	a, err := appointment.New(client.ID, 1, 1, date, start)
	if err != nil {
		t.Fatalf("building appointment: %v", err)
	}
	if err := repo.CreateAppointment(ctx, a); err != nil {
		t.Fatalf("creating appointment: %v", err)
	}
	return a
}

func TestCreateAndGetAppointment(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a := bookTestAppointment(t, repo, "2026-03-02", "10:00")

	if a.ID == 0 {
		t.Fatal("CreateAppointment should assign an ID")
	}
	if a.Ref == "" {
		t.Fatal("CreateAppointment should assign a booking ref")
	}

	got, err := repo.GetAppointment(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetAppointment: %v", err)
	}
	if got.Start != "10:00" || got.Status != appointment.StatusUnconfirmed {
		t.Errorf("got %+v", got)
	}
	if got.DurationOverride != nil {
		t.Error("fresh appointment should have no override")
	}
	if got.Date.Format("2006-01-02") != "2026-03-02" {
		t.Errorf("date round trip = %v", got.Date)
	}
}

func TestGetAppointmentNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetAppointment(context.Background(), 999)
	if !errors.Is(err, appointment.ErrAppointmentNotFound) {
		t.Errorf("error = %v, want ErrAppointmentNotFound", err)
	}
}

func TestListAppointments(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	bookTestAppointment(t, repo, "2026-03-02", "10:00")
	bookTestAppointment(t, repo, "2026-03-03", "09:00")
	bookTestAppointment(t, repo, "2026-03-10", "09:00") // outside range

	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	appts, err := repo.ListAppointments(ctx, start, end)
	if err != nil {
		t.Fatalf("ListAppointments: %v", err)
	}
	if len(appts) != 2 {
		t.Fatalf("listed %d appointments, want 2", len(appts))
	}
	if appts[0].Start != "10:00" || appts[1].Start != "09:00" {
		t.Errorf("order: %s then %s", appts[0].Start, appts[1].Start)
	}
}

func TestUpdateAppointmentDetails(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a := bookTestAppointment(t, repo, "2026-03-02", "10:00")

	newDate := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	newStart := "14:00"
	newStylist := int64(2)
	err := repo.UpdateAppointmentDetails(ctx, a.ID, appointment.DetailsUpdate{
		Date:      &newDate,
		Start:     &newStart,
		StylistID: &newStylist,
	})
	if err != nil {
		t.Fatalf("UpdateAppointmentDetails: %v", err)
	}

	got, err := repo.GetAppointment(ctx, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Start != "14:00" || got.StylistID != 2 {
		t.Errorf("reschedule not applied: %+v", got)
	}
	if got.Date.Day() != 4 {
		t.Errorf("date not moved: %v", got.Date)
	}
	if got.DurationOverride != nil {
		t.Error("reschedule must leave the duration untouched")
	}
}

func TestUpdateAppointmentDuration(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a := bookTestAppointment(t, repo, "2026-03-02", "10:00")

	override := 60
	err := repo.UpdateAppointmentDetails(ctx, a.ID, appointment.DetailsUpdate{
		DurationOverride: &override,
	})
	if err != nil {
		t.Fatalf("UpdateAppointmentDetails: %v", err)
	}

	got, _ := repo.GetAppointment(ctx, a.ID)
	if got.DurationOverride == nil || *got.DurationOverride != 60 {
		t.Errorf("override = %v, want 60", got.DurationOverride)
	}

	bad := -15
	err = repo.UpdateAppointmentDetails(ctx, a.ID, appointment.DetailsUpdate{DurationOverride: &bad})
	if !errors.Is(err, appointment.ErrInvalidDuration) {
		t.Errorf("negative override error = %v, want ErrInvalidDuration", err)
	}
}

func TestUpdateDetailsEmptyAndMissing(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.UpdateAppointmentDetails(ctx, 1, appointment.DetailsUpdate{}); err != nil {
		t.Errorf("empty update should be a no-op, got %v", err)
	}

	start := "10:00"
	err := repo.UpdateAppointmentDetails(ctx, 999, appointment.DetailsUpdate{Start: &start})
	if !errors.Is(err, appointment.ErrAppointmentNotFound) {
		t.Errorf("missing id error = %v, want ErrAppointmentNotFound", err)
	}
}

func TestUpdateAppointmentStatus(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a := bookTestAppointment(t, repo, "2026-03-02", "10:00")

	if err := repo.UpdateAppointmentStatus(ctx, a.ID, appointment.StatusLate); err != nil {
		t.Fatalf("UpdateAppointmentStatus: %v", err)
	}
	got, _ := repo.GetAppointment(ctx, a.ID)
	if got.Status != appointment.StatusLate {
		t.Errorf("status = %q, want late", got.Status)
	}

	// Any state may transition to any other.
	if err := repo.UpdateAppointmentStatus(ctx, a.ID, appointment.StatusUnconfirmed); err != nil {
		t.Fatalf("late -> unconfirmed: %v", err)
	}

	if err := repo.UpdateAppointmentStatus(ctx, a.ID, appointment.Status("pending")); !errors.Is(err, appointment.ErrInvalidStatus) {
		t.Errorf("invalid status error = %v", err)
	}
}

func TestCatalogue(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	services, err := repo.ListServices(ctx)
	if err != nil {
		t.Fatalf("ListServices: %v", err)
	}
	if len(services) == 0 {
		t.Fatal("seed should create services")
	}
	if services[0].Duration <= 0 {
		t.Errorf("service duration = %d", services[0].Duration)
	}

	stylists, err := repo.ListStylists(ctx)
	if err != nil {
		t.Fatalf("ListStylists: %v", err)
	}
	if len(stylists) != 3 {
		t.Fatalf("seed should create 3 stylists, got %d", len(stylists))
	}

	// Seeding twice must not duplicate.
	if err := repo.EnsureCatalogue(ctx); err != nil {
		t.Fatal(err)
	}
	again, _ := repo.ListStylists(ctx)
	if len(again) != len(stylists) {
		t.Error("EnsureCatalogue is not idempotent")
	}
}

func TestFindOrCreateClient(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.FindOrCreateClient(ctx, "Rosa")
	if err != nil {
		t.Fatalf("FindOrCreateClient: %v", err)
	}
	second, err := repo.FindOrCreateClient(ctx, "Rosa")
	if err != nil {
		t.Fatal(err)
	}
	if first.ID != second.ID {
		t.Errorf("same name should resolve to the same client: %d vs %d", first.ID, second.ID)
	}

	got, err := repo.GetClientByID(ctx, first.ID)
	if err != nil || got.Name != "Rosa" {
		t.Errorf("GetClientByID = %+v, %v", got, err)
	}

	if _, err := repo.GetClientByID(ctx, 999); !errors.Is(err, appointment.ErrClientNotFound) {
		t.Errorf("missing client error = %v", err)
	}

	if _, err := repo.FindOrCreateClient(ctx, "   "); !errors.Is(err, appointment.ErrNoClient) {
		t.Errorf("blank name error = %v", err)
	}
}
