package mysql

import (
	"context"
	"testing"
	"time"

	"library-backend/internal/domain/reservation"
)

func TestReservation_NotifyNext_PicksOldestActive(t *testing.T) {
	db := openTestDB(t)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	seed := []*reservation.Reservation{
		{BookID: 1, MemberID: 1, ReservedAt: day(2024, 1, 1), Status: reservation.StatusCancelled},
		{BookID: 1, MemberID: 2, ReservedAt: day(2024, 1, 3), Status: reservation.StatusActive},
		{BookID: 1, MemberID: 3, ReservedAt: day(2024, 1, 2), Status: reservation.StatusActive},
		{BookID: 2, MemberID: 4, ReservedAt: day(2023, 1, 1), Status: reservation.StatusActive},
	}
	for _, r := range seed {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	at := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	got, err := repo.NotifyNext(ctx, 1, at)
	if err != nil {
		t.Fatalf("NotifyNext: %v", err)
	}
	if got == nil || got.MemberID != 3 {
		t.Fatalf("expected member 3 to be notified, got %+v", got)
	}

	got, err = repo.NotifyNext(ctx, 1, at)
	if err != nil || got == nil || got.MemberID != 2 {
		t.Fatalf("second NotifyNext: %+v, %v", got, err)
	}

	got, err = repo.NotifyNext(ctx, 1, at)
	if err != nil || got != nil {
		t.Fatalf("expected nobody left, got %+v, %v", got, err)
	}

	stored, err := repo.GetByID(ctx, seed[2].ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.NotifiedAt == nil || !stored.NotifiedAt.Equal(at) {
		t.Fatalf("notified_at not stored: %+v", stored)
	}
}

func TestReservation_StatusTransitions(t *testing.T) {
	db := openTestDB(t)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	r := &reservation.Reservation{BookID: 1, MemberID: 1, ReservedAt: day(2024, 1, 1), Status: reservation.StatusActive}
	if err := repo.Create(ctx, r); err != nil {
		t.Fatalf("Create: %v", err)
	}
	ok, err := repo.UpdateStatus(ctx, r.ID, reservation.StatusActive, reservation.StatusCancelled)
	if err != nil || !ok {
		t.Fatalf("cancel: ok=%v err=%v", ok, err)
	}
	ok, err = repo.UpdateStatus(ctx, r.ID, reservation.StatusActive, reservation.StatusCancelled)
	if err != nil || ok {
		t.Fatalf("second cancel: ok=%v err=%v", ok, err)
	}

	other := &reservation.Reservation{BookID: 1, MemberID: 2, ReservedAt: day(2024, 1, 1), Status: reservation.StatusActive}
	if err := repo.Create(ctx, other); err != nil {
		t.Fatalf("Create: %v", err)
	}
	n, err := repo.FulfillForMember(ctx, 1, 2)
	if err != nil || n != 1 {
		t.Fatalf("FulfillForMember = %d, %v", n, err)
	}
	list, err := repo.List(ctx, reservation.Filter{Status: reservation.StatusFulfilled})
	if err != nil || len(list) != 1 || list[0].MemberID != 2 {
		t.Fatalf("List fulfilled: %+v, %v", list, err)
	}
}

func TestReservation_DeleteByBookOrMember(t *testing.T) {
	db := openTestDB(t)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	for _, r := range []*reservation.Reservation{
		{BookID: 1, MemberID: 1, ReservedAt: day(2024, 1, 1), Status: reservation.StatusActive},
		{BookID: 1, MemberID: 2, ReservedAt: day(2024, 1, 2), Status: reservation.StatusCancelled},
		{BookID: 2, MemberID: 2, ReservedAt: day(2024, 1, 3), Status: reservation.StatusActive},
		{BookID: 3, MemberID: 3, ReservedAt: day(2024, 1, 4), Status: reservation.StatusActive},
	} {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	if _, err := repo.Delete(ctx, reservation.Filter{}); err == nil {
		t.Fatal("unscoped delete must fail")
	}

	n, err := repo.Delete(ctx, reservation.Filter{BookID: 1})
	if err != nil || n != 2 {
		t.Fatalf("Delete by book: %d, %v", n, err)
	}
	n, err = repo.Delete(ctx, reservation.Filter{MemberID: 2})
	if err != nil || n != 1 {
		t.Fatalf("Delete by member: %d, %v", n, err)
	}

	left, err := repo.List(ctx, reservation.Filter{})
	if err != nil || len(left) != 1 || left[0].BookID != 3 {
		t.Fatalf("unexpected rows left: %+v, %v", left, err)
	}
}
