package repository

import (
	"context"
	"encoding/json"

	"stayhub/internal/domain/booking"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/pgconv"
	"stayhub/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingRepository struct {
	db infra.DBTX
}

func NewBookingRepository(db infra.DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingViewColumns = `
	b.id, b.property_id, p.name, b.guest_id,
	b.check_in, b.check_out, b.status, b.breakdown, b.total_minor,
	b.created_at, b.updated_at`

// Create inserts the booking with its breakdown snapshot stored verbatim.
// The bookings exclusion constraint backs the in-transaction guard, so a
// lost race still surfaces as KindConflict rather than a double booking.
func (r *BookingRepository) Create(ctx context.Context, tx infra.DBTX, b *booking.Booking) (uuid.UUID, error) {
	snapshot, err := json.Marshal(b.Breakdown())
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to marshal breakdown snapshot", err)
	}

	const q = `
		INSERT INTO bookings (id, property_id, guest_id, check_in, check_out, status, breakdown, total_minor)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	var id uuid.UUID
	err = tx.QueryRow(ctx, q,
		b.ID(),
		b.PropertyID(),
		b.GuestID(),
		pgconv.DateToPgtype(b.Period().CheckIn()),
		pgconv.DateToPgtype(b.Period().CheckOut()),
		b.Status().String(),
		snapshot,
		b.TotalMinor(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}

	return id, nil
}

// FindOccupiedPeriods returns the stay periods of bookings whose status
// still blocks availability for the property. Runs against the caller's
// transaction so the guard and the insert share one critical section.
func (r *BookingRepository) FindOccupiedPeriods(ctx context.Context, tx infra.DBTX, propertyID uuid.UUID, exclude *uuid.UUID) ([]booking.StayPeriod, error) {
	const q = `
		SELECT check_in, check_out
		FROM bookings
		WHERE property_id = $1
		  AND status = ANY($2)
		  AND ($3::uuid IS NULL OR id <> $3)`

	statuses := []string{booking.StatusPending.String(), booking.StatusApproved.String()}

	rows, err := tx.Query(ctx, q, propertyID, statuses, pgconv.UUIDPtrToPgtype(exclude))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query occupied periods", err)
	}
	defer rows.Close()

	var periods []booking.StayPeriod
	for rows.Next() {
		var checkIn, checkOut pgtype.Date
		if err := rows.Scan(&checkIn, &checkOut); err != nil {
			return nil, infra.WrapRepoErr("failed to scan occupied period", err)
		}
		p, err := booking.NewStayPeriod(pgconv.DateFromPgtype(checkIn), pgconv.DateFromPgtype(checkOut))
		if err != nil {
			return nil, infra.WrapRepoErr("stored booking has invalid period", err)
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate occupied periods", err)
	}

	return periods, nil
}

func (r *BookingRepository) FindByID(ctx context.Context, db infra.DBTX, id uuid.UUID) (*readmodel.BookingRM, error) {
	q := `
		SELECT` + bookingViewColumns + `
		FROM bookings b
		JOIN properties p ON p.id = b.property_id
		WHERE b.id = $1`

	rm, err := scanBookingRM(db.QueryRow(ctx, q, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by id", err)
	}
	return rm, nil
}

// FindForUpdate re-reads the booking's current status inside the caller's
// transaction, locking the row for the optimistic check that follows.
func (r *BookingRepository) FindForUpdate(ctx context.Context, tx infra.DBTX, id uuid.UUID) (*readmodel.BookingRM, error) {
	q := `
		SELECT` + bookingViewColumns + `
		FROM bookings b
		JOIN properties p ON p.id = b.property_id
		WHERE b.id = $1
		FOR UPDATE OF b`

	rm, err := scanBookingRM(tx.QueryRow(ctx, q, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock booking", err)
	}
	return rm, nil
}

// UpdateStatusCAS compares-and-swaps the status. Zero rows means the status
// changed since it was read; the caller maps that to a conflict.
func (r *BookingRepository) UpdateStatusCAS(ctx context.Context, tx infra.DBTX, id uuid.UUID, from, to booking.Status) (bool, error) {
	const q = `
		UPDATE bookings
		SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`

	tag, err := tx.Exec(ctx, q, id, from.String(), to.String())
	if err != nil {
		return false, infra.WrapRepoErr("failed to update booking status", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Delete is the admin-only hard delete, distinct from cancellation.
func (r *BookingRepository) Delete(ctx context.Context, tx infra.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) FindByGuestID(ctx context.Context, db infra.DBTX, guestID uuid.UUID) ([]*readmodel.BookingListRM, error) {
	const q = `
		SELECT b.id, b.property_id, p.name, b.check_in, b.check_out, b.status, b.total_minor, b.created_at
		FROM bookings b
		JOIN properties p ON p.id = b.property_id
		WHERE b.guest_id = $1
		ORDER BY b.created_at DESC, b.id DESC`

	rows, err := db.Query(ctx, q, guestID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find bookings by guest", err)
	}
	defer rows.Close()

	var result []*readmodel.BookingListRM
	for rows.Next() {
		var (
			item              readmodel.BookingListRM
			checkIn, checkOut pgtype.Date
			createdAt         pgtype.Timestamptz
		)
		if err := rows.Scan(&item.ID, &item.PropertyID, &item.PropertyName, &checkIn, &checkOut, &item.Status, &item.TotalMinor, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list row", err)
		}
		item.CheckIn = pgconv.DateFromPgtype(checkIn)
		item.CheckOut = pgconv.DateFromPgtype(checkOut)
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking list", err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookingRM(row rowScanner) (*readmodel.BookingRM, error) {
	var (
		rm                   readmodel.BookingRM
		checkIn, checkOut    pgtype.Date
		snapshot             []byte
		createdAt, updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(
		&rm.ID, &rm.PropertyID, &rm.PropertyName, &rm.GuestID,
		&checkIn, &checkOut, &rm.Status, &snapshot, &rm.TotalMinor,
		&createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(snapshot, &rm.Breakdown); err != nil {
		return nil, err
	}
	rm.CheckIn = pgconv.DateFromPgtype(checkIn)
	rm.CheckOut = pgconv.DateFromPgtype(checkOut)
	rm.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	rm.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &rm, nil
}
