package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines the booking store. List results come back ordered:
// start descending, except the end-before query (end ascending) and the
// start-after query (start ascending).
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)
	Update(ctx context.Context, b *Booking) error

	ListByBooker(ctx context.Context, bookerID int64) ([]*Booking, error)
	ListByBookerAndStatus(ctx context.Context, bookerID int64, status Status) ([]*Booking, error)
	ListByBookerEndBefore(ctx context.Context, bookerID int64, t time.Time) ([]*Booking, error)
	ListByBookerStartAfter(ctx context.Context, bookerID int64, t time.Time) ([]*Booking, error)
	ListByItems(ctx context.Context, itemIDs []int64) ([]*Booking, error)
	ListByItemsAndStatus(ctx context.Context, itemIDs []int64, status Status) ([]*Booking, error)

	// ByBookerAndItem returns nil (no error) when the booker never booked the item.
	ByBookerAndItem(ctx context.Context, bookerID, itemID int64) (*Booking, error)
	// LastApproved returns the approved booking running at t, nil when none.
	LastApproved(ctx context.Context, itemID int64, t time.Time) (*Booking, error)
	// NextApproved returns the next approved booking starting after t, nil when none.
	NextApproved(ctx context.Context, itemID int64, t time.Time) (*Booking, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("start_date", "end_date", "status", "item_id", "booker_id").
		Values(b.Start, b.End, b.Status, b.ItemID, b.BookerID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.ID); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	query, args, err := selectBookings().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	var b Booking
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&b.ID, &b.Start, &b.End, &b.Status, &b.ItemID, &b.ItemName, &b.BookerID, &b.BookerName,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) Update(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("start_date", b.Start).
		Set("end_date", b.End).
		Set("status", b.Status).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListByBooker(ctx context.Context, bookerID int64) ([]*Booking, error) {
	return r.queryList(ctx, selectBookings().
		Where(squirrel.Eq{"b.booker_id": bookerID}).
		OrderBy("b.start_date DESC"))
}

func (r *pgxRepository) ListByBookerAndStatus(ctx context.Context, bookerID int64, status Status) ([]*Booking, error) {
	return r.queryList(ctx, selectBookings().
		Where(squirrel.Eq{"b.booker_id": bookerID, "b.status": status}).
		OrderBy("b.start_date DESC"))
}

func (r *pgxRepository) ListByBookerEndBefore(ctx context.Context, bookerID int64, t time.Time) ([]*Booking, error) {
	return r.queryList(ctx, selectBookings().
		Where(squirrel.Eq{"b.booker_id": bookerID}).
		Where(squirrel.Lt{"b.end_date": t}).
		OrderBy("b.end_date ASC"))
}

func (r *pgxRepository) ListByBookerStartAfter(ctx context.Context, bookerID int64, t time.Time) ([]*Booking, error) {
	return r.queryList(ctx, selectBookings().
		Where(squirrel.Eq{"b.booker_id": bookerID}).
		Where(squirrel.Gt{"b.start_date": t}).
		OrderBy("b.start_date ASC"))
}

func (r *pgxRepository) ListByItems(ctx context.Context, itemIDs []int64) ([]*Booking, error) {
	return r.queryList(ctx, selectBookings().
		Where(squirrel.Eq{"b.item_id": itemIDs}).
		OrderBy("b.start_date DESC"))
}

func (r *pgxRepository) ListByItemsAndStatus(ctx context.Context, itemIDs []int64, status Status) ([]*Booking, error) {
	return r.queryList(ctx, selectBookings().
		Where(squirrel.Eq{"b.item_id": itemIDs, "b.status": status}).
		OrderBy("b.start_date DESC"))
}

func (r *pgxRepository) ByBookerAndItem(ctx context.Context, bookerID, itemID int64) (*Booking, error) {
	return r.queryOne(ctx, selectBookings().
		Where(squirrel.Eq{"b.booker_id": bookerID, "b.item_id": itemID}).
		Limit(1))
}

func (r *pgxRepository) LastApproved(ctx context.Context, itemID int64, t time.Time) (*Booking, error) {
	return r.queryOne(ctx, selectBookings().
		Where(squirrel.Eq{"b.item_id": itemID, "b.status": StatusApproved}).
		Where(squirrel.Lt{"b.start_date": t}).
		Where(squirrel.Gt{"b.end_date": t}).
		OrderBy("b.end_date ASC").
		Limit(1))
}

func (r *pgxRepository) NextApproved(ctx context.Context, itemID int64, t time.Time) (*Booking, error) {
	return r.queryOne(ctx, selectBookings().
		Where(squirrel.Eq{"b.item_id": itemID, "b.status": StatusApproved}).
		Where(squirrel.Gt{"b.start_date": t}).
		OrderBy("b.start_date ASC").
		Limit(1))
}

func selectBookings() squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select(
		"b.id", "b.start_date", "b.end_date", "b.status",
		"b.item_id", "i.name", "b.booker_id", "u.name",
	).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id")
}

func (r *pgxRepository) queryList(ctx context.Context, builder squirrel.SelectBuilder) ([]*Booking, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.Start, &b.End, &b.Status, &b.ItemID, &b.ItemName, &b.BookerID, &b.BookerName,
		); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, rows.Err()
}

func (r *pgxRepository) queryOne(ctx context.Context, builder squirrel.SelectBuilder) (*Booking, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build booking query failed: %w", err)
	}

	var b Booking
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&b.ID, &b.Start, &b.End, &b.Status, &b.ItemID, &b.ItemName, &b.BookerID, &b.BookerName,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query booking failed: %w", err)
	}
	return &b, nil
}
