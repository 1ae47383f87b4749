package repository

import (
	"context"
	"time"

	"github.com/7Pranavv/Evenoo/internal/database"
	"github.com/7Pranavv/Evenoo/internal/model"
	apperrors "github.com/7Pranavv/Evenoo/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type VendorRepository interface {
	CreateVendor(ctx context.Context, v *model.Vendor) (*model.Vendor, error)
	FindVendorByID(ctx context.Context, id uuid.UUID) (*model.Vendor, error)
	FindVendorByUID(ctx context.Context, uid uuid.UUID) (*model.Vendor, error)

	CreateItem(ctx context.Context, item *model.VendorInventoryItem) (*model.VendorInventoryItem, error)
	FindItem(ctx context.Context, id uuid.UUID) (*model.VendorInventoryItem, error)
	ListItems(ctx context.Context, vendorID uuid.UUID) ([]*model.VendorInventoryItem, error)
	UpdateItemAvailability(ctx context.Context, id uuid.UUID, availability model.Availability) (*model.VendorInventoryItem, error)

	CreateBooking(ctx context.Context, b *model.VendorBooking) (*model.VendorBooking, error)
	FindBooking(ctx context.Context, id uuid.UUID) (*model.VendorBooking, error)
	ListBookingsByVendor(ctx context.Context, vendorID uuid.UUID) ([]*model.VendorBooking, error)
	ListBookingsByOrganizer(ctx context.Context, organizerUID uuid.UUID) ([]*model.VendorBooking, error)
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus, response *string) (*model.VendorBooking, error)
}

type VendorRepositoryImpl struct {
	store
}

func NewVendorRepository(db database.DBTX, timeout time.Duration) VendorRepository {
	return &VendorRepositoryImpl{store: newStore(db, timeout)}
}

const vendorColumns = `id, uid, name, category, description, rating, contact_email, contact_phone, created_at, updated_at`

const itemColumns = `id, vendor_id, name, category, description, price, pricing_type, quantity,
	availability_status, created_at, updated_at`

const bookingColumns = `id, vendor_id, organizer_uid, organizer_name, event_id, event_name,
	inventory_item_id, inventory_item_name, message, vendor_response, status, created_at, updated_at`

func scanVendor(row pgx.Row) (*model.Vendor, error) {
	var v model.Vendor
	err := row.Scan(&v.ID, &v.UID, &v.Name, &v.Category, &v.Description, &v.Rating,
		&v.ContactEmail, &v.ContactPhone, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func scanItem(row pgx.Row) (*model.VendorInventoryItem, error) {
	var i model.VendorInventoryItem
	err := row.Scan(&i.ID, &i.VendorID, &i.Name, &i.Category, &i.Description, &i.Price, &i.PricingType,
		&i.Quantity, &i.AvailabilityStatus, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func scanBooking(row pgx.Row) (*model.VendorBooking, error) {
	var b model.VendorBooking
	err := row.Scan(&b.ID, &b.VendorID, &b.OrganizerUID, &b.OrganizerName, &b.EventID, &b.EventName,
		&b.InventoryItemID, &b.InventoryItemName, &b.Message, &b.VendorResponse, &b.Status,
		&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *VendorRepositoryImpl) CreateVendor(ctx context.Context, v *model.Vendor) (*model.Vendor, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO vendors (uid, name, category, description, contact_email, contact_phone)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + vendorColumns

	created, err := scanVendor(r.db.QueryRow(ctx, query, v.UID, v.Name, v.Category, v.Description, v.ContactEmail, v.ContactPhone))
	if err != nil {
		return nil, wrapErr("create vendor", err, nil)
	}
	return created, nil
}

func (r *VendorRepositoryImpl) FindVendorByID(ctx context.Context, id uuid.UUID) (*model.Vendor, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	v, err := scanVendor(r.db.QueryRow(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr("find vendor", err, apperrors.ErrVendorNotFound)
	}
	return v, nil
}

func (r *VendorRepositoryImpl) FindVendorByUID(ctx context.Context, uid uuid.UUID) (*model.Vendor, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	v, err := scanVendor(r.db.QueryRow(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE uid = $1`, uid))
	if err != nil {
		return nil, wrapErr("find vendor by uid", err, apperrors.ErrVendorNotFound)
	}
	return v, nil
}

func (r *VendorRepositoryImpl) CreateItem(ctx context.Context, item *model.VendorInventoryItem) (*model.VendorInventoryItem, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO vendor_inventory (vendor_id, name, category, description, price, pricing_type, quantity, availability_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + itemColumns

	created, err := scanItem(r.db.QueryRow(ctx, query,
		item.VendorID, item.Name, item.Category, item.Description, item.Price, item.PricingType,
		item.Quantity, model.AvailabilityAvailable,
	))
	if err != nil {
		return nil, wrapErr("create inventory item", err, nil)
	}
	return created, nil
}

func (r *VendorRepositoryImpl) FindItem(ctx context.Context, id uuid.UUID) (*model.VendorInventoryItem, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	item, err := scanItem(r.db.QueryRow(ctx, `SELECT `+itemColumns+` FROM vendor_inventory WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr("find inventory item", err, apperrors.ErrInventoryItemNotFound)
	}
	return item, nil
}

func (r *VendorRepositoryImpl) ListItems(ctx context.Context, vendorID uuid.UUID) ([]*model.VendorInventoryItem, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT `+itemColumns+` FROM vendor_inventory WHERE vendor_id = $1 ORDER BY created_at DESC`, vendorID)
	if err != nil {
		return nil, wrapErr("list inventory", err, nil)
	}
	items, err := collect(rows, scanItem)
	if err != nil {
		return nil, wrapErr("list inventory", err, nil)
	}
	return items, nil
}

func (r *VendorRepositoryImpl) UpdateItemAvailability(ctx context.Context, id uuid.UUID, availability model.Availability) (*model.VendorInventoryItem, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `UPDATE vendor_inventory SET availability_status = $1, updated_at = $2 WHERE id = $3 RETURNING ` + itemColumns
	item, err := scanItem(r.db.QueryRow(ctx, query, availability, time.Now().UTC(), id))
	if err != nil {
		return nil, wrapErr("update availability", err, apperrors.ErrInventoryItemNotFound)
	}
	return item, nil
}

func (r *VendorRepositoryImpl) CreateBooking(ctx context.Context, b *model.VendorBooking) (*model.VendorBooking, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO vendor_bookings (
			vendor_id, organizer_uid, organizer_name, event_id, event_name,
			inventory_item_id, inventory_item_name, message, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + bookingColumns

	created, err := scanBooking(r.db.QueryRow(ctx, query,
		b.VendorID, b.OrganizerUID, b.OrganizerName, b.EventID, b.EventName,
		b.InventoryItemID, b.InventoryItemName, b.Message, model.BookingStatusPending,
	))
	if err != nil {
		return nil, wrapErr("create booking", err, nil)
	}
	return created, nil
}

func (r *VendorRepositoryImpl) FindBooking(ctx context.Context, id uuid.UUID) (*model.VendorBooking, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	b, err := scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM vendor_bookings WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr("find booking", err, apperrors.ErrBookingNotFound)
	}
	return b, nil
}

func (r *VendorRepositoryImpl) ListBookingsByVendor(ctx context.Context, vendorID uuid.UUID) ([]*model.VendorBooking, error) {
	return r.listBookings(ctx, `SELECT `+bookingColumns+` FROM vendor_bookings WHERE vendor_id = $1 ORDER BY created_at DESC`, vendorID)
}

func (r *VendorRepositoryImpl) ListBookingsByOrganizer(ctx context.Context, organizerUID uuid.UUID) ([]*model.VendorBooking, error) {
	return r.listBookings(ctx, `SELECT `+bookingColumns+` FROM vendor_bookings WHERE organizer_uid = $1 ORDER BY created_at DESC`, organizerUID)
}

func (r *VendorRepositoryImpl) listBookings(ctx context.Context, query string, arg interface{}) ([]*model.VendorBooking, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, wrapErr("list bookings", err, nil)
	}
	bookings, err := collect(rows, scanBooking)
	if err != nil {
		return nil, wrapErr("list bookings", err, nil)
	}
	return bookings, nil
}

func (r *VendorRepositoryImpl) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus, response *string) (*model.VendorBooking, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	// only a pending booking can be answered; a lost race surfaces as not found
	query := `
		UPDATE vendor_bookings
		SET status = $1, vendor_response = $2, updated_at = $3
		WHERE id = $4 AND status = $5
		RETURNING ` + bookingColumns

	b, err := scanBooking(r.db.QueryRow(ctx, query, status, response, time.Now().UTC(), id, model.BookingStatusPending))
	if err != nil {
		return nil, wrapErr("update booking status", err, apperrors.ErrBookingNotFound)
	}
	return b, nil
}
