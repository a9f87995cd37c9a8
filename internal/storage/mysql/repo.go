package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"hotrodebabi/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func valTime(p *time.Time) any {
	if p == nil {
		return nil
	}
	return *p
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// -----------------------------------------------------------------------------
// SubscriptionRepository
// -----------------------------------------------------------------------------

func (r *Repo) DueForExpiry(ctx context.Context, now time.Time) ([]domain.Subscription, error) {
	rows, err := r.db.QueryContext(ctx, selectDueForExpirySQL, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSubscriptions(rows)
}

func (r *Repo) ExpiringBetween(ctx context.Context, from, to time.Time) ([]domain.Subscription, error) {
	rows, err := r.db.QueryContext(ctx, selectExpiringBetweenSQL, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSubscriptions(rows)
}

func scanSubscriptions(rows *sql.Rows) ([]domain.Subscription, error) {
	var out []domain.Subscription
	for rows.Next() {
		var s domain.Subscription
		var endDate sql.NullTime
		var stripeID sql.NullString
		if err := rows.Scan(&s.ID, &s.UserID, &s.Plan, &s.Status, &s.StartDate, &endDate, &s.AutoRenew, &stripeID); err != nil {
			return nil, err
		}
		if endDate.Valid {
			t := endDate.Time
			s.EndDate = &t
		}
		if stripeID.Valid {
			id := stripeID.String
			s.StripeSubscriptionID = &id
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) MarkExpired(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	args := make([]any, len(ids))
	ph := make([]string, len(ids))
	for i, id := range ids {
		args[i] = id
		ph[i] = "?"
	}
	res, err := r.db.ExecContext(ctx, markExpiredPrefix+"("+strings.Join(ph, ",")+")", args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *Repo) HasNotification(ctx context.Context, subscriptionID string, t domain.NotificationType) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, hasNotificationSQL, subscriptionID, string(t)).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *Repo) InsertNotification(ctx context.Context, n domain.SubscriptionNotification) (bool, error) {
	created := n.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, insertNotificationSQL,
		n.ID, n.SubscriptionID, n.UserID, string(n.Type), created)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

func (r *Repo) CountPendingByType(ctx context.Context) (map[domain.NotificationType]int, error) {
	rows, err := r.db.QueryContext(ctx, countPendingByTypeSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[domain.NotificationType]int{}
	for rows.Next() {
		var t string
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, err
		}
		out[domain.NotificationType(t)] = n
	}
	return out, rows.Err()
}

func (r *Repo) PendingNotifications(ctx context.Context, limit int) ([]domain.SubscriptionNotification, error) {
	rows, err := r.db.QueryContext(ctx, selectPendingNotificationsSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SubscriptionNotification
	for rows.Next() {
		var n domain.SubscriptionNotification
		var t string
		if err := rows.Scan(&n.ID, &n.SubscriptionID, &n.UserID, &t, &n.EmailSent, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.Type = domain.NotificationType(t)
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *Repo) MarkNotificationSent(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, markNotificationSentSQL, id)
	return err
}

// -----------------------------------------------------------------------------
// HotelRepository
// -----------------------------------------------------------------------------

func (r *Repo) CreateHotel(ctx context.Context, h domain.Hotel) error {
	amen, _ := json.Marshal(h.Amenities)
	feats, _ := json.Marshal(h.Features)
	_, err := r.db.ExecContext(ctx, insertHotelSQL,
		h.ID,
		valStr(h.OwnerID),
		h.Name,
		h.Location,
		h.Description,
		h.Rating,
		h.Price,
		string(amen),
		string(feats),
		h.IsDiscrete,
		string(h.Status),
		valStr(h.AdminNotes),
		valTime(h.ApprovedAt),
		h.CreatedAt,
		h.UpdatedAt,
	)
	return err
}

func (r *Repo) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	row := r.db.QueryRowContext(ctx, selectHotelSQL, id)
	h, err := scanHotel(row)
	if err == sql.ErrNoRows {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, err
}

type rowScanner interface{ Scan(dest ...any) error }

func scanHotel(row rowScanner) (domain.Hotel, error) {
	var h domain.Hotel
	var ownerID, adminNotes sql.NullString
	var approvedAt sql.NullTime
	var amenJSON, featJSON []byte
	var status string

	if err := row.Scan(
		&h.ID, &ownerID, &h.Name, &h.Location, &h.Description, &h.Rating, &h.Price,
		&amenJSON, &featJSON, &h.IsDiscrete, &status, &adminNotes, &approvedAt,
		&h.CreatedAt, &h.UpdatedAt,
	); err != nil {
		return domain.Hotel{}, err
	}

	h.Status = domain.HotelStatus(status)
	if ownerID.Valid {
		s := ownerID.String
		h.OwnerID = &s
	}
	if adminNotes.Valid {
		s := adminNotes.String
		h.AdminNotes = &s
	}
	if approvedAt.Valid {
		t := approvedAt.Time
		h.ApprovedAt = &t
	}
	_ = json.Unmarshal(amenJSON, &h.Amenities)
	_ = json.Unmarshal(featJSON, &h.Features)
	return h, nil
}

func (r *Repo) ListHotels(ctx context.Context, status *domain.HotelStatus, limit int) ([]domain.Hotel, error) {
	var st any
	if status != nil {
		st = string(*status)
	}
	rows, err := r.db.QueryContext(ctx, listHotelsSQL, st, st, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Hotel
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateHotel(ctx context.Context, h domain.Hotel) error {
	amen, _ := json.Marshal(h.Amenities)
	feats, _ := json.Marshal(h.Features)
	_, err := r.db.ExecContext(ctx, updateHotelSQL,
		valStr(h.OwnerID),
		h.Name,
		h.Location,
		h.Description,
		h.Rating,
		h.Price,
		string(amen),
		string(feats),
		h.IsDiscrete,
		valStr(h.AdminNotes),
		h.ID,
	)
	return err
}

func (r *Repo) UpdateHotelStatus(ctx context.Context, id string, status domain.HotelStatus, approvedAt *time.Time) error {
	res, err := r.db.ExecContext(ctx, updateHotelStatusSQL, string(status), valTime(approvedAt), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repo) DeleteHotel(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteHotelSQL, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// -----------------------------------------------------------------------------
// UserDirectory / AuditLog
// -----------------------------------------------------------------------------

func (r *Repo) EmailByID(ctx context.Context, userID string) (string, error) {
	var email string
	err := r.db.QueryRowContext(ctx, selectUserEmailSQL, userID).Scan(&email)
	if err == sql.ErrNoRows {
		return "", domain.ErrNotFound
	}
	return email, err
}

func (r *Repo) RecordDispatch(ctx context.Context, rec domain.DispatchAudit) error {
	_, err := r.db.ExecContext(ctx, insertAuditSQL,
		rec.ID, rec.Recipient, rec.Subject, rec.Priority, rec.Context, rec.ContextID, rec.EmailID, rec.SentAt)
	return err
}
