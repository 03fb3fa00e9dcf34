package db

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agentroute/backend/internal/models"
)

type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

func (s *Store) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// === clients ===

func (s *Store) InsertClient(ctx context.Context, c models.Client) error {
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO clients (id, user_id, name, phone, phone_type, email, current_address, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.UserID, c.Name, c.Phone, c.PhoneType, c.Email, c.CurrentAddress, c.CreatedAt)
	return err
}

func (s *Store) ListClients(ctx context.Context, userID string) ([]models.Client, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT id, user_id, name, phone, phone_type, email, current_address, created_at
		 FROM clients WHERE user_id = $1 ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Client
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Phone, &c.PhoneType, &c.Email, &c.CurrentAddress, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) GetClient(ctx context.Context, userID, id string) (models.Client, error) {
	var c models.Client
	err := s.Pool.QueryRow(ctx,
		`SELECT id, user_id, name, phone, phone_type, email, current_address, created_at
		 FROM clients WHERE user_id = $1 AND id = $2`, userID, id).
		Scan(&c.ID, &c.UserID, &c.Name, &c.Phone, &c.PhoneType, &c.Email, &c.CurrentAddress, &c.CreatedAt)
	return c, err
}

func (s *Store) UpdateClient(ctx context.Context, c models.Client) (bool, error) {
	tag, err := s.Pool.Exec(ctx,
		`UPDATE clients SET name = $3, phone = $4, phone_type = $5, email = $6, current_address = $7
		 WHERE user_id = $1 AND id = $2`,
		c.UserID, c.ID, c.Name, c.Phone, c.PhoneType, c.Email, c.CurrentAddress)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) DeleteClient(ctx context.Context, userID, id string) (bool, error) {
	tag, err := s.Pool.Exec(ctx, `DELETE FROM clients WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) CountClients(ctx context.Context, userID string) (int, error) {
	var n int
	err := s.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM clients WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}

// === appointments ===

const appointmentColumns = `id, user_id, client_id, property_address, city, date, start_time, end_time,
	time_at_house, is_open_house, appointment_type, house_status, latitude, longitude, created_at`

func scanAppointment(row pgx.Row) (models.Appointment, error) {
	var a models.Appointment
	err := row.Scan(&a.ID, &a.UserID, &a.ClientID, &a.PropertyAddress, &a.City, &a.Date, &a.StartTime,
		&a.EndTime, &a.TimeAtHouse, &a.IsOpenHouse, &a.AppointmentType, &a.HouseStatus,
		&a.Latitude, &a.Longitude, &a.CreatedAt)
	return a, err
}

func (s *Store) InsertAppointment(ctx context.Context, a models.Appointment) error {
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO appointments (`+appointmentColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		a.ID, a.UserID, a.ClientID, a.PropertyAddress, a.City, a.Date, a.StartTime, a.EndTime,
		a.TimeAtHouse, a.IsOpenHouse, a.AppointmentType, a.HouseStatus, a.Latitude, a.Longitude, a.CreatedAt)
	return err
}

// ListAppointments returns the user's appointments, optionally filtered to
// one date. Ordered by start_time so listings are stable.
func (s *Store) ListAppointments(ctx context.Context, userID, date string) ([]models.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE user_id = $1`
	args := []any{userID}
	if date != "" {
		args = append(args, date)
		query += ` AND date = $2`
	}
	query += ` ORDER BY date, start_time, id`

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) GetAppointment(ctx context.Context, userID, id string) (models.Appointment, error) {
	row := s.Pool.QueryRow(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE user_id = $1 AND id = $2`, userID, id)
	return scanAppointment(row)
}

func (s *Store) UpdateAppointment(ctx context.Context, a models.Appointment) (bool, error) {
	tag, err := s.Pool.Exec(ctx,
		`UPDATE appointments SET client_id = $3, property_address = $4, city = $5, date = $6,
			start_time = $7, end_time = $8, time_at_house = $9, is_open_house = $10,
			appointment_type = $11, house_status = $12, latitude = $13, longitude = $14
		 WHERE user_id = $1 AND id = $2`,
		a.UserID, a.ID, a.ClientID, a.PropertyAddress, a.City, a.Date, a.StartTime, a.EndTime,
		a.TimeAtHouse, a.IsOpenHouse, a.AppointmentType, a.HouseStatus, a.Latitude, a.Longitude)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) UpdateHouseStatus(ctx context.Context, userID, id string, status models.HouseStatus) (bool, error) {
	tag, err := s.Pool.Exec(ctx,
		`UPDATE appointments SET house_status = $3 WHERE user_id = $1 AND id = $2`, userID, id, status)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteAppointment removes an appointment and its notes in one transaction.
func (s *Store) DeleteAppointment(ctx context.Context, userID, id string) (bool, error) {
	var deleted bool
	err := s.WithTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM appointments WHERE user_id = $1 AND id = $2`, userID, id)
		if err != nil {
			return err
		}
		deleted = tag.RowsAffected() > 0
		if !deleted {
			return nil
		}
		_, err = tx.Exec(ctx, `DELETE FROM house_notes WHERE user_id = $1 AND appointment_id = $2`, userID, id)
		return err
	})
	return deleted, err
}

// === house notes ===

func (s *Store) InsertHouseNote(ctx context.Context, n models.HouseNote) error {
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO house_notes (id, user_id, appointment_id, property_address, notes, follow_up_required, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		n.ID, n.UserID, n.AppointmentID, n.PropertyAddress, n.Notes, n.FollowUpRequired, n.CreatedAt, n.UpdatedAt)
	return err
}

func (s *Store) ListHouseNotes(ctx context.Context, userID, appointmentID string) ([]models.HouseNote, error) {
	query := `SELECT id, user_id, appointment_id, property_address, notes, follow_up_required, created_at, updated_at
		 FROM house_notes WHERE user_id = $1`
	args := []any{userID}
	if appointmentID != "" {
		args = append(args, appointmentID)
		query += ` AND appointment_id = $2`
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.HouseNote
	for rows.Next() {
		var n models.HouseNote
		if err := rows.Scan(&n.ID, &n.UserID, &n.AppointmentID, &n.PropertyAddress, &n.Notes, &n.FollowUpRequired, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) GetHouseNote(ctx context.Context, userID, id string) (models.HouseNote, error) {
	var n models.HouseNote
	err := s.Pool.QueryRow(ctx,
		`SELECT id, user_id, appointment_id, property_address, notes, follow_up_required, created_at, updated_at
		 FROM house_notes WHERE user_id = $1 AND id = $2`, userID, id).
		Scan(&n.ID, &n.UserID, &n.AppointmentID, &n.PropertyAddress, &n.Notes, &n.FollowUpRequired, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}

func (s *Store) UpdateHouseNote(ctx context.Context, n models.HouseNote) (bool, error) {
	tag, err := s.Pool.Exec(ctx,
		`UPDATE house_notes SET appointment_id = $3, property_address = $4, notes = $5,
			follow_up_required = $6, updated_at = $7
		 WHERE user_id = $1 AND id = $2`,
		n.UserID, n.ID, n.AppointmentID, n.PropertyAddress, n.Notes, n.FollowUpRequired, time.Now().UTC())
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) DeleteHouseNote(ctx context.Context, userID, id string) (bool, error) {
	tag, err := s.Pool.Exec(ctx, `DELETE FROM house_notes WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// === route priorities ===

// GetPriorities returns the user's saved criteria in their saved order, or
// nil when the user never saved any.
func (s *Store) GetPriorities(ctx context.Context, userID string) ([]models.PriorityCriterion, error) {
	var raw []byte
	err := s.Pool.QueryRow(ctx, `SELECT priorities FROM route_priorities WHERE user_id = $1`, userID).Scan(&raw)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	var list []models.PriorityCriterion
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// UpsertPriorities persists the list verbatim; the submitted order encodes
// tie-break priority and is never re-sorted. Last write wins per user.
func (s *Store) UpsertPriorities(ctx context.Context, userID string, list []models.PriorityCriterion) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	_, err = s.Pool.Exec(ctx,
		`INSERT INTO route_priorities (user_id, priorities, updated_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE SET priorities = EXCLUDED.priorities, updated_at = EXCLUDED.updated_at`,
		userID, raw, time.Now().UTC())
	return err
}

// === bulk import ===

func (s *Store) BulkInsertClients(ctx context.Context, clients []models.Client) (int64, error) {
	rows := make([][]any, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, []any{c.ID, c.UserID, c.Name, c.Phone, c.PhoneType, c.Email, c.CurrentAddress, c.CreatedAt})
	}
	return s.Pool.CopyFrom(ctx, pgx.Identifier{"clients"},
		[]string{"id", "user_id", "name", "phone", "phone_type", "email", "current_address", "created_at"},
		pgx.CopyFromRows(rows))
}

func (s *Store) BulkInsertAppointments(ctx context.Context, appts []models.Appointment) (int64, error) {
	rows := make([][]any, 0, len(appts))
	for _, a := range appts {
		rows = append(rows, []any{a.ID, a.UserID, a.ClientID, a.PropertyAddress, a.City, a.Date, a.StartTime,
			a.EndTime, a.TimeAtHouse, a.IsOpenHouse, a.AppointmentType, a.HouseStatus, a.Latitude, a.Longitude, a.CreatedAt})
	}
	return s.Pool.CopyFrom(ctx, pgx.Identifier{"appointments"},
		[]string{"id", "user_id", "client_id", "property_address", "city", "date", "start_time", "end_time",
			"time_at_house", "is_open_house", "appointment_type", "house_status", "latitude", "longitude", "created_at"},
		pgx.CopyFromRows(rows))
}
