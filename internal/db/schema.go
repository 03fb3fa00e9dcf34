package db

import "context"

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL DEFAULT 'default',
		name TEXT NOT NULL,
		phone TEXT NOT NULL,
		phone_type TEXT NOT NULL,
		email TEXT NOT NULL,
		current_address TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS appointments (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL DEFAULT 'default',
		client_id TEXT NOT NULL,
		property_address TEXT NOT NULL,
		city TEXT NOT NULL,
		date TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		time_at_house INT NOT NULL,
		is_open_house BOOLEAN NOT NULL DEFAULT FALSE,
		appointment_type TEXT NOT NULL DEFAULT 'private_viewing',
		house_status TEXT NOT NULL DEFAULT 'available',
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_user_date ON appointments (user_id, date)`,
	`CREATE TABLE IF NOT EXISTS house_notes (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL DEFAULT 'default',
		appointment_id TEXT NOT NULL,
		property_address TEXT NOT NULL,
		notes TEXT NOT NULL,
		follow_up_required BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_house_notes_appointment ON house_notes (appointment_id)`,
	`CREATE TABLE IF NOT EXISTS route_priorities (
		user_id TEXT PRIMARY KEY,
		priorities JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// EnsureSchema creates the tables on startup so a fresh database works
// without a separate migration step.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.Pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
