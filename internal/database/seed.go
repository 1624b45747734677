// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"betteridn/internal/auth"
)

// Seed inserts a development account so the API is usable immediately
// after first boot. It is a no-op when any user already exists, and is
// only called in development mode.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("seed count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword("changeme123")
	if err != nil {
		return fmt.Errorf("seed hash password: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (email, username, password_hash, email_confirmed)
		VALUES ($1, $2, $3, TRUE)
	`, "demo@betteridn.local", "demo", hash)
	if err != nil {
		return fmt.Errorf("seed demo user: %w", err)
	}

	slog.Info("seeded development user", "email", "demo@betteridn.local")
	return nil
}
