// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"betteridn/internal/models"
)

// CategoryStore manages the category registry and reconciles a post's
// category links against a desired set of names.
//
// Name resolution is memoized in a per-store cache. The cache is
// append-only and never evicted: categories are static reference data,
// seeded by migration and never renamed or removed at runtime.
type CategoryStore struct {
	db *sql.DB

	mu     sync.RWMutex
	byName map[string]uuid.UUID
}

// NewCategoryStore returns a new CategoryStore with an empty name cache.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{
		db:     db,
		byName: make(map[string]uuid.UUID),
	}
}

// List returns all categories ordered by name.
func (s *CategoryStore) List() ([]models.Category, error) {
	rows, err := s.db.Query(`SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// ResolveNames maps every requested name to its category ID. Names not
// in the cache are looked up in one batch query; names that resolve
// nowhere are reported together in an UnknownCategoryError — all of
// them, not just the first.
func (s *CategoryStore) ResolveNames(names []string) (map[string]uuid.UUID, error) {
	resolved := make(map[string]uuid.UUID, len(names))
	var uncached []string

	s.mu.RLock()
	for _, name := range names {
		if id, ok := s.byName[name]; ok {
			resolved[name] = id
		} else {
			uncached = append(uncached, name)
		}
	}
	s.mu.RUnlock()

	if len(uncached) > 0 {
		rows, err := s.db.Query(
			`SELECT id, name FROM categories WHERE name = ANY($1::text[])`,
			uncached,
		)
		if err != nil {
			return nil, fmt.Errorf("resolve categories: %w", err)
		}
		defer rows.Close()

		fetched := make(map[string]uuid.UUID, len(uncached))
		for rows.Next() {
			var id uuid.UUID
			var name string
			if err := rows.Scan(&id, &name); err != nil {
				return nil, fmt.Errorf("scan category: %w", err)
			}
			fetched[name] = id
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("resolve categories: %w", err)
		}

		s.mu.Lock()
		for name, id := range fetched {
			s.byName[name] = id
			resolved[name] = id
		}
		s.mu.Unlock()
	}

	var unknown []string
	for _, name := range names {
		if _, ok := resolved[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &UnknownCategoryError{Names: unknown}
	}

	return resolved, nil
}

// Reconcile moves a post's category links to exactly the desired name
// set: links not in desired are removed, missing ones are added, and
// links already in place are left untouched. Calling it twice with the
// same set is a no-op on the second call.
//
// Validation happens first, so an unknown name leaves the existing links
// unchanged. The removal and additions run in one transaction.
func (s *CategoryStore) Reconcile(postID uuid.UUID, desired []string) error {
	ids, err := s.ResolveNames(desired)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query(`
		SELECT pc.category_id, c.name
		FROM posts_categories pc
		JOIN categories c ON c.id = pc.category_id
		WHERE pc.post_id = $1
	`, postID)
	if err != nil {
		return fmt.Errorf("load post categories: %w", err)
	}

	existing := make(map[string]uuid.UUID)
	for rows.Next() {
		var id uuid.UUID
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			rows.Close()
			return fmt.Errorf("scan post category: %w", err)
		}
		existing[name] = id
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load post categories: %w", err)
	}

	desiredSet := make(map[string]bool, len(desired))
	for _, name := range desired {
		desiredSet[name] = true
	}

	// toRemove = existing \ desired, toAdd = desired \ existing (by name).
	var toRemove []string
	for name, id := range existing {
		if !desiredSet[name] {
			toRemove = append(toRemove, id.String())
		}
	}
	var toAdd []uuid.UUID
	for _, name := range desired {
		if _, ok := existing[name]; !ok {
			toAdd = append(toAdd, ids[name])
		}
	}

	if len(toRemove) > 0 {
		_, err := tx.Exec(`
			DELETE FROM posts_categories
			WHERE post_id = $1 AND category_id = ANY($2::uuid[])
		`, postID, toRemove)
		if err != nil {
			return fmt.Errorf("remove post categories: %w", err)
		}
	}

	for _, categoryID := range toAdd {
		// ON CONFLICT keeps the insert idempotent under the composite key.
		_, err := tx.Exec(`
			INSERT INTO posts_categories (post_id, category_id)
			VALUES ($1, $2)
			ON CONFLICT (post_id, category_id) DO NOTHING
		`, postID, categoryID)
		if err != nil {
			return fmt.Errorf("add post category: %w", err)
		}
	}

	return tx.Commit()
}
