// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "github.com/google/uuid"

// Category is reference data posts are tagged with. Posts reference
// categories by name; an unknown name is an error, never an implicit
// insert.
type Category struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
