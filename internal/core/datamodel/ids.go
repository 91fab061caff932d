// Package datamodel holds the gorm models shared by the repositories, one
// sub-package per table family.
package datamodel

import "github.com/google/uuid"

// EnsureID assigns a fresh UUID when id is empty.
func EnsureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}
