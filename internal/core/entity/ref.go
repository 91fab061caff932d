// Package entity models references from audit and alert records to any other
// record of the asset registry.
package entity

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindEquipment   Kind = "equipment"
	KindLicense     Kind = "license"
	KindTicket      Kind = "ticket"
	KindInventory   Kind = "inventory"
	KindMaintenance Kind = "maintenance"
	KindEmployee    Kind = "employee"
	KindUser        Kind = "user"
)

var kinds = map[Kind]struct{}{
	KindEquipment:   {},
	KindLicense:     {},
	KindTicket:      {},
	KindInventory:   {},
	KindMaintenance: {},
	KindEmployee:    {},
	KindUser:        {},
}

var (
	ErrUnknownKind = errors.New("unknown entity kind")
	ErrEmptyID     = errors.New("entity id is required")
	ErrHalfRef     = errors.New("entity type and id must be set together")
)

func (k Kind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

// Ref points at a single record. The zero value is not a valid reference;
// optional references are carried as *Ref.
type Ref struct {
	Kind Kind   `json:"kind"`
	ID   string `json:"id"`
}

func NewRef(kind Kind, id string) (Ref, error) {
	ref := Ref{Kind: kind, ID: id}
	if err := ref.Validate(); err != nil {
		return Ref{}, err
	}
	return ref, nil
}

func (r Ref) Validate() error {
	if !r.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKind, r.Kind)
	}
	if r.ID == "" {
		return ErrEmptyID
	}
	return nil
}

func (r Ref) String() string {
	return string(r.Kind) + ":" + r.ID
}

// Columns splits a reference into the entity_type/entity_id column pair.
func Columns(r *Ref) (entityType, entityID *string) {
	if r == nil {
		return nil, nil
	}
	kind := string(r.Kind)
	id := r.ID
	return &kind, &id
}

// FromColumns rebuilds a reference from its column pair. Both columns null
// yields nil; a half-filled pair is rejected.
func FromColumns(entityType, entityID *string) (*Ref, error) {
	if entityType == nil && entityID == nil {
		return nil, nil
	}
	if entityType == nil || entityID == nil {
		return nil, ErrHalfRef
	}
	ref, err := NewRef(Kind(*entityType), *entityID)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}
