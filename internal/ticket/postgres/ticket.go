package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/frahmantamala/parc-info/internal/core/database"
	ticketDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/ticket"
	"github.com/frahmantamala/parc-info/internal/ticket"
	"gorm.io/gorm"
)

type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) ticket.RepositoryAPI {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) GetByID(ctx context.Context, id string) (*ticketDatamodel.Ticket, error) {
	var t ticketDatamodel.Ticket
	err := database.Conn(ctx, r.db).Where("id = ?", id).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TicketRepository) GetAll(ctx context.Context, filter ticket.Filter) ([]*ticketDatamodel.Ticket, error) {
	q := database.Conn(ctx, r.db)
	if filter.CreatedBy != "" {
		q = q.Where("created_by = ?", filter.CreatedBy)
	}
	if filter.AssignedTo != "" {
		q = q.Where("assigned_to = ?", filter.AssignedTo)
	}
	var rows []*ticketDatamodel.Ticket
	err := q.Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *TicketRepository) Create(ctx context.Context, t *ticketDatamodel.Ticket) error {
	return database.Conn(ctx, r.db).Create(t).Error
}

func (r *TicketRepository) Update(ctx context.Context, t *ticketDatamodel.Ticket) error {
	return database.Conn(ctx, r.db).Save(t).Error
}

func (r *TicketRepository) Delete(ctx context.Context, id string) error {
	return database.Conn(ctx, r.db).Where("id = ?", id).Delete(&ticketDatamodel.Ticket{}).Error
}

func (r *TicketRepository) CountByStatus(ctx context.Context, statuses ...string) (int64, error) {
	var n int64
	err := database.Conn(ctx, r.db).Model(&ticketDatamodel.Ticket{}).Where("status IN ?", statuses).Count(&n).Error
	return n, err
}

func (r *TicketRepository) CreatedSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	var out []time.Time
	err := database.Conn(ctx, r.db).Model(&ticketDatamodel.Ticket{}).
		Where("created_at >= ?", since.UTC()).
		Pluck("created_at", &out).Error
	return out, err
}

func (r *TicketRepository) ResolvedSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	var out []time.Time
	err := database.Conn(ctx, r.db).Model(&ticketDatamodel.Ticket{}).
		Where("status = ? AND updated_at >= ?", ticket.StatusResolved, since.UTC()).
		Pluck("updated_at", &out).Error
	return out, err
}
