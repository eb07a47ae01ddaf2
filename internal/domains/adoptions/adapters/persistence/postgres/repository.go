package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	petports "github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// PetWriterFactory binds a pet status writer to the transaction used for a
// transition so the request and the pet commit together.
type PetWriterFactory func(tx *gorm.DB) petports.StatusWriter

// Repository persists adoption requests in PostgreSQL using GORM.
type Repository struct {
	db   *gorm.DB
	pets PetWriterFactory
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB, pets PetWriterFactory) *Repository {
	return &Repository{db: db, pets: pets}
}

type requestRecord struct {
	ID        string    `gorm:"primaryKey;column:id"`
	UserID    string    `gorm:"column:user_id"`
	PetID     string    `gorm:"column:pet_id"`
	Status    string    `gorm:"column:status"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (requestRecord) TableName() string { return "adoption_requests" }

// Create inserts a new request.
func (r *Repository) Create(ctx context.Context, request *domain.Request) (*ports.RequestProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if request == nil {
		return nil, errors.New("request is nil")
	}
	record := requestRecord{
		ID:     request.ID,
		UserID: request.UserID,
		PetID:  request.PetID,
		Status: string(request.Status),
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toProjection(), nil
}

// GetByID fetches a request.
func (r *Repository) GetByID(ctx context.Context, id string) (*ports.RequestProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	return getByID(ctx, r.db, id)
}

// List returns requests oldest first, optionally restricted to one requester.
func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]*ports.RequestProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC")
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	var records []requestRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	list := make([]*ports.RequestProjection, 0, len(records))
	for i := range records {
		list = append(list, records[i].toProjection())
	}
	return list, nil
}

// Delete removes a request by id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&requestRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// Transition resolves a pending request with a conditional update. Exactly
// one concurrent caller observes a matched row; the others get ErrNotPending.
func (r *Repository) Transition(ctx context.Context, id string, to domain.Status) (*ports.RequestProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if err := domain.ValidateDecision(to); err != nil {
		return nil, err
	}
	var resolved *ports.RequestProjection
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&requestRecord{}).
			Where("id = ? AND status = ?", id, string(domain.StatusPending)).
			Updates(map[string]any{"status": string(to), "updated_at": time.Now().UTC()})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&requestRecord{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ports.ErrNotFound
			}
			return domain.ErrNotPending
		}
		current, err := getByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if to == domain.StatusApproved && r.pets != nil {
			if err := r.pets(tx).MarkAdopted(ctx, current.Entity.PetID); err != nil {
				return fmt.Errorf("mark pet adopted: %w", err)
			}
		}
		resolved = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resolved, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres adoption repository not configured")
	}
	return nil
}

func getByID(ctx context.Context, db *gorm.DB, id string) (*ports.RequestProjection, error) {
	var record requestRecord
	if err := db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

func (r requestRecord) toProjection() *ports.RequestProjection {
	request := &domain.Request{
		ID:     r.ID,
		UserID: r.UserID,
		PetID:  r.PetID,
		Status: domain.Status(r.Status),
	}
	return projection.New(request, r.CreatedAt, r.UpdatedAt)
}
