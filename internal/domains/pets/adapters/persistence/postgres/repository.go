package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists pets in PostgreSQL using GORM. It may be bound to a
// transaction handle so other contexts can write pets atomically.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type petRecord struct {
	ID          string    `gorm:"primaryKey;column:id"`
	Name        string    `gorm:"column:name"`
	Species     string    `gorm:"column:species"`
	Breed       string    `gorm:"column:breed"`
	Age         *int      `gorm:"column:age"`
	Description string    `gorm:"column:description"`
	ImageURL    string    `gorm:"column:image_url"`
	Status      string    `gorm:"column:status"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (petRecord) TableName() string { return "pets" }

// Save inserts or updates a pet keyed by id.
func (r *Repository) Save(ctx context.Context, pet *domain.Pet) (*projection.Projection[*domain.Pet], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, errors.New("pet is nil")
	}
	clone := pet.Clone()
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(clone)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "species", "breed", "age", "description", "image_url", "status", "updated_at"}),
		}).
		Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// Update writes the given columns of pet with a single conditional UPDATE.
func (r *Repository) Update(ctx context.Context, pet *domain.Pet, fields []ports.Field) (*projection.Projection[*domain.Pet], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, errors.New("pet is nil")
	}
	record := toRecord(pet.Clone())
	values := map[string]any{"updated_at": time.Now().UTC()}
	for _, field := range fields {
		switch field {
		case ports.FieldName:
			values["name"] = record.Name
		case ports.FieldSpecies:
			values["species"] = record.Species
		case ports.FieldBreed:
			values["breed"] = record.Breed
		case ports.FieldAge:
			values["age"] = record.Age
		case ports.FieldDescription:
			values["description"] = record.Description
		case ports.FieldImageURL:
			values["image_url"] = record.ImageURL
		case ports.FieldStatus:
			values["status"] = record.Status
		default:
			return nil, fmt.Errorf("unknown pet field %q", field)
		}
	}
	result := r.db.WithContext(ctx).Model(&petRecord{}).Where("id = ?", record.ID).Updates(values)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a pet.
func (r *Repository) GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Pet], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record petRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

// Delete removes a pet by id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&petRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// FindByStatus lists pets in any of the given statuses, oldest first.
func (r *Repository) FindByStatus(ctx context.Context, statuses []domain.Status) ([]*projection.Projection[*domain.Pet], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, string(s))
	}
	var records []petRecord
	if err := r.db.WithContext(ctx).Where("status = ANY(?)", pq.Array(values)).Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	pets := make([]*projection.Projection[*domain.Pet], 0, len(records))
	for i := range records {
		pets = append(pets, records[i].toProjection())
	}
	return pets, nil
}

// MarkAdopted sets the pet status to adopted. Missing pets are ignored.
func (r *Repository) MarkAdopted(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&petRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": string(domain.StatusAdopted), "updated_at": time.Now().UTC()}).
		Error
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres pet repository not configured")
	}
	return nil
}

func toRecord(pet *domain.Pet) petRecord {
	return petRecord{
		ID:          pet.ID,
		Name:        pet.Name,
		Species:     pet.Species,
		Breed:       pet.Breed,
		Age:         pet.Age,
		Description: pet.Description,
		ImageURL:    pet.ImageURL,
		Status:      string(pet.Status),
	}
}

func (r petRecord) toProjection() *projection.Projection[*domain.Pet] {
	pet := &domain.Pet{
		ID:          r.ID,
		Name:        r.Name,
		Species:     r.Species,
		Breed:       r.Breed,
		Age:         r.Age,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Status:      domain.Status(r.Status),
	}
	return projection.New(pet, r.CreatedAt, r.UpdatedAt)
}
