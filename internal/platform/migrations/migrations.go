package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Repository adapters never
// migrate on their own.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&userRecord{},
		&petRecord{},
		&adoptionRequestRecord{},
	)
}

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID           string    `gorm:"primaryKey;column:id;type:char(32)"`
	FirstName    string    `gorm:"column:first_name;not null"`
	LastName     string    `gorm:"column:last_name;not null"`
	Email        string    `gorm:"column:email;not null;uniqueIndex:idx_users_email"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Role         string    `gorm:"column:role;type:varchar(16);not null;default:user"`
	Age          *int      `gorm:"column:age"`
	CreatedAt    time.Time `gorm:"column:created_at;index"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Pet schema mirrors the pets Postgres adapter.
type petRecord struct {
	ID          string    `gorm:"primaryKey;column:id;type:char(32)"`
	Name        string    `gorm:"column:name;not null"`
	Species     string    `gorm:"column:species;not null"`
	Breed       string    `gorm:"column:breed"`
	Age         *int      `gorm:"column:age"`
	Description string    `gorm:"column:description;type:text"`
	ImageURL    string    `gorm:"column:image_url"`
	Status      string    `gorm:"column:status;type:varchar(16);not null;default:available;index"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (petRecord) TableName() string { return "pets" }

// Adoption request schema mirrors the adoptions Postgres adapter. References
// are weak so deleting a user or pet keeps its requests.
type adoptionRequestRecord struct {
	ID        string    `gorm:"primaryKey;column:id;type:char(32)"`
	UserID    string    `gorm:"column:user_id;type:char(32);not null;index"`
	PetID     string    `gorm:"column:pet_id;type:char(32);not null;index"`
	Status    string    `gorm:"column:status;type:varchar(16);not null;default:pending;index"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (adoptionRequestRecord) TableName() string { return "adoption_requests" }
