// File: internal/category/model.go
package category

import (
	"time"

	"poi_backend/internal/common"

	"github.com/google/uuid"
)

// Category represents a POI category. Names are intended to be unique but
// uniqueness is not enforced; duplicate names are legal and name resolution
// is oldest-match-wins.
type Category struct {
	common.BaseModel
	Name string `gorm:"type:varchar(100);not null;index"`
	Slug string `gorm:"type:varchar(100);not null"`
}

// TableName specifies the table name for the Category model.
func (Category) TableName() string {
	return "categories"
}

// --- DTOs ---

// CreateCategoryRequest defines the structure for creating a category.
type CreateCategoryRequest struct {
	Name string `json:"name" form:"name" binding:"required,max=100"`
}

// CategoryResponse defines the structure for category data in API responses.
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCategoryResponse converts a Category model to a CategoryResponse DTO.
func ToCategoryResponse(category *Category) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		Slug:      category.Slug,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}
