// File: internal/poi/model.go
package poi

import (
	"time"

	"poi_backend/internal/category"
	"poi_backend/internal/common"
	"poi_backend/internal/image"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// POI represents a point of interest. The creator reference is set once at
// creation and never changes; there is deliberately no FK constraint on it,
// so deleting a user leaves their POIs in place with a dangling creator.
// The category reference is nullable: a POI whose category name could not be
// resolved at create/edit time carries no category.
type POI struct {
	common.BaseModel
	Name        string             `gorm:"type:varchar(255);not null;index"`
	Description string             `gorm:"type:text"`
	CategoryID  *uuid.UUID         `gorm:"type:uuid;index"`
	Category    *category.Category `gorm:"foreignKey:CategoryID"`
	CreatorID   uuid.UUID          `gorm:"type:uuid;not null;index"`
	Images      pq.StringArray     `gorm:"type:text[]"`
}

// TableName specifies the table name for the POI model.
func (POI) TableName() string {
	return "pois"
}

// --- DTOs ---

// CreatePOIRequest defines the multipart form fields for creating a POI.
// Category is a human-entered category name, resolved server-side; the image
// file travels outside the bound struct.
type CreatePOIRequest struct {
	Name        string `json:"name" form:"name" binding:"required,max=255"`
	Description string `json:"description" form:"description" binding:"max=2000"`
	Category    string `json:"category" form:"category" binding:"max=100"`
}

// UpdatePOIRequest defines the fields for editing a POI. Creator and image
// list are not editable through this request.
type UpdatePOIRequest struct {
	Name        string `json:"name" form:"name" binding:"required,max=255"`
	Description string `json:"description" form:"description" binding:"max=2000"`
	Category    string `json:"category" form:"category" binding:"max=100"`
}

// POIResponse defines the structure for POI data in API responses. Images
// are resolved into serveable descriptors in list order.
type POIResponse struct {
	ID          uuid.UUID                  `json:"id"`
	Name        string                     `json:"name"`
	Description string                     `json:"description"`
	Category    *category.CategoryResponse `json:"category"`
	CreatorID   uuid.UUID                  `json:"creator_id"`
	Images      []image.Descriptor         `json:"images"`
	CreatedAt   time.Time                  `json:"created_at"`
	UpdatedAt   time.Time                  `json:"updated_at"`
}

// ToPOIResponse converts a POI model and its resolved image descriptors to a
// POIResponse DTO.
func ToPOIResponse(p *POI, images []image.Descriptor) POIResponse {
	resp := POIResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatorID:   p.CreatorID,
		Images:      images,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if resp.Images == nil {
		resp.Images = []image.Descriptor{}
	}
	if p.Category != nil {
		categoryResp := category.ToCategoryResponse(p.Category)
		resp.Category = &categoryResp
	}
	return resp
}
