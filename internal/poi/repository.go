// File: internal/poi/repository.go
package poi

import (
	"context"
	"errors"

	"poi_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for POI data operations.
type Repository interface {
	Create(ctx context.Context, p *POI) error
	FindByID(ctx context.Context, id uuid.UUID) (*POI, error)
	FindByCreator(ctx context.Context, creatorID uuid.UUID) ([]POI, error)
	FindByCreatorAndCategory(ctx context.Context, creatorID, categoryID uuid.UUID) ([]POI, error)
	Update(ctx context.Context, p *POI) error
	AppendImage(ctx context.Context, id uuid.UUID, imageID string) (*POI, error)
	RemoveImage(ctx context.Context, id uuid.UUID, imageID string) (*POI, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM POI repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, p *POI) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*POI, error) {
	var p POI
	err := r.db.WithContext(ctx).Preload("Category").First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("POI not found.")
		}
		return nil, err
	}
	return &p, nil
}

func (r *gormRepository) FindByCreator(ctx context.Context, creatorID uuid.UUID) ([]POI, error) {
	var pois []POI
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("creator_id = ?", creatorID).
		Order("created_at ASC").
		Find(&pois).Error
	return pois, err
}

// FindByCreatorAndCategory intersects creator and category, so listing by
// category stays scoped to the requesting user's own POIs.
func (r *gormRepository) FindByCreatorAndCategory(ctx context.Context, creatorID, categoryID uuid.UUID) ([]POI, error) {
	var pois []POI
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("creator_id = ? AND category_id = ?", creatorID, categoryID).
		Order("created_at ASC").
		Find(&pois).Error
	return pois, err
}

func (r *gormRepository) Update(ctx context.Context, p *POI) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// AppendImage pushes an image id onto the end of the POI's image list.
// Duplicate ids are permitted; the list preserves insertion order.
func (r *gormRepository) AppendImage(ctx context.Context, id uuid.UUID, imageID string) (*POI, error) {
	p, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Images = append(p.Images, imageID)
	if err := r.db.WithContext(ctx).Model(p).Update("images", p.Images).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// RemoveImage detaches the first occurrence of imageID from the POI's image
// list. Removing an id that is not present is a no-op, not an error.
func (r *gormRepository) RemoveImage(ctx context.Context, id uuid.UUID, imageID string) (*POI, error) {
	p, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for i, existing := range p.Images {
		if existing == imageID {
			p.Images = append(p.Images[:i], p.Images[i+1:]...)
			if err := r.db.WithContext(ctx).Model(p).Update("images", p.Images).Error; err != nil {
				return nil, err
			}
			break
		}
	}
	return p, nil
}

// Delete removes a POI row. Deleting an id that does not exist is silently
// successful; existence checks belong to the service layer.
func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&POI{}, "id = ?", id).Error
}
