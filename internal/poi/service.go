// File: internal/poi/service.go
package poi

import (
	"context"
	"mime/multipart"
	"strings"

	"poi_backend/internal/category"
	"poi_backend/internal/common"
	"poi_backend/internal/image"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// ImageStore is the slice of the image store the POI service depends on.
type ImageStore interface {
	SaveUploaded(fileHeader *multipart.FileHeader) (string, error)
	Descriptors(ids []string) []image.Descriptor
}

// Service defines the interface for POI business logic. Mutating operations
// take the acting principal's id and role; only the creator or an admin may
// edit, delete, or touch the image list of a POI.
type Service interface {
	Create(ctx context.Context, creatorID uuid.UUID, req CreatePOIRequest, imageFile *multipart.FileHeader) (*POIResponse, error)
	GetByID(ctx context.Context, principalID uuid.UUID, principalRole string, id uuid.UUID) (*POIResponse, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]POIResponse, error)
	ListByCreatorAndCategory(ctx context.Context, creatorID, categoryID uuid.UUID) ([]POIResponse, error)
	Update(ctx context.Context, principalID uuid.UUID, principalRole string, id uuid.UUID, req UpdatePOIRequest) (*POIResponse, error)
	Delete(ctx context.Context, principalID uuid.UUID, principalRole string, id uuid.UUID) error
	AttachImage(ctx context.Context, principalID uuid.UUID, principalRole string, id uuid.UUID, imageFile *multipart.FileHeader) (*POIResponse, error)
	DetachImage(ctx context.Context, principalID uuid.UUID, principalRole string, id uuid.UUID, imageID string) (*POIResponse, error)
}

type service struct {
	repo            Repository
	categoryService category.Service
	images          ImageStore
	logger          *zap.Logger
}

// NewService creates a new POI service.
func NewService(repo Repository, categoryService category.Service, images ImageStore, logger *zap.Logger) Service {
	return &service{
		repo:            repo,
		categoryService: categoryService,
		images:          images,
		logger:          logger,
	}
}

// Create persists a new POI owned by creatorID. The image, when supplied, is
// stored before the row is written: a storage failure aborts the whole
// create and nothing is persisted. No image means an empty image list.
func (s *service) Create(ctx context.Context, creatorID uuid.UUID, req CreatePOIRequest, imageFile *multipart.FileHeader) (*POIResponse, error) {
	categoryID, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	images := pq.StringArray{}
	if imageFile != nil {
		imageID, err := s.images.SaveUploaded(imageFile)
		if err != nil {
			s.logger.Error("Image store failed during POI create", zap.Error(err))
			return nil, common.ErrStorage
		}
		images = append(images, imageID)
	}

	p := &POI{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		CategoryID:  categoryID,
		CreatorID:   creatorID,
		Images:      images,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("Failed to create POI", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not create POI.")
	}

	s.logger.Info("POI created",
		zap.String("id", p.ID.String()),
		zap.String("creator_id", creatorID.String()))
	return s.toResponse(ctx, p)
}

// GetByID loads a POI for its creator or an admin.
func (s *service) GetByID(ctx context.Context, principalID uuid.UUID, principalRole string, id uuid.UUID) (*POIResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(p, principalID, principalRole); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, p)
}

// ListByCreator returns every POI owned by creatorID, oldest first.
func (s *service) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]POIResponse, error) {
	pois, err := s.repo.FindByCreator(ctx, creatorID)
	if err != nil {
		s.logger.Error("Failed to list POIs", zap.Error(err), zap.String("creator_id", creatorID.String()))
		return nil, common.ErrInternalServer.WithDetails("Could not retrieve POIs.")
	}
	return s.toResponses(ctx, pois)
}

// ListByCreatorAndCategory returns creatorID's POIs within a category.
func (s *service) ListByCreatorAndCategory(ctx context.Context, creatorID, categoryID uuid.UUID) ([]POIResponse, error) {
	pois, err := s.repo.FindByCreatorAndCategory(ctx, creatorID, categoryID)
	if err != nil {
		s.logger.Error("Failed to list POIs by category", zap.Error(err),
			zap.String("creator_id", creatorID.String()),
			zap.String("category_id", categoryID.String()))
		return nil, common.ErrInternalServer.WithDetails("Could not retrieve POIs.")
	}
	return s.toResponses(ctx, pois)
}

// Update overwrites name, description, and category. Creator and image list
// are untouched.
func (s *service) Update(ctx context.Context, principalID uuid.UUID, principalRole string, id uuid.UUID, req UpdatePOIRequest) (*POIResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(p, principalID, principalRole); err != nil {
		return nil, err
	}

	categoryID, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	p.Name = strings.TrimSpace(req.Name)
	p.Description = req.Description
	p.CategoryID = categoryID
	p.Category = nil

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("Failed to update POI", zap.Error(err), zap.String("id", id.String()))
		return nil, common.ErrInternalServer.WithDetails("Could not update POI.")
	}
	s.logger.Info("POI updated", zap.String("id", p.ID.String()))

	// Reload so the response carries the freshly resolved category row.
	p, err = s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, p)
}

// Delete removes a POI. Image blobs referenced by the POI stay on disk.
func (s *service) Delete(ctx context.Context, principalID uuid.UUID, principalRole string, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(p, principalID, principalRole); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete POI", zap.Error(err), zap.String("id", id.String()))
		return common.ErrInternalServer.WithDetails("Could not delete POI.")
	}
	s.logger.Info("POI deleted", zap.String("id", id.String()))
	return nil
}

// AttachImage stores an uploaded image and appends its id to the POI's image
// list. Order is preserved and duplicates are permitted.
func (s *service) AttachImage(ctx context.Context, principalID uuid.UUID, principalRole string, id uuid.UUID, imageFile *multipart.FileHeader) (*POIResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(p, principalID, principalRole); err != nil {
		return nil, err
	}

	imageID, err := s.images.SaveUploaded(imageFile)
	if err != nil {
		s.logger.Error("Image store failed during attach", zap.Error(err), zap.String("poi_id", id.String()))
		return nil, common.ErrStorage
	}

	p, err = s.repo.AppendImage(ctx, id, imageID)
	if err != nil {
		s.logger.Error("Failed to append image", zap.Error(err), zap.String("poi_id", id.String()))
		return nil, common.ErrInternalServer.WithDetails("Could not attach image.")
	}
	s.logger.Info("Image attached", zap.String("poi_id", id.String()), zap.String("image_id", imageID))
	return s.toResponse(ctx, p)
}

// DetachImage removes the first occurrence of imageID from the POI's image
// list. The blob itself is never deleted; detaching an id that is not in the
// list succeeds without changing anything.
func (s *service) DetachImage(ctx context.Context, principalID uuid.UUID, principalRole string, id uuid.UUID, imageID string) (*POIResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(p, principalID, principalRole); err != nil {
		return nil, err
	}

	p, err = s.repo.RemoveImage(ctx, id, imageID)
	if err != nil {
		s.logger.Error("Failed to remove image", zap.Error(err), zap.String("poi_id", id.String()))
		return nil, common.ErrInternalServer.WithDetails("Could not detach image.")
	}
	s.logger.Info("Image detached", zap.String("poi_id", id.String()), zap.String("image_id", imageID))
	return s.toResponse(ctx, p)
}

// resolveCategory maps a human-entered category name to a category id. A
// blank or unresolvable name yields a nil reference rather than an error;
// the miss is logged so operators can spot typo'd names.
func (s *service) resolveCategory(ctx context.Context, name string) (*uuid.UUID, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	found, err := s.categoryService.GetByName(ctx, name)
	if err != nil {
		if apiErr, ok := common.IsAPIError(err); ok && apiErr.Code == "NOT_FOUND" {
			s.logger.Warn("Category name did not resolve, POI will carry no category", zap.String("name", name))
			return nil, nil
		}
		return nil, err
	}
	return &found.ID, nil
}

func authorize(p *POI, principalID uuid.UUID, principalRole string) error {
	if p.CreatorID != principalID && principalRole != common.RoleAdmin {
		return common.ErrForbidden.WithDetails("Only the creator or an admin may modify this POI.")
	}
	return nil
}

func (s *service) toResponse(ctx context.Context, p *POI) (*POIResponse, error) {
	resp := ToPOIResponse(p, s.images.Descriptors(p.Images))
	return &resp, nil
}

func (s *service) toResponses(ctx context.Context, pois []POI) ([]POIResponse, error) {
	responses := make([]POIResponse, len(pois))
	for i := range pois {
		responses[i] = ToPOIResponse(&pois[i], s.images.Descriptors(pois[i].Images))
	}
	return responses, nil
}
