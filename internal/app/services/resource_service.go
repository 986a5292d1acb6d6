package services

import (
	"context"
	"fmt"

	"github.com/yigit/brainora/internal/app/auth"
	"github.com/yigit/brainora/internal/app/models"
	"github.com/yigit/brainora/internal/app/models/dto"
	"github.com/yigit/brainora/internal/app/repositories"
	"github.com/yigit/brainora/internal/pkg/filestorage"
	"github.com/yigit/brainora/internal/pkg/helpers"
	"github.com/yigit/brainora/internal/pkg/logger"
	"github.com/yigit/brainora/internal/pkg/metrics"
)

// CategoryListing is one category page of resources.
type CategoryListing struct {
	Category models.Category
	Heading  string
	// Known is false for slugs that are not a category; Resources is then empty.
	Known     bool
	Resources []models.Resource
}

// ResourceService defines the interface for uploaded resource operations
type ResourceService interface {
	// Upload validates the form, stores the optional file and creates the record.
	Upload(ctx context.Context, user *models.User, form dto.ResourceUploadForm) (*models.Resource, error)
	Recent(ctx context.Context, limit uint64) ([]models.Resource, error)
	ListByCategory(ctx context.Context, slug, search string) (*CategoryListing, error)
	Get(ctx context.Context, id int64) (*models.Resource, error)
	Delete(ctx context.Context, user *models.User, id int64) error
}

type resourceServiceImpl struct {
	resources    ResourceStore
	storage      filestorage.FileStorage
	maxFileBytes int64
}

// NewResourceService creates a new resource service instance
func NewResourceService(resources ResourceStore, storage filestorage.FileStorage, maxFileBytes int64) ResourceService {
	return &resourceServiceImpl{resources: resources, storage: storage, maxFileBytes: maxFileBytes}
}

func (s *resourceServiceImpl) Upload(ctx context.Context, user *models.User, form dto.ResourceUploadForm) (res *models.Resource, err error) {
	form.Normalize()
	if err := form.Validate(s.maxFileBytes).OrNil(); err != nil {
		return nil, err
	}
	defer func() { metrics.RecordUpload("resource", err) }()

	var key string
	if form.File != nil {
		key, err = s.storage.Save(ctx, form.File, filestorage.DirResources)
		if err != nil {
			return nil, fmt.Errorf("failed to store resource file: %w", err)
		}
	}

	uploader := user.ID
	res = &models.Resource{
		Title:       form.Title,
		Category:    models.Category(form.Category),
		Description: form.Description,
		File:        key,
		Link:        form.Link,
		UploadedBy:  &uploader,
	}
	if err := s.resources.Create(ctx, res); err != nil {
		removeStoredFile(ctx, s.storage, filestorage.DirResources, key)
		return nil, err
	}

	logger.Info().Int64("resourceID", res.ID).Int64("userID", user.ID).Str("category", form.Category).Msg("Resource uploaded")
	return res, nil
}

func (s *resourceServiceImpl) Recent(ctx context.Context, limit uint64) ([]models.Resource, error) {
	return s.resources.List(ctx, repositories.ResourceFilter{Limit: limit})
}

func (s *resourceServiceImpl) ListByCategory(ctx context.Context, slug, search string) (*CategoryListing, error) {
	category := models.Category(slug)
	if !category.Valid() {
		return &CategoryListing{Category: category, Heading: helpers.Humanize(slug), Resources: []models.Resource{}}, nil
	}

	resources, err := s.resources.List(ctx, repositories.ResourceFilter{Category: category, Search: search})
	if err != nil {
		return nil, err
	}
	return &CategoryListing{Category: category, Heading: category.Label(), Known: true, Resources: resources}, nil
}

func (s *resourceServiceImpl) Get(ctx context.Context, id int64) (*models.Resource, error) {
	return s.resources.GetByID(ctx, id)
}

func (s *resourceServiceImpl) Delete(ctx context.Context, user *models.User, id int64) error {
	res, err := s.resources.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.Authorize(user, res, "delete this resource"); err != nil {
		logger.Warn().Int64("resourceID", id).Int64("userID", user.ID).Msg("Rejected resource delete")
		return err
	}

	removeStoredFile(ctx, s.storage, filestorage.DirResources, res.File)
	if err := s.resources.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("resourceID", id).Int64("userID", user.ID).Msg("Resource deleted")
	return nil
}
