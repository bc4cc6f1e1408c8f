package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/lynxview-api/internal/dto"
	"github.com/yukikurage/lynxview-api/internal/models"
	"github.com/yukikurage/lynxview-api/internal/repository"
	"github.com/yukikurage/lynxview-api/internal/utils"
	"gorm.io/gorm"
)

var ErrTechnologyExists = validationError("a technology with this name already exists")

// TechnologyService handles technology business logic
type TechnologyService struct {
	techRepo repository.TechnologyRepository
}

// NewTechnologyService creates a new TechnologyService
func NewTechnologyService(techRepo repository.TechnologyRepository) *TechnologyService {
	return &TechnologyService{techRepo: techRepo}
}

// CreateTechnologyInput represents input for creating a technology
type CreateTechnologyInput struct {
	Name        string
	Category    *string
	Description *string
}

// UpdateTechnologyInput represents a partial update of a technology
type UpdateTechnologyInput struct {
	Name        utils.Optional[string]
	Category    utils.Optional[string]
	Description utils.Optional[string]
}

// Search returns a page of technologies matching filter
func (s *TechnologyService) Search(ctx context.Context, filter repository.TechnologyFilter, skip, limit int) (*dto.TechnologyListResponse, error) {
	techs, total, err := s.techRepo.Search(ctx, filter, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search technologies: %w", err)
	}

	return &dto.TechnologyListResponse{
		Total:        total,
		Technologies: dto.ToTechnologyResponses(techs),
	}, nil
}

// GetByID returns a technology
func (s *TechnologyService) GetByID(ctx context.Context, id uint64) (*dto.TechnologyResponse, error) {
	tech, err := s.techRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, ErrTechnologyNotFound, "technology")
	}

	resp := dto.ToTechnologyResponse(*tech)
	return &resp, nil
}

// Create creates a technology with a unique name
func (s *TechnologyService) Create(ctx context.Context, input CreateTechnologyInput) (resp *dto.TechnologyResponse, err error) {
	defer func() { observe("technology", "create", err) }()

	if err := checkLength("name", input.Name, 1, 100); err != nil {
		return nil, err
	}
	if err := checkOptionalLength("category", input.Category, 50); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if err := s.ensureNameFree(ctx, name, 0); err != nil {
		return nil, err
	}

	created, err := s.techRepo.Create(ctx, &models.Technology{
		Name:        name,
		Category:    input.Category,
		Description: input.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create technology: %w", err)
	}

	out := dto.ToTechnologyResponse(*created)
	return &out, nil
}

// Update applies a partial update; the name stays unique among other rows
func (s *TechnologyService) Update(ctx context.Context, id uint64, input UpdateTechnologyInput) (resp *dto.TechnologyResponse, err error) {
	defer func() { observe("technology", "update", err) }()

	if _, err := s.techRepo.GetByID(ctx, id); err != nil {
		return nil, lookupError(err, ErrTechnologyNotFound, "technology")
	}

	patch := repository.Patch{}
	if input.Name.Set {
		if err := notNull(input.Name, "name"); err != nil {
			return nil, err
		}
		if err := checkLength("name", *input.Name.Value, 1, 100); err != nil {
			return nil, err
		}
		name := strings.TrimSpace(*input.Name.Value)
		if err := s.ensureNameFree(ctx, name, id); err != nil {
			return nil, err
		}
		patch["name"] = name
	}
	if err := checkOptionalLength("category", input.Category.Value, 50); err != nil {
		return nil, err
	}
	putOptional(patch, "category", input.Category)
	putOptional(patch, "description", input.Description)

	updated, err := s.techRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, lookupError(err, ErrTechnologyNotFound, "technology")
	}

	out := dto.ToTechnologyResponse(*updated)
	return &out, nil
}

// Delete removes a technology
func (s *TechnologyService) Delete(ctx context.Context, id uint64) (err error) {
	defer func() { observe("technology", "delete", err) }()

	ok, err := s.techRepo.Delete(ctx, id)
	return deleted(ok, err, ErrTechnologyNotFound, "technology")
}

// Categories lists the distinct technology categories
func (s *TechnologyService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.techRepo.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// ListByCategory lists technologies in category
func (s *TechnologyService) ListByCategory(ctx context.Context, category string) ([]dto.TechnologyResponse, error) {
	techs, err := s.techRepo.ListByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list technologies by category: %w", err)
	}
	return dto.ToTechnologyResponses(techs), nil
}

func (s *TechnologyService) ensureNameFree(ctx context.Context, name string, selfID uint64) error {
	existing, err := s.techRepo.FindByName(ctx, name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check technology name: %w", err)
	}
	if existing.ID != selfID {
		return ErrTechnologyExists
	}
	return nil
}
