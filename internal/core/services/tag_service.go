package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/opentreso/treasury_app/internal/core/domain"
	portsrepo "github.com/opentreso/treasury_app/internal/core/ports/repositories"
	portssvc "github.com/opentreso/treasury_app/internal/core/ports/services"
	"github.com/opentreso/treasury_app/internal/dto"
)

type tagService struct {
	BaseService
	tagRepo portsrepo.TagRepository
}

// NewTagService creates a new TagService.
func NewTagService(tagRepo portsrepo.TagRepository) portssvc.TagSvcFacade {
	return &tagService{tagRepo: tagRepo}
}

// Ensure tagService implements the portssvc.TagSvcFacade interface
var _ portssvc.TagSvcFacade = (*tagService)(nil)

func (s *tagService) CreateTag(ctx context.Context, req dto.CreateTagRequest, actorID string) (*domain.Tag, error) {
	tag := domain.Tag{
		TagID:     uuid.NewString(),
		Name:      req.Name,
		Color:     req.Color,
		CreatedAt: time.Now().UTC(),
		CreatedBy: actorID,
	}
	if err := s.tagRepo.SaveTag(ctx, tag); err != nil {
		s.LogError(ctx, err, "Failed to save tag", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save tag: %w", err)
	}

	s.LogInfo(ctx, "Tag created", slog.String("tag_id", tag.TagID), slog.String("name", tag.Name))
	return &tag, nil
}

func (s *tagService) ListTags(ctx context.Context) ([]domain.Tag, error) {
	tags, err := s.tagRepo.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}
