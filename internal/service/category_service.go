package service

import (
	"context"
	"errors"

	"github.com/alligatorO15/fin-lists/internal/models"
	"github.com/alligatorO15/fin-lists/internal/repository"
	"github.com/google/uuid"
)

var ErrInvalidRecordType = errors.New("invalid record type")

type CategoryService interface {
	// List категории для выбора в фильтре, nil значит все типы
	List(ctx context.Context, userID uuid.UUID, recordType *models.RecordType) ([]models.Category, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) List(ctx context.Context, userID uuid.UUID, recordType *models.RecordType) ([]models.Category, error) {
	if recordType == nil {
		return s.categoryRepo.GetByUserID(ctx, userID)
	}
	if !recordType.IsValid() {
		return nil, ErrInvalidRecordType
	}
	return s.categoryRepo.GetByType(ctx, userID, *recordType)
}
