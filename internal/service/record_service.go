package service

import (
	"context"
	"time"

	"github.com/alligatorO15/fin-lists/internal/filterquery"
	"github.com/alligatorO15/fin-lists/internal/grouping"
	"github.com/alligatorO15/fin-lists/internal/listview"
	"github.com/alligatorO15/fin-lists/internal/models"
	"github.com/alligatorO15/fin-lists/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecordList ответ списка записей вместе с каноничным состоянием фильтра
type RecordList struct {
	Filter    models.FilterForm    `json:"filter"`
	Params    filterquery.Params   `json:"params"`
	Query     string               `json:"query"`
	Groups    []models.RecordGroup `json:"groups"`
	Summaries []grouping.Summary   `json:"summaries"`
	Count     int                  `json:"count"`     // всего подходящих записей
	Truncated bool                 `json:"truncated"` // в Groups попали не все
}

type RecordService interface {
	GetRecordList(ctx context.Context, userID uuid.UUID, filter models.FilterForm) ([]models.RecordItem, error)
	List(ctx context.Context, userID uuid.UUID, params filterquery.Params) (*RecordList, error)
	// Fetcher граница загрузки для контроллера списка
	Fetcher(userID uuid.UUID) listview.Fetcher
}

type recordService struct {
	recordRepo repository.RecordRepository
	loc        *time.Location
	limit      int
	logger     *zap.Logger
}

func NewRecordService(recordRepo repository.RecordRepository, loc *time.Location, limit int, logger *zap.Logger) RecordService {
	return &recordService{
		recordRepo: recordRepo,
		loc:        loc,
		limit:      limit,
		logger:     logger,
	}
}

func (s *recordService) GetRecordList(ctx context.Context, userID uuid.UUID, filter models.FilterForm) ([]models.RecordItem, error) {
	// категория без типа не применяется
	if _, ok := filter.Type(); !ok {
		filter.CategoryID = nil
	}

	records, err := s.recordRepo.GetList(ctx, userID, filter, s.limit)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("records fetched", zap.String("user_id", userID.String()), zap.Int("count", len(records)))
	return records, nil
}

func (s *recordService) List(ctx context.Context, userID uuid.UUID, params filterquery.Params) (*RecordList, error) {
	filter := filterquery.Decode(params)

	records, err := s.GetRecordList(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	canonical := filterquery.Encode(filter)
	// чужие ключи ссылки отдаем как есть
	for k, v := range params {
		if !filterquery.IsRecognized(k) {
			canonical[k] = v
		}
	}

	count := len(records)
	truncated := s.limit > 0 && len(records) >= s.limit
	if truncated {
		total, err := s.recordRepo.Count(ctx, userID, filter)
		if err != nil {
			return nil, err
		}
		count = int(total)
		truncated = count > len(records)
	}

	groups := grouping.Group(records, s.loc)

	summaries := make([]grouping.Summary, 0, len(groups))
	for _, g := range groups {
		summaries = append(summaries, grouping.Summarize(g))
	}

	return &RecordList{
		Filter:    filter,
		Params:    canonical,
		Query:     canonical.Query(),
		Groups:    groups,
		Summaries: summaries,
		Count:     count,
		Truncated: truncated,
	}, nil
}

func (s *recordService) Fetcher(userID uuid.UUID) listview.Fetcher {
	return listview.FetcherFunc(func(ctx context.Context, filter models.FilterForm) ([]models.RecordItem, error) {
		return s.GetRecordList(ctx, userID, filter)
	})
}
