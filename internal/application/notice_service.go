package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/pawkeeper/notices-api/internal/domain/entity"
	"github.com/pawkeeper/notices-api/internal/domain/repository"
)

var ErrNoticeNotFound = errors.New("notice not found")

// NoticeService owns notice CRUD, category listing, and the search index.
// Index writes are best-effort: Postgres is the source of truth.
type NoticeService struct {
	Repo    repository.NoticeRepository
	Logger  *logrus.Logger
	ES      *elasticsearch.Client
	ESIndex string
}

func NewNoticeService(repo repository.NoticeRepository, logger *logrus.Logger, es *elasticsearch.Client, esIndex string) *NoticeService {
	return &NoticeService{Repo: repo, Logger: logger, ES: es, ESIndex: esIndex}
}

type CreateNoticeInput struct {
	CategoryName string
	Title        string
	Description  string
	Location     string
	Price        string
	ImageURL     string
}

func (s *NoticeService) Create(ctx context.Context, ownerID string, in CreateNoticeInput) (*entity.Notice, error) {
	n := &entity.Notice{
		OwnerID:      ownerID,
		CategoryName: in.CategoryName,
		Title:        in.Title,
		Description:  in.Description,
		Location:     in.Location,
		Price:        in.Price,
		ImageURL:     in.ImageURL,
	}
	if err := s.Repo.Create(ctx, n); err != nil {
		return nil, err
	}
	_ = s.indexNotice(ctx, n)
	return n, nil
}

func (s *NoticeService) GetByID(ctx context.Context, id string) (*entity.Notice, error) {
	n, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoticeNotFound
		}
		return nil, err
	}
	return n, nil
}

func (s *NoticeService) ListByCategory(ctx context.Context, categoryName string) ([]*entity.Notice, error) {
	return s.Repo.ListByCategory(ctx, categoryName)
}

func (s *NoticeService) ListOwn(ctx context.Context, ownerID string) ([]*entity.Notice, error) {
	return s.Repo.ListByOwner(ctx, ownerID)
}

func (s *NoticeService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	return s.Repo.ListCategories(ctx)
}

// Delete removes a notice owned by the caller and drops it from the index.
func (s *NoticeService) Delete(ctx context.Context, id, ownerID string) error {
	if err := s.Repo.DeleteByIDAndOwner(ctx, id, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNoticeNotFound
		}
		return err
	}
	s.deleteFromIndex(ctx, id)
	return nil
}

func (s *NoticeService) indexNotice(ctx context.Context, n *entity.Notice) error {
	if s.ES == nil || s.ESIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":            n.ID,
		"owner_id":      n.OwnerID,
		"category_name": n.CategoryName,
		"title":         n.Title,
		"description":   n.Description,
		"location":      n.Location,
		"created_at":    n.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: n.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("notice_id", n.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("notice_id", n.ID).Warn("es index response error")
	}
	return nil
}

func (s *NoticeService) deleteFromIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("notice_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search performs a multi_match query over title, description, and location.
func (s *NoticeService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description", "location"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
