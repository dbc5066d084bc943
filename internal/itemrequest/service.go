package itemrequest

import (
	"context"
	"strings"

	"github.com/peershare/peershare-backend/internal/user"
)

type Service interface {
	Create(ctx context.Context, requesterID int64, description string) (*ItemRequest, error)
	ListAll(ctx context.Context) ([]*ItemRequest, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]*Details, error)
	GetByID(ctx context.Context, id int64) (*Details, error)
}

type service struct {
	repo  Repository
	users user.Service
}

func NewService(repo Repository, users user.Service) Service {
	return &service{repo: repo, users: users}
}

func (s *service) Create(ctx context.Context, requesterID int64, description string) (*ItemRequest, error) {
	if strings.TrimSpace(description) == "" {
		return nil, ErrDescriptionRequired
	}
	if _, err := s.users.GetByID(ctx, requesterID); err != nil {
		return nil, ErrRequesterNotFound
	}

	req := &ItemRequest{
		Description: description,
		RequesterID: requesterID,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) ListAll(ctx context.Context) ([]*ItemRequest, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) ListByRequester(ctx context.Context, requesterID int64) ([]*Details, error) {
	if _, err := s.users.GetByID(ctx, requesterID); err != nil {
		return nil, ErrRequesterNotFound
	}

	requests, err := s.repo.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return []*Details{}, nil
	}

	ids := make([]int64, len(requests))
	for i, req := range requests {
		ids[i] = req.ID
	}

	answers, err := s.repo.AnswersFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	details := make([]*Details, len(requests))
	for i, req := range requests {
		details[i] = &Details{
			ItemRequest: *req,
			Items:       answers[req.ID],
		}
	}
	return details, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Details, error) {
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	answers, err := s.repo.AnswersFor(ctx, []int64{req.ID})
	if err != nil {
		return nil, err
	}
	return &Details{
		ItemRequest: *req,
		Items:       answers[req.ID],
	}, nil
}
