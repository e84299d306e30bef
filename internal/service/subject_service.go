package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/stemsi/academia-backend/internal/model"
	"github.com/stemsi/academia-backend/internal/repository"
)

type SubjectService struct {
	uow repository.UnitOfWork
	log zerolog.Logger
}

func NewSubjectService(uow repository.UnitOfWork, log zerolog.Logger) *SubjectService {
	return &SubjectService{
		uow: uow,
		log: log.With().Str("component", "subject_service").Logger(),
	}
}

func (s *SubjectService) GetAll(ctx context.Context) ([]model.Subject, error) {
	var subjects []model.Subject
	err := s.uow.Do(ctx, func(tx repository.Tx) error {
		var err error
		subjects, err = tx.Subjects().List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(subjects) == 0 {
		return nil, ErrNoSubjects
	}
	return subjects, nil
}

// Create stores a subject under its capitalized name.
func (s *SubjectService) Create(ctx context.Context, req model.CreateSubjectRequest) (*model.Subject, error) {
	sub := &model.Subject{Name: model.NormalizeSubjectName(req.Subject)}
	if sub.Name == "" {
		return nil, ErrInvalidSubjectName
	}

	err := s.uow.Do(ctx, func(tx repository.Tx) error {
		taken, err := tx.Subjects().ExistsByName(ctx, sub.Name)
		if err != nil {
			return err
		}
		if taken {
			return ErrSubjectExists
		}
		return tx.Subjects().Create(ctx, sub)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSubjectExists
		}
		return nil, err
	}

	s.log.Info().Int("subject_id", sub.ID).Str("subject", sub.Name).Msg("subject added")
	return sub, nil
}
