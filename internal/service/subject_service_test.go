package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stemsi/academia-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectCreateNormalizesAndRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	_, subjects := newServices()

	math, err := subjects.Create(ctx, model.CreateSubjectRequest{Subject: "math"})
	require.NoError(t, err)
	assert.Equal(t, "Math", math.Name)
	assert.Equal(t, 1, math.ID)

	_, err = subjects.Create(ctx, model.CreateSubjectRequest{Subject: "MATH"})
	assert.ErrorIs(t, err, ErrSubjectExists)

	_, err = subjects.Create(ctx, model.CreateSubjectRequest{Subject: "   "})
	assert.ErrorIs(t, err, ErrInvalidSubjectName)
}

func TestSubjectGetAll(t *testing.T) {
	ctx := context.Background()
	_, subjects := newServices()

	_, err := subjects.GetAll(ctx)
	assert.ErrorIs(t, err, ErrNoSubjects)

	for _, name := range []string{"physics", "Art"} {
		_, err := subjects.Create(ctx, model.CreateSubjectRequest{Subject: name})
		require.NoError(t, err)
	}

	all, err := subjects.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Subject{{ID: 1, Name: "Physics"}, {ID: 2, Name: "Art"}}, all)
}

func TestSubjectUnexpectedFailure(t *testing.T) {
	boom := errors.New("disk full")
	svc := NewSubjectService(brokenStore{err: boom}, zerolog.Nop())

	_, err := svc.GetAll(context.Background())
	assert.ErrorIs(t, err, boom)

	_, err = svc.Create(context.Background(), model.CreateSubjectRequest{Subject: "math"})
	assert.ErrorIs(t, err, boom)
}
