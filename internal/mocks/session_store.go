package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/inkwellhq/inkwell-server/internal/model"
)

var _ model.SessionStore = (*SessionStore)(nil)

// SessionStore is a mock implementation of model.SessionStore.
type SessionStore struct {
	mock.Mock
}

func (m *SessionStore) Create(ctx context.Context, session model.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *SessionStore) Get(ctx context.Context, token uuid.UUID) (model.Session, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(model.Session), args.Error(1)
}

func (m *SessionStore) Delete(ctx context.Context, token uuid.UUID) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

var _ model.SessionCodec = (*SessionCodec)(nil)

// SessionCodec is a mock implementation of model.SessionCodec.
type SessionCodec struct {
	mock.Mock
}

func (m *SessionCodec) Issue(token uuid.UUID) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

func (m *SessionCodec) Parse(value string) (uuid.UUID, error) {
	args := m.Called(value)
	return args.Get(0).(uuid.UUID), args.Error(1)
}
