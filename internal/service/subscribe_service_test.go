package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cultofdrive/internal/errors"
	"cultofdrive/internal/model"
)

func TestSubscribeService_Subscribe(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		repoErr   error
		expectErr error
		wantMsg   string
	}{
		{name: "new subscriber", email: "  Fan@Example.com "},
		{name: "already subscribed", email: "fan@example.com", repoErr: errors.ErrDuplicate, expectErr: errors.ErrAlreadySubscribed},
		{name: "wrapped duplicate", email: "fan@example.com", repoErr: fmt.Errorf("insert subscriber: %w", errors.ErrDuplicate), expectErr: errors.ErrAlreadySubscribed},
		{name: "empty email", email: "  ", wantMsg: "Email is required"},
		{name: "database error", email: "fan@example.com", repoErr: stderrors.New("connection reset"), wantMsg: "subscribe: connection reset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockSubscriberRepository)
			repo.On("Create", mock.Anything, mock.MatchedBy(func(s *model.Subscriber) bool {
				return s.Email == "fan@example.com"
			})).Return(tt.repoErr)

			err := NewSubscribeService(repo).Subscribe(context.Background(), tt.email)

			switch {
			case tt.expectErr != nil:
				assert.ErrorIs(t, err, tt.expectErr)
			case tt.wantMsg != "":
				assert.EqualError(t, err, tt.wantMsg)
			default:
				assert.NoError(t, err)
				repo.AssertExpectations(t)
			}
		})
	}
}
