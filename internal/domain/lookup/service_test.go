package lookup

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/exp/slog"
)

type MockSearcher struct {
	mock.Mock
}

func (m *MockSearcher) Search(ctx context.Context, barcode string) (*RawMatch, error) {
	args := m.Called(ctx, barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*RawMatch), args.Error(1)
}

func TestService_Lookup(t *testing.T) {
	tests := []struct {
		name           string
		match          *RawMatch
		err            error
		expectedStatus int
		expectedOK     bool
		expectedMsg    string
	}{
		{
			name:           "match",
			match:          &RawMatch{Artist: "Miles Davis", Album: "Kind of Blue"},
			expectedStatus: http.StatusOK,
			expectedOK:     true,
		},
		{
			name:           "no match",
			expectedStatus: http.StatusOK,
			expectedMsg:    NotFoundMessage,
		},
		{
			name:           "provider error",
			err:            errors.New("discogs: 503 Service Unavailable"),
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "discogs: 503 Service Unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searcher := new(MockSearcher)
			searcher.On("Search", mock.Anything, "074646493526").Return(tt.match, tt.err)

			service := NewService(searcher, slog.Default())
			env, status := service.Lookup(context.Background(), "074646493526")

			assert.Equal(t, tt.expectedStatus, status)
			assert.Equal(t, tt.expectedOK, env.Success)
			assert.Equal(t, tt.expectedMsg, env.Message)
			searcher.AssertExpectations(t)
		})
	}
}
