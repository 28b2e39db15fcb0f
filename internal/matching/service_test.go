package matching_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/ledger/internal/matching"
)

func TestService_Learn(t *testing.T) {
	type testCase struct {
		name      string
		pattern   string
		setupMock func(m *matching.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:    "TrimsPattern",
			pattern: "  Uber  ",
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().
					CreateRule(gomock.Any(), "Uber", "Travel").
					Return(&matching.Rule{Pattern: "Uber", Category: "Travel"}, nil)
			},
		},
		{
			name:      "EmptyPattern",
			pattern:   "   ",
			setupMock: func(*matching.MockRepository) {},
			wantErr:   matching.ErrEmptyPattern,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := matching.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := matching.NewService(repo).Learn(context.Background(), tt.pattern, "Travel")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Uber", got.Pattern)
		})
	}
}

func TestService_SuggestFor(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := matching.NewMockRepository(ctrl)

	gomock.InOrder(
		repo.EXPECT().FindMatch(gomock.Any(), "ACME LTD").Return("", nil),
		repo.EXPECT().FindMatch(gomock.Any(), "POS UBER TRIP").Return("Travel", nil),
	)

	got, err := matching.NewService(repo).SuggestFor(context.Background(), "ACME LTD", "", "POS UBER TRIP")
	require.NoError(t, err)
	assert.Equal(t, "Travel", got)
}
