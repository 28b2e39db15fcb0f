package expense_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/ledger/internal/expense"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name       string
		params     expense.CreateParams
		setupMock  func(m *expense.MockRepository)
		wantStatus expense.Status
		wantErr    bool
	}

	tests := []testCase{
		{
			name: "DefaultsToPending",
			params: expense.CreateParams{
				Description: "Figma seat",
				Category:    "Software",
				Amount:      decimal.RequireFromString("15.00"),
				Date:        time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			},
			setupMock: func(m *expense.MockRepository) {
				m.EXPECT().CreateExpense(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus: expense.StatusPending,
		},
		{
			name: "KeepsGivenStatus",
			params: expense.CreateParams{
				Description: "Train",
				Category:    "Travel",
				Amount:      decimal.RequireFromString("42.10"),
				Status:      expense.StatusApproved,
			},
			setupMock: func(m *expense.MockRepository) {
				m.EXPECT().CreateExpense(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus: expense.StatusApproved,
		},
		{
			name:   "RepoError",
			params: expense.CreateParams{Description: "x"},
			setupMock: func(m *expense.MockRepository) {
				m.EXPECT().CreateExpense(gomock.Any(), gomock.Any()).Return(errors.New("quota exceeded"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := expense.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := expense.NewService(repo).Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got.Status)
		})
	}
}

func TestService_CreateMarksReceipt(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := expense.NewMockRepository(ctrl)

	repo.EXPECT().
		CreateExpense(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *expense.Expense) error {
			assert.True(t, e.Receipt)
			return nil
		})

	_, err := expense.NewService(repo).Create(context.Background(), expense.CreateParams{
		Description: "Laptop",
		ReceiptURL:  "https://files.example.test/r/1.pdf",
	})
	require.NoError(t, err)
}

func TestService_CreateBatchStopsOnError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := expense.NewMockRepository(ctrl)

	gomock.InOrder(
		repo.EXPECT().CreateExpense(gomock.Any(), gomock.Any()).Return(nil),
		repo.EXPECT().CreateExpense(gomock.Any(), gomock.Any()).Return(errors.New("quota exceeded")),
	)

	created, err := expense.NewService(repo).CreateBatch(context.Background(), []expense.CreateParams{
		{Description: "a"}, {Description: "b"}, {Description: "c"},
	})
	assert.Error(t, err)
	assert.Len(t, created, 1)
}

func TestService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := expense.NewMockRepository(ctrl)

	rejected := expense.StatusRejected

	repo.EXPECT().
		UpdateExpense(gomock.Any(), "exp-1", expense.Update{Status: &rejected}).
		Return(&expense.Expense{Status: rejected}, nil)

	got, err := expense.NewService(repo).UpdateStatus(context.Background(), "exp-1", rejected)
	require.NoError(t, err)
	assert.Equal(t, rejected, got.Status)
}

func TestListFilter_Match(t *testing.T) {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	e := &expense.Expense{Category: "Travel", Status: expense.StatusPending, Date: day}

	pending := expense.StatusPending
	approved := expense.StatusApproved

	assert.True(t, expense.ListFilter{}.Match(e))
	assert.True(t, expense.ListFilter{Status: &pending, Category: "Travel", StartDate: &day, EndDate: &day}.Match(e))
	assert.False(t, expense.ListFilter{Status: &approved}.Match(e))
	assert.False(t, expense.ListFilter{Category: "Software"}.Match(e))
	assert.False(t, expense.ListFilter{HasReceipt: true}.Match(e))
}
