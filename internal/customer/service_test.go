package customer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/ledger/internal/customer"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    customer.CreateParams
		setupMock func(m *customer.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: customer.CreateParams{
				Name:         "Acme Corp",
				Email:        "billing@acme.test",
				PaymentTerms: "Net 30",
				CreditLimit:  decimal.NewFromInt(5000),
			},
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().
					CreateCustomer(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *customer.Customer) error {
						assert.Equal(t, "Acme Corp", c.Name)
						assert.True(t, c.CreditLimit.Equal(decimal.NewFromInt(5000)))
						c.ID = "cust-1"
						return nil
					})
			},
		},
		{
			name:   "RepoError",
			params: customer.CreateParams{Name: "Acme Corp"},
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().
					CreateCustomer(gomock.Any(), gomock.Any()).
					Return(errors.New("quota exceeded"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := customer.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := customer.NewService(repo).Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "cust-1", got.ID)
		})
	}
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := customer.NewMockRepository(ctrl)

	name := "Acme Inc"
	u := customer.Update{Name: &name}

	repo.EXPECT().
		UpdateCustomer(gomock.Any(), "cust-1", u).
		Return(nil, customer.ErrNotFound)

	_, err := customer.NewService(repo).Update(context.Background(), "cust-1", u)
	assert.ErrorIs(t, err, customer.ErrNotFound)
}

func TestUpdate_Apply(t *testing.T) {
	c := customer.Customer{Name: "Acme", City: "Lisbon", Balance: decimal.NewFromInt(10)}

	city := "Porto"
	balance := decimal.NewFromInt(-5)
	customer.Update{City: &city, Balance: &balance}.Apply(&c)

	assert.Equal(t, "Acme", c.Name)
	assert.Equal(t, "Porto", c.City)
	assert.True(t, c.Balance.Equal(decimal.NewFromInt(-5)))
}
