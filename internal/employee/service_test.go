package employee_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/ledger/internal/employee"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    employee.CreateParams
		setupMock func(m *employee.MockRepository)
		want      func(t *testing.T, e *employee.Employee)
		wantErr   bool
	}

	tests := []testCase{
		{
			name:   "Defaults",
			params: employee.CreateParams{Name: "Ada", Salary: decimal.NewFromInt(4000)},
			setupMock: func(m *employee.MockRepository) {
				m.EXPECT().CreateEmployee(gomock.Any(), gomock.Any()).Return(nil)
			},
			want: func(t *testing.T, e *employee.Employee) {
				assert.Equal(t, employee.StatusActive, e.Status)
				assert.Equal(t, employee.PayTypeSalary, e.PayType)
			},
		},
		{
			name: "Hourly",
			params: employee.CreateParams{
				Name:     "Grace",
				Salary:   decimal.NewFromInt(25),
				PayType:  employee.PayTypeHourly,
				Status:   employee.StatusInactive,
				BankInfo: employee.BankInfo{RoutingNumber: "021000021", AccountNumber: "1234"},
			},
			setupMock: func(m *employee.MockRepository) {
				m.EXPECT().CreateEmployee(gomock.Any(), gomock.Any()).Return(nil)
			},
			want: func(t *testing.T, e *employee.Employee) {
				assert.Equal(t, employee.StatusInactive, e.Status)
				assert.Equal(t, employee.PayTypeHourly, e.PayType)
				assert.Equal(t, "1234", e.BankInfo.AccountNumber)
			},
		},
		{
			name:   "RepoError",
			params: employee.CreateParams{Name: "x"},
			setupMock: func(m *employee.MockRepository) {
				m.EXPECT().CreateEmployee(gomock.Any(), gomock.Any()).Return(errors.New("quota exceeded"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := employee.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := employee.NewService(repo).Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			tt.want(t, got)
		})
	}
}

func TestService_Active(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := employee.NewMockRepository(ctrl)

	active := employee.StatusActive
	repo.EXPECT().
		ListEmployees(gomock.Any(), &active).
		Return([]*employee.Employee{{Name: "Ada"}}, nil)

	got, err := employee.NewService(repo).Active(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestUpdate_Apply(t *testing.T) {
	e := employee.Employee{
		Name:    "Ada",
		TaxInfo: employee.TaxInfo{FederalAllowances: 2, StateAllowances: 1},
	}

	tax := employee.TaxInfo{FederalAllowances: 3}
	inactive := employee.StatusInactive
	employee.Update{TaxInfo: &tax, Status: &inactive}.Apply(&e)

	assert.Equal(t, "Ada", e.Name)
	assert.Equal(t, employee.StatusInactive, e.Status)
	assert.Equal(t, 3, e.TaxInfo.FederalAllowances)
	assert.Zero(t, e.TaxInfo.StateAllowances)
}
