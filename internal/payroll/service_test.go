package payroll_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/ledger/internal/employee"
	"github.com/MrJamesThe3rd/ledger/internal/payroll"
	"github.com/MrJamesThe3rd/ledger/internal/record"
)

func staff() []*employee.Employee {
	return []*employee.Employee{
		{Base: record.Base{ID: "emp-1"}, Name: "Ada", PayType: employee.PayTypeSalary, Salary: decimal.NewFromInt(1000)},
		{Base: record.Base{ID: "emp-2"}, Name: "Grace", PayType: employee.PayTypeHourly, Salary: decimal.NewFromInt(20)},
		{Base: record.Base{ID: "emp-3"}, Name: "Linus", PayType: employee.PayTypeHourly, Salary: decimal.NewFromInt(30)},
		{Base: record.Base{ID: "emp-4"}, Name: "Ken", PayType: employee.PayTypeCommission, Salary: decimal.NewFromInt(500)},
	}
}

func period() payroll.PreviewParams {
	return payroll.PreviewParams{
		PayPeriodStart: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		PayPeriodEnd:   time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		PayDate:        time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC),
		Hours:          map[string]decimal.Decimal{"emp-2": decimal.RequireFromString("37.5")},
	}
}

func TestService_Preview(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := payroll.NewMockRepository(ctrl)
	employees := payroll.NewMockEmployees(ctrl)
	employees.EXPECT().Active(gomock.Any()).Return(staff(), nil)

	run, err := payroll.NewService(repo, employees).Preview(context.Background(), period())
	require.NoError(t, err)

	assert.Equal(t, payroll.StatusDraft, run.Status)
	require.Len(t, run.Employees, 4)

	salaried := run.Employees[0]
	assert.Equal(t, "emp-1", salaried.EmployeeID)
	assert.Equal(t, "653.50", salaried.NetPay.StringFixed(2))
	assert.False(t, salaried.HoursWorked.Valid)

	hourly := run.Employees[1]
	assert.Equal(t, "750.00", hourly.GrossPay.StringFixed(2))
	assert.Equal(t, "10.88", hourly.Medicare.StringFixed(2))
	assert.Equal(t, "490.12", hourly.NetPay.StringFixed(2))
	assert.True(t, hourly.HoursWorked.Valid)

	assert.True(t, run.Employees[2].GrossPay.IsZero(), "hourly without hours")
	assert.True(t, run.Employees[3].GrossPay.IsZero(), "commission")

	assert.Equal(t, "1750.00", run.TotalGrossPay.StringFixed(2))
	assert.Equal(t, "1143.62", run.TotalNetPay.StringFixed(2))
	assert.Equal(t, "606.38", run.TotalTaxes.StringFixed(2))
	assert.True(t, run.TotalGrossPay.Equal(run.TotalNetPay.Add(run.TotalTaxes)))
}

func TestService_Run(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(repo *payroll.MockRepository, employees *payroll.MockEmployees)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(repo *payroll.MockRepository, employees *payroll.MockEmployees) {
				employees.EXPECT().Active(gomock.Any()).Return(staff()[:1], nil)
				repo.EXPECT().
					CreateRun(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, r *payroll.Run) error {
						r.ID = "run-1"
						return nil
					})
			},
		},
		{
			name: "EmployeesError",
			setupMock: func(_ *payroll.MockRepository, employees *payroll.MockEmployees) {
				employees.EXPECT().Active(gomock.Any()).Return(nil, errors.New("medium offline"))
			},
			wantErr: true,
		},
		{
			name: "RepoError",
			setupMock: func(repo *payroll.MockRepository, employees *payroll.MockEmployees) {
				employees.EXPECT().Active(gomock.Any()).Return(nil, nil)
				repo.EXPECT().CreateRun(gomock.Any(), gomock.Any()).Return(errors.New("quota exceeded"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := payroll.NewMockRepository(ctrl)
			employees := payroll.NewMockEmployees(ctrl)
			tt.setupMock(repo, employees)

			got, err := payroll.NewService(repo, employees).Run(context.Background(), period())

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "run-1", got.ID)
		})
	}
}

func TestService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := payroll.NewMockRepository(ctrl)

	paid := payroll.StatusPaid
	repo.EXPECT().
		UpdateRun(gomock.Any(), "run-1", payroll.Update{Status: &paid}).
		Return(&payroll.Run{Status: paid}, nil)

	got, err := payroll.NewService(repo, nil).UpdateStatus(context.Background(), "run-1", paid)
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusPaid, got.Status)
}
