package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopcore-dev/shopcore/internal/catalog"
	"github.com/shopcore-dev/shopcore/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newMockAdapter(t *testing.T) (*Adapter, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return &Adapter{db: db}, mock, db
}

func TestAdapter_SaveOrder(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	now := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	order := &catalog.Order{
		ID:     "O1",
		UserID: "U1",
		ShippingInfo: catalog.ShippingInfo{
			Address: "12 Hill Road", City: "Pune", State: "MH",
			Country: "India", PinCode: "411001",
		},
		Items: []catalog.OrderItem{
			{ProductID: "P1", Name: "laptop", Price: decimal.NewFromInt(500), Quantity: 2},
		},
		Subtotal:  decimal.NewFromInt(1000),
		Tax:       decimal.NewFromInt(180),
		Total:     decimal.NewFromInt(1180),
		Status:    catalog.StatusProcessing,
		CreatedAt: now,
	}

	mock.ExpectExec(regexp.QuoteMeta(queryUpsertOrder)).
		WithArgs(
			order.ID,
			order.UserID,
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
			order.Subtotal,
			order.Tax,
			order.ShippingCharges,
			order.Discount,
			order.Total,
			string(order.Status),
			order.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, adapter.SaveOrder(context.Background(), order))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_OrderByID(t *testing.T) {
	now := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)

	orderRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{
			"id", "user_id", "shipping_info", "items",
			"subtotal", "tax", "shipping_charges", "discount", "total",
			"status", "created_at",
		}).AddRow(
			"O1", "U1",
			[]byte(`{"address":"12 Hill Road","city":"Pune","state":"MH","country":"India","pinCode":"411001","phone":""}`),
			[]byte(`[{"productId":"P1","name":"laptop","price":"500","quantity":2}]`),
			"1000", "180", "0", "0", "1180",
			"Processing", now,
		)
	}

	tests := []struct {
		name       string
		mockResult func(mock sqlmock.Sqlmock)
		assertions func(t *testing.T, order *catalog.Order, err error)
	}{
		{
			name: "found",
			mockResult: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(queryOrderByID)).
					WithArgs("O1").
					WillReturnRows(orderRows())
			},
			assertions: func(t *testing.T, order *catalog.Order, err error) {
				require.NoError(t, err)
				require.Equal(t, "O1", order.ID)
				require.Equal(t, catalog.StatusProcessing, order.Status)
				require.Len(t, order.Items, 1)
				require.Equal(t, int64(2), order.Items[0].Quantity)
				require.True(t, order.Total.Equal(decimal.NewFromInt(1180)))
				require.Equal(t, "Pune", order.ShippingInfo.City)
			},
		},
		{
			name: "missing maps to ErrNotFound",
			mockResult: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(queryOrderByID)).
					WithArgs("O1").
					WillReturnError(sql.ErrNoRows)
			},
			assertions: func(t *testing.T, _ *catalog.Order, err error) {
				require.ErrorIs(t, err, store.ErrNotFound)
			},
		},
		{
			name: "query error propagates",
			mockResult: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(queryOrderByID)).
					WithArgs("O1").
					WillReturnError(errors.New("connection reset"))
			},
			assertions: func(t *testing.T, _ *catalog.Order, err error) {
				require.Error(t, err)
				require.ErrorContains(t, err, "failed to load order")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			adapter, mock, db := newMockAdapter(t)
			defer db.Close()

			tc.mockResult(mock)

			order, err := adapter.OrderByID(context.Background(), "O1")
			tc.assertions(t, order, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAdapter_DeleteOrder(t *testing.T) {
	t.Run("deletes existing", func(t *testing.T) {
		adapter, mock, db := newMockAdapter(t)
		defer db.Close()

		mock.ExpectExec(regexp.QuoteMeta(queryDeleteOrder)).
			WithArgs("O1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, adapter.DeleteOrder(context.Background(), "O1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing maps to ErrNotFound", func(t *testing.T) {
		adapter, mock, db := newMockAdapter(t)
		defer db.Close()

		mock.ExpectExec(regexp.QuoteMeta(queryDeleteOrder)).
			WithArgs("O1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.ErrorIs(t, adapter.DeleteOrder(context.Background(), "O1"), store.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAdapter_ProductByID(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	now := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(queryProductByID)).
		WithArgs("P1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "category", "description", "photos", "price", "stock", "created_at",
		}).AddRow(
			"P1", "laptop", "electronics", "A laptop",
			[]byte(`["photo-1.jpg"]`), "500", int64(5), now,
		))

	product, err := adapter.ProductByID(context.Background(), "P1")
	require.NoError(t, err)
	require.Equal(t, "electronics", product.Category)
	require.Equal(t, []string{"photo-1.jpg"}, product.Photos)
	require.Equal(t, int64(5), product.Stock)
	require.True(t, product.Price.Equal(decimal.NewFromInt(500)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_Counts(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryCountOrdersByStatus)).
		WithArgs("Processing").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))

	mock.ExpectQuery(regexp.QuoteMeta(queryCountOutOfStock)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))

	mock.ExpectQuery(regexp.QuoteMeta(queryCountUsersByGender)).
		WithArgs("female").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(7)))

	ctx := context.Background()

	n, err := adapter.CountOrdersByStatus(ctx, catalog.StatusProcessing)
	require.NoError(t, err)
	require.Equal(t, int64(3), n)

	n, err = adapter.CountOutOfStock(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	n, err = adapter.CountUsersByGender(ctx, catalog.GenderFemale)
	require.NoError(t, err)
	require.Equal(t, int64(7), n)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_DistinctCategories(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryDistinctCategories)).
		WillReturnRows(sqlmock.NewRows([]string{"category"}).
			AddRow("electronics").
			AddRow("footwear"))

	categories, err := adapter.DistinctCategories(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"electronics", "footwear"}, categories)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_OrderAccepting(t *testing.T) {
	t.Run("set then read", func(t *testing.T) {
		adapter, mock, db := newMockAdapter(t)
		defer db.Close()

		mock.ExpectExec(regexp.QuoteMeta(queryUpsertSetting)).
			WithArgs(settingOrderAccepting, false, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		mock.ExpectQuery(regexp.QuoteMeta(queryGetSetting)).
			WithArgs(settingOrderAccepting).
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(false))

		ctx := context.Background()
		require.NoError(t, adapter.SetOrderAccepting(ctx, false))

		accepting, err := adapter.OrderAccepting(ctx)
		require.NoError(t, err)
		require.False(t, accepting)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unset maps to ErrNotFound", func(t *testing.T) {
		adapter, mock, db := newMockAdapter(t)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(queryGetSetting)).
			WithArgs(settingOrderAccepting).
			WillReturnError(sql.ErrNoRows)

		_, err := adapter.OrderAccepting(context.Background())
		require.ErrorIs(t, err, store.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
