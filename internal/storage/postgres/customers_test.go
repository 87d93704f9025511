package postgres

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/pribylovaa/customers-service/internal/models"
	"github.com/pribylovaa/customers-service/internal/storage"
	"github.com/stretchr/testify/require"
)

// Unit-тесты пакета postgres на pgxmock: проверяют SQL-контракт, маппинг строк
// и трансляцию ошибок драйвера в ошибки слоя storage без реальной БД.

var rowColumns = []string{"id", "name", "email", "gender", "password", "age", "profile_image_id"}

func newMockStorage(t *testing.T) (*CustomersStorage, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return &CustomersStorage{db: mock}, mock
}

func TestSelectAll_OrderedAndLimited(t *testing.T) {
	st, mock := newMockStorage(t)

	mock.ExpectQuery(`SELECT id, name, email, gender, password, age, profile_image_id FROM customer ORDER BY id LIMIT`).
		WithArgs(storage.SelectAllLimit).
		WillReturnRows(pgxmock.NewRows(rowColumns).
			AddRow(int64(1), "Alice", "alice@example.com", "FEMALE", "h1", int32(30), nil).
			AddRow(int64(2), "Bob", "bob@example.com", "MALE", "h2", int32(41), "img-2"))

	got, err := st.SelectAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, models.Customer{ID: 1, Name: "Alice", Email: "alice@example.com", Password: "h1", Age: 30, Gender: models.GenderFemale}, got[0])
	require.Equal(t, "img-2", got[1].ProfileImageID)
	require.Equal(t, models.GenderMale, got[1].Gender)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectAll_EmptyTable(t *testing.T) {
	st, mock := newMockStorage(t)

	mock.ExpectQuery(`FROM customer ORDER BY id`).
		WithArgs(storage.SelectAllLimit).
		WillReturnRows(pgxmock.NewRows(rowColumns))

	got, err := st.SelectAll(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectAll_CorruptedGender(t *testing.T) {
	st, mock := newMockStorage(t)

	mock.ExpectQuery(`FROM customer ORDER BY id`).
		WithArgs(storage.SelectAllLimit).
		WillReturnRows(pgxmock.NewRows(rowColumns).
			AddRow(int64(1), "Alice", "alice@example.com", "OTHER", "h1", int32(30), nil))

	_, err := st.SelectAll(context.Background())
	require.ErrorIs(t, err, storage.ErrCorruptedRow)
}

func TestSelectAll_QueryError(t *testing.T) {
	st, mock := newMockStorage(t)

	boom := errors.New("boom")
	mock.ExpectQuery(`FROM customer ORDER BY id`).WithArgs(storage.SelectAllLimit).WillReturnError(boom)

	_, err := st.SelectAll(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestSelectByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		st, mock := newMockStorage(t)

		mock.ExpectQuery(`FROM customer WHERE id =`).
			WithArgs(int64(7)).
			WillReturnRows(pgxmock.NewRows(rowColumns).
				AddRow(int64(7), "Carol", "carol@example.com", "FEMALE", "hash", int32(25), "img-7"))

		got, err := st.SelectByID(context.Background(), 7)
		require.NoError(t, err)
		require.Equal(t, &models.Customer{
			ID: 7, Name: "Carol", Email: "carol@example.com", Password: "hash",
			Age: 25, Gender: models.GenderFemale, ProfileImageID: "img-7",
		}, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		st, mock := newMockStorage(t)

		mock.ExpectQuery(`FROM customer WHERE id =`).
			WithArgs(int64(8)).
			WillReturnRows(pgxmock.NewRows(rowColumns))

		_, err := st.SelectByID(context.Background(), 8)
		require.ErrorIs(t, err, storage.ErrNotFoundCustomer)
	})

	t.Run("driver error", func(t *testing.T) {
		st, mock := newMockStorage(t)

		boom := errors.New("conn reset")
		mock.ExpectQuery(`FROM customer WHERE id =`).WithArgs(int64(9)).WillReturnError(boom)

		_, err := st.SelectByID(context.Background(), 9)
		require.ErrorIs(t, err, boom)
		require.NotErrorIs(t, err, storage.ErrNotFoundCustomer)
	})
}

func TestExistsByEmailAndID(t *testing.T) {
	st, mock := newMockStorage(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("alice@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(404)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	ok, err := st.ExistsByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = st.ExistsByID(context.Background(), 404)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert(t *testing.T) {
	c := &models.Customer{Name: "Dave", Email: "dave@example.com", Password: "hash", Age: 33, Gender: models.GenderMale}

	t.Run("ok", func(t *testing.T) {
		st, mock := newMockStorage(t)

		mock.ExpectQuery(`INSERT INTO customer`).
			WithArgs("Dave", "dave@example.com", "MALE", "hash", int32(33)).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(12)))

		id, err := st.Insert(context.Background(), c)
		require.NoError(t, err)
		require.EqualValues(t, 12, id)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation", func(t *testing.T) {
		st, mock := newMockStorage(t)

		mock.ExpectQuery(`INSERT INTO customer`).
			WithArgs("Dave", "dave@example.com", "MALE", "hash", int32(33)).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

		_, err := st.Insert(context.Background(), c)
		require.ErrorIs(t, err, storage.ErrAlreadyExists)
	})

	t.Run("other pg error", func(t *testing.T) {
		st, mock := newMockStorage(t)

		mock.ExpectQuery(`INSERT INTO customer`).
			WithArgs("Dave", "dave@example.com", "MALE", "hash", int32(33)).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.CheckViolation})

		_, err := st.Insert(context.Background(), c)
		require.Error(t, err)
		require.NotErrorIs(t, err, storage.ErrAlreadyExists)
	})

	t.Run("max int32 age", func(t *testing.T) {
		st, mock := newMockStorage(t)

		oldest := *c
		oldest.Age = math.MaxInt32

		mock.ExpectQuery(`INSERT INTO customer`).
			WithArgs("Dave", "dave@example.com", "MALE", "hash", int32(math.MaxInt32)).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(13)))

		_, err := st.Insert(context.Background(), &oldest)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("age wider than int32", func(t *testing.T) {
		st, mock := newMockStorage(t)

		// 1<<32+19 при усечении до int32 дал бы 19.
		wrapped := *c
		wrapped.Age = 1<<32 + 19

		_, err := st.Insert(context.Background(), &wrapped)
		require.ErrorIs(t, err, storage.ErrOutOfRange)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdate(t *testing.T) {
	c := &models.Customer{ID: 5, Name: "Eve", Email: "eve@example.com", Password: "hash", Age: 28, Gender: models.GenderFemale, ProfileImageID: "ignored"}

	t.Run("ok", func(t *testing.T) {
		st, mock := newMockStorage(t)

		mock.ExpectExec(`UPDATE customer`).
			WithArgs(int64(5), "Eve", "eve@example.com", "FEMALE", "hash", int32(28)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, st.Update(context.Background(), c))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		st, mock := newMockStorage(t)

		mock.ExpectExec(`UPDATE customer`).
			WithArgs(int64(5), "Eve", "eve@example.com", "FEMALE", "hash", int32(28)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		require.ErrorIs(t, st.Update(context.Background(), c), storage.ErrNotFoundCustomer)
	})

	t.Run("email conflict", func(t *testing.T) {
		st, mock := newMockStorage(t)

		mock.ExpectExec(`UPDATE customer`).
			WithArgs(int64(5), "Eve", "eve@example.com", "FEMALE", "hash", int32(28)).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

		require.ErrorIs(t, st.Update(context.Background(), c), storage.ErrAlreadyExists)
	})

	t.Run("age wider than int32", func(t *testing.T) {
		st, mock := newMockStorage(t)

		wrapped := *c
		wrapped.Age = math.MaxInt32 + 1

		require.ErrorIs(t, st.Update(context.Background(), &wrapped), storage.ErrOutOfRange)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteByID(t *testing.T) {
	st, mock := newMockStorage(t)

	mock.ExpectExec(`DELETE FROM customer`).WithArgs(int64(3)).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM customer`).WithArgs(int64(4)).WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, st.DeleteByID(context.Background(), 3))
	require.ErrorIs(t, st.DeleteByID(context.Background(), 4), storage.ErrNotFoundCustomer)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProfileImageID(t *testing.T) {
	st, mock := newMockStorage(t)

	mock.ExpectExec(`UPDATE customer SET profile_image_id`).
		WithArgs(int64(3), "img").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE customer SET profile_image_id`).
		WithArgs(int64(4), "img").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, st.UpdateProfileImageID(context.Background(), 3, "img"))
	require.ErrorIs(t, st.UpdateProfileImageID(context.Background(), 4, "img"), storage.ErrNotFoundCustomer)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMapCustomer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		row     customerRow
		want    *models.Customer
		wantErr error
	}{
		{
			name: "without image",
			row:  customerRow{ID: 1, Name: "A", Email: "a@x.io", Gender: "MALE", Password: "p", Age: 20},
			want: &models.Customer{ID: 1, Name: "A", Email: "a@x.io", Gender: models.GenderMale, Password: "p", Age: 20},
		},
		{
			name: "with image",
			row: customerRow{ID: 2, Name: "B", Email: "b@x.io", Gender: "FEMALE", Password: "p", Age: 21,
				ProfileImageID: pgtype.Text{String: "img", Valid: true}},
			want: &models.Customer{ID: 2, Name: "B", Email: "b@x.io", Gender: models.GenderFemale, Password: "p", Age: 21, ProfileImageID: "img"},
		},
		{
			name:    "unknown gender",
			row:     customerRow{ID: 3, Gender: "X"},
			wantErr: storage.ErrCorruptedRow,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := mapCustomer(tt.row)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.ErrorIs(t, err, models.ErrUnknownGender)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
