package checkout

import (
	"context"
	"errors"
	"testing"

	"ebuy-be/internal/product"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RunInTx_CommitsOnSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewStore(db)
	cartID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM cart_items").
		WithArgs(cartID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = store.RunInTx(context.Background(), func(tx Tx) error {
		return tx.ClearCart(context.Background(), cartID)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_RunInTx_RollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewStore(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err = store.RunInTx(context.Background(), func(tx Tx) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTx_GetCartWithItems_NoCart(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM carts").
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err = store.RunInTx(context.Background(), func(tx Tx) error {
		_, _, err := tx.GetCartWithItems(context.Background(), 10)
		return err
	})
	assert.ErrorIs(t, err, ErrCartEmpty)
}

func TestTx_GetAddress_WrongOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewStore(db)
	addrID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM shipping_addresses").
		WithArgs(addrID, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err = store.RunInTx(context.Background(), func(tx Tx) error {
		_, err := tx.GetAddress(context.Background(), addrID, 10)
		return err
	})
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestTx_GetProductForUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewStore(db)
	productID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM products p(.+)FOR UPDATE OF p").
		WithArgs(productID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "seller_id", "title", "price", "quantity", "status",
			"username", "email",
		}).AddRow(productID, 2, "GTX 1080", "250.00", 3, "ACTIVE",
			"gpuseller", "seller@example.com"))
	mock.ExpectCommit()

	err = store.RunInTx(context.Background(), func(tx Tx) error {
		p, err := tx.GetProductForUpdate(context.Background(), productID)
		if err != nil {
			return err
		}
		assert.Equal(t, "GTX 1080", p.Title)
		assert.Equal(t, "seller@example.com", p.SellerEmail)
		assert.Equal(t, product.StatusActive, p.Status)
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTx_UpdateProductStock_GoneWhenNoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewStore(db)
	productID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE products").
		WithArgs(1, "ACTIVE", productID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err = store.RunInTx(context.Background(), func(tx Tx) error {
		return tx.UpdateProductStock(context.Background(), productID, 1, product.StatusActive)
	})
	assert.ErrorIs(t, err, ErrProductGone)
}
