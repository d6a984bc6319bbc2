package ledger

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"wallet_ledger/internal/config"
	"wallet_ledger/internal/db"
	"wallet_ledger/internal/domain"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupStore(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := &config.Config{DBDriver: config.DriverSQLite, DBPath: filepath.Join(t.TempDir(), "wallet.db")}
	gdb, err := db.Open(cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	require.NoError(t, db.Migrate(gdb))

	return NewService(gdb), gdb
}

func createAlice(t *testing.T, svc *Service) *domain.User {
	t.Helper()
	u, err := svc.CreateUser(context.Background(), NewUser{Name: "Alice", Email: "a@x.com", Phone: "555"})
	require.NoError(t, err)
	return u
}

func TestCreateUser_StartsAtZero(t *testing.T) {
	svc, _ := setupStore(t)
	ctx := context.Background()

	alice := createAlice(t, svc)
	bob, err := svc.CreateUser(ctx, NewUser{Name: "Bob", Email: "b@x.com", Phone: "556"})
	require.NoError(t, err)

	assert.Equal(t, uint(1), alice.ID)
	assert.Equal(t, 0.0, alice.WalletBalance)
	assert.Equal(t, "Alice", alice.Name)
	assert.Equal(t, "a@x.com", alice.Email)
	assert.Equal(t, "555", alice.Phone)
	assert.NotEqual(t, alice.ID, bob.ID)
	assert.Equal(t, 0.0, bob.WalletBalance)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	svc, gdb := setupStore(t)
	ctx := context.Background()
	createAlice(t, svc)

	_, err := svc.CreateUser(ctx, NewUser{Name: "Alice Again", Email: "a@x.com", Phone: "000"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	var count int64
	require.NoError(t, gdb.Model(&domain.User{}).Where("email = ?", "a@x.com").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestListUsers(t *testing.T) {
	svc, _ := setupStore(t)
	ctx := context.Background()

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)

	createAlice(t, svc)
	_, err = svc.CreateUser(ctx, NewUser{Name: "Bob", Email: "b@x.com", Phone: "556"})
	require.NoError(t, err)

	users, err = svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Alice", users[0].Name)
	assert.Equal(t, "Bob", users[1].Name)

	again, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, users, again)
}

func TestAdjustWallet_SequentialSum(t *testing.T) {
	svc, _ := setupStore(t)
	ctx := context.Background()
	alice := createAlice(t, svc)

	amounts := []float64{50, -20, 0, 12.75, -100, 0.1, 0.2}
	want := 0.0
	var got float64
	for _, a := range amounts {
		want += a
		var err error
		got, err = svc.AdjustWallet(ctx, alice.ID, a)
		require.NoError(t, err)
	}
	assert.Equal(t, want, got)

	txs, err := svc.Transactions(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, txs, len(amounts))
	for i, tx := range txs {
		assert.Equal(t, amounts[i], tx.Amount)
		assert.Equal(t, alice.ID, tx.UserID)
		assert.Equal(t, domain.TypeFor(amounts[i]), tx.Type)
	}

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, users[0].WalletBalance)
}

func TestAdjustWallet_FloatArithmetic(t *testing.T) {
	svc, _ := setupStore(t)
	ctx := context.Background()
	alice := createAlice(t, svc)

	_, err := svc.AdjustWallet(ctx, alice.ID, 0.1)
	require.NoError(t, err)
	balance, err := svc.AdjustWallet(ctx, alice.ID, 0.2)
	require.NoError(t, err)

	a, b := 0.1, 0.2
	assert.Equal(t, a+b, balance)
	assert.NotEqual(t, 0.3, balance)

	txs, err := svc.Transactions(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "Wallet updated by 0.2", *txs[1].Description)
}

func TestAdjustWallet_Scenario(t *testing.T) {
	svc, _ := setupStore(t)
	ctx := context.Background()
	alice := createAlice(t, svc)

	balance, err := svc.AdjustWallet(ctx, alice.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, 50.0, balance)

	balance, err = svc.AdjustWallet(ctx, alice.ID, -20)
	require.NoError(t, err)
	assert.Equal(t, 30.0, balance)

	txs, err := svc.Transactions(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, 50.0, txs[0].Amount)
	assert.Equal(t, domain.Credit, txs[0].Type)
	require.NotNil(t, txs[0].Description)
	assert.Equal(t, "Wallet updated by 50.0", *txs[0].Description)

	assert.Equal(t, -20.0, txs[1].Amount)
	assert.Equal(t, domain.Debit, txs[1].Type)
	assert.Equal(t, "Wallet updated by -20.0", *txs[1].Description)
}

func TestAdjustWallet_NegativeBalanceAllowed(t *testing.T) {
	svc, _ := setupStore(t)
	alice := createAlice(t, svc)

	balance, err := svc.AdjustWallet(context.Background(), alice.ID, -75.5)
	require.NoError(t, err)
	assert.Equal(t, -75.5, balance)
}

func TestAdjustWallet_UnknownUser(t *testing.T) {
	svc, gdb := setupStore(t)

	_, err := svc.AdjustWallet(context.Background(), 42, 10)
	assert.ErrorIs(t, err, ErrUserNotFound)

	var count int64
	require.NoError(t, gdb.Model(&domain.Transaction{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestTransactions_UnknownUser(t *testing.T) {
	svc, _ := setupStore(t)

	_, err := svc.Transactions(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestZeroUserID_NotFound(t *testing.T) {
	svc, gdb := setupStore(t)
	createAlice(t, svc)
	ctx := context.Background()

	_, err := svc.AdjustWallet(ctx, 0, 10)
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = svc.Transactions(ctx, 0)
	assert.ErrorIs(t, err, ErrUserNotFound)

	var count int64
	require.NoError(t, gdb.Model(&domain.Transaction{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestTransactions_OnlyOwnEntries(t *testing.T) {
	svc, _ := setupStore(t)
	ctx := context.Background()
	alice := createAlice(t, svc)
	bob, err := svc.CreateUser(ctx, NewUser{Name: "Bob", Email: "b@x.com", Phone: "556"})
	require.NoError(t, err)

	_, err = svc.AdjustWallet(ctx, alice.ID, 5)
	require.NoError(t, err)
	_, err = svc.AdjustWallet(ctx, bob.ID, 7)
	require.NoError(t, err)

	txs, err := svc.Transactions(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, 7.0, txs[0].Amount)

	empty, err := svc.CreateUser(ctx, NewUser{Name: "Carol", Email: "c@x.com", Phone: "557"})
	require.NoError(t, err)
	txs, err = svc.Transactions(ctx, empty.ID)
	require.NoError(t, err)
	assert.NotNil(t, txs)
	assert.Empty(t, txs)
}

func TestTransactions_ForeignKeyEnforced(t *testing.T) {
	_, gdb := setupStore(t)

	orphan := domain.NewTransaction(99, 1)
	assert.Error(t, gdb.Create(&orphan).Error)
}

func TestPing(t *testing.T) {
	svc, _ := setupStore(t)
	assert.NoError(t, svc.Ping(context.Background()))
}
