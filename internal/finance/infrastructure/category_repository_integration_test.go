package infrastructure

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/bxcodec/faker/v3"
	_ "github.com/jackc/pgx/v5/stdlib"
	database "github.com/pfinance/WalletManager/internal/db"
	"github.com/pfinance/WalletManager/internal/finance/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()
	pgContainer, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("wallets_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pgContainer.Terminate(ctx)
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.RunMigrations(db))
	return db
}

func insertTestUser(t *testing.T, db *sql.DB) string {
	t.Helper()
	var id string
	err := db.QueryRow(
		"INSERT INTO users (email, login, password_hash) VALUES ($1, $2, $3) RETURNING id",
		faker.Email(), faker.Username(), faker.Password(),
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestCategoryRepository_UniqueNamePerUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)

	userA := insertTestUser(t, db)
	userB := insertTestUser(t, db)

	first := &domain.Category{Name: "Groceries", TransactionType: "expense", UserID: userA}
	require.NoError(t, repo.Create(first))
	assert.NotEmpty(t, first.ID)

	// Same (user, name) pair violates the unique index.
	duplicate := &domain.Category{Name: "Groceries", TransactionType: "expense", UserID: userA}
	assert.Error(t, repo.Create(duplicate))

	// Same name under another user is fine, uniqueness is per user.
	other := &domain.Category{Name: "Groceries", TransactionType: "expense", UserID: userB}
	assert.NoError(t, repo.Create(other))
}

func TestCategoryRepository_FindByNameContaining(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)

	userID := insertTestUser(t, db)
	for _, name := range []string{"Groceries", "GROSS income", "Rent", "50% discount"} {
		transactionType := "expense"
		if name == "GROSS income" {
			transactionType = "income"
		}
		require.NoError(t, repo.Create(&domain.Category{Name: name, TransactionType: transactionType, UserID: userID}))
	}

	matched, err := repo.FindByNameContaining("gro")
	assert.NoError(t, err)
	assert.Len(t, matched, 2)

	// Pattern metacharacters in the search term match literally.
	matched, err = repo.FindByNameContaining("50%")
	assert.NoError(t, err)
	assert.Len(t, matched, 1)
	assert.Equal(t, "50% discount", matched[0].Name)

	matched, err = repo.FindByNameContaining("%")
	assert.NoError(t, err)
	assert.Len(t, matched, 1)
}

func TestCategoryRepository_FindByIDAbsent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)

	category, err := repo.FindByID("00000000-0000-0000-0000-000000000000")
	assert.NoError(t, err)
	assert.Nil(t, category)
}

func TestTransactionRepository_OrderedReplay(t *testing.T) {
	db := setupTestDB(t)
	walletRepo := NewWalletRepository(db)
	transactionRepo := NewTransactionRepository(db)

	userID := insertTestUser(t, db)
	wallet := &domain.Wallet{UserID: userID, Name: "Checking", InitialBalance: 100}
	require.NoError(t, walletRepo.Create(wallet))

	base := time.Now().UTC().Truncate(time.Second)
	// Inserted newest first; reads must come back oldest first.
	newer := &domain.Transaction{ID: "5f0c2a9e-58f7-4f2c-9d39-111111111111", FromWallet: wallet.ID, DebitValue: 30, Date: base.Add(time.Hour)}
	older := &domain.Transaction{ID: "5f0c2a9e-58f7-4f2c-9d39-222222222222", FromWallet: wallet.ID, CreditValue: 50, Date: base}
	require.NoError(t, transactionRepo.Save(newer))
	require.NoError(t, transactionRepo.Save(older))

	transactions, err := transactionRepo.FindByWallet(wallet.ID)
	assert.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, older.ID, transactions[0].ID)
	assert.Equal(t, newer.ID, transactions[1].ID)
	assert.Equal(t, 50.0, transactions[0].CreditValue)
}
