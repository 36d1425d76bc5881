package docstore_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carson-networks/expense-tracker/internal/storage/docstore"
	"github.com/carson-networks/expense-tracker/internal/storage/migrations"
)

const testTimeout = 10 * time.Second

var mongoURI string

// TestMain starts one MongoDB container for the package when GO_TEST_INTEGRATION is set.
func TestMain(m *testing.M) {
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		os.Exit(m.Run())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	mongoC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7.0",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start mongo testcontainer: %v\n", err)
		os.Exit(1)
	}

	host, err := mongoC.Host(ctx)
	if err != nil {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get container host: %v\n", err)
		os.Exit(1)
	}
	port, err := mongoC.MappedPort(ctx, "27017/tcp")
	if err != nil {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get mapped port: %v\n", err)
		os.Exit(1)
	}
	mongoURI = fmt.Sprintf("mongodb://%s:%s", host, port.Port())

	code := m.Run()

	_ = mongoC.Terminate(context.Background())
	os.Exit(code)
}

// newTestDatabase returns a migrated, uniquely named database that is dropped after the test.
func newTestDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	if mongoURI == "" {
		t.Skip("set GO_TEST_INTEGRATION=1 to run store integration tests")
	}

	name := "test_" + uuid.Must(uuid.NewV4()).String()[:8]
	uri := mongoURI + "/" + name

	_, post, err := migrations.Up(uri)
	require.NoError(t, err)
	require.Equal(t, uint(2), post)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)

	db := client.Database(name)
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return db
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	t.Cleanup(cancel)
	return ctx
}

func TestUsersTable_InsertAndFind(t *testing.T) {
	users := docstore.NewUsersTable(newTestDatabase(t))
	ctx := testContext(t)

	created, err := users.Insert(ctx, &docstore.UserCreate{Name: "Ana", Email: "ana@example.com", PasswordHash: "hash"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.IsAvatarImageSet)

	byEmail, err := users.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.Password)
}

func TestUsersTable_DuplicateEmail(t *testing.T) {
	users := docstore.NewUsersTable(newTestDatabase(t))
	ctx := testContext(t)

	_, err := users.Insert(ctx, &docstore.UserCreate{Name: "Ana", Email: "ana@example.com", PasswordHash: "h1"})
	require.NoError(t, err)

	_, err = users.Insert(ctx, &docstore.UserCreate{Name: "Other", Email: "ana@example.com", PasswordHash: "h2"})
	assert.ErrorIs(t, err, docstore.ErrDuplicateKey)
}

func TestUsersTable_NotFound(t *testing.T) {
	users := docstore.NewUsersTable(newTestDatabase(t))
	ctx := testContext(t)

	_, err := users.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, docstore.ErrNotFound)

	_, err = users.SetAvatar(ctx, "garbage", "img")
	assert.ErrorIs(t, err, docstore.ErrNotFound)

	_, err = users.SetAvatar(ctx, uuid.Must(uuid.NewV4()).String(), "img")
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestUsersTable_SetAvatarAndListExcept(t *testing.T) {
	users := docstore.NewUsersTable(newTestDatabase(t))
	ctx := testContext(t)

	ana, err := users.Insert(ctx, &docstore.UserCreate{Name: "Ana", Email: "ana@example.com", PasswordHash: "h"})
	require.NoError(t, err)
	bo, err := users.Insert(ctx, &docstore.UserCreate{Name: "Bo", Email: "bo@example.com", PasswordHash: "h"})
	require.NoError(t, err)
	cy, err := users.Insert(ctx, &docstore.UserCreate{Name: "Cy", Email: "cy@example.com", PasswordHash: "h"})
	require.NoError(t, err)

	updated, err := users.SetAvatar(ctx, bo.ID, "data:image/svg+xml;base64,AAA")
	require.NoError(t, err)
	assert.True(t, updated.IsAvatarImageSet)
	assert.Equal(t, "data:image/svg+xml;base64,AAA", updated.AvatarImage)

	others, err := users.ListExcept(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, others, 2)
	assert.Equal(t, bo.ID, others[0].ID)
	assert.Equal(t, cy.ID, others[1].ID)
	for _, u := range others {
		assert.Empty(t, u.Password)
	}
}

func TestTransactionsTable_Lifecycle(t *testing.T) {
	txs := docstore.NewTransactionsTable(newTestDatabase(t))
	ctx := testContext(t)

	owner := uuid.Must(uuid.NewV4()).String()
	stranger := uuid.Must(uuid.NewV4()).String()
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	created, err := txs.Insert(ctx, &docstore.TransactionCreate{
		UserID:          owner,
		Title:           "Salary",
		Amount:          decimal.RequireFromString("2500.75"),
		TransactionType: "income",
		Category:        "Salary",
		Date:            date,
	})
	require.NoError(t, err)
	assert.True(t, created.Amount.Equal(decimal.RequireFromString("2500.75")))

	_, err = txs.Insert(ctx, &docstore.TransactionCreate{
		UserID:          stranger,
		Title:           "Rent",
		Amount:          decimal.RequireFromString("900"),
		TransactionType: "expense",
		Category:        "Housing",
		Date:            date,
	})
	require.NoError(t, err)

	list, err := txs.List(ctx, &docstore.TransactionFilter{UserID: owner})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
	assert.True(t, list[0].Date.Equal(date))

	newTitle := "Stolen"
	_, err = txs.UpdateOwned(ctx, created.ID, stranger, &docstore.TransactionUpdate{Title: &newTitle})
	assert.ErrorIs(t, err, docstore.ErrNotFound)

	err = txs.DeleteOwned(ctx, created.ID, stranger)
	assert.ErrorIs(t, err, docstore.ErrNotFound)

	list, err = txs.List(ctx, &docstore.TransactionFilter{UserID: owner})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Salary", list[0].Title, "untouched by the stranger")

	amount := decimal.RequireFromString("2600")
	updated, err := txs.UpdateOwned(ctx, created.ID, owner, &docstore.TransactionUpdate{Amount: &amount})
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(amount))
	assert.Equal(t, "Salary", updated.Title)

	require.NoError(t, txs.DeleteOwned(ctx, created.ID, owner))
	err = txs.DeleteOwned(ctx, created.ID, owner)
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestTransactionsTable_ListFilter(t *testing.T) {
	txs := docstore.NewTransactionsTable(newTestDatabase(t))
	ctx := testContext(t)

	owner := uuid.Must(uuid.NewV4()).String()
	insert := func(title, kind string, date time.Time) {
		_, err := txs.Insert(ctx, &docstore.TransactionCreate{
			UserID:          owner,
			Title:           title,
			Amount:          decimal.RequireFromString("10"),
			TransactionType: kind,
			Category:        "Misc",
			Date:            date,
		})
		require.NoError(t, err)
	}
	insert("jan", "expense", time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))
	insert("feb", "income", time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC))
	insert("mar", "expense", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

	expense := "expense"
	list, err := txs.List(ctx, &docstore.TransactionFilter{UserID: owner, TransactionType: &expense})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "jan", list[0].Title)
	assert.Equal(t, "mar", list[1].Title)

	start := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	list, err = txs.List(ctx, &docstore.TransactionFilter{UserID: owner, StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	require.Len(t, list, 2, "bounds are inclusive")
	assert.Equal(t, "feb", list[0].Title)
}
