package docstore

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ ITransactionTable = (*TransactionsTable)(nil)

// transactionDocument is the stored shape. Amounts are Decimal128 so no precision is lost.
type transactionDocument struct {
	ID              string               `bson:"_id"`
	UserID          string               `bson:"user"`
	Title           string               `bson:"title"`
	Amount          primitive.Decimal128 `bson:"amount"`
	TransactionType string               `bson:"transactionType"`
	Category        string               `bson:"category"`
	Description     string               `bson:"description"`
	Date            time.Time            `bson:"date"`
	CreatedAt       time.Time            `bson:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt"`
}

type TransactionsTable struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewTransactionsTable(db *mongo.Database) *TransactionsTable {
	return &TransactionsTable{coll: db.Collection(transactionsCollection), now: now}
}

// Insert creates a new transaction and returns it as stored.
func (t *TransactionsTable) Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error) {
	const op = "storage/docstore/TransactionsTable.Insert"

	id, err := uuid.NewV4()
	if err != nil {
		return nil, classify(op, err)
	}
	amount, err := toDecimal128(create.Amount)
	if err != nil {
		return nil, classify(op, err)
	}

	ts := t.now()
	doc := &transactionDocument{
		ID:              id.String(),
		UserID:          create.UserID,
		Title:           create.Title,
		Amount:          amount,
		TransactionType: create.TransactionType,
		Category:        create.Category,
		Description:     create.Description,
		Date:            create.Date.UTC().Truncate(time.Millisecond),
		CreatedAt:       ts,
		UpdatedAt:       ts,
	}

	if _, err := t.coll.InsertOne(ctx, doc); err != nil {
		return nil, classify(op, err)
	}
	return doc.toTransaction()
}

// List returns the owner's transactions matching the filter, oldest first.
func (t *TransactionsTable) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	const op = "storage/docstore/TransactionsTable.List"

	query := bson.M{"user": filter.UserID}
	if filter.TransactionType != nil {
		query["transactionType"] = *filter.TransactionType
	}
	dateRange := bson.M{}
	if filter.StartDate != nil {
		dateRange["$gte"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		dateRange["$lte"] = *filter.EndDate
	}
	if len(dateRange) > 0 {
		query["date"] = dateRange
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := t.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, classify(op, err)
	}
	defer cur.Close(ctx)

	var docs []transactionDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, classify(op, err)
	}

	result := make([]*Transaction, 0, len(docs))
	for i := range docs {
		tx, err := docs[i].toTransaction()
		if err != nil {
			return nil, classify(op, err)
		}
		result = append(result, tx)
	}
	return result, nil
}

// UpdateOwned applies update to the transaction id if userID owns it. The ownership check and
// the write happen in one FindOneAndUpdate.
func (t *TransactionsTable) UpdateOwned(ctx context.Context, id string, userID string, update *TransactionUpdate) (*Transaction, error) {
	const op = "storage/docstore/TransactionsTable.UpdateOwned"

	if !validID(id) {
		return nil, classify(op, mongo.ErrNoDocuments)
	}

	set := bson.M{"updatedAt": t.now()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Amount != nil {
		amount, err := toDecimal128(*update.Amount)
		if err != nil {
			return nil, classify(op, err)
		}
		set["amount"] = amount
	}
	if update.TransactionType != nil {
		set["transactionType"] = *update.TransactionType
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Date != nil {
		set["date"] = update.Date.UTC().Truncate(time.Millisecond)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc transactionDocument
	err := t.coll.FindOneAndUpdate(ctx, bson.M{"_id": id, "user": userID}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		return nil, classify(op, err)
	}
	return doc.toTransaction()
}

// DeleteOwned removes the transaction id if userID owns it.
func (t *TransactionsTable) DeleteOwned(ctx context.Context, id string, userID string) error {
	const op = "storage/docstore/TransactionsTable.DeleteOwned"

	if !validID(id) {
		return classify(op, mongo.ErrNoDocuments)
	}

	res, err := t.coll.DeleteOne(ctx, bson.M{"_id": id, "user": userID})
	if err != nil {
		return classify(op, err)
	}
	if res.DeletedCount == 0 {
		return classify(op, mongo.ErrNoDocuments)
	}
	return nil
}

func (d *transactionDocument) toTransaction() (*Transaction, error) {
	amount, err := fromDecimal128(d.Amount)
	if err != nil {
		return nil, err
	}
	return &Transaction{
		ID:              d.ID,
		UserID:          d.UserID,
		Title:           d.Title,
		Amount:          amount,
		TransactionType: d.TransactionType,
		Category:        d.Category,
		Description:     d.Description,
		Date:            d.Date,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}, nil
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	d128, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("amount %s: %w", d.String(), err)
	}
	return d128, nil
}

func fromDecimal128(d128 primitive.Decimal128) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(d128.String())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("amount %s: %w", d128.String(), err)
	}
	return d, nil
}
