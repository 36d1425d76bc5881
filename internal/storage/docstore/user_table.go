package docstore

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ IUserTable = (*UsersTable)(nil)

type UsersTable struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewUsersTable(db *mongo.Database) *UsersTable {
	return &UsersTable{coll: db.Collection(usersCollection), now: now}
}

// FindByEmail returns the full document, hash included, for the given email.
func (t *UsersTable) FindByEmail(ctx context.Context, email string) (*User, error) {
	const op = "storage/docstore/UsersTable.FindByEmail"

	var user User
	if err := t.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, classify(op, err)
	}
	return &user, nil
}

// Insert stores a new user. A taken email fails with ErrDuplicateKey through the unique index.
func (t *UsersTable) Insert(ctx context.Context, create *UserCreate) (*User, error) {
	const op = "storage/docstore/UsersTable.Insert"

	id, err := uuid.NewV4()
	if err != nil {
		return nil, classify(op, err)
	}

	ts := t.now()
	user := &User{
		ID:        id.String(),
		Name:      create.Name,
		Email:     create.Email,
		Password:  create.PasswordHash,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	if _, err := t.coll.InsertOne(ctx, user); err != nil {
		return nil, classify(op, err)
	}
	return user, nil
}

func (t *UsersTable) SetAvatar(ctx context.Context, id string, image string) (*User, error) {
	const op = "storage/docstore/UsersTable.SetAvatar"

	if !validID(id) {
		return nil, classify(op, mongo.ErrNoDocuments)
	}

	update := bson.M{"$set": bson.M{
		"avatarImage":      image,
		"isAvatarImageSet": true,
		"updatedAt":        t.now(),
	}}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"password": 0})

	var user User
	if err := t.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user); err != nil {
		return nil, classify(op, err)
	}
	return &user, nil
}

// ListExcept returns every user but excludeID in creation order, without password hashes.
func (t *UsersTable) ListExcept(ctx context.Context, excludeID string) ([]*User, error) {
	const op = "storage/docstore/UsersTable.ListExcept"

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}).
		SetProjection(bson.M{"password": 0})

	cur, err := t.coll.Find(ctx, bson.M{"_id": bson.M{"$ne": excludeID}}, opts)
	if err != nil {
		return nil, classify(op, err)
	}
	defer cur.Close(ctx)

	users := make([]*User, 0)
	if err := cur.All(ctx, &users); err != nil {
		return nil, classify(op, err)
	}
	return users, nil
}

// validID reports whether id can be a document key. Anything else can never match.
func validID(id string) bool {
	_, err := uuid.FromString(id)
	return err == nil
}

// now truncates to the store's millisecond precision so returned values equal stored ones.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
