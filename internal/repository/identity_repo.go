package repository

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"labsite/internal/model"
)

// AdminUser pairs an identity with its stored password hash.
type AdminUser struct {
	Identity     model.Identity
	PasswordHash string
}

// IdentityRepo looks up admin principals by email. Implementations
// return (nil, nil) when no identity matches, so callers cannot tell a
// missing email apart from a wrong password.
type IdentityRepo interface {
	FindByEmail(ctx context.Context, email string) (*AdminUser, error)
}

// staticIdentityRepo serves a fixed in-memory identity list, typically
// the single admin seeded from configuration.
type staticIdentityRepo struct {
	users []AdminUser
}

// NewStaticIdentityRepo creates an identity repository over a fixed list.
func NewStaticIdentityRepo(users []AdminUser) IdentityRepo {
	return &staticIdentityRepo{users: users}
}

func (r *staticIdentityRepo) FindByEmail(_ context.Context, email string) (*AdminUser, error) {
	for i := range r.users {
		if strings.EqualFold(r.users[i].Identity.Email, email) {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

type identityDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	Name         string             `bson:"name"`
	Role         string             `bson:"role"`
	PasswordHash string             `bson:"passwordHash"`
}

type mongoIdentityRepo struct {
	collection *mongo.Collection
}

// NewMongoIdentityRepo creates an identity repository over the users
// collection.
func NewMongoIdentityRepo(db *mongo.Database) IdentityRepo {
	return &mongoIdentityRepo{
		collection: db.Collection("users"),
	}
}

func (r *mongoIdentityRepo) FindByEmail(ctx context.Context, email string) (*AdminUser, error) {
	var doc identityDoc
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &AdminUser{
		Identity: model.Identity{
			ID:    doc.ID.Hex(),
			Email: doc.Email,
			Name:  doc.Name,
			Role:  doc.Role,
		},
		PasswordHash: doc.PasswordHash,
	}, nil
}
