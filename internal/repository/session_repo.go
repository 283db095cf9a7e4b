package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"labsite/internal/model"
)

var (
	// ErrNotFound means the id is well-formed but no record matches it.
	ErrNotFound = errors.New("prg session not found")
	// ErrInvalidID means the id is not a valid ObjectID hex string.
	ErrInvalidID = errors.New("invalid session id")
)

// SessionRepo handles MongoDB operations for PRG sessions. Field
// constraints are enforced here, at write time; the store is the source
// of truth for validation.
type SessionRepo interface {
	Create(ctx context.Context, input *model.SessionInput) (*model.PRGSession, error)
	GetByID(ctx context.Context, id string) (*model.PRGSession, error)
	Update(ctx context.Context, id string, input *model.SessionInput) (*model.PRGSession, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, academicYear string) ([]*model.PRGSession, error)
	EnsureIndexes(ctx context.Context) error
}

type sessionRepo struct {
	collection *mongo.Collection
}

// NewSessionRepo creates a session repository over the prgsessions collection.
func NewSessionRepo(db *mongo.Database) SessionRepo {
	return &sessionRepo{
		collection: db.Collection("prgsessions"),
	}
}

// sessionDoc is the persisted shape; the ObjectID maps to the model's
// hex string id.
type sessionDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Date         string             `bson:"date"`
	PaperTitle   string             `bson:"paperTitle"`
	PaperLink    string             `bson:"paperLink"`
	SlidesLink   string             `bson:"slidesLink,omitempty"`
	Resources    string             `bson:"resources,omitempty"`
	Presenter    []model.Presenter  `bson:"presenter"`
	AcademicYear string             `bson:"academicYear"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func (d *sessionDoc) toModel() *model.PRGSession {
	return &model.PRGSession{
		ID:           d.ID.Hex(),
		Date:         d.Date,
		PaperTitle:   d.PaperTitle,
		PaperLink:    d.PaperLink,
		SlidesLink:   d.SlidesLink,
		Resources:    d.Resources,
		Presenter:    d.Presenter,
		AcademicYear: d.AcademicYear,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (r *sessionRepo) Create(ctx context.Context, input *model.SessionInput) (*model.PRGSession, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	doc := sessionDoc{
		Date:         input.Date,
		PaperTitle:   input.PaperTitle,
		PaperLink:    input.PaperLink,
		SlidesLink:   input.SlidesLink,
		Resources:    input.Resources,
		Presenter:    input.Presenter,
		AcademicYear: input.AcademicYear,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	doc.ID = result.InsertedID.(primitive.ObjectID)
	return doc.toModel(), nil
}

func (r *sessionRepo) GetByID(ctx context.Context, id string) (*model.PRGSession, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var doc sessionDoc
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toModel(), nil
}

func (r *sessionRepo) Update(ctx context.Context, id string, input *model.SessionInput) (*model.PRGSession, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	// Full replace of the mutable fields; createdAt stays untouched.
	update := bson.M{"$set": bson.M{
		"date":         input.Date,
		"paperTitle":   input.PaperTitle,
		"paperLink":    input.PaperLink,
		"slidesLink":   input.SlidesLink,
		"resources":    input.Resources,
		"presenter":    input.Presenter,
		"academicYear": input.AcademicYear,
		"updatedAt":    time.Now(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc sessionDoc
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toModel(), nil
}

func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sessionRepo) List(ctx context.Context, academicYear string) ([]*model.PRGSession, error) {
	filter := bson.M{}
	if academicYear != "" {
		filter["academicYear"] = academicYear
	}

	// Ascending sort on the literal date string, matching the existing
	// site's display order.
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []sessionDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	sessions := make([]*model.PRGSession, 0, len(docs))
	for i := range docs {
		sessions = append(sessions, docs[i].toModel())
	}
	return sessions, nil
}

func (r *sessionRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "academicYear", Value: 1}, {Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "academicYear", Value: 1}}},
	})
	return err
}
