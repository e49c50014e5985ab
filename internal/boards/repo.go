package boards

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrBoardNotFound = errors.New("board not found")
)

// Repo reads published boards and their contents. It never writes.
type Repo struct {
	boards     *mongo.Collection
	categories *mongo.Collection
	cards      *mongo.Collection
}

func NewRepo(db *mongo.Database) *Repo {
	return &Repo{
		boards:     db.Collection("boards"),
		categories: db.Collection("categories"),
		cards:      db.Collection("cards"),
	}
}

// EnsureIndexes creates the indexes the read queries rely on
func (r *Repo) EnsureIndexes(ctx context.Context) error {
	_, err := r.boards.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "published", Value: 1},
				{Key: "updated_at", Value: -1},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create board indexes: %w", err)
	}

	byBoard := mongo.IndexModel{
		Keys: bson.D{
			{Key: "board_id", Value: 1},
			{Key: "order_index", Value: 1},
		},
	}
	if _, err := r.categories.Indexes().CreateOne(ctx, byBoard); err != nil {
		return fmt.Errorf("create category indexes: %w", err)
	}
	if _, err := r.cards.Indexes().CreateOne(ctx, byBoard); err != nil {
		return fmt.Errorf("create card indexes: %w", err)
	}
	return nil
}

// ListBoards returns published boards, most recently updated first
func (r *Repo) ListBoards(ctx context.Context) ([]Board, error) {
	opts := options.Find().
		SetProjection(bson.M{"title": 1, "slug": 1, "updated_at": 1, "published": 1}).
		SetSort(bson.D{
			{Key: "updated_at", Value: -1},
			{Key: "_id", Value: 1},
		})

	cursor, err := r.boards.Find(ctx, bson.M{"published": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	defer cursor.Close(ctx)

	var boards []Board
	if err := cursor.All(ctx, &boards); err != nil {
		return nil, fmt.Errorf("decode boards: %w", err)
	}
	return boards, nil
}

// BoardBySlug returns the published board with the given slug
func (r *Repo) BoardBySlug(ctx context.Context, slug string) (*Board, error) {
	var board Board
	err := r.boards.FindOne(ctx, bson.M{"slug": slug, "published": true}).Decode(&board)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrBoardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find board %q: %w", slug, err)
	}
	return &board, nil
}

// Categories returns the categories of a board in display order
func (r *Repo) Categories(ctx context.Context, boardID string) ([]Category, error) {
	cursor, err := r.categories.Find(ctx, byBoard(boardID), orderedFind())
	if err != nil {
		return nil, fmt.Errorf("list categories of %s: %w", boardID, err)
	}
	defer cursor.Close(ctx)

	var categories []Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return categories, nil
}

// Cards returns the cards of a board in display order
func (r *Repo) Cards(ctx context.Context, boardID string) ([]Card, error) {
	cursor, err := r.cards.Find(ctx, byBoard(boardID), orderedFind())
	if err != nil {
		return nil, fmt.Errorf("list cards of %s: %w", boardID, err)
	}
	defer cursor.Close(ctx)

	var cards []Card
	if err := cursor.All(ctx, &cards); err != nil {
		return nil, fmt.Errorf("decode cards: %w", err)
	}
	return cards, nil
}

// byBoard matches documents owned by boardID whether the reference was
// stored as a string or as an ObjectID.
func byBoard(boardID string) bson.M {
	ids := bson.A{boardID}
	if oid, err := primitive.ObjectIDFromHex(boardID); err == nil {
		ids = append(ids, oid)
	}
	return bson.M{"board_id": bson.M{"$in": ids}}
}

// orderedFind sorts by order_index; _id keeps insertion order among ties
func orderedFind() *options.FindOptions {
	return options.Find().SetSort(bson.D{
		{Key: "order_index", Value: 1},
		{Key: "_id", Value: 1},
	})
}
