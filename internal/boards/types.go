package boards

import (
	"time"
)

// Board is a published collection of cards addressed by its slug
type Board struct {
	ID            string    `bson:"_id" json:"id"`
	Title         string    `bson:"title" json:"title"`
	Slug          string    `bson:"slug" json:"slug"`
	BackgroundURL string    `bson:"background_url,omitempty" json:"backgroundUrl,omitempty"`
	Published     bool      `bson:"published" json:"-"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updatedAt"`
}

// Category groups cards within a board
type Category struct {
	ID         string `bson:"_id" json:"id"`
	BoardID    string `bson:"board_id" json:"boardId"`
	Title      string `bson:"title" json:"title"`
	OrderIndex int    `bson:"order_index" json:"orderIndex"`
}

// Card is a single link/image item on a board.
// An empty CategoryID means the card is uncategorized.
type Card struct {
	ID          string `bson:"_id" json:"id"`
	BoardID     string `bson:"board_id" json:"boardId"`
	CategoryID  string `bson:"category_id,omitempty" json:"categoryId,omitempty"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL    string `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	LinkURL     string `bson:"link_url,omitempty" json:"linkUrl,omitempty"`
	OrderIndex  int    `bson:"order_index" json:"orderIndex"`
}

// HasLink reports whether selecting the card opens an outbound link
func (c Card) HasLink() bool {
	return c.LinkURL != ""
}
