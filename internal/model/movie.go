package model

import "time"

// MovieType is the list a MovieEntry belongs to.
type MovieType string

const (
	MovieFavorite MovieType = "favorite"
	MovieToWatch  MovieType = "to_watch"
)

// Valid reports whether t is one of the known list kinds.
func (t MovieType) Valid() bool {
	return t == MovieFavorite || t == MovieToWatch
}

// MovieEntry mirrors a row of `user_movies`.
type MovieEntry struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	Title     string    `json:"title"`
	MovieType MovieType `json:"movie_type"`
	AddedAt   time.Time `json:"added_at"`
}

// MovieLists groups a user's entries by list.
type MovieLists struct {
	Favorites []MovieEntry `json:"favorites"`
	ToWatch   []MovieEntry `json:"toWatch"`
}

// Review mirrors a row of `movie_reviews`; one per user and title.
type Review struct {
	ID         uint64    `json:"id"`
	UserID     uint64    `json:"user_id"`
	MovieTitle string    `json:"movie_title"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
