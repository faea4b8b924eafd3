package models

// CommentAuthor is the subset of the author's profile embedded in a comment.
type CommentAuthor struct {
	UserID   int    `json:"UserID"`
	Username string `json:"Username"`
}

// Comment is a user comment on a movie. The author is only known through User.
type Comment struct {
	CommentID int            `json:"CommentID"`
	Content   string         `json:"Content"`
	CreatedAt Timestamp      `json:"CreatedAt"`
	User      *CommentAuthor `json:"user,omitempty"`
}

// AuthorID returns the embedded author's id, or 0 when the author is unknown.
func (c Comment) AuthorID() int {
	if c.User == nil {
		return 0
	}
	return c.User.UserID
}

// AuthorName returns the embedded author's username, if any.
func (c Comment) AuthorName() string {
	if c.User == nil {
		return ""
	}
	return c.User.Username
}

// CommentInput is the body for posting or editing a comment.
type CommentInput struct {
	Content string `json:"Content" validate:"required,max=2000"`
}

// Rating is a user's score for a movie.
type Rating struct {
	UserID    int       `json:"UserID"`
	MovieID   int       `json:"MovieID"`
	Score     int       `json:"Score"`
	CreatedAt Timestamp `json:"CreatedAt"`
}

// RatingInput is the body for POST /movies/{id}/ratings.
type RatingInput struct {
	Score int `json:"Score" validate:"required,min=1,max=10"`
}
