package movieapi

import (
	"context"
	"fmt"
	"net/http"

	"movie-web/internal/models"
)

// ListComments returns the comments on a movie.
func (c *Client) ListComments(ctx context.Context, movieID int) ([]models.Comment, error) {
	comments := make([]models.Comment, 0)
	err := c.do(ctx, request{
		op:     "fetch comments",
		method: http.MethodGet,
		path:   fmt.Sprintf("/movies/%d/comments", movieID),
	}, &comments)
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// PostComment adds a comment as the token's owner.
func (c *Client) PostComment(ctx context.Context, token string, movieID int, content string) (*models.Comment, error) {
	var comment models.Comment
	err := c.do(ctx, request{
		op:     "post comment",
		method: http.MethodPost,
		path:   fmt.Sprintf("/movies/%d/comments", movieID),
		token:  token,
		auth:   true,
		json:   models.CommentInput{Content: content},
	}, &comment)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateComment edits a comment. Only its author may do so.
func (c *Client) UpdateComment(ctx context.Context, token string, commentID int, content string) (*models.Comment, error) {
	var comment models.Comment
	err := c.do(ctx, request{
		op:     "update comment",
		method: http.MethodPut,
		path:   fmt.Sprintf("/comments/%d", commentID),
		token:  token,
		auth:   true,
		json:   models.CommentInput{Content: content},
	}, &comment)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes a comment. Only its author may do so.
func (c *Client) DeleteComment(ctx context.Context, token string, commentID int) error {
	return c.do(ctx, request{
		op:     "delete comment",
		method: http.MethodDelete,
		path:   fmt.Sprintf("/comments/%d", commentID),
		token:  token,
		auth:   true,
	}, nil)
}

// PostRating creates or replaces the token owner's score for a movie.
func (c *Client) PostRating(ctx context.Context, token string, movieID, score int) (*models.Rating, error) {
	var rating models.Rating
	err := c.do(ctx, request{
		op:     "rate movie",
		method: http.MethodPost,
		path:   fmt.Sprintf("/movies/%d/ratings", movieID),
		token:  token,
		auth:   true,
		json:   models.RatingInput{Score: score},
	}, &rating)
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// DeleteRating withdraws the token owner's score. Succeeds if there was none.
func (c *Client) DeleteRating(ctx context.Context, token string, movieID int) error {
	return c.do(ctx, request{
		op:     "remove rating",
		method: http.MethodDelete,
		path:   fmt.Sprintf("/movies/%d/ratings", movieID),
		token:  token,
		auth:   true,
	}, nil)
}
