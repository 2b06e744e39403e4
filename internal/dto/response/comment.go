package response

import (
	"time"

	"movie-comments/internal/data/entity"
)

type CommentResponse struct {
	ID        string    `json:"id"`
	Comment   string    `json:"comment"`
	Note      int       `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

func CommentToResponse(comment entity.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID.String(),
		Comment:   comment.Body,
		Note:      comment.Rating,
		CreatedAt: comment.CreatedAt,
	}
}

func CommentsToResponse(comments []entity.Comment) []CommentResponse {
	out := make([]CommentResponse, len(comments))
	for i, c := range comments {
		out[i] = CommentToResponse(c)
	}
	return out
}
