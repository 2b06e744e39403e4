package response

import (
	"movie-comments/internal/dto/request"
)

// PageView is everything the HTML page needs for one render.
type PageView struct {
	Movie    MovieStateResponse
	Comments []CommentResponse
	Draft    request.CommentDraft
	Errors   map[string]string
	Notes    []string
}
