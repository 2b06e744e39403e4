package usecase

import (
	"context"
	"fmt"
	"strconv"

	"movie-comments/internal/data/entity"
	"movie-comments/internal/dto/request"
	"movie-comments/internal/dto/response"
	"movie-comments/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CommentService interface {
	Validate(draft *request.CommentDraft) (*entity.CommentCandidate, map[string]string)

	// Submit appends the draft to the view's ledger when it is valid. A
	// non-empty map means nothing was appended.
	Submit(ctx context.Context, viewID uuid.UUID, draft *request.CommentDraft) (*response.CommentResponse, map[string]string, error)
	Remove(ctx context.Context, viewID uuid.UUID, commentID string) error
	List(ctx context.Context, viewID uuid.UUID) ([]response.CommentResponse, error)
}

type commentService struct {
	views ViewService
	log   *zap.Logger
}

func NewCommentService(views ViewService, log *zap.Logger) CommentService {
	return &commentService{
		views: views,
		log:   log.With(zap.String("service", "comment")),
	}
}

func (s *commentService) Validate(draft *request.CommentDraft) (*entity.CommentCandidate, map[string]string) {
	if errs := utils.ValidateStruct(draft); len(errs) > 0 {
		return nil, errs
	}

	rating, err := strconv.Atoi(draft.Note)
	if err != nil {
		// oneof already guarantees a digit
		return nil, map[string]string{"note": request.MsgNoteRequired}
	}

	return &entity.CommentCandidate{
		Body:   draft.Comment,
		Rating: rating,
	}, nil
}

func (s *commentService) Submit(ctx context.Context, viewID uuid.UUID, draft *request.CommentDraft) (*response.CommentResponse, map[string]string, error) {
	view, err := s.views.Get(viewID)
	if err != nil {
		return nil, nil, fmt.Errorf("submit comment to view %s: %w", viewID, err)
	}

	candidate, errs := s.Validate(draft)
	if len(errs) > 0 {
		s.log.Debug("Comment draft rejected",
			zap.String("view_id", viewID.String()),
			zap.String("errors", utils.FormatValidationErrors(errs)),
		)
		return nil, errs, nil
	}

	comment := view.Comments.Append(*candidate)

	s.log.Info("Comment added",
		zap.String("view_id", viewID.String()),
		zap.String("comment_id", comment.ID.String()),
		zap.Int("rating", comment.Rating),
	)

	resp := response.CommentToResponse(comment)
	return &resp, nil, nil
}

// Remove deletes a comment by id. A malformed or unknown id is a no-op.
func (s *commentService) Remove(ctx context.Context, viewID uuid.UUID, commentID string) error {
	view, err := s.views.Get(viewID)
	if err != nil {
		return fmt.Errorf("remove comment from view %s: %w", viewID, err)
	}

	id, err := utils.ParseUUID(commentID)
	if err != nil {
		s.log.Debug("Ignoring removal of malformed comment id",
			zap.String("view_id", viewID.String()),
			zap.String("comment_id", commentID),
		)
		return nil
	}

	if view.Comments.Remove(id) {
		s.log.Info("Comment removed",
			zap.String("view_id", viewID.String()),
			zap.String("comment_id", commentID),
		)
	}

	return nil
}

func (s *commentService) List(ctx context.Context, viewID uuid.UUID) ([]response.CommentResponse, error) {
	view, err := s.views.Get(viewID)
	if err != nil {
		return nil, fmt.Errorf("list comments of view %s: %w", viewID, err)
	}

	return response.CommentsToResponse(view.Comments.List()), nil
}
