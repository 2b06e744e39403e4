package request

import (
	"net/url"
	"strings"
)

// Fixed user-facing validation messages.
const (
	MsgCommentRequired  = "Veuillez rédiger un commentaire sur le film"
	MsgCommentTooLong   = "Le commentaire ne doit pas dépasser 500 caractères"
	MsgNoteRequired     = "Veuillez sélectionner une note"
	MsgConditionsNeeded = "Vous devez accepter les conditions générales"
)

// NoteOptions are the only accepted values for CommentDraft.Note.
var NoteOptions = []string{"1", "2", "3", "4", "5"}

// CommentDraft is the form as the visitor filled it in.
type CommentDraft struct {
	Comment          string `json:"comment" validate:"required,notblank,max=500"`
	Note             string `json:"note" validate:"required,oneof=1 2 3 4 5"`
	AcceptConditions bool   `json:"acceptConditions" validate:"accepted"`
}

func (CommentDraft) ValidationMessages() map[string]string {
	return map[string]string{
		"comment":          MsgCommentRequired,
		"comment.max":      MsgCommentTooLong,
		"note":             MsgNoteRequired,
		"acceptConditions": MsgConditionsNeeded,
	}
}

// CommentDraftFromForm reads an HTML form post. A checkbox is only present
// in the form when it is ticked. Browsers submit textarea line breaks as CRLF;
// they are folded to LF so a line break counts as one character.
func CommentDraftFromForm(form url.Values) CommentDraft {
	return CommentDraft{
		Comment:          strings.ReplaceAll(form.Get("comment"), "\r\n", "\n"),
		Note:             form.Get("note"),
		AcceptConditions: isChecked(form.Get("acceptConditions")),
	}
}

func isChecked(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}
