package entity

// CommentCandidate is a validated draft that has not been given an identity yet.
type CommentCandidate struct {
	Body   string
	Rating int // 1-5
}

// Comment is an accepted ledger entry. It is never mutated after creation.
type Comment struct {
	BaseSimple
	Body   string
	Rating int // 1-5
}
