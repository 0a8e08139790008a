package rule

import "errors"

var (
	ErrLastGroup           = errors.New("cannot remove the last remaining group")
	ErrGroupNotFound       = errors.New("group not found")
	ErrConditionNotFound   = errors.New("condition not found")
	ErrIncompleteCondition = errors.New("condition requires metric, operator and value")
	ErrInvalidOperator     = errors.New("logical operator must be AND or OR")
	ErrTooManyActions      = errors.New("action limit for this rule reached")
	ErrActionNotFound      = errors.New("action not found")
)
