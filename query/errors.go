package query

import "errors"

// ErrParse is the sentinel wrapped by ParseError; callers can test with
// errors.Is(err, query.ErrParse).
var ErrParse = errors.New("query: parse error")

// ErrInvalidOption marks an Options value the evaluator entry rejects
// before doing any work (K=0 for a ranked query, maxscore without
// normalize, and so on).
var ErrInvalidOption = errors.New("query: invalid option")
