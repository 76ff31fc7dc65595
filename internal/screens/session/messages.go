package session

import "github.com/abhisek/lexicon/internal/learn"

// poolLoadedMsg carries the result of an asynchronous pool fetch. Stale
// generations are dropped by the controller.
type poolLoadedMsg struct {
	Result learn.LoadResult
}
