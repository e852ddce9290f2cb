package content

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Write is one persistence operation in a flow's write set. Required writes
// fail the enclosing operation; best-effort writes only get logged.
type Write struct {
	Name     string
	Required bool
	Fn       func(ctx context.Context) error
}

// PersistenceError reports a failed required write. The rendered asset
// exists upstream but the user could not retrieve it again, so the operation
// as a whole must fail.
type PersistenceError struct {
	Write string
	Err   error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("required write %q failed: %v", e.Write, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Outcome reports which best-effort writes failed. Required failures never
// reach an Outcome; they abort Persist.
type Outcome struct {
	Skipped []string
}

// Persister executes declared write sets in order. Writes run strictly
// sequentially because later writes depend on ids generated by earlier ones.
type Persister struct {
	Logger zerolog.Logger
}

// Persist runs each write in order. The first required failure aborts with a
// PersistenceError; best-effort failures are logged under the "persistence"
// category and recorded in the outcome.
//
// Persistence is not idempotent across client retries of the same request: a
// retry after a persisted-but-slow response creates a duplicate record. Known
// limitation.
func (p *Persister) Persist(ctx context.Context, writes []Write) (Outcome, error) {
	var out Outcome
	for _, w := range writes {
		err := w.Fn(ctx)
		if err == nil {
			continue
		}
		if w.Required {
			return out, &PersistenceError{Write: w.Name, Err: err}
		}
		p.Logger.Warn().
			Str("category", "persistence").
			Str("write", w.Name).
			Err(err).
			Msg("best-effort write failed")
		out.Skipped = append(out.Skipped, w.Name)
	}
	return out, nil
}
