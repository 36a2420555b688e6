package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"codutopia/internal/domain"
)

// compensator collects undo actions for object-store writes performed
// ahead of the database transaction. On failure the actions run in
// reverse order; their own errors are logged and dropped so the
// triggering error is never masked.
type compensator struct {
	log  zerolog.Logger
	undo []func(context.Context) error
}

func newCompensator(log zerolog.Logger) *compensator {
	return &compensator{log: log}
}

func (c *compensator) push(fn func(context.Context) error) {
	c.undo = append(c.undo, fn)
}

func (c *compensator) run(ctx context.Context) {
	for i := len(c.undo) - 1; i >= 0; i-- {
		if err := c.undo[i](ctx); err != nil {
			c.log.Warn().Err(err).Msg("compensation step failed")
		}
	}
	c.undo = nil
}

// rollback undoes uploaded objects, aborts the transaction and hands
// the original error back unchanged.
func rollback(ctx context.Context, log zerolog.Logger, sess domain.TxSession, comp *compensator, err error) error {
	comp.run(ctx)
	if abortErr := sess.Abort(); abortErr != nil {
		log.Warn().Err(abortErr).Msg("transaction abort failed")
	}
	return err
}

// cleanupObjects removes every bucket object whose name starts with one
// of the deleted child ids. The prefix match is a naming convention,
// not a referential join: unrelated names stay untouched.
func cleanupObjects(ctx context.Context, store domain.ObjectStore, bucket string, ids []primitive.ObjectID) error {
	names, err := store.List(ctx, bucket)
	if err != nil {
		return err
	}
	for _, name := range names {
		for _, id := range ids {
			if strings.HasPrefix(name, id.Hex()) {
				if err := store.Delete(ctx, bucket, name); err != nil {
					return err
				}
				break
			}
		}
	}
	return nil
}

func collectQuizIDs(lessons []domain.Lesson) []primitive.ObjectID {
	var ids []primitive.ObjectID
	for _, l := range lessons {
		if l.Quiz != nil {
			ids = append(ids, *l.Quiz)
		}
	}
	return ids
}
