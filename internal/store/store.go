// Package store holds the MongoDB-backed stores for bins, users and
// detections, plus the transaction runner the rewards ledger uses.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"e-waste-api-server/internal/apperr"
)

// opTimeout bounds every store operation so a slow database surfaces a
// retryable error instead of hanging the caller.
const opTimeout = 5 * time.Second

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, opTimeout)
}

// mapErr translates driver errors into the shared taxonomy.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return apperr.ErrNotFound
	case errors.Is(err, context.DeadlineExceeded), mongo.IsTimeout(err), mongo.IsNetworkError(err):
		return fmt.Errorf("%w: %v", apperr.ErrUnavailable, err)
	default:
		return err
	}
}

// TxRunner runs a function inside a MongoDB transaction. Any error from
// the callback aborts the transaction and rolls back every write in it.
type TxRunner struct {
	client *mongo.Client
}

func NewTxRunner(client *mongo.Client) *TxRunner {
	return &TxRunner{client: client}
}

func (r *TxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return mapErr(err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	return mapErr(err)
}
