package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"codutopia/internal/domain"
)

// TxManager opens mongo sessions for the workflow layer. The session
// travels to the gateways through the session-bound context, so a
// gateway called with a plain context simply runs outside the
// transaction.
type TxManager struct {
	client *mongo.Client
}

func NewTxManager(client *mongo.Client) *TxManager {
	return &TxManager{client: client}
}

func (m *TxManager) Begin(ctx context.Context) (domain.TxSession, error) {
	sess, err := m.client.StartSession()
	if err != nil {
		return nil, err
	}
	if err := sess.StartTransaction(); err != nil {
		sess.EndSession(ctx)
		return nil, err
	}
	return &txSession{
		sess:   sess,
		sc:     mongo.NewSessionContext(ctx, sess),
		parent: ctx,
	}, nil
}

type txSession struct {
	sess   mongo.Session
	sc     mongo.SessionContext
	parent context.Context
	done   bool
}

func (s *txSession) Context() context.Context {
	return s.sc
}

func (s *txSession) Commit() error {
	if s.done {
		return nil
	}
	s.done = true
	return s.sess.CommitTransaction(s.parent)
}

// Abort is a no-op once the transaction is finished, so it is safe to
// call on every error path regardless of how far the workflow got.
func (s *txSession) Abort() error {
	if s.done {
		return nil
	}
	s.done = true
	return s.sess.AbortTransaction(s.parent)
}

func (s *txSession) End() {
	s.sess.EndSession(s.parent)
}
