package smslogstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Store appends SMS send attempts and notification fan-outs to the
// sms_debug collection. It satisfies the audit sink the SMS client and
// notifier write through; insert failures are logged and swallowed so
// auditing never fails a send.
type Store struct {
	c   *mongo.Collection
	log *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Store {
	return &Store{c: db.Collection("sms_debug"), log: logger}
}

// Log inserts one audit document, stamping timestamp when absent.
func (s *Store) Log(ctx context.Context, doc bson.M) {
	if _, ok := doc["timestamp"]; !ok {
		doc["timestamp"] = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, doc); err != nil && s.log != nil {
		s.log.Warn("sms audit insert failed", zap.Error(err))
	}
}
