package http

import (
	"github.com/go-otp-nosql/internal/application/verification"
	"github.com/go-otp-nosql/internal/infrastructure/dynamo"
)

// RecordRepository is the minimal interface the router requires from a role store.
type RecordRepository = verification.RecordStore

var _ RecordRepository = (*dynamo.RecordRepo)(nil)
