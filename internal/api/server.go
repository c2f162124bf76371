package api

import (
	"context"
	"time"

	"github.com/vytor/minimalpairs/internal/services"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	Quiz           services.QuizService
	DB             Pinger
	RequestTimeout time.Duration
}
