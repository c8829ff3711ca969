package sqlite

import (
	"log/slog"
	"os"
	"time"

	"github.com/garnizeh/estimator/internal/db"
	"github.com/garnizeh/estimator/pkg/repository"
)

// timeLayout is RFC3339 UTC with a fixed-width fractional second and an
// explicit numeric offset, so lexicographic order on stored timestamps
// matches chronological order.
const timeLayout = "2006-01-02T15:04:05.000000+00:00"

// SQLiteRepo implements repository interfaces using the internal DB wrapper.
type SQLiteRepo struct {
	conn   *db.DB
	logger *slog.Logger
}

// Ensure SQLiteRepo implements the public interfaces.
var _ repository.EstimateRepo = (*SQLiteRepo)(nil)

func New(conn *db.DB, logger *slog.Logger) *SQLiteRepo {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return &SQLiteRepo{conn: conn, logger: logger}
}

func now() string {
	return time.Now().UTC().Format(timeLayout)
}
