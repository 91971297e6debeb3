package notifier

import (
	"log/slog"

	"github.com/internai/internai/internal/model"
)

// Ensure LogNotifier implements model.Notifier.
var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier writes newly published postings to the given logger.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs each posting via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs each posting. It never fails.
func (n *LogNotifier) Notify(jobs []model.JobPosting) error {
	for _, j := range jobs {
		args := []any{
			"id", j.ID,
			"company", j.Company,
			"title", j.Title,
			"location", j.Location,
			"work_mode", j.WorkMode,
		}
		if j.PostedBy != "" {
			args = append(args, "posted_by", j.PostedBy)
		}
		n.logger.Info("new posting", args...)
	}
	return nil
}
