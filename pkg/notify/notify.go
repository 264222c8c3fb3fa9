// Package notify sends the published schedule by email (§10.6). It is a
// best-effort step: a send failure is reported to the caller but must
// never be allowed to corrupt an already-produced in-memory result (§7).
package notify

import (
	"bytes"
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/CatmanJunior/RoosterDIMS/internal/config"
	"github.com/CatmanJunior/RoosterDIMS/pkg/clients/gmailclient"
	"github.com/CatmanJunior/RoosterDIMS/pkg/core/project"
	"github.com/CatmanJunior/RoosterDIMS/pkg/io/csvio"
)

// Notifier emails a finished schedule's exported CSVs to the configured
// recipient, if notifications are enabled.
type Notifier struct {
	cfg    config.Notify
	client *gmailclient.Client
	logger *zap.Logger
}

// New returns a Notifier, or nil if cfg.Enabled is false — callers should
// treat a nil Notifier as a no-op.
func New(cfg config.Notify, client *gmailclient.Client, logger *zap.Logger) *Notifier {
	if !cfg.Enabled {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{cfg: cfg, client: client, logger: logger}
}

// PublishedSchedule emails success's filled shifts and penalty breakdown as
// CSV attachments. Errors are logged and returned but the caller's own
// result must already be finalized before this is called.
func (n *Notifier) PublishedSchedule(ctx context.Context, runID int64, success *project.Success) error {
	if n == nil {
		return nil
	}

	var shiftsBuf, penaltiesBuf bytes.Buffer
	if err := csvio.ExportFilledShifts(&shiftsBuf, success.FilledShifts, csvio.TestersBracketList); err != nil {
		return fmt.Errorf("export filled shifts: %w", err)
	}
	if err := csvio.ExportPenalties(&penaltiesBuf, success.Penalties); err != nil {
		return fmt.Errorf("export penalties: %w", err)
	}

	attachments := []gmailclient.Attachment{
		{Filename: "filled_shifts.csv", Content: shiftsBuf.Bytes()},
		{Filename: "penalties.csv", Content: penaltiesBuf.Bytes()},
	}

	subject := fmt.Sprintf("Schedule published (run %d)", runID)
	body := fmt.Sprintf("Run %d completed with %d filled shifts. CSV exports attached.", runID, len(success.FilledShifts))

	if err := n.client.SendSchedule(n.cfg.GmailUser, n.cfg.Recipient, subject, body, attachments); err != nil {
		n.logger.Warn("schedule notification failed", zap.Int64("run_id", runID), zap.Error(err))
		return fmt.Errorf("send schedule email: %w", err)
	}
	return nil
}
