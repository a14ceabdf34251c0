package feed

import (
	"context"

	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/model"
)

// Automator executes the unfollow workflow for one classified post. The
// scanner hands over the claimed post together with its classification
// and extracted source; the implementation owns every consequence of the
// attempt: hiding, counters, dedupe, history. Run never returns an error;
// faults surface as OutcomeFailed so a single bad post cannot abort a
// scan pass.
type Automator interface {
	Run(ctx context.Context, post *Post, reason model.Reason, source *model.Source) model.Outcome
}
