package service

import (
	"github.com/cockroachdb/errors"

	"arbor/infra/journal"
)

/*
ReplayFromJournal rebuilds the tree from a journal.

IMPORTANT:
- This MUST run before accepting traffic
- Replayed values are not journaled again
*/
func ReplayFromJournal(j *journal.Journal, svc *TreeService) (uint64, error) {
	added := 0
	last, err := j.Replay(func(_ uint64, v int64) error {
		if svc.apply(v) {
			added++
		}
		return nil
	})
	if err != nil {
		return last, errors.Wrap(err, "replay")
	}
	svc.logger.Infof("replayed journal up to seq=%d, %d values added", last, added)
	return last, nil
}
