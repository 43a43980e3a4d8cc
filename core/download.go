package core

import (
	"context"

	"github.com/mfaulds/driftline/internal/contract"
	"github.com/mfaulds/driftline/internal/seriescsv"
)

// DownloadRecord loads a stored record for the owner and re-encodes it as
// annotated CSV. Encoding the same record always yields identical bytes.
func DownloadRecord(ctx context.Context, store contract.RecordStore, owner string, recordID int64) ([]byte, error) {
	rec, err := store.Get(ctx, owner, recordID)
	if err != nil {
		return nil, err
	}
	return seriescsv.Encode(rec)
}
