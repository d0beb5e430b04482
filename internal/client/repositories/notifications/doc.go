// Package notifications persists locally scheduled reminder requests.
//
// # Overview
//
// SQLiteRepository stores models.Notification rows in the notifications
// table and moves them through pending -> delivered -> opened. It works on a
// dbx.DBTX, so callers can bind it to a transaction with WithDB to make a
// cancel-then-add sequence atomic:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    if _, err := repo.WithDB(tx).CancelPending(ctx, id); err != nil {
//	        return err
//	    }
//	    return repo.WithDB(tx).Add(ctx, n)
//	})
//
// Times are stored as Unix milliseconds.
package notifications
