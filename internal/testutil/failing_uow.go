package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/peek/internal/db"
)

// FailingUoW runs transactions on DB and fails one write inside them.
// With FailOnTable set, the first ExecContext whose statement mentions that
// table returns Err; otherwise the FailOn-th ExecContext does. Reads pass
// through and are not counted.
type FailingUoW struct {
	DB          *sql.DB
	FailOn      int32
	FailOnTable string
	Err         error
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failingExec{DBTX: tx, uow: u}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failingExec struct {
	db.DBTX
	uow   *FailingUoW
	count atomic.Int32
}

func (f *failingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.count.Add(1)
	if f.uow.FailOnTable != "" {
		if strings.Contains(query, f.uow.FailOnTable) {
			return nil, f.uow.Err
		}
	} else if n == f.uow.FailOn {
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
