package ports

import "context"

// TxManager scopes journal writes that must land together, such as appending
// decision records and bumping the run's tick counter.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
