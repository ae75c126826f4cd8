package repositories

import "context"

// Transactor выполняет fn в одной транзакции. Репозитории, вызванные
// с переданным контекстом, работают внутри нее.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
