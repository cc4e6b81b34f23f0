package ledger

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LockForUpdate applies a FOR UPDATE row lock on Postgres so concurrent
// engine transactions serialize on the same wallet or property row.
// SQLite (used in tests) has no FOR UPDATE syntax; its single-writer lock
// already gives the same guarantee there.
func LockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
