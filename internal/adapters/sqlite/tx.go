package sqlite

import (
	"database/sql"

	"craftmanager/internal/ports"
)

const (
	insertTag = `INSERT OR IGNORE INTO tags (ref_key, tag) VALUES (?, ?)`
	deleteTag = `DELETE FROM tags WHERE ref_key = ? AND tag = ?`
)

// tagTx implements ports.TagTx
type tagTx struct {
	tx *sql.Tx
}

// Ensure tagTx implements TagTx
var _ ports.TagTx = (*tagTx)(nil)

// AddTag assigns a tag inside the transaction
func (t *tagTx) AddTag(key, tag string) error {
	_, err := t.tx.Exec(insertTag, key, tag)
	return err
}

// RemoveTag removes a tag inside the transaction
func (t *tagTx) RemoveTag(key, tag string) error {
	_, err := t.tx.Exec(deleteTag, key, tag)
	return err
}

// DeleteKey removes every tag of a reference key
func (t *tagTx) DeleteKey(key string) error {
	_, err := t.tx.Exec(`DELETE FROM tags WHERE ref_key = ?`, key)
	return err
}

// Commit commits the transaction
func (t *tagTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *tagTx) Rollback() error {
	return t.tx.Rollback()
}
