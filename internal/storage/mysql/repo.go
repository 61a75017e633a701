package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"absa_dashboard/internal/domain"
)

// batchSize keeps each multi-row INSERT well under MySQL's placeholder limit.
const batchSize = 500

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

// Repo stores imported review sentences and serves them back as a RecordSource.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// UpsertRecords writes rs as rows 1..len(rs) of sourceFile inside one
// transaction and removes any rows beyond len(rs) from an older import.
func (r *Repo) UpsertRecords(ctx context.Context, sourceFile string, rs []domain.ReviewRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for start := 0; start < len(rs); start += batchSize {
		end := min(start+batchSize, len(rs))
		values := make([]string, 0, end-start)
		args := make([]any, 0, (end-start)*5) // 5 params per row
		for i, rec := range rs[start:end] {
			values = append(values, "(?,?,?,?,?)")
			args = append(args,
				sourceFile,            // source_file
				start+i+1,             // row_no
				rec.Platform,          // related_ofd
				valStr(rec.Sentiment), // review_sentiment
				valStr(rec.Sentence),  // sentence
			)
		}
		sqlStr := insertRecordsPrefix + strings.Join(values, ",") + insertRecordsOnDup
		if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
			return fmt.Errorf("insert rows %d-%d of %s: %w", start+1, end, sourceFile, err)
		}
	}
	if _, err := tx.ExecContext(ctx, deleteTailSQL, sourceFile, len(rs)); err != nil {
		return fmt.Errorf("trim %s: %w", sourceFile, err)
	}
	return tx.Commit()
}

// Load reads every imported row. Values were normalized at import time and
// are normalized again here so hand-edited rows still group correctly.
func (r *Repo) Load(ctx context.Context) (domain.Table, error) {
	rows, err := r.db.QueryContext(ctx, listRecordsSQL)
	if err != nil {
		return domain.Table{}, fmt.Errorf("%w: mysql: %w", domain.ErrLoadFailure, err)
	}
	defer rows.Close()

	t := domain.Table{Source: "mysql:review_sentences", Columns: domain.RequiredColumns}
	for rows.Next() {
		var platform, sentiment, sentence sql.NullString
		if err := rows.Scan(&platform, &sentiment, &sentence); err != nil {
			return domain.Table{}, fmt.Errorf("%w: mysql scan: %w", domain.ErrLoadFailure, err)
		}
		t.Records = append(t.Records, domain.NewReviewRecord(platform.String, sentiment.String, sentence.String))
	}
	if err := rows.Err(); err != nil {
		return domain.Table{}, fmt.Errorf("%w: mysql rows: %w", domain.ErrLoadFailure, err)
	}
	return t, nil
}
