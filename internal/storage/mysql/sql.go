package mysql

// Note: `text`-like reserved words are avoided; `sentence` is a plain column.
const insertRecordsPrefix = "INSERT INTO review_sentences\n  (source_file, row_no, related_ofd, review_sentiment, sentence)\nVALUES "

// Re-importing a file overwrites its rows in place, keyed by (source_file, row_no).
const insertRecordsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  related_ofd      = VALUES(related_ofd),\n" +
	"  review_sentiment = VALUES(review_sentiment),\n" +
	"  sentence         = VALUES(sentence),\n" +
	"  imported_at      = CURRENT_TIMESTAMP\n"

// Trims rows left over from a previous, longer import of the same file.
const deleteTailSQL = `
DELETE FROM review_sentences
WHERE source_file = ? AND row_no > ?
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// Row order is import order: file, then spreadsheet row.
const listRecordsSQL = `
SELECT related_ofd, review_sentiment, sentence
FROM review_sentences
ORDER BY source_file, row_no
`
