// Code generated by ent, DO NOT EDIT.

package attempt

import (
	"time"

	"entgo.io/ent/dialect/sql"
)

const (
	// Label holds the string label denoting the attempt type in the database.
	Label = "attempt"
	// FieldID holds the string denoting the id field in the database.
	FieldID = "id"
	// FieldAttemptID holds the string denoting the attempt_id field in the database.
	FieldAttemptID = "attempt_id"
	// FieldFingerprintKey holds the string denoting the fingerprint_key field in the database.
	FieldFingerprintKey = "fingerprint_key"
	// FieldTitle holds the string denoting the title field in the database.
	FieldTitle = "title"
	// FieldQuestionCount holds the string denoting the question_count field in the database.
	FieldQuestionCount = "question_count"
	// FieldSummary holds the string denoting the summary field in the database.
	FieldSummary = "summary"
	// FieldStartedAt holds the string denoting the started_at field in the database.
	FieldStartedAt = "started_at"
	// FieldCompletedAt holds the string denoting the completed_at field in the database.
	FieldCompletedAt = "completed_at"
	// FieldPercentage holds the string denoting the percentage field in the database.
	FieldPercentage = "percentage"
	// FieldPendingCount holds the string denoting the pending_count field in the database.
	FieldPendingCount = "pending_count"
	// FieldAutoSubmitted holds the string denoting the auto_submitted field in the database.
	FieldAutoSubmitted = "auto_submitted"
	// Table holds the table name of the attempt in the database.
	Table = "attempts"
)

// Columns holds all SQL columns for attempt fields.
var Columns = []string{
	FieldID,
	FieldAttemptID,
	FieldFingerprintKey,
	FieldTitle,
	FieldQuestionCount,
	FieldSummary,
	FieldStartedAt,
	FieldCompletedAt,
	FieldPercentage,
	FieldPendingCount,
	FieldAutoSubmitted,
}

// ValidColumn reports if the column name is valid (part of the table columns).
func ValidColumn(column string) bool {
	for i := range Columns {
		if column == Columns[i] {
			return true
		}
	}
	return false
}

var (
	// DefaultCompletedAt holds the default value on creation for the "completed_at" field.
	DefaultCompletedAt func() time.Time
	// DefaultPercentage holds the default value on creation for the "percentage" field.
	DefaultPercentage float64
	// DefaultPendingCount holds the default value on creation for the "pending_count" field.
	DefaultPendingCount int
	// DefaultAutoSubmitted holds the default value on creation for the "auto_submitted" field.
	DefaultAutoSubmitted bool
)

// OrderOption defines the ordering options for the Attempt queries.
type OrderOption func(*sql.Selector)

// ByID orders the results by the id field.
func ByID(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldID, opts...).ToFunc()
}

// ByAttemptID orders the results by the attempt_id field.
func ByAttemptID(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldAttemptID, opts...).ToFunc()
}

// ByFingerprintKey orders the results by the fingerprint_key field.
func ByFingerprintKey(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldFingerprintKey, opts...).ToFunc()
}

// ByTitle orders the results by the title field.
func ByTitle(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldTitle, opts...).ToFunc()
}

// ByQuestionCount orders the results by the question_count field.
func ByQuestionCount(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldQuestionCount, opts...).ToFunc()
}

// ByStartedAt orders the results by the started_at field.
func ByStartedAt(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldStartedAt, opts...).ToFunc()
}

// ByCompletedAt orders the results by the completed_at field.
func ByCompletedAt(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldCompletedAt, opts...).ToFunc()
}

// ByPercentage orders the results by the percentage field.
func ByPercentage(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldPercentage, opts...).ToFunc()
}

// ByPendingCount orders the results by the pending_count field.
func ByPendingCount(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldPendingCount, opts...).ToFunc()
}

// ByAutoSubmitted orders the results by the auto_submitted field.
func ByAutoSubmitted(opts ...sql.OrderTermOption) OrderOption {
	return sql.OrderByField(FieldAutoSubmitted, opts...).ToFunc()
}
