// Code generated by ent, DO NOT EDIT.

package attempt

import (
	"time"

	"entgo.io/ent/dialect/sql"
	"github.com/abhisek/soloquiz/ent/predicate"
)

// ID filters vertices based on their ID field.
func ID(id int) predicate.Attempt {
	return predicate.Attempt(sql.FieldEQ(FieldID, id))
}

// IDEQ applies the EQ predicate on the ID field.
func IDEQ(id int) predicate.Attempt {
	return predicate.Attempt(sql.FieldEQ(FieldID, id))
}

// IDNEQ applies the NEQ predicate on the ID field.
func IDNEQ(id int) predicate.Attempt {
	return predicate.Attempt(sql.FieldNEQ(FieldID, id))
}

// IDIn applies the In predicate on the ID field.
func IDIn(ids ...int) predicate.Attempt {
	return predicate.Attempt(sql.FieldIn(FieldID, ids...))
}

// IDNotIn applies the NotIn predicate on the ID field.
func IDNotIn(ids ...int) predicate.Attempt {
	return predicate.Attempt(sql.FieldNotIn(FieldID, ids...))
}

// IDGT applies the GT predicate on the ID field.
func IDGT(id int) predicate.Attempt {
	return predicate.Attempt(sql.FieldGT(FieldID, id))
}

// IDGTE applies the GTE predicate on the ID field.
func IDGTE(id int) predicate.Attempt {
	return predicate.Attempt(sql.FieldGTE(FieldID, id))
}

// IDLT applies the LT predicate on the ID field.
func IDLT(id int) predicate.Attempt {
	return predicate.Attempt(sql.FieldLT(FieldID, id))
}

// IDLTE applies the LTE predicate on the ID field.
func IDLTE(id int) predicate.Attempt {
	return predicate.Attempt(sql.FieldLTE(FieldID, id))
}

// AttemptID applies equality check predicate on the "attempt_id" field. It's identical to AttemptIDEQ.
func AttemptID(v string) predicate.Attempt {
	return predicate.Attempt(sql.FieldEQ(FieldAttemptID, v))
}

// FingerprintKey applies equality check predicate on the "fingerprint_key" field. It's identical to FingerprintKeyEQ.
func FingerprintKey(v string) predicate.Attempt {
	return predicate.Attempt(sql.FieldEQ(FieldFingerprintKey, v))
}

// Title applies equality check predicate on the "title" field. It's identical to TitleEQ.
func Title(v string) predicate.Attempt {
	return predicate.Attempt(sql.FieldEQ(FieldTitle, v))
}

// QuestionCount applies equality check predicate on the "question_count" field. It's identical to QuestionCountEQ.
func QuestionCount(v int) predicate.Attempt {
	return predicate.Attempt(sql.FieldEQ(FieldQuestionCount, v))
}

// StartedAt applies equality check predicate on the "started_at" field. It's identical to StartedAtEQ.
func StartedAt(v time.Time) predicate.Attempt {
	return predicate.Attempt(sql.FieldEQ(FieldStartedAt, v))
}

// CompletedAt applies equality check predicate on the "completed_at" field. It's identical to CompletedAtEQ.
func CompletedAt(v time.Time) predicate.Attempt {
	return predicate.Attempt(sql.FieldEQ(FieldCompletedAt, v))
}

// Percentage applies equality check predicate on the "percentage" field. It's identical to PercentageEQ.
func Percentage(v float64) predicate.Attempt {
	return predicate.Attempt(sql.FieldEQ(FieldPercentage, v))
}

// PendingCount applies equality check predicate on the "pending_count" field. It's identical to PendingCountEQ.
func PendingCount(v int) predicate.Attempt {
	return predicate.Attempt(sql.FieldEQ(FieldPendingCount, v))
}

// AutoSubmitted applies equality check predicate on the "auto_submitted" field. It's identical to AutoSubmittedEQ.
func AutoSubmitted(v bool) predicate.Attempt {
	return predicate.Attempt(sql.FieldEQ(FieldAutoSubmitted, v))
}

// AttemptIDEQ applies the EQ predicate on the "attempt_id" field.
func AttemptIDEQ(v string) predicate.Attempt {
	return predicate.Attempt(sql.FieldEQ(FieldAttemptID, v))
}

// AttemptIDNEQ applies the NEQ predicate on the "attempt_id" field.
func AttemptIDNEQ(v string) predicate.Attempt {
	return predicate.Attempt(sql.FieldNEQ(FieldAttemptID, v))
}

// AttemptIDIn applies the In predicate on the "attempt_id" field.
func AttemptIDIn(vs ...string) predicate.Attempt {
	return predicate.Attempt(sql.FieldIn(FieldAttemptID, vs...))
}

// AttemptIDNotIn applies the NotIn predicate on the "attempt_id" field.
func AttemptIDNotIn(vs ...string) predicate.Attempt {
	return predicate.Attempt(sql.FieldNotIn(FieldAttemptID, vs...))
}

// AttemptIDGT applies the GT predicate on the "attempt_id" field.
func AttemptIDGT(v string) predicate.Attempt {
	return predicate.Attempt(sql.FieldGT(FieldAttemptID, v))
}

// AttemptIDGTE applies the GTE predicate on the "attempt_id" field.
func AttemptIDGTE(v string) predicate.Attempt {
	return predicate.Attempt(sql.FieldGTE(FieldAttemptID, v))
}

// AttemptIDLT applies the LT predicate on the "attempt_id" field.
func AttemptIDLT(v string) predicate.Attempt {
	return predicate.Attempt(sql.FieldLT(FieldAttemptID, v))
}

// AttemptIDLTE applies the LTE predicate on the "attempt_id" field.
func AttemptIDLTE(v string) predicate.Attempt {
	return predicate.Attempt(sql.FieldLTE(FieldAttemptID, v))
}

// AttemptIDContains applies the Contains predicate on the "attempt_id" field.
func AttemptIDContains(v string) predicate.Attempt {
	return predicate.Attempt(sql.FieldContains(FieldAttemptID, v))
}

// AttemptIDHasPrefix applies the HasPrefix predicate on the "attempt_id" field.
func AttemptIDHasPrefix(v string) predicate.Attempt {
	return predicate.Attempt(sql.FieldHasPrefix(FieldAttemptID, v))
}

// AttemptIDHasSuffix applies the HasSuffix predicate on the "attempt_id" field.
func AttemptIDHasSuffix(v string) predicate.Attempt {
	return predicate.Attempt(sql.FieldHasSuffix(FieldAttemptID, v))
}

// AttemptIDEqualFold applies the EqualFold predicate on the "attempt_id" field.
func AttemptIDEqualFold(v string) predicate.Attempt {
	return predicate.Attempt(sql.FieldEqualFold(FieldAttemptID, v))
}

// AttemptIDContainsFold applies the ContainsFold predicate on the "attempt_id" field.
func AttemptIDContainsFold(v string) predicate.Attempt {
	return predicate.Attempt(sql.FieldContainsFold(FieldAttemptID, v))
}

// FingerprintKeyEQ applies the EQ predicate on the "fingerprint_key" field.
func FingerprintKeyEQ(v string) predicate.Attempt {
	return predicate.Attempt(sql.FieldEQ(FieldFingerprintKey, v))
}

// FingerprintKeyNEQ applies the NEQ predicate on the "fingerprint_key" field.
func FingerprintKeyNEQ(v string) predicate.Attempt {
	return predicate.Attempt(sql.FieldNEQ(FieldFingerprintKey, v))
}

// FingerprintKeyIn applies the In predicate on the "fingerprint_key" field.
func FingerprintKeyIn(vs ...string) predicate.Attempt {
	return predicate.Attempt(sql.FieldIn(FieldFingerprintKey, vs...))
}

// FingerprintKeyNotIn applies the NotIn predicate on the "fingerprint_key" field.
func FingerprintKeyNotIn(vs ...string) predicate.Attempt {
	return predicate.Attempt(sql.FieldNotIn(FieldFingerprintKey, vs...))
}

// FingerprintKeyGT applies the GT predicate on the "fingerprint_key" field.
func FingerprintKeyGT(v string) predicate.Attempt {
	return predicate.Attempt(sql.FieldGT(FieldFingerprintKey, v))
}

// FingerprintKeyGTE applies the GTE predicate on the "fingerprint_key" field.
func FingerprintKeyGTE(v string) predicate.Attempt {
	return predicate.Attempt(sql.FieldGTE(FieldFingerprintKey, v))
}

// FingerprintKeyLT applies the LT predicate on the "fingerprint_key" field.
func FingerprintKeyLT(v string) predicate.Attempt {
	return predicate.Attempt(sql.FieldLT(FieldFingerprintKey, v))
}

// FingerprintKeyLTE applies the LTE predicate on the "fingerprint_key" field.
func FingerprintKeyLTE(v string) predicate.Attempt {
	return predicate.Attempt(sql.FieldLTE(FieldFingerprintKey, v))
}

// FingerprintKeyContains applies the Contains predicate on the "fingerprint_key" field.
func FingerprintKeyContains(v string) predicate.Attempt {
	return predicate.Attempt(sql.FieldContains(FieldFingerprintKey, v))
}

// FingerprintKeyHasPrefix applies the HasPrefix predicate on the "fingerprint_key" field.
func FingerprintKeyHasPrefix(v string) predicate.Attempt {
	return predicate.Attempt(sql.FieldHasPrefix(FieldFingerprintKey, v))
}

// FingerprintKeyHasSuffix applies the HasSuffix predicate on the "fingerprint_key" field.
func FingerprintKeyHasSuffix(v string) predicate.Attempt {
	return predicate.Attempt(sql.FieldHasSuffix(FieldFingerprintKey, v))
}

// FingerprintKeyEqualFold applies the EqualFold predicate on the "fingerprint_key" field.
func FingerprintKeyEqualFold(v string) predicate.Attempt {
	return predicate.Attempt(sql.FieldEqualFold(FieldFingerprintKey, v))
}

// FingerprintKeyContainsFold applies the ContainsFold predicate on the "fingerprint_key" field.
func FingerprintKeyContainsFold(v string) predicate.Attempt {
	return predicate.Attempt(sql.FieldContainsFold(FieldFingerprintKey, v))
}

// TitleEQ applies the EQ predicate on the "title" field.
func TitleEQ(v string) predicate.Attempt {
	return predicate.Attempt(sql.FieldEQ(FieldTitle, v))
}

// TitleNEQ applies the NEQ predicate on the "title" field.
func TitleNEQ(v string) predicate.Attempt {
	return predicate.Attempt(sql.FieldNEQ(FieldTitle, v))
}

// TitleIn applies the In predicate on the "title" field.
func TitleIn(vs ...string) predicate.Attempt {
	return predicate.Attempt(sql.FieldIn(FieldTitle, vs...))
}

// TitleNotIn applies the NotIn predicate on the "title" field.
func TitleNotIn(vs ...string) predicate.Attempt {
	return predicate.Attempt(sql.FieldNotIn(FieldTitle, vs...))
}

// TitleGT applies the GT predicate on the "title" field.
func TitleGT(v string) predicate.Attempt {
	return predicate.Attempt(sql.FieldGT(FieldTitle, v))
}

// TitleGTE applies the GTE predicate on the "title" field.
func TitleGTE(v string) predicate.Attempt {
	return predicate.Attempt(sql.FieldGTE(FieldTitle, v))
}

// TitleLT applies the LT predicate on the "title" field.
func TitleLT(v string) predicate.Attempt {
	return predicate.Attempt(sql.FieldLT(FieldTitle, v))
}

// TitleLTE applies the LTE predicate on the "title" field.
func TitleLTE(v string) predicate.Attempt {
	return predicate.Attempt(sql.FieldLTE(FieldTitle, v))
}

// TitleContains applies the Contains predicate on the "title" field.
func TitleContains(v string) predicate.Attempt {
	return predicate.Attempt(sql.FieldContains(FieldTitle, v))
}

// TitleHasPrefix applies the HasPrefix predicate on the "title" field.
func TitleHasPrefix(v string) predicate.Attempt {
	return predicate.Attempt(sql.FieldHasPrefix(FieldTitle, v))
}

// TitleHasSuffix applies the HasSuffix predicate on the "title" field.
func TitleHasSuffix(v string) predicate.Attempt {
	return predicate.Attempt(sql.FieldHasSuffix(FieldTitle, v))
}

// TitleEqualFold applies the EqualFold predicate on the "title" field.
func TitleEqualFold(v string) predicate.Attempt {
	return predicate.Attempt(sql.FieldEqualFold(FieldTitle, v))
}

// TitleContainsFold applies the ContainsFold predicate on the "title" field.
func TitleContainsFold(v string) predicate.Attempt {
	return predicate.Attempt(sql.FieldContainsFold(FieldTitle, v))
}

// QuestionCountEQ applies the EQ predicate on the "question_count" field.
func QuestionCountEQ(v int) predicate.Attempt {
	return predicate.Attempt(sql.FieldEQ(FieldQuestionCount, v))
}

// QuestionCountNEQ applies the NEQ predicate on the "question_count" field.
func QuestionCountNEQ(v int) predicate.Attempt {
	return predicate.Attempt(sql.FieldNEQ(FieldQuestionCount, v))
}

// QuestionCountIn applies the In predicate on the "question_count" field.
func QuestionCountIn(vs ...int) predicate.Attempt {
	return predicate.Attempt(sql.FieldIn(FieldQuestionCount, vs...))
}

// QuestionCountNotIn applies the NotIn predicate on the "question_count" field.
func QuestionCountNotIn(vs ...int) predicate.Attempt {
	return predicate.Attempt(sql.FieldNotIn(FieldQuestionCount, vs...))
}

// QuestionCountGT applies the GT predicate on the "question_count" field.
func QuestionCountGT(v int) predicate.Attempt {
	return predicate.Attempt(sql.FieldGT(FieldQuestionCount, v))
}

// QuestionCountGTE applies the GTE predicate on the "question_count" field.
func QuestionCountGTE(v int) predicate.Attempt {
	return predicate.Attempt(sql.FieldGTE(FieldQuestionCount, v))
}

// QuestionCountLT applies the LT predicate on the "question_count" field.
func QuestionCountLT(v int) predicate.Attempt {
	return predicate.Attempt(sql.FieldLT(FieldQuestionCount, v))
}

// QuestionCountLTE applies the LTE predicate on the "question_count" field.
func QuestionCountLTE(v int) predicate.Attempt {
	return predicate.Attempt(sql.FieldLTE(FieldQuestionCount, v))
}

// StartedAtEQ applies the EQ predicate on the "started_at" field.
func StartedAtEQ(v time.Time) predicate.Attempt {
	return predicate.Attempt(sql.FieldEQ(FieldStartedAt, v))
}

// StartedAtNEQ applies the NEQ predicate on the "started_at" field.
func StartedAtNEQ(v time.Time) predicate.Attempt {
	return predicate.Attempt(sql.FieldNEQ(FieldStartedAt, v))
}

// StartedAtIn applies the In predicate on the "started_at" field.
func StartedAtIn(vs ...time.Time) predicate.Attempt {
	return predicate.Attempt(sql.FieldIn(FieldStartedAt, vs...))
}

// StartedAtNotIn applies the NotIn predicate on the "started_at" field.
func StartedAtNotIn(vs ...time.Time) predicate.Attempt {
	return predicate.Attempt(sql.FieldNotIn(FieldStartedAt, vs...))
}

// StartedAtGT applies the GT predicate on the "started_at" field.
func StartedAtGT(v time.Time) predicate.Attempt {
	return predicate.Attempt(sql.FieldGT(FieldStartedAt, v))
}

// StartedAtGTE applies the GTE predicate on the "started_at" field.
func StartedAtGTE(v time.Time) predicate.Attempt {
	return predicate.Attempt(sql.FieldGTE(FieldStartedAt, v))
}

// StartedAtLT applies the LT predicate on the "started_at" field.
func StartedAtLT(v time.Time) predicate.Attempt {
	return predicate.Attempt(sql.FieldLT(FieldStartedAt, v))
}

// StartedAtLTE applies the LTE predicate on the "started_at" field.
func StartedAtLTE(v time.Time) predicate.Attempt {
	return predicate.Attempt(sql.FieldLTE(FieldStartedAt, v))
}

// CompletedAtEQ applies the EQ predicate on the "completed_at" field.
func CompletedAtEQ(v time.Time) predicate.Attempt {
	return predicate.Attempt(sql.FieldEQ(FieldCompletedAt, v))
}

// CompletedAtNEQ applies the NEQ predicate on the "completed_at" field.
func CompletedAtNEQ(v time.Time) predicate.Attempt {
	return predicate.Attempt(sql.FieldNEQ(FieldCompletedAt, v))
}

// CompletedAtIn applies the In predicate on the "completed_at" field.
func CompletedAtIn(vs ...time.Time) predicate.Attempt {
	return predicate.Attempt(sql.FieldIn(FieldCompletedAt, vs...))
}

// CompletedAtNotIn applies the NotIn predicate on the "completed_at" field.
func CompletedAtNotIn(vs ...time.Time) predicate.Attempt {
	return predicate.Attempt(sql.FieldNotIn(FieldCompletedAt, vs...))
}

// CompletedAtGT applies the GT predicate on the "completed_at" field.
func CompletedAtGT(v time.Time) predicate.Attempt {
	return predicate.Attempt(sql.FieldGT(FieldCompletedAt, v))
}

// CompletedAtGTE applies the GTE predicate on the "completed_at" field.
func CompletedAtGTE(v time.Time) predicate.Attempt {
	return predicate.Attempt(sql.FieldGTE(FieldCompletedAt, v))
}

// CompletedAtLT applies the LT predicate on the "completed_at" field.
func CompletedAtLT(v time.Time) predicate.Attempt {
	return predicate.Attempt(sql.FieldLT(FieldCompletedAt, v))
}

// CompletedAtLTE applies the LTE predicate on the "completed_at" field.
func CompletedAtLTE(v time.Time) predicate.Attempt {
	return predicate.Attempt(sql.FieldLTE(FieldCompletedAt, v))
}

// PercentageEQ applies the EQ predicate on the "percentage" field.
func PercentageEQ(v float64) predicate.Attempt {
	return predicate.Attempt(sql.FieldEQ(FieldPercentage, v))
}

// PercentageNEQ applies the NEQ predicate on the "percentage" field.
func PercentageNEQ(v float64) predicate.Attempt {
	return predicate.Attempt(sql.FieldNEQ(FieldPercentage, v))
}

// PercentageIn applies the In predicate on the "percentage" field.
func PercentageIn(vs ...float64) predicate.Attempt {
	return predicate.Attempt(sql.FieldIn(FieldPercentage, vs...))
}

// PercentageNotIn applies the NotIn predicate on the "percentage" field.
func PercentageNotIn(vs ...float64) predicate.Attempt {
	return predicate.Attempt(sql.FieldNotIn(FieldPercentage, vs...))
}

// PercentageGT applies the GT predicate on the "percentage" field.
func PercentageGT(v float64) predicate.Attempt {
	return predicate.Attempt(sql.FieldGT(FieldPercentage, v))
}

// PercentageGTE applies the GTE predicate on the "percentage" field.
func PercentageGTE(v float64) predicate.Attempt {
	return predicate.Attempt(sql.FieldGTE(FieldPercentage, v))
}

// PercentageLT applies the LT predicate on the "percentage" field.
func PercentageLT(v float64) predicate.Attempt {
	return predicate.Attempt(sql.FieldLT(FieldPercentage, v))
}

// PercentageLTE applies the LTE predicate on the "percentage" field.
func PercentageLTE(v float64) predicate.Attempt {
	return predicate.Attempt(sql.FieldLTE(FieldPercentage, v))
}

// PendingCountEQ applies the EQ predicate on the "pending_count" field.
func PendingCountEQ(v int) predicate.Attempt {
	return predicate.Attempt(sql.FieldEQ(FieldPendingCount, v))
}

// PendingCountNEQ applies the NEQ predicate on the "pending_count" field.
func PendingCountNEQ(v int) predicate.Attempt {
	return predicate.Attempt(sql.FieldNEQ(FieldPendingCount, v))
}

// PendingCountIn applies the In predicate on the "pending_count" field.
func PendingCountIn(vs ...int) predicate.Attempt {
	return predicate.Attempt(sql.FieldIn(FieldPendingCount, vs...))
}

// PendingCountNotIn applies the NotIn predicate on the "pending_count" field.
func PendingCountNotIn(vs ...int) predicate.Attempt {
	return predicate.Attempt(sql.FieldNotIn(FieldPendingCount, vs...))
}

// PendingCountGT applies the GT predicate on the "pending_count" field.
func PendingCountGT(v int) predicate.Attempt {
	return predicate.Attempt(sql.FieldGT(FieldPendingCount, v))
}

// PendingCountGTE applies the GTE predicate on the "pending_count" field.
func PendingCountGTE(v int) predicate.Attempt {
	return predicate.Attempt(sql.FieldGTE(FieldPendingCount, v))
}

// PendingCountLT applies the LT predicate on the "pending_count" field.
func PendingCountLT(v int) predicate.Attempt {
	return predicate.Attempt(sql.FieldLT(FieldPendingCount, v))
}

// PendingCountLTE applies the LTE predicate on the "pending_count" field.
func PendingCountLTE(v int) predicate.Attempt {
	return predicate.Attempt(sql.FieldLTE(FieldPendingCount, v))
}

// AutoSubmittedEQ applies the EQ predicate on the "auto_submitted" field.
func AutoSubmittedEQ(v bool) predicate.Attempt {
	return predicate.Attempt(sql.FieldEQ(FieldAutoSubmitted, v))
}

// AutoSubmittedNEQ applies the NEQ predicate on the "auto_submitted" field.
func AutoSubmittedNEQ(v bool) predicate.Attempt {
	return predicate.Attempt(sql.FieldNEQ(FieldAutoSubmitted, v))
}

// And groups predicates with the AND operator between them.
func And(predicates ...predicate.Attempt) predicate.Attempt {
	return predicate.Attempt(sql.AndPredicates(predicates...))
}

// Or groups predicates with the OR operator between them.
func Or(predicates ...predicate.Attempt) predicate.Attempt {
	return predicate.Attempt(sql.OrPredicates(predicates...))
}

// Not applies the not operator on the given predicate.
func Not(p predicate.Attempt) predicate.Attempt {
	return predicate.Attempt(sql.NotPredicates(p))
}
