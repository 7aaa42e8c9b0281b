// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/abhisek/soloquiz/ent/attempt"
	"github.com/abhisek/soloquiz/ent/predicate"
)

// AttemptUpdate is the builder for updating Attempt entities.
type AttemptUpdate struct {
	config
	hooks    []Hook
	mutation *AttemptMutation
}

// Where appends a list predicates to the AttemptUpdate builder.
func (_u *AttemptUpdate) Where(ps ...predicate.Attempt) *AttemptUpdate {
	_u.mutation.Where(ps...)
	return _u
}

// SetFingerprintKey sets the "fingerprint_key" field.
func (_u *AttemptUpdate) SetFingerprintKey(v string) *AttemptUpdate {
	_u.mutation.SetFingerprintKey(v)
	return _u
}

// SetNillableFingerprintKey sets the "fingerprint_key" field if the given value is not nil.
func (_u *AttemptUpdate) SetNillableFingerprintKey(v *string) *AttemptUpdate {
	if v != nil {
		_u.SetFingerprintKey(*v)
	}
	return _u
}

// SetTitle sets the "title" field.
func (_u *AttemptUpdate) SetTitle(v string) *AttemptUpdate {
	_u.mutation.SetTitle(v)
	return _u
}

// SetNillableTitle sets the "title" field if the given value is not nil.
func (_u *AttemptUpdate) SetNillableTitle(v *string) *AttemptUpdate {
	if v != nil {
		_u.SetTitle(*v)
	}
	return _u
}

// SetQuestionCount sets the "question_count" field.
func (_u *AttemptUpdate) SetQuestionCount(v int) *AttemptUpdate {
	_u.mutation.ResetQuestionCount()
	_u.mutation.SetQuestionCount(v)
	return _u
}

// SetNillableQuestionCount sets the "question_count" field if the given value is not nil.
func (_u *AttemptUpdate) SetNillableQuestionCount(v *int) *AttemptUpdate {
	if v != nil {
		_u.SetQuestionCount(*v)
	}
	return _u
}

// AddQuestionCount adds value to the "question_count" field.
func (_u *AttemptUpdate) AddQuestionCount(v int) *AttemptUpdate {
	_u.mutation.AddQuestionCount(v)
	return _u
}

// SetSummary sets the "summary" field.
func (_u *AttemptUpdate) SetSummary(v map[string]interface{}) *AttemptUpdate {
	_u.mutation.SetSummary(v)
	return _u
}

// SetStartedAt sets the "started_at" field.
func (_u *AttemptUpdate) SetStartedAt(v time.Time) *AttemptUpdate {
	_u.mutation.SetStartedAt(v)
	return _u
}

// SetNillableStartedAt sets the "started_at" field if the given value is not nil.
func (_u *AttemptUpdate) SetNillableStartedAt(v *time.Time) *AttemptUpdate {
	if v != nil {
		_u.SetStartedAt(*v)
	}
	return _u
}

// SetCompletedAt sets the "completed_at" field.
func (_u *AttemptUpdate) SetCompletedAt(v time.Time) *AttemptUpdate {
	_u.mutation.SetCompletedAt(v)
	return _u
}

// SetNillableCompletedAt sets the "completed_at" field if the given value is not nil.
func (_u *AttemptUpdate) SetNillableCompletedAt(v *time.Time) *AttemptUpdate {
	if v != nil {
		_u.SetCompletedAt(*v)
	}
	return _u
}

// SetPercentage sets the "percentage" field.
func (_u *AttemptUpdate) SetPercentage(v float64) *AttemptUpdate {
	_u.mutation.ResetPercentage()
	_u.mutation.SetPercentage(v)
	return _u
}

// SetNillablePercentage sets the "percentage" field if the given value is not nil.
func (_u *AttemptUpdate) SetNillablePercentage(v *float64) *AttemptUpdate {
	if v != nil {
		_u.SetPercentage(*v)
	}
	return _u
}

// AddPercentage adds value to the "percentage" field.
func (_u *AttemptUpdate) AddPercentage(v float64) *AttemptUpdate {
	_u.mutation.AddPercentage(v)
	return _u
}

// SetPendingCount sets the "pending_count" field.
func (_u *AttemptUpdate) SetPendingCount(v int) *AttemptUpdate {
	_u.mutation.ResetPendingCount()
	_u.mutation.SetPendingCount(v)
	return _u
}

// SetNillablePendingCount sets the "pending_count" field if the given value is not nil.
func (_u *AttemptUpdate) SetNillablePendingCount(v *int) *AttemptUpdate {
	if v != nil {
		_u.SetPendingCount(*v)
	}
	return _u
}

// AddPendingCount adds value to the "pending_count" field.
func (_u *AttemptUpdate) AddPendingCount(v int) *AttemptUpdate {
	_u.mutation.AddPendingCount(v)
	return _u
}

// SetAutoSubmitted sets the "auto_submitted" field.
func (_u *AttemptUpdate) SetAutoSubmitted(v bool) *AttemptUpdate {
	_u.mutation.SetAutoSubmitted(v)
	return _u
}

// SetNillableAutoSubmitted sets the "auto_submitted" field if the given value is not nil.
func (_u *AttemptUpdate) SetNillableAutoSubmitted(v *bool) *AttemptUpdate {
	if v != nil {
		_u.SetAutoSubmitted(*v)
	}
	return _u
}

// Mutation returns the AttemptMutation object of the builder.
func (_u *AttemptUpdate) Mutation() *AttemptMutation {
	return _u.mutation
}

// Save executes the query and returns the number of nodes affected by the update operation.
func (_u *AttemptUpdate) Save(ctx context.Context) (int, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *AttemptUpdate) SaveX(ctx context.Context) int {
	affected, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return affected
}

// Exec executes the query.
func (_u *AttemptUpdate) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *AttemptUpdate) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

func (_u *AttemptUpdate) sqlSave(ctx context.Context) (_node int, err error) {
	_spec := sqlgraph.NewUpdateSpec(attempt.Table, attempt.Columns, sqlgraph.NewFieldSpec(attempt.FieldID, field.TypeInt))
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.FingerprintKey(); ok {
		_spec.SetField(attempt.FieldFingerprintKey, field.TypeString, value)
	}
	if value, ok := _u.mutation.Title(); ok {
		_spec.SetField(attempt.FieldTitle, field.TypeString, value)
	}
	if value, ok := _u.mutation.QuestionCount(); ok {
		_spec.SetField(attempt.FieldQuestionCount, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedQuestionCount(); ok {
		_spec.AddField(attempt.FieldQuestionCount, field.TypeInt, value)
	}
	if value, ok := _u.mutation.Summary(); ok {
		_spec.SetField(attempt.FieldSummary, field.TypeJSON, value)
	}
	if value, ok := _u.mutation.StartedAt(); ok {
		_spec.SetField(attempt.FieldStartedAt, field.TypeTime, value)
	}
	if value, ok := _u.mutation.CompletedAt(); ok {
		_spec.SetField(attempt.FieldCompletedAt, field.TypeTime, value)
	}
	if value, ok := _u.mutation.Percentage(); ok {
		_spec.SetField(attempt.FieldPercentage, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedPercentage(); ok {
		_spec.AddField(attempt.FieldPercentage, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.PendingCount(); ok {
		_spec.SetField(attempt.FieldPendingCount, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedPendingCount(); ok {
		_spec.AddField(attempt.FieldPendingCount, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AutoSubmitted(); ok {
		_spec.SetField(attempt.FieldAutoSubmitted, field.TypeBool, value)
	}
	if _node, err = sqlgraph.UpdateNodes(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{attempt.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return 0, err
	}
	_u.mutation.done = true
	return _node, nil
}

// AttemptUpdateOne is the builder for updating a single Attempt entity.
type AttemptUpdateOne struct {
	config
	fields   []string
	hooks    []Hook
	mutation *AttemptMutation
}

// SetFingerprintKey sets the "fingerprint_key" field.
func (_u *AttemptUpdateOne) SetFingerprintKey(v string) *AttemptUpdateOne {
	_u.mutation.SetFingerprintKey(v)
	return _u
}

// SetNillableFingerprintKey sets the "fingerprint_key" field if the given value is not nil.
func (_u *AttemptUpdateOne) SetNillableFingerprintKey(v *string) *AttemptUpdateOne {
	if v != nil {
		_u.SetFingerprintKey(*v)
	}
	return _u
}

// SetTitle sets the "title" field.
func (_u *AttemptUpdateOne) SetTitle(v string) *AttemptUpdateOne {
	_u.mutation.SetTitle(v)
	return _u
}

// SetNillableTitle sets the "title" field if the given value is not nil.
func (_u *AttemptUpdateOne) SetNillableTitle(v *string) *AttemptUpdateOne {
	if v != nil {
		_u.SetTitle(*v)
	}
	return _u
}

// SetQuestionCount sets the "question_count" field.
func (_u *AttemptUpdateOne) SetQuestionCount(v int) *AttemptUpdateOne {
	_u.mutation.ResetQuestionCount()
	_u.mutation.SetQuestionCount(v)
	return _u
}

// SetNillableQuestionCount sets the "question_count" field if the given value is not nil.
func (_u *AttemptUpdateOne) SetNillableQuestionCount(v *int) *AttemptUpdateOne {
	if v != nil {
		_u.SetQuestionCount(*v)
	}
	return _u
}

// AddQuestionCount adds value to the "question_count" field.
func (_u *AttemptUpdateOne) AddQuestionCount(v int) *AttemptUpdateOne {
	_u.mutation.AddQuestionCount(v)
	return _u
}

// SetSummary sets the "summary" field.
func (_u *AttemptUpdateOne) SetSummary(v map[string]interface{}) *AttemptUpdateOne {
	_u.mutation.SetSummary(v)
	return _u
}

// SetStartedAt sets the "started_at" field.
func (_u *AttemptUpdateOne) SetStartedAt(v time.Time) *AttemptUpdateOne {
	_u.mutation.SetStartedAt(v)
	return _u
}

// SetNillableStartedAt sets the "started_at" field if the given value is not nil.
func (_u *AttemptUpdateOne) SetNillableStartedAt(v *time.Time) *AttemptUpdateOne {
	if v != nil {
		_u.SetStartedAt(*v)
	}
	return _u
}

// SetCompletedAt sets the "completed_at" field.
func (_u *AttemptUpdateOne) SetCompletedAt(v time.Time) *AttemptUpdateOne {
	_u.mutation.SetCompletedAt(v)
	return _u
}

// SetNillableCompletedAt sets the "completed_at" field if the given value is not nil.
func (_u *AttemptUpdateOne) SetNillableCompletedAt(v *time.Time) *AttemptUpdateOne {
	if v != nil {
		_u.SetCompletedAt(*v)
	}
	return _u
}

// SetPercentage sets the "percentage" field.
func (_u *AttemptUpdateOne) SetPercentage(v float64) *AttemptUpdateOne {
	_u.mutation.ResetPercentage()
	_u.mutation.SetPercentage(v)
	return _u
}

// SetNillablePercentage sets the "percentage" field if the given value is not nil.
func (_u *AttemptUpdateOne) SetNillablePercentage(v *float64) *AttemptUpdateOne {
	if v != nil {
		_u.SetPercentage(*v)
	}
	return _u
}

// AddPercentage adds value to the "percentage" field.
func (_u *AttemptUpdateOne) AddPercentage(v float64) *AttemptUpdateOne {
	_u.mutation.AddPercentage(v)
	return _u
}

// SetPendingCount sets the "pending_count" field.
func (_u *AttemptUpdateOne) SetPendingCount(v int) *AttemptUpdateOne {
	_u.mutation.ResetPendingCount()
	_u.mutation.SetPendingCount(v)
	return _u
}

// SetNillablePendingCount sets the "pending_count" field if the given value is not nil.
func (_u *AttemptUpdateOne) SetNillablePendingCount(v *int) *AttemptUpdateOne {
	if v != nil {
		_u.SetPendingCount(*v)
	}
	return _u
}

// AddPendingCount adds value to the "pending_count" field.
func (_u *AttemptUpdateOne) AddPendingCount(v int) *AttemptUpdateOne {
	_u.mutation.AddPendingCount(v)
	return _u
}

// SetAutoSubmitted sets the "auto_submitted" field.
func (_u *AttemptUpdateOne) SetAutoSubmitted(v bool) *AttemptUpdateOne {
	_u.mutation.SetAutoSubmitted(v)
	return _u
}

// SetNillableAutoSubmitted sets the "auto_submitted" field if the given value is not nil.
func (_u *AttemptUpdateOne) SetNillableAutoSubmitted(v *bool) *AttemptUpdateOne {
	if v != nil {
		_u.SetAutoSubmitted(*v)
	}
	return _u
}

// Mutation returns the AttemptMutation object of the builder.
func (_u *AttemptUpdateOne) Mutation() *AttemptMutation {
	return _u.mutation
}

// Where appends a list predicates to the AttemptUpdate builder.
func (_u *AttemptUpdateOne) Where(ps ...predicate.Attempt) *AttemptUpdateOne {
	_u.mutation.Where(ps...)
	return _u
}

// Select allows selecting one or more fields (columns) of the returned entity.
// The default is selecting all fields defined in the entity schema.
func (_u *AttemptUpdateOne) Select(field string, fields ...string) *AttemptUpdateOne {
	_u.fields = append([]string{field}, fields...)
	return _u
}

// Save executes the query and returns the updated Attempt entity.
func (_u *AttemptUpdateOne) Save(ctx context.Context) (*Attempt, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *AttemptUpdateOne) SaveX(ctx context.Context) *Attempt {
	node, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return node
}

// Exec executes the query on the entity.
func (_u *AttemptUpdateOne) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *AttemptUpdateOne) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

func (_u *AttemptUpdateOne) sqlSave(ctx context.Context) (_node *Attempt, err error) {
	_spec := sqlgraph.NewUpdateSpec(attempt.Table, attempt.Columns, sqlgraph.NewFieldSpec(attempt.FieldID, field.TypeInt))
	id, ok := _u.mutation.ID()
	if !ok {
		return nil, &ValidationError{Name: "id", err: errors.New(`ent: missing "Attempt.id" for update`)}
	}
	_spec.Node.ID.Value = id
	if fields := _u.fields; len(fields) > 0 {
		_spec.Node.Columns = make([]string, 0, len(fields))
		_spec.Node.Columns = append(_spec.Node.Columns, attempt.FieldID)
		for _, f := range fields {
			if !attempt.ValidColumn(f) {
				return nil, &ValidationError{Name: f, err: fmt.Errorf("ent: invalid field %q for query", f)}
			}
			if f != attempt.FieldID {
				_spec.Node.Columns = append(_spec.Node.Columns, f)
			}
		}
	}
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.FingerprintKey(); ok {
		_spec.SetField(attempt.FieldFingerprintKey, field.TypeString, value)
	}
	if value, ok := _u.mutation.Title(); ok {
		_spec.SetField(attempt.FieldTitle, field.TypeString, value)
	}
	if value, ok := _u.mutation.QuestionCount(); ok {
		_spec.SetField(attempt.FieldQuestionCount, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedQuestionCount(); ok {
		_spec.AddField(attempt.FieldQuestionCount, field.TypeInt, value)
	}
	if value, ok := _u.mutation.Summary(); ok {
		_spec.SetField(attempt.FieldSummary, field.TypeJSON, value)
	}
	if value, ok := _u.mutation.StartedAt(); ok {
		_spec.SetField(attempt.FieldStartedAt, field.TypeTime, value)
	}
	if value, ok := _u.mutation.CompletedAt(); ok {
		_spec.SetField(attempt.FieldCompletedAt, field.TypeTime, value)
	}
	if value, ok := _u.mutation.Percentage(); ok {
		_spec.SetField(attempt.FieldPercentage, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedPercentage(); ok {
		_spec.AddField(attempt.FieldPercentage, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.PendingCount(); ok {
		_spec.SetField(attempt.FieldPendingCount, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedPendingCount(); ok {
		_spec.AddField(attempt.FieldPendingCount, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AutoSubmitted(); ok {
		_spec.SetField(attempt.FieldAutoSubmitted, field.TypeBool, value)
	}
	_node = &Attempt{config: _u.config}
	_spec.Assign = _node.assignValues
	_spec.ScanValues = _node.scanValues
	if err = sqlgraph.UpdateNode(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{attempt.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	_u.mutation.done = true
	return _node, nil
}
