// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/abhisek/soloquiz/ent/gradingevent"
	"github.com/abhisek/soloquiz/ent/predicate"
)

// GradingEventUpdate is the builder for updating GradingEvent entities.
type GradingEventUpdate struct {
	config
	hooks    []Hook
	mutation *GradingEventMutation
}

// Where appends a list predicates to the GradingEventUpdate builder.
func (_u *GradingEventUpdate) Where(ps ...predicate.GradingEvent) *GradingEventUpdate {
	_u.mutation.Where(ps...)
	return _u
}

// SetAttemptID sets the "attempt_id" field.
func (_u *GradingEventUpdate) SetAttemptID(v string) *GradingEventUpdate {
	_u.mutation.SetAttemptID(v)
	return _u
}

// SetNillableAttemptID sets the "attempt_id" field if the given value is not nil.
func (_u *GradingEventUpdate) SetNillableAttemptID(v *string) *GradingEventUpdate {
	if v != nil {
		_u.SetAttemptID(*v)
	}
	return _u
}

// SetQuestionID sets the "question_id" field.
func (_u *GradingEventUpdate) SetQuestionID(v string) *GradingEventUpdate {
	_u.mutation.SetQuestionID(v)
	return _u
}

// SetNillableQuestionID sets the "question_id" field if the given value is not nil.
func (_u *GradingEventUpdate) SetNillableQuestionID(v *string) *GradingEventUpdate {
	if v != nil {
		_u.SetQuestionID(*v)
	}
	return _u
}

// SetAction sets the "action" field.
func (_u *GradingEventUpdate) SetAction(v string) *GradingEventUpdate {
	_u.mutation.SetAction(v)
	return _u
}

// SetNillableAction sets the "action" field if the given value is not nil.
func (_u *GradingEventUpdate) SetNillableAction(v *string) *GradingEventUpdate {
	if v != nil {
		_u.SetAction(*v)
	}
	return _u
}

// SetVerdict sets the "verdict" field.
func (_u *GradingEventUpdate) SetVerdict(v string) *GradingEventUpdate {
	_u.mutation.SetVerdict(v)
	return _u
}

// SetNillableVerdict sets the "verdict" field if the given value is not nil.
func (_u *GradingEventUpdate) SetNillableVerdict(v *string) *GradingEventUpdate {
	if v != nil {
		_u.SetVerdict(*v)
	}
	return _u
}

// SetScore sets the "score" field.
func (_u *GradingEventUpdate) SetScore(v float64) *GradingEventUpdate {
	_u.mutation.ResetScore()
	_u.mutation.SetScore(v)
	return _u
}

// SetNillableScore sets the "score" field if the given value is not nil.
func (_u *GradingEventUpdate) SetNillableScore(v *float64) *GradingEventUpdate {
	if v != nil {
		_u.SetScore(*v)
	}
	return _u
}

// AddScore adds value to the "score" field.
func (_u *GradingEventUpdate) AddScore(v float64) *GradingEventUpdate {
	_u.mutation.AddScore(v)
	return _u
}

// SetSource sets the "source" field.
func (_u *GradingEventUpdate) SetSource(v string) *GradingEventUpdate {
	_u.mutation.SetSource(v)
	return _u
}

// SetNillableSource sets the "source" field if the given value is not nil.
func (_u *GradingEventUpdate) SetNillableSource(v *string) *GradingEventUpdate {
	if v != nil {
		_u.SetSource(*v)
	}
	return _u
}

// Mutation returns the GradingEventMutation object of the builder.
func (_u *GradingEventUpdate) Mutation() *GradingEventMutation {
	return _u.mutation
}

// Save executes the query and returns the number of nodes affected by the update operation.
func (_u *GradingEventUpdate) Save(ctx context.Context) (int, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *GradingEventUpdate) SaveX(ctx context.Context) int {
	affected, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return affected
}

// Exec executes the query.
func (_u *GradingEventUpdate) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *GradingEventUpdate) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

func (_u *GradingEventUpdate) sqlSave(ctx context.Context) (_node int, err error) {
	_spec := sqlgraph.NewUpdateSpec(gradingevent.Table, gradingevent.Columns, sqlgraph.NewFieldSpec(gradingevent.FieldID, field.TypeInt))
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.AttemptID(); ok {
		_spec.SetField(gradingevent.FieldAttemptID, field.TypeString, value)
	}
	if value, ok := _u.mutation.QuestionID(); ok {
		_spec.SetField(gradingevent.FieldQuestionID, field.TypeString, value)
	}
	if value, ok := _u.mutation.Action(); ok {
		_spec.SetField(gradingevent.FieldAction, field.TypeString, value)
	}
	if value, ok := _u.mutation.Verdict(); ok {
		_spec.SetField(gradingevent.FieldVerdict, field.TypeString, value)
	}
	if value, ok := _u.mutation.Score(); ok {
		_spec.SetField(gradingevent.FieldScore, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedScore(); ok {
		_spec.AddField(gradingevent.FieldScore, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.Source(); ok {
		_spec.SetField(gradingevent.FieldSource, field.TypeString, value)
	}
	if _node, err = sqlgraph.UpdateNodes(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{gradingevent.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return 0, err
	}
	_u.mutation.done = true
	return _node, nil
}

// GradingEventUpdateOne is the builder for updating a single GradingEvent entity.
type GradingEventUpdateOne struct {
	config
	fields   []string
	hooks    []Hook
	mutation *GradingEventMutation
}

// SetAttemptID sets the "attempt_id" field.
func (_u *GradingEventUpdateOne) SetAttemptID(v string) *GradingEventUpdateOne {
	_u.mutation.SetAttemptID(v)
	return _u
}

// SetNillableAttemptID sets the "attempt_id" field if the given value is not nil.
func (_u *GradingEventUpdateOne) SetNillableAttemptID(v *string) *GradingEventUpdateOne {
	if v != nil {
		_u.SetAttemptID(*v)
	}
	return _u
}

// SetQuestionID sets the "question_id" field.
func (_u *GradingEventUpdateOne) SetQuestionID(v string) *GradingEventUpdateOne {
	_u.mutation.SetQuestionID(v)
	return _u
}

// SetNillableQuestionID sets the "question_id" field if the given value is not nil.
func (_u *GradingEventUpdateOne) SetNillableQuestionID(v *string) *GradingEventUpdateOne {
	if v != nil {
		_u.SetQuestionID(*v)
	}
	return _u
}

// SetAction sets the "action" field.
func (_u *GradingEventUpdateOne) SetAction(v string) *GradingEventUpdateOne {
	_u.mutation.SetAction(v)
	return _u
}

// SetNillableAction sets the "action" field if the given value is not nil.
func (_u *GradingEventUpdateOne) SetNillableAction(v *string) *GradingEventUpdateOne {
	if v != nil {
		_u.SetAction(*v)
	}
	return _u
}

// SetVerdict sets the "verdict" field.
func (_u *GradingEventUpdateOne) SetVerdict(v string) *GradingEventUpdateOne {
	_u.mutation.SetVerdict(v)
	return _u
}

// SetNillableVerdict sets the "verdict" field if the given value is not nil.
func (_u *GradingEventUpdateOne) SetNillableVerdict(v *string) *GradingEventUpdateOne {
	if v != nil {
		_u.SetVerdict(*v)
	}
	return _u
}

// SetScore sets the "score" field.
func (_u *GradingEventUpdateOne) SetScore(v float64) *GradingEventUpdateOne {
	_u.mutation.ResetScore()
	_u.mutation.SetScore(v)
	return _u
}

// SetNillableScore sets the "score" field if the given value is not nil.
func (_u *GradingEventUpdateOne) SetNillableScore(v *float64) *GradingEventUpdateOne {
	if v != nil {
		_u.SetScore(*v)
	}
	return _u
}

// AddScore adds value to the "score" field.
func (_u *GradingEventUpdateOne) AddScore(v float64) *GradingEventUpdateOne {
	_u.mutation.AddScore(v)
	return _u
}

// SetSource sets the "source" field.
func (_u *GradingEventUpdateOne) SetSource(v string) *GradingEventUpdateOne {
	_u.mutation.SetSource(v)
	return _u
}

// SetNillableSource sets the "source" field if the given value is not nil.
func (_u *GradingEventUpdateOne) SetNillableSource(v *string) *GradingEventUpdateOne {
	if v != nil {
		_u.SetSource(*v)
	}
	return _u
}

// Mutation returns the GradingEventMutation object of the builder.
func (_u *GradingEventUpdateOne) Mutation() *GradingEventMutation {
	return _u.mutation
}

// Where appends a list predicates to the GradingEventUpdate builder.
func (_u *GradingEventUpdateOne) Where(ps ...predicate.GradingEvent) *GradingEventUpdateOne {
	_u.mutation.Where(ps...)
	return _u
}

// Select allows selecting one or more fields (columns) of the returned entity.
// The default is selecting all fields defined in the entity schema.
func (_u *GradingEventUpdateOne) Select(field string, fields ...string) *GradingEventUpdateOne {
	_u.fields = append([]string{field}, fields...)
	return _u
}

// Save executes the query and returns the updated GradingEvent entity.
func (_u *GradingEventUpdateOne) Save(ctx context.Context) (*GradingEvent, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *GradingEventUpdateOne) SaveX(ctx context.Context) *GradingEvent {
	node, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return node
}

// Exec executes the query on the entity.
func (_u *GradingEventUpdateOne) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *GradingEventUpdateOne) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

func (_u *GradingEventUpdateOne) sqlSave(ctx context.Context) (_node *GradingEvent, err error) {
	_spec := sqlgraph.NewUpdateSpec(gradingevent.Table, gradingevent.Columns, sqlgraph.NewFieldSpec(gradingevent.FieldID, field.TypeInt))
	id, ok := _u.mutation.ID()
	if !ok {
		return nil, &ValidationError{Name: "id", err: errors.New(`ent: missing "GradingEvent.id" for update`)}
	}
	_spec.Node.ID.Value = id
	if fields := _u.fields; len(fields) > 0 {
		_spec.Node.Columns = make([]string, 0, len(fields))
		_spec.Node.Columns = append(_spec.Node.Columns, gradingevent.FieldID)
		for _, f := range fields {
			if !gradingevent.ValidColumn(f) {
				return nil, &ValidationError{Name: f, err: fmt.Errorf("ent: invalid field %q for query", f)}
			}
			if f != gradingevent.FieldID {
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
	if value, ok := _u.mutation.AttemptID(); ok {
		_spec.SetField(gradingevent.FieldAttemptID, field.TypeString, value)
	}
	if value, ok := _u.mutation.QuestionID(); ok {
		_spec.SetField(gradingevent.FieldQuestionID, field.TypeString, value)
	}
	if value, ok := _u.mutation.Action(); ok {
		_spec.SetField(gradingevent.FieldAction, field.TypeString, value)
	}
	if value, ok := _u.mutation.Verdict(); ok {
		_spec.SetField(gradingevent.FieldVerdict, field.TypeString, value)
	}
	if value, ok := _u.mutation.Score(); ok {
		_spec.SetField(gradingevent.FieldScore, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedScore(); ok {
		_spec.AddField(gradingevent.FieldScore, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.Source(); ok {
		_spec.SetField(gradingevent.FieldSource, field.TypeString, value)
	}
	_node = &GradingEvent{config: _u.config}
	_spec.Assign = _node.assignValues
	_spec.ScanValues = _node.scanValues
	if err = sqlgraph.UpdateNode(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{gradingevent.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	_u.mutation.done = true
	return _node, nil
}
