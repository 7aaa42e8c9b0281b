// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/abhisek/soloquiz/ent/gradingevent"
)

// GradingEventCreate is the builder for creating a GradingEvent entity.
type GradingEventCreate struct {
	config
	mutation *GradingEventMutation
	hooks    []Hook
}

// SetSequence sets the "sequence" field.
func (_c *GradingEventCreate) SetSequence(v int64) *GradingEventCreate {
	_c.mutation.SetSequence(v)
	return _c
}

// SetTimestamp sets the "timestamp" field.
func (_c *GradingEventCreate) SetTimestamp(v time.Time) *GradingEventCreate {
	_c.mutation.SetTimestamp(v)
	return _c
}

// SetNillableTimestamp sets the "timestamp" field if the given value is not nil.
func (_c *GradingEventCreate) SetNillableTimestamp(v *time.Time) *GradingEventCreate {
	if v != nil {
		_c.SetTimestamp(*v)
	}
	return _c
}

// SetAttemptID sets the "attempt_id" field.
func (_c *GradingEventCreate) SetAttemptID(v string) *GradingEventCreate {
	_c.mutation.SetAttemptID(v)
	return _c
}

// SetQuestionID sets the "question_id" field.
func (_c *GradingEventCreate) SetQuestionID(v string) *GradingEventCreate {
	_c.mutation.SetQuestionID(v)
	return _c
}

// SetAction sets the "action" field.
func (_c *GradingEventCreate) SetAction(v string) *GradingEventCreate {
	_c.mutation.SetAction(v)
	return _c
}

// SetVerdict sets the "verdict" field.
func (_c *GradingEventCreate) SetVerdict(v string) *GradingEventCreate {
	_c.mutation.SetVerdict(v)
	return _c
}

// SetNillableVerdict sets the "verdict" field if the given value is not nil.
func (_c *GradingEventCreate) SetNillableVerdict(v *string) *GradingEventCreate {
	if v != nil {
		_c.SetVerdict(*v)
	}
	return _c
}

// SetScore sets the "score" field.
func (_c *GradingEventCreate) SetScore(v float64) *GradingEventCreate {
	_c.mutation.SetScore(v)
	return _c
}

// SetNillableScore sets the "score" field if the given value is not nil.
func (_c *GradingEventCreate) SetNillableScore(v *float64) *GradingEventCreate {
	if v != nil {
		_c.SetScore(*v)
	}
	return _c
}

// SetSource sets the "source" field.
func (_c *GradingEventCreate) SetSource(v string) *GradingEventCreate {
	_c.mutation.SetSource(v)
	return _c
}

// SetNillableSource sets the "source" field if the given value is not nil.
func (_c *GradingEventCreate) SetNillableSource(v *string) *GradingEventCreate {
	if v != nil {
		_c.SetSource(*v)
	}
	return _c
}

// Mutation returns the GradingEventMutation object of the builder.
func (_c *GradingEventCreate) Mutation() *GradingEventMutation {
	return _c.mutation
}

// Save creates the GradingEvent in the database.
func (_c *GradingEventCreate) Save(ctx context.Context) (*GradingEvent, error) {
	_c.defaults()
	return withHooks(ctx, _c.sqlSave, _c.mutation, _c.hooks)
}

// SaveX calls Save and panics if Save returns an error.
func (_c *GradingEventCreate) SaveX(ctx context.Context) *GradingEvent {
	v, err := _c.Save(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Exec executes the query.
func (_c *GradingEventCreate) Exec(ctx context.Context) error {
	_, err := _c.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_c *GradingEventCreate) ExecX(ctx context.Context) {
	if err := _c.Exec(ctx); err != nil {
		panic(err)
	}
}

// defaults sets the default values of the builder before save.
func (_c *GradingEventCreate) defaults() {
	if _, ok := _c.mutation.Timestamp(); !ok {
		v := gradingevent.DefaultTimestamp()
		_c.mutation.SetTimestamp(v)
	}
	if _, ok := _c.mutation.Verdict(); !ok {
		v := gradingevent.DefaultVerdict
		_c.mutation.SetVerdict(v)
	}
	if _, ok := _c.mutation.Score(); !ok {
		v := gradingevent.DefaultScore
		_c.mutation.SetScore(v)
	}
	if _, ok := _c.mutation.Source(); !ok {
		v := gradingevent.DefaultSource
		_c.mutation.SetSource(v)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_c *GradingEventCreate) check() error {
	if _, ok := _c.mutation.Sequence(); !ok {
		return &ValidationError{Name: "sequence", err: errors.New(`ent: missing required field "GradingEvent.sequence"`)}
	}
	if _, ok := _c.mutation.Timestamp(); !ok {
		return &ValidationError{Name: "timestamp", err: errors.New(`ent: missing required field "GradingEvent.timestamp"`)}
	}
	if _, ok := _c.mutation.AttemptID(); !ok {
		return &ValidationError{Name: "attempt_id", err: errors.New(`ent: missing required field "GradingEvent.attempt_id"`)}
	}
	if _, ok := _c.mutation.QuestionID(); !ok {
		return &ValidationError{Name: "question_id", err: errors.New(`ent: missing required field "GradingEvent.question_id"`)}
	}
	if _, ok := _c.mutation.Action(); !ok {
		return &ValidationError{Name: "action", err: errors.New(`ent: missing required field "GradingEvent.action"`)}
	}
	if _, ok := _c.mutation.Verdict(); !ok {
		return &ValidationError{Name: "verdict", err: errors.New(`ent: missing required field "GradingEvent.verdict"`)}
	}
	if _, ok := _c.mutation.Score(); !ok {
		return &ValidationError{Name: "score", err: errors.New(`ent: missing required field "GradingEvent.score"`)}
	}
	if _, ok := _c.mutation.Source(); !ok {
		return &ValidationError{Name: "source", err: errors.New(`ent: missing required field "GradingEvent.source"`)}
	}
	return nil
}

func (_c *GradingEventCreate) sqlSave(ctx context.Context) (*GradingEvent, error) {
	if err := _c.check(); err != nil {
		return nil, err
	}
	_node, _spec := _c.createSpec()
	if err := sqlgraph.CreateNode(ctx, _c.driver, _spec); err != nil {
		if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	id := _spec.ID.Value.(int64)
	_node.ID = int(id)
	_c.mutation.id = &_node.ID
	_c.mutation.done = true
	return _node, nil
}

func (_c *GradingEventCreate) createSpec() (*GradingEvent, *sqlgraph.CreateSpec) {
	var (
		_node = &GradingEvent{config: _c.config}
		_spec = sqlgraph.NewCreateSpec(gradingevent.Table, sqlgraph.NewFieldSpec(gradingevent.FieldID, field.TypeInt))
	)
	if value, ok := _c.mutation.Sequence(); ok {
		_spec.SetField(gradingevent.FieldSequence, field.TypeInt64, value)
		_node.Sequence = value
	}
	if value, ok := _c.mutation.Timestamp(); ok {
		_spec.SetField(gradingevent.FieldTimestamp, field.TypeTime, value)
		_node.Timestamp = value
	}
	if value, ok := _c.mutation.AttemptID(); ok {
		_spec.SetField(gradingevent.FieldAttemptID, field.TypeString, value)
		_node.AttemptID = value
	}
	if value, ok := _c.mutation.QuestionID(); ok {
		_spec.SetField(gradingevent.FieldQuestionID, field.TypeString, value)
		_node.QuestionID = value
	}
	if value, ok := _c.mutation.Action(); ok {
		_spec.SetField(gradingevent.FieldAction, field.TypeString, value)
		_node.Action = value
	}
	if value, ok := _c.mutation.Verdict(); ok {
		_spec.SetField(gradingevent.FieldVerdict, field.TypeString, value)
		_node.Verdict = value
	}
	if value, ok := _c.mutation.Score(); ok {
		_spec.SetField(gradingevent.FieldScore, field.TypeFloat64, value)
		_node.Score = value
	}
	if value, ok := _c.mutation.Source(); ok {
		_spec.SetField(gradingevent.FieldSource, field.TypeString, value)
		_node.Source = value
	}
	return _node, _spec
}

// GradingEventCreateBulk is the builder for creating many GradingEvent entities in bulk.
type GradingEventCreateBulk struct {
	config
	err      error
	builders []*GradingEventCreate
}

// Save creates the GradingEvent entities in the database.
func (_c *GradingEventCreateBulk) Save(ctx context.Context) ([]*GradingEvent, error) {
	if _c.err != nil {
		return nil, _c.err
	}
	specs := make([]*sqlgraph.CreateSpec, len(_c.builders))
	nodes := make([]*GradingEvent, len(_c.builders))
	mutators := make([]Mutator, len(_c.builders))
	for i := range _c.builders {
		func(i int, root context.Context) {
			builder := _c.builders[i]
			builder.defaults()
			var mut Mutator = MutateFunc(func(ctx context.Context, m Mutation) (Value, error) {
				mutation, ok := m.(*GradingEventMutation)
				if !ok {
					return nil, fmt.Errorf("unexpected mutation type %T", m)
				}
				if err := builder.check(); err != nil {
					return nil, err
				}
				builder.mutation = mutation
				var err error
				nodes[i], specs[i] = builder.createSpec()
				if i < len(mutators)-1 {
					_, err = mutators[i+1].Mutate(root, _c.builders[i+1].mutation)
				} else {
					spec := &sqlgraph.BatchCreateSpec{Nodes: specs}
					// Invoke the actual operation on the latest mutation in the chain.
					if err = sqlgraph.BatchCreate(ctx, _c.driver, spec); err != nil {
						if sqlgraph.IsConstraintError(err) {
							err = &ConstraintError{msg: err.Error(), wrap: err}
						}
					}
				}
				if err != nil {
					return nil, err
				}
				mutation.id = &nodes[i].ID
				if specs[i].ID.Value != nil {
					id := specs[i].ID.Value.(int64)
					nodes[i].ID = int(id)
				}
				mutation.done = true
				return nodes[i], nil
			})
			for i := len(builder.hooks) - 1; i >= 0; i-- {
				mut = builder.hooks[i](mut)
			}
			mutators[i] = mut
		}(i, ctx)
	}
	if len(mutators) > 0 {
		if _, err := mutators[0].Mutate(ctx, _c.builders[0].mutation); err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

// SaveX is like Save, but panics if an error occurs.
func (_c *GradingEventCreateBulk) SaveX(ctx context.Context) []*GradingEvent {
	v, err := _c.Save(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Exec executes the query.
func (_c *GradingEventCreateBulk) Exec(ctx context.Context) error {
	_, err := _c.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_c *GradingEventCreateBulk) ExecX(ctx context.Context) {
	if err := _c.Exec(ctx); err != nil {
		panic(err)
	}
}
