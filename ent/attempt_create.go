// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/abhisek/soloquiz/ent/attempt"
)

// AttemptCreate is the builder for creating a Attempt entity.
type AttemptCreate struct {
	config
	mutation *AttemptMutation
	hooks    []Hook
}

// SetAttemptID sets the "attempt_id" field.
func (_c *AttemptCreate) SetAttemptID(v string) *AttemptCreate {
	_c.mutation.SetAttemptID(v)
	return _c
}

// SetFingerprintKey sets the "fingerprint_key" field.
func (_c *AttemptCreate) SetFingerprintKey(v string) *AttemptCreate {
	_c.mutation.SetFingerprintKey(v)
	return _c
}

// SetTitle sets the "title" field.
func (_c *AttemptCreate) SetTitle(v string) *AttemptCreate {
	_c.mutation.SetTitle(v)
	return _c
}

// SetQuestionCount sets the "question_count" field.
func (_c *AttemptCreate) SetQuestionCount(v int) *AttemptCreate {
	_c.mutation.SetQuestionCount(v)
	return _c
}

// SetSummary sets the "summary" field.
func (_c *AttemptCreate) SetSummary(v map[string]interface{}) *AttemptCreate {
	_c.mutation.SetSummary(v)
	return _c
}

// SetStartedAt sets the "started_at" field.
func (_c *AttemptCreate) SetStartedAt(v time.Time) *AttemptCreate {
	_c.mutation.SetStartedAt(v)
	return _c
}

// SetCompletedAt sets the "completed_at" field.
func (_c *AttemptCreate) SetCompletedAt(v time.Time) *AttemptCreate {
	_c.mutation.SetCompletedAt(v)
	return _c
}

// SetNillableCompletedAt sets the "completed_at" field if the given value is not nil.
func (_c *AttemptCreate) SetNillableCompletedAt(v *time.Time) *AttemptCreate {
	if v != nil {
		_c.SetCompletedAt(*v)
	}
	return _c
}

// SetPercentage sets the "percentage" field.
func (_c *AttemptCreate) SetPercentage(v float64) *AttemptCreate {
	_c.mutation.SetPercentage(v)
	return _c
}

// SetNillablePercentage sets the "percentage" field if the given value is not nil.
func (_c *AttemptCreate) SetNillablePercentage(v *float64) *AttemptCreate {
	if v != nil {
		_c.SetPercentage(*v)
	}
	return _c
}

// SetPendingCount sets the "pending_count" field.
func (_c *AttemptCreate) SetPendingCount(v int) *AttemptCreate {
	_c.mutation.SetPendingCount(v)
	return _c
}

// SetNillablePendingCount sets the "pending_count" field if the given value is not nil.
func (_c *AttemptCreate) SetNillablePendingCount(v *int) *AttemptCreate {
	if v != nil {
		_c.SetPendingCount(*v)
	}
	return _c
}

// SetAutoSubmitted sets the "auto_submitted" field.
func (_c *AttemptCreate) SetAutoSubmitted(v bool) *AttemptCreate {
	_c.mutation.SetAutoSubmitted(v)
	return _c
}

// SetNillableAutoSubmitted sets the "auto_submitted" field if the given value is not nil.
func (_c *AttemptCreate) SetNillableAutoSubmitted(v *bool) *AttemptCreate {
	if v != nil {
		_c.SetAutoSubmitted(*v)
	}
	return _c
}

// Mutation returns the AttemptMutation object of the builder.
func (_c *AttemptCreate) Mutation() *AttemptMutation {
	return _c.mutation
}

// Save creates the Attempt in the database.
func (_c *AttemptCreate) Save(ctx context.Context) (*Attempt, error) {
	_c.defaults()
	return withHooks(ctx, _c.sqlSave, _c.mutation, _c.hooks)
}

// SaveX calls Save and panics if Save returns an error.
func (_c *AttemptCreate) SaveX(ctx context.Context) *Attempt {
	v, err := _c.Save(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Exec executes the query.
func (_c *AttemptCreate) Exec(ctx context.Context) error {
	_, err := _c.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_c *AttemptCreate) ExecX(ctx context.Context) {
	if err := _c.Exec(ctx); err != nil {
		panic(err)
	}
}

// defaults sets the default values of the builder before save.
func (_c *AttemptCreate) defaults() {
	if _, ok := _c.mutation.CompletedAt(); !ok {
		v := attempt.DefaultCompletedAt()
		_c.mutation.SetCompletedAt(v)
	}
	if _, ok := _c.mutation.Percentage(); !ok {
		v := attempt.DefaultPercentage
		_c.mutation.SetPercentage(v)
	}
	if _, ok := _c.mutation.PendingCount(); !ok {
		v := attempt.DefaultPendingCount
		_c.mutation.SetPendingCount(v)
	}
	if _, ok := _c.mutation.AutoSubmitted(); !ok {
		v := attempt.DefaultAutoSubmitted
		_c.mutation.SetAutoSubmitted(v)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_c *AttemptCreate) check() error {
	if _, ok := _c.mutation.AttemptID(); !ok {
		return &ValidationError{Name: "attempt_id", err: errors.New(`ent: missing required field "Attempt.attempt_id"`)}
	}
	if _, ok := _c.mutation.FingerprintKey(); !ok {
		return &ValidationError{Name: "fingerprint_key", err: errors.New(`ent: missing required field "Attempt.fingerprint_key"`)}
	}
	if _, ok := _c.mutation.Title(); !ok {
		return &ValidationError{Name: "title", err: errors.New(`ent: missing required field "Attempt.title"`)}
	}
	if _, ok := _c.mutation.QuestionCount(); !ok {
		return &ValidationError{Name: "question_count", err: errors.New(`ent: missing required field "Attempt.question_count"`)}
	}
	if _, ok := _c.mutation.Summary(); !ok {
		return &ValidationError{Name: "summary", err: errors.New(`ent: missing required field "Attempt.summary"`)}
	}
	if _, ok := _c.mutation.StartedAt(); !ok {
		return &ValidationError{Name: "started_at", err: errors.New(`ent: missing required field "Attempt.started_at"`)}
	}
	if _, ok := _c.mutation.CompletedAt(); !ok {
		return &ValidationError{Name: "completed_at", err: errors.New(`ent: missing required field "Attempt.completed_at"`)}
	}
	if _, ok := _c.mutation.Percentage(); !ok {
		return &ValidationError{Name: "percentage", err: errors.New(`ent: missing required field "Attempt.percentage"`)}
	}
	if _, ok := _c.mutation.PendingCount(); !ok {
		return &ValidationError{Name: "pending_count", err: errors.New(`ent: missing required field "Attempt.pending_count"`)}
	}
	if _, ok := _c.mutation.AutoSubmitted(); !ok {
		return &ValidationError{Name: "auto_submitted", err: errors.New(`ent: missing required field "Attempt.auto_submitted"`)}
	}
	return nil
}

func (_c *AttemptCreate) sqlSave(ctx context.Context) (*Attempt, error) {
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

func (_c *AttemptCreate) createSpec() (*Attempt, *sqlgraph.CreateSpec) {
	var (
		_node = &Attempt{config: _c.config}
		_spec = sqlgraph.NewCreateSpec(attempt.Table, sqlgraph.NewFieldSpec(attempt.FieldID, field.TypeInt))
	)
	if value, ok := _c.mutation.AttemptID(); ok {
		_spec.SetField(attempt.FieldAttemptID, field.TypeString, value)
		_node.AttemptID = value
	}
	if value, ok := _c.mutation.FingerprintKey(); ok {
		_spec.SetField(attempt.FieldFingerprintKey, field.TypeString, value)
		_node.FingerprintKey = value
	}
	if value, ok := _c.mutation.Title(); ok {
		_spec.SetField(attempt.FieldTitle, field.TypeString, value)
		_node.Title = value
	}
	if value, ok := _c.mutation.QuestionCount(); ok {
		_spec.SetField(attempt.FieldQuestionCount, field.TypeInt, value)
		_node.QuestionCount = value
	}
	if value, ok := _c.mutation.Summary(); ok {
		_spec.SetField(attempt.FieldSummary, field.TypeJSON, value)
		_node.Summary = value
	}
	if value, ok := _c.mutation.StartedAt(); ok {
		_spec.SetField(attempt.FieldStartedAt, field.TypeTime, value)
		_node.StartedAt = value
	}
	if value, ok := _c.mutation.CompletedAt(); ok {
		_spec.SetField(attempt.FieldCompletedAt, field.TypeTime, value)
		_node.CompletedAt = value
	}
	if value, ok := _c.mutation.Percentage(); ok {
		_spec.SetField(attempt.FieldPercentage, field.TypeFloat64, value)
		_node.Percentage = value
	}
	if value, ok := _c.mutation.PendingCount(); ok {
		_spec.SetField(attempt.FieldPendingCount, field.TypeInt, value)
		_node.PendingCount = value
	}
	if value, ok := _c.mutation.AutoSubmitted(); ok {
		_spec.SetField(attempt.FieldAutoSubmitted, field.TypeBool, value)
		_node.AutoSubmitted = value
	}
	return _node, _spec
}

// AttemptCreateBulk is the builder for creating many Attempt entities in bulk.
type AttemptCreateBulk struct {
	config
	err      error
	builders []*AttemptCreate
}

// Save creates the Attempt entities in the database.
func (_c *AttemptCreateBulk) Save(ctx context.Context) ([]*Attempt, error) {
	if _c.err != nil {
		return nil, _c.err
	}
	specs := make([]*sqlgraph.CreateSpec, len(_c.builders))
	nodes := make([]*Attempt, len(_c.builders))
	mutators := make([]Mutator, len(_c.builders))
	for i := range _c.builders {
		func(i int, root context.Context) {
			builder := _c.builders[i]
			builder.defaults()
			var mut Mutator = MutateFunc(func(ctx context.Context, m Mutation) (Value, error) {
				mutation, ok := m.(*AttemptMutation)
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
func (_c *AttemptCreateBulk) SaveX(ctx context.Context) []*Attempt {
	v, err := _c.Save(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Exec executes the query.
func (_c *AttemptCreateBulk) Exec(ctx context.Context) error {
	_, err := _c.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_c *AttemptCreateBulk) ExecX(ctx context.Context) {
	if err := _c.Exec(ctx); err != nil {
		panic(err)
	}
}
