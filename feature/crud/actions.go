package crud

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// ErrNotFound is returned by read operations when no row matches.
// It satisfies errors.Is against gorm.ErrRecordNotFound.
var ErrNotFound = fmt.Errorf("record not found: %w", gorm.ErrRecordNotFound)

// createBatchSize caps the rows per INSERT in CreateMany.
const createBatchSize = 500

// Actions provides generic CRUD operations for the model type T.
type Actions[T any] struct {
	db     *gorm.DB
	logger *zap.Logger
}

// New creates CRUD actions for T on the given connection.
// A nil logger is replaced with a no-op logger.
func New[T any](db *gorm.DB, logger *zap.Logger) *Actions[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Actions[T]{db: db, logger: logger}
}

// GetByKey fetches a single entity by primary key.
func (a *Actions[T]) GetByKey(ctx context.Context, key any, opts ...QueryOption) (*T, error) {
	column, err := a.primaryColumn()
	if err != nil {
		return nil, err
	}
	opts = append(opts, WithWhere(fmt.Sprintf("%s = ?", column), key))
	return a.First(ctx, opts...)
}

// First fetches the first entity matching the applied options.
func (a *Actions[T]) First(ctx context.Context, opts ...QueryOption) (*T, error) {
	cfg := newQueryConfig(opts)

	var out *T
	err := a.runRead(ctx, cfg, func(tx *gorm.DB) error {
		row := new(T)
		if err := tx.First(row).Error; err != nil {
			return err
		}
		out = row
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

// GetAll fetches every entity matching the applied options.
func (a *Actions[T]) GetAll(ctx context.Context, opts ...QueryOption) ([]T, error) {
	cfg := newQueryConfig(opts)

	var out []T
	err := a.runRead(ctx, cfg, func(tx *gorm.DB) error {
		var rows []T
		if err := tx.Find(&rows).Error; err != nil {
			return err
		}
		out = rows
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of entities matching the applied options.
func (a *Actions[T]) Count(ctx context.Context, opts ...QueryOption) (int64, error) {
	cfg := newQueryConfig(opts)

	var n int64
	if err := a.prepare(ctx, cfg).Model(new(T)).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// Exists reports whether any entity matches the applied options.
// It issues a LIMIT 1 probe rather than a full count.
func (a *Actions[T]) Exists(ctx context.Context, opts ...QueryOption) (bool, error) {
	cfg := newQueryConfig(opts)

	var rows []map[string]any
	res := a.prepare(ctx, cfg).Model(new(T)).Select("1 AS one").Limit(1).Find(&rows)
	if res.Error != nil {
		return false, res.Error
	}
	return len(rows) > 0, nil
}

// Create inserts a single entity.
func (a *Actions[T]) Create(ctx context.Context, entity *T) error {
	if entity == nil {
		return errors.New("cannot create nil entity")
	}
	return a.db.WithContext(ctx).Create(entity).Error
}

// CreateMany inserts entities in batches. An empty slice is a no-op.
func (a *Actions[T]) CreateMany(ctx context.Context, entities []T) error {
	if len(entities) == 0 {
		return nil
	}
	return a.db.WithContext(ctx).CreateInBatches(&entities, createBatchSize).Error
}

// Update saves all fields of the entity.
func (a *Actions[T]) Update(ctx context.Context, entity *T) error {
	if entity == nil {
		return errors.New("cannot update nil entity")
	}
	return a.db.WithContext(ctx).Save(entity).Error
}

// UpdateMany saves all fields of every entity inside a single transaction.
// An empty slice is a no-op.
func (a *Actions[T]) UpdateMany(ctx context.Context, entities []T) error {
	if len(entities) == 0 {
		return nil
	}
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range entities {
			if err := tx.Save(&entities[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a single entity (soft delete when the model supports it).
func (a *Actions[T]) Delete(ctx context.Context, entity *T) error {
	if entity == nil {
		return errors.New("cannot delete nil entity")
	}
	return a.db.WithContext(ctx).Delete(entity).Error
}

// DeleteByKey removes the entity with the given primary key.
// Returns ErrNotFound when no row was deleted.
func (a *Actions[T]) DeleteByKey(ctx context.Context, key any) error {
	column, err := a.primaryColumn()
	if err != nil {
		return err
	}
	res := a.db.WithContext(ctx).Where(fmt.Sprintf("%s = ?", column), key).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMany removes the given entities by primary key. Empty slice is a no-op.
func (a *Actions[T]) DeleteMany(ctx context.Context, entities []T) error {
	if len(entities) == 0 {
		return nil
	}
	return a.db.WithContext(ctx).Delete(&entities).Error
}

// DeleteWhere removes every entity matching the condition and returns the
// number of affected rows.
func (a *Actions[T]) DeleteWhere(ctx context.Context, query any, args ...any) (int64, error) {
	res := a.db.WithContext(ctx).Where(query, args...).Delete(new(T))
	return res.RowsAffected, res.Error
}

// Transaction runs fn inside a database transaction. The Actions passed to
// fn operates on the transaction connection; returning an error rolls back.
func (a *Actions[T]) Transaction(ctx context.Context, fn func(tx *Actions[T]) error) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Actions[T]{db: tx, logger: a.logger})
	})
}

// prepare applies context and the non-preload parts of the query config.
func (a *Actions[T]) prepare(ctx context.Context, cfg queryConfig) *gorm.DB {
	tx := a.db.WithContext(ctx)
	if cfg.withDeleted {
		tx = tx.Unscoped()
	}
	for _, cond := range cfg.conds {
		tx = tx.Where(cond.query, cond.args...)
	}
	for _, order := range cfg.orders {
		tx = tx.Order(order)
	}
	if cfg.limit > 0 {
		tx = tx.Limit(cfg.limit)
	}
	if cfg.offset > 0 {
		tx = tx.Offset(cfg.offset)
	}
	return tx
}

// runRead executes exec with preloading applied according to the model's
// association graph verdict. When a full-graph preload fails at runtime the
// query is retried once with one-level preloads and the model type is
// permanently switched to the shallow strategy.
func (a *Actions[T]) runRead(ctx context.Context, cfg queryConfig, exec func(tx *gorm.DB) error) error {
	if !cfg.fullGraph {
		return exec(a.prepare(ctx, cfg))
	}

	info, err := analyzeGraph[T](a.namer())
	if err != nil {
		return fmt.Errorf("analyzing association graph: %w", err)
	}

	if info.cyclic {
		return exec(a.prepare(ctx, cfg).Preload(clause.Associations))
	}

	tx := a.prepare(ctx, cfg)
	for _, path := range info.preloads {
		tx = tx.Preload(path)
	}

	execErr := exec(tx)
	if execErr == nil || errors.Is(execErr, gorm.ErrRecordNotFound) {
		return execErr
	}

	// The static pass cannot predict every preload failure (custom join
	// setups, polymorphic relations). Fall back to one level and remember.
	markCyclic[T]()
	a.logger.Warn("full graph preload failed, retrying with shallow preload",
		zap.String("model", fmt.Sprintf("%T", *new(T))),
		zap.Error(execErr))

	if retryErr := exec(a.prepare(ctx, cfg).Preload(clause.Associations)); retryErr != nil {
		a.logger.Error("shallow preload retry failed",
			zap.NamedError("first_error", execErr),
			zap.Error(retryErr))
		return retryErr
	}
	return nil
}

// primaryColumn resolves the model's prioritized primary key column name.
func (a *Actions[T]) primaryColumn() (string, error) {
	s, err := schema.Parse(new(T), &parsedSchemas, a.namer())
	if err != nil {
		return "", fmt.Errorf("parsing model schema: %w", err)
	}
	if s.PrioritizedPrimaryField == nil {
		return "", fmt.Errorf("model %s has no primary key", s.Name)
	}
	return s.PrioritizedPrimaryField.DBName, nil
}

func (a *Actions[T]) namer() schema.Namer {
	if a.db.Config != nil && a.db.Config.NamingStrategy != nil {
		return a.db.Config.NamingStrategy
	}
	return schema.NamingStrategy{}
}
