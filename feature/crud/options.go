package crud

// condition is one Where fragment with its bind arguments.
type condition struct {
	query any
	args  []any
}

// queryConfig collects the effect of the applied QueryOptions.
type queryConfig struct {
	fullGraph   bool
	limit       int
	offset      int
	orders      []string
	withDeleted bool
	conds       []condition
}

// QueryOption customizes a single read operation.
type QueryOption func(*queryConfig)

// WithFullGraph preloads the model's association graph. Acyclic graphs are
// loaded to full depth; graphs with navigation loops are loaded one level.
func WithFullGraph() QueryOption {
	return func(c *queryConfig) { c.fullGraph = true }
}

// WithPaging limits the result set to limit rows starting at offset.
// A limit of 0 means no limit; a negative offset is treated as 0.
// Pages are only deterministic when combined with WithOrder.
func WithPaging(limit, offset int) QueryOption {
	return func(c *queryConfig) {
		c.limit = limit
		if offset < 0 {
			offset = 0
		}
		c.offset = offset
	}
}

// WithOrder appends an ORDER BY expression, e.g. "created_at DESC".
func WithOrder(expr string) QueryOption {
	return func(c *queryConfig) { c.orders = append(c.orders, expr) }
}

// WithDeleted bypasses the soft-delete scope so soft-deleted rows are
// included. Models without a gorm.DeletedAt field are unaffected.
func WithDeleted() QueryOption {
	return func(c *queryConfig) { c.withDeleted = true }
}

// WithWhere appends a filter condition in GORM's Where syntax.
func WithWhere(query any, args ...any) QueryOption {
	return func(c *queryConfig) {
		c.conds = append(c.conds, condition{query: query, args: args})
	}
}

func newQueryConfig(opts []QueryOption) queryConfig {
	var c queryConfig
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
