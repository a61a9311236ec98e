package calc

// Option is an option for tokenizing and evaluating.
type Option interface {
	option(config) config
}

type (
	namesopt bool
	treeopt  bool
)

// config holds the settings collected from a list of options.
type config struct {
	// nonames disables the names sin, cos, tan, and pi in the tokenizer.
	nonames bool
	// tree selects tree evaluation in Calculate.
	tree bool
}

// DisableNames disables the function names sin, cos, and tan and the constant
// name pi. With names disabled, every letter other than x or X is an unknown
// character. π is still recognized.
func DisableNames() Option {
	return namesopt(true)
}

func (o namesopt) option(c config) config {
	c.nonames = bool(o)
	return c
}

// UseTree tells Calculate to build and evaluate an expression tree instead of
// evaluating the postfix sequence directly. It has no effect on equations.
func UseTree() Option {
	return treeopt(true)
}

func (o treeopt) option(c config) config {
	c.tree = bool(o)
	return c
}

func configure(opts []Option) config {
	var c config
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		c = opt.option(c)
	}
	return c
}
