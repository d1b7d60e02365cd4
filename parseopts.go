package calc

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

// parsectx holds the settings for a single parse.
type parsectx struct {
	// maxdepth is the maximum nesting of parentheses and negations, or 0 for
	// no limit.
	maxdepth int
}

type depthopt int

// MaxDepth limits the nesting depth of parentheses and unary negations. Each
// ( and each unary - opens one level. Input nested more deeply fails to parse
// with a *DepthError. A limit of zero or less removes any limit, which is the
// default. Parsing and evaluation recurse once per level.
func MaxDepth(n int) ParseOption {
	if n < 0 {
		n = 0
	}
	return depthopt(n)
}

func (o depthopt) parseOption(p parsectx) parsectx {
	p.maxdepth = int(o)
	return p
}
