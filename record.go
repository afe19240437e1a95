package gatelog

import (
	"fmt"
	"strconv"
	"time"
)

// Location is the source position of a log call. It is always complete: a
// record either carries a Location with all three fields set or none at all.
type Location struct {
	File     string
	Line     int
	Function string
}

func (l Location) String() string {
	return l.File + ":" + strconv.Itoa(l.Line) + "(" + l.Function + ")"
}

// Record is the event handed to sinks for one active log call. It is owned by
// the dispatching Core and only borrowed by PublishFunc; Args in particular
// may alias the caller's variadic slice and must not be retained.
type Record struct {
	// Location is nil unless location capture is enabled.
	Location *Location
	Time     time.Time
	Category *Category
	Level    Level
	Format   string
	Args     []any
}

// Message formats the record's message. A record without arguments returns
// Format verbatim, so a literal '%' needs no escaping.
func (r *Record) Message() string {
	if len(r.Args) == 0 {
		return r.Format
	}
	return fmt.Sprintf(r.Format, r.Args...)
}

// AppendMessage appends the formatted message to dst.
func (r *Record) AppendMessage(dst []byte) []byte {
	if len(r.Args) == 0 {
		return append(dst, r.Format...)
	}
	return fmt.Appendf(dst, r.Format, r.Args...)
}

// CategoryName returns the record's category name, or "" for a record built
// without one.
func (r *Record) CategoryName() string {
	if r.Category == nil {
		return ""
	}
	return r.Category.name
}

// Lazy defers the computation of an argument until a sink formats the
// message. Calls filtered out by a category or sink gate, or compiled out,
// never invoke fn.
//
//	core.Debug(net, "routing table: %v", gatelog.Lazy(func() any { return dumpRoutes() }))
func Lazy(fn func() any) fmt.Formatter {
	return lazyArg(fn)
}

type lazyArg func() any

func (fn lazyArg) Format(f fmt.State, verb rune) {
	var value any
	if fn != nil {
		value = fn()
	}
	fmt.Fprintf(f, fmt.FormatString(f, verb), value)
}
