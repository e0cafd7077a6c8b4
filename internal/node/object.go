package node

// Object is the dynamic property bag the engines decompose and
// recompose. Member names keep their insertion order, which is the
// order they are visited and serialized in.
//
// Object implements Value, so objects nest freely inside lists, maps,
// and other objects.
type Object struct {
	names []string
	props map[string]Value

	// totalChildren is a hint set during recomposition: the number of
	// detached descendants recorded in the root record's closure
	// manifest. Consumed by callers for progress/completeness tracking.
	totalChildren int
}

func (*Object) value() {}

// NewObject creates an empty object.
func NewObject() *Object {
	return &Object{props: make(map[string]Value)}
}

// MemberNames returns the property names in insertion order. The
// returned slice is owned by the object and must not be mutated.
func (o *Object) MemberNames() []string {
	if o == nil {
		return nil
	}
	return o.names
}

// Len returns the number of properties.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.names)
}

// Get returns the named property's value and whether it is present.
func (o *Object) Get(name string) (Value, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.props[name]
	return v, ok
}

// Set stores an arbitrary Go value under name, resolving it into the
// value union via FromGo. New names are appended; existing names keep
// their position.
func (o *Object) Set(name string, v any) {
	o.SetValue(name, FromGo(v))
}

// SetValue stores an already-resolved value under name.
func (o *Object) SetValue(name string, v Value) {
	if _, ok := o.props[name]; !ok {
		o.names = append(o.names, name)
	}
	o.props[name] = v
}

// String returns the named property as a string. The second result is
// false if the property is absent or not a string.
func (o *Object) String(name string) (string, bool) {
	v, ok := o.Get(name)
	if !ok {
		return "", false
	}
	s, ok := v.(String)
	return string(s), ok
}

// Int64 returns the named property as an int64.
func (o *Object) Int64(name string) (int64, bool) {
	v, ok := o.Get(name)
	if !ok {
		return 0, false
	}
	n, ok := v.(Int)
	return int64(n), ok
}

// Float64 returns the named property as a float64.
func (o *Object) Float64(name string) (float64, bool) {
	v, ok := o.Get(name)
	if !ok {
		return 0, false
	}
	f, ok := v.(Float)
	return float64(f), ok
}

// Bool returns the named property as a bool.
func (o *Object) Bool(name string) (bool, bool) {
	v, ok := o.Get(name)
	if !ok {
		return false, false
	}
	b, ok := v.(Bool)
	return bool(b), ok
}

// Object returns the named property as a nested object.
func (o *Object) Object(name string) (*Object, bool) {
	v, ok := o.Get(name)
	if !ok {
		return nil, false
	}
	child, ok := v.(*Object)
	return child, ok
}

// TotalChildren returns the detached-descendant count hint recorded by
// recomposition, or zero if the object was not recomposed from a record
// carrying a closure manifest.
func (o *Object) TotalChildren() int {
	return o.totalChildren
}

// SetTotalChildren records the detached-descendant count hint.
func (o *Object) SetTotalChildren(n int) {
	o.totalChildren = n
}
