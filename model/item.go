package model

// Destructor releases every resource owned by a cached value.
// The cache calls it exactly once per added value: on eviction, replacement, Del, Clear or Close.
type Destructor[V any] func(value V)

// Disposer is implemented by values which know how to release themselves.
// It is used when Add receives a nil Destructor.
type Disposer interface {
	Dispose()
}

// DestructorFor returns destroy if set, Dispose for Disposer values, or nil when the value
// owns nothing but memory.
func DestructorFor[V any](value V, destroy Destructor[V]) Destructor[V] {
	if destroy != nil {
		return destroy
	}
	if _, ok := any(value).(Disposer); ok {
		return func(v V) { any(v).(Disposer).Dispose() }
	}
	return nil
}

// Compute builds a value on a cache miss together with its cost and destructor.
// When it returns an error nothing is cached and the value is ignored.
type Compute[V any] func() (value V, cost int64, destroy Destructor[V], err error)
