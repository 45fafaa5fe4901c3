package domain

// Observed holds a value and runs its hooks, in registration order, after
// every Set.
type Observed[T any] struct {
	value T
	hooks []func(T)
}

func NewObserved[T any](initial T) *Observed[T] {
	return &Observed[T]{value: initial}
}

func (o *Observed[T]) Get() T {
	return o.value
}

func (o *Observed[T]) Set(v T) {
	o.value = v
	for _, hook := range o.hooks {
		hook(v)
	}
}

func (o *Observed[T]) OnChange(hook func(T)) {
	o.hooks = append(o.hooks, hook)
}
