package validation

// Check validates one value.
type Check[T any] func(T) Result[T]

// Pipeline runs checks in order and stops at the first Failure.
type Pipeline[T any] struct {
	checks []Check[T]
}

func NewPipeline[T any](checks ...Check[T]) Pipeline[T] {
	return Pipeline[T]{checks: append([]Check[T](nil), checks...)}
}

// Then returns a new pipeline with checks appended.
func (p Pipeline[T]) Then(checks ...Check[T]) Pipeline[T] {
	all := make([]Check[T], 0, len(p.checks)+len(checks))
	all = append(all, p.checks...)
	all = append(all, checks...)
	return Pipeline[T]{checks: all}
}

// Compose runs p then q.
func (p Pipeline[T]) Compose(q Pipeline[T]) Pipeline[T] {
	return p.Then(q.checks...)
}

func (p Pipeline[T]) Len() int {
	return len(p.checks)
}

func (p Pipeline[T]) Run(value T) Result[T] {
	r := Success(value)
	for _, check := range p.checks {
		r = r.AndThen(check)
		if r.IsFailure() {
			return r
		}
	}
	return r
}

// Check turns the pipeline into a single check, so pipelines nest.
func (p Pipeline[T]) Check() Check[T] {
	return p.Run
}

// Rule builds a check from a predicate. A non-nil error fails with "name: err".
func Rule[T any](name string, predicate func(T) error) Check[T] {
	return func(value T) Result[T] {
		if err := predicate(value); err != nil {
			return Failure[T](name + ": " + err.Error())
		}
		return Success(value)
	}
}
