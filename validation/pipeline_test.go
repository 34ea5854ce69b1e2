package validation

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func recorder(name string, trace *[]string, fail bool) Check[int] {
	return func(v int) Result[int] {
		*trace = append(*trace, name)
		if fail {
			return Failure[int](name + " failed")
		}
		return Success(v)
	}
}

func TestPipelineRunsInOrder(t *testing.T) {
	var trace []string
	p := NewPipeline(recorder("a", &trace, false), recorder("b", &trace, false), recorder("c", &trace, false))

	r := p.Run(1)
	assert.Equal(t, Success(1), r)
	assert.Equal(t, []string{"a", "b", "c"}, trace)
}

func TestPipelineShortCircuits(t *testing.T) {
	var trace []string
	p := NewPipeline(recorder("a", &trace, false), recorder("b", &trace, true), recorder("c", &trace, true))

	r := p.Run(1)
	assert.Equal(t, []string{"b failed"}, r.Messages())
	assert.Equal(t, []string{"a", "b"}, trace)
}

func TestEmptyPipelineSucceeds(t *testing.T) {
	assert.Equal(t, Success("x"), NewPipeline[string]().Run("x"))
}

func TestComposeIsAssociative(t *testing.T) {
	var left, right []string
	build := func(trace *[]string) (Pipeline[int], Pipeline[int], Pipeline[int]) {
		return NewPipeline(recorder("a", trace, false)),
			NewPipeline(recorder("b", trace, true)),
			NewPipeline(recorder("c", trace, false))
	}

	a, b, c := build(&left)
	r1 := a.Compose(b).Compose(c).Run(0)
	a, b, c = build(&right)
	r2 := a.Compose(b.Compose(c)).Run(0)

	assert.Equal(t, r1, r2)
	assert.Equal(t, left, right)
}

func TestThenDoesNotMutate(t *testing.T) {
	var trace []string
	base := NewPipeline(recorder("a", &trace, false))
	extended := base.Then(recorder("b", &trace, true))

	assert.Equal(t, 1, base.Len())
	assert.Equal(t, 2, extended.Len())
	assert.True(t, base.Run(0).IsSuccess())
	assert.True(t, extended.Run(0).IsFailure())
}

func TestNestedPipeline(t *testing.T) {
	var trace []string
	inner := NewPipeline(recorder("inner", &trace, true))
	outer := NewPipeline(inner.Check(), recorder("after", &trace, false))

	assert.Equal(t, []string{"inner failed"}, outer.Run(0).Messages())
	assert.Equal(t, []string{"inner"}, trace)
}

func TestRule(t *testing.T) {
	positive := Rule("not positive", func(v int) error {
		if v <= 0 {
			return errors.Errorf("%d <= 0", v)
		}
		return nil
	})
	assert.True(t, positive(3).IsSuccess())
	assert.Equal(t, []string{"not positive: -1 <= 0"}, positive(-1).Messages())
}
