package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateSplitsFixedAndFill(t *testing.T) {
	spec := Split(Horizontal, Fixed(0),
		Leaf("left", Fixed(20)),
		Leaf("right", FillWeight(1)),
	)
	rects := Evaluate(spec, Rect{X: 0, Y: 0, Width: 100, Height: 10})

	assert.Equal(t, Rect{X: 0, Y: 0, Width: 20, Height: 10}, rects["left"])
	assert.Equal(t, Rect{X: 20, Y: 0, Width: 80, Height: 10}, rects["right"])
}

func TestEvaluateNestsSubSpecs(t *testing.T) {
	spec := Split(Vertical, Fixed(0),
		Leaf("top", Fixed(3)),
		Split(Horizontal, FillWeight(1),
			Leaf("bottom-left", Percent(50)),
			Leaf("bottom-right", Percent(50)),
		),
	)
	rects := Evaluate(spec, Rect{X: 0, Y: 0, Width: 40, Height: 20})

	assert.Equal(t, Rect{X: 0, Y: 0, Width: 40, Height: 3}, rects["top"])
	assert.Equal(t, Rect{X: 0, Y: 3, Width: 20, Height: 17}, rects["bottom-left"])
	assert.Equal(t, Rect{X: 20, Y: 3, Width: 20, Height: 17}, rects["bottom-right"])
}

func TestEvaluateDistributesFillWeightsProportionally(t *testing.T) {
	spec := Split(Horizontal, Fixed(0),
		Leaf("a", FillWeight(1)),
		Leaf("b", FillWeight(3)),
	)
	rects := Evaluate(spec, Rect{X: 0, Y: 0, Width: 100, Height: 1})

	assert.Equal(t, 25, rects["a"].Width)
	assert.Equal(t, 75, rects["b"].Width)
}

func TestEvaluateFillAbsorbsRoundingRemainder(t *testing.T) {
	spec := Split(Horizontal, Fixed(0),
		Leaf("a", Fixed(1)),
		Leaf("b", FillWeight(1)),
	)
	rects := Evaluate(spec, Rect{X: 0, Y: 0, Width: 10, Height: 1})

	assert.Equal(t, 1, rects["a"].Width)
	assert.Equal(t, 9, rects["b"].Width)
	assert.Equal(t, 10, rects["a"].Width+rects["b"].Width)
}
