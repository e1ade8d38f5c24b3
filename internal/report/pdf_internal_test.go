package report

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlicePoints(t *testing.T) {
	pts := slicePoints(100, 100, 10, 0, 0, 90)
	assert.Equal(t, 100.0, pts[0].X)
	assert.Equal(t, 100.0, pts[0].Y)
	assert.InDelta(t, 110, pts[1].X, 1e-9)
	assert.InDelta(t, 100, pts[1].Y, 1e-9)
	last := pts[len(pts)-1]
	assert.InDelta(t, 100, last.X, 1e-9)
	assert.InDelta(t, 90, last.Y, 1e-9, "counterclockwise is up on the page")
}

func TestSlicePointsExploded(t *testing.T) {
	pts := slicePoints(0, 0, 10, 1, 0, 180)
	assert.InDelta(t, 0, pts[0].X, 1e-9)
	assert.InDelta(t, -1, pts[0].Y, 1e-9)
}

func TestSlicePointsFullCircle(t *testing.T) {
	pts := slicePoints(0, 0, 10, 0, 0, 360)
	for _, p := range pts {
		assert.InDelta(t, 10, math.Hypot(p.X, p.Y), 1e-9, "no centre point on a full disc")
	}
}

func TestHexColor(t *testing.T) {
	r, g, b := hexColor("#ff9999")
	assert.Equal(t, [3]int{255, 153, 153}, [3]int{r, g, b})
	r, g, b = hexColor("#66b3ff")
	assert.Equal(t, [3]int{102, 179, 255}, [3]int{r, g, b})
	r, g, b = hexColor("nope")
	assert.Equal(t, [3]int{128, 128, 128}, [3]int{r, g, b})
}
