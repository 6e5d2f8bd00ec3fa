package guidance

import (
	"math"

	"github.com/lintang-b-s/roadfinder/pkg"
	da "github.com/lintang-b-s/roadfinder/pkg/datastructure"
	"github.com/lintang-b-s/roadfinder/pkg/util"
)

const (
	forwardThreshold  = 12.0  // degrees
	backwardThreshold = 165.0 // degrees
)

// computeBearing. bearing of the move from -> to in degrees, clockwise from north.
// north is row-1 and east is col+1, so (-1,0) -> 0°, (0,1) -> 90°, (1,0) -> 180°, (0,-1) -> 270°.
func computeBearing(from, to da.GridCell) float64 {
	dRow := float64(to.Row - from.Row)
	dCol := float64(to.Col - from.Col)
	bearing := util.RadiansToDegree(math.Atan2(dCol, -dRow))
	return math.Mod(bearing+360, 360)
}

// computeDeltaBearing. signed change from prevBearing to bearing in degrees, in [-180, 180].
// negative is a counter clockwise (left) change.
func computeDeltaBearing(prevBearing, bearing float64) float64 {
	prevBearing, bearing = alignBearing(prevBearing, bearing)
	return bearing - prevBearing
}

/*
alignBearing. handle bearing-prevBearing > 180° or bearing-prevBearing < -180°.

e.g. prevBearing 20°, bearing 350°: the raw difference is 330°, a right turn, but the vehicle turned 30° left.
fix: prevBearing + 360°.

prevBearing 340°, bearing 10°: the raw difference is -330°, a left turn, but the vehicle turned 30° right.
fix: bearing + 360°.
*/
func alignBearing(prevBearing, bearing float64) (float64, float64) {
	dif := bearing - prevBearing
	if dif > 180 {
		prevBearing += 360
	} else if dif < -180 {
		bearing += 360
	}
	return prevBearing, bearing
}

func getTurnCommand(delta float64) pkg.Command {
	absDelta := math.Abs(delta)
	if da.Lt(absDelta, forwardThreshold) {
		return pkg.GO_FORWARD
	} else if da.Ge(absDelta, backwardThreshold) {
		return pkg.GO_BACKWARD
	} else if delta < 0 {
		return pkg.GO_LEFT
	}
	return pkg.GO_RIGHT
}
