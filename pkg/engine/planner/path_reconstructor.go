package planner

import (
	da "github.com/lintang-b-s/roadfinder/pkg/datastructure"
	"github.com/lintang-b-s/roadfinder/pkg/util"
)

// ReconstructPath. follow predecessors from t back to s and return the vertices from s to t inclusive.
// returns an empty path (never a partial chain) if the chain hits INVALID_VERTEX_ID before reaching s.
func ReconstructPath(pred []da.Index, s, t da.Index) []da.Index {
	path := make([]da.Index, 0)
	cur := t
	for cur != s {
		path = append(path, cur)
		cur = pred[cur]
		if cur == da.INVALID_VERTEX_ID {
			return []da.Index{}
		}
		util.AssertPanic(len(path) <= len(pred), "path reconstruction: predecessor chain contains a cycle")
	}
	path = append(path, s)
	util.ReverseInPlace(path)
	return path
}
