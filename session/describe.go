package session

import (
	"fmt"
	"strings"

	"github.com/plus3/arscene/geom"
	"github.com/plus3/arscene/scene"
)

func describe(rec *scene.Record, pose geom.Pose) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s #%d speed %.3f", rec.Class, rec.ID.Serial(), rec.Speed())
	if rec.Mortal() {
		fmt.Fprintf(&b, " ttl %.2fs", rec.TTL)
	}
	fmt.Fprintf(&b, " scale %.3f\n", pose.Scale)

	m := pose.Matrix()
	for row := range 4 {
		fmt.Fprintf(&b, "%8.3f %8.3f %8.3f %8.3f\n", m.At(row, 0), m.At(row, 1), m.At(row, 2), m.At(row, 3))
	}
	return b.String()
}
