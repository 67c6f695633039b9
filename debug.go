package amino

import (
	"log/slog"
	"time"
)

// debugStats holds per-frame timings. Only populated in debug mode.
type debugStats struct {
	animTime     time.Duration
	paintTime    time.Duration
	animCount    int
	surfaceCount int
	nodeCount    int
}

func debugLog(stats debugStats) {
	Logger().Debug("frame",
		slog.Duration("anim", stats.animTime),
		slog.Duration("paint", stats.paintTime),
		slog.Duration("total", stats.animTime+stats.paintTime),
		slog.Int("animations", stats.animCount),
		slog.Int("surfaces", stats.surfaceCount),
		slog.Int("nodes", stats.nodeCount),
	)
}

const debugMaxTreeDepth = 32

// debugCheckTreeDepth warns if n sits deeper than debugMaxTreeDepth.
func debugCheckTreeDepth(n Node) {
	depth := 0
	var cur Invalidator = n
	for cur != nil {
		depth++
		node, ok := cur.(Node)
		if !ok {
			break
		}
		cur = node.Parent()
	}
	if depth > debugMaxTreeDepth {
		Logger().Warn("tree depth exceeds limit",
			slog.Int("depth", depth), slog.Int("limit", debugMaxTreeDepth), slog.String("node", describe(n)))
	}
}

const debugMaxChildCount = 1000

// debugCheckChildCount warns if owner holds more than debugMaxChildCount
// children.
func debugCheckChildCount(owner Invalidator, count int) {
	if count <= debugMaxChildCount {
		return
	}
	name := "surface"
	if n, ok := owner.(Node); ok {
		name = describe(n)
	} else if s, ok := owner.(*Surface); ok {
		name = "surface " + s.id
	}
	Logger().Warn("child count exceeds limit",
		slog.String("owner", name), slog.Int("children", count), slog.Int("limit", debugMaxChildCount))
}
