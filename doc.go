// Package amino is a retained-mode 2D scene graph with property animation,
// pixel effects and pointer input, rendered on the CPU with [gg].
//
// # Quick start
//
// An [Engine] owns surfaces and animations. Frames are requested through an
// injected [Scheduler]; [ManualScheduler] runs them when the host (or a
// test) calls RunFrame:
//
//	sched := amino.NewManualScheduler()
//	eng := amino.NewEngine(amino.Options{Scheduler: sched})
//	surf := eng.AddSurface("main", 640, 480)
//
//	box := amino.NewRect().Set(100, 100, 80, 40).SetFill(amino.Red)
//	surf.Add(box)
//
//	slide := amino.MustPropertyAnimation(box, "x", 100, 400, time.Second).
//		SetEasing(ease.OutCubic)
//	eng.AddAnimation(slide)
//	slide.Start()
//	eng.Start()
//
// The ebitenhost package runs an engine in a window; the remote package
// serves surfaces over HTTP and WebSocket.
//
// # Scene graph
//
// Every element is a [Node]. Shapes ([RectNode], [CircleNode],
// [EllipseNode], [PathNode], [TextNode], [ImageView]) paint themselves;
// [Group] applies a translate, scale and rotate to its children; effect
// nodes ([BufferNode], [BlurNode], [ShadowNode], [SaturationNode],
// [BackgroundSaturationNode]) render one child offscreen and post-process
// the pixels. A node has exactly one parent; adding it to a second one
// panics.
//
// Setters mark the node dirty. The mark travels up to the [Surface], which
// repaints on the first mark when no frame is pending.
//
// # Input
//
// Surfaces turn pointer press, move and release into press, drag, release,
// click and momentumdrag events delivered to listeners registered per
// (type, target) with [Surface.On]. Hit testing walks the top-level nodes
// front to back; a miss targets the surface itself.
//
// # Testing
//
// [FakeClock] and [ManualScheduler] make frames deterministic. Pointer input
// can be injected with [Surface.InjectClick] and [Surface.InjectDrag], and
// JSON scripts loaded with [LoadTestScript] drive input and labelled
// screenshots frame by frame.
//
// [gg]: https://github.com/gogpu/gg
package amino
