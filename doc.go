// Package arbor is the retained-state layout and docking engine behind an
// immediate-mode GUI, with an [Ebitengine] backend.
//
// Widget code describes the UI every frame; arbor remembers what must
// survive between frames: where each panel is, how big it is, how far it
// is scrolled, which panels are docked together and in what order they
// are drawn. It also decides who owns the pointer, and runs the drags that
// move, resize, scroll, split and dock panels.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and
// loop for you:
//
//	arbor.Run(arbor.RunConfig{Title: "Tools", Width: 1280, Height: 720},
//		func(ctx *arbor.Context) {
//			ctx.Begin("Inspector")
//			r := ctx.PlaceItem(arbor.Vec2{X: 120, Y: 24})
//			if ctx.RegisterItem(ctx.GenID("apply"), r, arbor.ActivateOnClick).Clicked() {
//				// ...
//			}
//			ctx.End()
//		})
//
// For full control, drive a [Context] yourself. Feed it input with
// [Context.SetPointerPos], [Context.SetButton], [Context.Scroll] and
// [Context.KeyPress], then bracket the UI with [Context.BeginFrame] and
// [Context.EndFrame]:
//
//	ctx := arbor.NewContext(arbor.DefaultConfig(), window)
//	ctx.BeginFrame()
//	ctx.Begin("Scene")
//	// ... place and register items ...
//	ctx.End()
//	ctx.EndFrame()
//
// # Panels
//
// A [Panel] is created by the first Begin with its name and lives as long
// as it is begun every frame; a panel skipped for two frames is pruned.
// Panels own a [DrawList] of rect primitives, a layout cursor
// ([Context.PlaceItem], [Context.SameLine], [Context.Indent]) and a
// double-buffered scroll offset. Child panels ([Context.BeginChild]) are
// laid out inside their parent and share its draw list.
//
// # Docking
//
// Dragging a panel by its titlebar over another panel and releasing docks
// it: the target is split in two along the side nearest the pointer
// ([DropRegion]). Docked panels form a binary [DockTree]; dragging the
// title handle of a docked panel pulls it back out. Dragging a shared
// border moves the split between two docked panels. Shift suspends docking
// while held; Escape or a right click cancels it for the rest of the drag.
//
// # Hot and active
//
// Every interactive rect is declared with [Context.RegisterItem], which
// returns a [Signal] describing hover, press, click and drag state. Only
// the topmost panel's items become hot. Tab and Shift+Tab move keyboard
// focus between registered items.
//
// # Events
//
// Layout changes are reported as [LayoutEvent] values to callbacks
// registered with [Context.OnLayoutEvent] and to an optional [EventSink];
// package arbor/ecs forwards them into a [Donburi] world.
//
// # Testing
//
// [HeadlessWindow] stands in for the host window. Synthetic input
// ([Context.InjectClick], [Context.InjectDrag]) is consumed one event per
// frame, and [LoadTestScript] drives whole interaction scripts from JSON.
//
// Smooth wheel scrolling uses [gween] tweens.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package arbor
