// Package ebitenhost runs a watchface.Engine inside an [Ebitengine] window.
//
// The window stands in for the watch runtime: it reports insets once, feeds
// visibility and ambient changes from the keyboard, delivers the minute
// tick, and pumps posted engine work on the game thread.
//
//	engine := watchface.NewEngine(opts)
//	err := ebitenhost.Run(engine, ebitenhost.RunConfig{
//		Title: "Watch", Size: 320, Round: true,
//	})
//
// Keys: A toggles ambient mode, V toggles visibility, P slides a simulated
// peek card in or out, S queues a screenshot, F toggles the FPS overlay.
//
// [Ebitengine]: https://ebitengine.org
package ebitenhost
