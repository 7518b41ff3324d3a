// Package watchface is a digital weather watch face engine.
//
// It draws a clock, the date and a weather row on a round or rectangular
// wearable display, and keeps the weather current from data items pushed by
// a paired companion device.
//
// # Quick start
//
// The host runtime owns the surface and calls the [Host] callbacks on a
// single thread. [Engine] implements them:
//
//	ch := watchface.NewConnectionChannel(transport, icons, logger)
//	e := watchface.NewEngine(watchface.Options{Channel: ch, Locale: "en-US"})
//	e.OnSurfaceCreated()
//	e.OnPropertiesChanged(lowBit)
//	e.OnApplyInsets(true, 320, 320)
//	e.OnVisibilityChanged(true)
//
// Each host frame, drain posted work with [Engine.Pump] and redraw when
// [Engine.NeedsRedraw] reports a pending frame:
//
//	e.Pump()
//	if e.NeedsRedraw() {
//		e.Draw(canvas, watchface.Rect{Width: 320, Height: 320})
//	}
//
// # Drawing
//
// [Renderer.DrawFrame] issues fill, text and image commands against a
// [Canvas]. A [Frame] records them for inspection, [RasterCanvas] paints
// into an *image.RGBA, and the ebitenhost package paints onto an
// Ebitengine screen.
//
// # Power modes
//
// Interactive mode ticks once a second on wall-clock boundaries. Ambient
// modes draw on a black background with aliased icons, and low-bit panels
// also lose text anti-aliasing; the host's minute tick drives redraws
// there.
//
// # Companion data
//
// The [ConnectionChannel] subscribes through a [Transport] to the
// "/weather" data item, a JSON object with high_temperature,
// low_temperature and weather_condition. The companion package provides an
// MQTT transport.
package watchface
