package watchface

import "image"

// Canvas is the drawing surface a frame is issued against.
type Canvas interface {
	// FillRect fills r with a solid color.
	FillRect(r Rect, c Color)
	// DrawText draws s with its baseline starting at (x, y).
	DrawText(s string, x, y float64, p Paint)
	// DrawImage draws img scaled into dst. antiAlias selects smooth filtering;
	// false means nearest-neighbor.
	DrawImage(img image.Image, dst Rect, antiAlias bool)
}

// CommandType identifies the kind of draw command.
type CommandType uint8

const (
	CommandFillRect  CommandType = iota // solid rectangle
	CommandText                         // text at a baseline
	CommandImage                        // scaled image
)

func (t CommandType) String() string {
	switch t {
	case CommandFillRect:
		return "fill"
	case CommandText:
		return "text"
	case CommandImage:
		return "image"
	default:
		return "unknown"
	}
}

// DrawCommand is a single draw instruction recorded from a frame.
type DrawCommand struct {
	Type      CommandType
	Rect      Rect // fill area or image destination
	Color     Color
	Text      string
	X, Y      float64
	Paint     Paint
	Image     image.Image
	AntiAlias bool
}

const defaultCommandCap = 16

// Frame is a Canvas that records commands instead of drawing them. Reset
// reuses the backing slice, so a long-lived Frame stops allocating once it
// reaches the largest frame size.
type Frame struct {
	commands []DrawCommand
}

// NewFrame returns an empty recording canvas.
func NewFrame() *Frame {
	return &Frame{commands: make([]DrawCommand, 0, defaultCommandCap)}
}

// Reset discards recorded commands.
func (f *Frame) Reset() {
	f.commands = f.commands[:0]
}

// Commands returns the recorded commands. The returned slice MUST NOT be
// mutated and is only valid until the next Reset.
func (f *Frame) Commands() []DrawCommand {
	return f.commands
}

// Len returns the number of recorded commands.
func (f *Frame) Len() int {
	return len(f.commands)
}

// FillRect implements Canvas.
func (f *Frame) FillRect(r Rect, c Color) {
	f.commands = append(f.commands, DrawCommand{Type: CommandFillRect, Rect: r, Color: c})
}

// DrawText implements Canvas.
func (f *Frame) DrawText(s string, x, y float64, p Paint) {
	f.commands = append(f.commands, DrawCommand{
		Type:      CommandText,
		Text:      s,
		X:         x,
		Y:         y,
		Paint:     p,
		Color:     p.Color,
		AntiAlias: p.AntiAlias,
	})
}

// DrawImage implements Canvas.
func (f *Frame) DrawImage(img image.Image, dst Rect, antiAlias bool) {
	f.commands = append(f.commands, DrawCommand{
		Type:      CommandImage,
		Rect:      dst,
		Image:     img,
		AntiAlias: antiAlias,
	})
}

// Replay issues the recorded commands, in order, against c.
func (f *Frame) Replay(c Canvas) {
	for i := range f.commands {
		cmd := &f.commands[i]
		switch cmd.Type {
		case CommandFillRect:
			c.FillRect(cmd.Rect, cmd.Color)
		case CommandText:
			c.DrawText(cmd.Text, cmd.X, cmd.Y, cmd.Paint)
		case CommandImage:
			c.DrawImage(cmd.Image, cmd.Rect, cmd.AntiAlias)
		}
	}
}

// Equal reports whether two frames recorded the same command sequence.
// Images compare by identity.
func (f *Frame) Equal(other *Frame) bool {
	if len(f.commands) != len(other.commands) {
		return false
	}
	for i := range f.commands {
		if f.commands[i] != other.commands[i] {
			return false
		}
	}
	return true
}
