package editor

// Action is a non-printing editing key.
type Action int

const (
	ActionNone Action = iota
	ActionNewline
	ActionTab
	ActionBackspace
	ActionDelete
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionHome
	ActionEnd
)

// Apply performs a on b.
func (b *Buffer) Apply(a Action) {
	switch a {
	case ActionNewline:
		b.Insert("\n")
	case ActionTab:
		b.Insert("    ")
	case ActionBackspace:
		b.Backspace()
	case ActionDelete:
		b.Delete()
	case ActionLeft:
		b.Left()
	case ActionRight:
		b.Right()
	case ActionUp:
		b.Up()
	case ActionDown:
		b.Down()
	case ActionHome:
		b.Home()
	case ActionEnd:
		b.End()
	}
}

// Type inserts printable runes and drops control characters.
func (b *Buffer) Type(rs []rune) {
	out := rs[:0:0]
	for _, r := range rs {
		if r < 0x20 || r == 0x7f {
			continue
		}
		out = append(out, r)
	}
	if len(out) > 0 {
		b.Insert(string(out))
	}
}
