package tui

// InputField is the single-line message editor. Operations are rune-indexed
// so multi-byte input behaves.
type InputField struct {
	Content []rune
	Cursor  int
	Width   int
}

func NewInputField(width int) InputField {
	return InputField{
		Content: nil,
		Cursor:  0,
		Width:   width,
	}
}

func (inf InputField) Text() string {
	return string(inf.Content)
}

func (inf InputField) IsEmpty() bool {
	for _, r := range inf.Content {
		if r != ' ' && r != '\t' {
			return false
		}
	}
	return true
}

func (inf InputField) WithWidth(width int) InputField {
	inf.Width = width
	return inf
}

func (inf InputField) InsertRune(r rune) InputField {
	content := make([]rune, 0, len(inf.Content)+1)
	content = append(content, inf.Content[:inf.Cursor]...)
	content = append(content, r)
	content = append(content, inf.Content[inf.Cursor:]...)

	inf.Content = content
	inf.Cursor++
	return inf
}

func (inf InputField) DeleteBackward() InputField {
	if inf.Cursor == 0 {
		return inf
	}
	content := make([]rune, 0, len(inf.Content)-1)
	content = append(content, inf.Content[:inf.Cursor-1]...)
	content = append(content, inf.Content[inf.Cursor:]...)

	inf.Content = content
	inf.Cursor--
	return inf
}

func (inf InputField) MoveLeft() InputField {
	if inf.Cursor > 0 {
		inf.Cursor--
	}
	return inf
}

func (inf InputField) MoveRight() InputField {
	if inf.Cursor < len(inf.Content) {
		inf.Cursor++
	}
	return inf
}

func (inf InputField) MoveHome() InputField {
	inf.Cursor = 0
	return inf
}

func (inf InputField) MoveEnd() InputField {
	inf.Cursor = len(inf.Content)
	return inf
}

func (inf InputField) Clear() InputField {
	inf.Content = nil
	inf.Cursor = 0
	return inf
}
