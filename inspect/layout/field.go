package layout

// Label is a read-only text row.
type Label struct {
	base
	Text string
}

// NewLabel returns a label element.
func NewLabel(text string) *Label {
	return &Label{Text: text}
}

func (l *Label) Dispose() { l.disposed = true }

// Field is an editable row: a caption and a text value. Change handlers run
// synchronously whenever the text changes, whether the change came from the
// user (Input) or from the program (SetText), the way most toolkits raise
// value-changed events.
type Field struct {
	base
	Caption string

	text     string
	mixed    bool
	readOnly bool
	errText  string
	handlers []func(text string)
}

// NewField returns a field with the given caption.
func NewField(caption string) *Field {
	return &Field{Caption: caption}
}

// Text returns the current text.
func (f *Field) Text() string { return f.text }

// SetText updates the text and notifies handlers when it changed.
func (f *Field) SetText(text string) {
	if f.disposed || (text == f.text && !f.mixed) {
		return
	}
	f.text = text
	f.mixed = false
	f.notify()
}

// Input applies a user edit. Read-only fields ignore input.
func (f *Field) Input(text string) {
	if f.disposed || f.readOnly {
		return
	}
	f.text = text
	f.mixed = false
	f.notify()
}

// OnChange registers a change handler.
func (f *Field) OnChange(fn func(text string)) {
	f.handlers = append(f.handlers, fn)
}

// SetMixed marks the field as showing several differing values.
func (f *Field) SetMixed(mixed bool) { f.mixed = mixed }

// Mixed reports whether the field shows differing values.
func (f *Field) Mixed() bool { return f.mixed }

// SetReadOnly toggles whether Input is accepted.
func (f *Field) SetReadOnly(ro bool) { f.readOnly = ro }

// ReadOnly reports whether Input is ignored.
func (f *Field) ReadOnly() bool { return f.readOnly }

// SetError attaches a validation message; empty clears it.
func (f *Field) SetError(msg string) { f.errText = msg }

// Error returns the validation message.
func (f *Field) Error() string { return f.errText }

// Dispose drops the change handlers so a disposed widget can no longer reach
// its editor.
func (f *Field) Dispose() {
	f.disposed = true
	f.handlers = nil
}

func (f *Field) notify() {
	for _, h := range f.handlers {
		h(f.text)
	}
}
