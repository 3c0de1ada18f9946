package output

// itemBuffer collects items for formats that must see the whole document
// before encoding it.
type itemBuffer struct {
	items   []any
	array   bool // emit a list even for a single item
	emitted bool
}

// Write buffers a single item.
func (b *itemBuffer) Write(data any) error {
	b.items = append(b.items, data)
	return nil
}

// WriteAll buffers multiple items.
func (b *itemBuffer) WriteAll(data []any) error {
	b.items = append(b.items, data...)
	return nil
}

// take returns the document to encode and clears the buffer. A lone item is
// returned bare unless array mode is on. ok is false when a document was
// already emitted and nothing new has been buffered since.
func (b *itemBuffer) take() (doc any, ok bool) {
	if b.emitted && len(b.items) == 0 {
		return nil, false
	}
	b.emitted = true

	items := b.items
	b.items = nil
	if len(items) == 1 && !b.array {
		return items[0], true
	}
	if items == nil {
		items = []any{}
	}
	return items, true
}
