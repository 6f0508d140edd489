package autoload

// Outcome is the result of promoting one block
type Outcome struct {
	Block   *Block
	Before  EntryList
	After   EntryList
	Moves   []Move
	Text    string
	Changed bool
}

// Promote runs Parse, Reorder, Render and Splice over one manifest text.
// Text is returned unchanged when nothing moves.
func Promote(text string, f Format, promotions PromotionSet) (*Outcome, error) {
	b, err := Parse(text, f)
	if err != nil {
		return nil, err
	}

	after := Reorder(b.Entries, promotions)
	moves := Diff(b.Entries, after)

	out := &Outcome{
		Block:  b,
		Before: b.Entries,
		After:  after,
		Moves:  moves,
		Text:   text,
	}
	if len(moves) > 0 {
		out.Text = Splice(text, b, Render(b, after))
		out.Changed = out.Text != text
	}
	return out, nil
}
