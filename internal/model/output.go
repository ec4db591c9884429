package model

// BlockKind identifies how a block of command output is laid out.
type BlockKind int

const (
	BlockText    BlockKind = iota // plain paragraph
	BlockError                    // error line, shown in the danger tone
	BlockHint                     // corrective hint, may reference a command
	BlockHeading                  // section heading
	BlockTags                     // a row of chips (Items)
	BlockBullet                   // "▹ " prefixed line
	BlockPair                     // Label : Text
	BlockCard                     // bordered card; Items are its lines
	BlockBanner                   // preformatted ASCII art (Items are rows)
	BlockLink                     // Label caption followed by link text
)

// Tone is the semantic colour of a block. The theme maps tones to colours.
type Tone int

const (
	ToneDefault Tone = iota
	ToneMuted
	ToneAccent
	ToneSuccess
	ToneDanger
	ToneInfo
	TonePurple
)

// Block is one element of structured command output.
type Block struct {
	Kind  BlockKind
	Tone  Tone
	Label string
	Text  string
	// Command, when set on a hint, is the suggested command text that the
	// view highlights.
	Command string
	Items   []string
}

// Output is the rendered-agnostic result of a command.
type Output struct {
	Blocks []Block
}

// Add appends blocks and returns the output for chaining.
func (o Output) Add(blocks ...Block) Output {
	o.Blocks = append(o.Blocks, blocks...)
	return o
}

// IsEmpty reports whether the output has no blocks.
func (o Output) IsEmpty() bool {
	return len(o.Blocks) == 0
}

// Text is a shorthand for a single toned paragraph block.
func Text(tone Tone, text string) Block {
	return Block{Kind: BlockText, Tone: tone, Text: text}
}

// Error is a shorthand for an error block.
func Error(text string) Block {
	return Block{Kind: BlockError, Tone: ToneDanger, Text: text}
}

// Hint is a shorthand for a hint block. prefix and suffix surround the
// highlighted command.
func Hint(prefix, command, suffix string) Block {
	return Block{
		Kind:    BlockHint,
		Tone:    ToneMuted,
		Label:   prefix,
		Command: command,
		Text:    suffix,
	}
}
