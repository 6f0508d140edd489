package autoload

// Format describes the markers that bound an always-load block.
// End is only recognised at the start of a line, after indentation.
type Format struct {
	Name  string `mapstructure:"name" yaml:"name" json:"name"`
	Start string `mapstructure:"start" yaml:"start" json:"start"`
	End   string `mapstructure:"end" yaml:"end" json:"end"`
}

// Built-in formats for the two manifests Composer generates
var (
	// StaticFormat matches vendor/composer/autoload_static.php
	StaticFormat = Format{Name: "static", Start: "public static $files = array (", End: ");"}

	// FilesFormat matches vendor/composer/autoload_files.php
	FilesFormat = Format{Name: "files", Start: "return array(", End: ");"}
)

// Entry is one `key => value,` declaration of the block.
// Value is the literal PHP expression, without the trailing comma.
type Entry struct {
	Key   string
	Value string

	layout layout
}

// layout is the textual shape an Entry was parsed with
type layout struct {
	set    bool
	lead   string // non-entry lines kept in front of the entry
	indent string
	quote  string
	arrow  string
	comma  bool
	trail  string
	eol    string
}

// EntryList is the ordered content of one block, in load order
type EntryList []Entry

// Keys returns the entry keys in order
func (l EntryList) Keys() []string {
	keys := make([]string, len(l))
	for i, e := range l {
		keys[i] = e.Key
	}
	return keys
}

// PromotionSet is an ordered list of path fragments. Earlier fragments win.
type PromotionSet []string

// Block is an always-load block located inside manifest text
type Block struct {
	Format Format

	// Start and End are the byte offsets of the body (markers excluded)
	Start int
	End   int

	// Head is the text between the start marker and the first entry,
	// Tail the text between the last entry and the end marker.
	Head string
	Tail string

	Entries EntryList

	def layout
}

// IsEmpty reports whether the block was found but holds no entries
func (b *Block) IsEmpty() bool {
	return len(b.Entries) == 0
}

// Body returns the block body exactly as it appeared in the source
func (b *Block) Body() string {
	return Render(b, b.Entries)
}
