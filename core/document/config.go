package document

// DefaultIndent is used when Config.Indent is not positive.
const DefaultIndent = 2

// Config holds serialization settings for written documents.
type Config struct {
	// Indent is the number of spaces per nesting level.
	Indent int `mapstructure:"indent" default:"2"`
}
