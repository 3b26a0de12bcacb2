package source

// Kinds of document source.
const (
	KindEmbedded = "embedded"
	KindFile     = "file"
	KindStorage  = "storage"
	KindDatabase = "database"
)

// Config selects where the rules catalogs read their documents.
type Config struct {
	// Source is one of embedded, file, storage or database.
	Source string `mapstructure:"source" default:"embedded"`
	// Dir is the directory read by the file source.
	Dir string `mapstructure:"dir" default:"./rules"`
	// Prefix is prepended to document names by the storage source.
	Prefix string `mapstructure:"prefix" default:"rules/"`
	// Warm loads every catalog at startup instead of on first request.
	Warm bool `mapstructure:"warm" default:"true"`
}
