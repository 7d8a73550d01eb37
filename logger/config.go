package logger

// Handler kinds and stream targets accepted in configuration.
const (
	KindFile   = "file"
	KindStream = "stream"

	StreamStderr = "stderr"
	StreamStdout = "stdout"
)

// Defaults applied when the configuration leaves a field empty.
const (
	DefaultName       = "asset"
	DefaultFormat     = "%(asctime)s %(name)s %(levelname)s %(message)s"
	DefaultDateFormat = "2006-01-02 15:04:05"
)

// Formatter controls how a record is rendered into a line of text.
type Formatter struct {
	Format     string `yaml:"format"`
	DateFormat string `yaml:"date_format"`
}

// Handler describes one output sink with its own severity threshold.
// A record is written to the sink only when it clears both the logger
// threshold and the handler threshold.
type Handler struct {
	Name     string `yaml:"name"`
	Kind     string `yaml:"kind"`
	Level    string `yaml:"level"`
	Filename string `yaml:"filename"`
	Stream   string `yaml:"stream"`
}

// Config holds logger configuration.
type Config struct {
	Name      string    `yaml:"name"`
	Level     string    `yaml:"level"`
	Propagate bool      `yaml:"propagate"`
	Formatter Formatter `yaml:"formatter"`
	Handlers  []Handler `yaml:"handlers"`
}
