// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"input ROM file"`
	Config string `flag:"c" usage:"config file (default: smashtvedit.ini if present)"`
	Dir    string `flag:"dir" usage:"directory to write the edited ROM to (default: working directory)"`
}

// Flags contains behavior options.
type Flags struct {
	Debug    bool `flag:"debug" usage:"enable debug logging"`
	Quiet    bool `flag:"q" usage:"quiet mode"`
	NoCenter bool `flag:"nocenter" usage:"truncate arena names instead of centering them"`
	Strict   bool `flag:"strict" usage:"treat malformed addresses as errors"`
}

// Command contains the editing command and its arguments.
type Command struct {
	Name string
	Args []string
}

// Program options of the editor.
type Program struct {
	Parameters
	Flags
	Command
}

// Commands and the number of arguments they expect.
const (
	Dump    = "dump"
	Info    = "info"
	Save    = "save"
	Set     = "set"
	Wave    = "wave"
	AddWave = "addwave"
	DelWave = "delwave"
)

// CommandArgs maps every supported command to its argument count.
var CommandArgs = map[string]int{
	Dump:    0,
	Info:    0,
	Save:    0,
	Set:     3,
	Wave:    4,
	AddWave: 1,
	DelWave: 1,
}

// Modifies returns whether the command changes the arena data and results
// in a saved ROM.
func (c Command) Modifies() bool {
	return c.Name != Dump && c.Name != Info
}
