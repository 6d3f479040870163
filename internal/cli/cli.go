// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/retroenv/smashtvedit/internal/enemy"
	"github.com/retroenv/smashtvedit/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, &UsageError{flags: flags}
	}

	if opts.Input == "" {
		opts.Input = args[0]
		args = args[1:]
	}

	if err := validateArgs(flags, args); err != nil {
		return opts, err
	}

	opts.Command = options.Command{Name: options.Dump}
	if len(args) > 0 {
		opts.Command = options.Command{
			Name: strings.ToLower(args[0]),
			Args: args[1:],
		}
	}

	if err := validateCommand(opts.Command); err != nil {
		return opts, err
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	fmt.Printf("usage: smashtvedit [options] <ROM file> [command [arguments]]\n\n")
	fmt.Println("commands:")
	fmt.Println("  dump                                 print all arenas (default)")
	fmt.Println("  info                                 print the cartridge header")
	fmt.Println("  save                                 write the arenas unmodified")
	fmt.Println("  set <circuit:arena> <field> <value>  fields: name, threshold, up, right, down")
	fmt.Println("  wave <circuit:arena> <n> <field> <value>")
	fmt.Println("                                       fields: enemy, count, limit, modifier,")
	fmt.Println("                                       cooldown, prespawned, spawntimer")
	fmt.Printf("                                       enemies: %s\n", strings.Join(enemy.Names(), ", "))
	fmt.Println("  addwave <circuit:arena>              append a default wave")
	fmt.Println("  delwave <circuit:arena>              remove the last wave")
	fmt.Printf("\nedits are saved as a 1 MiB image, ROM files larger than 1 MiB can not be saved\n")
	fmt.Printf("\noptions:\n")
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs checks that no flags follow the file name
func validateArgs(flags *flag.FlagSet, args []string) error {
	if len(args) > 0 && len(args[0]) > 1 && args[0][0] == '-' {
		return &UsageError{
			flags: flags,
			msg:   fmt.Sprintf("Potential argument %s found after ROM file, please pass options before the ROM file", args[0]),
		}
	}
	return nil
}

// validateCommand checks the command name and its argument count
func validateCommand(cmd options.Command) error {
	expected, ok := options.CommandArgs[cmd.Name]
	if !ok {
		commands := make([]string, 0, len(options.CommandArgs))
		for name := range options.CommandArgs {
			commands = append(commands, name)
		}
		sort.Strings(commands)
		return fmt.Errorf("unsupported command: %s. Valid commands: %s",
			cmd.Name, strings.Join(commands, ", "))
	}

	if len(cmd.Args) != expected {
		return fmt.Errorf("command %s expects %d arguments but got %d", cmd.Name, expected, len(cmd.Args))
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Config, "c", "", "name of the ini config file, smashtvedit.ini is used if present")
	flags.StringVar(&opts.Dir, "dir", "", "directory to write the edited ROM to, defaults to the working directory")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.NoCenter, "nocenter", false, "truncate arena names instead of centering them")
	flags.BoolVar(&opts.Strict, "strict", false, "treat malformed addresses in pointer tables as errors")
}
