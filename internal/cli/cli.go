// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing for enigma.
package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdEncode
	CmdDecode
	CmdSend
	CmdInbox
	CmdExport
	CmdShell
	CmdRotors
	CmdConfig
	CmdVersion
	CmdHelp
	CmdUnknown
)

// String returns the command name used on the command line.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdEncode:
		return "encode"
	case CmdDecode:
		return "decode"
	case CmdSend:
		return "send"
	case CmdInbox:
		return "inbox"
	case CmdExport:
		return "export"
	case CmdShell:
		return "shell"
	case CmdRotors:
		return "rotors"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	JSON     bool   // Output in JSON format
	Quiet    bool
	Verbose  bool   // Shorthand for --log-level debug
	LogLevel string // Overrides log.level from the config file
	Config   string // Alternate config file

	// Name is the command word as typed (e.g. "view" for inbox).
	Name string

	// Raw holds the arguments after the command word.
	Raw []string
}

// Parser returns an ArgParser over the command arguments.
func (a Args) Parser() *ArgParser {
	return NewArgParser(a.Raw, commandBoolFlags...)
}

// commandBoolFlags never take a value, so "--watch inbox" is not read as
// watch=inbox.
var commandBoolFlags = []string{"preserve-case", "watch", "no-watch", "raw", "force", "stdout", "ciphertext", "no-key"}

const usageText = `enigma - rotor cipher messaging

Enciphers messages with a three-stage rotor machine (plugboard, rotors,
reflector) and exchanges them through a shared message log.

Usage:
  enigma                          Start the TUI (default)
  enigma encode [TEXT]            Encipher TEXT (or stdin)
  enigma decode [TEXT]            Decipher TEXT (same operation as encode)
  enigma send --sender NAME TEXT  Encipher TEXT and append it to the log
  enigma inbox                    Decipher and list every logged message
  enigma export                   Write the deciphered inbox to a file
  enigma shell                    Interactive machine, rotor state kept between lines
  enigma rotors                   List the rotor catalogue
  enigma config [show|init|path|get|set]
  enigma version
  enigma help

Machine key (encode, decode, send, inbox, export, shell):
  --rotors "0:A 1:B 2:C"          Rotor index and starting letter per slot
                                  (also accepts {0: 'A', 1: 'B'} and 0=A,1=B)
  --plugboard "AB CD"             Letter pairs swapped before and after the rotors
  --preserve-case                 Keep the input's letter case in the output
  Both default to cipher.rotors and cipher.plugboard from the config file.

Command flags:
  encode/decode  --text TEXT      Text to process (otherwise args or stdin)
  send           --sender NAME    Sender name (default: config sender)
                 --text TEXT
  inbox, view    --watch          Keep running and reprint on new messages
                 --raw            Also show the stored ciphertext
                 --width N        Truncate plaintext to N columns
  export         --format FMT     markdown (default), json or html
                 -o, --output P   File or directory (default: ./messages_<time>.<ext>)
                 --stdout         Write the document to stdout instead
                 --raw            With --stdout, do not render Markdown
                 --ciphertext     Include the stored ciphertext
                 --no-key         Leave the machine key out of the header
                 --theme T        HTML theme: dark (default) or light
  config init    --force          Overwrite an existing config file
  tui            --no-watch       Do not reload messages when the log changes

Shell commands:
  :pos                            Show current rotor positions
  :reset                          Return rotors to their starting letters
  :key                            Show the machine key
  :help                           List shell commands
  :quit, :q                       Exit (Ctrl+D also exits)

Global flags:
  --json                          Machine-readable output
  -q, --quiet                     Suppress informational output
  -v, --verbose                   Debug logging to stderr
  --log-level LEVEL               trace, debug, info, warn, error, off
  --config FILE                   Use FILE instead of ~/.enigma/config.toml

Environment:
  ENIGMA_HOME                     Config directory (default ~/.enigma)
  ENIGMA_SENDER                   Default sender
  ENIGMA_STORE                    Log backend: csv or sqlite
  ENIGMA_STORE_PATH               Log file location
  ENIGMA_LOG_LEVEL                Log level
  NO_COLOR                        Disable colors

Examples:
  enigma encode --rotors "0:A 1:B 2:C" --plugboard "AB CD" HELLO
  echo RNHDB | enigma decode --rotors "0:A 1:B 2:C" --plugboard "AB CD"
  enigma send --sender alice --text "ATTACK AT DAWN"
  enigma inbox --watch
  enigma export --format html --output messages.html
`

// PrintUsage writes the full help text to w.
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}

// PrintVersion writes the version banner to w.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "enigma %s\n", Version)
	fmt.Fprintf(w, "  commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  built:  %s\n", BuildDate)
	fmt.Fprintf(w, "  go:     %s\n", runtime.Version())
}

// Parse parses os.Args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses an argument list (without the program name).
func ParseArgs(argv []string) (Command, Args) {
	remaining, parsed := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, parsed
	}

	parsed.Name = strings.ToLower(remaining[0])
	parsed.Raw = remaining[1:]

	switch parsed.Name {
	case "tui", "ui":
		return CmdTUI, parsed
	case "encode", "enc", "encrypt":
		return CmdEncode, parsed
	case "decode", "dec", "decrypt":
		return CmdDecode, parsed
	case "send":
		return CmdSend, parsed
	case "inbox", "view", "messages":
		return CmdInbox, parsed
	case "export":
		return CmdExport, parsed
	case "shell", "repl":
		return CmdShell, parsed
	case "rotors":
		return CmdRotors, parsed
	case "config":
		return CmdConfig, parsed
	case "version", "--version":
		return CmdVersion, parsed
	case "help", "-h", "--help":
		return CmdHelp, parsed
	default:
		return CmdUnknown, parsed
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
// Global flags may appear anywhere on the line.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsed Args

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "--json":
			parsed.JSON = true
		case "-q", "--quiet":
			parsed.Quiet = true
		case "-v", "--verbose":
			parsed.Verbose = true
		case "--log-level", "--config":
			if i+1 < len(args) {
				i++
				if arg == "--config" {
					parsed.Config = args[i]
				} else {
					parsed.LogLevel = args[i]
				}
			}
		default:
			switch {
			case strings.HasPrefix(arg, "--log-level="):
				parsed.LogLevel = strings.TrimPrefix(arg, "--log-level=")
			case strings.HasPrefix(arg, "--config="):
				parsed.Config = strings.TrimPrefix(arg, "--config=")
			default:
				remaining = append(remaining, arg)
			}
		}
	}

	if parsed.Verbose && parsed.LogLevel == "" {
		parsed.LogLevel = "debug"
	}
	return remaining, parsed
}
