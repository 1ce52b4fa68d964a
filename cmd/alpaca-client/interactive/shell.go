// Package interactive provides the interactive command-line interface
// for the Alpaca client.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/alpaca-client/alpaca-go/pkg/interaction"
)

// Shell handles interactive mode for alpaca-client.
type Shell struct {
	client *interaction.Client
	rl     *readline.Instance
}

// New creates a new interactive shell for a device client.
func New(client *interaction.Client) (*Shell, error) {
	ep := client.Endpoint()
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          fmt.Sprintf("%s/%d> ", ep.DeviceType, ep.DeviceNumber),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Shell{client: client, rl: rl}, nil
}

func completer() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("get",
			readline.PcItem(interaction.AttrConnected),
			readline.PcItem(interaction.AttrDescription),
			readline.PcItem(interaction.AttrDriverInfo),
			readline.PcItem(interaction.AttrDriverVersion),
			readline.PcItem(interaction.AttrInterfaceVersion),
			readline.PcItem(interaction.AttrName),
			readline.PcItem(interaction.AttrSupportedActions),
		),
		readline.PcItem("set"),
		readline.PcItem("action"),
		readline.PcItem("connect"),
		readline.PcItem("disconnect"),
		readline.PcItem("info"),
		readline.PcItem("blind"),
		readline.PcItem("bool"),
		readline.PcItem("string"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}

// Run starts the interactive command loop.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()

	out := s.rl.Stdout()
	printHelp(out)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(out, "Exiting...")
			cancel()
			return
		}

		if Execute(ctx, s.client, out, line) {
			cancel()
			return
		}
	}
}

// Execute runs one command line against the client and writes the result
// to w. It returns true when the user asked to quit.
func Execute(ctx context.Context, client *interaction.Client, w io.Writer, line string) bool {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) == 0 {
		return false
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	var err error
	switch cmd {
	case "help", "?":
		printHelp(w)
	case "get", "g":
		err = cmdGet(ctx, client, w, args)
	case "set", "s":
		err = cmdSet(ctx, client, w, args)
	case "action", "a":
		err = cmdAction(ctx, client, w, args)
	case "connect":
		err = cmdConnect(ctx, client, w, true)
	case "disconnect":
		err = cmdConnect(ctx, client, w, false)
	case "info", "i":
		err = cmdInfo(ctx, client, w)
	case "blind", "bool", "string":
		err = cmdCommand(ctx, client, w, cmd, args)
	case "quit", "exit", "q":
		fmt.Fprintln(w, "Exiting...")
		return true
	default:
		fmt.Fprintf(w, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}

	if err != nil {
		fmt.Fprintf(w, "Error: %s\n", describeError(err))
	}
	return false
}

func printHelp(w io.Writer) {
	fmt.Fprint(w, `
Commands:
  get <attribute> [Name=Value...]   Read an attribute
  set <attribute> Name=Value...     Write an attribute
  action <name> [params...]         Invoke a custom action
  connect                           Connect the device hardware
  disconnect                        Disconnect the device hardware
  info                              Show device information
  blind <command> [raw]             Send a command, no reply
  bool <command> [raw]              Send a command, boolean reply
  string <command> [raw]            Send a command, string reply
  help                              Show this help
  quit                              Exit
`)
}

func cmdGet(ctx context.Context, client *interaction.Client, w io.Writer, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: get <attribute> [Name=Value...]")
	}
	params, err := ParseParams(args[1:])
	if err != nil {
		return err
	}
	v, err := client.GetAttribute(ctx, args[0], params)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s = %s\n", args[0], FormatValue(v))
	return nil
}

func cmdSet(ctx context.Context, client *interaction.Client, w io.Writer, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: set <attribute> Name=Value...")
	}
	params, err := ParseParams(args[1:])
	if err != nil {
		return err
	}
	if err := client.SetAttribute(ctx, args[0], params); err != nil {
		return err
	}
	fmt.Fprintln(w, "OK")
	return nil
}

func cmdAction(ctx context.Context, client *interaction.Client, w io.Writer, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: action <name> [params...]")
	}
	result, err := client.InvokeAction(ctx, args[0], args[1:]...)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s -> %q\n", args[0], result)
	return nil
}

func cmdConnect(ctx context.Context, client *interaction.Client, w io.Writer, connected bool) error {
	if err := client.SetConnected(ctx, connected); err != nil {
		return err
	}
	state, err := client.Connected(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "connected = %t\n", state)
	return nil
}

func cmdInfo(ctx context.Context, client *interaction.Client, w io.Writer) error {
	info, err := client.ReadInfo(ctx)
	if err != nil {
		return err
	}
	PrintInfo(w, info)
	return nil
}

func cmdCommand(ctx context.Context, client *interaction.Client, w io.Writer, kind string, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: %s <command> [raw]", kind)
	}
	raw := false
	if len(args) == 2 {
		b, err := strconv.ParseBool(args[1])
		if err != nil {
			return fmt.Errorf("raw must be true or false, got %q", args[1])
		}
		raw = b
	}

	switch kind {
	case "blind":
		if err := client.SendBlind(ctx, args[0], raw); err != nil {
			return err
		}
		fmt.Fprintln(w, "OK")
	case "bool":
		b, err := client.SendBoolReply(ctx, args[0], raw)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%t\n", b)
	case "string":
		s, err := client.SendStringReply(ctx, args[0], raw)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%q\n", s)
	}
	return nil
}

// PrintInfo writes the common device information.
func PrintInfo(w io.Writer, info *interaction.Info) {
	fmt.Fprintf(w, "Name:              %s\n", info.Name)
	fmt.Fprintf(w, "Description:       %s\n", info.Description)
	fmt.Fprintf(w, "Driver info:       %s\n", strings.Join(info.DriverInfo, " | "))
	fmt.Fprintf(w, "Driver version:    %s\n", info.DriverVersion)
	fmt.Fprintf(w, "Interface version: %d\n", info.InterfaceVersion)
	fmt.Fprintf(w, "Connected:         %t\n", info.Connected)
	if len(info.SupportedActions) == 0 {
		fmt.Fprintln(w, "Supported actions: none")
		return
	}
	fmt.Fprintln(w, "Supported actions:")
	for _, a := range info.SupportedActions {
		fmt.Fprintf(w, "  %s\n", a)
	}
}

// ParseParams parses Name=Value arguments. Repeated names keep every value.
func ParseParams(args []string) (url.Values, error) {
	params := url.Values{}
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid parameter %q (expected Name=Value)", arg)
		}
		params.Add(name, value)
	}
	return params, nil
}

// FormatValue renders an attribute value for display.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "<none>"
	case string:
		return strconv.Quote(val)
	case []any:
		parts := make([]string, len(val))
		for i, e := range val {
			parts[i] = FormatValue(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

// describeError renders device errors with their kind and code.
func describeError(err error) string {
	var de *interaction.DeviceError
	if errors.As(err, &de) {
		return fmt.Sprintf("%s (0x%X): %s", de.Kind, de.Code, de.Message)
	}
	var te *interaction.TransportError
	if errors.As(err, &te) {
		return fmt.Sprintf("HTTP %d: %s", te.StatusCode, te.Body)
	}
	return err.Error()
}
