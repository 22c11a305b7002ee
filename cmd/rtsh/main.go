// The rtsh command runs an interactive shell for loading scene files,
// adjusting camera and render settings, and rendering PNGs.
package main

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ergochat/readline"

	rt "github.com/danlaine/raytrace"
	"github.com/danlaine/raytrace/internal/prim"
)

type Command struct {
	// Symbol is the canonical name of the command.
	// It should include the leading ":".
	Symbol       string
	Aliases      []string
	ExpectedArgs []string // For generating help.
	HelpText     string
	Run          func(*State) error
}

type State struct {
	args     []string
	commands []*Command

	scenePath string
	camera    rt.CameraOptions
	render    rt.RenderOptions
}

// errQuit is a signal to the main loop to quit.
var errQuit = errors.New("quit")

func defaultState() *State {
	return &State{
		camera: rt.CameraOptions{
			LookFrom:     prim.Vec3{X: 0, Y: 0, Z: 0},
			LookTo:       prim.Vec3{X: 0, Y: 0, Z: -1},
			FOV:          math.Pi / 3,
			ScreenWidth:  800,
			ScreenHeight: 600,
		},
		render: rt.RenderOptions{Depth: 4, Mode: rt.ModeFull},
	}
}

func main() {
	rl, err := readline.NewFromConfig(&readline.Config{
		Prompt:       "rtsh> ",
		HistoryFile:  readlineHistoryFilePath(),
		HistoryLimit: 10000,
	})
	if err != nil {
		log.Fatalf("readline init error: %v", err)
	}

	state := defaultState()

	var commands []*Command
	commandLookup := make(map[string]*Command)

	registerCommand := func(command *Command) {
		mustAddToLookup := func(symbol string) {
			if commandLookup[symbol] != nil {
				log.Fatalf("duplicate command: %v vs %v", command, commandLookup[symbol])
			}
			commandLookup[symbol] = command
		}
		commands = append(commands, command)
		mustAddToLookup(command.Symbol)
		for _, alias := range command.Aliases {
			mustAddToLookup(alias)
		}
	}

	registerCommand(&Command{
		Symbol:       ":load",
		Aliases:      []string{":l"},
		ExpectedArgs: []string{"<filename>"},
		HelpText:     "Load a scene file",
		Run: func(st *State) error {
			if len(st.args) < 1 {
				return errors.New("usage: :load <filename>")
			}
			if _, err := os.Stat(st.args[0]); err != nil {
				return err
			}
			st.scenePath = st.args[0]
			fmt.Printf("loaded scene: %s\n", st.scenePath)
			return nil
		},
	})
	registerCommand(&Command{
		Symbol:       ":render",
		Aliases:      []string{":r"},
		ExpectedArgs: []string{"<out.png>"},
		HelpText:     "Render the loaded scene to a PNG file",
		Run: func(st *State) error {
			if len(st.args) < 1 {
				return errors.New("usage: :render <out.png>")
			}
			if st.scenePath == "" {
				return errors.New("no scene loaded, use :load first")
			}
			img, err := rt.Render(st.scenePath, st.camera, st.render)
			if err != nil {
				return err
			}
			f, err := os.Create(st.args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			if err := png.Encode(f, img); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", st.args[0])
			return nil
		},
	})
	registerCommand(&Command{
		Symbol:       ":mode",
		ExpectedArgs: []string{"<full|depth|normal>"},
		HelpText:     "Set the render mode",
		Run: func(st *State) error {
			if len(st.args) < 1 {
				return fmt.Errorf("current mode: %v", st.render.Mode)
			}
			switch st.args[0] {
			case "full":
				st.render.Mode = rt.ModeFull
			case "depth":
				st.render.Mode = rt.ModeDepth
			case "normal":
				st.render.Mode = rt.ModeNormal
			default:
				return fmt.Errorf("unknown mode %q: want full, depth, or normal", st.args[0])
			}
			return nil
		},
	})
	registerCommand(&Command{
		Symbol:       ":depth",
		ExpectedArgs: []string{"<n>"},
		HelpText:     "Set the maximum recursion depth",
		Run: func(st *State) error {
			if len(st.args) < 1 {
				return fmt.Errorf("current depth: %d", st.render.Depth)
			}
			n, err := strconv.Atoi(st.args[0])
			if err != nil {
				return err
			}
			st.render.Depth = n
			return nil
		},
	})
	registerCommand(&Command{
		Symbol:       ":size",
		ExpectedArgs: []string{"<width> <height>"},
		HelpText:     "Set the output image dimensions",
		Run: func(st *State) error {
			if len(st.args) < 2 {
				return fmt.Errorf("current size: %dx%d", st.camera.ScreenWidth, st.camera.ScreenHeight)
			}
			w, err := strconv.Atoi(st.args[0])
			if err != nil {
				return err
			}
			h, err := strconv.Atoi(st.args[1])
			if err != nil {
				return err
			}
			st.camera.ScreenWidth = w
			st.camera.ScreenHeight = h
			return nil
		},
	})
	registerCommand(&Command{
		Symbol:       ":from",
		ExpectedArgs: []string{"<x> <y> <z>"},
		HelpText:     "Set the camera eye position",
		Run: func(st *State) error {
			v, err := parseVec3(st.args)
			if err != nil {
				return err
			}
			st.camera.LookFrom = v
			return nil
		},
	})
	registerCommand(&Command{
		Symbol:       ":to",
		ExpectedArgs: []string{"<x> <y> <z>"},
		HelpText:     "Set the camera look-at target",
		Run: func(st *State) error {
			v, err := parseVec3(st.args)
			if err != nil {
				return err
			}
			st.camera.LookTo = v
			return nil
		},
	})
	registerCommand(&Command{
		Symbol:   ":help",
		Aliases:  []string{":h"},
		HelpText: "Prints this help text",
		Run:      showHelp,
	})
	registerCommand(&Command{
		Symbol:   ":quit",
		Aliases:  []string{":q"},
		HelpText: "Exit the shell",
		Run: func(st *State) error {
			return errQuit
		},
	})
	state.commands = commands

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				return
			}
			log.Fatalf("readline error: %v", err)
		}
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if line[0] != ':' {
			fmt.Printf("unrecognized input (commands start with ':'; try :help)\n")
			continue
		}
		args := parseCommandArgs(line)
		if len(args) == 0 {
			log.Fatalf("bug in command parser: %q", line)
		}
		cmd := commandLookup[args[0]]
		if cmd == nil {
			fmt.Printf("Unknown command: %v\n", args[0])
			continue
		}
		state.args = args[1:]
		runErr := cmd.Run(state)
		if errors.Is(runErr, errQuit) {
			return
		}
		if runErr != nil {
			fmt.Printf("command error: %v\n", runErr)
		}
	}
}

func parseVec3(args []string) (prim.Vec3, error) {
	if len(args) < 3 {
		return prim.Vec3{}, errors.New("expected 3 numbers: <x> <y> <z>")
	}
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return prim.Vec3{}, err
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return prim.Vec3{}, err
	}
	z, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return prim.Vec3{}, err
	}
	return prim.Vec3{X: x, Y: y, Z: z}, nil
}

func showHelp(st *State) error {
	usageHelp := make([]string, len(st.commands))
	maxLen := 0
	for i, command := range st.commands {
		parts := []string{command.Symbol}
		parts = append(parts, command.Aliases...)
		parts = append(parts, command.ExpectedArgs...)
		usageHelp[i] = strings.Join(parts, " ")
		maxLen = max(maxLen, len(usageHelp[i]))
	}
	fmt.Printf("Commands:\n")
	for i, command := range st.commands {
		fmt.Printf("  %-*s : %s\n", maxLen, usageHelp[i], command.HelpText)
	}
	return nil
}

func readlineHistoryFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("user home dir error: %v\n", err)
		return ""
	}
	return filepath.Join(home, ".rtsh_history")
}

func parseCommandArgs(line string) []string {
	var args []string
	var start int
	for i := range line {
		curr := line[i]
		if strings.IndexByte(" \t\n\r", curr) != -1 {
			if start < i {
				args = append(args, line[start:i])
			}
			start = i + 1
		}
	}
	if start < len(line) {
		args = append(args, line[start:])
	}
	return args
}
