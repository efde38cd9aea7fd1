// Command graphx is the GraphX VM's CLI entry point (spec.md §6):
// `graphx [--debug] <program.bin>`. It exits 0 on a clean HALT and 1 on
// a load error or an ERROR status.
//
// Grounded on the teacher's cmd/interp and cmd/vm: open the file, load
// it, drive the machine to completion, report failures via log and a
// non-zero exit code. The flag parsing is generalized from the
// teacher's stdlib flag to github.com/pborman/getopt/v2 (long and short
// forms, as rcornwell-S370's main.go uses it), and single-stepping is
// generalized from the teacher's bare fmt.Scanln() pause to an
// interactive github.com/peterh/liner prompt.
package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/pborman/getopt/v2"
	"github.com/peterh/liner"

	"github.com/graphx-vm/graphx/pkg/loader"
	"github.com/graphx-vm/graphx/pkg/trace"
	"github.com/graphx-vm/graphx/pkg/vm"
)

func main() {
	log.SetFlags(0)
	os.Exit(run())
}

func run() int {
	debug := getopt.BoolLong("debug", 'd', "single-step with an interactive prompt between instructions")
	verbose := getopt.BoolLong("verbose", 'v', "log every executed instruction")
	dumpPath := getopt.StringLong("dump", 'o', "", "write the post-halt memory grid to this file instead of stdout")
	help := getopt.BoolLong("help", 'h', "show usage")
	getopt.Parse()

	args := getopt.Args()
	if *help || len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: graphx [--debug] [--verbose] [--dump file] <program.bin>")
		return 1
	}

	fp, err := os.Open(args[0])
	if err != nil {
		log.Print(err)
		return 1
	}
	defer fp.Close()

	prog, err := loader.Load(fp)
	if err != nil {
		log.Print(err)
		return 1
	}

	machine := vm.New(prog.Graph)
	if err := machine.LoadProgram(prog.Words); err != nil {
		log.Print(err)
		return 1
	}
	for i, w := range prog.Mem {
		if err := machine.Regs.StoreMem(uint32(i), w); err != nil {
			log.Print(err)
			return 1
		}
	}

	dump := os.Stdout
	if *dumpPath != "" {
		f, err := os.Create(*dumpPath)
		if err != nil {
			log.Print(err)
			return 1
		}
		defer f.Close()
		dump = f
	}
	logger := slog.Default()
	if *verbose {
		// The default logger drops Debug records, which is the level
		// Recorder uses for its per-instruction trace.
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	machine.Observer = trace.NewRecorder(logger, dump, *verbose)

	if *debug {
		runStepping(machine)
	} else if err := machine.Run(); err != nil {
		return 1
	}

	if machine.Status == vm.Errored {
		return 1
	}
	return 0
}

// runStepping drives the machine one instruction at a time, pausing on
// an interactive prompt between each (spec.md §5: the debug hook is
// synchronous and may block the host, never the VM itself).
func runStepping(machine *vm.VM) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for machine.Status == vm.Running {
		if _, err := line.Prompt(fmt.Sprintf("graphx[pc=%d]> ", machine.Regs.PC)); err != nil {
			return
		}
		if err := machine.Step(); err != nil {
			return
		}
	}
}
