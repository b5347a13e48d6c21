// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"

	"github.com/ezrec/fastrv/cpu"
	"github.com/ezrec/fastrv/emulator"
	"github.com/ezrec/fastrv/memory"
	"github.com/ezrec/fastrv/video"
)

func main() {
	var dataSize int
	var input string
	var output string
	var headless bool
	var unchecked bool
	var verbose bool

	flag.IntVar(&dataSize, "d", 0x200000, "Data segment size in bytes")
	flag.StringVar(&input, "i", "-", "Console input")
	flag.StringVar(&output, "o", "-", "Console output")
	flag.BoolVar(&headless, "headless", false, "Run without a display window")
	flag.BoolVar(&unchecked, "unchecked", false, "Skip memory bounds checking")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: Expected a single assembly file, got: %v", os.Args[0], flag.Args())
	}

	source := flag.Arg(0)
	inf, err := os.Open(source)
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}
	defer inf.Close()

	asm := &cpu.Assembler{Verbose: verbose}
	for equ, value := range emulator.Defines() {
		asm.Predefine(equ, value)
	}

	prog, err := asm.Parse(inf, dataSize)
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}

	mem := memory.New(prog.Data, !unchecked)

	emu := emulator.New(prog, mem)
	emu.Verbose = verbose

	if input == "-" {
		emu.Input = os.Stdin
	} else {
		cin, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer cin.Close()
		emu.Input = cin
	}

	if output == "-" {
		emu.Output = os.Stdout
	} else {
		cout, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer cout.Close()
		emu.Output = cout
	}

	emu.Reset()

	if headless {
		err = emu.Run()
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	// The display owns the main goroutine; the engine runs beside it and
	// closes the window when the guest program terminates.
	errc := make(chan error, 1)
	go func() {
		errc <- emu.Run()
	}()

	disp := video.NewDisplay(mem.Mmio())
	disp.Done = emu.Halted
	err = disp.Run(source)
	if err != nil {
		log.Fatal(err)
	}

	select {
	case err = <-errc:
		if err != nil {
			log.Fatal(err)
		}
	default:
		// Window closed while the guest was still running.
	}
}
