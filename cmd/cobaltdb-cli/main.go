// Command cobaltdb-cli is an interactive page-level REPL over the
// engine's public operations (§6): it drives BeginWrite/StageWrite/
// Commit and BeginRead/Read/EndRead directly, since the relational
// layer that would normally sit above the engine is out of this repo's
// scope.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cobaltdb/walengine/pkg/engine"
	"github.com/cobaltdb/walengine/pkg/txn"
)

var (
	flagHelp     bool
	flagInMemory bool
	flagPath     string
)

func init() {
	flag.BoolVar(&flagHelp, "help", false, "Show help")
	flag.BoolVar(&flagHelp, "h", false, "Show help (short)")
	flag.BoolVar(&flagInMemory, "memory", true, "Use in-memory storage")
	flag.StringVar(&flagPath, "path", "./cobalt.db", "Database path (ignored with -memory)")
}

func main() {
	flag.Parse()

	if flagHelp {
		printHelp()
		os.Exit(0)
	}

	path := flagPath
	if flagInMemory {
		path = ":memory:"
	}

	db, err := engine.Open(path, &engine.Options{InMemory: flagInMemory})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening engine: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	runInteractive(db)
}

func printHelp() {
	fmt.Print(`
CobaltDB WAL Engine CLI v1.0

Usage:
  cobaltdb-cli [options]

Options:
  -h, -help      Show this help message
  -memory        Use in-memory storage (default: true)
  -path <path>   Database file path (ignored with -memory)

Interactive commands:
  begin                        Start a writer; fails if one is active
  write <page> <byte>          Stage page <page> filled with <byte> (0-255)
  commit                       Commit the active writer
  abort                        Discard the active writer's staged pages
  read <page>                  Read <page> against a new snapshot reader
  checkpoint                   Run a checkpoint
  stats                        Print WAL size / reader counts
  .quit, .exit                 Exit
`)
}

func runInteractive(db *engine.Engine) {
	reader := bufio.NewReader(os.Stdin)
	var writer *txn.WriterHandle

	fmt.Println("CobaltDB WAL Engine CLI")
	fmt.Println("Type '.help' for commands, '.quit' to exit")
	fmt.Println()

	for {
		fmt.Print("walengine> ")

		line, err := reader.ReadString('\n')
		if err != nil {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case ".quit", ".exit":
			fmt.Println("Goodbye!")
			return
		case ".help":
			printHelp()

		case "begin":
			if writer != nil {
				fmt.Println("a writer is already active; commit or abort it first")
				continue
			}
			w, err := db.BeginWrite()
			if err != nil {
				fmt.Printf("error: %v\n", err)
				continue
			}
			writer = w
			fmt.Printf("writer started, tx=%d\n", w.TxID)

		case "write":
			if writer == nil {
				fmt.Println("no active writer; run 'begin' first")
				continue
			}
			if len(fields) != 3 {
				fmt.Println("usage: write <page> <byte>")
				continue
			}
			pageID, err := strconv.ParseUint(fields[1], 10, 32)
			if err != nil {
				fmt.Printf("bad page id: %v\n", err)
				continue
			}
			fillByte, err := strconv.ParseUint(fields[2], 10, 8)
			if err != nil {
				fmt.Printf("bad fill byte: %v\n", err)
				continue
			}
			data := make([]byte, 4096)
			for i := range data {
				data[i] = byte(fillByte)
			}
			if err := db.StageWrite(writer, uint32(pageID), data); err != nil {
				fmt.Printf("error: %v\n", err)
				continue
			}
			fmt.Printf("staged page %d\n", pageID)

		case "commit":
			if writer == nil {
				fmt.Println("no active writer")
				continue
			}
			if err := db.Commit(writer); err != nil {
				fmt.Printf("error: %v\n", err)
			} else {
				fmt.Println("committed")
			}
			writer = nil

		case "abort":
			if writer == nil {
				fmt.Println("no active writer")
				continue
			}
			db.AbortWrite(writer)
			writer = nil
			fmt.Println("aborted")

		case "read":
			if len(fields) != 2 {
				fmt.Println("usage: read <page>")
				continue
			}
			pageID, err := strconv.ParseUint(fields[1], 10, 32)
			if err != nil {
				fmt.Printf("bad page id: %v\n", err)
				continue
			}
			r := db.BeginRead()
			data, err := db.Read(r, uint32(pageID))
			db.EndRead(r)
			if err != nil {
				fmt.Printf("error: %v\n", err)
				continue
			}
			fmt.Printf("page %d first byte: %d (all-same: %v)\n", pageID, data[0], allSame(data))

		case "checkpoint":
			if err := db.Checkpoint(); err != nil {
				fmt.Printf("error: %v\n", err)
			} else {
				fmt.Println("checkpoint complete")
			}

		case "stats":
			s := db.Stats()
			fmt.Printf("wal_size=%d oldest_reader_snapshot=%d active_readers=%d\n",
				s.WALSize, s.OldestReaderSnapshot, s.ActiveReaders)

		default:
			fmt.Printf("unknown command: %s (try .help)\n", fields[0])
		}
	}
}

func allSame(data []byte) bool {
	if len(data) == 0 {
		return true
	}
	for _, b := range data[1:] {
		if b != data[0] {
			return false
		}
	}
	return true
}
