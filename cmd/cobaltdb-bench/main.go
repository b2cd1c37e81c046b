package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cobaltdb/walengine/pkg/engine"
)

var (
	flagHelp       bool
	flagInMemory   bool
	flagPath       string
	flagPages      int
	flagBenchmarks string
)

func init() {
	flag.BoolVar(&flagHelp, "help", false, "Show help")
	flag.BoolVar(&flagHelp, "h", false, "Show help (short)")
	flag.BoolVar(&flagInMemory, "memory", true, "Use in-memory storage")
	flag.StringVar(&flagPath, "path", "./bench.db", "Database path (ignored with -memory)")
	flag.IntVar(&flagPages, "pages", 10000, "Number of pages for benchmarks")
	flag.StringVar(&flagBenchmarks, "bench", "all", "Benchmarks to run: all, write, read, checkpoint")
}

func main() {
	flag.Parse()

	if flagHelp {
		printHelp()
		os.Exit(0)
	}

	runBenchmarks()
}

func printHelp() {
	fmt.Print(`
CobaltDB WAL Engine Benchmark Tool v1.0

Usage:
  cobaltdb-bench [options]

Options:
  -h, -help           Show this help message
  -memory             Use in-memory storage (default: true)
  -path <path>        Database file path (ignored with -memory)
  -pages <n>          Number of pages to drive through benchmarks (default: 10000)
  -bench <name>       Benchmark to run: all, write, read, checkpoint

Examples:
  cobaltdb-bench
  cobaltdb-bench -pages 50000
  cobaltdb-bench -bench write
`)
}

func runBenchmarks() {
	fmt.Printf("CobaltDB WAL Engine Benchmark Tool\n")
	fmt.Printf("===================================\n")
	fmt.Printf("Pages: %d\n", flagPages)
	fmt.Printf("Mode: %s\n", func() string {
		if flagInMemory {
			return "in-memory"
		}
		return "disk"
	}())
	fmt.Println()

	db, err := engine.Open(flagPath, &engine.Options{
		InMemory:           flagInMemory,
		CheckpointInterval: 0,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening engine: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	switch flagBenchmarks {
	case "all":
		runWriteBenchmark(db)
		runReadBenchmark(db)
		runCheckpointBenchmark(db)
	case "write":
		runWriteBenchmark(db)
	case "read":
		runReadBenchmark(db)
	case "checkpoint":
		runCheckpointBenchmark(db)
	default:
		fmt.Printf("Unknown benchmark: %s\n", flagBenchmarks)
	}
}

func runWriteBenchmark(db *engine.Engine) {
	fmt.Println("=== WRITE Benchmark (one page per commit) ===")
	data := make([]byte, 4096)

	start := time.Now()
	for i := 0; i < flagPages; i++ {
		w, err := db.BeginWrite()
		if err != nil {
			fmt.Fprintf(os.Stderr, "begin write: %v\n", err)
			os.Exit(1)
		}
		data[0] = byte(i)
		if err := db.StageWrite(w, uint32(i), data); err != nil {
			fmt.Fprintf(os.Stderr, "stage write: %v\n", err)
			os.Exit(1)
		}
		if err := db.Commit(w); err != nil {
			fmt.Fprintf(os.Stderr, "commit: %v\n", err)
			os.Exit(1)
		}
	}
	elapsed := time.Since(start)

	ops := float64(flagPages) / elapsed.Seconds()
	fmt.Printf("Time: %v\n", elapsed)
	fmt.Printf("Ops/sec: %.2f\n", ops)
	fmt.Printf("Avg time/op: %.2f ns\n", float64(elapsed.Nanoseconds())/float64(flagPages))
	fmt.Println()
}

func runReadBenchmark(db *engine.Engine) {
	fmt.Println("=== READ Benchmark (fresh snapshot per page) ===")

	start := time.Now()
	for i := 0; i < flagPages; i++ {
		r := db.BeginRead()
		if _, err := db.Read(r, uint32(i)); err != nil {
			fmt.Fprintf(os.Stderr, "read: %v\n", err)
			os.Exit(1)
		}
		db.EndRead(r)
	}
	elapsed := time.Since(start)

	ops := float64(flagPages) / elapsed.Seconds()
	fmt.Printf("Time: %v\n", elapsed)
	fmt.Printf("Ops/sec: %.2f\n", ops)
	fmt.Println()
}

func runCheckpointBenchmark(db *engine.Engine) {
	fmt.Println("=== CHECKPOINT Benchmark (drain accumulated WAL) ===")

	start := time.Now()
	if err := db.Checkpoint(); err != nil {
		fmt.Fprintf(os.Stderr, "checkpoint: %v\n", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	fmt.Printf("Time: %v\n", elapsed)
	fmt.Println()
}
