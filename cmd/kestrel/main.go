// Command kestrel is the UCI front-end: it owns the command loop, logging,
// and FEN/move-list parsing described as external collaborators in the
// core's design, driving the engine package's Position/Search/HashTable.
// It follows the teacher's main.go for its flags, logging setup and
// read-loop shape (bitbucket.org/zurichess/zurichess/zurichess/main.go).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"time"
)

var (
	buildVersion = "(devel)"

	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	version    = flag.Bool("version", false, "only print version and exit")
	logDir     = flag.String("logdir", "logs", "directory for the rolling engine log")
)

func main() {
	fmt.Printf("kestrel %v, built with %v, running on %v\n", buildVersion, runtime.Version(), runtime.GOARCH)

	flag.Parse()
	if *version {
		return
	}
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	logFile := openEngineLog(*logDir)
	if logFile != nil {
		defer logFile.Close()
		log.SetOutput(io.MultiWriter(os.Stdout, logFile))
	} else {
		log.SetOutput(os.Stdout)
	}
	log.SetPrefix("info string ")
	log.SetFlags(0)

	uci := NewUCI()
	bio := bufio.NewReader(os.Stdin)
	for {
		line, _, err := bio.ReadLine()
		if err != nil {
			break
		}
		if err := uci.Execute(string(line)); err != nil {
			if err == errQuit {
				os.Exit(0)
			}
			log.Printf("Failed to run command: %v", err)
		}
	}
}

// openEngineLog creates logs/EngineLog-<unix-ms>.txt, following section 6's
// "persisted state" requirement. A failure to create the log directory is
// not fatal: the engine still runs, just without a file sink.
func openEngineLog(dir string) *os.File {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil
	}
	name := fmt.Sprintf("EngineLog-%d.txt", time.Now().UnixMilli())
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil
	}
	return f
}
