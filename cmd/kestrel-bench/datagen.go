package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/kestrelchess/kestrel/internal/datagen"
)

// datagenCmd writes self-play training data to stdout as CSV. Only
// produces rows when the binary was built with `-tags gen`; otherwise it
// reports why and exits non-zero, rather than silently emitting nothing.
type datagenCmd struct {
	Games     int           `help:"Number of self-play games." default:"100"`
	MaxPlies  int           `help:"Ply cap per game." default:"200"`
	MoveTime  time.Duration `help:"Think time per self-play move." default:"100ms"`
}

func (c *datagenCmd) Run() error {
	if !datagen.Available {
		return fmt.Errorf("datagen: rebuild with -tags gen to enable self-play generation")
	}

	records, err := datagen.Generate(c.Games, c.MaxPlies, c.MoveTime)
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()
	if err := w.Write(datagen.Header); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.FEN,
			strconv.FormatInt(int64(r.Material), 10),
			strconv.FormatInt(int64(r.Mobility), 10),
			strconv.FormatInt(int64(r.PawnStructure), 10),
			strconv.FormatFloat(r.Result, 'f', 3, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
