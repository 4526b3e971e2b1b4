package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/terraincognita07/kira/internal/demo"
)

// RunDemoBuildCommand splits a full sample export into the monthly partition
// files served to demo visitors.
func RunDemoBuildCommand(inputPath string, outDir string, out io.Writer) error {
	if inputPath == "" || outDir == "" {
		return errors.New("input and output paths are required")
	}
	if out == nil {
		out = os.Stdout
	}

	entries, err := demo.ReadEntries(inputPath)
	if err != nil {
		return err
	}

	partitions := demo.BuildPartitions(entries)
	if err := demo.WritePartitions(outDir, partitions); err != nil {
		return err
	}

	fmt.Fprintf(out, "Wrote %d monthly partitions to %s\n", len(partitions.Index.Months), outDir)
	fmt.Fprintf(out, "Source: %d entries from %d users\n", partitions.Index.TotalEntries, partitions.Index.UniqueUsers)
	return nil
}
