// internal/hawkeye/control.go
package hawkeye

import (
	"bufio"
	"fmt"
	"os"

	"github.com/tamzrod/touchdiag/internal/mxt"
)

// WriteControl writes the schema file describing the byte layout of one
// time-series record: a fixed uint8 column for the auxiliary tag, then
// one int16 column per cell in x-major/y-minor order. Column and row
// numbers are 1-based; the cell label keeps the chip's 0-based
// coordinates.
func WriteControl(path string, geo mxt.Geometry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("hawkeye: open %s: %w", path, err)
	}

	buf := bufio.NewWriter(f)
	fmt.Fprintf(buf, "uint8,1,1,TIN\n")

	for x := 0; x < geo.XSize; x++ {
		for y := 0; y < geo.YSize; y++ {
			fmt.Fprintf(buf, "int16_lsb_msb,%d,%d,X%dY%d_Delta16\n", y+1, x+1, x, y)
		}
	}

	if err := buf.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("hawkeye: flush %s: %w", path, err)
	}
	return f.Close()
}
