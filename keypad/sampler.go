package keypad

import (
	// gpio lib
	"github.com/stianeikeland/go-rpio"
)

// Sampler produces one electrical snapshot of the matrix: a byte per row
// with bit c set when cell (row, c) is closed. A sample is always
// well-defined; missing hardware is indistinguishable at this layer.
type Sampler interface {
	Sample() []uint8
	Close()
}

// PinSampler scans a real matrix over GPIO. Column lines are asserted one
// at a time; row lines idle as pulled-up inputs, so a closed contact reads
// low (the bit recorded is the inverted signal).
type PinSampler struct {
	rows []rpio.Pin
	cols []rpio.Pin
}

// OpenPinSampler maps BCM pin numbers to the matrix lines and opens the
// GPIO device. Rows are configured as pulled-up inputs; columns are left
// as inputs between scans so the lines can be shared with other hardware.
func OpenPinSampler(rowPins, colPins []int) (*PinSampler, error) {
	if err := rpio.Open(); err != nil {
		return nil, err
	}

	ps := &PinSampler{
		rows: make([]rpio.Pin, len(rowPins)),
		cols: make([]rpio.Pin, len(colPins)),
	}
	for i, p := range rowPins {
		ps.rows[i] = rpio.Pin(p)
		ps.rows[i].Input()
		ps.rows[i].PullUp() // GND through a closed contact => pressed
	}
	for i, p := range colPins {
		ps.cols[i] = rpio.Pin(p)
		ps.cols[i].Input()
	}
	return ps, nil
}

// Sample drives each column low in turn and reads every row.
func (ps *PinSampler) Sample() []uint8 {
	bits := make([]uint8, len(ps.rows))
	for c := range ps.cols {
		ps.cols[c].Output()
		ps.cols[c].Low()
		for r := range ps.rows {
			if ps.rows[r].Read() == rpio.Low {
				bits[r] |= 1 << uint(c)
			}
		}
		// back to high impedance so the line doesn't fight anything
		// else sharing the pin
		ps.cols[c].Input()
	}
	return bits
}

// Close releases the GPIO device.
func (ps *PinSampler) Close() {
	rpio.Close()
}
