//go:build linux

package gpiodriver

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/crosslight/crosslight"
)

// Pins assigns BCM pin numbers to every lamp and button.
type Pins struct {
	NSRed    int
	NSYellow int
	NSGreen  int

	EWRed    int
	EWYellow int
	EWGreen  int

	PedRed   int
	PedGreen int

	BtnNS  int
	BtnEW  int
	BtnPed int
}

// DefaultPins is the wiring of the reference build.
func DefaultPins() Pins {
	return Pins{
		NSRed:    2,
		NSYellow: 4,
		NSGreen:  5,
		EWRed:    18,
		EWYellow: 19,
		EWGreen:  21,
		PedRed:   22,
		PedGreen: 23,
		BtnNS:    12,
		BtnEW:    13,
		BtnPed:   14,
	}
}

func pinByNumber(n int) (gpio.PinIO, error) {
	p := gpioreg.ByName(fmt.Sprintf("GPIO%d", n))
	if p == nil {
		return nil, crosslight.NewDriverError("gpio", fmt.Sprintf("pin GPIO%d not found", n), nil)
	}
	return p, nil
}

// Buttons reads the three button lines from GPIO inputs.
type Buttons struct {
	ns  gpio.PinIO
	ew  gpio.PinIO
	ped gpio.PinIO
}

// ReadLevels implements crosslight.ButtonReader.
func (b *Buttons) ReadLevels() crosslight.ButtonLevels {
	return crosslight.ButtonLevels{
		NS:  crosslight.Level(b.ns.Read() == gpio.High),
		EW:  crosslight.Level(b.ew.Read() == gpio.High),
		Ped: crosslight.Level(b.ped.Read() == gpio.High),
	}
}

// lampSet maps a signal state onto the individual lamps.
type lampSet struct {
	nsRed, nsYellow, nsGreen gpio.PinIO
	ewRed, ewYellow, ewGreen gpio.PinIO
	pedRed, pedGreen         gpio.PinIO
}

// Signals drives the signal lamps through GPIO outputs.
type Signals struct {
	lamps lampSet
}

// Set implements crosslight.SignalDriver. Errors from individual pins are
// ignored; a lamp that cannot be driven stays in its previous state.
func (s *Signals) Set(state crosslight.SignalState) {
	l := s.lamps

	nsGreen := state == crosslight.SignalNSGreen
	nsYellow := state == crosslight.SignalNSYellow
	ewGreen := state == crosslight.SignalEWGreen
	ewYellow := state == crosslight.SignalEWYellow
	pedGreen := state == crosslight.SignalPedGreen

	_ = l.nsGreen.Out(level(nsGreen))
	_ = l.nsYellow.Out(level(nsYellow))
	_ = l.nsRed.Out(level(!nsGreen && !nsYellow))

	_ = l.ewGreen.Out(level(ewGreen))
	_ = l.ewYellow.Out(level(ewYellow))
	_ = l.ewRed.Out(level(!ewGreen && !ewYellow))

	_ = l.pedGreen.Out(level(pedGreen))
	_ = l.pedRed.Out(level(!pedGreen))
}

func level(on bool) gpio.Level {
	if on {
		return gpio.High
	}
	return gpio.Low
}

// Open initializes the periph host, claims every configured pin, and
// returns a hardware set ready for crosslight.New. The display is not a
// GPIO device; the caller supplies it.
func Open(pins Pins, display crosslight.Display) (crosslight.Hardware, error) {
	if _, err := host.Init(); err != nil {
		return crosslight.Hardware{}, crosslight.NewDriverError("gpio", "host init failed", err)
	}

	inputs := make([]gpio.PinIO, 0, 3)
	for _, n := range []int{pins.BtnNS, pins.BtnEW, pins.BtnPed} {
		p, err := pinByNumber(n)
		if err != nil {
			return crosslight.Hardware{}, err
		}
		if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return crosslight.Hardware{}, crosslight.NewDriverError(
				"gpio", fmt.Sprintf("cannot configure GPIO%d as pull-up input", n), err)
		}
		inputs = append(inputs, p)
	}

	outputs := make([]gpio.PinIO, 0, 8)
	for _, n := range []int{
		pins.NSRed, pins.NSYellow, pins.NSGreen,
		pins.EWRed, pins.EWYellow, pins.EWGreen,
		pins.PedRed, pins.PedGreen,
	} {
		p, err := pinByNumber(n)
		if err != nil {
			return crosslight.Hardware{}, err
		}
		if err := p.Out(gpio.Low); err != nil {
			return crosslight.Hardware{}, crosslight.NewDriverError(
				"gpio", fmt.Sprintf("cannot configure GPIO%d as output", n), err)
		}
		outputs = append(outputs, p)
	}

	return crosslight.Hardware{
		Buttons: &Buttons{ns: inputs[0], ew: inputs[1], ped: inputs[2]},
		Signals: &Signals{lamps: lampSet{
			nsRed: outputs[0], nsYellow: outputs[1], nsGreen: outputs[2],
			ewRed: outputs[3], ewYellow: outputs[4], ewGreen: outputs[5],
			pedRed: outputs[6], pedGreen: outputs[7],
		}},
		Display: display,
	}, nil
}
