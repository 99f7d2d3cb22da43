package intcode

//go:generate mockgen -source device.go -destination device_mock.go -package intcode

// Device provides the input and output of an Intcode machine.
type Device interface {
	// In returns the next input value.
	In() (int, error)
	// Out consumes an output value.
	Out(v int) error
}
