// Package fieldstats computes summary statistics over numeric field
// payloads, used by the inspect command to sanity-check serialized
// simulation data.
package fieldstats

import (
	"encoding/binary"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/arthur-debert/gridbox/pkg/errors"
)

// Summary holds the descriptive statistics of one field
type Summary struct {
	Count  int     `json:"count" yaml:"count"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"stddev" yaml:"stddev"`
}

// Compute summarizes a float64 field. An empty field is invalid.
func Compute(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, errors.New(errors.ErrInvalidInput, "cannot summarize an empty field")
	}

	return Summary{
		Count:  len(values),
		Min:    floats.Min(values),
		Max:    floats.Max(values),
		Mean:   stat.Mean(values, nil),
		StdDev: stat.StdDev(values, nil),
	}, nil
}

// DecodeFloat64s interprets a field payload as little-endian float64
// values, the layout the binary backend stores numeric fields in.
func DecodeFloat64s(data []byte) ([]float64, error) {
	if len(data)%8 != 0 {
		return nil, errors.Newf(errors.ErrInvalidInput,
			"payload of %d bytes is not a float64 sequence", len(data))
	}

	values := make([]float64, len(data)/8)
	for i := range values {
		bits := binary.LittleEndian.Uint64(data[i*8:])
		values[i] = math.Float64frombits(bits)
	}
	return values, nil
}

// EncodeFloat64s is the inverse of DecodeFloat64s
func EncodeFloat64s(values []float64) []byte {
	data := make([]byte, len(values)*8)
	for i, v := range values {
		binary.LittleEndian.PutUint64(data[i*8:], math.Float64bits(v))
	}
	return data
}
