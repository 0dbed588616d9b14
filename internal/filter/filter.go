// Package filter provides the named reconstruction kernels used to resample
// images.
//
// Filters are stateless strategy values created from a name. The kernels come
// from github.com/disintegration/imaging so that the reformat step and the
// fractional resampler reconstruct with exactly the same function.
package filter

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
)

// ErrUnknownFilter is returned by Create for names that are not registered.
var ErrUnknownFilter = errors.New("unknown filter")

// Default is the filter used when a caller leaves the name empty.
const Default = "mitchell"

// Filter is a separable reconstruction kernel.
type Filter struct {
	name     string
	resample imaging.ResampleFilter
}

var registry = map[string]imaging.ResampleFilter{
	"nearest":    imaging.NearestNeighbor,
	"box":        imaging.Box,
	"bilinear":   imaging.Linear,
	"hermite":    imaging.Hermite,
	"mitchell":   imaging.MitchellNetravali,
	"catmullrom": imaging.CatmullRom,
	"bspline":    imaging.BSpline,
	"gaussian":   imaging.Gaussian,
	"bartlett":   imaging.Bartlett,
	"lanczos":    imaging.Lanczos,
	"hann":       imaging.Hann,
	"hamming":    imaging.Hamming,
	"blackman":   imaging.Blackman,
	"welch":      imaging.Welch,
	"cosine":     imaging.Cosine,
}

var aliases = map[string]string{
	"":                  Default,
	"linear":            "bilinear",
	"triangle":          "bilinear",
	"nearestneighbor":   "nearest",
	"mitchellnetravali": "mitchell",
	"cubic":             "mitchell",
}

// Create returns the filter registered under name. Names are case-insensitive
// and an empty name selects Default.
func Create(name string) (Filter, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	rf, ok := registry[key]
	if !ok {
		return Filter{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownFilter, name, strings.Join(Names(), ", "))
	}
	return Filter{name: key, resample: rf}, nil
}

// Names returns the canonical names of all registered filters, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Name returns the canonical filter name.
func (f Filter) Name() string {
	return f.name
}

// Support returns the kernel radius in pixels. A zero support means point
// sampling: the pixel containing the sample position is returned unfiltered.
func (f Filter) Support() float64 {
	return f.resample.Support
}

// Radius returns the number of whole pixels the kernel can reach on either
// side of a sample position.
func (f Filter) Radius() int {
	return int(math.Ceil(f.resample.Support))
}

// IsPoint reports whether the filter does no reconstruction at all.
func (f Filter) IsPoint() bool {
	return f.resample.Support <= 0 || f.resample.Kernel == nil
}

// Weight evaluates the kernel at distance x from the sample position.
func (f Filter) Weight(x float64) float64 {
	if f.IsPoint() {
		if x > -0.5 && x <= 0.5 {
			return 1
		}
		return 0
	}
	return f.resample.Kernel(x)
}

// Resample returns the underlying resize filter.
func (f Filter) Resample() imaging.ResampleFilter {
	return f.resample
}

func (f Filter) String() string {
	return f.name
}
