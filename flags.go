package vbfplot

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/decibelcooper/vbfplot/vbf"
)

// FloatArrayFlags collects a repeatable float flag. Values given on the
// command line replace the defaults instead of being appended to them.
type FloatArrayFlags struct {
	Array   []float64
	beenSet bool
}

// Set accepts a single value or a comma separated list.
func (f *FloatArrayFlags) Set(valueStr string) error {
	var values []float64
	for _, s := range strings.Split(valueStr, ",") {
		value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return err
		}
		values = append(values, value)
	}

	if !f.beenSet {
		f.beenSet = true
		f.Array = nil
	}

	f.Array = append(f.Array, values...)
	return nil
}

func (f *FloatArrayFlags) String() string {
	if f == nil {
		return "[]"
	}
	return fmt.Sprint(f.Array)
}

// Sorted returns the values in increasing order.
func (f *FloatArrayFlags) Sorted() []float64 {
	s := append([]float64(nil), f.Array...)
	sort.Float64s(s)
	return s
}

// StringArrayFlags collects a repeatable string flag.
type StringArrayFlags struct {
	Array []string
}

// Set accepts a single value or a comma separated list.
func (f *StringArrayFlags) Set(valueStr string) error {
	for _, s := range strings.Split(valueStr, ",") {
		if s = strings.TrimSpace(s); s != "" {
			f.Array = append(f.Array, s)
		}
	}
	return nil
}

func (f *StringArrayFlags) String() string {
	if f == nil {
		return ""
	}
	return strings.Join(f.Array, ",")
}

// LoadConfig returns the configuration stored in the named file, or the
// default configuration when name is empty.
func LoadConfig(name string) (vbf.Config, error) {
	if name == "" {
		return vbf.DefaultConfig(), nil
	}
	return vbf.ReadConfigFile(name)
}
