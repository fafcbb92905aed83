package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type InputParameters struct {
	Title           string               `yaml:"Title"`
	Dimension       int                  `yaml:"Dimension"`
	Cells           []int                `yaml:"Cells"`   // interior cells per axis
	XMin            []float64            `yaml:"XMin"`    // domain extents per axis
	XMax            []float64            `yaml:"XMax"`
	Reynolds        float64              `yaml:"Reynolds"`
	Smagorinsky     float64              `yaml:"Smagorinsky"` // θ, zero disables the closure
	Gravity         []float64            `yaml:"Gravity"`
	Diffusivity     float64              `yaml:"Diffusivity"`      // temperature diffusivity
	DissipationCoef float64              `yaml:"DissipationCoef"`  // viscous heating scale
	BCs             map[string][2]string `yaml:"BCs"`              // axis name -> (low, high) tags
	ParallelDegree  int                  `yaml:"ParallelDegree"`   // zero selects NumCPU
}

func (ip *InputParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d]\t\t\t\t= Dimension\n", ip.Dimension)
	fmt.Printf("%v\t\t= Cells\n", ip.Cells)
	fmt.Printf("%8.5f\t\t= Reynolds\n", ip.Reynolds)
	if ip.Smagorinsky != 0 {
		fmt.Printf("%8.5f\t\t= Smagorinsky θ\n", ip.Smagorinsky)
	}
	keys := make([]string, len(ip.BCs))
	i := 0
	for k := range ip.BCs {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("BCs[%s] = %v\n", key, ip.BCs[key])
	}
}
