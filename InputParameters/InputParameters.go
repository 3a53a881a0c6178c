package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file controlling a mesh
// verification run: which channels to compare, which named attributes, and
// optional tolerance overrides. Zero tolerances mean "use the defaults".
type VerificationParameters struct {
	Title                 string   `yaml:"Title"`
	CoordinateTolerance   float64  `yaml:"CoordinateTolerance"`
	AttributeTolerance    float64  `yaml:"AttributeTolerance"`
	Channels              []string `yaml:"Channels"` // vertices, faces, voxels
	Attributes            []string `yaml:"Attributes"`
	VoxelTensorAttributes []string `yaml:"VoxelTensorAttributes"`
}

func (vp *VerificationParameters) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, vp); err != nil {
		return err
	}
	for _, ch := range vp.Channels {
		switch ch {
		case "vertices", "faces", "voxels":
		default:
			return fmt.Errorf("unknown channel %q, want vertices, faces or voxels", ch)
		}
	}
	return nil
}

func (vp *VerificationParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", vp.Title)
	fmt.Printf("%8.2e\t\t= CoordinateTolerance\n", vp.CoordinateTolerance)
	fmt.Printf("%8.2e\t\t= AttributeTolerance\n", vp.AttributeTolerance)
	fmt.Printf("%v\t= Channels\n", vp.Channels)
	attrs := append([]string{}, vp.Attributes...)
	sort.Strings(attrs)
	for _, name := range attrs {
		fmt.Printf("Attribute[%s]\n", name)
	}
	tensors := append([]string{}, vp.VoxelTensorAttributes...)
	sort.Strings(tensors)
	for _, name := range tensors {
		fmt.Printf("VoxelTensorAttribute[%s]\n", name)
	}
}
