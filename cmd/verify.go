/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MuMuJun97/PyMesh/InputParameters"
	"github.com/MuMuJun97/PyMesh/check"
	"github.com/MuMuJun97/PyMesh/environment"
	"github.com/MuMuJun97/PyMesh/mesh"
)

type VerifyRun struct {
	OriginalFile string
	ReloadedFile string
	ParamsFile   string
	DataDir      string
	Profile      bool
}

// VerifyCmd represents the verify command
var VerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify that two mesh files are numerically equivalent",
	Long: `Verify that two mesh files are numerically equivalent: compares the
requested channels (vertices, faces, voxels) and named attributes, with
flattened per-voxel tensor attributes reconstructed to 3x3 form before
comparison. Intended to validate serialization round trips.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		vr := &VerifyRun{}
		if vr.OriginalFile, err = cmd.Flags().GetString("original"); err != nil {
			panic(err)
		}
		if vr.ReloadedFile, err = cmd.Flags().GetString("reloaded"); err != nil {
			panic(err)
		}
		vr.ParamsFile, _ = cmd.Flags().GetString("parameters")
		vr.DataDir, _ = cmd.Flags().GetString("dataDir")
		vr.Profile, _ = cmd.Flags().GetBool("profile")
		vp := processVerifyInput(vr)
		RunVerify(vr, vp)
	},
}

func processVerifyInput(vr *VerifyRun) (vp *InputParameters.VerificationParameters) {
	var (
		willExit bool
	)
	if len(vr.OriginalFile) == 0 {
		fmt.Printf("error: must supply an original mesh file (-o, --original)\n")
		willExit = true
	}
	if len(vr.ReloadedFile) == 0 {
		fmt.Printf("error: must supply a reloaded mesh file (-r, --reloaded)\n")
		willExit = true
	}
	if willExit {
		os.Exit(1)
	}

	vp = &InputParameters.VerificationParameters{
		Channels: []string{"vertices", "faces", "voxels"},
	}
	if len(vr.ParamsFile) != 0 {
		data, err := os.ReadFile(vr.ParamsFile)
		if err != nil {
			fmt.Printf("error reading parameters file: %s\n", err.Error())
			os.Exit(1)
		}
		if err = vp.Parse(data); err != nil {
			fmt.Printf("error parsing parameters file: %s\n", err.Error())
			os.Exit(1)
		}
	}
	if vp.CoordinateTolerance == 0 {
		vp.CoordinateTolerance = viper.GetFloat64("coordinateTolerance")
	}
	if vp.AttributeTolerance == 0 {
		vp.AttributeTolerance = viper.GetFloat64("attributeTolerance")
	}
	return
}

// resolveMeshPath leaves absolute paths alone and anchors relative ones at
// the test-data root, taken from --dataDir or $PYMESH_PATH/tests/data.
func resolveMeshPath(vr *VerifyRun, filename string) (string, error) {
	if filepath.IsAbs(filename) {
		return filename, nil
	}
	dataDir := vr.DataDir
	if dataDir == "" {
		root, err := environment.GetRequiredPath("PYMESH_PATH")
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(root, "tests", "data")
	}
	return filepath.Join(dataDir, filename), nil
}

func RunVerify(vr *VerifyRun, vp *InputParameters.VerificationParameters) {
	if vr.Profile {
		defer profile.Start().Stop()
	}
	vp.Print()

	checker := check.NewChecker()
	if vp.CoordinateTolerance > 0 {
		checker.CoordinateTol = vp.CoordinateTolerance
	}
	if vp.AttributeTolerance > 0 {
		checker.AttributeTol = vp.AttributeTolerance
	}

	m1 := loadMesh(vr, vr.OriginalFile)
	m2 := loadMesh(vr, vr.ReloadedFile)

	failed := false
	report := func(label string, err error) {
		if err != nil {
			fmt.Printf("FAIL %s: %s\n", label, err.Error())
			failed = true
			return
		}
		fmt.Printf("ok   %s\n", label)
	}

	for _, ch := range vp.Channels {
		switch ch {
		case "vertices":
			report("vertices", checker.Vertices(m1, m2))
		case "faces":
			report("faces", checker.Faces(m1, m2))
		case "voxels":
			report("voxels", checker.Voxels(m1, m2))
		}
	}
	for _, name := range vp.Attributes {
		report("attribute "+name, checker.Attribute(m1, m2, name))
	}
	for _, name := range vp.VoxelTensorAttributes {
		report("voxel tensor attribute "+name, checker.VoxelTensorAttribute(m1, m2, name))
	}

	if failed {
		os.Exit(1)
	}
}

func loadMesh(vr *VerifyRun, filename string) *mesh.Mesh {
	path, err := resolveMeshPath(vr, filename)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	m, err := mesh.ReadFile(path)
	if err != nil {
		fmt.Printf("error loading %s: %s\n", path, err.Error())
		os.Exit(1)
	}
	return m
}

func init() {
	rootCmd.AddCommand(VerifyCmd)
	VerifyCmd.Flags().StringP("original", "o", "", "original mesh file (.msh, .obj)")
	VerifyCmd.Flags().StringP("reloaded", "r", "", "reloaded mesh file to compare against the original")
	VerifyCmd.Flags().StringP("parameters", "p", "", "YAML verification parameters file")
	VerifyCmd.Flags().StringP("dataDir", "d", "", "directory for resolving relative mesh paths (default $PYMESH_PATH/tests/data)")
	VerifyCmd.Flags().Bool("profile", false, "write a CPU profile for the run")
	if err := viper.BindPFlag("dataDir", VerifyCmd.Flags().Lookup("dataDir")); err != nil {
		panic(err)
	}
}
