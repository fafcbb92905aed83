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

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/notargets/goins/InputParameters"
	"github.com/notargets/goins/grid"
)

var rootCmd = &cobra.Command{
	Use:   "goins",
	Short: "Staggered finite-volume operators for incompressible Navier-Stokes",
	Long: `Staggered finite-volume operators for incompressible Navier-Stokes,
with hand-written adjoints for differentiable simulation pipelines`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("inputParametersFile", "I", "",
		"YAML case definition file")
	rootCmd.PersistentFlags().Bool("profile", false,
		"write a CPU profile for this run")
}

func processInput(cmd *cobra.Command) (ip *InputParameters.InputParameters, err error) {
	var (
		fileName string
		data     []byte
	)
	if fileName, err = cmd.Flags().GetString("inputParametersFile"); err != nil {
		return
	}
	if len(fileName) == 0 {
		err = fmt.Errorf("must supply an input parameters file (-I, --inputParametersFile)")
		exampleFile := `
########################################
Title: "Taylor Green"
Dimension: 2
Cells: [64, 64]
XMin: [0., 0.]
XMax: [1., 1.]
Reynolds: 1000.
BCs:
  x: [periodic, periodic]
  y: [periodic, periodic]
########################################
`
		fmt.Printf("error: %s\nExample file:%s", err.Error(), exampleFile)
		return
	}
	if fileName, err = homedir.Expand(fileName); err != nil {
		return
	}
	if data, err = os.ReadFile(fileName); err != nil {
		return
	}
	ip = &InputParameters.InputParameters{}
	if err = ip.Parse(data); err != nil {
		return
	}
	return
}

var axisNames = [3]string{"x", "y", "z"}

func buildGrid(ip *InputParameters.InputParameters) (g *grid.Grid, err error) {
	var (
		dim = grid.Dimension(ip.Dimension)
		n   grid.MultiIndex
		x0  grid.Vec
		x1  grid.Vec
		bc  [grid.MaxDim][2]grid.BCType
	)
	if ip.Dimension != 2 && ip.Dimension != 3 {
		err = fmt.Errorf("unsupported Dimension %d: must be 2 or 3", ip.Dimension)
		return
	}
	if len(ip.Cells) != ip.Dimension || len(ip.XMin) != ip.Dimension ||
		len(ip.XMax) != ip.Dimension {
		err = fmt.Errorf("Cells/XMin/XMax must each have %d entries", ip.Dimension)
		return
	}
	for a := 0; a < ip.Dimension; a++ {
		n[a] = ip.Cells[a]
		x0[a] = ip.XMin[a]
		x1[a] = ip.XMax[a]
		bc[a] = [2]grid.BCType{grid.BCPeriodic, grid.BCPeriodic}
		if tags, ok := ip.BCs[axisNames[a]]; ok {
			for side := 0; side < 2; side++ {
				if bc[a][side] = grid.ParseBCName(tags[side]); bc[a][side] == grid.BCNone {
					err = fmt.Errorf("axis %s: unknown boundary name %q", axisNames[a], tags[side])
					return
				}
			}
		}
	}
	return grid.NewUniformGrid(dim, n, x0, x1, bc)
}
