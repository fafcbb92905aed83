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
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/notargets/goins/InputParameters"
	"github.com/notargets/goins/grid"
	"github.com/notargets/goins/operators"
	"github.com/notargets/goins/utils"
)

// AssembleCmd represents the assemble command
var AssembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Assemble the pressure Poisson matrix and report its statistics",
	Long: `Assembles the sparse pressure Laplacian for the case described by the
input parameters file and prints its dimensions, fill and assembly time`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
			ip  *InputParameters.InputParameters
		)
		if ip, err = processInput(cmd); err != nil {
			return
		}
		if prof, _ := cmd.Flags().GetBool("profile"); prof {
			defer profile.Start().Stop()
		}
		if err = RunAssemble(ip); err != nil {
			fmt.Printf("error: %s\n", err.Error())
		}
	},
}

func init() {
	rootCmd.AddCommand(AssembleCmd)
}

func RunAssemble(ip *InputParameters.InputParameters) (err error) {
	var (
		g *grid.Grid
		m *operators.Model
		L utils.CSR
	)
	ip.Print()
	if g, err = buildGrid(ip); err != nil {
		return
	}
	if m, err = buildModel(g, ip); err != nil {
		return
	}
	start := time.Now()
	if L, err = m.LaplacianMatrix(); err != nil {
		return
	}
	var (
		nr, nc  = L.Dims()
		elapsed = time.Since(start)
	)
	fmt.Printf("pressure cells\t\t= %d\n", g.Np())
	fmt.Printf("matrix dimensions\t= %d x %d\n", nr, nc)
	fmt.Printf("nonzeros\t\t= %d (%.2f per row)\n", L.NNZ(), float64(L.NNZ())/float64(nr))
	fmt.Printf("assembly time\t\t= %v\n", elapsed)
	return
}
