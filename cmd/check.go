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
	"math"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/notargets/goins/InputParameters"
	"github.com/notargets/goins/bcfill"
	"github.com/notargets/goins/closure"
	"github.com/notargets/goins/diagnostics"
	"github.com/notargets/goins/exec"
	"github.com/notargets/goins/field"
	"github.com/notargets/goins/grid"
	"github.com/notargets/goins/operators"
)

// CheckCmd represents the check command
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the staggered operators on a Taylor-Green vortex",
	Long: `Builds the case described by the input parameters file, initializes a
Taylor-Green vortex on the staggered grid and reports the discrete divergence,
the momentum residual and the flow diagnostics. On a uniform periodic grid the
divergence should be at machine zero`,
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
		if err = RunCheck(ip); err != nil {
			fmt.Printf("error: %s\n", err.Error())
		}
	},
}

func init() {
	rootCmd.AddCommand(CheckCmd)
}

func RunCheck(ip *InputParameters.InputParameters) (err error) {
	var (
		g *grid.Grid
		m *operators.Model
	)
	ip.Print()
	if g, err = buildGrid(ip); err != nil {
		return
	}
	if m, err = buildModel(g, ip); err != nil {
		return
	}
	var (
		u   = field.NewVector(g)
		p   = field.NewScalar(g)
		div = field.NewScalar(g)
		F   = field.NewVector(g)
		ke  = field.NewScalar(g)
		dg  = diagnostics.New(m)
	)
	initTaylorGreen(g, u)
	if err = bcfill.ApplyVelocity(g, u); err != nil {
		return
	}
	bcfill.ApplyPressure(g, p)
	if err = m.Divergence(u, div); err != nil {
		return
	}
	fmt.Printf("max |div u|\t\t= %8.5e\n", maxAbsOn(div, g.Ip))
	if err = m.Momentum(u, nil, 0, F); err != nil {
		return
	}
	if ip.Smagorinsky > 0 {
		sgs := closure.NewSmagorinsky(g, m.Ctx, ip.Smagorinsky)
		if err = sgs.Apply(u, F); err != nil {
			return
		}
	}
	var fMax float64
	for a := 0; a < g.Dim.D(); a++ {
		fMax = math.Max(fMax, maxAbsOn(F.Cmp[a], g.Iu[a]))
	}
	fmt.Printf("max |F|\t\t\t= %8.5e\n", fMax)
	if err = dg.KineticEnergy(u, ke, diagnostics.InterpolateThenSquare); err != nil {
		return
	}
	var eTot float64
	for lin := 0; lin < g.Ip.Len(); lin++ {
		I := g.Ip.At(lin)
		eTot += ke.At(I) * g.Omega(I)
	}
	fmt.Printf("total kinetic energy\t= %8.5f\n", eTot)
	return
}

func buildModel(g *grid.Grid, ip *InputParameters.InputParameters) (m *operators.Model, err error) {
	var (
		visc float64
		ctx  = exec.NewContext(ip.ParallelDegree)
	)
	if ip.Reynolds > 0 {
		visc = 1. / ip.Reynolds
	}
	m = operators.NewModel(g, ctx, visc)
	if ip.Diffusivity > 0 {
		m.Temp = &operators.TemperatureParams{
			Diffusivity:      ip.Diffusivity,
			DissipationCoeff: ip.DissipationCoef,
		}
		for a := 0; a < g.Dim.D(); a++ {
			if a < len(ip.Gravity) {
				m.Gravity[a] = ip.Gravity[a]
			}
		}
	}
	return
}

// initTaylorGreen writes the classic vortex onto the staggered velocity
// points. Each component lives on the faces of its own axis, so the own axis
// samples face coordinates and the cross axes sample cell centers.
func initTaylorGreen(g *grid.Grid, u *field.Vector) {
	for a := 0; a < g.Dim.D(); a++ {
		for lin := 0; lin < g.Iu[a].Len(); lin++ {
			var (
				I = g.Iu[a].At(lin)
				x grid.Vec
			)
			for b := 0; b < g.Dim.D(); b++ {
				if b == a {
					x[b] = g.X[b][I[b]]
				} else {
					x[b] = g.Xp[b][I[b]]
				}
			}
			u.Cmp[a].Set(I, taylorGreen(g.Dim, a, x))
		}
	}
}

func taylorGreen(dim grid.Dimension, axis int, x grid.Vec) (val float64) {
	if dim == grid.Dim2 {
		switch axis {
		case 0:
			val = -math.Sin(math.Pi*x[0]) * math.Cos(math.Pi*x[1])
		case 1:
			val = math.Cos(math.Pi*x[0]) * math.Sin(math.Pi*x[1])
		}
		return
	}
	switch axis {
	case 0:
		val = math.Sin(math.Pi*x[0]) * math.Cos(math.Pi*x[1]) * math.Cos(math.Pi*x[2])
	case 1:
		val = -math.Cos(math.Pi*x[0]) * math.Sin(math.Pi*x[1]) * math.Cos(math.Pi*x[2])
	}
	return
}

func maxAbsOn(s *field.Scalar, is grid.IndexSet) (mx float64) {
	for lin := 0; lin < is.Len(); lin++ {
		if v := math.Abs(s.At(is.At(lin))); v > mx {
			mx = v
		}
	}
	return
}
