package heatmap_test

import (
	"fmt"

	"github.com/matzehuels/heatsvg/pkg/gradient"
	"github.com/matzehuels/heatsvg/pkg/heatmap"
	"github.com/matzehuels/heatsvg/pkg/svg"
)

type visit struct {
	X, Y  float64
	Count int
}

func ExampleRender() {
	cfg := heatmap.New(func(v visit) heatmap.Point {
		return heatmap.Point{X: v.X, Y: v.Y, Weight: float64(v.Count)}
	}, gradient.HeatedMetal).WithMaxWeight(4).WithIDSuffix("visits")

	scene := heatmap.Render(cfg, []visit{
		{X: 0, Y: 0, Count: 1},
		{X: 10, Y: 0, Count: 3},
		{X: 200, Y: 120, Count: 2},
	})

	for _, use := range scene.FindAll(svg.KindUse) {
		x, _ := use.Attr("x")
		op, _ := use.Attr("fill-opacity")
		fmt.Println(x, op)
	}
	fmt.Println(scene.IDs())
	// Output:
	// 7.5 1
	// 200 0.5
	// [heatmapPointGradient_visits heatmapPoint_visits heatmapFilter_visits]
}

func ExampleCluster() {
	pts := heatmap.Cluster([]heatmap.Point{
		{X: 0, Y: 0, Weight: 1},
		{X: 10, Y: 0, Weight: 3},
	}, 40)
	fmt.Printf("%+v\n", pts)
	// Output:
	// [{X:7.5 Y:0 Weight:4}]
}
