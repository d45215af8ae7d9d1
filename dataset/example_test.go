package dataset_test

import (
	"fmt"
	"strings"

	"github.com/mizuhira/lsqfit/dataset"
)

func ExampleReadCSV() {
	csv := "rooms,age,price\n3,10,250\n4,5,320\n2,30,180\n"

	table, err := dataset.ReadCSV(strings.NewReader(csv))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("Rows: %d\n", table.NumRows())
	fmt.Printf("Features: %d\n", table.NumFeatures())
	fmt.Printf("Label: %s\n", table.LabelName)
	// Output:
	// Rows: 3
	// Features: 2
	// Label: price
}

func ExampleTable_SplitTail() {
	csv := "x,y\n1,10\n2,20\n3,30\n4,40\n5,50\n"

	table, err := dataset.ReadCSV(strings.NewReader(csv))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	train, test, err := table.SplitTail(2)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("Train rows: %d\n", train.NumRows())
	fmt.Printf("Test rows: %d\n", test.NumRows())
	fmt.Printf("First test label: %.0f\n", test.Labels.AtVec(0))
	// Output:
	// Train rows: 3
	// Test rows: 2
	// First test label: 40
}

func ExampleLinspace() {
	xs, err := dataset.Linspace(0, 1, 5)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("%.2f\n", xs)
	// Output:
	// [0.00 0.25 0.50 0.75 1.00]
}

func ExampleSampleCurve() {
	line := func(x float64) float64 { return 2*x + 1 }

	// sigma 0 keeps the observations exactly on the curve
	sample, err := dataset.SampleCurve(line, 0, 4, 5, 0, 42)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	for i, x := range sample.Xs {
		fmt.Printf("f(%.0f) = %.0f\n", x, sample.Y.AtVec(i))
	}
	// Output:
	// f(0) = 1
	// f(1) = 3
	// f(2) = 5
	// f(3) = 7
	// f(4) = 9
}
