package tissue_test

import (
	"fmt"

	"github.com/matzehuels/cellsort/pkg/tissue"
)

func ExampleTissue_Sort() {
	// Build a tissue and let the cells organize themselves.
	t := tissue.NewOrdered([]int{5, 2, 8, 1, 9})
	res := t.Sort(tissue.SortOptions{})

	fmt.Println("Sorted:", t.Values())
	fmt.Println("Converged:", res.Converged)
	// Output:
	// Sorted: [1 2 5 8 9]
	// Converged: true
}

func ExampleTissue_Step() {
	// Drive rounds by hand to watch order emerge from local decisions.
	t := tissue.NewOrdered([]int{3, 2, 1})

	for round := 1; t.Step(); round++ {
		fmt.Printf("Round %d: %v\n", round, t.Values())
	}
	// Output:
	// Round 1: [2 1 3]
	// Round 2: [1 2 3]
}

func ExampleCell_ShouldSwapRight() {
	t := tissue.NewOrdered([]int{5, 2})

	head := t.Head()
	fmt.Println("Head wants to swap:", head.ShouldSwapRight())
	fmt.Println("Tail wants to swap:", t.Tail().ShouldSwapRight())
	// Output:
	// Head wants to swap: true
	// Tail wants to swap: false
}

func ExampleNew_customComparator() {
	// Sort descending by inverting the comparator.
	t := tissue.New([]int{1, 3, 2}, func(a, b int) int { return b - a })
	t.Sort(tissue.SortOptions{})

	fmt.Println(t.Values())
	// Output:
	// [3 2 1]
}
