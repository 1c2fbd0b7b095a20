package lang_test

import (
	"context"
	"fmt"
	"os"

	"github.com/ardnew/arrowconf/lang"
)

func ExampleParse() {
	src := `
A <- 5
B <- |A + 3|
C <- (list A B (list 1 -2))
D <- |concat(A, B)|
`

	m, err := lang.Parse(context.Background(), src)
	if err != nil {
		fmt.Println("Error:", err)

		return
	}

	if err := lang.Encode(context.Background(), os.Stdout, m, lang.FormatJSON, 0); err != nil {
		fmt.Println("Error:", err)
	}

	// Output:
	// {"A":5,"B":8,"C":[5,8,[1,-2]],"D":"58"}
}

func ExampleParse_error() {
	_, err := lang.Parse(context.Background(), "A <- 1\nB <- |A + foo|")

	fmt.Println(lang.KindOf(err))
	fmt.Println(err)

	// Output:
	// type
	// line 2: type error: cannot add non-numeric values: 1, foo
}

func ExampleInterpreter_Exec() {
	ctx := context.Background()
	in := lang.New()

	for _, line := range []string{"X <- 2", "# ignored", "Y <- (list X |abs(-3)|)"} {
		a, err := in.Exec(ctx, line)
		if err != nil {
			fmt.Println("Error:", err)

			return
		}

		if a != nil {
			fmt.Printf("%s = %v\n", a.Name, a.Value)
		}
	}

	// Output:
	// X = 2
	// Y = [2, 3]
}

func ExampleMapping_Format() {
	m, _ := lang.Parse(context.Background(), "N <- |abs(-4)|\nS <- |concat(a, b)|")

	_ = m.Format(os.Stdout)

	// Output:
	// N <- 4
	// S <- |concat(ab)|
}

func ExampleQuery() {
	m, _ := lang.Parse(context.Background(), "C <- (list 5 8 (list 1 -2))")

	result, err := lang.Query(context.Background(), m, "C[2][1]")
	if err != nil {
		fmt.Println("Error:", err)

		return
	}

	fmt.Println(lang.FormatResult(result))

	// Output:
	// -2
}
