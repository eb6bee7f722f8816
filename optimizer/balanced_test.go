package optimizer_test

import (
	"math/rand"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/bfir/compiler"
	"github.com/sarchlab/bfir/ir"
	"github.com/sarchlab/bfir/optimizer"
)

// balancedSource writes a random program whose brackets always match. Runs
// are sometimes long enough to wrap a value count.
func balancedSource(rng *rand.Rand, sb *strings.Builder, depth int) {
	const filler = "+-><.,ab \n"

	for n := rng.Intn(12); n > 0; n-- {
		switch r := rng.Intn(10); {
		case r == 0 && depth < 6:
			sb.WriteByte('[')
			balancedSource(rng, sb, depth+1)
			sb.WriteByte(']')
		case r == 1:
			op := "+-><"[rng.Intn(4)]
			sb.WriteString(strings.Repeat(string(op), 200+rng.Intn(200)))
		default:
			sb.WriteByte(filler[rng.Intn(len(filler))])
		}
	}
}

var _ = Describe("Balanced sources", func() {
	It("should keep markers balanced and optimize idempotently", func() {
		rng := rand.New(rand.NewSource(20240611))

		for i := 0; i < 500; i++ {
			var sb strings.Builder
			balancedSource(rng, &sb, 0)
			src := sb.String()

			code, err := compiler.Compile(src)
			Expect(err).NotTo(HaveOccurred(), "source %q", src)

			counts := ir.Count(code)
			Expect(counts[ir.JumpIfZero]).To(Equal(counts[ir.JumpIfNonZero]),
				"source %q", src)
			Expect(counts[ir.JumpIfZero]).To(Equal(strings.Count(src, "[")))

			_, err = ir.MatchBrackets(code)
			Expect(err).NotTo(HaveOccurred(), "source %q", src)

			once := optimizer.Optimized(code)
			Expect(optimizer.Optimized(once)).To(Equal(once), "source %q", src)

			_, err = ir.MatchBrackets(once)
			Expect(err).NotTo(HaveOccurred(), "source %q", src)
		}
	})
})
