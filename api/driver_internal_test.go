package api

import (
	"bytes"
	"context"
	"errors"
	"log/slog"

	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/bfir/compiler"
	"github.com/sarchlab/bfir/ir"
)

var _ = Describe("Driver", func() {
	var (
		mockCtrl *gomock.Controller
		mockSink *MockSink
		driver   Driver
		ctx      context.Context
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		mockSink = NewMockSink(mockCtrl)
		ctx = context.Background()

		driver = MakeDriverBuilder().
			WithWorkers(4).
			WithSink(mockSink).
			Build("Driver")
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should compile, optimize and deliver a source", func() {
		mockSink.EXPECT().
			Accept(gomock.Any()).
			Do(func(result Result) {
				Expect(result.Name).To(Equal("loop.bf"))
				Expect(result.Err).NotTo(HaveOccurred())
			})

		result, err := driver.Compile(ctx, Source{Name: "loop.bf", Text: "[++++ ++++ ++++ +]"})

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Raw).To(Equal(15))
		Expect(result.Code).To(Equal([]ir.Instruction{
			ir.Jz, ir.ValueAdd(13), ir.Jnz,
		}))
		Expect(result.RawCode).To(HaveLen(15))
		Expect(result.RawCode[1]).To(Equal(ir.ValueAdd(1)))
	})

	It("should keep raw code when optimization is off", func() {
		driver = MakeDriverBuilder().
			WithOptimize(false).
			Build("Driver")

		result, err := driver.Compile(ctx, Source{Name: "raw.bf", Text: "+++"})

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Code).To(HaveLen(3))
		Expect(result.Raw).To(Equal(3))
		Expect(result.RawCode).To(Equal(result.Code))
	})

	It("should wrap and deliver compile errors", func() {
		mockSink.EXPECT().
			Accept(gomock.Any()).
			Do(func(result Result) {
				Expect(result.Err).To(HaveOccurred())
				Expect(result.Code).To(BeNil())
			})

		_, err := driver.Compile(ctx, Source{Name: "bad.bf", Text: "[,.]]"})

		Expect(err).To(MatchError("compile bad.bf: Unexpected right bracket at line 1:5"))

		var cerr *compiler.CompileError
		Expect(errors.As(err, &cerr)).To(BeTrue())
		Expect(cerr.Kind).To(Equal(compiler.UnexpectedRightOperator))
	})

	It("should not compile when the context is done", func() {
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := driver.Compile(canceled, Source{Name: "a.bf", Text: "+"})

		Expect(err).To(MatchError(context.Canceled))
	})

	It("should compile all sources in order", func() {
		srcs := []Source{
			{Name: "a.bf", Text: "++"},
			{Name: "b.bf", Text: "]"},
			{Name: "c.bf", Text: ">>>."},
		}

		var delivered []string
		mockSink.EXPECT().
			Accept(gomock.Any()).
			Do(func(result Result) {
				delivered = append(delivered, result.Name)
			}).
			Times(3)

		results, err := driver.CompileAll(ctx, srcs)

		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(3))
		Expect(delivered).To(Equal([]string{"a.bf", "b.bf", "c.bf"}))

		Expect(results[0].Code).To(Equal([]ir.Instruction{ir.ValueAdd(2)}))
		Expect(results[1].Err).To(HaveOccurred())
		Expect(results[2].Code).To(Equal([]ir.Instruction{
			ir.PtrForward(3), ir.Output,
		}))
	})

	It("should stop CompileAll when the context is done", func() {
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		results, err := driver.CompileAll(canceled, []Source{
			{Name: "a.bf", Text: "+"},
		})

		Expect(err).To(MatchError(context.Canceled))
		Expect(results).To(BeNil())
	})

	Context("when tracing", func() {
		var (
			buf     *bytes.Buffer
			restore *slog.Logger
		)

		BeforeEach(func() {
			buf = &bytes.Buffer{}
			restore = slog.Default()
			slog.SetDefault(slog.New(slog.NewTextHandler(buf,
				&slog.HandlerOptions{Level: LevelTrace})))
		})

		AfterEach(func() {
			slog.SetDefault(restore)
		})

		It("should log each compiled source", func() {
			mockSink.EXPECT().Accept(gomock.Any())

			_, err := driver.Compile(ctx, Source{Name: "t.bf", Text: "++"})

			Expect(err).NotTo(HaveOccurred())
			Expect(buf.String()).To(ContainSubstring("msg=Compile"))
			Expect(buf.String()).To(ContainSubstring("Source=t.bf"))
			Expect(buf.String()).To(ContainSubstring("Optimized=1"))
		})
	})
})

var _ = Describe("DriverBuilder", func() {
	It("should reject zero workers", func() {
		Expect(func() {
			MakeDriverBuilder().WithWorkers(0)
		}).To(Panic())
	})

	It("should fall back to one worker for a zero builder", func() {
		d := DriverBuilder{}.Build("Driver").(*driverImpl)
		Expect(d.workers).To(Equal(1))
		Expect(d.optimize).To(BeFalse())
	})
})
