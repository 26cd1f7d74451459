package clzap_test

import (
	"context"

	"github.com/crewlinker/cltopo/clzap"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var _ = Describe("context", func() {
	var ctx1 context.Context
	var ctx2 context.Context
	var logs *zap.Logger
	var obs *observer.ObservedLogs

	BeforeEach(func() {
		ctx1 = context.Background()
		app := fx.New(clzap.Test(), fx.Populate(&logs, &obs))
		ctx2 = clzap.WithLogger(context.Background(), logs)
		Expect(app.Start(ctx1)).To(Succeed())
		DeferCleanup(app.Stop, ctx1)
	})

	It("should return false if no logger", func() {
		logs1, ok := clzap.LoggerFromContext(ctx1)
		Expect(ok).To(BeFalse())
		Expect(logs1).To(BeNil())
	})

	It("should return nop logger", func() {
		logs1 := clzap.Log(ctx1)
		Expect(logs1).To(Equal(zap.NewNop()))

		logs1.Info("foo")
		Expect(obs.FilterMessage("foo").Len()).To(Equal(0))
	})

	It("should return fallback logger", func() {
		logs1 := clzap.Log(ctx1, logs)
		Expect(logs1).To(Equal(logs))

		logs1.Info("backup")
		Expect(obs.FilterMessage("backup").Len()).To(Equal(1))
	})

	It("should return regular logger", func() {
		clzap.Log(ctx2).Info("foo")
		Expect(obs.FilterMessage("foo").Len()).To(Equal(1))
	})
})
