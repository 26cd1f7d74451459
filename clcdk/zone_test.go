package clcdk_test

import (
	"context"
	"errors"

	"github.com/crewlinker/cltopo/clcdk"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("zones", func() {
	lister := zoneListerFunc(func(_ context.Context, region string) ([]string, error) {
		return []string{region + "a", region + "b"}, nil
	})

	base := clcdk.NewDefaultConfig("my-app", "us-east-1")

	It("should not check without configured zones", func(ctx context.Context) {
		Expect(clcdk.CheckZones(ctx, nil, base)).To(Succeed())
	})

	It("should accept available zones", func(ctx context.Context) {
		Expect(clcdk.CheckZones(ctx, lister, base.Copy(clcdk.WithZones("us-east-1b")))).To(Succeed())
	})

	It("should fail on unavailable zones", func(ctx context.Context) {
		err := clcdk.CheckZones(ctx, lister, base.Copy(clcdk.WithZones("us-east-1c")))
		Expect(err).To(MatchError(clcdk.ErrLookup))
		Expect(err).To(MatchError(ContainSubstring(`Subnet1: zone "us-east-1c" is not available in us-east-1`)))
	})

	It("should fail when listing fails", func(ctx context.Context) {
		err := clcdk.CheckZones(ctx, zoneListerFunc(func(context.Context, string) ([]string, error) {
			return nil, errors.New("throttled")
		}), base.Copy(clcdk.WithZones("us-east-1a")))
		Expect(err).To(MatchError(clcdk.ErrLookup))
		Expect(err).To(MatchError(ContainSubstring("throttled")))
	})

	It("should require a lister for configured zones", func(ctx context.Context) {
		err := clcdk.CheckZones(ctx, nil, base.Copy(clcdk.WithZones("us-east-1a")))
		Expect(err).To(MatchError(clcdk.ErrConfiguration))
	})
})
