package claws_test

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/aws/smithy-go"
	"github.com/crewlinker/cltopo/claws"
	"github.com/crewlinker/cltopo/claws/clawsmock"
	"github.com/crewlinker/cltopo/clcdk"
	"github.com/crewlinker/cltopo/clzap"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var _ = Describe("image catalog", func() {
	var ssmm *clawsmock.MockSSMAPI
	var catalog *claws.SSMImageCatalog

	BeforeEach(func() {
		ssmm = clawsmock.NewMockSSMAPI(GinkgoT())
		catalog = claws.NewSSMImageCatalog(ssmm, zap.NewNop())
	})

	It("should read the parameter in the region of the topology", func(ctx context.Context) {
		ssmm.EXPECT().GetParameter(mock.Anything, &ssm.GetParameterInput{
			Name: aws.String("/aws/service/ami-amazon-linux-latest/amzn-ami-hvm-x86_64-gp2"),
		}, mock.Anything).
			Run(func(_ context.Context, _ *ssm.GetParameterInput, optFns ...func(*ssm.Options)) {
				var opts ssm.Options
				for _, fn := range optFns {
					fn(&opts)
				}

				Expect(opts.Region).To(Equal("eu-west-1"))
			}).
			Return(&ssm.GetParameterOutput{Parameter: &ssmtypes.Parameter{
				Value: aws.String("ami-0abc"), Version: 42,
			}}, nil).Once()

		id, err := catalog.ResolveImage(ctx, clcdk.DefaultImageCriteria(), "eu-west-1")
		Expect(err).ToNot(HaveOccurred())
		Expect(id).To(Equal("ami-0abc"))
	})

	It("should log through the logger of the context", func(ctx context.Context) {
		core, obs := observer.New(zapcore.DebugLevel)
		ssmm.EXPECT().GetParameter(mock.Anything, mock.Anything, mock.Anything).
			Return(&ssm.GetParameterOutput{Parameter: &ssmtypes.Parameter{
				Value: aws.String("ami-0abc"), Version: 7,
			}}, nil).Once()

		_, err := catalog.ResolveImage(clzap.WithLogger(ctx, zap.New(core)), clcdk.DefaultImageCriteria(), "eu-west-1")
		Expect(err).ToNot(HaveOccurred())

		entries := obs.FilterMessage("read image parameter").All()
		Expect(entries).To(HaveLen(1))
		Expect(entries[0].ContextMap()).To(HaveKeyWithValue("version", int64(7)))
	})

	It("should report missing parameters as no image", func(ctx context.Context) {
		ssmm.EXPECT().GetParameter(mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &ssmtypes.ParameterNotFound{}).Once()

		_, err := clcdk.ResolveMachineImage(ctx, catalog, clcdk.DefaultImageCriteria(), "eu-west-1")
		Expect(err).To(MatchError(clcdk.ErrLookup))
		Expect(err).To(MatchError(clcdk.ErrNoImage))
	})

	It("should report empty parameters as no image", func(ctx context.Context) {
		ssmm.EXPECT().GetParameter(mock.Anything, mock.Anything, mock.Anything).
			Return(&ssm.GetParameterOutput{Parameter: &ssmtypes.Parameter{}}, nil).Once()

		_, err := catalog.ResolveImage(ctx, clcdk.DefaultImageCriteria(), "eu-west-1")
		Expect(err).To(MatchError(clcdk.ErrNoImage))
	})

	It("should name the error code of other api errors", func(ctx context.Context) {
		ssmm.EXPECT().GetParameter(mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &smithy.GenericAPIError{Code: "AccessDeniedException", Message: "not allowed"}).Once()

		_, err := catalog.ResolveImage(ctx, clcdk.DefaultImageCriteria(), "eu-west-1")
		Expect(err).To(MatchError(ContainSubstring("(AccessDeniedException)")))
		Expect(errors.Is(err, clcdk.ErrNoImage)).To(BeFalse())
	})

	It("should resolve once per run when memoized", func(ctx context.Context) {
		ssmm.EXPECT().GetParameter(mock.Anything, mock.Anything, mock.Anything).
			Return(&ssm.GetParameterOutput{Parameter: &ssmtypes.Parameter{Value: aws.String("ami-0abc")}}, nil).Once()

		memo := clcdk.NewMemoImageCatalog(catalog)
		for i := 0; i < 3; i++ {
			id, err := clcdk.ResolveMachineImage(ctx, memo, clcdk.DefaultImageCriteria(), "eu-west-1")
			Expect(err).ToNot(HaveOccurred())
			Expect(id).To(Equal(clcdk.ImageID("ami-0abc")))
		}
	})
})

var _ = Describe("zone lister", func() {
	var ec2m *clawsmock.MockEC2API
	var lister *claws.EC2ZoneLister

	BeforeEach(func() {
		ec2m = clawsmock.NewMockEC2API(GinkgoT())
		lister = claws.NewEC2ZoneLister(ec2m)
	})

	It("should list available zones sorted", func(ctx context.Context) {
		ec2m.EXPECT().DescribeAvailabilityZones(mock.Anything, mock.MatchedBy(
			func(in *ec2.DescribeAvailabilityZonesInput) bool {
				return len(in.Filters) == 1 && aws.ToString(in.Filters[0].Name) == "state"
			}), mock.Anything).
			Return(&ec2.DescribeAvailabilityZonesOutput{AvailabilityZones: []ec2types.AvailabilityZone{
				{ZoneName: aws.String("us-east-1b"), State: ec2types.AvailabilityZoneStateAvailable},
				{ZoneName: aws.String("us-east-1c"), State: ec2types.AvailabilityZoneStateImpaired},
				{ZoneName: aws.String("us-east-1a"), State: ec2types.AvailabilityZoneStateAvailable},
			}}, nil).Once()

		zones, err := lister.ListZones(ctx, "us-east-1")
		Expect(err).ToNot(HaveOccurred())
		Expect(zones).To(Equal([]string{"us-east-1a", "us-east-1b"}))
	})

	It("should check configured zones", func(ctx context.Context) {
		ec2m.EXPECT().DescribeAvailabilityZones(mock.Anything, mock.Anything, mock.Anything).
			Return(&ec2.DescribeAvailabilityZonesOutput{AvailabilityZones: []ec2types.AvailabilityZone{
				{ZoneName: aws.String("us-east-1a"), State: ec2types.AvailabilityZoneStateAvailable},
			}}, nil).Once()

		err := clcdk.CheckZones(ctx, lister, clcdk.NewDefaultConfig("my-app", "us-east-1").Copy(
			clcdk.WithZones("us-east-1f")))
		Expect(err).To(MatchError(clcdk.ErrLookup))
	})

	It("should wrap api failures", func(ctx context.Context) {
		ec2m.EXPECT().DescribeAvailabilityZones(mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("throttled")).Once()

		_, err := lister.ListZones(ctx, "us-east-1")
		Expect(err).To(MatchError(ContainSubstring("failed to describe availability zones: throttled")))
	})
})
