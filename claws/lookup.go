package claws

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/aws/smithy-go"
	"github.com/crewlinker/cltopo/clcdk"
	"github.com/crewlinker/cltopo/clzap"
	"go.uber.org/zap"
)

// SSMAPI is the part of the parameter store client the image catalog uses.
type SSMAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (
		*ssm.GetParameterOutput, error)
}

// EC2API is the part of the compute client the zone lister uses.
type EC2API interface {
	DescribeAvailabilityZones(
		ctx context.Context, params *ec2.DescribeAvailabilityZonesInput, optFns ...func(*ec2.Options),
	) (*ec2.DescribeAvailabilityZonesOutput, error)
}

// SSMImageCatalog resolves images through the public parameters that AWS maintains for the latest
// Amazon Linux images.
type SSMImageCatalog struct {
	ssm  SSMAPI
	logs *zap.Logger
}

// NewSSMImageCatalog inits the catalog.
func NewSSMImageCatalog(ssm SSMAPI, logs *zap.Logger) *SSMImageCatalog {
	return &SSMImageCatalog{ssm: ssm, logs: logs}
}

// ResolveImage implements clcdk.ImageCatalog. The parameter is read in the region of the topology,
// whatever region the client is configured for.
func (c *SSMImageCatalog) ResolveImage(ctx context.Context, crit clcdk.ImageCriteria, region string) (string, error) {
	name := crit.ParameterName()

	out, err := c.ssm.GetParameter(ctx, &ssm.GetParameterInput{Name: aws.String(name)},
		func(o *ssm.Options) { o.Region = region })
	if err != nil {
		var notFound *ssmtypes.ParameterNotFound
		if errors.As(err, &notFound) {
			return "", fmt.Errorf("%w: parameter %s", clcdk.ErrNoImage, name)
		}

		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("failed to get parameter (%s): %w", apiErr.ErrorCode(), err)
		}

		return "", fmt.Errorf("failed to get parameter: %w", err)
	}

	if out.Parameter == nil || aws.ToString(out.Parameter.Value) == "" {
		return "", fmt.Errorf("%w: parameter %s has no value", clcdk.ErrNoImage, name)
	}

	clzap.Log(ctx, c.logs).Debug("read image parameter",
		zap.String("name", name),
		zap.String("region", region),
		zap.Int64("version", out.Parameter.Version))

	return aws.ToString(out.Parameter.Value), nil
}

// EC2ZoneLister lists the zones of a region through the compute api.
type EC2ZoneLister struct {
	ec2 EC2API
}

// NewEC2ZoneLister inits the lister.
func NewEC2ZoneLister(ec2 EC2API) *EC2ZoneLister {
	return &EC2ZoneLister{ec2: ec2}
}

// ListZones implements clcdk.ZoneLister. Only zones that are available are listed, sorted by name.
func (l *EC2ZoneLister) ListZones(ctx context.Context, region string) ([]string, error) {
	out, err := l.ec2.DescribeAvailabilityZones(ctx, &ec2.DescribeAvailabilityZonesInput{
		Filters: []ec2types.Filter{{Name: aws.String("state"), Values: []string{"available"}}},
	}, func(o *ec2.Options) { o.Region = region })
	if err != nil {
		return nil, fmt.Errorf("failed to describe availability zones: %w", err)
	}

	zones := make([]string, 0, len(out.AvailabilityZones))
	for _, az := range out.AvailabilityZones {
		if az.State != ec2types.AvailabilityZoneStateAvailable {
			continue
		}

		zones = append(zones, aws.ToString(az.ZoneName))
	}

	sort.Strings(zones)

	return zones, nil
}
