package clcdk

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ImageID is a concrete, region specific machine image identifier.
type ImageID string

// Values for the image criteria.
const (
	GenerationAmazonLinux     = "amzn"
	GenerationAmazonLinux2    = "amzn2"
	GenerationAmazonLinux2023 = "al2023"

	EditionStandard = "standard"
	EditionMinimal  = "minimal"

	VirtualizationHVM = "hvm"
	VirtualizationPV  = "pv"

	StorageGeneralPurpose = "gp2"
	StorageEBS            = "ebs"
	StorageS3             = "s3"

	CPUX8664 = "x86_64"
	CPUArm64 = "arm64"
)

// imagePath is where the public parameters of the latest Amazon Linux images live.
const imagePath = "/aws/service/ami-amazon-linux-latest/"

// ErrNoImage is returned by catalogs that have no image for the criteria.
var ErrNoImage = errors.New("no image matches the criteria")

// ImageCriteria selects a machine image in an abstract way.
type ImageCriteria struct {
	Generation     string `validate:"oneof=amzn amzn2 al2023"`
	Edition        string `validate:"oneof=standard minimal"`
	Virtualization string `validate:"oneof=hvm pv"`
	Storage        string `validate:"oneof=gp2 ebs s3"`
	CPU            string `validate:"oneof=x86_64 arm64"`
}

// DefaultImageCriteria selects the latest standard Amazon Linux for x86 with hvm and gp2 storage.
func DefaultImageCriteria() ImageCriteria {
	return ImageCriteria{
		Generation:     GenerationAmazonLinux,
		Edition:        EditionStandard,
		Virtualization: VirtualizationHVM,
		Storage:        StorageGeneralPurpose,
		CPU:            CPUX8664,
	}
}

// ParameterName returns the name of the public SSM parameter that holds the latest image for
// the criteria, e.g: /aws/service/ami-amazon-linux-latest/amzn-ami-hvm-x86_64-gp2.
func (ic ImageCriteria) ParameterName() string {
	if ic.Generation == GenerationAmazonLinux2023 {
		var edition string
		if ic.Edition == EditionMinimal {
			edition = "minimal-"
		}

		return imagePath + "al2023-ami-" + edition + "kernel-default-" + ic.CPU
	}

	parts := []string{ic.Generation, "ami"}
	if ic.Edition != "" && ic.Edition != EditionStandard {
		parts = append(parts, ic.Edition)
	}

	return imagePath + strings.Join(append(parts, ic.Virtualization, ic.CPU, ic.Storage), "-")
}

// checkCombination rejects criteria for which no image is published. Only the first generation has
// paravirtual and instance store images, and it has no arm images.
func (ic ImageCriteria) checkCombination() error {
	if ic.Generation == GenerationAmazonLinux {
		if ic.CPU == CPUArm64 {
			return fmt.Errorf("generation %s has no %s images", ic.Generation, ic.CPU)
		}

		return nil
	}

	if ic.Virtualization != VirtualizationHVM {
		return fmt.Errorf("generation %s only has %s images, got: %s",
			ic.Generation, VirtualizationHVM, ic.Virtualization)
	}

	if ic.Storage == StorageS3 {
		return fmt.Errorf("generation %s has no %s backed images", ic.Generation, ic.Storage)
	}

	return nil
}

// ImageCatalog resolves image criteria to a concrete image id. It is implemented against provider
// maintained catalogs.
type ImageCatalog interface {
	ResolveImage(ctx context.Context, crit ImageCriteria, region string) (string, error)
}

// ResolveMachineImage resolves the criteria using the catalog. An empty result or catalog error is
// reported as a lookup error.
func ResolveMachineImage(ctx context.Context, cat ImageCatalog, crit ImageCriteria, region string) (ImageID, error) {
	if cat == nil {
		return "", configErr("Image", "an image catalog is required", nil)
	}

	id, err := cat.ResolveImage(ctx, crit, region)
	if err != nil {
		return "", lookupErr("Image", fmt.Sprintf("resolve %s in %s", crit.ParameterName(), region), err)
	}

	if id == "" {
		return "", lookupErr("Image", fmt.Sprintf("resolve %s in %s", crit.ParameterName(), region), ErrNoImage)
	}

	return ImageID(id), nil
}

// StaticImageCatalog resolves images from a fixed region to image id map. It ignores the criteria
// and is used when images are pinned in configuration.
type StaticImageCatalog map[string]string

// ResolveImage implements ImageCatalog.
func (c StaticImageCatalog) ResolveImage(_ context.Context, _ ImageCriteria, region string) (string, error) {
	id, ok := c[region]
	if !ok {
		return "", fmt.Errorf("%w: no pinned image for region %q", ErrNoImage, region)
	}

	return id, nil
}

type imageKey struct {
	crit   ImageCriteria
	region string
}

// MemoImageCatalog remembers every resolution of the catalog it wraps. Repeated lookups for the same
// criteria and region within a run yield the same image, even when the upstream catalog moves on.
type MemoImageCatalog struct {
	next ImageCatalog

	mu    sync.Mutex
	cache map[imageKey]string
}

// NewMemoImageCatalog inits the memoizing catalog.
func NewMemoImageCatalog(next ImageCatalog) *MemoImageCatalog {
	return &MemoImageCatalog{next: next, cache: map[imageKey]string{}}
}

// ResolveImage implements ImageCatalog. Failures are not remembered.
func (c *MemoImageCatalog) ResolveImage(ctx context.Context, crit ImageCriteria, region string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := imageKey{crit: crit, region: region}
	if id, ok := c.cache[key]; ok {
		return id, nil
	}

	id, err := c.next.ResolveImage(ctx, crit, region)
	if err != nil {
		return "", fmt.Errorf("failed to resolve upstream: %w", err)
	}

	c.cache[key] = id

	return id, nil
}
