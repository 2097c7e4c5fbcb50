package build

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/containerd/platforms"
	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

const (

	// File name of every target's artifact.
	artifactName = "libmega.a"

	// Media type recorded in artifact descriptors.
	ArtifactMediaType = "application/vnd.cruciblehq.xbuild.archive.v1"

	// Operating system recorded in artifact platforms.
	artifactOS = "linux"
)

// Inputs that determine an artifact's content, in canonical form.
type buildManifest struct {
	Target   string   `json:"target"`
	Flags    []string `json:"flags"`
	Passes   []string `json:"passes"`
	OptLevel int      `json:"opt_level"`
}

// Returns the artifact path for a target.
func artifactPath(dir, target string) string {
	return fmt.Sprintf("%s/%s/%s", dir, target, artifactName)
}

// Returns the content descriptor of a target's artifact.
//
// The digest covers the canonical JSON of the build inputs, so two builds
// with identical inputs share a digest. The platform is the target
// architecture normalized to OCI conventions.
func describe(bc *Context, passes []string, optLevel int) ocispec.Descriptor {
	if passes == nil {
		passes = []string{}
	}

	// Marshalling a struct of strings and ints cannot fail.
	data, _ := json.Marshal(buildManifest{
		Target:   bc.Target,
		Flags:    bc.Flags,
		Passes:   passes,
		OptLevel: optLevel,
	})

	platform := platforms.Normalize(ocispec.Platform{
		OS:           artifactOS,
		Architecture: bc.Target,
	})

	return ocispec.Descriptor{
		MediaType: ArtifactMediaType,
		Digest:    digest.FromBytes(data),
		Size:      int64(len(data)),
		Platform:  &platform,
		Annotations: map[string]string{
			ocispec.AnnotationTitle: artifactName,
		},
	}
}

// Packages a successful build.
//
// Packaging is a placeholder for uploading or archiving the artifact; it only
// logs and cannot fail.
func (o *orchestrator) packageArtifact(ctx context.Context, out Outcome) {
	o.log.Info(ctx, "Packaging successful build for "+out.Target,
		"artifact", out.Artifact,
		"arch", out.Target,
		"digest", out.Descriptor.Digest.String(),
		"size", out.Descriptor.Size,
	)
}
