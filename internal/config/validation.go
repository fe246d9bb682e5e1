package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/keygate-dev/keygate/internal/application/dto"
)

// Request names must be alphanumeric with dashes and underscores.
var requestNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// supportedVersions is the document format range this build accepts.
var supportedVersions = mustConstraint(">= 1.0.0, < 2.0.0")

func mustConstraint(expr string) *semver.Constraints {
	c, err := semver.NewConstraint(expr)
	if err != nil {
		panic(err)
	}
	return c
}

// Validate performs structural validation of a request document beyond
// what the schema already checks: version compatibility and request
// name uniqueness.
func Validate(doc *Document) error {
	var errs []string

	if err := validateMetadata(doc.Metadata); err != nil {
		errs = append(errs, err.Error())
	}

	if err := validateRequests(doc.Requests); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("document validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

func validateMetadata(meta DocumentMetadata) error {
	var errs []string

	if meta.Name == "" {
		errs = append(errs, "document name is required")
	}

	if meta.Version == "" {
		errs = append(errs, "document version is required")
	} else {
		version, err := semver.NewVersion(meta.Version)
		if err != nil {
			errs = append(errs, fmt.Sprintf("document version %q is not valid semver", meta.Version))
		} else if !supportedVersions.Check(version) {
			errs = append(errs, fmt.Sprintf("document version %s is outside the supported range %s", version, supportedVersions))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("document metadata: %s", strings.Join(errs, "; "))
	}

	return nil
}

func validateRequests(requests []dto.Request) error {
	if len(requests) == 0 {
		return fmt.Errorf("at least one request is required")
	}

	seen := make(map[string]bool)

	var errs []string
	for i, req := range requests {
		if req.Name == "" {
			errs = append(errs, fmt.Sprintf("request %d: name is required", i))
		} else if !requestNamePattern.MatchString(req.Name) {
			errs = append(errs, fmt.Sprintf("request %d: name %q is invalid (must be alphanumeric with dashes/underscores)", i, req.Name))
		}

		if req.URL == "" {
			errs = append(errs, fmt.Sprintf("request %d (%s): url is required", i, req.Name))
		}

		if seen[req.Name] {
			errs = append(errs, fmt.Sprintf("duplicate request name: %s", req.Name))
		}
		seen[req.Name] = true
	}

	if len(errs) > 0 {
		return fmt.Errorf("requests validation:\n    - %s", strings.Join(errs, "\n    - "))
	}

	return nil
}
