// Package config loads and validates request documents: the YAML files
// that describe which requests keygate should prepare and dispatch.
package config

import (
	"github.com/keygate-dev/keygate/internal/application/dto"
)

// Document is a parsed request document.
type Document struct {
	Metadata DocumentMetadata `yaml:"document"`
	Requests []dto.Request    `yaml:"requests"`
}

// DocumentMetadata describes the document itself.
type DocumentMetadata struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description,omitempty"`
}
