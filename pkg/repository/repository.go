// Package repository provides the session store implementations behind
// interfaces.Repository.
package repository

import (
	"github.com/vidtalk-lab/vidtalk/pkg/domain/interfaces"
	"github.com/vidtalk-lab/vidtalk/pkg/repository/filesystem"
	"github.com/vidtalk-lab/vidtalk/pkg/repository/memory"
)

// NewMemory returns a volatile in-memory repository.
func NewMemory() interfaces.Repository {
	return memory.New()
}

// NewFilesystem returns the JSON-file repository rooted at the given
// directory, creating it when missing.
func NewFilesystem(root string) (interfaces.Repository, error) {
	return filesystem.New(root)
}
