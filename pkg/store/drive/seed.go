package drive

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// SeedFolder describes one folder in a seed tree.
type SeedFolder struct {
	Name    string       `yaml:"name"`
	Folders []SeedFolder `yaml:"folders,omitempty"`
	Files   []SeedFile   `yaml:"files,omitempty"`
}

// SeedFile describes one file in a seed tree. Content is inline text.
type SeedFile struct {
	Name     string `yaml:"name"`
	MimeType string `yaml:"mime_type,omitempty"`
	Content  string `yaml:"content,omitempty"`
}

// SeedTree is the root of a seed file: folders and files created directly
// under the store root.
type SeedTree struct {
	Folders []SeedFolder `yaml:"folders,omitempty"`
	Files   []SeedFile   `yaml:"files,omitempty"`
}

// ContentWriter is the slice of the content store that seeding needs.
type ContentWriter interface {
	Write(ctx context.Context, id ContentID, data []byte) error
}

// LoadSeedTree reads and decodes a YAML seed file.
func LoadSeedTree(path string) (*SeedTree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var tree SeedTree
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}

	return &tree, nil
}

// ApplySeed populates an empty store from a seed tree, writing file bytes
// through the content writer and registering the matching metadata.
func ApplySeed(ctx context.Context, store Store, contents ContentWriter, tree *SeedTree) error {
	root, err := store.Root(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve root: %w", err)
	}
	return seedInto(ctx, store, contents, root.ID, tree.Folders, tree.Files)
}

func seedInto(ctx context.Context, store Store, contents ContentWriter, parentID uuid.UUID, folders []SeedFolder, files []SeedFile) error {
	for _, f := range folders {
		node, err := store.CreateFolder(ctx, parentID, f.Name)
		if err != nil {
			return fmt.Errorf("failed to seed folder %q: %w", f.Name, err)
		}
		if err := seedInto(ctx, store, contents, node.ID, f.Folders, f.Files); err != nil {
			return err
		}
	}

	for _, f := range files {
		mime := f.MimeType
		if mime == "" {
			mime = MimeText
		}

		contentID := NewContentID()
		if err := contents.Write(ctx, contentID, []byte(f.Content)); err != nil {
			return fmt.Errorf("failed to seed content for %q: %w", f.Name, err)
		}
		if _, err := store.CreateFile(ctx, parentID, f.Name, mime, uint64(len(f.Content)), contentID); err != nil {
			return fmt.Errorf("failed to seed file %q: %w", f.Name, err)
		}
	}

	return nil
}
