package git

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
)

// Tag is a repository tag name paired with the commit it points at.
// Annotated tags are peeled to their target commit.
type Tag struct {
	Name string
	SHA  string
}

// ListTags returns all tags in the repository, optionally filtered by name prefix.
// An empty prefix returns every tag.
func (r *Repository) ListTags(prefixFilter string) ([]Tag, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	var tags []Tag
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if prefixFilter != "" && !strings.HasPrefix(name, prefixFilter) {
			return nil
		}

		sha := ref.Hash()
		// Peel annotated tags to the commit they point at
		if obj, err := r.repo.TagObject(ref.Hash()); err == nil {
			sha = obj.Target
		}

		tags = append(tags, Tag{Name: name, SHA: sha.String()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}

	return tags, nil
}
