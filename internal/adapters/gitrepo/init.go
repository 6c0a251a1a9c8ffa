package gitrepo

import (
	"context"
	"fmt"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Initializer creates a git repository holding the generated project as its first commit.
type Initializer struct {
	authorName  string
	authorEmail string
	now         func() time.Time
}

// NewInitializer creates an initializer that commits as the given author.
func NewInitializer(authorName, authorEmail string) *Initializer {
	return &Initializer{
		authorName:  authorName,
		authorEmail: authorEmail,
		now:         time.Now,
	}
}

// Init runs git init in projectPath, stages every file and commits it.
func (i *Initializer) Init(ctx context.Context, projectPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repo, err := git.PlainInit(projectPath, false)
	if err != nil {
		return fmt.Errorf("failed to init repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}

	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return fmt.Errorf("failed to stage files: %w", err)
	}

	sig := &object.Signature{Name: i.authorName, Email: i.authorEmail, When: i.now()}
	if _, err := wt.Commit("Initial commit from Celeris project starter", &git.CommitOptions{
		Author:            sig,
		Committer:         sig,
		AllowEmptyCommits: true,
	}); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
