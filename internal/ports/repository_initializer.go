package ports

import "context"

// RepositoryInitializer turns a freshly created project into a version controlled one.
type RepositoryInitializer interface {
	Init(ctx context.Context, projectPath string) error
}
