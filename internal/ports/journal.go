package ports

import "context"

// Run is the journal entry of one parse request. It never carries
// extracted field values.
type Run struct {
	ID        string
	Source    string
	UserID    string
	Status    string
	Documents int
	Extracted int
	Failed    int
	Errors    string
}

type RunItem struct {
	RunID    string
	Filename string
	Status   string
	Errors   string
}

// Journal records parse runs. Implementations must tolerate being called
// without a backing store.
type Journal interface {
	StartRun(ctx context.Context, run Run) error
	LogItem(ctx context.Context, item RunItem)
	FinishRun(ctx context.Context, run Run) error
}

// NameSource loads curated Latin spellings for one template.
type NameSource interface {
	LoadNames(ctx context.Context, template string) (NameMap, error)
}
