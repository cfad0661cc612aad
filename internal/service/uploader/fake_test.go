package uploader

import (
	"context"
	"sync"

	"github.com/oshokin/pixi-ci/internal/repository/repodata"
)

// fakeRunner replays scripted results and records every invocation.
type fakeRunner struct {
	mu      sync.Mutex
	results []CommandResult
	err     error
	calls   [][]string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (CommandResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, append([]string{name}, args...))

	if f.err != nil {
		return CommandResult{}, f.err
	}

	if len(f.results) == 0 {
		return CommandResult{}, nil
	}

	result := f.results[0]
	f.results = f.results[1:]

	return result, nil
}

// fakeRepository serves fixed repodata or a fixed error.
type fakeRepository struct {
	data *repodata.Repodata
	err  error

	channel string
	subdir  string
	calls   int
}

func (f *fakeRepository) Fetch(_ context.Context, channel, subdir string) (*repodata.Repodata, error) {
	f.calls++
	f.channel = channel
	f.subdir = subdir

	return f.data, f.err
}
