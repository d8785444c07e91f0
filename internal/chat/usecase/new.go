package usecase

import (
	"time"

	chatRepo "conversational-task-assistant/internal/chat/repository"
	"conversational-task-assistant/internal/router"
	taskRepo "conversational-task-assistant/internal/task/repository"
	"conversational-task-assistant/pkg/datemath"
	pkgLog "conversational-task-assistant/pkg/log"
)

const (
	DefaultPairCount     = 5
	DefaultMaxCandidates = 7
	DefaultListLimit     = 10
)

type implUseCase struct {
	l             pkgLog.Logger
	router        router.Router
	repo          taskRepo.Repository
	conversations chatRepo.Repository
	fallback      Fallback
	opts          Options
}

// New creates the chat UseCase. fallback may be nil, in which case unmatched
// utterances get a canned reply.
func New(
	l pkgLog.Logger,
	rt router.Router,
	repo taskRepo.Repository,
	conversations chatRepo.Repository,
	fallback Fallback,
	opts Options,
) *implUseCase {
	if opts.PairCount <= 0 {
		opts.PairCount = DefaultPairCount
	}
	if opts.MaxCandidates <= 0 {
		opts.MaxCandidates = DefaultMaxCandidates
	}
	if opts.ListLimit <= 0 {
		opts.ListLimit = DefaultListLimit
	}
	if opts.Dates == nil {
		opts.Dates = datemath.UTC()
	}
	if opts.Picker == nil {
		opts.Picker = RandomPicker
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &implUseCase{
		l:             l,
		router:        rt,
		repo:          repo,
		conversations: conversations,
		fallback:      fallback,
		opts:          opts,
	}
}

func (uc *implUseCase) now() time.Time {
	return uc.opts.Clock().In(uc.opts.Dates.Location())
}

func (uc *implUseCase) location() *time.Location {
	return uc.opts.Dates.Location()
}
