package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"movie-quiz/internal/domain"
)

// State is the progression state of a round.
type State int

const (
	StateAwaitingQuestion State = iota
	StateAwaitingAnswer
	StateRoundComplete
)

func (s State) String() string {
	switch s {
	case StateAwaitingQuestion:
		return "awaiting_question"
	case StateAwaitingAnswer:
		return "awaiting_answer"
	case StateRoundComplete:
		return "round_complete"
	default:
		return "unknown"
	}
}

// DefaultFeedbackDelay is how long answer feedback stays on screen.
const DefaultFeedbackDelay = time.Second

// Observer receives gameplay signals (metrics). Calls happen on the dispatcher.
type Observer interface {
	AnswerSubmitted(correct bool)
	RoundCompleted(correct, total int)
	SupplyFailed()
}

type nopObserver struct{}

func (nopObserver) AnswerSubmitted(bool)    {}
func (nopObserver) RoundCompleted(int, int) {}
func (nopObserver) SupplyFailed()           {}

// SessionSnapshot exposes the round state for inspection.
type SessionSnapshot struct {
	State          State
	CurrentIndex   int
	CorrectAnswers int
	HasQuestion    bool
}

// EngineOption customizes a QuizEngine.
type EngineOption func(*QuizEngine)

// WithDispatcher sets the goroutine all state changes and presenter calls run on.
func WithDispatcher(d Dispatcher) EngineOption {
	return func(e *QuizEngine) { e.dispatcher = d }
}

func WithScheduler(s Scheduler) EngineOption {
	return func(e *QuizEngine) { e.scheduler = s }
}

// WithRunner sets how blocking supply calls are started (a goroutine by default).
func WithRunner(run func(fn func())) EngineOption {
	return func(e *QuizEngine) { e.run = run }
}

func WithObserver(o Observer) EngineOption {
	return func(e *QuizEngine) { e.observer = o }
}

func WithLogger(l zerolog.Logger) EngineOption {
	return func(e *QuizEngine) { e.logger = l }
}

func WithFeedbackDelay(d time.Duration) EngineOption {
	return func(e *QuizEngine) { e.feedbackDelay = d }
}

// QuizEngine drives one player's rounds: it asks the supply for questions,
// scores answers, records finished rounds and tells the presenter what to show.
//
// Session fields are only touched from dispatched funcs, so the engine needs
// no lock of its own.
type QuizEngine struct {
	supply    QuestionSupply
	stats     *StatisticsTracker
	presenter Presenter

	dispatcher    Dispatcher
	ownDispatcher *QueueDispatcher
	scheduler     Scheduler
	run           func(fn func())
	observer      Observer
	logger        zerolog.Logger
	feedbackDelay time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	state           State
	currentIndex    int
	correctAnswers  int
	currentQuestion *domain.Question
	pendingFeedback context.CancelFunc
	requestSeq      uint64
}

// NewQuizEngine wires an engine. ctx bounds the engine lifetime; Close
// cancels it as well.
func NewQuizEngine(ctx context.Context, supply QuestionSupply, stats *StatisticsTracker, presenter Presenter, opts ...EngineOption) *QuizEngine {
	e := &QuizEngine{
		supply:        supply,
		stats:         stats,
		presenter:     presenter,
		scheduler:     TimerScheduler{},
		run:           func(fn func()) { go fn() },
		observer:      nopObserver{},
		logger:        zerolog.Nop(),
		feedbackDelay: DefaultFeedbackDelay,
		state:         StateAwaitingQuestion,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.dispatcher == nil {
		e.ownDispatcher = NewQueueDispatcher()
		e.dispatcher = e.ownDispatcher
	}
	e.ctx, e.cancel = context.WithCancel(ctx)
	return e
}

// Start loads the question data and requests the first question.
func (e *QuizEngine) Start() {
	e.dispatch(e.loadData)
}

// Retry is the manual recovery after a supply failure: the round is reset
// and data is loaded from scratch.
func (e *QuizEngine) Retry() {
	e.dispatch(func() {
		e.resetRound()
		e.loadData()
	})
}

// Restart begins a new round.
func (e *QuizEngine) Restart() {
	e.dispatch(e.restart)
}

// SubmitAnswer scores the answer for the question on screen. Late or
// duplicate answers are ignored.
func (e *QuizEngine) SubmitAnswer(answer bool) {
	e.dispatch(func() {
		e.submitAnswer(answer)
	})
}

// Snapshot must be called on the dispatcher goroutine (or with a synchronous
// dispatcher).
func (e *QuizEngine) Snapshot() SessionSnapshot {
	return SessionSnapshot{
		State:          e.state,
		CurrentIndex:   e.currentIndex,
		CorrectAnswers: e.correctAnswers,
		HasQuestion:    e.currentQuestion != nil,
	}
}

// Close cancels pending feedback timers and in-flight supply calls. Results
// arriving afterwards are dropped.
func (e *QuizEngine) Close() {
	e.cancel()
	if e.ownDispatcher != nil {
		e.ownDispatcher.Close()
	}
}

func (e *QuizEngine) dispatch(fn func()) {
	e.dispatcher.Dispatch(func() {
		if e.ctx.Err() != nil {
			return
		}
		fn()
	})
}

func (e *QuizEngine) loadData() {
	e.state = StateAwaitingQuestion
	e.presenter.ShowLoading()

	seq := e.nextRequest()
	e.run(func() {
		err := e.supply.LoadData(e.ctx)
		e.dispatch(func() {
			if seq != e.requestSeq {
				return
			}
			if err != nil {
				e.didFailToLoad(err)
				return
			}
			e.requestQuestion()
		})
	})
}

func (e *QuizEngine) requestQuestion() {
	seq := e.nextRequest()
	e.run(func() {
		question, err := e.supply.RequestNextQuestion(e.ctx)
		e.dispatch(func() {
			if seq != e.requestSeq {
				return
			}
			e.didReceiveQuestion(question, err)
		})
	})
}

func (e *QuizEngine) didReceiveQuestion(question *domain.Question, err error) {
	if err != nil {
		e.didFailToLoad(err)
		return
	}
	if question == nil || e.state != StateAwaitingQuestion {
		return
	}

	e.currentQuestion = question
	vm := Convert(*question, e.currentIndex, domain.TotalQuestions)
	e.state = StateAwaitingAnswer

	e.presenter.HideLoading()
	e.presenter.Render(vm)
	e.presenter.SetInputEnabled(true)
}

func (e *QuizEngine) didFailToLoad(err error) {
	wrapped := fmt.Errorf("%w: %v", domain.ErrSupplyFailure, err)
	e.logger.Warn().Err(wrapped).Int("index", e.currentIndex).Msg("question supply failed")
	e.observer.SupplyFailed()

	e.presenter.HideLoading()
	e.presenter.ShowError(err.Error(), RetryButtonText)
}

func (e *QuizEngine) submitAnswer(answer bool) {
	if e.state != StateAwaitingAnswer || e.currentQuestion == nil {
		return
	}

	isCorrect := answer == e.currentQuestion.CorrectAnswer
	if isCorrect {
		e.correctAnswers++
	}
	e.currentQuestion = nil
	e.observer.AnswerSubmitted(isCorrect)

	e.presenter.SetInputEnabled(false)
	e.presenter.SetImageFeedback(isCorrect)

	ctx, cancel := context.WithCancel(e.ctx)
	e.pendingFeedback = cancel
	e.scheduler.AfterFunc(ctx, e.feedbackDelay, func() {
		e.dispatch(func() {
			if ctx.Err() != nil {
				return
			}
			cancel()
			e.pendingFeedback = nil
			e.advanceOrComplete()
		})
	})
}

func (e *QuizEngine) advanceOrComplete() {
	if e.currentIndex == domain.TotalQuestions-1 {
		e.completeRound()
		return
	}

	e.currentIndex++
	e.state = StateAwaitingQuestion
	e.presenter.ShowLoading()
	e.requestQuestion()
}

func (e *QuizEngine) completeRound() {
	correct, total := e.correctAnswers, domain.TotalQuestions
	record, err := e.stats.Record(e.ctx, correct, total)
	if err != nil {
		e.logger.Error().Err(err).Msg("record round statistics")
	}
	e.observer.RoundCompleted(correct, total)
	e.logger.Info().Int("correct", correct).Int("total", total).Msg("round complete")

	e.state = StateRoundComplete
	e.presenter.HideLoading()
	e.presenter.RenderSummary(BuildSummary(correct, total, record))
}

func (e *QuizEngine) restart() {
	e.resetRound()
	e.presenter.ShowLoading()
	e.requestQuestion()
}

func (e *QuizEngine) resetRound() {
	if e.pendingFeedback != nil {
		e.pendingFeedback()
		e.pendingFeedback = nil
	}
	e.currentIndex = 0
	e.correctAnswers = 0
	e.currentQuestion = nil
	e.state = StateAwaitingQuestion
}

func (e *QuizEngine) nextRequest() uint64 {
	e.requestSeq++
	return e.requestSeq
}
