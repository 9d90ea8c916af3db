package service

import (
	"context"
	"strings"
	"sync"

	"github.com/Churn-Demo/frontend/log_messages"
	"github.com/Churn-Demo/frontend/logger"
	"github.com/Churn-Demo/frontend/models"
)

type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseSuccess Phase = "success"
	PhaseFailure Phase = "failure"
)

// State is a snapshot of a panel. Result is set only in PhaseSuccess and
// Error only in PhaseFailure.
type State struct {
	Phase      Phase
	CustomerID string
	Result     *models.Prediction
	Error      string
	ErrorKind  string
}

// Loading is true while a submit is waiting on the gateway.
func (s State) Loading() bool {
	return s.Phase == PhaseLoading
}

// Panel owns the form state of one user. The most recent submit wins: a
// new submit cancels the call of the previous one and its outcome is
// dropped.
type Panel struct {
	predictor Predictor

	mu     sync.Mutex
	state  State
	seq    uint64
	cancel context.CancelFunc
}

func NewPanel(predictor Predictor) *Panel {
	return &Panel{
		predictor: predictor,
		state:     State{Phase: PhaseIdle},
	}
}

// Snapshot returns the current state.
func (p *Panel) Snapshot() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Submit trims input and, when it is not blank, asks the predictor once.
// The returned state is the panel state after this submit settles, which
// is a newer submit's state if this one was superseded.
func (p *Panel) Submit(ctx context.Context, input string) (state State) {
	customerID := strings.TrimSpace(input)

	p.mu.Lock()
	p.seq++
	seq := p.seq
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
		logger.CtxDebug(ctx, log_messages.PredictionSuperseded)
	}
	p.state = State{Phase: PhaseIdle, CustomerID: input}

	if customerID == "" {
		err := &ValidationError{Message: ValidationMessage}
		p.state.Phase = PhaseFailure
		p.state.Error = err.Error()
		p.state.ErrorKind = KindValidation
		state = p.state
		p.mu.Unlock()
		return state
	}

	callCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.state.Phase = PhaseLoading
	p.mu.Unlock()

	logger.CtxInfo(ctx, log_messages.PredictionRequested, map[string]any{"customer_id": customerID})

	var (
		prediction *models.Prediction
		err        error
	)
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
			logger.CtxError(ctx, log_messages.PredictionPanicked, err)
		}
		state = p.settle(ctx, seq, cancel, prediction, err)
	}()

	prediction, err = p.predictor.PredictByID(callCtx, customerID)
	return state
}

// settle applies the outcome of submit seq and always leaves the loading
// phase when seq is still the latest submit.
func (p *Panel) settle(ctx context.Context, seq uint64, cancel context.CancelFunc, prediction *models.Prediction, err error) State {
	cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	if seq != p.seq {
		return p.state
	}
	p.cancel = nil

	if err != nil {
		p.state.Phase = PhaseFailure
		p.state.Result = nil
		p.state.Error = Message(err)
		p.state.ErrorKind = Kind(err)
		logger.CtxWarn(ctx, log_messages.PredictionFailed, map[string]any{
			"kind":  p.state.ErrorKind,
			"error": p.state.Error,
		})
		return p.state
	}

	p.state.Phase = PhaseSuccess
	p.state.Result = prediction
	p.state.Error = ""
	p.state.ErrorKind = ""
	logger.CtxInfo(ctx, log_messages.PredictionSucceeded)
	return p.state
}
