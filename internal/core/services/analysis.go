package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/bizlens-cli/internal/core/domain"
	"github.com/custodia-labs/bizlens-cli/internal/core/ports/driven"
	"github.com/custodia-labs/bizlens-cli/internal/core/ports/driving"
	"github.com/custodia-labs/bizlens-cli/internal/logger"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisOrchestrator = (*AnalysisService)(nil)

// userMessager is implemented by remote errors that carry the service's
// own explanation (for example the "detail" of an error response).
type userMessager interface {
	UserMessage() string
}

// AnalysisService runs the submission state machine:
//
//	Idle ──submit──▶ Submitting ──ok──▶ Succeeded
//	                     │
//	                     └────err────▶ Failed
//
// Succeeded and Failed accept a new submission. Submitting rejects one.
// The displayed result is written last-writer-wins: every submission and
// history load takes a ticket, and a response whose ticket is older than the
// result already on display is not shown.
type AnalysisService struct {
	api     driven.AnalysisAPI
	history driving.HistoryService
	newID   func() string

	mu          sync.Mutex
	status      domain.AnalysisStatus
	ticket      uint64
	shown       uint64
	subscribers []chan domain.AnalysisStatus

	background sync.WaitGroup
}

// NewAnalysisService creates an orchestrator. history may be nil, in which
// case no refresh follows a successful submission.
func NewAnalysisService(api driven.AnalysisAPI, history driving.HistoryService) *AnalysisService {
	return &AnalysisService{
		api:     api,
		history: history,
		newID:   uuid.NewString,
		status:  domain.AnalysisStatus{State: domain.StateIdle},
	}
}

// Submit validates input and issues exactly one analysis request.
func (s *AnalysisService) Submit(ctx context.Context, input domain.BusinessInput) (*domain.AnalysisResult, error) {
	in := input.Clone()

	s.mu.Lock()
	if s.status.State == domain.StateSubmitting {
		inFlight := s.status.SubmissionID
		s.mu.Unlock()
		logger.Debug("Submit rejected: submission %s in flight", inFlight)
		return nil, domain.ErrSubmissionInProgress
	}

	if err := in.Validate(); err != nil {
		s.status.State = domain.StateFailed
		s.status.Input = &in
		s.setErr(err)
		s.notify()
		s.mu.Unlock()
		logger.Debug("Submit rejected by validation: %v", err)
		return nil, err
	}

	if s.api == nil {
		s.status.State = domain.StateFailed
		s.status.Input = &in
		s.setErr(domain.ErrServiceUnavailable)
		s.notify()
		s.mu.Unlock()
		return nil, domain.ErrServiceUnavailable
	}

	id := s.newID()
	s.ticket++
	ticket := s.ticket
	s.status.State = domain.StateSubmitting
	s.status.SubmissionID = id
	s.status.Input = &in
	s.setErr(nil)
	s.notify()
	s.mu.Unlock()

	log := logger.WithFields(map[string]string{"submission_id": id})
	logger.Section("Analysis Submission")
	log.Info("Submitting analysis for %q (count %d)", strings.TrimSpace(in.BusinessName), in.BusinessCount)

	result, err := s.api.Analyze(driven.WithRequestID(ctx, id), in.Request())

	s.mu.Lock()
	if err != nil {
		s.status.State = domain.StateFailed
		s.setErr(err)
		s.notify()
		s.mu.Unlock()
		log.Warn("Analysis failed: %v", err)
		return nil, err
	}
	if result == nil {
		result = &domain.AnalysisResult{}
	}

	s.status.State = domain.StateSucceeded
	s.setErr(nil)
	if ticket > s.shown {
		s.show(ticket, result, domain.OriginSubmission, in.Options.GenerateOutreach)
	} else {
		log.Debug("Analysis %s completed after a newer result was shown; not displayed", result.AnalysisID)
	}
	s.notify()
	s.mu.Unlock()

	log.Info("Analysis %s succeeded", result.AnalysisID)
	s.refreshHistory(ctx)
	return result, nil
}

// LoadFromHistory fetches a stored analysis and displays it.
// The submission state is not changed and history is not refreshed.
// On failure the displayed result is kept.
func (s *AnalysisService) LoadFromHistory(ctx context.Context, analysisID string) (*domain.AnalysisResult, error) {
	analysisID = strings.TrimSpace(analysisID)
	if analysisID == "" {
		return nil, fmt.Errorf("%w: analysis id is required", domain.ErrInvalidInput)
	}
	if s.api == nil {
		return nil, domain.ErrServiceUnavailable
	}

	s.mu.Lock()
	s.ticket++
	ticket := s.ticket
	s.mu.Unlock()

	logger.Debug("Loading analysis %s from history", analysisID)
	result, err := s.api.GetAnalysis(ctx, analysisID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		if ticket > s.shown {
			s.setErr(err)
			s.notify()
		}
		logger.Warn("Load analysis %s failed: %v", analysisID, err)
		return nil, err
	}
	if result == nil {
		result = &domain.AnalysisResult{AnalysisID: analysisID}
	}

	if ticket > s.shown {
		s.show(ticket, result, domain.OriginHistory, result.OutreachRequested())
		if s.status.State != domain.StateFailed {
			s.setErr(nil)
		}
		s.notify()
	} else {
		logger.Debug("Analysis %s loaded after a newer result was shown; not displayed", analysisID)
	}
	return result, nil
}

// Status returns a snapshot of the state machine.
func (s *AnalysisService) Status() domain.AnalysisStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Subscribe returns a channel that receives a snapshot after every change.
// Sends never block: a slow receiver sees the latest snapshot, not every one.
func (s *AnalysisService) Subscribe() <-chan domain.AnalysisStatus {
	ch := make(chan domain.AnalysisStatus, 1)
	s.mu.Lock()
	s.subscribers = append(s.subscribers, ch)
	s.mu.Unlock()
	return ch
}

// Wait blocks until background history refreshes have finished.
func (s *AnalysisService) Wait() {
	s.background.Wait()
}

// refreshHistory starts a fire-and-forget refresh. Its outcome never touches
// the displayed result and failures are only logged.
func (s *AnalysisService) refreshHistory(ctx context.Context) {
	if s.history == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)

	s.background.Add(1)
	go func() {
		defer s.background.Done()
		if _, err := s.history.Refresh(ctx); err != nil {
			logger.Warn("Post-submission history refresh failed: %v", err)
		}
	}()
}

// show replaces the displayed result (caller must hold mu).
func (s *AnalysisService) show(ticket uint64, result *domain.AnalysisResult, origin domain.ResultOrigin, outreach bool) {
	s.shown = ticket
	s.status.Result = result
	s.status.Origin = origin
	s.status.ShowOutreach = outreach
}

// setErr records err and its display message (caller must hold mu).
func (s *AnalysisService) setErr(err error) {
	s.status.Err = err
	s.status.ErrMessage = ErrorMessage(err)
}

// snapshot copies the status (caller must hold mu).
func (s *AnalysisService) snapshot() domain.AnalysisStatus {
	st := s.status
	if st.Input != nil {
		in := st.Input.Clone()
		st.Input = &in
	}
	return st
}

// notify publishes the current status (caller must hold mu).
func (s *AnalysisService) notify() {
	st := s.snapshot()
	for _, ch := range s.subscribers {
		select {
		case ch <- st:
		default:
			// Replace the stale pending snapshot with the latest.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- st:
			default:
			}
		}
	}
}

// ErrorMessage returns a human-readable message for err: the service's own
// explanation when it sent one, otherwise the error text.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var um userMessager
	if errors.As(err, &um) {
		if msg := um.UserMessage(); msg != "" {
			return msg
		}
	}
	return err.Error()
}
