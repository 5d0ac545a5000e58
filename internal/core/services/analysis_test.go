package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bizlens-cli/internal/core/domain"
)

// detailError mimics a remote error carrying the service's explanation.
type detailError struct{ detail string }

func (e *detailError) Error() string       { return "status 500: " + e.detail }
func (e *detailError) UserMessage() string { return e.detail }
func (e *detailError) Unwrap() error       { return domain.ErrRequestFailed }

func TestAnalysisService_InitialStatus(t *testing.T) {
	svc := NewAnalysisService(&mockAnalysisAPI{}, nil)

	st := svc.Status()

	assert.Equal(t, domain.StateIdle, st.State)
	assert.Nil(t, st.Result)
	assert.NoError(t, st.Err)
	assert.Empty(t, st.SubmissionID)
}

func TestAnalysisService_Submit_Success(t *testing.T) {
	api := &mockAnalysisAPI{
		AnalyzeFunc: func(_ context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error) {
			return &domain.AnalysisResult{AnalysisID: "abc123"}, nil
		},
		ListAnalysesFunc: func(context.Context) ([]domain.HistoryEntry, error) {
			return entries("abc123"), nil
		},
	}
	history := NewHistoryCache(api)
	svc := NewAnalysisService(api, history)
	svc.newID = func() string { return "sub-1" }

	res, err := svc.Submit(context.Background(), validInput())
	svc.Wait()

	require.NoError(t, err)
	assert.Equal(t, "abc123", res.AnalysisID)

	st := svc.Status()
	assert.Equal(t, domain.StateSucceeded, st.State)
	assert.Equal(t, "sub-1", st.SubmissionID)
	assert.Equal(t, domain.OriginSubmission, st.Origin)
	require.NotNil(t, st.Result)
	assert.Equal(t, "abc123", st.Result.AnalysisID)
	assert.False(t, st.ShowOutreach)
	assert.NoError(t, st.Err)

	assert.Equal(t, 1, api.analyzeCount())
	assert.Equal(t, []string{"sub-1"}, api.requestIDs)
	assert.Equal(t, 1, api.listCount())
	_, ok := history.Get("abc123")
	assert.True(t, ok)
}

func TestAnalysisService_Submit_BuildsRequest(t *testing.T) {
	api := &mockAnalysisAPI{}
	svc := NewAnalysisService(api, nil)

	in := validInput()
	in.BusinessCount = 3
	in.Location = domain.LocationParts{City: "New York", State: "NY"}
	in.Options.GenerateOutreach = true

	_, err := svc.Submit(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, api.analyzeReqs, 1)
	req := api.analyzeReqs[0]
	assert.Equal(t, "Wedding Makeover Studio", req.BusinessName)
	assert.Equal(t, 3, req.BusinessCount)
	require.NotNil(t, req.Location)
	assert.Equal(t, "New York, NY", *req.Location)
	assert.Nil(t, req.BusinessCategory)
	assert.True(t, svc.Status().ShowOutreach)
}

func TestAnalysisService_Submit_ValidationNeverCallsNetwork(t *testing.T) {
	tests := []struct {
		name  string
		input domain.BusinessInput
		field domain.Field
	}{
		{"empty name", domain.NewBusinessInput(""), domain.FieldBusinessName},
		{"whitespace name", domain.NewBusinessInput("  \t "), domain.FieldBusinessName},
		{"count zero", func() domain.BusinessInput {
			in := validInput()
			in.BusinessCount = 0
			return in
		}(), domain.FieldBusinessCount},
		{"count eleven", func() domain.BusinessInput {
			in := validInput()
			in.BusinessCount = 11
			return in
		}(), domain.FieldBusinessCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &mockAnalysisAPI{}
			svc := NewAnalysisService(api, NewHistoryCache(api))

			res, err := svc.Submit(context.Background(), tt.input)
			svc.Wait()

			assert.Nil(t, res)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.NotEmpty(t, verr.Message(tt.field))

			st := svc.Status()
			assert.Equal(t, domain.StateFailed, st.State)
			assert.NotEmpty(t, st.ErrMessage)
			assert.Equal(t, 0, api.analyzeCount())
			assert.Equal(t, 0, api.listCount())
		})
	}
}

func TestAnalysisService_Submit_RejectsWhileSubmitting(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	api := &mockAnalysisAPI{
		AnalyzeFunc: func(context.Context, domain.AnalysisRequest) (*domain.AnalysisResult, error) {
			close(started)
			<-release
			return &domain.AnalysisResult{AnalysisID: "first"}, nil
		},
	}
	svc := NewAnalysisService(api, nil)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(context.Background(), validInput())
		done <- err
	}()
	<-started

	assert.Equal(t, domain.StateSubmitting, svc.Status().State)

	_, err := svc.Submit(context.Background(), validInput())
	assert.ErrorIs(t, err, domain.ErrSubmissionInProgress)
	assert.Equal(t, domain.StateSubmitting, svc.Status().State)

	// Even an invalid input is rejected by the guard first.
	_, err = svc.Submit(context.Background(), domain.NewBusinessInput(""))
	assert.ErrorIs(t, err, domain.ErrSubmissionInProgress)
	assert.Equal(t, domain.StateSubmitting, svc.Status().State)

	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, domain.StateSucceeded, svc.Status().State)
	assert.Equal(t, 1, api.analyzeCount())
}

func TestAnalysisService_Submit_FailureKeepsDisplayedResult(t *testing.T) {
	fail := false
	api := &mockAnalysisAPI{
		AnalyzeFunc: func(context.Context, domain.AnalysisRequest) (*domain.AnalysisResult, error) {
			if fail {
				return nil, fmt.Errorf("analyze: %w", &detailError{detail: "Analysis failed: quota exceeded"})
			}
			return &domain.AnalysisResult{AnalysisID: "ok-1"}, nil
		},
	}
	svc := NewAnalysisService(api, nil)

	_, err := svc.Submit(context.Background(), validInput())
	require.NoError(t, err)

	fail = true
	_, err = svc.Submit(context.Background(), validInput())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRequestFailed))
	st := svc.Status()
	assert.Equal(t, domain.StateFailed, st.State)
	assert.Equal(t, "Analysis failed: quota exceeded", st.ErrMessage)
	require.NotNil(t, st.Result)
	assert.Equal(t, "ok-1", st.Result.AnalysisID)
}

func TestAnalysisService_Submit_TransportErrorMessage(t *testing.T) {
	api := &mockAnalysisAPI{
		AnalyzeFunc: func(context.Context, domain.AnalysisRequest) (*domain.AnalysisResult, error) {
			return nil, fmt.Errorf("%w: connection refused", domain.ErrRequestFailed)
		},
	}
	svc := NewAnalysisService(api, nil)

	_, err := svc.Submit(context.Background(), validInput())

	require.Error(t, err)
	assert.Equal(t, "analysis request failed: connection refused", svc.Status().ErrMessage)
}

func TestAnalysisService_Submit_CanResubmitAfterFailure(t *testing.T) {
	calls := 0
	api := &mockAnalysisAPI{
		AnalyzeFunc: func(context.Context, domain.AnalysisRequest) (*domain.AnalysisResult, error) {
			calls++
			if calls == 1 {
				return nil, domain.ErrRequestFailed
			}
			return &domain.AnalysisResult{AnalysisID: "second"}, nil
		},
	}
	svc := NewAnalysisService(api, nil)

	_, err := svc.Submit(context.Background(), validInput())
	require.Error(t, err)
	_, err = svc.Submit(context.Background(), validInput())
	require.NoError(t, err)

	st := svc.Status()
	assert.Equal(t, domain.StateSucceeded, st.State)
	assert.NoError(t, st.Err)
	assert.Empty(t, st.ErrMessage)
}

func TestAnalysisService_Submit_HistoryFailureSwallowed(t *testing.T) {
	api := &mockAnalysisAPI{
		ListAnalysesFunc: func(context.Context) ([]domain.HistoryEntry, error) {
			return nil, domain.ErrRequestFailed
		},
	}
	svc := NewAnalysisService(api, NewHistoryCache(api))

	res, err := svc.Submit(context.Background(), validInput())
	svc.Wait()

	require.NoError(t, err)
	assert.NotNil(t, res)
	st := svc.Status()
	assert.Equal(t, domain.StateSucceeded, st.State)
	assert.NoError(t, st.Err)
	assert.Equal(t, 1, api.listCount())
}

func TestAnalysisService_Submit_HistoryRefreshOutlivesCallerContext(t *testing.T) {
	api := &mockAnalysisAPI{
		ListAnalysesFunc: func(ctx context.Context) ([]domain.HistoryEntry, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return entries("abc"), nil
		},
	}
	history := NewHistoryCache(api)
	svc := NewAnalysisService(api, history)

	ctx, cancel := context.WithCancel(context.Background())
	_, err := svc.Submit(ctx, validInput())
	cancel()
	svc.Wait()

	require.NoError(t, err)
	assert.True(t, history.Loaded())
}

func TestAnalysisService_LoadFromHistory(t *testing.T) {
	opts := domain.DefaultAnalysisOptions()
	opts.GenerateOutreach = true
	api := &mockAnalysisAPI{
		GetAnalysisFunc: func(_ context.Context, id string) (*domain.AnalysisResult, error) {
			return &domain.AnalysisResult{AnalysisID: id, Options: &opts}, nil
		},
	}
	svc := NewAnalysisService(api, NewHistoryCache(api))

	res, err := svc.LoadFromHistory(context.Background(), "hist-1")
	svc.Wait()

	require.NoError(t, err)
	assert.Equal(t, "hist-1", res.AnalysisID)
	st := svc.Status()
	assert.Equal(t, domain.StateIdle, st.State)
	assert.Equal(t, domain.OriginHistory, st.Origin)
	assert.True(t, st.ShowOutreach)
	require.NotNil(t, st.Result)
	assert.Equal(t, "hist-1", st.Result.AnalysisID)
	assert.Equal(t, 0, api.listCount())
}

func TestAnalysisService_LoadFromHistory_Idempotent(t *testing.T) {
	api := &mockAnalysisAPI{
		GetAnalysisFunc: func(_ context.Context, id string) (*domain.AnalysisResult, error) {
			score := 0.73
			return &domain.AnalysisResult{
				AnalysisID: id,
				TechStack: &domain.TechStackSection{
					Categories: []domain.TechCategory{{Name: "cms", Items: []domain.Technology{{Name: "wordpress", Confidence: &score}}}},
				},
			}, nil
		},
	}
	svc := NewAnalysisService(api, nil)

	_, err := svc.LoadFromHistory(context.Background(), "abc")
	require.NoError(t, err)
	first := svc.Status().Result

	_, err = svc.LoadFromHistory(context.Background(), "abc")
	require.NoError(t, err)
	second := svc.Status().Result

	assert.Equal(t, first, second)
}

func TestAnalysisService_LoadFromHistory_NotFoundKeepsResult(t *testing.T) {
	api := &mockAnalysisAPI{
		AnalyzeFunc: func(context.Context, domain.AnalysisRequest) (*domain.AnalysisResult, error) {
			return &domain.AnalysisResult{AnalysisID: "shown"}, nil
		},
		GetAnalysisFunc: func(context.Context, string) (*domain.AnalysisResult, error) {
			return nil, fmt.Errorf("get analysis: %w", domain.ErrNotFound)
		},
	}
	svc := NewAnalysisService(api, nil)
	_, err := svc.Submit(context.Background(), validInput())
	require.NoError(t, err)

	_, err = svc.LoadFromHistory(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	st := svc.Status()
	assert.Equal(t, domain.StateSucceeded, st.State)
	require.NotNil(t, st.Result)
	assert.Equal(t, "shown", st.Result.AnalysisID)
	assert.Error(t, st.Err)
}

func TestAnalysisService_LoadFromHistory_EmptyID(t *testing.T) {
	api := &mockAnalysisAPI{}
	svc := NewAnalysisService(api, nil)

	_, err := svc.LoadFromHistory(context.Background(), "  ")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, api.getCalls)
}

func TestAnalysisService_StaleSubmissionNotDisplayed(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	api := &mockAnalysisAPI{
		AnalyzeFunc: func(context.Context, domain.AnalysisRequest) (*domain.AnalysisResult, error) {
			close(started)
			<-release
			return &domain.AnalysisResult{AnalysisID: "stale-submission"}, nil
		},
		GetAnalysisFunc: func(_ context.Context, id string) (*domain.AnalysisResult, error) {
			return &domain.AnalysisResult{AnalysisID: id}, nil
		},
	}
	svc := NewAnalysisService(api, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = svc.Submit(context.Background(), validInput())
	}()
	<-started

	_, err := svc.LoadFromHistory(context.Background(), "newer-load")
	require.NoError(t, err)
	close(release)
	<-done

	st := svc.Status()
	assert.Equal(t, domain.StateSucceeded, st.State)
	require.NotNil(t, st.Result)
	assert.Equal(t, "newer-load", st.Result.AnalysisID)
	assert.Equal(t, domain.OriginHistory, st.Origin)
}

func TestAnalysisService_StaleHistoryLoadNotDisplayed(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	api := &mockAnalysisAPI{
		AnalyzeFunc: func(context.Context, domain.AnalysisRequest) (*domain.AnalysisResult, error) {
			return &domain.AnalysisResult{AnalysisID: "fresh-submission"}, nil
		},
		GetAnalysisFunc: func(_ context.Context, id string) (*domain.AnalysisResult, error) {
			close(started)
			<-release
			return &domain.AnalysisResult{AnalysisID: id}, nil
		},
	}
	svc := NewAnalysisService(api, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = svc.LoadFromHistory(context.Background(), "slow-load")
	}()
	<-started

	_, err := svc.Submit(context.Background(), validInput())
	require.NoError(t, err)
	close(release)
	<-done

	st := svc.Status()
	require.NotNil(t, st.Result)
	assert.Equal(t, "fresh-submission", st.Result.AnalysisID)
}

func TestAnalysisService_StaleHistoryLoadFailureIgnored(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	api := &mockAnalysisAPI{
		GetAnalysisFunc: func(_ context.Context, id string) (*domain.AnalysisResult, error) {
			if id == "slow" {
				close(started)
				<-release
				return nil, errors.New("stale boom")
			}
			return &domain.AnalysisResult{AnalysisID: id}, nil
		},
	}
	svc := NewAnalysisService(api, nil)

	var slowErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, slowErr = svc.LoadFromHistory(context.Background(), "slow")
	}()
	<-started

	_, err := svc.LoadFromHistory(context.Background(), "fast")
	require.NoError(t, err)
	close(release)
	<-done

	// The caller still sees its own failure.
	assert.EqualError(t, slowErr, "stale boom")

	st := svc.Status()
	require.NotNil(t, st.Result)
	assert.Equal(t, "fast", st.Result.AnalysisID)
	assert.Equal(t, domain.StateIdle, st.State)
	assert.NoError(t, st.Err)
	assert.Empty(t, st.ErrMessage)
}

func TestAnalysisService_Subscribe(t *testing.T) {
	api := &mockAnalysisAPI{}
	svc := NewAnalysisService(api, nil)
	ch := svc.Subscribe()

	_, err := svc.Submit(context.Background(), validInput())
	require.NoError(t, err)

	// Submitting was overwritten by Succeeded; only the latest is pending.
	select {
	case st := <-ch:
		assert.Equal(t, domain.StateSucceeded, st.State)
	case <-time.After(time.Second):
		t.Fatal("no status received")
	}

	select {
	case st := <-ch:
		t.Fatalf("unexpected extra status %v", st.State)
	default:
	}
}

func TestAnalysisService_StatusIsSnapshot(t *testing.T) {
	svc := NewAnalysisService(&mockAnalysisAPI{}, nil)
	in := validInput()
	in.BusinessCategory = domain.OptionalString("Beauty")
	_, err := svc.Submit(context.Background(), in)
	require.NoError(t, err)

	st := svc.Status()
	*st.Input.BusinessCategory = "changed"

	assert.Equal(t, "Beauty", *svc.Status().Input.BusinessCategory)
}

func TestAnalysisService_NoAPI(t *testing.T) {
	svc := NewAnalysisService(nil, nil)

	_, err := svc.Submit(context.Background(), validInput())

	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
	assert.Equal(t, domain.StateFailed, svc.Status().State)
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "", ErrorMessage(nil))
	assert.Equal(t, "boom", ErrorMessage(errors.New("boom")))
	assert.Equal(t, "detail text", ErrorMessage(fmt.Errorf("wrap: %w", &detailError{detail: "detail text"})))
	assert.Equal(t, "status 500: ", ErrorMessage(&detailError{}))
}
