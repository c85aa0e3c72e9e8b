package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/logger"
	"alfredoptarigan/resume-analyzer/internal/models"
)

type SubmitRequest struct {
	Document       *models.UploadedDocument
	Mode           models.Mode
	JobDescription string
}

// Orchestrator drives one upload at a time through extraction and
// evaluation, and owns the session state shown to the user.
type Orchestrator interface {
	Submit(ctx context.Context, req SubmitRequest) (*models.SessionSnapshot, error)
	Reset()
	Snapshot() *models.SessionSnapshot
}

type ReadinessChecker interface {
	IsReady() bool
}

// unavailabilityReporter is implemented by readiness sources that can be told
// the backend stopped answering.
type unavailabilityReporter interface {
	MarkUnavailable()
}

type session struct {
	state        models.SessionState
	generation   uint64
	submissionID string
	fileName     string
	mode         models.Mode
	resumeText   string
	checklist    []models.ChecklistItem
	analysis     *models.AnalysisResult
	match        *models.MatchResult
	updatedAt    time.Time
}

type orchestrator struct {
	extractor     TextExtractor
	backend       BackendClient
	readiness     ReadinessChecker
	minTextLength int
	logger        *zap.Logger

	mu      sync.Mutex
	session session
	// inFlight outlives Reset: a reset clears what is displayed, not the
	// work still running.
	inFlight bool
}

func NewOrchestrator(
	extractor TextExtractor,
	backend BackendClient,
	readiness ReadinessChecker,
	minTextLength int,
	log *zap.Logger,
) Orchestrator {
	return &orchestrator{
		extractor:     extractor,
		backend:       backend,
		readiness:     readiness,
		minTextLength: minTextLength,
		logger:        logger.OrNop(log),
		session: session{
			state:     models.StateIdle,
			updatedAt: time.Now(),
		},
	}
}

// Submit implements Orchestrator. Every returned error has a user facing
// message (see UserMessage); on failure the session is back to idle.
func (o *orchestrator) Submit(ctx context.Context, req SubmitRequest) (*models.SessionSnapshot, error) {
	mode := req.Mode
	if mode == "" {
		mode = models.ModeAnalyzer
	}
	req.Mode = mode
	label := modeLabel(mode)

	if err := o.validate(req); err != nil {
		o.logger.Warn("submission rejected", zap.String("mode", label), zap.Error(err))
		SubmissionsTotal.WithLabelValues(label, outcomeRejected).Inc()
		return nil, err
	}

	generation, submissionID, err := o.begin(req)
	if err != nil {
		o.logger.Warn("submission rejected", zap.String("mode", label), zap.Error(err))
		SubmissionsTotal.WithLabelValues(label, outcomeRejected).Inc()
		return nil, err
	}
	defer o.finish()

	log := o.logger.With(
		zap.String("submission_id", submissionID),
		zap.String("file", req.Document.FileName),
		zap.String("mode", string(mode)),
	)
	log.Info("submission started")

	start := time.Now()
	snapshot, err := o.run(ctx, generation, req, log)
	SubmissionDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		SubmissionsTotal.WithLabelValues(label, outcomeDisplayed).Inc()
		log.Info("submission completed", zap.Duration("elapsed", time.Since(start)))
	case errors.Is(err, ErrSessionReset):
		SubmissionsTotal.WithLabelValues(label, outcomeInterrupted).Inc()
		log.Info("submission discarded after reset")
	default:
		SubmissionsTotal.WithLabelValues(label, outcomeFailed).Inc()
		log.Error("submission failed", zap.Error(err))
	}

	return snapshot, err
}

// Reset implements Orchestrator. A submission still in flight keeps running
// but its outcome is dropped.
func (o *orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()

	from := o.session.state
	o.session = session{
		state:      models.StateIdle,
		generation: o.session.generation + 1,
		updatedAt:  time.Now(),
	}
	o.recordTransition(from, models.StateIdle)
	o.logger.Info("session reset")
}

// Snapshot implements Orchestrator.
func (o *orchestrator) Snapshot() *models.SessionSnapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshotLocked()
}

func (o *orchestrator) validate(req SubmitRequest) error {
	if req.Document == nil || !req.Document.MediaType.IsSupported() {
		var mediaType models.MediaType
		if req.Document != nil {
			mediaType = req.Document.MediaType
		}
		return &UnsupportedFileTypeError{MediaType: mediaType}
	}

	if !req.Mode.IsValid() {
		return ErrUnknownMode
	}

	if req.Mode == models.ModeMatcher {
		jd := strings.TrimSpace(req.JobDescription)
		if n := utf8.RuneCountInString(jd); n < o.minTextLength {
			return &InsufficientTextError{Subject: SubjectJobDescription, Length: n, Minimum: o.minTextLength}
		}
	}

	return nil
}

// begin claims the session for a new submission.
func (o *orchestrator) begin(req SubmitRequest) (uint64, string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.inFlight || o.session.state.Busy() {
		return 0, "", ErrSubmissionInProgress
	}

	if o.readiness != nil && !o.readiness.IsReady() {
		return 0, "", &BackendUnavailableError{}
	}

	from := o.session.state
	o.session = session{
		state:        models.StateExtracting,
		generation:   o.session.generation + 1,
		submissionID: uuid.New().String(),
		fileName:     req.Document.FileName,
		mode:         req.Mode,
		updatedAt:    time.Now(),
	}
	o.recordTransition(from, models.StateExtracting)
	o.inFlight = true

	return o.session.generation, o.session.submissionID, nil
}

// finish releases the single-flight claim taken by begin.
func (o *orchestrator) finish() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.inFlight = false
}

func (o *orchestrator) run(ctx context.Context, generation uint64, req SubmitRequest, log *zap.Logger) (*models.SessionSnapshot, error) {
	text, err := o.extractor.Extract(ctx, req.Document)
	if err != nil {
		var extractionErr *ExtractionError
		var typeErr *UnsupportedFileTypeError
		if !errors.As(err, &extractionErr) && !errors.As(err, &typeErr) {
			err = &ExtractionError{MediaType: req.Document.MediaType, Cause: err}
		}
		return o.fail(generation, err)
	}

	text = strings.TrimSpace(text)
	if n := utf8.RuneCountInString(text); n < o.minTextLength {
		return o.fail(generation, &InsufficientTextError{Subject: SubjectResume, Length: n, Minimum: o.minTextLength})
	}

	if !o.advance(generation, func(s *session) {
		s.state = models.StateEvaluating
		s.resumeText = text
	}) {
		return nil, ErrSessionReset
	}
	log.Info("text extracted, evaluating", zap.Int("characters", len(text)))

	switch req.Mode {
	case models.ModeMatcher:
		raw, err := o.backend.MatchResume(ctx, text, strings.TrimSpace(req.JobDescription))
		if err != nil {
			return o.fail(generation, o.remoteFailure(err))
		}
		result := NormalizeMatch(raw)

		return o.display(generation, func(s *session) {
			s.match = result
		})

	default:
		// The checklist does not depend on the remote answer and is
		// discarded if the remote call fails.
		checklist := EvaluateChecklist(text)

		raw, err := o.backend.AnalyzeResume(ctx, text)
		if err != nil {
			return o.fail(generation, o.remoteFailure(err))
		}
		result := NormalizeAnalysis(raw)

		return o.display(generation, func(s *session) {
			s.checklist = checklist
			s.analysis = result
		})
	}
}

func (o *orchestrator) display(generation uint64, apply func(s *session)) (*models.SessionSnapshot, error) {
	ok := o.advance(generation, func(s *session) {
		apply(s)
		s.state = models.StateDisplaying
	})
	if !ok {
		return nil, ErrSessionReset
	}

	return o.Snapshot(), nil
}

// advance applies fn if the session still belongs to generation.
func (o *orchestrator) advance(generation uint64, fn func(s *session)) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.session.generation != generation {
		return false
	}

	from := o.session.state
	fn(&o.session)
	o.session.updatedAt = time.Now()
	o.recordTransition(from, o.session.state)
	return true
}

// fail moves the session through failed back to idle and drops everything
// derived so far.
func (o *orchestrator) fail(generation uint64, err error) (*models.SessionSnapshot, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.session.generation != generation {
		return nil, ErrSessionReset
	}

	o.recordTransition(o.session.state, models.StateFailed)
	o.session = session{
		state:      models.StateIdle,
		generation: o.session.generation,
		updatedAt:  time.Now(),
	}
	o.recordTransition(models.StateFailed, models.StateIdle)

	return nil, err
}

func (o *orchestrator) recordTransition(from, to models.SessionState) {
	SessionTransitions.WithLabelValues(string(from), string(to)).Inc()
}

func (o *orchestrator) snapshotLocked() *models.SessionSnapshot {
	s := o.session
	snapshot := &models.SessionSnapshot{
		State:        s.state,
		SubmissionID: s.submissionID,
		FileName:     s.fileName,
		Mode:         s.mode,
		ResumeText:   s.resumeText,
		Analysis:     s.analysis,
		Match:        s.match,
		UpdatedAt:    s.updatedAt,
	}
	if s.checklist != nil {
		snapshot.Checklist = append([]models.ChecklistItem(nil), s.checklist...)
	}
	return snapshot
}

// remoteFailure classifies a backend error. An unreachable backend also
// drops readiness so new submissions are refused until a probe succeeds.
func (o *orchestrator) remoteFailure(err error) error {
	var unavailable *BackendUnavailableError
	if errors.As(err, &unavailable) {
		if reporter, ok := o.readiness.(unavailabilityReporter); ok {
			reporter.MarkUnavailable()
		}
	}
	return asRemoteError(err)
}

func modeLabel(mode models.Mode) string {
	if !mode.IsValid() {
		return "invalid"
	}
	return string(mode)
}

func asRemoteError(err error) error {
	var unavailable *BackendUnavailableError
	var remote *RemoteAnalysisError
	if errors.As(err, &unavailable) || errors.As(err, &remote) {
		return err
	}
	return &RemoteAnalysisError{Message: err.Error(), Cause: err}
}
