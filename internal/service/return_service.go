package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/taxwiser/internal/auth"
	"github.com/mmynk/taxwiser/internal/formgraph"
	"github.com/mmynk/taxwiser/internal/metrics"
	"github.com/mmynk/taxwiser/internal/middleware"
	"github.com/mmynk/taxwiser/internal/models"
	"github.com/mmynk/taxwiser/internal/money"
	"github.com/mmynk/taxwiser/internal/presenter"
	"github.com/mmynk/taxwiser/internal/rpc"
	"github.com/mmynk/taxwiser/internal/session"
	"github.com/mmynk/taxwiser/internal/storage"
	"github.com/mmynk/taxwiser/internal/taxrules"
)

// ReturnService implements the ReturnService RPC interface. Every call
// works on the caller's session, found by the email in the token.
type ReturnService struct {
	store    storage.Store
	sessions *session.Manager
	counties *taxrules.CountyTable
	metrics  *metrics.Metrics

	autosave        bool
	autosaveTimeout time.Duration
	background      sync.WaitGroup
}

var _ rpc.ReturnServiceHandler = (*ReturnService)(nil)

// ReturnOption configures a ReturnService.
type ReturnOption func(*ReturnService)

// WithMetrics records recompute and autosave metrics.
func WithMetrics(m *metrics.Metrics) ReturnOption {
	return func(s *ReturnService) { s.metrics = m }
}

// WithAutosave saves the return in the background on every Navigate.
func WithAutosave(timeout time.Duration) ReturnOption {
	return func(s *ReturnService) {
		s.autosave = true
		s.autosaveTimeout = timeout
	}
}

// NewReturnService creates a ReturnService.
func NewReturnService(store storage.Store, sessions *session.Manager, counties *taxrules.CountyTable, opts ...ReturnOption) *ReturnService {
	s := &ReturnService{
		store:    store,
		sessions: sessions,
		counties: counties,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Wait blocks until background saves have finished.
func (s *ReturnService) Wait() {
	s.background.Wait()
}

func callerEmail(ctx context.Context) (string, error) {
	email := middleware.GetEmail(ctx)
	if email == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return email, nil
}

// current returns the caller's session, locked. The caller must unlock it.
func (s *ReturnService) current(ctx context.Context) (*session.Session, error) {
	email, err := callerEmail(ctx)
	if err != nil {
		return nil, err
	}
	sess, err := s.sessions.Get(email)
	if err != nil {
		return nil, connect.NewError(connect.CodeFailedPrecondition, err)
	}
	sess.Lock()
	return sess, nil
}

// storeError maps a persistence failure to a Connect error.
func storeError(err error) *connect.Error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrCorrupt):
		return connect.NewError(connect.CodeDataLoss, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	}
	return connect.NewError(connect.CodeUnavailable, err)
}

// StartReturn opens a new return for the chosen filing profile, replacing
// any return in progress.
func (s *ReturnService) StartReturn(ctx context.Context, req *connect.Request[rpc.StartReturnRequest]) (*connect.Response[rpc.StartReturnResponse], error) {
	email, err := callerEmail(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := profileFromRPC(req.Msg.Profile, s.counties)
	if err != nil {
		slog.Warn("StartReturn rejected", "email", email, "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	sess, err := s.sessions.Start(email, middleware.GetName(ctx), profile)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	sess.Lock()
	defer sess.Unlock()
	return connect.NewResponse(&rpc.StartReturnResponse{Return: returnView(sess)}), nil
}

// EditFields applies raw input to leaf lines and returns what changed.
func (s *ReturnService) EditFields(ctx context.Context, req *connect.Request[rpc.EditFieldsRequest]) (*connect.Response[rpc.EditFieldsResponse], error) {
	sess, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Unlock()

	edits := make(map[formgraph.FieldID]string, len(req.Msg.Values))
	for id, raw := range req.Msg.Values {
		edits[formgraph.FieldID(id)] = raw
	}

	changed, err := sess.Return.Edit(edits)
	if err != nil {
		if errors.Is(err, formgraph.ErrUnknownField) || errors.Is(err, formgraph.ErrDerivedField) {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	s.metrics.ObserveRecompute(len(changed))
	slog.Debug("Fields edited", "email", sess.Email, "edits", len(edits), "changed", len(changed))

	r := sess.Return
	return connect.NewResponse(&rpc.EditFieldsResponse{
		Changed:  fieldsToRPC(presenter.Fields(r, changed...)),
		Sections: presenter.Sections(r),
		Totals:   totalsToRPC(r.LiveTotals()),
	}), nil
}

// GetReturn returns the full view of the return in progress.
func (s *ReturnService) GetReturn(ctx context.Context, req *connect.Request[rpc.GetReturnRequest]) (*connect.Response[rpc.GetReturnResponse], error) {
	sess, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Unlock()

	return connect.NewResponse(&rpc.GetReturnResponse{Return: returnView(sess)}), nil
}

// Navigate records the section the filer moved to and, when autosave is
// on, starts a background save. The save never delays or fails the call.
func (s *ReturnService) Navigate(ctx context.Context, req *connect.Request[rpc.NavigateRequest]) (*connect.Response[rpc.NavigateResponse], error) {
	sess, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	sess.Section = req.Msg.Section
	email := sess.Email
	state := sess.Return.Snapshot()
	sess.Unlock()

	if s.autosave {
		s.background.Add(1)
		go func() {
			defer s.background.Done()
			s.saveInBackground(email, state)
		}()
	}

	return connect.NewResponse(&rpc.NavigateResponse{
		Section:    req.Msg.Section,
		Autosaving: s.autosave,
	}), nil
}

func (s *ReturnService) saveInBackground(email string, state models.FormState) {
	ctx, cancel := context.WithTimeout(context.Background(), s.autosaveTimeout)
	defer cancel()

	ret := &models.SavedReturn{Email: email, State: state}
	if err := s.store.SaveReturn(ctx, ret); err != nil {
		s.metrics.Autosave("error")
		slog.Error("Autosave failed", "email", email, "error", err)
		return
	}
	s.metrics.Autosave("ok")
	slog.Debug("Autosaved return", "email", email, "return_id", ret.ID)
}

// SaveReturn persists the return in progress under the caller's email.
// A failed save leaves the session untouched.
func (s *ReturnService) SaveReturn(ctx context.Context, req *connect.Request[rpc.SaveReturnRequest]) (*connect.Response[rpc.SaveReturnResponse], error) {
	sess, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	ret := &models.SavedReturn{Email: sess.Email, State: sess.Return.Snapshot()}
	sess.Unlock()

	if err := s.store.SaveReturn(ctx, ret); err != nil {
		slog.Error("SaveReturn failed", "email", ret.Email, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Return saved", "email", ret.Email, "return_id", ret.ID)
	return connect.NewResponse(&rpc.SaveReturnResponse{
		ID:           ret.ID,
		LastModified: rpc.NewTimestamp(ret.LastModified),
	}), nil
}

// LoadReturn replaces the session with the caller's saved return.
func (s *ReturnService) LoadReturn(ctx context.Context, req *connect.Request[rpc.LoadReturnRequest]) (*connect.Response[rpc.LoadReturnResponse], error) {
	email, err := callerEmail(ctx)
	if err != nil {
		return nil, err
	}

	ret, err := s.store.GetReturnByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Error("LoadReturn failed", "email", email, "error", err)
		}
		return nil, storeError(err)
	}

	sess, err := s.sessions.Resume(email, middleware.GetName(ctx), ret.State)
	if err != nil {
		slog.Error("Saved return could not be restored", "email", email, "return_id", ret.ID, "error", err)
		return nil, connect.NewError(connect.CodeDataLoss, err)
	}

	sess.Lock()
	defer sess.Unlock()
	slog.Info("Return loaded", "email", email, "return_id", ret.ID)
	return connect.NewResponse(&rpc.LoadReturnResponse{
		ID:           ret.ID,
		LastModified: rpc.NewTimestamp(ret.LastModified),
		Return:       returnView(sess),
	}), nil
}

// DeleteReturn removes one of the caller's saved returns. The return in
// progress, if any, is kept.
func (s *ReturnService) DeleteReturn(ctx context.Context, req *connect.Request[rpc.DeleteReturnRequest]) (*connect.Response[rpc.DeleteReturnResponse], error) {
	email, err := callerEmail(ctx)
	if err != nil {
		return nil, err
	}

	owner, err := s.store.ReturnOwner(ctx, req.Msg.ID)
	if err != nil {
		return nil, storeError(err)
	}
	if owner != auth.NormalizeEmail(email) {
		slog.Warn("DeleteReturn denied", "email", email, "return_id", req.Msg.ID)
		return nil, connect.NewError(connect.CodePermissionDenied, errors.New("return belongs to another user"))
	}

	if err := s.store.DeleteReturn(ctx, req.Msg.ID); err != nil {
		return nil, storeError(err)
	}

	slog.Info("Return deleted", "email", email, "return_id", req.Msg.ID)
	return connect.NewResponse(&rpc.DeleteReturnResponse{}), nil
}

// GetSummary returns the bottom-line figures and a narrative.
func (s *ReturnService) GetSummary(ctx context.Context, req *connect.Request[rpc.GetSummaryRequest]) (*connect.Response[rpc.GetSummaryResponse], error) {
	sess, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Unlock()

	r := sess.Return
	fed, st := summaryToRPC(r.Summary())
	narrative := presenter.Narrative(r)
	html, err := presenter.HTML(narrative)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&rpc.GetSummaryResponse{
		Federal:       fed,
		State:         st,
		Narrative:     narrative,
		NarrativeHTML: html,
	}), nil
}

// RunPreCheck lists likely mistakes and the itemizing advice.
func (s *ReturnService) RunPreCheck(ctx context.Context, req *connect.Request[rpc.RunPreCheckRequest]) (*connect.Response[rpc.RunPreCheckResponse], error) {
	sess, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Unlock()

	r := sess.Return
	resp := &rpc.RunPreCheckResponse{Warnings: r.PreCheck()}
	if resp.Warnings == nil {
		resp.Warnings = []string{}
	}
	if advice, ok := r.DeductionAdvice(); ok {
		resp.Advice = &rpc.Advice{
			Itemized:       money.Plain(advice.Itemized),
			Standard:       money.Plain(advice.Standard),
			PreferItemized: advice.PreferItemized,
			Message:        advice.Message,
		}
	}
	return connect.NewResponse(resp), nil
}

// ListCounties returns the Indiana county rate table.
func (s *ReturnService) ListCounties(ctx context.Context, req *connect.Request[rpc.ListCountiesRequest]) (*connect.Response[rpc.ListCountiesResponse], error) {
	list := s.counties.List()
	out := make([]rpc.County, len(list))
	for i, c := range list {
		out[i] = rpc.County{Name: c.Name, Rate: c.Rate.String()}
	}
	return connect.NewResponse(&rpc.ListCountiesResponse{Counties: out}), nil
}
