package controller

import (
	"context"
	"sync"
	"time"

	"github.com/and161185/pedidos/internal/clock"
	"github.com/and161185/pedidos/internal/debounce"
	"github.com/and161185/pedidos/internal/errs"
	"github.com/and161185/pedidos/internal/model"
	"github.com/and161185/pedidos/internal/notify"
	"github.com/and161185/pedidos/internal/validation"
	"go.uber.org/zap"
)

const DefaultDebounceDelay = 500 * time.Millisecond

const (
	msgCreated          = "Pedido criado com sucesso!"
	msgUpdated          = "Pedido atualizado com sucesso!"
	msgSaveFailed       = "Não foi possível salvar o pedido. Verifique os dados e tente novamente."
	msgLoadOrdersFailed = "Não foi possível carregar os pedidos."
	msgLoadOrderFailed  = "Não foi possível carregar os dados do pedido para edição."
	msgDeleteFailed     = "Não foi possível excluir o pedido."
)

//go:generate mockgen -destination=../mocks/mock_api.go -package=mocks github.com/and161185/pedidos/internal/controller API

// API is the persistence collaborator.
type API interface {
	List(ctx context.Context) ([]model.Order, error)
	ListPast(ctx context.Context) ([]model.Order, error)
	Get(ctx context.Context, id int64) (model.Order, error)
	Create(ctx context.Context, order model.Order) error
	Update(ctx context.Context, id int64, order model.Order) error
	Delete(ctx context.Context, id int64) error
}

type Section int

const (
	SectionForm Section = iota
	SectionList
)

type Listing int

const (
	ListingCurrent Listing = iota
	ListingPast
)

// View is the presentation collaborator for everything but notifications.
type View interface {
	ShowSection(section Section)
	RenderOrders(orders []model.Order, listing Listing)
	FillForm(form model.Form)
	ResetForm()
	ShowDeleteConfirm(id int64)
	HideDeleteConfirm()
	Alert(message string)
}

type State int

const (
	StateIdle State = iota
	StateCreating
	StateEditing
	StateConfirmingDelete
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCreating:
		return "creating"
	case StateEditing:
		return "editing"
	case StateConfirmingDelete:
		return "confirming-delete"
	default:
		return "unknown"
	}
}

type Options struct {
	Clock         clock.Clock
	Logger        *zap.SugaredLogger
	DebounceDelay time.Duration
}

// Controller owns one view session: the form, the displayed list and the
// pending deletion slot.
type Controller struct {
	api      API
	view     View
	notifier *notify.Service
	engine   *validation.Engine
	clock    clock.Clock
	logger   *zap.SugaredLogger
	live     *debounce.Debouncer

	mu            sync.Mutex
	state         State
	form          model.Form
	pendingDelete *int64
	orders        []model.Order
	listing       Listing
	submitting    bool
	deleting      bool
}

func New(api API, view View, notifier *notify.Service, engine *validation.Engine, opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	if opts.DebounceDelay <= 0 {
		opts.DebounceDelay = DefaultDebounceDelay
	}

	return &Controller{
		api:      api,
		view:     view,
		notifier: notifier,
		engine:   engine,
		clock:    opts.Clock,
		logger:   opts.Logger,
		live:     debounce.New(opts.Clock, opts.DebounceDelay),
		state:    StateCreating,
	}
}

// Start shows the empty form.
func (c *Controller) Start() {
	c.view.ShowSection(SectionForm)
}

// Close stops the debounce and notification timers.
func (c *Controller) Close() {
	c.live.Stop()
	c.notifier.Close()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Form() model.Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form.Clone()
}

func (c *Controller) PendingDeletion() (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pendingDelete == nil {
		return 0, false
	}
	return *c.pendingDelete, true
}

func (c *Controller) Orders() ([]model.Order, Listing) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Order(nil), c.orders...), c.listing
}

// SetField records an input event. Edits to the monetary fields schedule
// advisory validation.
func (c *Controller) SetField(field model.Field, value string) {
	c.mu.Lock()
	c.form.Set(field, value)
	c.mu.Unlock()

	if field.IsMonetary() {
		c.live.Trigger(c.validateAmountsLive)
	}
}

func (c *Controller) FocusField(field model.Field) {
	c.notifier.FieldFocused(field)
}

func (c *Controller) validateAmountsLive() {
	c.mu.Lock()
	total := validation.ParseAmount(c.form.Get(model.FieldValorTotal))
	signal := validation.ParseAmount(c.form.Get(model.FieldValorSinal))
	c.mu.Unlock()

	if !total.IsPositive() || !signal.IsPositive() {
		return
	}

	res := c.engine.ValidateMonetaryPair(total, signal)
	if !res.Valid {
		c.notifier.ShowFieldError(res.Field, res.Reason)
		c.notifier.ShowToast(res.Reason, notify.KindError)
		return
	}
	c.notifier.ClearFieldError(model.FieldValorTotal)
	c.notifier.ClearFieldError(model.FieldValorSinal)
}

func (c *Controller) NewOrder() error {
	return c.resetToCreating()
}

func (c *Controller) CancelEdit() error {
	return c.resetToCreating()
}

func (c *Controller) resetToCreating() error {
	c.mu.Lock()
	if c.state == StateConfirmingDelete {
		c.mu.Unlock()
		return errs.ErrConfirmationPending
	}
	c.form = model.Form{}
	c.state = StateCreating
	c.mu.Unlock()

	c.view.ResetForm()
	c.view.ShowSection(SectionForm)
	return nil
}

func (c *Controller) ListCurrent(ctx context.Context) error {
	if err := c.ensureNotConfirming(); err != nil {
		return err
	}
	return c.refresh(ctx, ListingCurrent)
}

func (c *Controller) ListPast(ctx context.Context) error {
	if err := c.ensureNotConfirming(); err != nil {
		return err
	}
	return c.refresh(ctx, ListingPast)
}

func (c *Controller) refresh(ctx context.Context, listing Listing) error {
	fetch := c.api.List
	if listing == ListingPast {
		fetch = c.api.ListPast
	}

	orders, err := fetch(ctx)
	if err != nil {
		c.logger.Errorw("list orders failed", "past", listing == ListingPast, "error", err)
		c.view.Alert(msgLoadOrdersFailed)
		return errs.NewFailure(errs.KindTransport, msgLoadOrdersFailed, err)
	}
	if orders == nil {
		orders = []model.Order{}
	}

	c.mu.Lock()
	c.orders = orders
	c.listing = listing
	c.state = StateIdle
	c.mu.Unlock()

	c.view.ShowSection(SectionList)
	c.view.RenderOrders(append([]model.Order(nil), orders...), listing)
	return nil
}

func (c *Controller) Edit(ctx context.Context, id int64) error {
	if err := c.ensureNotConfirming(); err != nil {
		return err
	}

	order, err := c.api.Get(ctx, id)
	if err != nil {
		c.logger.Errorw("get order failed", "id", id, "error", err)
		c.view.Alert(msgLoadOrderFailed)
		return errs.NewFailure(errs.KindTransport, msgLoadOrderFailed, err)
	}

	form := model.FormFromOrder(order)
	form.ID = &id

	c.mu.Lock()
	c.form = form
	c.state = StateEditing
	c.mu.Unlock()

	c.view.FillForm(form.Clone())
	c.view.ShowSection(SectionForm)
	return nil
}

// Submit validates the form and, when it passes, creates or updates the
// order depending on whether an identifier is held.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.state == StateConfirmingDelete {
		c.mu.Unlock()
		return errs.ErrConfirmationPending
	}
	if c.submitting {
		c.mu.Unlock()
		return errs.ErrBusy
	}
	c.submitting = true
	form := c.form.Clone()
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	now := c.clock.Now()
	if res := c.validate(form, now); !res.Valid {
		c.notifier.ShowFieldError(res.Field, res.Reason)
		c.notifier.ShowToast(res.Reason, notify.KindError)
		return errs.NewFailure(errs.KindValidation, res.Reason, errs.ErrInvalidOrder)
	}

	c.notifier.ClearFieldError(model.FieldDataEntrega)
	c.notifier.ClearFieldError(model.FieldValorTotal)
	c.notifier.ClearFieldError(model.FieldValorSinal)

	order := form.Order(now.Location())
	updating := form.ID != nil

	var err error
	if updating {
		err = c.api.Update(ctx, *form.ID, order)
	} else {
		err = c.api.Create(ctx, order)
	}
	if err != nil {
		c.logger.Errorw("save order failed", "update", updating, "id", order.IDValue(), "error", err)
		c.notifier.ShowToast(msgSaveFailed, notify.KindError)
		return errs.NewFailure(errs.KindPersist, msgSaveFailed, err)
	}

	if updating {
		c.notifier.ShowToast(msgUpdated, notify.KindSuccess)
	} else {
		c.notifier.ShowToast(msgCreated, notify.KindSuccess)
	}

	c.mu.Lock()
	c.form = model.Form{}
	c.state = StateIdle
	c.mu.Unlock()

	c.view.ResetForm()
	c.view.ShowSection(SectionList)
	return c.refresh(ctx, ListingCurrent)
}

// validate runs the date check first; monetary checks only run on a valid date.
func (c *Controller) validate(form model.Form, now time.Time) validation.Result {
	res := c.engine.ValidateFutureDateTime(form.Get(model.FieldDataEntrega), form.Get(model.FieldHoraEntrega), now)
	if !res.Valid {
		return res
	}
	return c.engine.ValidateMonetaryPair(
		validation.ParseAmount(form.Get(model.FieldValorTotal)),
		validation.ParseAmount(form.Get(model.FieldValorSinal)),
	)
}

// RequestDelete parks id until ConfirmDelete or CancelDelete. A second
// request replaces the first.
func (c *Controller) RequestDelete(id int64) {
	c.mu.Lock()
	c.pendingDelete = &id
	c.state = StateConfirmingDelete
	c.mu.Unlock()

	c.view.ShowDeleteConfirm(id)
}

func (c *Controller) CancelDelete() {
	c.mu.Lock()
	if c.state != StateConfirmingDelete {
		c.mu.Unlock()
		return
	}
	c.pendingDelete = nil
	c.state = StateIdle
	c.mu.Unlock()

	c.view.HideDeleteConfirm()
}

// ConfirmDelete issues the delete for the parked id. On failure the
// confirmation stays open so the user can retry or cancel.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	if c.pendingDelete == nil {
		c.mu.Unlock()
		return errs.ErrNoPendingDeletion
	}
	if c.deleting {
		c.mu.Unlock()
		return errs.ErrBusy
	}
	c.deleting = true
	id := *c.pendingDelete
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.deleting = false
		c.mu.Unlock()
	}()

	if err := c.api.Delete(ctx, id); err != nil {
		c.logger.Errorw("delete order failed", "id", id, "error", err)
		c.view.Alert(msgDeleteFailed)
		return errs.NewFailure(errs.KindTransport, msgDeleteFailed, err)
	}

	c.mu.Lock()
	c.pendingDelete = nil
	c.state = StateIdle
	c.mu.Unlock()

	c.view.HideDeleteConfirm()
	return c.refresh(ctx, ListingCurrent)
}

func (c *Controller) ensureNotConfirming() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateConfirmingDelete {
		return errs.ErrConfirmationPending
	}
	return nil
}
