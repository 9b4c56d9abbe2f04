package notify

import (
	"sync"
	"time"

	"github.com/and161185/pedidos/internal/clock"
	"github.com/and161185/pedidos/internal/model"
)

const (
	DefaultToastDuration   = 3 * time.Second
	DefaultTooltipDuration = 4 * time.Second
)

type Kind string

const (
	KindError   Kind = "error"
	KindSuccess Kind = "success"
)

// Presenter draws notifications. Calls are made without Service locks held.
type Presenter interface {
	ShowToast(message string, kind Kind)
	HideToast()
	ShowFieldError(field model.Field, message string)
	HideFieldError(field model.Field)
}

type Toast struct {
	Message string
	Kind    Kind
}

type fieldError struct {
	message string
	timer   clock.Timer
	gen     uint64
}

// Service keeps at most one toast and one inline error per field, each with
// its own expiry timer.
type Service struct {
	// present orders presenter calls with the state change behind them, so
	// an expiring timer cannot hide something shown after its check.
	present sync.Mutex

	mu        sync.Mutex
	presenter Presenter
	clock     clock.Clock

	toastDuration   time.Duration
	tooltipDuration time.Duration

	toast      *Toast
	toastTimer clock.Timer
	toastGen   uint64

	fields   map[model.Field]*fieldError
	fieldGen uint64
}

func NewService(p Presenter, c clock.Clock, toastDuration, tooltipDuration time.Duration) *Service {
	if toastDuration <= 0 {
		toastDuration = DefaultToastDuration
	}
	if tooltipDuration <= 0 {
		tooltipDuration = DefaultTooltipDuration
	}
	return &Service{
		presenter:       p,
		clock:           c,
		toastDuration:   toastDuration,
		tooltipDuration: tooltipDuration,
		fields:          make(map[model.Field]*fieldError),
	}
}

func (s *Service) ShowToast(message string, kind Kind) {
	s.present.Lock()
	defer s.present.Unlock()

	s.mu.Lock()
	if s.toastTimer != nil {
		s.toastTimer.Stop()
	}
	s.toastGen++
	gen := s.toastGen
	s.toast = &Toast{Message: message, Kind: kind}
	s.toastTimer = s.clock.AfterFunc(s.toastDuration, func() { s.expireToast(gen) })
	s.mu.Unlock()

	s.presenter.ShowToast(message, kind)
}

func (s *Service) expireToast(gen uint64) {
	s.present.Lock()
	defer s.present.Unlock()

	s.mu.Lock()
	if gen != s.toastGen || s.toast == nil {
		s.mu.Unlock()
		return
	}
	s.toast = nil
	s.toastTimer = nil
	s.mu.Unlock()

	s.presenter.HideToast()
}

// ActiveToast returns the toast currently on screen, if any.
func (s *Service) ActiveToast() (Toast, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.toast == nil {
		return Toast{}, false
	}
	return *s.toast, true
}

func (s *Service) ShowFieldError(field model.Field, message string) {
	s.present.Lock()
	defer s.present.Unlock()

	s.mu.Lock()
	if prev, ok := s.fields[field]; ok {
		prev.timer.Stop()
	}
	s.fieldGen++
	fe := &fieldError{message: message, gen: s.fieldGen}
	fe.timer = s.clock.AfterFunc(s.tooltipDuration, func() { s.expireField(field, fe.gen) })
	s.fields[field] = fe
	s.mu.Unlock()

	s.presenter.ShowFieldError(field, message)
}

func (s *Service) expireField(field model.Field, gen uint64) {
	s.present.Lock()
	defer s.present.Unlock()

	s.mu.Lock()
	fe, ok := s.fields[field]
	if !ok || fe.gen != gen {
		s.mu.Unlock()
		return
	}
	delete(s.fields, field)
	s.mu.Unlock()

	s.presenter.HideFieldError(field)
}

// FieldFocused clears the field's error as soon as the user goes back to it.
func (s *Service) FieldFocused(field model.Field) {
	s.ClearFieldError(field)
}

func (s *Service) ClearFieldError(field model.Field) {
	s.present.Lock()
	defer s.present.Unlock()

	s.mu.Lock()
	fe, ok := s.fields[field]
	if !ok {
		s.mu.Unlock()
		return
	}
	fe.timer.Stop()
	delete(s.fields, field)
	s.mu.Unlock()

	s.presenter.HideFieldError(field)
}

func (s *Service) FieldError(field model.Field) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fe, ok := s.fields[field]
	if !ok {
		return "", false
	}
	return fe.message, true
}

// Close stops every pending timer without touching the presenter.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.toastTimer != nil {
		s.toastTimer.Stop()
		s.toastTimer = nil
	}
	s.toastGen++
	for field, fe := range s.fields {
		fe.timer.Stop()
		delete(s.fields, field)
	}
}
