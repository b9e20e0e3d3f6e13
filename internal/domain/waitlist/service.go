package waitlist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("name and a valid email are required")
	// ErrAlreadyJoined lo devuelve el sink si el email ya estaba.
	ErrAlreadyJoined = errors.New("email already on the waitlist")
)

const defaultSource = "api"

type Service struct {
	sink     Sink
	validate *validator.Validate
	now      func() time.Time
}

func NewService(sink Sink) *Service {
	return &Service{
		sink:     sink,
		validate: validator.New(),
		now:      time.Now,
	}
}

type JoinInput struct {
	Name    string
	Email   string
	Source  string
	Context string
}

func (s *Service) Join(ctx context.Context, in JoinInput) (Entry, error) {
	e := Entry{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Source:    strings.TrimSpace(in.Source),
		Context:   strings.TrimSpace(in.Context),
		CreatedAt: s.now(),
	}
	if e.Source == "" {
		e.Source = defaultSource
	}

	if err := s.validate.Struct(e); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return Entry{}, fmt.Errorf("%w: %s", ErrInvalidInput, strings.ToLower(verrs[0].Field()))
		}
		return Entry{}, ErrInvalidInput
	}

	if err := s.sink.Add(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}
