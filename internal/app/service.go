package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/shrimpsizemoose/pacekeeper/internal/logic"
	"github.com/shrimpsizemoose/pacekeeper/internal/milestone"
)

type Service struct {
	Config    *Config
	Backend   Backend
	Logic     *logic.Logic
	Deadlines *milestone.Deadlines
	Auth      *Auth
}

func NewService(configPath string) (*Service, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewServiceFromConfig(config, NewResolver())
}

// NewServiceFromConfig resolves the profile's logic before opening any connection, so an
// unsupported product never touches the database.
func NewServiceFromConfig(config *Config, resolver *Resolver) (*Service, error) {
	l, err := resolver.Resolve(&config.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve logic for profile %q: %w", config.Profile.Name, err)
	}

	backend, err := NewBackend(&config.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to init store: %w", err)
	}

	auth, err := NewAuth(config)
	if err != nil {
		backend.Close()
		return nil, fmt.Errorf("failed to init auth: %w", err)
	}

	return &Service{
		Config:    config,
		Backend:   backend,
		Logic:     l,
		Deadlines: milestone.NewDeadlines(backend, l),
		Auth:      auth,
	}, nil
}

// ValidateAuth checks the bearer token of the interviewer recording an appeal.
func (s *Service) ValidateAuth(r *http.Request, interviewer string) error {
	if !s.Auth.Enabled() {
		return nil
	}

	authHeader := r.Header.Get(s.Auth.TokenHeader())
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return fmt.Errorf("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")

	return s.Auth.ValidateToken(r.Context(), interviewer, token)
}

func (s *Service) ValidateHeaders(headers map[string][]string) bool {
	for _, required := range s.Config.API.RequiredHeaders {
		value := headers[http.CanonicalHeaderKey(required.Name)]
		if len(value) == 0 || !strings.EqualFold(value[0], required.Value) {
			return false
		}
	}
	return true
}

func (s *Service) Close() error {
	var errs []error

	if err := s.Backend.Close(); err != nil {
		errs = append(errs, fmt.Errorf("store: %w", err))
	}
	if err := s.Auth.Close(); err != nil {
		errs = append(errs, fmt.Errorf("auth: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors while closing: %v", errs)
	}
	return nil
}
