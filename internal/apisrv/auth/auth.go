package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"

	"github.com/hidecraft/hidecraft-manager/internal/apisrv/respond"
	"github.com/hidecraft/hidecraft-manager/internal/auth/jwt"
	"github.com/hidecraft/hidecraft-manager/internal/auth/pwhash"
	"github.com/hidecraft/hidecraft-manager/internal/dependency"
	google "github.com/hidecraft/hidecraft-manager/internal/oauth/google"
)

// Server authenticates staff by password and customers through Google OAuth.
type Server struct {
	adminRepository dependency.Admin
	userRepository  dependency.Users
	verifier        *google.Verifier
	pwhash          *pwhash.PasswordHasher
	JwtAuth         *jwtauth.JWTAuth
	jwtTTL          time.Duration
	c               *Config
	masterHash      string
}

// Config contains the configuration for the auth server.
type Config struct {
	JWTSecret                string `mapstructure:"jwt_secret"`
	MasterPassword           string `mapstructure:"master_password"`
	PasswordHasherSaltSize   int    `mapstructure:"password_hasher_salt_size"`
	PasswordHasherIterations int    `mapstructure:"password_hasher_iterations"`
	JWTTTL                   string `mapstructure:"jwt_ttl"`
}

func New(c *Config, ar dependency.Admin, ur dependency.Users, verifier *google.Verifier) (*Server, error) {
	ph, err := pwhash.New(c.PasswordHasherSaltSize, c.PasswordHasherIterations)
	if err != nil {
		return nil, err
	}
	hash, err := ph.HashPassword(c.MasterPassword)
	if err != nil {
		return nil, err
	}

	ttl, err := time.ParseDuration(c.JWTTTL)
	if err != nil {
		return nil, err
	}

	return &Server{
		adminRepository: ar,
		userRepository:  ur,
		verifier:        verifier,
		pwhash:          ph,
		JwtAuth:         jwtauth.New("HS256", []byte(c.JWTSecret), nil),
		jwtTTL:          ttl,
		c:               c,
		masterHash:      hash,
	}, nil
}

func (s *Server) Routes(r chi.Router) {
	r.Post("/login", s.login)
	r.Post("/google", s.googleLogin)
	r.Post("/admins", s.createAdmin)
	r.Delete("/admins/{username}", s.deleteAdmin)
	r.Post("/password", s.changePassword)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (lr *loginRequest) Bind(r *http.Request) error {
	if lr.Username == "" || lr.Password == "" {
		return fmt.Errorf("username and password are required")
	}
	return nil
}

type authResponse struct {
	AuthToken string `json:"authToken"`
}

func (ar *authResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// login issues a staff token for a valid username and password.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	req := &loginRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, respond.ErrInvalidRequest(err))
		return
	}

	username := strings.ToLower(req.Username)

	pwHash, err := s.adminRepository.PasswordHashByUsername(r.Context(), username)
	if err != nil {
		render.Render(w, r, respond.ErrUnauthorized(fmt.Errorf("not authenticated")))
		return
	}
	if err := s.pwhash.Validate(req.Password, pwHash); err != nil {
		render.Render(w, r, respond.ErrUnauthorized(fmt.Errorf("not authenticated")))
		return
	}

	token, err := jwt.NewAdminToken(s.JwtAuth, s.jwtTTL, username)
	if err != nil {
		render.Render(w, r, respond.ErrInternalServerError(err))
		return
	}
	render.Render(w, r, &authResponse{AuthToken: token})
}

type googleLoginRequest struct {
	Code string `json:"code"`
}

func (gr *googleLoginRequest) Bind(r *http.Request) error {
	if gr.Code == "" {
		return fmt.Errorf("authorization code is required")
	}
	return nil
}

type sessionResponse struct {
	AuthToken string `json:"authToken"`
	UserId    string `json:"userId"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

func (sr *sessionResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// googleLogin exchanges an OAuth code for a customer session token,
// creating or refreshing the account on the way.
func (s *Server) googleLogin(w http.ResponseWriter, r *http.Request) {
	req := &googleLoginRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, respond.ErrInvalidRequest(err))
		return
	}

	ident, err := s.verifier.VerifyCode(r.Context(), req.Code)
	if err != nil {
		slog.Default().ErrorContext(r.Context(), "google login failed",
			slog.String("err", err.Error()),
		)
		render.Render(w, r, respond.ErrUnauthorized(fmt.Errorf("not authenticated")))
		return
	}

	user, err := s.userRepository.UpsertUser(r.Context(), ident.ProviderID, ident.Email, ident.Name, ident.AvatarURL)
	if err != nil {
		slog.Default().ErrorContext(r.Context(), "can't upsert user",
			slog.String("err", err.Error()),
		)
		render.Render(w, r, respond.ErrInternalServerError(err))
		return
	}

	token, err := jwt.NewSessionToken(s.JwtAuth, s.jwtTTL, user.Id, user.Email)
	if err != nil {
		render.Render(w, r, respond.ErrInternalServerError(err))
		return
	}

	render.Render(w, r, &sessionResponse{
		AuthToken: token,
		UserId:    user.Id,
		Email:     user.Email,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
	})
}

type createAdminRequest struct {
	MasterPassword string `json:"masterPassword"`
	Username       string `json:"username"`
	Password       string `json:"password"`
}

func (cr *createAdminRequest) Bind(r *http.Request) error {
	if cr.Username == "" || cr.Password == "" {
		return fmt.Errorf("username and password are required")
	}
	return nil
}

// createAdmin registers a staff account, gated by the master password.
func (s *Server) createAdmin(w http.ResponseWriter, r *http.Request) {
	req := &createAdminRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, respond.ErrInvalidRequest(err))
		return
	}

	if err := s.pwhash.Validate(req.MasterPassword, s.masterHash); err != nil {
		render.Render(w, r, respond.ErrUnauthorized(fmt.Errorf("not authenticated")))
		return
	}

	username := strings.ToLower(req.Username)
	pwHash, err := s.pwhash.HashPassword(req.Password)
	if err != nil {
		render.Render(w, r, respond.ErrInternalServerError(err))
		return
	}

	if err := s.adminRepository.AddAdmin(r.Context(), username, pwHash); err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}

	token, err := jwt.NewAdminToken(s.JwtAuth, s.jwtTTL, username)
	if err != nil {
		render.Render(w, r, respond.ErrInternalServerError(err))
		return
	}
	render.Render(w, r, &authResponse{AuthToken: token})
}

type deleteAdminRequest struct {
	MasterPassword string `json:"masterPassword"`
}

func (dr *deleteAdminRequest) Bind(r *http.Request) error {
	return nil
}

func (s *Server) deleteAdmin(w http.ResponseWriter, r *http.Request) {
	req := &deleteAdminRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, respond.ErrInvalidRequest(err))
		return
	}

	if err := s.pwhash.Validate(req.MasterPassword, s.masterHash); err != nil {
		render.Render(w, r, respond.ErrUnauthorized(fmt.Errorf("not authenticated")))
		return
	}

	username := strings.ToLower(chi.URLParam(r, "username"))
	if err := s.adminRepository.DeleteAdmin(r.Context(), username); err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	render.NoContent(w, r)
}

type changePasswordRequest struct {
	Username        string `json:"username"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (cr *changePasswordRequest) Bind(r *http.Request) error {
	if cr.Username == "" || cr.NewPassword == "" {
		return fmt.Errorf("username and new password are required")
	}
	return nil
}

// changePassword accepts either the account's current password or the
// master password.
func (s *Server) changePassword(w http.ResponseWriter, r *http.Request) {
	req := &changePasswordRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, respond.ErrInvalidRequest(err))
		return
	}

	username := strings.ToLower(req.Username)

	currentHash, err := s.adminRepository.PasswordHashByUsername(r.Context(), username)
	if err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}

	if err := s.pwhash.Validate(req.CurrentPassword, s.masterHash); err != nil {
		if err := s.pwhash.Validate(req.CurrentPassword, currentHash); err != nil {
			render.Render(w, r, respond.ErrUnauthorized(fmt.Errorf("not authenticated")))
			return
		}
	}

	newHash, err := s.pwhash.HashPassword(req.NewPassword)
	if err != nil {
		render.Render(w, r, respond.ErrInternalServerError(err))
		return
	}

	if err := s.adminRepository.ChangePassword(r.Context(), username, newHash); err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}

	token, err := jwt.NewAdminToken(s.JwtAuth, s.jwtTTL, username)
	if err != nil {
		render.Render(w, r, respond.ErrInternalServerError(err))
		return
	}
	render.Render(w, r, &authResponse{AuthToken: token})
}
