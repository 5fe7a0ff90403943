package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/globetrotter/backend/internal/domain"
)

// userResponse is the public view of a user — no password hash, ever.
type userResponse struct {
	ID        uuid.UUID   `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// authResponse pairs a user with a freshly issued bearer token.
type authResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// Register handles POST /api/auth/register.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, token, err := s.users.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		respondError(w, r, "email", err)
		return
	}

	respondDataMessage(w, http.StatusCreated,
		authResponse{User: userToResponse(user), Token: token},
		"user registered successfully")
}

// Login handles POST /api/auth/login.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, r, "user", err)
		return
	}

	respondDataMessage(w, http.StatusOK,
		authResponse{User: userToResponse(user), Token: token},
		"login successful")
}

// Logout handles POST /api/auth/logout. Bearer tokens are stateless, so
// logout is a client-side act; the endpoint exists so clients have something
// to call.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	respondMessage(w, "logout successful")
}

// Me handles GET /api/auth/me.
func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	user, err := s.users.GetByID(r.Context(), caller.UserID)
	if err != nil {
		respondError(w, r, "user", err)
		return
	}

	respondData(w, http.StatusOK, userToResponse(user))
}

// UpdateProfile handles PUT /api/auth/profile.
func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	var req updateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := s.users.UpdateProfile(r.Context(), caller.UserID,
		domain.UserPatch{Name: req.Name, Email: req.Email})
	if err != nil {
		respondError(w, r, "email", err)
		return
	}

	respondDataMessage(w, http.StatusOK, userToResponse(user), "profile updated successfully")
}

func userToResponse(u domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
