package service

import (
	"context"
	"errors"
	"time"

	"github.com/rizqydermawanai-png/kazumimanajemen/internal/config"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/dto"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/model"
	"github.com/rizqydermawanai-png/kazumimanajemen/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Login surfaces. The dashboard serves staff, the store serves customers;
// each rejects accounts belonging to the other surface.
const (
	SurfaceDashboard = "dashboard"
	SurfaceStore     = "store"
)

var (
	ErrInvalidCredentials  = errors.New("username atau password salah")
	ErrAccountNotApproved  = errors.New("akun Anda sedang menunggu persetujuan admin")
	ErrWrongSurface        = errors.New("akun ini tidak dapat masuk melalui halaman ini")
	ErrPendingReset        = errors.New("akun Anda memiliki permintaan reset password yang belum diproses")
	ErrUsernameTaken       = errors.New("username sudah digunakan")
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	Logout(ctx context.Context, actor store.Actor) error
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error)
	ApproveUser(ctx context.Context, actor store.Actor, userID, role string) error
	UpdateProfile(ctx context.Context, actor store.Actor, req dto.UpdateProfileRequest) error
	RequestPasswordReset(ctx context.Context, username string) error
	ResolveAccountRequest(ctx context.Context, actor store.Actor, requestID string, approve bool, newPassword string) error
	ListUsers(ctx context.Context) []dto.UserResponse
	RecentLogins(ctx context.Context) []model.LoginRef
}

type authService struct {
	st  *store.Store
	cfg *config.Config
}

func NewAuthService(st *store.Store, cfg *config.Config) AuthService {
	return &authService{st: st, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, ok := s.findUser(req.Username)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsApproved || user.Role == model.RolePending {
		return nil, ErrAccountNotApproved
	}
	surface := req.Surface
	if surface == "" {
		surface = SurfaceDashboard
	}
	if surface == SurfaceDashboard && !model.IsStaffRole(user.Role) {
		return nil, ErrWrongSurface
	}
	if surface == SurfaceStore && user.Role != model.RoleCustomer && user.Role != model.RoleMember {
		return nil, ErrWrongSurface
	}
	if s.hasPendingReset(user.ID.String()) {
		return nil, ErrPendingReset
	}

	if err := s.st.Dispatch(store.Login{User: user}); err != nil {
		return nil, err
	}

	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		LandingPage:  store.LandingPageFor(user),
		User:         toUserResponse(user),
	}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token tidak valid atau kedaluwarsa")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("claims tidak valid")
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("token tidak lengkap")
	}

	user, found := s.findUserByID(userIDStr)
	if !found || !user.IsApproved {
		return nil, errors.New("pengguna tidak ditemukan atau belum disetujui")
	}

	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	newRefresh, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		LandingPage:  store.LandingPageFor(user),
		User:         toUserResponse(user),
	}, nil
}

func (s *authService) Logout(ctx context.Context, actor store.Actor) error {
	return s.st.Dispatch(store.Logout{Actor: actor})
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	if _, taken := s.findUser(req.Username); taken {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}

	// Customers are usable immediately; staff registrations wait for admin
	// approval with role "pending".
	role := model.RolePending
	approved := false
	if req.Role == model.RoleCustomer {
		role = model.RoleCustomer
		approved = true
	}

	now := time.Now()
	user := model.User{
		ID:           uuid.New(),
		Username:     req.Username,
		FullName:     req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         role,
		IsApproved:   approved,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.st.Dispatch(store.RegisterUser{User: user}); err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) ApproveUser(ctx context.Context, actor store.Actor, userID, role string) error {
	return s.st.Dispatch(store.ApproveUser{
		Actor:      actor,
		UserID:     userID,
		Role:       role,
		Department: departmentFor(role),
	})
}

func (s *authService) UpdateProfile(ctx context.Context, actor store.Actor, req dto.UpdateProfileRequest) error {
	user, found := s.findUserByID(actor.UserID)
	if !found {
		return store.ErrNotFound
	}
	if req.Name != "" {
		user.FullName = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	return s.st.Dispatch(store.UpdateProfile{Actor: actor, User: user})
}

func (s *authService) RequestPasswordReset(ctx context.Context, username string) error {
	user, found := s.findUser(username)
	if !found {
		// Do not reveal whether the username exists.
		return nil
	}
	return s.st.Dispatch(store.CreateAccountRequest{
		UserID:   user.ID.String(),
		Username: user.Username,
		Type:     model.RequestPasswordReset,
	})
}

func (s *authService) ResolveAccountRequest(ctx context.Context, actor store.Actor, requestID string, approve bool, newPassword string) error {
	var hash string
	if approve && newPassword != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(newPassword), 12)
		if err != nil {
			return err
		}
		hash = string(h)
	}
	return s.st.Dispatch(store.ResolveAccountRequest{
		Actor:           actor,
		RequestID:       requestID,
		Approve:         approve,
		NewPasswordHash: hash,
	})
}

func (s *authService) ListUsers(ctx context.Context) []dto.UserResponse {
	var out []dto.UserResponse
	s.st.View(func(st *store.AppState) {
		out = make([]dto.UserResponse, len(st.Users))
		for i, u := range st.Users {
			out[i] = toUserResponse(u)
		}
	})
	return out
}

func (s *authService) RecentLogins(ctx context.Context) []model.LoginRef {
	var out []model.LoginRef
	s.st.View(func(st *store.AppState) {
		out = append(out, st.LastLoggedInUsers...)
	})
	return out
}

func (s *authService) findUser(username string) (model.User, bool) {
	var user model.User
	found := false
	s.st.View(func(st *store.AppState) {
		for _, u := range st.Users {
			if u.Username == username {
				user = u
				found = true
				return
			}
		}
	})
	return user, found
}

func (s *authService) findUserByID(id string) (model.User, bool) {
	var user model.User
	found := false
	s.st.View(func(st *store.AppState) {
		for _, u := range st.Users {
			if u.ID.String() == id {
				user = u
				found = true
				return
			}
		}
	})
	return user, found
}

func (s *authService) hasPendingReset(userID string) bool {
	pending := false
	s.st.View(func(st *store.AppState) {
		for _, r := range st.AccountChangeRequests {
			if r.UserID == userID && r.Type == model.RequestPasswordReset && r.Status == model.RequestPending {
				pending = true
				return
			}
		}
	})
	return pending
}

func (s *authService) generateToken(user model.User, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    user.ID.String(),
		"username":   user.Username,
		"role":       user.Role,
		"department": user.Department,
		"exp":        time.Now().Add(duration).Unix(),
		"iat":        time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func departmentFor(role string) string {
	switch role {
	case model.RoleKepalaGudang:
		return model.DeptGudang
	case model.RoleKepalaProduksi:
		return model.DeptProduksi
	case model.RoleKepalaPenjualan, model.RolePenjualan:
		return model.DeptPenjualan
	}
	return ""
}

func toUserResponse(u model.User) dto.UserResponse {
	var lastSurvey *string
	if u.LastSurveyDate != nil {
		s := u.LastSurveyDate.Format(time.RFC3339)
		lastSurvey = &s
	}
	return dto.UserResponse{
		ID:               u.ID.String(),
		Username:         u.Username,
		Name:             u.FullName,
		Email:            u.Email,
		Phone:            u.Phone,
		Role:             u.Role,
		Department:       u.Department,
		IsApproved:       u.IsApproved,
		PerformanceScore: u.PerformanceScore,
		LastSurveyDate:   lastSurvey,
	}
}
