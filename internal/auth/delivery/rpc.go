package delivery

import (
	"context"
	"encoding/json"
	"errors"

	"authws-backend/internal/auth/domain"
	"authws-backend/internal/auth/dto"
	"authws-backend/internal/auth/usecase"
	"authws-backend/internal/rpc"
)

// rpcHandlers adapts AuthUsecase operations into RPC method handlers.
type rpcHandlers struct {
	authUsecase usecase.AuthUsecase
}

// RegisterMethods wires every RPC method into the registry with its
// declared auth capability.
func RegisterMethods(registry *rpc.Registry, authUsecase usecase.AuthUsecase) {
	h := &rpcHandlers{authUsecase: authUsecase}

	registry.Register("register", rpc.Method{Handler: h.register})
	registry.Register("login", rpc.Method{Handler: h.login, EstablishesSession: true})
	registry.Register("refresh_token", rpc.Method{Handler: h.refreshToken, EstablishesSession: true})
	registry.Register("auth_with_token", rpc.Method{Handler: h.authWithToken, EstablishesSession: true})
	registry.Register("get_user_details", rpc.Method{Handler: h.getUserDetails, RequiresAuth: true})
	registry.Register("get_all_users", rpc.Method{Handler: h.getAllUsers, RequiresAuth: true})
	registry.Register("upload_profile_picture", rpc.Method{Handler: h.uploadProfilePicture, RequiresAuth: true})
	registry.Register("get_profile_picture", rpc.Method{Handler: h.getProfilePicture, RequiresAuth: true})
}

// Authenticator implements rpc.Authenticator over the auth usecase so the
// dispatcher's guard shares the same decode/lookup path as auth_with_token.
type Authenticator struct {
	authUsecase usecase.AuthUsecase
}

func NewAuthenticator(authUsecase usecase.AuthUsecase) *Authenticator {
	return &Authenticator{authUsecase: authUsecase}
}

func (a *Authenticator) ResolveToken(accessToken string) (*domain.User, *rpc.Error) {
	user, err := a.authUsecase.AuthWithToken(accessToken)
	if err != nil {
		return nil, mapError(err)
	}
	return user, nil
}

func (a *Authenticator) ResolveUser(id string) (*domain.User, *rpc.Error) {
	user, err := a.authUsecase.GetUser(id)
	if err != nil {
		return nil, mapError(err)
	}
	return user, nil
}

func (h *rpcHandlers) register(ctx context.Context, params json.RawMessage, authCtx *rpc.AuthContext) (map[string]interface{}, *rpc.Error) {
	var p dto.RegisterParams
	if err := unmarshalParams(params, &p); err != nil {
		return nil, err
	}

	user, err := h.authUsecase.Register(&p)
	if err != nil {
		return nil, mapError(err)
	}

	result := map[string]interface{}{
		"message":  "Registration successful",
		"username": user.Username,
	}
	if user.Name != "" {
		result["name"] = user.Name
	}
	return result, nil
}

func (h *rpcHandlers) login(ctx context.Context, params json.RawMessage, authCtx *rpc.AuthContext) (map[string]interface{}, *rpc.Error) {
	var p dto.LoginParams
	if err := unmarshalParams(params, &p); err != nil {
		return nil, err
	}

	res, err := h.authUsecase.Login(p.Username, p.Password)
	if err != nil {
		return nil, mapError(err)
	}

	return map[string]interface{}{
		"user_id":       res.User.ID,
		"username":      res.User.Username,
		"access_token":  res.AccessToken,
		"refresh_token": res.RefreshToken,
	}, nil
}

func (h *rpcHandlers) refreshToken(ctx context.Context, params json.RawMessage, authCtx *rpc.AuthContext) (map[string]interface{}, *rpc.Error) {
	var p dto.RefreshTokenParams
	if err := unmarshalParams(params, &p); err != nil {
		return nil, err
	}

	res, err := h.authUsecase.Refresh(p.RefreshToken)
	if err != nil {
		return nil, mapError(err)
	}

	return map[string]interface{}{
		"user_id":      res.User.ID,
		"username":     res.User.Username,
		"access_token": res.AccessToken,
	}, nil
}

func (h *rpcHandlers) authWithToken(ctx context.Context, params json.RawMessage, authCtx *rpc.AuthContext) (map[string]interface{}, *rpc.Error) {
	var p dto.AuthWithTokenParams
	if err := unmarshalParams(params, &p); err != nil {
		return nil, err
	}

	user, err := h.authUsecase.AuthWithToken(p.AccessToken)
	if err != nil {
		return nil, mapError(err)
	}

	return map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	}, nil
}

func (h *rpcHandlers) getUserDetails(ctx context.Context, params json.RawMessage, authCtx *rpc.AuthContext) (map[string]interface{}, *rpc.Error) {
	user := authCtx.User
	return map[string]interface{}{
		"user_id":       user.ID,
		"username":      user.Username,
		"email":         user.Email,
		"name":          user.Name,
		"profile_image": user.ProfileImage,
	}, nil
}

func (h *rpcHandlers) getAllUsers(ctx context.Context, params json.RawMessage, authCtx *rpc.AuthContext) (map[string]interface{}, *rpc.Error) {
	users, err := h.authUsecase.GetAllUsers()
	if err != nil {
		return nil, mapError(err)
	}

	list := make([]map[string]interface{}, 0, len(users))
	for _, u := range users {
		list = append(list, map[string]interface{}{
			"user_id":       u.ID,
			"username":      u.Username,
			"name":          u.Name,
			"profile_image": u.ProfileImage,
		})
	}

	return map[string]interface{}{"users": list}, nil
}

func (h *rpcHandlers) uploadProfilePicture(ctx context.Context, params json.RawMessage, authCtx *rpc.AuthContext) (map[string]interface{}, *rpc.Error) {
	var p dto.UploadProfilePictureParams
	if err := unmarshalParams(params, &p); err != nil {
		return nil, err
	}

	url, err := h.authUsecase.UploadProfilePicture(authCtx.User, p.ImageURL)
	if err != nil {
		return nil, mapError(err)
	}

	return map[string]interface{}{"profile_image": url}, nil
}

func (h *rpcHandlers) getProfilePicture(ctx context.Context, params json.RawMessage, authCtx *rpc.AuthContext) (map[string]interface{}, *rpc.Error) {
	return map[string]interface{}{"profile_image": authCtx.User.ProfileImage}, nil
}

func unmarshalParams(params json.RawMessage, dst interface{}) *rpc.Error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, dst); err != nil {
		return rpc.NewError(rpc.CodeInvalidParams, "Invalid params")
	}
	return nil
}

// mapError translates usecase sentinel errors into wire errors.
// Unrecognized failures become internal errors with the default code.
func mapError(err error) *rpc.Error {
	switch {
	case errors.Is(err, usecase.ErrAllFieldsRequired):
		return rpc.NewError(rpc.CodeInvalidParams, "All fields required")
	case errors.Is(err, usecase.ErrRefreshTokenRequired):
		return rpc.NewError(rpc.CodeInvalidParams, "Refresh token required")
	case errors.Is(err, usecase.ErrImageURLRequired):
		return rpc.NewError(rpc.CodeInvalidParams, "Missing required field: image_url")
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return rpc.NewError(rpc.CodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, usecase.ErrAccessTokenRequired):
		return rpc.NewError(rpc.CodeInvalidCredentials, "Access token required")
	case errors.Is(err, usecase.ErrUserExists):
		return rpc.NewError(rpc.CodeInternalError, "Username or email already exists")
	case errors.Is(err, usecase.ErrTokenExpired):
		return rpc.NewError(rpc.CodeInternalError, "Token has expired")
	case errors.Is(err, usecase.ErrInvalidTokenType):
		return rpc.NewError(rpc.CodeInternalError, "Invalid token type")
	case errors.Is(err, usecase.ErrInvalidToken):
		return rpc.NewError(rpc.CodeInternalError, "Invalid token")
	case errors.Is(err, usecase.ErrUserNotFound):
		return rpc.NewError(rpc.CodeInternalError, "User not found")
	default:
		return rpc.NewError(rpc.CodeInternalError, "Internal error: "+err.Error())
	}
}
