package auth

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/hlog"
)

const (
	msgLoggedIn    = "Logged in"
	msgLoggedOut   = "Logged Out"
	msgUserUpdated = "User updated successfully"
	msgNoChanges   = "No changes detected"
)

type registerAccountResponse struct {
	Acknowledged bool `json:"acknowledged"`
	InsertedID   ID   `json:"insertedId"`
}

type updateProfileResponse struct {
	Result  *UpsertResult `json:"result,omitempty"`
	Created bool          `json:"created"`
	Message string        `json:"message"`
}

func RegisterAccountHandler(svc Service, sc SessionCookie) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeRegisterAccountRequest(r.Body)
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			encodeError(errBadRequest, w, r)
			return
		}

		id, token, err := svc.RegisterAccount(r.Context(), req)
		if err != nil {
			encodeError(err, w, r)
			return
		}

		sc.Set(w, token)
		w.Header().Set("Location", "/users/"+url.PathEscape(req.Email))
		w.WriteHeader(http.StatusCreated)
		encodeResponse(w, r, registerAccountResponse{Acknowledged: true, InsertedID: id})
	})
}

func LoginHandler(svc Service, sc SessionCookie) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeLoginRequest(r.Body)
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			encodeError(errBadRequest, w, r)
			return
		}

		token, err := svc.ValidateCredentials(r.Context(), req)
		if err != nil {
			encodeError(err, w, r)
			return
		}

		sc.Set(w, token)
		encodeResponse(w, r, map[string]interface{}{"message": msgLoggedIn})
	})
}

func LogoutHandler(sc SessionCookie) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		sc.Clear(w)
		encodeResponse(w, r, map[string]interface{}{"message": msgLoggedOut})
	})
}

// CheckUserHandler must sit behind RequireAuth; it only echoes the subject.
func CheckUserHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		subject, ok := SubjectFromContext(r.Context())
		if !ok {
			encodeError(ErrUnauthorized, w, r)
			return
		}
		encodeResponse(w, r, map[string]interface{}{"loggedIn": true, "email": subject})
	})
}

func GetProfileHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		subject, ok := SubjectFromContext(r.Context())
		if !ok {
			encodeError(ErrUnauthorized, w, r)
			return
		}

		email := httprouter.ParamsFromContext(r.Context()).ByName("email")
		profile, err := svc.GetProfile(r.Context(), subject, email)
		if err != nil {
			encodeError(err, w, r)
			return
		}
		encodeResponse(w, r, profile)
	})
}

// UpdateProfileHandler must sit behind RequireAuth. Only the owner of the
// profile may update it.
func UpdateProfileHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		subject, ok := SubjectFromContext(r.Context())
		if !ok {
			encodeError(ErrUnauthorized, w, r)
			return
		}

		req, err := decodeUpdateProfileRequest(r.Body)
		if err != nil {
			encodeError(errBadRequest, w, r)
			return
		}

		email := httprouter.ParamsFromContext(r.Context()).ByName("email")
		res, err := svc.UpdateProfile(r.Context(), subject, email, req)
		if err != nil {
			encodeError(err, w, r)
			return
		}

		if !res.Changed() {
			encodeResponse(w, r, updateProfileResponse{Message: msgNoChanges})
			return
		}
		encodeResponse(w, r, updateProfileResponse{Result: res.Write, Created: res.Created(), Message: msgUserUpdated})
	})
}

var errBadRequest = errors.New("invalid request body")

func encodeError(err error, w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	msg := err.Error()
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, ErrInvalidEmail),
		errors.Is(err, ErrInvalidName),
		errors.Is(err, ErrInvalidPassword),
		errors.Is(err, ErrExistingEmail),
		errors.Is(err, ErrInvalidCredentials):
		w.WriteHeader(http.StatusBadRequest)
	case errors.Is(err, ErrUnauthorized):
		w.WriteHeader(http.StatusUnauthorized)
	case errors.Is(err, ErrForbidden):
		w.WriteHeader(http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
		msg = "internal server error"
		w.WriteHeader(http.StatusInternalServerError)
	}
	encodeResponse(w, r, map[string]interface{}{"error": msg})
}

func encodeResponse(w http.ResponseWriter, r *http.Request, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("error encoding response")
	}
}

func decodeRegisterAccountRequest(body io.ReadCloser) (registerAccountRequest, error) {
	req := registerAccountRequest{}
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return registerAccountRequest{}, err
	}
	return req, nil
}

func decodeLoginRequest(body io.ReadCloser) (validateCredentialsRequest, error) {
	req := validateCredentialsRequest{}
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return validateCredentialsRequest{}, err
	}
	return req, nil
}

func decodeUpdateProfileRequest(body io.ReadCloser) (updateProfileRequest, error) {
	req := updateProfileRequest{}
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return updateProfileRequest{}, err
	}
	return req, nil
}
