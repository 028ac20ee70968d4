package parlour

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/jimiolaniyan/parlour/auth"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/hlog"
)

const banner = "Beauty is a inner thing."

var (
	errBadRequest   = errors.New("invalid request body")
	errUnauthorized = errors.New("unauthorized")
)

func IndexHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, banner)
	})
}

func ListServicesHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		docs, err := svc.ListServices(r.Context())
		encodeList(w, r, docs, err)
	})
}

func GetServiceHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		doc, err := svc.GetService(r.Context(), id)
		if err != nil {
			encodeError(err, w, r)
			return
		}
		encodeResponse(w, r, http.StatusOK, doc)
	})
}

func ListReviewsHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		docs, err := svc.ListReviews(r.Context())
		encodeList(w, r, docs, err)
	})
}

func AddReviewHandler(svc Service) http.Handler {
	return insertHandler(svc.AddReview)
}

func AddBookingHandler(svc Service) http.Handler {
	return insertHandler(svc.AddBooking)
}

// ListBookingsHandler must sit behind auth.RequireAuth.
func ListBookingsHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, ok := auth.SubjectFromContext(r.Context())
		if !ok {
			encodeError(errUnauthorized, w, r)
			return
		}
		email := httprouter.ParamsFromContext(r.Context()).ByName("email")
		docs, err := svc.ListBookings(r.Context(), subject, email)
		encodeList(w, r, docs, err)
	})
}

func insertHandler(insert func(ctx context.Context, doc Document) (InsertResult, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		doc, err := decodeDocument(r.Body)
		if err != nil {
			encodeError(errBadRequest, w, r)
			return
		}

		res, err := insert(r.Context(), doc)
		if err != nil {
			encodeError(err, w, r)
			return
		}
		encodeResponse(w, r, http.StatusCreated, res)
	})
}

func encodeList(w http.ResponseWriter, r *http.Request, docs []Document, err error) {
	if err != nil {
		encodeError(err, w, r)
		return
	}
	if docs == nil {
		docs = []Document{}
	}
	encodeResponse(w, r, http.StatusOK, docs)
}

func encodeError(err error, w http.ResponseWriter, r *http.Request) {
	code := http.StatusInternalServerError
	msg := err.Error()
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, ErrEmptyDocument):
		code = http.StatusBadRequest
	case errors.Is(err, errUnauthorized):
		code = http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		code = http.StatusNotFound
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
		msg = "internal server error"
	}
	encodeResponse(w, r, code, map[string]interface{}{"error": msg})
}

func encodeResponse(w http.ResponseWriter, r *http.Request, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("error encoding response")
	}
}

func decodeDocument(body io.ReadCloser) (Document, error) {
	var doc Document
	if err := json.NewDecoder(body).Decode(&doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errBadRequest
	}
	return doc, nil
}
