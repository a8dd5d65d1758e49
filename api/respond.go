package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/garnizeh/skillsnap/pkg/errs"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

func writeMessage(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, messageResponse{Message: msg}, status)
}

// writeError maps the error taxonomy onto HTTP statuses. Untagged errors
// are store faults: logged, surfaced as a generic 500.
func writeError(w http.ResponseWriter, err error, fallback string) {
	switch errs.KindOf(err) {
	case errs.KindValidation, errs.KindDuplicate:
		writeMessage(w, errs.Message(err, fallback), http.StatusBadRequest)
	case errs.KindNotFound:
		writeMessage(w, errs.Message(err, fallback), http.StatusNotFound)
	case errs.KindConflict:
		writeMessage(w, errs.Message(err, fallback), http.StatusConflict)
	case errs.KindAuth:
		writeMessage(w, errs.Message(err, fallback), http.StatusUnauthorized)
	default:
		logger.Error("request failed", slog.Any("err", err))
		writeMessage(w, fallback, http.StatusInternalServerError)
	}
}

var validate = validator.New()

// validationMessage validates v and renders the first failure in the
// user-facing style of the API ("Title is required."). Empty string
// means v passed.
func validationMessage(v any) string {
	err := validate.Struct(v)
	if err == nil {
		return ""
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request."
	}

	fe := verrs[0]
	switch {
	case fe.Field() == "PortfolioUserID":
		return "Valid PortfolioUserId is required."
	case fe.Tag() == "email":
		return "A valid email is required."
	case fe.Tag() == "min":
		return fmt.Sprintf("%s must be at least %s characters.", fe.Field(), fe.Param())
	default:
		return fe.Field() + " is required."
	}
}

func pathID(r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// queryOwnerID reads an optional portfolioUserId query filter; ok is
// false only for a present but malformed value.
func queryOwnerID(q url.Values) (uint, bool) {
	raw := q.Get("portfolioUserId")
	if raw == "" {
		return 0, true
	}

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
