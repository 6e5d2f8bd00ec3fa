package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	da "github.com/lintang-b-s/roadfinder/pkg/datastructure"
	"github.com/lintang-b-s/roadfinder/pkg/util"
	"go.uber.org/zap"
)

type envelope map[string]any

const maxBodyBytes = 4 << 20

func (api *planningAPI) writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func (api *planningAPI) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxBytesError *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)
		default:
			return err
		}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}
	return nil
}

func (api *planningAPI) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := envelope{"error": errorBody{Code: http.StatusText(status), Message: message}}
	if err := api.writeJSON(w, status, resp, nil); err != nil {
		api.log.Error("write error response", zap.Error(err), zap.String("path", r.URL.Path))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (api *planningAPI) BadRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (api *planningAPI) NotFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusNotFound, err.Error())
}

func (api *planningAPI) ServerErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.log.Error("internal server error", zap.Error(err), zap.String("method", r.Method),
		zap.String("path", r.URL.Path))
	api.errorResponse(w, r, http.StatusInternalServerError, util.MessageInternalServerError)
}

// statusCode maps the code of a service error to an http status.
func statusCode(err error) int {
	switch util.ErrorCode(err) {
	case util.ErrBadParamInput:
		return http.StatusBadRequest
	case util.ErrNotFound:
		return http.StatusNotFound
	}
	if errors.Is(err, da.ErrInvalidMap) || errors.Is(err, da.ErrInvalidEndpoint) {
		return http.StatusBadRequest
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func (api *planningAPI) getStatusCode(w http.ResponseWriter, r *http.Request, err error) {
	switch status := statusCode(err); status {
	case http.StatusInternalServerError:
		api.ServerErrorResponse(w, r, err)
	default:
		api.errorResponse(w, r, status, err.Error())
	}
}

func errorBodyOf(err error) *errorBody {
	status := statusCode(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = util.MessageInternalServerError
	}
	return &errorBody{Code: http.StatusText(status), Message: msg}
}

type requestValidator struct {
	validate *validator.Validate
	trans    ut.Translator
}

func newRequestValidator() *requestValidator {
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)
	return &requestValidator{validate: validate, trans: trans}
}

// Struct validates s and returns the translated validation messages as one error.
func (rv *requestValidator) Struct(s any) error {
	err := rv.validate.Struct(s)
	if err == nil {
		return nil
	}
	vv := translateError(err, rv.trans)
	vvString := make([]string, 0, len(vv))
	for _, v := range vv {
		vvString = append(vvString, v.Error())
	}
	return fmt.Errorf("validation error: %s", strings.Join(vvString, "; "))
}

func translateError(err error, trans ut.Translator) []error {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	errs := make([]error, 0, len(validatorErrs))
	for _, e := range validatorErrs {
		errs = append(errs, errors.New(e.Translate(trans)))
	}
	return errs
}
