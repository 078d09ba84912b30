package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	service "github.com/okian/loanapi/internal/app"
	"github.com/okian/loanapi/internal/domain/model"
	"github.com/okian/loanapi/internal/domain/types"
	"github.com/okian/loanapi/pkg/logger"
)

const maxPredictBody = 1 << 20

// Predictor scores a single applicant.
type Predictor interface {
	Predict(ctx context.Context, in model.LoanInput) (types.Prediction, error)
}

// PredictHandler handles prediction requests.
type PredictHandler struct {
	predictor Predictor
	log       logger.Logger
}

// NewPredictHandler creates a new prediction handler.
func NewPredictHandler(p Predictor, log logger.Logger) *PredictHandler {
	return &PredictHandler{predictor: p, log: log}
}

// predictRequest mirrors the OpenAPI schema for POST /predict. Pointers
// distinguish a missing or null field from a zero value.
type predictRequest struct {
	Age         *numberField `json:"age"`
	Income      *numberField `json:"income"`
	LoanAmount  *numberField `json:"loan_amount"`
	CreditScore *numberField `json:"credit_score"`
}

// numberField keeps a field's raw JSON text so that parse errors can name
// the field. It holds a JSON number or a string containing one.
type numberField []byte

func (n *numberField) UnmarshalJSON(b []byte) error {
	*n = append((*n)[:0], b...)
	return nil
}

func (n numberField) parse(name string) (float64, error) {
	invalid := fmt.Errorf("%w: %s: value is not a valid number", model.ErrInvalidField, name)
	if len(n) > 0 && n[0] == '"' {
		var s string
		if err := json.Unmarshal(n, &s); err != nil {
			return 0, invalid
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, invalid
		}
		return v, model.FloatField(name, v)
	}
	var v float64
	if err := json.Unmarshal(n, &v); err != nil {
		return 0, invalid
	}
	return v, nil
}

func (p predictRequest) toInput() (model.LoanInput, error) {
	var (
		in  model.LoanInput
		raw [model.FeatureCount]float64
	)
	for i, f := range []struct {
		name string
		v    *numberField
	}{
		{"age", p.Age},
		{"income", p.Income},
		{"loan_amount", p.LoanAmount},
		{"credit_score", p.CreditScore},
	} {
		if f.v == nil {
			return in, fmt.Errorf("%w: %s", model.ErrMissingField, f.name)
		}
		v, err := f.v.parse(f.name)
		if err != nil {
			return in, err
		}
		raw[i] = v
	}

	var err error
	if in.Age, err = model.IntegerField("age", raw[0]); err != nil {
		return in, err
	}
	if in.CreditScore, err = model.IntegerField("credit_score", raw[3]); err != nil {
		return in, err
	}
	in.Income = raw[1]
	in.LoanAmount = raw[2]
	return in, nil
}

// decodePredictRequest reads and validates the request body. The returned
// error text is safe to show to clients.
func decodePredictRequest(w http.ResponseWriter, r *http.Request) (model.LoanInput, error) {
	var req predictRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPredictBody))
	if err := dec.Decode(&req); err != nil {
		var (
			typeErr *json.UnmarshalTypeError
			sizeErr *http.MaxBytesError
		)
		switch {
		case errors.As(err, &sizeErr):
			return model.LoanInput{}, ErrBodyTooBig
		case errors.As(err, &typeErr):
			field := typeErr.Field
			if field == "" {
				return model.LoanInput{}, fmt.Errorf("%w: body: value is not a JSON object", model.ErrInvalidField)
			}
			return model.LoanInput{}, fmt.Errorf("%w: %s: value is not a valid number", model.ErrInvalidField, field)
		case errors.Is(err, io.EOF):
			return model.LoanInput{}, fmt.Errorf("%w: body", model.ErrMissingField)
		default:
			return model.LoanInput{}, fmt.Errorf("invalid JSON body: %w", err)
		}
	}
	if dec.More() {
		return model.LoanInput{}, errors.New("invalid JSON body: trailing data")
	}
	return req.toInput()
}

// HandlePredict handles POST /predict requests.
func (h *PredictHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	const op = "api.predict"
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	ctx := r.Context()

	in, err := decodePredictRequest(w, r)
	if err != nil {
		h.log.Debug(ctx, "rejected prediction request",
			logger.String("request_id", RequestIDFromContext(ctx)),
			logger.Error(WrapKind(op, ErrBadRequest, err)),
		)
		status := http.StatusUnprocessableEntity
		if errors.Is(err, ErrBodyTooBig) {
			status = http.StatusRequestEntityTooLarge
		}
		writeError(w, status, err)
		return
	}

	pred, err := h.predictor.Predict(ctx, in)
	switch {
	case errors.Is(err, service.ErrModelUnavailable):
		writeError(w, http.StatusServiceUnavailable, service.ErrModelUnavailable)
		return
	case err != nil:
		h.log.Error(ctx, "prediction failed",
			logger.String("request_id", RequestIDFromContext(ctx)),
			logger.Error(err),
		)
		var predErr *service.PredictionError
		if !errors.As(err, &predErr) {
			err = &service.PredictionError{Cause: err}
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, pred)
}
