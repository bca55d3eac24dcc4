// Package sheets stores the budget state in a Google Sheets workbook behind
// an Apps Script web app.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dafibh/kakeibo/kakeibo-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// maxResponseBytes bounds the body read from the script endpoint
const maxResponseBytes = 4 << 20

// StateRepository implements domain.StateRepository against an Apps Script endpoint
type StateRepository struct {
	endpoint string
	client   *http.Client
}

// NewStateRepository creates a new StateRepository. A zero timeout keeps the
// http.Client default.
func NewStateRepository(endpoint string, timeout time.Duration) *StateRepository {
	return &StateRepository{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// errorBody is the failure envelope. The script sends {"error": true, "message": ...},
// the old proxy sent {"error": "..."}.
type errorBody struct {
	Error   any    `json:"error"`
	Message string `json:"message"`
}

func (e errorBody) failed() (string, bool) {
	switch v := e.Error.(type) {
	case bool:
		return e.Message, v
	case string:
		if v == "" {
			return "", false
		}
		if e.Message != "" {
			return e.Message, true
		}
		return v, true
	default:
		return "", false
	}
}

// GetState fetches the whole workbook
func (r *StateRepository) GetState(ctx context.Context) (*domain.BudgetState, error) {
	wire, err := r.do(ctx, r.endpoint)
	if err != nil {
		return nil, err
	}
	return wire.ToDomain(), nil
}

// PutState sends the patch as ?action=update&data=<json>. Apps Script web apps
// redirect POSTs, so updates travel as GET query parameters.
func (r *StateRepository) PutState(ctx context.Context, patch *domain.StatePatch) (*domain.BudgetState, error) {
	payload, err := json.Marshal(PatchFromDomain(patch))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode patch: %v", domain.ErrFetch, err)
	}

	u, err := url.Parse(r.endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endpoint: %v", domain.ErrFetch, err)
	}
	q := u.Query()
	q.Set("action", "update")
	q.Set("data", string(payload))
	u.RawQuery = q.Encode()

	wire, err := r.do(ctx, u.String())
	if err != nil {
		return nil, err
	}
	return wire.ToDomain(), nil
}

func (r *StateRepository) do(ctx context.Context, target string) (*State, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	startTime := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetch, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", domain.ErrFetch, err)
	}

	log.Debug().
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("elapsed", time.Since(startTime)).
		Msg("Sheets request completed")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: sheets endpoint returned status %d", domain.ErrFetch, resp.StatusCode)
	}

	var probe errorBody
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("%w: invalid response: %v", domain.ErrFetch, err)
	}
	if msg, failed := probe.failed(); failed {
		return nil, fmt.Errorf("%w: %s", domain.ErrFetch, msg)
	}

	var wire State
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: invalid state: %v", domain.ErrFetch, err)
	}
	return &wire, nil
}
