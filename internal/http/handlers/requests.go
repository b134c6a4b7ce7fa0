package handlers

import (
	"encoding/json"
	"errors"
	"io"
	nethttp "net/http"

	"github.com/preston-bernstein/pyramid-service/internal/app/pyramids"
	"github.com/preston-bernstein/pyramid-service/internal/domain"
	"github.com/preston-bernstein/pyramid-service/internal/generator"
)

const maxBodyBytes = 1 << 20

// pyramidRequest is the body of both create and resample calls.
type pyramidRequest struct {
	Levels        []int    `json:"levels"`
	Theme         string   `json:"theme"`
	Seed          *int64   `json:"seed"`
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	DivisionNames []string `json:"divisionNames"`
}

// decodeRequest reads a JSON body; an empty body yields the zero request.
func decodeRequest(w nethttp.ResponseWriter, r *nethttp.Request) (pyramidRequest, error) {
	var req pyramidRequest
	dec := json.NewDecoder(nethttp.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return pyramidRequest{}, nil
		}
		return pyramidRequest{}, &domain.Error{Op: "handlers.decode", Kind: domain.KindInvalidInput, Msg: "invalid request body", Err: err}
	}
	if dec.More() {
		return pyramidRequest{}, domain.Errorf("handlers.decode", domain.KindInvalidInput, "invalid request body: trailing data")
	}
	return req, nil
}

// validate applies the configured size limits and rejects unknown themes up front.
func (h *Handler) validate(req pyramidRequest) error {
	const op = "handlers.validate"
	if h.limits.MaxLevels > 0 && len(req.Levels) > h.limits.MaxLevels {
		return domain.Errorf(op, domain.KindInvalidInput, "too many levels: %d (max %d)", len(req.Levels), h.limits.MaxLevels)
	}
	if h.limits.MaxTeamsPerLevel > 0 {
		for i, n := range req.Levels {
			if n > h.limits.MaxTeamsPerLevel {
				return domain.Errorf(op, domain.KindInvalidInput, "level %d has %d teams (max %d)", i+1, n, h.limits.MaxTeamsPerLevel)
			}
		}
	}
	if req.Theme != "" {
		if _, err := h.svc.Themes().Get(req.Theme); err != nil {
			return &domain.Error{Op: op, Kind: domain.KindInvalidInput, Msg: err.Error()}
		}
	}
	return nil
}

func (req pyramidRequest) generateOptions() generator.Options {
	return generator.Options{
		Levels:        req.Levels,
		Theme:         req.Theme,
		Seed:          req.Seed,
		Title:         req.Title,
		Description:   req.Description,
		DivisionNames: req.DivisionNames,
	}
}

func (req pyramidRequest) resampleOptions() pyramids.ResampleOptions {
	return pyramids.ResampleOptions{
		Levels:        req.Levels,
		Theme:         req.Theme,
		Seed:          req.Seed,
		Title:         req.Title,
		Description:   req.Description,
		DivisionNames: req.DivisionNames,
	}
}
