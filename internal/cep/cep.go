// Package cep resolves Brazilian postal codes through ViaCEP, keeping every
// successful answer in a cache with no expiry.
package cep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/nail-studio/internal/format"
	"github.com/BruksfildServices01/nail-studio/internal/models"
)

var (
	ErrInvalid  = errors.New("cep must have 8 digits")
	ErrNotFound = errors.New("cep not found")
)

type Cache interface {
	Get(ctx context.Context, code string) (*models.Address, error)
	Set(ctx context.Context, code string, addr models.Address) error
}

type Client struct {
	baseURL string
	http    *http.Client
	cache   Cache
}

func New(baseURL string, cache Cache) *Client {
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 5 * time.Second},
		cache:   cache,
	}
}

type viaCEPResponse struct {
	CEP         string `json:"cep"`
	Logradouro  string `json:"logradouro"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Localidade  string `json:"localidade"`
	UF          string `json:"uf"`
	Erro        any    `json:"erro"`
}

// failed cobre as duas formas do campo erro da ViaCEP (bool ou "true").
func (r viaCEPResponse) failed() bool {
	switch v := r.Erro.(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}

// Lookup consulta o cache e, na falta, a ViaCEP.
func (c *Client) Lookup(ctx context.Context, raw string) (*models.Address, error) {
	code := format.OnlyDigits(raw)
	if len(code) != 8 {
		return nil, ErrInvalid
	}

	if addr, err := c.cache.Get(ctx, code); err != nil {
		log.Warn().Err(err).Str("cep", code).Msg("cep cache read failed")
	} else if addr != nil {
		return addr, nil
	}

	addr, err := c.fetch(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, code, *addr); err != nil {
		log.Warn().Err(err).Str("cep", code).Msg("cep cache write failed")
	}
	return addr, nil
}

func (c *Client) fetch(ctx context.Context, code string) (*models.Address, error) {
	url := fmt.Sprintf("%s/%s/json/", c.baseURL, code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("viacep request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("viacep: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("viacep: status %d", resp.StatusCode)
	}

	var body viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("viacep decode: %w", err)
	}
	if body.failed() {
		return nil, ErrNotFound
	}

	return &models.Address{
		CEP:          format.CEP(code),
		Street:       body.Logradouro,
		Complement:   body.Complemento,
		Neighborhood: body.Bairro,
		City:         body.Localidade,
		State:        body.UF,
	}, nil
}
