package providers

import (
	"context"
	"log/slog"

	"outdooradvisor.app/errors"
	"outdooradvisor.app/models"
)

type BaseForecastHandler struct {
	next         ForecastChain
	provider     ForecastClient
	providerName string
}

func NewBaseForecastHandler(provider ForecastClient, providerName string) *BaseForecastHandler {
	return &BaseForecastHandler{
		provider:     provider,
		providerName: providerName,
	}
}

func (h *BaseForecastHandler) Handle(ctx context.Context, coord models.Coordinate) (*models.ForecastBundle, error) {
	if h.provider != nil {
		bundle, err := h.provider.FetchForecast(ctx, coord)
		if err == nil {
			return bundle, nil
		}

		// Validation failures are caller errors; no other provider will
		// answer them differently.
		if !errors.IsProviderFailure(err) {
			return nil, err
		}

		slog.Info("provider failed", "provider", h.providerName, "coordinate", coord.String(), "error", err)

		// If this is the last handler in the chain, return the actual error
		if h.next == nil {
			return nil, err
		}
	}

	if h.next != nil {
		return h.next.Handle(ctx, coord)
	}

	return nil, errors.NewUnreachableError("all forecast providers failed for "+coord.String(), nil)
}

func (h *BaseForecastHandler) SetNext(handler ForecastChain) {
	h.next = handler
}

func (h *BaseForecastHandler) GetProviderName() string {
	return h.providerName
}

type WeatherAPIHandler struct {
	*BaseForecastHandler
}

func NewWeatherAPIHandler(provider ForecastClient) ForecastChain {
	baseHandler := NewBaseForecastHandler(provider, "WeatherAPI")
	return &WeatherAPIHandler{
		BaseForecastHandler: baseHandler,
	}
}

type OpenMeteoHandler struct {
	*BaseForecastHandler
}

func NewOpenMeteoHandler(provider ForecastClient) ForecastChain {
	baseHandler := NewBaseForecastHandler(provider, "OpenMeteo")
	return &OpenMeteoHandler{
		BaseForecastHandler: baseHandler,
	}
}

type ChainBuilder struct {
	handlers []ForecastChain
}

func NewChainBuilder() *ChainBuilder {
	return &ChainBuilder{
		handlers: make([]ForecastChain, 0),
	}
}

func (cb *ChainBuilder) AddHandler(handler ForecastChain) *ChainBuilder {
	cb.handlers = append(cb.handlers, handler)
	return cb
}

func (cb *ChainBuilder) Build() ForecastChain {
	if len(cb.handlers) == 0 {
		return nil
	}

	for i := 0; i < len(cb.handlers)-1; i++ {
		cb.handlers[i].SetNext(cb.handlers[i+1])
	}

	return cb.handlers[0]
}
